package models

import (
	"time"
)

// ServerSettingsKey is the distinguished non-member key under which a guild's
// settings live in the quarantine collection
const ServerSettingsKey = "server_settings"

// QuarantineRecord represents a member confined to a single channel
type QuarantineRecord struct {
	// GuildID is the Discord guild the member is quarantined in
	GuildID string

	// MemberID is the Discord user ID of the quarantined member
	MemberID string

	// Reason is the moderator supplied reason
	Reason string

	// ModeratorID is who issued the quarantine
	ModeratorID string

	// CreatedAt is when the quarantine started
	CreatedAt time.Time

	// SavedRoles are the roles stripped at confinement, restored on release
	SavedRoles []string

	// ConfinementChannelID is the only channel the member can see
	ConfinementChannelID string

	// PublicView enables mirroring to the jail cam
	PublicView bool

	// MirrorChannelID is the jail cam resolved at start, empty when none
	MirrorChannelID string

	// EndTime is the automatic release time, nil for indefinite
	EndTime *time.Time

	// OriginalDurationMinutes is the sentence length at start. Every reward
	// and penalty is a percentage of it. Never changes after start.
	OriginalDurationMinutes *int

	// Challenges are ad-hoc reward tasks offered to the member
	Challenges []*ChallengeOffer
}

// IsTimed reports whether the record carries a sentence clock
func (r *QuarantineRecord) IsTimed() bool {
	return r.EndTime != nil && r.OriginalDurationMinutes != nil && *r.OriginalDurationMinutes > 0
}

// IsExpired reports whether the sentence has been served at now
func (r *QuarantineRecord) IsExpired(now time.Time) bool {
	return r.EndTime != nil && !r.EndTime.After(now)
}

// OpenChallenges returns the offers that can still be completed at now
func (r *QuarantineRecord) OpenChallenges(now time.Time) []*ChallengeOffer {
	var open []*ChallengeOffer
	for _, c := range r.Challenges {
		if c.IsOpen(now) {
			open = append(open, c)
		}
	}
	return open
}

// ChallengeOffer is a small reward task attached to a quarantine record,
// independent of the prison-break game
type ChallengeOffer struct {
	// ID is the unique identifier for the offer
	ID string

	// Prompt is shown to the prisoner
	Prompt string

	// Answer is compared trimmed and case-insensitively
	Answer string

	// RewardPercent is the sentence reduction applied on completion
	RewardPercent int

	// OfferedBy is the member who created the offer
	OfferedBy string

	// OfferedAt is when the offer was created
	OfferedAt time.Time

	// ExpiresAt is when the offer lapses
	ExpiresAt time.Time

	// Completed is set once the prisoner answers correctly
	Completed bool

	// CompletedAt is when the offer was completed
	CompletedAt *time.Time
}

// IsOpen reports whether the offer can still be completed at now
func (c *ChallengeOffer) IsOpen(now time.Time) bool {
	return !c.Completed && now.Before(c.ExpiresAt)
}
