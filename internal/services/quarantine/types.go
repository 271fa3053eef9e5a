package quarantine

import (
	"log/slog"
	"time"

	"github.com/KirkDiggler/jailbird/internal/common/clock"
	"github.com/KirkDiggler/jailbird/internal/common/keylock"
	"github.com/KirkDiggler/jailbird/internal/common/uuid"
	"github.com/KirkDiggler/jailbird/internal/models"
	"github.com/KirkDiggler/jailbird/internal/platform"
	quarantineRepo "github.com/KirkDiggler/jailbird/internal/repositories/quarantine"
	ledgerRepo "github.com/KirkDiggler/jailbird/internal/repositories/sentence_ledger"
	"github.com/KirkDiggler/jailbird/internal/services/isolation"
	"github.com/KirkDiggler/jailbird/internal/services/messaging"
)

const (
	// DefaultMirrorChannelName is discovered or created when a public
	// quarantine has no configured jail cam
	DefaultMirrorChannelName = "jail-cam"

	// ConfinementChannelPrefix prefixes the username in a cell channel name
	ConfinementChannelPrefix = "cell-"

	// MaxOpenChallenges caps the ad-hoc offers a prisoner can hold at once
	MaxOpenChallenges = 3

	// DefaultFreshAccountDays is used when the gate is enabled without a threshold
	DefaultFreshAccountDays = 7
)

// Config holds configuration for the quarantine service
type Config struct {
	// Repository dependencies
	QuarantineRepo quarantineRepo.Repository
	LedgerRepo     ledgerRepo.Repository

	// Service dependencies
	Isolation isolation.Service
	Platform  platform.Platform
	Messaging messaging.Service

	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// Locker is shared with the game engine, a new one is created when nil
	Locker *keylock.Locker

	// Logger is optional, defaults to slog.Default()
	Logger *slog.Logger
}

// StartInput contains parameters for quarantining a member
type StartInput struct {
	GuildID     string
	TargetID    string
	ModeratorID string
	Reason      string

	// DurationMinutes of zero or less means indefinite
	DurationMinutes int

	// PublicView mirrors the cell to the jail cam
	PublicView bool

	// MirrorChannelID is the caller's preferred jail cam, used when the guild
	// has none configured
	MirrorChannelID string

	// Trigger labels the start for metrics, e.g. "command" or "fresh_account"
	Trigger string
}

// StartOutput contains the result of quarantining a member
type StartOutput struct {
	Record *models.QuarantineRecord

	// CreatedChannels lists channels made for this quarantine
	CreatedChannels []string

	// Attempted and Failures summarise the permission changes
	Attempted int
	Failures  []isolation.Failure

	// IsolationErr is set when confinement could not begin at all
	IsolationErr error
}

// ReleaseInput contains parameters for releasing a member
type ReleaseInput struct {
	GuildID  string
	TargetID string
	Reason   string

	// Expired marks a release by the expiry scan
	Expired bool
}

// ReleaseOutput contains the result of releasing a member
type ReleaseOutput struct {
	// WasQuarantined is false when there was nothing to release
	WasQuarantined bool

	// Record is the record that was removed
	Record *models.QuarantineRecord

	Attempted int
	Failures  []isolation.Failure
}

// GetInput contains parameters for reading a record
type GetInput struct {
	GuildID  string
	MemberID string
}

// GetOutput contains a record and its sentence ledger
type GetOutput struct {
	Record *models.QuarantineRecord

	// NetMinutes is the signed sum of every adjustment so far
	NetMinutes int

	Adjustments []*models.SentenceAdjustment
}

// ListInput contains parameters for listing a guild's records
type ListInput struct {
	GuildID string
}

// ListEntry is one record with its net adjustment
type ListEntry struct {
	Record     *models.QuarantineRecord
	NetMinutes int
}

// ListOutput contains a guild's records, oldest first
type ListOutput struct {
	Entries []*ListEntry
}

// AdjustSentenceInput contains parameters for a sentence adjustment
type AdjustSentenceInput struct {
	GuildID  string
	TargetID string

	// Percent is a share of the original sentence
	Percent int

	Direction models.Direction
	Reason    models.AdjustmentReason

	// GameID links the adjustment to a prison-break game
	GameID string
}

// AdjustSentenceOutput contains the result of a sentence adjustment
type AdjustSentenceOutput struct {
	// Applied is false when the record has no timed sentence
	Applied bool

	// Minutes is the unsigned amount requested, before flooring at now
	Minutes int

	EndTime *time.Time
}

// ExpireDueInput contains parameters for an expiry scan
type ExpireDueInput struct {
}

// ExpireDueOutput lists the members released by the scan
type ExpireDueOutput struct {
	Released []*models.QuarantineRecord
}

// GetMirrorAudienceInput contains parameters for a jail cam lookup
type GetMirrorAudienceInput struct {
	GuildID   string
	ChannelID string
}

// GetMirrorAudienceOutput describes who a jail cam channel serves
type GetMirrorAudienceOutput struct {
	// IsMirror is true for the configured jail cam or any channel a public
	// record resolves to
	IsMirror bool

	// Records are the public quarantines mirrored into the channel
	Records []*models.QuarantineRecord
}

// ResolveMirrorChannelInput contains parameters for resolving a record's jail cam
type ResolveMirrorChannelInput struct {
	Record *models.QuarantineRecord
}

// ResolveMirrorChannelOutput contains the resolved jail cam, empty when none
type ResolveMirrorChannelOutput struct {
	ChannelID string
}

// GetSettingsInput contains parameters for reading settings
type GetSettingsInput struct {
	GuildID string
}

// GetSettingsOutput contains a guild's settings
type GetSettingsOutput struct {
	Settings *models.ServerSettings
}

// SetJailCamInput contains parameters for configuring the jail cam
type SetJailCamInput struct {
	GuildID string

	// ChannelID clears the setting when empty
	ChannelID string
}

// SetJailCamOutput contains the updated settings
type SetJailCamOutput struct {
	Settings *models.ServerSettings
}

// SetFreshAccountsInput contains parameters for the new-account gate
type SetFreshAccountsInput struct {
	GuildID          string
	Enabled          bool
	AgeThresholdDays int
}

// SetFreshAccountsOutput contains the updated settings
type SetFreshAccountsOutput struct {
	Settings *models.ServerSettings
}

// AdmitMemberInput contains parameters for gating a joining member
type AdmitMemberInput struct {
	GuildID  string
	MemberID string

	// ModeratorID is recorded as the issuer, normally the bot itself
	ModeratorID string
}

// AdmitMemberOutput reports whether the member was quarantined
type AdmitMemberOutput struct {
	Quarantined bool
	Record      *models.QuarantineRecord
}

// OfferChallengeInput contains parameters for an ad-hoc challenge
type OfferChallengeInput struct {
	GuildID   string
	TargetID  string
	OfferedBy string

	Prompt        string
	Answer        string
	RewardPercent int

	// TTL is how long the offer stays open
	TTL time.Duration
}

// OfferChallengeOutput contains the created offer
type OfferChallengeOutput struct {
	Offer *models.ChallengeOffer
}

// CompleteChallengeInput contains a prisoner's message
type CompleteChallengeInput struct {
	GuildID   string
	MemberID  string
	ChannelID string
	Content   string
}

// CompleteChallengeOutput reports whether the message completed an offer
type CompleteChallengeOutput struct {
	// Completed is true when the message answered an open offer
	Completed bool

	Offer      *models.ChallengeOffer
	Adjustment *AdjustSentenceOutput
}
