package models

import (
	"time"
)

// AdjustmentReason represents why a sentence changed
type AdjustmentReason string

const (
	// AdjustmentReasonStageWon is a prison-break stage reward
	AdjustmentReasonStageWon AdjustmentReason = "stage_won"

	// AdjustmentReasonStageFailed is a prison-break failure penalty
	AdjustmentReasonStageFailed AdjustmentReason = "stage_failed"

	// AdjustmentReasonSpectatorHelp is the minor reward granted by helpful spectators
	AdjustmentReasonSpectatorHelp AdjustmentReason = "spectator_help"

	// AdjustmentReasonSpectatorSabotage is the penalty caused by saboteurs
	AdjustmentReasonSpectatorSabotage AdjustmentReason = "spectator_sabotage"

	// AdjustmentReasonChallengeOffer is the reward for an ad-hoc challenge
	AdjustmentReasonChallengeOffer AdjustmentReason = "challenge_offer"
)

// Direction says which way a sentence moves
type Direction string

const (
	// DirectionReduce brings the release time closer
	DirectionReduce Direction = "reduce"

	// DirectionExtend pushes the release time out
	DirectionExtend Direction = "extend"
)

// SentenceAdjustment records one application of a reward or penalty
type SentenceAdjustment struct {
	// ID is the unique identifier for the entry
	ID string

	// GuildID is the guild of the quarantine
	GuildID string

	// MemberID is the quarantined member
	MemberID string

	// Minutes is the signed change to the end time, negative for reductions
	Minutes int

	// Percent is the share of the original sentence requested
	Percent int

	// Reason is why the adjustment was applied
	Reason AdjustmentReason

	// GameID is set when the adjustment came from a prison-break game
	GameID string

	// Timestamp is when the adjustment was applied
	Timestamp time.Time
}
