package spectator

import (
	"github.com/KirkDiggler/jailbird/internal/dice"
	"github.com/KirkDiggler/jailbird/internal/models"
)

// Effect is how the crowd changed an attempt
type Effect string

const (
	// EffectNone leaves the attempt as evaluated
	EffectNone Effect = "none"

	// EffectAided turns a failed attempt into a small reward
	EffectAided Effect = "aided"

	// EffectSabotaged turns a winning attempt into a penalty
	EffectSabotaged Effect = "sabotaged"
)

const (
	// VoteMargin is the count a side must exceed to have any effect
	VoteMargin = 2

	AidChancePercent      = 30
	SabotageChancePercent = 20

	AidRewardPercent       = 2
	SabotagePenaltyPercent = 3
)

// Influence rolls whether the crowd changes an evaluated attempt. Each call
// is an independent trial; nothing accumulates between attempts.
func Influence(roller dice.Roller, votes models.SpectatorVotes, outcome models.AttemptOutcome) Effect {
	switch outcome {
	case models.AttemptOutcomeMiss, models.AttemptOutcomeThreshold:
		if votes.Help > votes.Sabotage && votes.Help > VoteMargin && roller.Chance(AidChancePercent) {
			return EffectAided
		}
	case models.AttemptOutcomeStageWon:
		if votes.Sabotage > votes.Help && votes.Sabotage > VoteMargin && roller.Chance(SabotageChancePercent) {
			return EffectSabotaged
		}
	}
	return EffectNone
}
