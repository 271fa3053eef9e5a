package discord

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/jailbird/internal/models"
	"github.com/KirkDiggler/jailbird/internal/services/isolation"
	"github.com/KirkDiggler/jailbird/internal/services/prisonbreak"
	"github.com/KirkDiggler/jailbird/internal/services/quarantine"
)

func TestErrorType(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not quarantined", quarantine.ErrNotQuarantined, "not_quarantined"},
		{"wrapped player not quarantined", fmt.Errorf("start: %w", prisonbreak.ErrPlayerNotQuarantined), "not_quarantined"},
		{"throw target", prisonbreak.ErrTargetNotQuarantined, "not_quarantined"},
		{"already quarantined", quarantine.ErrAlreadyQuarantined, "already_quarantined"},
		{"elevated target", quarantine.ErrElevatedTarget, "elevated_target"},
		{"no game", prisonbreak.ErrNoActiveGame, "no_game"},
		{"no players", prisonbreak.ErrNoEligiblePlayers, "no_players"},
		{"other quarantine error shows text", quarantine.ErrTooManyChallenges, ""},
		{"other game error shows text", prisonbreak.ErrUnknownItem, ""},
		{"unexpected error", errors.New("redis: connection refused"), "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorType(tt.err))
		})
	}
}

func TestFormatNet(t *testing.T) {
	assert.Equal(t, "none", formatNet(0))
	assert.Equal(t, "+12 min", formatNet(12))
	assert.Equal(t, "-7 min", formatNet(-7))
}

func TestFormatSentence(t *testing.T) {
	assert.Equal(t, "Indefinite", formatSentence(&models.QuarantineRecord{}))

	end := time.Unix(1700000000, 0)
	assert.Equal(t, "<t:1700000000:R>", formatSentence(&models.QuarantineRecord{EndTime: &end}))
}

func TestFormatFailures(t *testing.T) {
	assert.Equal(t, "4 of 4 changes applied", formatFailures(4, nil))

	failures := make([]isolation.Failure, 0, 7)
	for n := 0; n < 7; n++ {
		failures = append(failures, isolation.Failure{
			Op:     "deny_channel",
			Target: fmt.Sprintf("chan-%d", n),
			Err:    errors.New("missing access"),
		})
	}

	got := formatFailures(10, failures)
	assert.Contains(t, got, "3 of 10 changes applied")
	assert.Contains(t, got, "`deny_channel` on chan-4: missing access")
	assert.NotContains(t, got, "chan-5")
	assert.Contains(t, got, "...and 2 more")
}

func TestRenderAttempt(t *testing.T) {
	got := renderAttempt(&prisonbreak.SubmitAttemptOutput{
		Routed:   true,
		Outcome:  models.AttemptOutcomeThreshold,
		Message:  "The guards heard that one.",
		Feedback: "2 of 4 digits are in the right place.",
		Adjustments: []*prisonbreak.PlayerAdjustment{
			{MemberID: "alice", Direction: models.DirectionExtend, Percent: 10, Minutes: 6},
			{MemberID: "bob", Direction: models.DirectionExtend, Percent: 10},
		},
	})

	assert.Equal(t, "The guards heard that one.\n> 2 of 4 digits are in the right place.\n<@alice>: +10% (+6 min)", got)
}

func TestRenderAttemptReduction(t *testing.T) {
	got := renderAttempt(&prisonbreak.SubmitAttemptOutput{
		Routed:  true,
		Outcome: models.AttemptOutcomeStageWon,
		Message: "Click. The lock gives way.",
		Adjustments: []*prisonbreak.PlayerAdjustment{
			{MemberID: "alice", Direction: models.DirectionReduce, Percent: 10, Minutes: 6},
		},
	})

	assert.Equal(t, "Click. The lock gives way.\n<@alice>: -10% (-6 min)", got)
}

func TestRenderChallengeComplete(t *testing.T) {
	offer := &models.ChallengeOffer{RewardPercent: 5}

	got := renderChallengeComplete(&quarantine.CompleteChallengeOutput{Completed: true, Offer: offer})
	assert.Equal(t, "🔓 Correct! That's 5% off your sentence.", got)

	end := time.Unix(1700000000, 0)
	got = renderChallengeComplete(&quarantine.CompleteChallengeOutput{
		Completed:  true,
		Offer:      offer,
		Adjustment: &quarantine.AdjustSentenceOutput{Applied: true, Minutes: 3, EndTime: &end},
	})
	assert.Equal(t, "🔓 Correct! That's 5% off your sentence. You now walk free <t:1700000000:R>.", got)
}
