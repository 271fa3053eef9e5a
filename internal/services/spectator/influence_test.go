package spectator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	diceMocks "github.com/KirkDiggler/jailbird/internal/dice/mocks"
	"github.com/KirkDiggler/jailbird/internal/models"
)

func TestInfluence(t *testing.T) {
	tests := []struct {
		name    string
		votes   models.SpectatorVotes
		outcome models.AttemptOutcome
		roll    *bool
		want    Effect
	}{
		{
			name:    "help majority aids a miss",
			votes:   models.SpectatorVotes{Help: 3, Sabotage: 1},
			outcome: models.AttemptOutcomeMiss,
			roll:    boolPtr(true),
			want:    EffectAided,
		},
		{
			name:    "help majority loses the roll",
			votes:   models.SpectatorVotes{Help: 3},
			outcome: models.AttemptOutcomeThreshold,
			roll:    boolPtr(false),
			want:    EffectNone,
		},
		{
			name:    "two helpers are not enough",
			votes:   models.SpectatorVotes{Help: 2},
			outcome: models.AttemptOutcomeMiss,
			want:    EffectNone,
		},
		{
			name:    "help does not touch a win",
			votes:   models.SpectatorVotes{Help: 10},
			outcome: models.AttemptOutcomeStageWon,
			want:    EffectNone,
		},
		{
			name:    "sabotage majority spoils a win",
			votes:   models.SpectatorVotes{Help: 1, Sabotage: 4},
			outcome: models.AttemptOutcomeStageWon,
			roll:    boolPtr(true),
			want:    EffectSabotaged,
		},
		{
			name:    "tied votes do nothing",
			votes:   models.SpectatorVotes{Help: 5, Sabotage: 5},
			outcome: models.AttemptOutcomeStageWon,
			want:    EffectNone,
		},
		{
			name:    "progress is neither win nor failure",
			votes:   models.SpectatorVotes{Sabotage: 9},
			outcome: models.AttemptOutcomeProgress,
			want:    EffectNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			roller := diceMocks.NewMockRoller(ctrl)
			if tt.roll != nil {
				roller.EXPECT().Chance(gomock.Any()).Return(*tt.roll)
			}

			assert.Equal(t, tt.want, Influence(roller, tt.votes, tt.outcome))
		})
	}
}

func boolPtr(b bool) *bool {
	return &b
}
