package prisonbreak

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/jailbird/internal/services/prisonbreak Service

import "context"

// Service runs prison-break games for quarantined members
type Service interface {
	// StartGame opens a game for one prisoner or every free prisoner
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// StopGame deactivates running games
	StopGame(ctx context.Context, input *StopGameInput) (*StopGameOutput, error)

	// GetStatus describes the active games of a guild
	GetStatus(ctx context.Context, input *GetStatusInput) (*GetStatusOutput, error)

	// SubmitAttempt evaluates a prisoner's message against their game
	SubmitAttempt(ctx context.Context, input *SubmitAttemptInput) (*SubmitAttemptOutput, error)

	// Throw lets a free member throw an item at a prisoner
	Throw(ctx context.Context, input *ThrowInput) (*ThrowOutput, error)

	// CollectStale drops released players from games and ends empty games
	CollectStale(ctx context.Context, input *CollectStaleInput) (*CollectStaleOutput, error)
}
