package spectator

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/jailbird/internal/services/spectator Service

import "context"

// Service counts jail cam reactions as votes on running prison breaks
type Service interface {
	// HandleReaction tallies a help or sabotage reaction
	HandleReaction(ctx context.Context, input *HandleReactionInput) (*HandleReactionOutput, error)
}
