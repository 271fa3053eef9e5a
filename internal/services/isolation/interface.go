package isolation

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/jailbird/internal/services/isolation Service

import "context"

// Service confines a member to a single channel and undoes it again
type Service interface {
	// Confine denies the member every channel but the allowed one and strips their roles
	Confine(ctx context.Context, input *ConfineInput) (*ConfineOutput, error)

	// Release clears the member's overrides and restores the given roles
	Release(ctx context.Context, input *ReleaseInput) (*ReleaseOutput, error)
}
