package mirror

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/jailbird/internal/services/mirror Service

import "context"

// Service relays messages between confinement channels and the jail cam
type Service interface {
	// HandleMessage relays a message in whichever direction applies
	HandleMessage(ctx context.Context, input *HandleMessageInput) (*HandleMessageOutput, error)
}
