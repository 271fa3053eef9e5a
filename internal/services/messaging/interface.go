package messaging

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetThrowMessage returns flavour text for an item thrown at a prisoner
	GetThrowMessage(ctx context.Context, input *GetThrowMessageInput) (*GetThrowMessageOutput, error)

	// GetReleaseMessage returns the announcement for a released member
	GetReleaseMessage(ctx context.Context, input *GetReleaseMessageInput) (*GetReleaseMessageOutput, error)

	// GetStageIntroMessage returns the briefing for a prison-break stage
	GetStageIntroMessage(ctx context.Context, input *GetStageIntroMessageInput) (*GetStageIntroMessageOutput, error)

	// GetAttemptMessage returns the reaction to an evaluated game attempt
	GetAttemptMessage(ctx context.Context, input *GetAttemptMessageInput) (*GetAttemptMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
