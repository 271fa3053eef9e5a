package quarantine

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/jailbird/internal/services/quarantine Service

import "context"

// Service manages quarantine records from start to release
type Service interface {
	// Start confines a member and persists their quarantine record
	Start(ctx context.Context, input *StartInput) (*StartOutput, error)

	// Release restores a member's access and deletes their record
	Release(ctx context.Context, input *ReleaseInput) (*ReleaseOutput, error)

	// Get retrieves a member's quarantine record
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// List retrieves every quarantine record of a guild
	List(ctx context.Context, input *ListInput) (*ListOutput, error)

	// AdjustSentence moves a timed sentence by a percentage of its original length
	AdjustSentence(ctx context.Context, input *AdjustSentenceInput) (*AdjustSentenceOutput, error)

	// ExpireDue releases every record whose sentence has been served
	ExpireDue(ctx context.Context, input *ExpireDueInput) (*ExpireDueOutput, error)

	// GetMirrorAudience reports whether a channel is a jail cam and who it mirrors
	GetMirrorAudience(ctx context.Context, input *GetMirrorAudienceInput) (*GetMirrorAudienceOutput, error)

	// ResolveMirrorChannel returns the jail cam a record currently mirrors to
	ResolveMirrorChannel(ctx context.Context, input *ResolveMirrorChannelInput) (*ResolveMirrorChannelOutput, error)

	// GetSettings retrieves a guild's settings
	GetSettings(ctx context.Context, input *GetSettingsInput) (*GetSettingsOutput, error)

	// SetJailCam configures or clears the guild's jail cam channel
	SetJailCam(ctx context.Context, input *SetJailCamInput) (*SetJailCamOutput, error)

	// SetFreshAccounts configures the new-account gate
	SetFreshAccounts(ctx context.Context, input *SetFreshAccountsInput) (*SetFreshAccountsOutput, error)

	// AdmitMember applies the new-account gate to a joining member
	AdmitMember(ctx context.Context, input *AdmitMemberInput) (*AdmitMemberOutput, error)

	// OfferChallenge attaches an ad-hoc reward task to a prisoner
	OfferChallenge(ctx context.Context, input *OfferChallengeInput) (*OfferChallengeOutput, error)

	// CompleteChallenge checks a prisoner's message against their open offers
	CompleteChallenge(ctx context.Context, input *CompleteChallengeInput) (*CompleteChallengeOutput, error)
}
