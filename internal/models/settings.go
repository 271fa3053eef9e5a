package models

// ServerSettings is per-guild configuration stored next to the quarantine
// records
type ServerSettings struct {
	// GuildID is the guild these settings belong to
	GuildID string

	// JailCamChannelID is the configured mirror channel. It takes priority
	// over every other mirror resolution source.
	JailCamChannelID string

	// FreshAccounts controls auto-quarantine of newly created accounts
	FreshAccounts FreshAccountSettings
}

// FreshAccountSettings configures the new-account gate
type FreshAccountSettings struct {
	// Enabled turns the gate on
	Enabled bool

	// AgeThresholdDays is the minimum account age to pass the gate
	AgeThresholdDays int
}
