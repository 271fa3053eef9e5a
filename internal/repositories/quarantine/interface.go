package quarantine

import (
	"context"

	"github.com/KirkDiggler/jailbird/internal/models"
)

// Repository defines the interface for quarantine record persistence
type Repository interface {
	// SaveRecord persists a quarantine record
	SaveRecord(ctx context.Context, input *SaveRecordInput) error

	// GetRecord retrieves a member's quarantine record
	GetRecord(ctx context.Context, input *GetRecordInput) (*models.QuarantineRecord, error)

	// DeleteRecord removes a member's quarantine record
	DeleteRecord(ctx context.Context, input *DeleteRecordInput) error

	// ListRecords retrieves every quarantine record of a guild
	ListRecords(ctx context.Context, input *ListRecordsInput) (*ListRecordsOutput, error)

	// ListGuilds retrieves every guild with stored quarantine data
	ListGuilds(ctx context.Context, input *ListGuildsInput) (*ListGuildsOutput, error)

	// GetSettings retrieves a guild's settings, defaults when none are stored
	GetSettings(ctx context.Context, input *GetSettingsInput) (*models.ServerSettings, error)

	// SaveSettings persists a guild's settings
	SaveSettings(ctx context.Context, input *SaveSettingsInput) error
}
