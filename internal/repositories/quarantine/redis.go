package quarantine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/KirkDiggler/jailbird/internal/models"
	"github.com/KirkDiggler/jailbird/internal/repositories/records"
	"github.com/redis/go-redis/v9"
)

// Collection is the record store collection holding quarantine records and
// server settings
const Collection = "quarantine"

// ErrRecordNotFound is returned when a member has no quarantine record
var ErrRecordNotFound = errors.New("quarantine record not found")

// Config holds configuration for the Redis quarantine repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// Logger is optional
	Logger *slog.Logger
}

// redisRepository implements the Repository interface on the record store
type redisRepository struct {
	store records.Store
}

// NewRedis creates a new Redis-backed quarantine repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	store, err := records.NewRedis(&records.Config{
		RedisClient: cfg.RedisClient,
		Collection:  Collection,
		Logger:      cfg.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &redisRepository{
		store: store,
	}, nil
}

// SaveRecord persists a quarantine record
func (r *redisRepository) SaveRecord(ctx context.Context, input *SaveRecordInput) error {
	if input == nil || input.Record == nil {
		return errors.New("input and record cannot be nil")
	}

	record := input.Record
	if record.GuildID == "" || record.MemberID == "" {
		return errors.New("guild ID and member ID cannot be empty")
	}

	if record.MemberID == models.ServerSettingsKey {
		return errors.New("member ID collides with the settings key")
	}

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal quarantine record: %w", err)
	}

	return r.store.Put(ctx, record.GuildID, record.MemberID, recordJSON)
}

// GetRecord retrieves a member's quarantine record
func (r *redisRepository) GetRecord(ctx context.Context, input *GetRecordInput) (*models.QuarantineRecord, error) {
	if input == nil || input.GuildID == "" || input.MemberID == "" {
		return nil, errors.New("input, guild ID and member ID cannot be empty")
	}

	if input.MemberID == models.ServerSettingsKey {
		return nil, ErrRecordNotFound
	}

	recordJSON, err := r.store.Get(ctx, input.GuildID, input.MemberID)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get quarantine record: %w", err)
	}

	var record models.QuarantineRecord
	if err := json.Unmarshal(recordJSON, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quarantine record: %w", err)
	}

	return &record, nil
}

// DeleteRecord removes a member's quarantine record
func (r *redisRepository) DeleteRecord(ctx context.Context, input *DeleteRecordInput) error {
	if input == nil || input.GuildID == "" || input.MemberID == "" {
		return errors.New("input, guild ID and member ID cannot be empty")
	}

	if input.MemberID == models.ServerSettingsKey {
		return errors.New("refusing to delete the settings key as a record")
	}

	return r.store.Delete(ctx, input.GuildID, input.MemberID)
}

// ListRecords retrieves every quarantine record of a guild, skipping the
// settings entry that shares the collection
func (r *redisRepository) ListRecords(ctx context.Context, input *ListRecordsInput) (*ListRecordsOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	entries, err := r.store.List(ctx, input.GuildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quarantine records: %w", err)
	}

	out := make([]*models.QuarantineRecord, 0, len(entries))
	for key, recordJSON := range entries {
		if key == models.ServerSettingsKey {
			continue
		}

		var record models.QuarantineRecord
		if err := json.Unmarshal(recordJSON, &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal quarantine record %s: %w", key, err)
		}
		out = append(out, &record)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return &ListRecordsOutput{
		Records: out,
	}, nil
}

// ListGuilds retrieves every guild with stored quarantine data
func (r *redisRepository) ListGuilds(ctx context.Context, input *ListGuildsInput) (*ListGuildsOutput, error) {
	guildIDs, err := r.store.Communities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list guilds: %w", err)
	}

	return &ListGuildsOutput{
		GuildIDs: guildIDs,
	}, nil
}

// GetSettings retrieves a guild's settings
func (r *redisRepository) GetSettings(ctx context.Context, input *GetSettingsInput) (*models.ServerSettings, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	settingsJSON, err := r.store.Get(ctx, input.GuildID, models.ServerSettingsKey)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return &models.ServerSettings{GuildID: input.GuildID}, nil
		}
		return nil, fmt.Errorf("failed to get server settings: %w", err)
	}

	var settings models.ServerSettings
	if err := json.Unmarshal(settingsJSON, &settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal server settings: %w", err)
	}

	return &settings, nil
}

// SaveSettings persists a guild's settings
func (r *redisRepository) SaveSettings(ctx context.Context, input *SaveSettingsInput) error {
	if input == nil || input.Settings == nil || input.Settings.GuildID == "" {
		return errors.New("input, settings and guild ID cannot be empty")
	}

	settingsJSON, err := json.Marshal(input.Settings)
	if err != nil {
		return fmt.Errorf("failed to marshal server settings: %w", err)
	}

	return r.store.Put(ctx, input.Settings.GuildID, models.ServerSettingsKey, settingsJSON)
}
