package sentence_ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/jailbird/internal/models"
)

const (
	// Key prefixes for Redis
	entryKeyPrefix  = "jailbird:ledger_entry:"
	memberKeyPrefix = "jailbird:ledger:"
	netKeyPrefix    = "jailbird:ledger_net:"
)

// Config holds configuration for the Redis sentence ledger repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed sentence ledger repository
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

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func memberKey(guildID, memberID string) string {
	return fmt.Sprintf("%s%s:%s", memberKeyPrefix, guildID, memberID)
}

func netKey(guildID string) string {
	return fmt.Sprintf("%s%s", netKeyPrefix, guildID)
}

// AddAdjustment appends an adjustment to a member's ledger
func (r *redisRepository) AddAdjustment(ctx context.Context, input *AddAdjustmentInput) error {
	if input == nil || input.Adjustment == nil {
		return errors.New("input and adjustment cannot be nil")
	}

	adjustment := input.Adjustment
	if adjustment.ID == "" {
		return errors.New("adjustment ID cannot be empty")
	}

	if adjustment.GuildID == "" || adjustment.MemberID == "" {
		return errors.New("guild ID and member ID cannot be empty")
	}

	adjustmentJSON, err := json.Marshal(adjustment)
	if err != nil {
		return fmt.Errorf("failed to marshal adjustment: %w", err)
	}

	pipe := r.client.Pipeline()

	pipe.Set(ctx, entryKeyPrefix+adjustment.ID, adjustmentJSON, 0)

	// Ordered by time so the ledger reads oldest first
	pipe.ZAdd(ctx, memberKey(adjustment.GuildID, adjustment.MemberID), redis.Z{
		Score:  float64(adjustment.Timestamp.UnixNano()),
		Member: adjustment.ID,
	})

	pipe.HIncrBy(ctx, netKey(adjustment.GuildID), adjustment.MemberID, int64(adjustment.Minutes))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add adjustment: %w", err)
	}

	return nil
}

// GetAdjustments retrieves a member's adjustments, oldest first
func (r *redisRepository) GetAdjustments(ctx context.Context, input *GetAdjustmentsInput) (*GetAdjustmentsOutput, error) {
	if input == nil || input.GuildID == "" || input.MemberID == "" {
		return nil, errors.New("input, guild ID and member ID cannot be empty")
	}

	ids, err := r.client.ZRange(ctx, memberKey(input.GuildID, input.MemberID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get adjustment IDs: %w", err)
	}

	net, err := r.client.HGet(ctx, netKey(input.GuildID), input.MemberID).Int()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get net adjustment: %w", err)
	}

	if len(ids) == 0 {
		return &GetAdjustmentsOutput{
			Adjustments: []*models.SentenceAdjustment{},
			NetMinutes:  net,
		}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, entryKeyPrefix+id)
	}

	// redis.Nil from a vanished entry surfaces per command below
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get adjustments: %w", err)
	}

	adjustments := make([]*models.SentenceAdjustment, 0, len(ids))
	for i, cmd := range cmds {
		adjustmentJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get adjustment %s: %w", ids[i], err)
		}

		var adjustment models.SentenceAdjustment
		if err := json.Unmarshal([]byte(adjustmentJSON), &adjustment); err != nil {
			return nil, fmt.Errorf("failed to unmarshal adjustment %s: %w", ids[i], err)
		}
		adjustments = append(adjustments, &adjustment)
	}

	return &GetAdjustmentsOutput{
		Adjustments: adjustments,
		NetMinutes:  net,
	}, nil
}

// ClearMember removes every adjustment of a member
func (r *redisRepository) ClearMember(ctx context.Context, input *ClearMemberInput) error {
	if input == nil || input.GuildID == "" || input.MemberID == "" {
		return errors.New("input, guild ID and member ID cannot be empty")
	}

	key := memberKey(input.GuildID, input.MemberID)
	ids, err := r.client.ZRange(ctx, key, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("failed to get adjustment IDs: %w", err)
	}

	pipe := r.client.Pipeline()
	for _, id := range ids {
		pipe.Del(ctx, entryKeyPrefix+id)
	}
	pipe.Del(ctx, key)
	pipe.HDel(ctx, netKey(input.GuildID), input.MemberID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear ledger: %w", err)
	}

	return nil
}
