package prison_game

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

// Collection is the record store collection holding game sessions
const Collection = "prison_game"

// ErrGameNotFound is returned when a game is not found
var ErrGameNotFound = errors.New("game not found")

// Config holds configuration for the Redis game repository
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

// NewRedis creates a new Redis-backed game repository
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

// SaveGame persists a game
func (r *redisRepository) SaveGame(ctx context.Context, input *SaveGameInput) error {
	if input == nil || input.Game == nil {
		return errors.New("input and game cannot be nil")
	}

	if input.Game.GuildID == "" || input.Game.ID == "" {
		return errors.New("guild ID and game ID cannot be empty")
	}

	gameJSON, err := json.Marshal(input.Game)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	return r.store.Put(ctx, input.Game.GuildID, input.Game.ID, gameJSON)
}

// GetGame retrieves a game by ID
func (r *redisRepository) GetGame(ctx context.Context, input *GetGameInput) (*models.GameSession, error) {
	if input == nil || input.GuildID == "" || input.GameID == "" {
		return nil, errors.New("input, guild ID and game ID cannot be empty")
	}

	gameJSON, err := r.store.Get(ctx, input.GuildID, input.GameID)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var game models.GameSession
	if err := json.Unmarshal(gameJSON, &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}

// DeleteGame removes a game
func (r *redisRepository) DeleteGame(ctx context.Context, input *DeleteGameInput) error {
	if input == nil || input.GuildID == "" || input.GameID == "" {
		return errors.New("input, guild ID and game ID cannot be empty")
	}

	return r.store.Delete(ctx, input.GuildID, input.GameID)
}

// ListGames retrieves every game of a guild ordered by creation time
func (r *redisRepository) ListGames(ctx context.Context, input *ListGamesInput) (*ListGamesOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	entries, err := r.store.List(ctx, input.GuildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	games := make([]*models.GameSession, 0, len(entries))
	for gameID, gameJSON := range entries {
		var game models.GameSession
		if err := json.Unmarshal(gameJSON, &game); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game %s: %w", gameID, err)
		}
		games = append(games, &game)
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].CreatedAt.Before(games[j].CreatedAt)
	})

	return &ListGamesOutput{
		Games: games,
	}, nil
}

// GetActiveGames retrieves the active games of a guild
func (r *redisRepository) GetActiveGames(ctx context.Context, input *GetActiveGamesInput) (*GetActiveGamesOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	all, err := r.ListGames(ctx, &ListGamesInput{GuildID: input.GuildID})
	if err != nil {
		return nil, err
	}

	games := make([]*models.GameSession, 0, len(all.Games))
	for _, game := range all.Games {
		if game.Active {
			games = append(games, game)
		}
	}

	return &GetActiveGamesOutput{
		Games: games,
	}, nil
}

// ListGuilds retrieves every guild with stored games
func (r *redisRepository) ListGuilds(ctx context.Context, input *ListGuildsInput) (*ListGuildsOutput, error) {
	guildIDs, err := r.store.Communities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list guilds: %w", err)
	}

	return &ListGuildsOutput{
		GuildIDs: guildIDs,
	}, nil
}
