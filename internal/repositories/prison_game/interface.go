package prison_game

import (
	"context"

	"github.com/KirkDiggler/jailbird/internal/models"
)

// Repository defines the interface for prison-break game persistence
type Repository interface {
	// SaveGame persists a game
	SaveGame(ctx context.Context, input *SaveGameInput) error

	// GetGame retrieves a game by ID
	GetGame(ctx context.Context, input *GetGameInput) (*models.GameSession, error)

	// DeleteGame removes a game
	DeleteGame(ctx context.Context, input *DeleteGameInput) error

	// ListGames retrieves every game of a guild, active or not
	ListGames(ctx context.Context, input *ListGamesInput) (*ListGamesOutput, error)

	// GetActiveGames retrieves the active games of a guild
	GetActiveGames(ctx context.Context, input *GetActiveGamesInput) (*GetActiveGamesOutput, error)

	// ListGuilds retrieves every guild with stored games
	ListGuilds(ctx context.Context, input *ListGuildsInput) (*ListGuildsOutput, error)
}
