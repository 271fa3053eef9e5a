package prison_game

import "github.com/KirkDiggler/jailbird/internal/models"

type SaveGameInput struct {
	Game *models.GameSession
}

type GetGameInput struct {
	GuildID string
	GameID  string
}

type DeleteGameInput struct {
	GuildID string
	GameID  string
}

type ListGamesInput struct {
	GuildID string
}

type ListGamesOutput struct {
	Games []*models.GameSession
}

type GetActiveGamesInput struct {
	GuildID string
}

type GetActiveGamesOutput struct {
	Games []*models.GameSession
}

type ListGuildsInput struct {
}

type ListGuildsOutput struct {
	GuildIDs []string
}
