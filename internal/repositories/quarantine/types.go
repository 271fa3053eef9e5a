package quarantine

import "github.com/KirkDiggler/jailbird/internal/models"

type SaveRecordInput struct {
	Record *models.QuarantineRecord
}

type GetRecordInput struct {
	GuildID  string
	MemberID string
}

type DeleteRecordInput struct {
	GuildID  string
	MemberID string
}

type ListRecordsInput struct {
	GuildID string
}

type ListRecordsOutput struct {
	Records []*models.QuarantineRecord
}

type ListGuildsInput struct {
}

type ListGuildsOutput struct {
	GuildIDs []string
}

type GetSettingsInput struct {
	GuildID string
}

type SaveSettingsInput struct {
	Settings *models.ServerSettings
}
