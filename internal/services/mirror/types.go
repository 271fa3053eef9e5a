package mirror

import (
	"log/slog"

	"github.com/KirkDiggler/jailbird/internal/platform"
	"github.com/KirkDiggler/jailbird/internal/services/quarantine"
)

// Direction is which way a message was relayed
type Direction string

const (
	DirectionNone     Direction = ""
	DirectionOutbound Direction = "outbound"
	DirectionInbound  Direction = "inbound"
)

// DeliveredEmoji acknowledges a jail cam message that reached the cells
const DeliveredEmoji = "✅"

// maxFanout bounds concurrent deliveries into confinement channels
const maxFanout = 4

// Config holds configuration for the mirror service
type Config struct {
	Quarantine quarantine.Service
	Platform   platform.Platform

	// Logger is optional, defaults to slog.Default()
	Logger *slog.Logger
}

// HandleMessageInput contains a message posted in a guild
type HandleMessageInput struct {
	GuildID   string
	ChannelID string
	MessageID string

	AuthorID   string
	AuthorName string
	AuthorBot  bool

	Content        string
	AttachmentURLs []string
}

// HandleMessageOutput describes what was relayed
type HandleMessageOutput struct {
	Direction Direction

	// Delivered is the number of channels the copy reached
	Delivered int
}
