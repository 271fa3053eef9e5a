package spectator

import (
	"log/slog"
	"strings"

	"github.com/KirkDiggler/jailbird/internal/common/clock"
	"github.com/KirkDiggler/jailbird/internal/common/keylock"
	"github.com/KirkDiggler/jailbird/internal/platform"
	gameRepo "github.com/KirkDiggler/jailbird/internal/repositories/prison_game"
	"github.com/KirkDiggler/jailbird/internal/services/quarantine"
)

// Signal is what a reaction means to the crowd
type Signal string

const (
	SignalNone     Signal = ""
	SignalHelp     Signal = "help"
	SignalSabotage Signal = "sabotage"
)

var (
	// HelpEmojis cheer the prisoners on
	HelpEmojis = []string{"🙏", "💪", "🗝️"}

	// SabotageEmojis tip off the guards
	SabotageEmojis = []string{"👎", "🚨", "🔒"}
)

const variationSelector = "\ufe0f"

// SignalFor maps an emoji to its signal. Variation selectors are ignored so
// clients that drop them still count.
func SignalFor(emoji string) Signal {
	emoji = strings.ReplaceAll(emoji, variationSelector, "")
	for _, e := range HelpEmojis {
		if strings.ReplaceAll(e, variationSelector, "") == emoji {
			return SignalHelp
		}
	}
	for _, e := range SabotageEmojis {
		if strings.ReplaceAll(e, variationSelector, "") == emoji {
			return SignalSabotage
		}
	}
	return SignalNone
}

// Config holds configuration for the spectator service
type Config struct {
	GameRepo   gameRepo.Repository
	Quarantine quarantine.Service
	Platform   platform.Platform
	Clock      clock.Clock

	// Locker must be the one the prison-break service uses
	Locker *keylock.Locker

	// Logger is optional, defaults to slog.Default()
	Logger *slog.Logger
}

// HandleReactionInput contains a reaction added to a message
type HandleReactionInput struct {
	GuildID   string
	ChannelID string
	MessageID string
	UserID    string
	Emoji     string
}

// HandleReactionOutput describes what a reaction did
type HandleReactionOutput struct {
	Signal Signal

	// Counted is true when the vote reached at least one game
	Counted bool

	// Removed is true when the reaction was taken down
	Removed bool

	// Games is the number of games the vote was added to
	Games int
}
