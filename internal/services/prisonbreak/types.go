package prisonbreak

import (
	"log/slog"
	"time"

	"github.com/KirkDiggler/jailbird/internal/common/clock"
	"github.com/KirkDiggler/jailbird/internal/common/keylock"
	"github.com/KirkDiggler/jailbird/internal/common/uuid"
	"github.com/KirkDiggler/jailbird/internal/dice"
	"github.com/KirkDiggler/jailbird/internal/models"
	"github.com/KirkDiggler/jailbird/internal/platform"
	gameRepo "github.com/KirkDiggler/jailbird/internal/repositories/prison_game"
	"github.com/KirkDiggler/jailbird/internal/services/messaging"
	"github.com/KirkDiggler/jailbird/internal/services/quarantine"
)

// Items are the things a free member can throw at a prisoner
var Items = []string{"tomato", "flower", "cake", "pillow", "rubber duck"}

// ItemCake hides a file: throwing it offers the prisoner a challenge
const ItemCake = "cake"

const (
	// CakeRewardPercent is the reduction for solving a cake challenge
	CakeRewardPercent = 5

	// CakeChallengeTTL is how long a cake challenge stays open
	CakeChallengeTTL = 10 * time.Minute
)

// cakeWords are scrambled into cake challenges
var cakeWords = []string{"freedom", "warden", "tunnel", "shovel", "prison", "escape", "keys", "bars", "parole"}

// Config holds configuration for the prison-break service
type Config struct {
	// Repository dependencies
	GameRepo gameRepo.Repository

	// Service dependencies
	Quarantine quarantine.Service
	Platform   platform.Platform
	Messaging  messaging.Service

	DiceRoller    dice.Roller
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// Locker is shared with the quarantine service, a new one is created when nil
	Locker *keylock.Locker

	// Logger is optional, defaults to slog.Default()
	Logger *slog.Logger
}

// StartGameInput contains parameters for starting a game
type StartGameInput struct {
	GuildID   string
	StartedBy string

	// PlayerID limits the game to one prisoner, empty for every free prisoner
	PlayerID string
}

// StartGameOutput contains the started game
type StartGameOutput struct {
	Game *models.GameSession

	// Intro is the stage 1 briefing
	Intro *messaging.GetStageIntroMessageOutput
}

// StopGameInput contains parameters for stopping games
type StopGameInput struct {
	GuildID string

	// PlayerID limits the stop to games with this player
	PlayerID string
}

// StopGameOutput lists the stopped games
type StopGameOutput struct {
	Stopped []*models.GameSession
}

// GetStatusInput contains parameters for a status read
type GetStatusInput struct {
	GuildID string
}

// PlayerStatus is one player's sentence inside a game status
type PlayerStatus struct {
	MemberID string

	// EndTime is nil for indefinite sentences or released players
	EndTime *time.Time

	// NetMinutes is the sum of every adjustment so far
	NetMinutes int

	// Quarantined is false once the player has been released
	Quarantined bool
}

// GameStatus describes one active game
type GameStatus struct {
	Game    *models.GameSession
	Rules   models.StageRules
	Players []*PlayerStatus
}

// GetStatusOutput contains the active games of a guild
type GetStatusOutput struct {
	Games []*GameStatus
}

// SubmitAttemptInput contains a message that may be a game attempt
type SubmitAttemptInput struct {
	GuildID    string
	AuthorID   string
	AuthorName string
	Content    string
}

// PlayerAdjustment is a sentence change caused by an attempt
type PlayerAdjustment struct {
	MemberID  string
	Direction models.Direction
	Percent   int

	// Minutes is zero when the player has no timed sentence
	Minutes int
}

// SubmitAttemptOutput contains the result of an attempt
type SubmitAttemptOutput struct {
	// Routed is false when the author is not playing, nothing was evaluated
	Routed bool

	GameID string

	// Stage is the stage the attempt was made in
	Stage int

	Outcome models.AttemptOutcome

	// Feedback is a hint about the attempt, may be empty
	Feedback string

	// Message is the narrated reaction to the attempt
	Message string

	Adjustments []*PlayerAdjustment

	// NextStage is the briefing for the stage just unlocked, nil otherwise
	NextStage *messaging.GetStageIntroMessageOutput

	// Completed is true once the great escape succeeds
	Completed bool
}

// ThrowInput contains parameters for throwing an item
type ThrowInput struct {
	GuildID     string
	ThrowerID   string
	ThrowerName string
	Item        string

	// TargetID picks a random public prisoner when empty
	TargetID string
}

// ThrowOutput contains the result of a throw
type ThrowOutput struct {
	TargetID string
	Message  string

	// Offer is set when a cake carried a challenge
	Offer *models.ChallengeOffer
}

// CollectStaleInput contains parameters for a stale game sweep
type CollectStaleInput struct {
}

// CollectStaleOutput summarises a stale game sweep
type CollectStaleOutput struct {
	PlayersRemoved   int
	GamesDeactivated int
}
