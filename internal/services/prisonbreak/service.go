package prisonbreak

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/jailbird/internal/common/clock"
	"github.com/KirkDiggler/jailbird/internal/common/keylock"
	"github.com/KirkDiggler/jailbird/internal/common/uuid"
	"github.com/KirkDiggler/jailbird/internal/dice"
	"github.com/KirkDiggler/jailbird/internal/models"
	"github.com/KirkDiggler/jailbird/internal/platform"
	gameRepo "github.com/KirkDiggler/jailbird/internal/repositories/prison_game"
	"github.com/KirkDiggler/jailbird/internal/services/messaging"
	"github.com/KirkDiggler/jailbird/internal/services/quarantine"
	"github.com/KirkDiggler/jailbird/internal/services/spectator"
)

// service implements the Service interface
type service struct {
	gameRepo      gameRepo.Repository
	quarantine    quarantine.Service
	platform      platform.Platform
	messaging     messaging.Service
	diceRoller    dice.Roller
	clock         clock.Clock
	uuidGenerator uuid.UUID
	locker        *keylock.Locker
	logger        *slog.Logger
}

// New creates a new prison-break service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.GameRepo == nil {
		return nil, ErrNilGameRepo
	}

	if cfg.Quarantine == nil {
		return nil, ErrNilQuarantine
	}

	if cfg.Platform == nil {
		return nil, ErrNilPlatform
	}

	if cfg.Messaging == nil {
		return nil, ErrNilMessaging
	}

	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	locker := cfg.Locker
	if locker == nil {
		locker = keylock.New()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		gameRepo:      cfg.GameRepo,
		quarantine:    cfg.Quarantine,
		platform:      cfg.Platform,
		messaging:     cfg.Messaging,
		diceRoller:    cfg.DiceRoller,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		locker:        locker,
		logger:        logger.With("component", "prisonbreak"),
	}, nil
}

// lockGuild serialises game creation and stopping within a guild
func (s *service) lockGuild(guildID string) func() {
	return s.locker.Lock("games", guildID)
}

func (s *service) lockGame(guildID, gameID string) func() {
	return s.locker.Lock("game", guildID, gameID)
}

func (s *service) activeGames(ctx context.Context, guildID string) ([]*models.GameSession, error) {
	active, err := s.gameRepo.GetActiveGames(ctx, &gameRepo.GetActiveGamesInput{GuildID: guildID})
	if err != nil {
		return nil, fmt.Errorf("failed to get active games: %w", err)
	}
	return active.Games, nil
}

// StartGame opens a game for one prisoner or every free prisoner
func (s *service) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, ErrMissingGuild
	}

	unlock := s.lockGuild(input.GuildID)
	defer unlock()

	active, err := s.activeGames(ctx, input.GuildID)
	if err != nil {
		return nil, err
	}

	busy := make(map[string]bool)
	for _, game := range active {
		for _, p := range game.Players {
			busy[p] = true
		}
	}

	var players []string
	if input.PlayerID != "" {
		if _, err := s.quarantine.Get(ctx, &quarantine.GetInput{GuildID: input.GuildID, MemberID: input.PlayerID}); err != nil {
			if errors.Is(err, quarantine.ErrNotQuarantined) {
				return nil, ErrPlayerNotQuarantined
			}
			return nil, err
		}
		if busy[input.PlayerID] {
			return nil, ErrPlayerAlreadyInGame
		}
		players = []string{input.PlayerID}
	} else {
		list, err := s.quarantine.List(ctx, &quarantine.ListInput{GuildID: input.GuildID})
		if err != nil {
			return nil, err
		}
		for _, entry := range list.Entries {
			if !busy[entry.Record.MemberID] {
				players = append(players, entry.Record.MemberID)
			}
		}
	}

	if len(players) == 0 {
		return nil, ErrNoEligiblePlayers
	}

	now := s.clock.Now()
	game := &models.GameSession{
		ID:                  s.uuidGenerator.NewUUID(),
		GuildID:             input.GuildID,
		Players:             players,
		Stage:               models.StageLockPicking,
		Challenge:           newChallenge(s.diceRoller, models.StageLockPicking),
		Active:              true,
		ChallengesCompleted: []int{},
		StartedBy:           input.StartedBy,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.gameRepo.SaveGame(ctx, &gameRepo.SaveGameInput{Game: game}); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	gamesStarted.Inc()
	s.logger.Info("prison break started", "guild", input.GuildID, "game", game.ID, "players", len(players))

	intro, err := s.messaging.GetStageIntroMessage(ctx, &messaging.GetStageIntroMessageInput{
		Stage:   game.Stage,
		Players: len(players),
	})
	if err != nil {
		return nil, err
	}
	s.announce(ctx, game, formatIntro(intro))

	return &StartGameOutput{
		Game:  game,
		Intro: intro,
	}, nil
}

// StopGame deactivates running games
func (s *service) StopGame(ctx context.Context, input *StopGameInput) (*StopGameOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, ErrMissingGuild
	}

	unlock := s.lockGuild(input.GuildID)
	defer unlock()

	active, err := s.activeGames(ctx, input.GuildID)
	if err != nil {
		return nil, err
	}

	output := &StopGameOutput{Stopped: []*models.GameSession{}}
	for _, candidate := range active {
		if input.PlayerID != "" && !candidate.HasPlayer(input.PlayerID) {
			continue
		}

		stopped, err := s.stop(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if stopped != nil {
			output.Stopped = append(output.Stopped, stopped)
		}
	}

	if len(output.Stopped) == 0 {
		return nil, ErrNoActiveGame
	}
	return output, nil
}

func (s *service) stop(ctx context.Context, candidate *models.GameSession) (*models.GameSession, error) {
	unlock := s.lockGame(candidate.GuildID, candidate.ID)
	defer unlock()

	game, err := s.gameRepo.GetGame(ctx, &gameRepo.GetGameInput{GuildID: candidate.GuildID, GameID: candidate.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if !game.Active {
		return nil, nil
	}

	game.Active = false
	game.UpdatedAt = s.clock.Now()

	if err := s.gameRepo.SaveGame(ctx, &gameRepo.SaveGameInput{Game: game}); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	s.logger.Info("prison break stopped", "guild", game.GuildID, "game", game.ID)
	return game, nil
}

// GetStatus describes the active games of a guild
func (s *service) GetStatus(ctx context.Context, input *GetStatusInput) (*GetStatusOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, ErrMissingGuild
	}

	active, err := s.activeGames(ctx, input.GuildID)
	if err != nil {
		return nil, err
	}

	output := &GetStatusOutput{Games: make([]*GameStatus, 0, len(active))}
	for _, game := range active {
		rules, _ := models.RulesFor(game.Stage)
		status := &GameStatus{Game: game, Rules: rules}

		for _, playerID := range game.Players {
			player := &PlayerStatus{MemberID: playerID}

			got, err := s.quarantine.Get(ctx, &quarantine.GetInput{GuildID: game.GuildID, MemberID: playerID})
			switch {
			case err == nil:
				player.Quarantined = true
				player.EndTime = got.Record.EndTime
				player.NetMinutes = got.NetMinutes
			case !errors.Is(err, quarantine.ErrNotQuarantined):
				return nil, err
			}

			status.Players = append(status.Players, player)
		}

		output.Games = append(output.Games, status)
	}

	return output, nil
}

// SubmitAttempt evaluates a prisoner's message against their game
func (s *service) SubmitAttempt(ctx context.Context, input *SubmitAttemptInput) (*SubmitAttemptOutput, error) {
	if input == nil || input.GuildID == "" || input.AuthorID == "" {
		return &SubmitAttemptOutput{}, nil
	}

	if _, err := s.quarantine.Get(ctx, &quarantine.GetInput{GuildID: input.GuildID, MemberID: input.AuthorID}); err != nil {
		if errors.Is(err, quarantine.ErrNotQuarantined) {
			return &SubmitAttemptOutput{}, nil
		}
		return nil, err
	}

	active, err := s.activeGames(ctx, input.GuildID)
	if err != nil {
		return nil, err
	}

	var candidate *models.GameSession
	for _, game := range active {
		if game.HasPlayer(input.AuthorID) {
			candidate = game
			break
		}
	}
	if candidate == nil {
		return &SubmitAttemptOutput{}, nil
	}

	unlock := s.lockGame(candidate.GuildID, candidate.ID)
	defer unlock()

	// the game may have been stopped or advanced while we waited
	game, err := s.gameRepo.GetGame(ctx, &gameRepo.GetGameInput{GuildID: candidate.GuildID, GameID: candidate.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if !game.AcceptsAttempts() || !game.HasPlayer(input.AuthorID) {
		return &SubmitAttemptOutput{}, nil
	}

	rules, _ := models.RulesFor(game.Stage)
	snapshot := game.Challenge.Clone()

	ev := evaluate(game, input.AuthorID, input.Content)

	output := &SubmitAttemptOutput{
		Routed:   true,
		GameID:   game.ID,
		Stage:    game.Stage,
		Outcome:  ev.outcome,
		Feedback: ev.feedback,
	}

	if ev.outcome == models.AttemptOutcomeIgnored {
		return output, nil
	}

	attempts.WithLabelValues(string(ev.outcome)).Inc()

	effect := spectator.Influence(s.diceRoller, game.SpectatorVotes, ev.outcome)
	switch effect {
	case spectator.EffectAided:
		game.Challenge = snapshot
		output.Outcome = models.AttemptOutcomeAided
		output.Feedback = ""
		output.Adjustments = s.adjust(ctx, game, []string{input.AuthorID},
			spectator.AidRewardPercent, models.DirectionReduce, models.AdjustmentReasonSpectatorHelp)

	case spectator.EffectSabotaged:
		game.Challenge = snapshot
		output.Outcome = models.AttemptOutcomeSabotaged
		output.Adjustments = s.adjust(ctx, game, []string{input.AuthorID},
			spectator.SabotagePenaltyPercent, models.DirectionExtend, models.AdjustmentReasonSpectatorSabotage)

	default:
		switch ev.outcome {
		case models.AttemptOutcomeStageWon:
			output.Adjustments = s.adjust(ctx, game, s.affected(game, input.AuthorID),
				rules.RewardPercent, models.DirectionReduce, models.AdjustmentReasonStageWon)
			if err := s.advance(ctx, game, output); err != nil {
				return nil, err
			}

		case models.AttemptOutcomeThreshold:
			output.Adjustments = s.adjust(ctx, game, s.affected(game, input.AuthorID),
				rules.PenaltyPercent, models.DirectionExtend, models.AdjustmentReasonStageFailed)
		}
	}

	if effect != spectator.EffectNone {
		spectatorEffects.WithLabelValues(string(effect)).Inc()
	}

	game.UpdatedAt = s.clock.Now()
	if err := s.gameRepo.SaveGame(ctx, &gameRepo.SaveGameInput{Game: game}); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	msg, err := s.messaging.GetAttemptMessage(ctx, &messaging.GetAttemptMessageInput{
		PlayerName: input.AuthorName,
		Outcome:    output.Outcome,
		Stage:      output.Stage,
	})
	if err != nil {
		return nil, err
	}
	output.Message = msg.Message

	return output, nil
}

// affected is who a stage's reward or penalty applies to: the great escape
// is shared by every player, earlier stages only touch the attempting player
func (s *service) affected(game *models.GameSession, authorID string) []string {
	if game.Stage == models.StageGreatEscape {
		return append([]string(nil), game.Players...)
	}
	return []string{authorID}
}

// advance moves a won game to its next stage or completes it
func (s *service) advance(ctx context.Context, game *models.GameSession, output *SubmitAttemptOutput) error {
	game.ChallengesCompleted = append(game.ChallengesCompleted, game.Stage)
	game.SpectatorVotes = models.SpectatorVotes{}

	if game.Stage == models.StageGreatEscape {
		game.Completed = true
		game.Active = false
		game.Challenge = nil
		output.Outcome = models.AttemptOutcomeEscaped
		output.Completed = true

		gamesCompleted.Inc()
		s.logger.Info("prison break completed", "guild", game.GuildID, "game", game.ID)
		return nil
	}

	game.Stage++
	game.Challenge = newChallenge(s.diceRoller, game.Stage)

	intro, err := s.messaging.GetStageIntroMessage(ctx, &messaging.GetStageIntroMessageInput{
		Stage:   game.Stage,
		Players: len(game.Players),
	})
	if err != nil {
		return err
	}
	output.NextStage = intro
	s.announce(ctx, game, formatIntro(intro))
	return nil
}

func formatIntro(intro *messaging.GetStageIntroMessageOutput) string {
	return fmt.Sprintf("**%s**\n%s", intro.Title, intro.Message)
}

// announce posts to the cell of every player still quarantined
func (s *service) announce(ctx context.Context, game *models.GameSession, content string) {
	channels := make([]string, 0, len(game.Players))
	for _, playerID := range game.Players {
		got, err := s.quarantine.Get(ctx, &quarantine.GetInput{GuildID: game.GuildID, MemberID: playerID})
		if err != nil {
			if !errors.Is(err, quarantine.ErrNotQuarantined) {
				s.logger.Warn("failed to look up player cell", "guild", game.GuildID, "member", playerID, "err", err)
			}
			continue
		}
		channels = append(channels, got.Record.ConfinementChannelID)
	}
	s.post(ctx, channels, content)
}

// adjust applies a sentence change to each member. Players released in the
// meantime are skipped.
func (s *service) adjust(ctx context.Context, game *models.GameSession, memberIDs []string, percent int, direction models.Direction, reason models.AdjustmentReason) []*PlayerAdjustment {
	adjustments := make([]*PlayerAdjustment, 0, len(memberIDs))
	for _, memberID := range memberIDs {
		adjusted, err := s.quarantine.AdjustSentence(ctx, &quarantine.AdjustSentenceInput{
			GuildID:   game.GuildID,
			TargetID:  memberID,
			Percent:   percent,
			Direction: direction,
			Reason:    reason,
			GameID:    game.ID,
		})
		if err != nil {
			s.logger.Warn("failed to adjust sentence", "guild", game.GuildID, "game", game.ID, "member", memberID, "err", err)
			continue
		}

		adjustment := &PlayerAdjustment{
			MemberID:  memberID,
			Direction: direction,
			Percent:   percent,
		}
		if adjusted.Applied {
			adjustment.Minutes = adjusted.Minutes
		}
		adjustments = append(adjustments, adjustment)
	}
	return adjustments
}

// CollectStale drops released players from games and ends empty games
func (s *service) CollectStale(ctx context.Context, input *CollectStaleInput) (*CollectStaleOutput, error) {
	guilds, err := s.gameRepo.ListGuilds(ctx, &gameRepo.ListGuildsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list guilds: %w", err)
	}

	output := &CollectStaleOutput{}
	for _, guildID := range guilds.GuildIDs {
		active, err := s.activeGames(ctx, guildID)
		if err != nil {
			s.logger.Error("failed to list active games", "guild", guildID, "err", err)
			continue
		}

		for _, candidate := range active {
			removed, deactivated, err := s.collect(ctx, candidate)
			if err != nil {
				s.logger.Error("failed to collect stale game", "guild", guildID, "game", candidate.ID, "err", err)
				continue
			}
			output.PlayersRemoved += removed
			if deactivated {
				output.GamesDeactivated++
			}
		}
	}

	return output, nil
}

func (s *service) collect(ctx context.Context, candidate *models.GameSession) (int, bool, error) {
	unlock := s.lockGame(candidate.GuildID, candidate.ID)
	defer unlock()

	game, err := s.gameRepo.GetGame(ctx, &gameRepo.GetGameInput{GuildID: candidate.GuildID, GameID: candidate.ID})
	if err != nil {
		return 0, false, err
	}
	if !game.Active {
		return 0, false, nil
	}

	kept := make([]string, 0, len(game.Players))
	for _, playerID := range game.Players {
		_, err := s.quarantine.Get(ctx, &quarantine.GetInput{GuildID: game.GuildID, MemberID: playerID})
		switch {
		case err == nil:
			kept = append(kept, playerID)
		case errors.Is(err, quarantine.ErrNotQuarantined):
		default:
			return 0, false, err
		}
	}

	removed := len(game.Players) - len(kept)
	if removed == 0 {
		return 0, false, nil
	}

	game.Players = kept
	if game.Challenge != nil && game.Challenge.Escape != nil {
		ready := make([]string, 0, len(game.Challenge.Escape.Ready))
		for _, id := range game.Challenge.Escape.Ready {
			if game.HasPlayer(id) {
				ready = append(ready, id)
			}
		}
		game.Challenge.Escape.Ready = ready
	}

	deactivated := len(kept) == 0
	if deactivated {
		game.Active = false
	}
	game.UpdatedAt = s.clock.Now()

	if err := s.gameRepo.SaveGame(ctx, &gameRepo.SaveGameInput{Game: game}); err != nil {
		return 0, false, err
	}

	s.logger.Info("collected stale players", "guild", game.GuildID, "game", game.ID, "removed", removed, "deactivated", deactivated)
	return removed, deactivated, nil
}
