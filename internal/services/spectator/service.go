package spectator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/jailbird/internal/common/clock"
	"github.com/KirkDiggler/jailbird/internal/common/keylock"
	"github.com/KirkDiggler/jailbird/internal/models"
	"github.com/KirkDiggler/jailbird/internal/platform"
	gameRepo "github.com/KirkDiggler/jailbird/internal/repositories/prison_game"
	"github.com/KirkDiggler/jailbird/internal/services/quarantine"
)

type service struct {
	gameRepo   gameRepo.Repository
	quarantine quarantine.Service
	platform   platform.Platform
	clock      clock.Clock
	locker     *keylock.Locker
	logger     *slog.Logger
}

// New creates a new spectator service
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

	if cfg.Clock == nil {
		return nil, ErrNilClock
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
		gameRepo:   cfg.GameRepo,
		quarantine: cfg.Quarantine,
		platform:   cfg.Platform,
		clock:      cfg.Clock,
		locker:     locker,
		logger:     logger.With("component", "spectator"),
	}, nil
}

// HandleReaction tallies a help or sabotage reaction
func (s *service) HandleReaction(ctx context.Context, input *HandleReactionInput) (*HandleReactionOutput, error) {
	if input == nil {
		return &HandleReactionOutput{}, nil
	}

	signal := SignalFor(input.Emoji)
	output := &HandleReactionOutput{Signal: signal}
	if signal == SignalNone || input.GuildID == "" {
		return output, nil
	}

	audience, err := s.quarantine.GetMirrorAudience(ctx, &quarantine.GetMirrorAudienceInput{
		GuildID:   input.GuildID,
		ChannelID: input.ChannelID,
	})
	if err != nil {
		return nil, err
	}
	if !audience.IsMirror {
		return output, nil
	}

	active, err := s.gameRepo.GetActiveGames(ctx, &gameRepo.GetActiveGamesInput{GuildID: input.GuildID})
	if err != nil {
		return nil, fmt.Errorf("failed to get active games: %w", err)
	}
	if len(active.Games) == 0 {
		return output, nil
	}

	// prisoners cannot vote on their own escape
	_, err = s.quarantine.Get(ctx, &quarantine.GetInput{GuildID: input.GuildID, MemberID: input.UserID})
	switch {
	case err == nil:
		votesRejected.Inc()
		if err := s.platform.RemoveReaction(ctx, input.ChannelID, input.MessageID, input.Emoji, input.UserID); err != nil {
			s.logger.Warn("failed to remove prisoner reaction", "guild", input.GuildID, "member", input.UserID, "err", err)
			return output, nil
		}
		output.Removed = true
		return output, nil
	case !errors.Is(err, quarantine.ErrNotQuarantined):
		return nil, err
	}

	for _, candidate := range active.Games {
		counted, err := s.vote(ctx, candidate, signal)
		if err != nil {
			s.logger.Error("failed to record vote", "guild", input.GuildID, "game", candidate.ID, "err", err)
			continue
		}
		if counted {
			output.Games++
		}
	}

	output.Counted = output.Games > 0
	if output.Counted {
		votesCounted.WithLabelValues(string(signal)).Inc()
	}
	return output, nil
}

func (s *service) vote(ctx context.Context, candidate *models.GameSession, signal Signal) (bool, error) {
	unlock := s.locker.Lock("game", candidate.GuildID, candidate.ID)
	defer unlock()

	game, err := s.gameRepo.GetGame(ctx, &gameRepo.GetGameInput{GuildID: candidate.GuildID, GameID: candidate.ID})
	if err != nil {
		return false, err
	}
	if !game.Active {
		return false, nil
	}

	switch signal {
	case SignalHelp:
		game.SpectatorVotes.Help++
	case SignalSabotage:
		game.SpectatorVotes.Sabotage++
	}
	game.UpdatedAt = s.clock.Now()

	if err := s.gameRepo.SaveGame(ctx, &gameRepo.SaveGameInput{Game: game}); err != nil {
		return false, err
	}
	return true, nil
}
