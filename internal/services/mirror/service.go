package mirror

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/jailbird/internal/models"
	"github.com/KirkDiggler/jailbird/internal/platform"
	"github.com/KirkDiggler/jailbird/internal/services/quarantine"
)

type service struct {
	quarantine quarantine.Service
	platform   platform.Platform
	logger     *slog.Logger
}

// New creates a new mirror service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Quarantine == nil {
		return nil, ErrNilQuarantine
	}

	if cfg.Platform == nil {
		return nil, ErrNilPlatform
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		quarantine: cfg.Quarantine,
		platform:   cfg.Platform,
		logger:     logger.With("component", "mirror"),
	}, nil
}

// body is the message content followed by its attachment links
func body(content string, attachments []string) string {
	parts := make([]string, 0, len(attachments)+1)
	if content = strings.TrimSpace(content); content != "" {
		parts = append(parts, content)
	}
	parts = append(parts, attachments...)
	return strings.Join(parts, "\n")
}

// HandleMessage relays a message in whichever direction applies. Messages
// that cannot be relayed are dropped.
func (s *service) HandleMessage(ctx context.Context, input *HandleMessageInput) (*HandleMessageOutput, error) {
	output := &HandleMessageOutput{}
	if input == nil || input.AuthorBot || input.GuildID == "" {
		return output, nil
	}

	text := body(input.Content, input.AttachmentURLs)
	if text == "" {
		return output, nil
	}

	got, err := s.quarantine.Get(ctx, &quarantine.GetInput{GuildID: input.GuildID, MemberID: input.AuthorID})
	switch {
	case err == nil:
		return s.outbound(ctx, input, got.Record, text)
	case !errors.Is(err, quarantine.ErrNotQuarantined):
		return nil, err
	}

	return s.inbound(ctx, input, text)
}

// outbound copies a prisoner's cell message to the jail cam
func (s *service) outbound(ctx context.Context, input *HandleMessageInput, record *models.QuarantineRecord, text string) (*HandleMessageOutput, error) {
	output := &HandleMessageOutput{}
	if !record.PublicView || input.ChannelID != record.ConfinementChannelID {
		return output, nil
	}

	resolved, err := s.quarantine.ResolveMirrorChannel(ctx, &quarantine.ResolveMirrorChannelInput{Record: record})
	if err != nil {
		return nil, err
	}
	if resolved.ChannelID == "" {
		return output, nil
	}

	origin := input.ChannelID
	if channel, err := s.platform.Channel(ctx, input.ChannelID); err == nil {
		origin = channel.Name
	}

	content := fmt.Sprintf("%s in #%s said: %s", input.AuthorName, origin, text)
	if _, err := s.platform.SendMessage(ctx, resolved.ChannelID, content); err != nil {
		relayFailures.WithLabelValues(string(DirectionOutbound)).Inc()
		s.logger.Warn("failed to relay to jail cam", "guild", input.GuildID, "channel", resolved.ChannelID, "err", err)
		return output, nil
	}

	messagesRelayed.WithLabelValues(string(DirectionOutbound)).Inc()
	output.Direction = DirectionOutbound
	output.Delivered = 1
	return output, nil
}

// inbound copies a jail cam message into every cell watching it
func (s *service) inbound(ctx context.Context, input *HandleMessageInput, text string) (*HandleMessageOutput, error) {
	output := &HandleMessageOutput{}

	audience, err := s.quarantine.GetMirrorAudience(ctx, &quarantine.GetMirrorAudienceInput{
		GuildID:   input.GuildID,
		ChannelID: input.ChannelID,
	})
	if err != nil {
		return nil, err
	}
	if !audience.IsMirror || len(audience.Records) == 0 {
		return output, nil
	}

	content := fmt.Sprintf("%s from mirror says: %s", input.AuthorName, text)

	var delivered atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxFanout)
	for _, record := range audience.Records {
		channelID := record.ConfinementChannelID
		if channelID == "" {
			continue
		}
		g.Go(func() error {
			if _, err := s.platform.SendMessage(gctx, channelID, content); err != nil {
				relayFailures.WithLabelValues(string(DirectionInbound)).Inc()
				s.logger.Warn("failed to relay to cell", "guild", input.GuildID, "channel", channelID, "err", err)
				return nil
			}
			delivered.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	output.Delivered = int(delivered.Load())
	if output.Delivered == 0 {
		return output, nil
	}

	messagesRelayed.WithLabelValues(string(DirectionInbound)).Add(float64(output.Delivered))
	output.Direction = DirectionInbound

	if err := s.platform.AddReaction(ctx, input.ChannelID, input.MessageID, DeliveredEmoji); err != nil {
		s.logger.Warn("failed to acknowledge relayed message", "guild", input.GuildID, "message", input.MessageID, "err", err)
	}

	return output, nil
}
