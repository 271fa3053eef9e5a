package isolation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/jailbird/internal/platform"
)

const confinedPermissions = platform.PermissionViewChannel | platform.PermissionSendMessages

type service struct {
	platform platform.Platform
	logger   *slog.Logger
}

// New creates a new isolation service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Platform == nil {
		return nil, ErrNilPlatform
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		platform: cfg.Platform,
		logger:   logger.With("component", "isolation"),
	}, nil
}

// batch runs platform sub-operations, recording failures without stopping
type batch struct {
	logger    *slog.Logger
	attempted int
	failures  []Failure
}

func (b *batch) run(op, target string, fn func() error) bool {
	b.attempted++
	subOperations.WithLabelValues(op).Inc()

	err := fn()
	if err == nil {
		return true
	}

	subOperationFailures.WithLabelValues(op).Inc()
	b.logger.Warn("isolation sub-operation failed", "op", op, "target", target, "err", err)
	b.failures = append(b.failures, Failure{Op: op, Target: target, Err: err})
	return false
}

// Confine denies the member every channel but the allowed one and strips their roles
func (s *service) Confine(ctx context.Context, input *ConfineInput) (*ConfineOutput, error) {
	if input == nil || input.MemberID == "" {
		return nil, ErrMissingMember
	}

	channels, err := s.platform.GuildChannels(ctx, input.GuildID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrChannelDirectoryFailed, err)
	}

	b := &batch{logger: s.logger.With("guild", input.GuildID, "member", input.MemberID)}

	for _, ch := range channels {
		if ch.ID == input.AllowedChannelID {
			continue
		}
		b.run("deny_channel", ch.ID, func() error {
			return s.platform.SetMemberOverride(ctx, ch.ID, input.MemberID, 0, confinedPermissions, input.Reason)
		})
	}

	// a freshly created cell may not be listed yet
	if input.AllowedChannelID != "" {
		b.run("allow_channel", input.AllowedChannelID, func() error {
			return s.platform.SetMemberOverride(ctx, input.AllowedChannelID, input.MemberID, confinedPermissions, 0, input.Reason)
		})
	}

	output := &ConfineOutput{StrippedRoles: []string{}}

	var member *platform.Member
	ok := b.run("lookup_member", input.MemberID, func() error {
		var lookupErr error
		member, lookupErr = s.platform.Member(ctx, input.GuildID, input.MemberID)
		return lookupErr
	})
	if ok {
		for _, roleID := range member.Roles {
			// @everyone shares the guild ID and cannot be removed
			if roleID == input.GuildID {
				continue
			}
			if b.run("remove_role", roleID, func() error {
				return s.platform.RemoveRole(ctx, input.GuildID, input.MemberID, roleID, input.Reason)
			}) {
				output.StrippedRoles = append(output.StrippedRoles, roleID)
			}
		}
	}

	output.Attempted = b.attempted
	output.Failures = b.failures
	return output, nil
}

// Release clears the member's overrides and restores the given roles
func (s *service) Release(ctx context.Context, input *ReleaseInput) (*ReleaseOutput, error) {
	if input == nil || input.MemberID == "" {
		return nil, ErrMissingMember
	}

	channels, err := s.platform.GuildChannels(ctx, input.GuildID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrChannelDirectoryFailed, err)
	}

	b := &batch{logger: s.logger.With("guild", input.GuildID, "member", input.MemberID)}

	for _, ch := range channels {
		b.run("clear_override", ch.ID, func() error {
			err := s.platform.ClearMemberOverride(ctx, ch.ID, input.MemberID, input.Reason)
			if errors.Is(err, platform.ErrNotFound) {
				return nil
			}
			return err
		})
	}

	for _, roleID := range input.RestoreRoles {
		b.run("restore_role", roleID, func() error {
			return s.platform.AddRole(ctx, input.GuildID, input.MemberID, roleID, input.Reason)
		})
	}

	return &ReleaseOutput{
		Attempted: b.attempted,
		Failures:  b.failures,
	}, nil
}
