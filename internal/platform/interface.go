// Package platform is the boundary between jailbird and the hosting chat
// platform. Services only see this interface; the Discord adapter lives in
// discord.go.
package platform

//go:generate mockgen -package=mocks -destination=mocks/mock_platform.go github.com/KirkDiggler/jailbird/internal/platform Platform

import (
	"context"
)

// Platform defines the directory, permission and messaging primitives used
// by the quarantine subsystem
type Platform interface {
	// GuildChannels lists every channel of a guild
	GuildChannels(ctx context.Context, guildID string) ([]*Channel, error)

	// Channel looks a channel up by ID
	Channel(ctx context.Context, channelID string) (*Channel, error)

	// CreateTextChannel creates a text channel in a guild
	CreateTextChannel(ctx context.Context, guildID, name, reason string) (*Channel, error)

	// Member looks a guild member up by ID
	Member(ctx context.Context, guildID, userID string) (*Member, error)

	// MemberPermissions returns the guild-level permission bits of a member
	MemberPermissions(ctx context.Context, guildID, userID string) (int64, error)

	// SetMemberOverride writes a per-member permission override on a channel
	SetMemberOverride(ctx context.Context, channelID, userID string, allow, deny int64, reason string) error

	// RestrictChannel hides a channel from @everyone, leaving it to the bot
	// and the given members
	RestrictChannel(ctx context.Context, guildID, channelID string, memberIDs []string, reason string) error

	// ClearMemberOverride removes a per-member permission override from a channel
	ClearMemberOverride(ctx context.Context, channelID, userID, reason string) error

	// AddRole grants a role to a member
	AddRole(ctx context.Context, guildID, userID, roleID, reason string) error

	// RemoveRole revokes a role from a member
	RemoveRole(ctx context.Context, guildID, userID, roleID, reason string) error

	// SendMessage posts a message and returns its ID
	SendMessage(ctx context.Context, channelID, content string) (string, error)

	// AddReaction reacts to a message as the bot
	AddReaction(ctx context.Context, channelID, messageID, emoji string) error

	// RemoveReaction removes a user's reaction from a message
	RemoveReaction(ctx context.Context, channelID, messageID, emoji, userID string) error
}
