package platform

import (
	"errors"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Permission bits used when confining members
const (
	PermissionViewChannel        = discordgo.PermissionViewChannel
	PermissionSendMessages       = discordgo.PermissionSendMessages
	PermissionReadMessageHistory = discordgo.PermissionReadMessageHistory
	PermissionAdministrator      = discordgo.PermissionAdministrator
	PermissionManageServer       = discordgo.PermissionManageServer
	PermissionBanMembers         = discordgo.PermissionBanMembers
	PermissionKickMembers        = discordgo.PermissionKickMembers
	PermissionModerateMembers    = discordgo.PermissionModerateMembers
)

// ElevatedPermissions is the set of permissions that marks a member as staff
const ElevatedPermissions = PermissionAdministrator |
	PermissionManageServer |
	PermissionBanMembers |
	PermissionKickMembers |
	PermissionModerateMembers

// ErrNotFound is returned when a channel or member does not exist
var ErrNotFound = errors.New("platform entity not found")

// Channel is a guild channel
type Channel struct {
	ID      string
	GuildID string
	Name    string

	// Text is false for voice channels and categories
	Text bool
}

// Member is a guild member
type Member struct {
	ID       string
	GuildID  string
	Username string

	// DisplayName is the nick when set, otherwise the global or user name
	DisplayName string

	// Roles excludes the implicit @everyone role
	Roles []string

	Bot bool

	// AccountCreatedAt is derived from the user snowflake
	AccountCreatedAt time.Time
}
