package isolation

import (
	"log/slog"

	"github.com/KirkDiggler/jailbird/internal/platform"
)

// Config holds configuration for the isolation service
type Config struct {
	// Platform reaches the guild's channels and members
	Platform platform.Platform

	// Logger is optional, defaults to slog.Default()
	Logger *slog.Logger
}

// Failure describes one sub-operation the platform refused
type Failure struct {
	// Op is the sub-operation, e.g. "deny_channel" or "remove_role"
	Op string

	// Target is the channel or role ID the operation addressed
	Target string

	// Err is the platform error
	Err error
}

// ConfineInput contains parameters for confining a member
type ConfineInput struct {
	GuildID  string
	MemberID string

	// AllowedChannelID is the one channel the member keeps access to
	AllowedChannelID string

	// Reason is recorded in the guild audit log
	Reason string
}

// ConfineOutput contains the result of confining a member
type ConfineOutput struct {
	// StrippedRoles are the roles actually removed, to be restored on release
	StrippedRoles []string

	// Attempted is the number of platform sub-operations tried
	Attempted int

	// Failures are the sub-operations that did not apply
	Failures []Failure
}

// ReleaseInput contains parameters for releasing a member
type ReleaseInput struct {
	GuildID  string
	MemberID string

	// RestoreRoles are re-granted after the overrides are cleared
	RestoreRoles []string

	Reason string
}

// ReleaseOutput contains the result of releasing a member
type ReleaseOutput struct {
	Attempted int
	Failures  []Failure
}
