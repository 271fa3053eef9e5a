package platform

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// DiscordConfig holds configuration for the Discord platform adapter
type DiscordConfig struct {
	// Session is an opened or unopened discordgo session
	Session *discordgo.Session

	// RequestsPerSecond throttles REST calls, defaults to 10
	RequestsPerSecond float64

	// ChannelCacheTTL bounds how stale a cached channel name may be, defaults to 10m
	ChannelCacheTTL time.Duration
}

// Discord implements Platform on a discordgo session
type Discord struct {
	session  *discordgo.Session
	limiter  *rate.Limiter
	channels *expirable.LRU[string, *Channel]
}

// NewDiscord creates the Discord adapter
func NewDiscord(cfg *DiscordConfig) (*Discord, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Session == nil {
		return nil, errors.New("session cannot be nil")
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}

	ttl := cfg.ChannelCacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	return &Discord{
		session:  cfg.Session,
		limiter:  newLimiter(rps),
		channels: expirable.NewLRU[string, *Channel](1024, nil, ttl),
	}, nil
}

// newLimiter allows at least one request per burst so fractional rates still pass
func newLimiter(rps float64) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(rps), max(1, int(math.Ceil(rps))))
}

// wait blocks on the shared limiter and returns the request options carrying ctx
func (d *Discord) wait(ctx context.Context, reason string) ([]discordgo.RequestOption, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	opts := []discordgo.RequestOption{discordgo.WithContext(ctx)}
	if reason != "" {
		opts = append(opts, discordgo.WithAuditLogReason(reason))
	}
	return opts, nil
}

func translate(err error) error {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}

func toChannel(c *discordgo.Channel) *Channel {
	return &Channel{
		ID:      c.ID,
		GuildID: c.GuildID,
		Name:    c.Name,
		Text:    c.Type == discordgo.ChannelTypeGuildText || c.Type == discordgo.ChannelTypeGuildNews,
	}
}

// GuildChannels lists every channel of a guild
func (d *Discord) GuildChannels(ctx context.Context, guildID string) ([]*Channel, error) {
	opts, err := d.wait(ctx, "")
	if err != nil {
		return nil, err
	}

	channels, err := d.session.GuildChannels(guildID, opts...)
	if err != nil {
		return nil, translate(err)
	}

	out := make([]*Channel, 0, len(channels))
	for _, c := range channels {
		ch := toChannel(c)
		d.channels.Add(ch.ID, ch)
		out = append(out, ch)
	}
	return out, nil
}

// Channel looks a channel up by ID, served from cache when fresh
func (d *Discord) Channel(ctx context.Context, channelID string) (*Channel, error) {
	if ch, ok := d.channels.Get(channelID); ok {
		return ch, nil
	}

	opts, err := d.wait(ctx, "")
	if err != nil {
		return nil, err
	}

	c, err := d.session.Channel(channelID, opts...)
	if err != nil {
		return nil, translate(err)
	}

	ch := toChannel(c)
	d.channels.Add(ch.ID, ch)
	return ch, nil
}

// CreateTextChannel creates a text channel in a guild
func (d *Discord) CreateTextChannel(ctx context.Context, guildID, name, reason string) (*Channel, error) {
	opts, err := d.wait(ctx, reason)
	if err != nil {
		return nil, err
	}

	c, err := d.session.GuildChannelCreate(guildID, name, discordgo.ChannelTypeGuildText, opts...)
	if err != nil {
		return nil, translate(err)
	}

	ch := toChannel(c)
	d.channels.Add(ch.ID, ch)
	return ch, nil
}

// Member looks a guild member up by ID
func (d *Discord) Member(ctx context.Context, guildID, userID string) (*Member, error) {
	opts, err := d.wait(ctx, "")
	if err != nil {
		return nil, err
	}

	m, err := d.session.GuildMember(guildID, userID, opts...)
	if err != nil {
		return nil, translate(err)
	}

	return toMember(guildID, m), nil
}

func toMember(guildID string, m *discordgo.Member) *Member {
	member := &Member{
		GuildID: guildID,
		Roles:   append([]string(nil), m.Roles...),
	}

	if m.User != nil {
		member.ID = m.User.ID
		member.Username = m.User.Username
		member.Bot = m.User.Bot
		member.DisplayName = m.User.Username
		if m.User.GlobalName != "" {
			member.DisplayName = m.User.GlobalName
		}
		if created, err := discordgo.SnowflakeTimestamp(m.User.ID); err == nil {
			member.AccountCreatedAt = created
		}
	}

	if m.Nick != "" {
		member.DisplayName = m.Nick
	}

	return member
}

// MemberPermissions returns the guild-level permission bits of a member:
// the union of @everyone and every role the member holds
func (d *Discord) MemberPermissions(ctx context.Context, guildID, userID string) (int64, error) {
	opts, err := d.wait(ctx, "")
	if err != nil {
		return 0, err
	}

	guild, err := d.session.Guild(guildID, opts...)
	if err != nil {
		return 0, translate(err)
	}

	if guild.OwnerID == userID {
		return discordgo.PermissionAll, nil
	}

	member, err := d.session.GuildMember(guildID, userID, opts...)
	if err != nil {
		return 0, translate(err)
	}

	held := make(map[string]bool, len(member.Roles)+1)
	held[guildID] = true // @everyone shares the guild ID
	for _, roleID := range member.Roles {
		held[roleID] = true
	}

	var perms int64
	for _, role := range guild.Roles {
		if held[role.ID] {
			perms |= role.Permissions
		}
	}

	if perms&discordgo.PermissionAdministrator != 0 {
		return discordgo.PermissionAll, nil
	}
	return perms, nil
}

// SetMemberOverride writes a per-member permission override on a channel
func (d *Discord) SetMemberOverride(ctx context.Context, channelID, userID string, allow, deny int64, reason string) error {
	opts, err := d.wait(ctx, reason)
	if err != nil {
		return err
	}

	return translate(d.session.ChannelPermissionSet(channelID, userID, discordgo.PermissionOverwriteTypeMember, allow, deny, opts...))
}

// RestrictChannel hides a channel from @everyone and lets the bot and the
// given members see and write in it
func (d *Discord) RestrictChannel(ctx context.Context, guildID, channelID string, memberIDs []string, reason string) error {
	var selfID string
	if d.session.State != nil && d.session.State.User != nil {
		selfID = d.session.State.User.ID
	}

	for _, o := range restrictedOverwrites(guildID, selfID, memberIDs) {
		opts, err := d.wait(ctx, reason)
		if err != nil {
			return err
		}
		if err := d.session.ChannelPermissionSet(channelID, o.ID, o.Type, o.Allow, o.Deny, opts...); err != nil {
			return translate(err)
		}
	}
	return nil
}

// restrictedOverwrites denies @everyone first so the channel is never left
// half open, then allows the bot and each distinct member
func restrictedOverwrites(guildID, selfID string, memberIDs []string) []*discordgo.PermissionOverwrite {
	overwrites := []*discordgo.PermissionOverwrite{{
		ID:   guildID,
		Type: discordgo.PermissionOverwriteTypeRole,
		Deny: PermissionViewChannel,
	}}

	seen := map[string]bool{guildID: true}
	for _, id := range append([]string{selfID}, memberIDs...) {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    id,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: PermissionViewChannel | PermissionSendMessages | PermissionReadMessageHistory,
		})
	}
	return overwrites
}

// ClearMemberOverride removes a per-member permission override from a channel
func (d *Discord) ClearMemberOverride(ctx context.Context, channelID, userID, reason string) error {
	opts, err := d.wait(ctx, reason)
	if err != nil {
		return err
	}

	return translate(d.session.ChannelPermissionDelete(channelID, userID, opts...))
}

// AddRole grants a role to a member
func (d *Discord) AddRole(ctx context.Context, guildID, userID, roleID, reason string) error {
	opts, err := d.wait(ctx, reason)
	if err != nil {
		return err
	}

	return translate(d.session.GuildMemberRoleAdd(guildID, userID, roleID, opts...))
}

// RemoveRole revokes a role from a member
func (d *Discord) RemoveRole(ctx context.Context, guildID, userID, roleID, reason string) error {
	opts, err := d.wait(ctx, reason)
	if err != nil {
		return err
	}

	return translate(d.session.GuildMemberRoleRemove(guildID, userID, roleID, opts...))
}

// SendMessage posts a message and returns its ID
func (d *Discord) SendMessage(ctx context.Context, channelID, content string) (string, error) {
	opts, err := d.wait(ctx, "")
	if err != nil {
		return "", err
	}

	msg, err := d.session.ChannelMessageSend(channelID, content, opts...)
	if err != nil {
		return "", translate(err)
	}
	return msg.ID, nil
}

// AddReaction reacts to a message as the bot
func (d *Discord) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	opts, err := d.wait(ctx, "")
	if err != nil {
		return err
	}

	return translate(d.session.MessageReactionAdd(channelID, messageID, emoji, opts...))
}

// RemoveReaction removes a user's reaction from a message
func (d *Discord) RemoveReaction(ctx context.Context, channelID, messageID, emoji, userID string) error {
	opts, err := d.wait(ctx, "")
	if err != nil {
		return err
	}

	return translate(d.session.MessageReactionRemove(channelID, messageID, emoji, userID, opts...))
}
