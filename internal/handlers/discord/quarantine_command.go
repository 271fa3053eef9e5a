package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/jailbird/internal/platform"
	"github.com/KirkDiggler/jailbird/internal/services/quarantine"
)

// QuarantineCommand handles the /quarantine command
type QuarantineCommand struct {
	BaseCommand
	quarantine quarantine.Service
	replies    *replier
}

// NewQuarantineCommand creates a new quarantine command handler
func NewQuarantineCommand(svc quarantine.Service, replies *replier) *QuarantineCommand {
	minMinutes := 0.0
	return &QuarantineCommand{
		BaseCommand: BaseCommand{
			Name:        "quarantine",
			Description: "Lock a member in a private cell",
			Permissions: platform.PermissionModerateMembers,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "target",
					Description: "Member to quarantine",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "reason",
					Description: "Why they are being locked up",
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "minutes",
					Description: "Sentence length, leave empty or 0 for indefinite",
					MinValue:    &minMinutes,
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "public",
					Description: "Mirror the cell to the jail cam",
				},
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "jailcam",
					Description:  "Jail cam to use when the server has none configured",
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
				},
			},
		},
		quarantine: svc,
		replies:    replies,
	}
}

// Handle processes a Discord interaction for the quarantine command
func (c *QuarantineCommand) Handle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !isModerator(i) {
		return c.replies.denied(ctx, s, i)
	}

	moderatorID, _ := invoker(i)
	opts := options(i)

	input := &quarantine.StartInput{
		GuildID:     i.GuildID,
		ModeratorID: moderatorID,
		Trigger:     "command",
	}
	if opt, ok := opts["target"]; ok {
		input.TargetID = opt.UserValue(nil).ID
	}
	if opt, ok := opts["reason"]; ok {
		input.Reason = opt.StringValue()
	}
	if opt, ok := opts["minutes"]; ok {
		input.DurationMinutes = int(opt.IntValue())
	}
	if opt, ok := opts["public"]; ok {
		input.PublicView = opt.BoolValue()
	}
	if opt, ok := opts["jailcam"]; ok {
		input.MirrorChannelID = opt.ChannelValue(nil).ID
	}

	// confinement touches every channel of the guild
	if err := Defer(s, i, false); err != nil {
		return err
	}

	output, err := c.quarantine.Start(ctx, input)
	if err != nil {
		return c.replies.failDeferred(ctx, s, i, err)
	}
	return EditWithEmbed(s, i, renderStart(output))
}

// UnquarantineCommand handles the /unquarantine command
type UnquarantineCommand struct {
	BaseCommand
	quarantine quarantine.Service
	replies    *replier
}

// NewUnquarantineCommand creates a new unquarantine command handler
func NewUnquarantineCommand(svc quarantine.Service, replies *replier) *UnquarantineCommand {
	return &UnquarantineCommand{
		BaseCommand: BaseCommand{
			Name:        "unquarantine",
			Description: "Release a member from their cell",
			Permissions: platform.PermissionModerateMembers,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "target",
					Description: "Member to release",
					Required:    true,
				},
			},
		},
		quarantine: svc,
		replies:    replies,
	}
}

// Handle processes a Discord interaction for the unquarantine command
func (c *UnquarantineCommand) Handle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !isModerator(i) {
		return c.replies.denied(ctx, s, i)
	}

	_, moderatorName := invoker(i)
	targetID := ""
	if opt, ok := options(i)["target"]; ok {
		targetID = opt.UserValue(nil).ID
	}

	if err := Defer(s, i, false); err != nil {
		return err
	}

	output, err := c.quarantine.Release(ctx, &quarantine.ReleaseInput{
		GuildID:  i.GuildID,
		TargetID: targetID,
		Reason:   fmt.Sprintf("released by %s", moderatorName),
	})
	if err != nil {
		return c.replies.failDeferred(ctx, s, i, err)
	}
	if !output.WasQuarantined {
		return c.replies.failDeferred(ctx, s, i, quarantine.ErrNotQuarantined)
	}
	return EditWithEmbed(s, i, renderRelease(output))
}

// QuarantineListCommand handles the /quarantinelist command
type QuarantineListCommand struct {
	BaseCommand
	quarantine quarantine.Service
	replies    *replier
}

// NewQuarantineListCommand creates a new quarantine list command handler
func NewQuarantineListCommand(svc quarantine.Service, replies *replier) *QuarantineListCommand {
	return &QuarantineListCommand{
		BaseCommand: BaseCommand{
			Name:        "quarantinelist",
			Description: "List everyone who is locked up",
			Permissions: platform.PermissionModerateMembers,
		},
		quarantine: svc,
		replies:    replies,
	}
}

// Handle processes a Discord interaction for the quarantine list command
func (c *QuarantineListCommand) Handle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !isModerator(i) {
		return c.replies.denied(ctx, s, i)
	}

	output, err := c.quarantine.List(ctx, &quarantine.ListInput{GuildID: i.GuildID})
	if err != nil {
		return c.replies.fail(ctx, s, i, err)
	}
	return RespondWithEphemeralEmbed(s, i, renderList(output))
}

// SetJailCamCommand handles the /setjailcam command
type SetJailCamCommand struct {
	BaseCommand
	quarantine quarantine.Service
	replies    *replier
}

// NewSetJailCamCommand creates a new set jail cam command handler
func NewSetJailCamCommand(svc quarantine.Service, replies *replier) *SetJailCamCommand {
	return &SetJailCamCommand{
		BaseCommand: BaseCommand{
			Name:        "setjailcam",
			Description: "Choose the channel public cells are mirrored to",
			Permissions: platform.PermissionManageServer,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "channel",
					Description:  "Jail cam channel, leave empty to clear",
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
				},
			},
		},
		quarantine: svc,
		replies:    replies,
	}
}

// Handle processes a Discord interaction for the set jail cam command
func (c *SetJailCamCommand) Handle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !isModerator(i) {
		return c.replies.denied(ctx, s, i)
	}

	channelID := ""
	if opt, ok := options(i)["channel"]; ok {
		channelID = opt.ChannelValue(nil).ID
	}

	output, err := c.quarantine.SetJailCam(ctx, &quarantine.SetJailCamInput{
		GuildID:   i.GuildID,
		ChannelID: channelID,
	})
	if err != nil {
		return c.replies.fail(ctx, s, i, err)
	}
	return RespondWithEphemeralEmbed(s, i, renderSettings(output.Settings))
}

// FreshAccountsCommand handles the /freshaccounts command
type FreshAccountsCommand struct {
	BaseCommand
	quarantine quarantine.Service
	replies    *replier
}

// NewFreshAccountsCommand creates a new fresh accounts command handler
func NewFreshAccountsCommand(svc quarantine.Service, replies *replier) *FreshAccountsCommand {
	minDays := 1.0
	return &FreshAccountsCommand{
		BaseCommand: BaseCommand{
			Name:        "freshaccounts",
			Description: "Quarantine newly created accounts when they join",
			Permissions: platform.PermissionManageServer,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "status",
					Description: "Show the current gate",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Configure the gate",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "enabled",
							Description: "Turn the gate on or off",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "age_days",
							Description: "Accounts younger than this are quarantined",
							MinValue:    &minDays,
						},
					},
				},
			},
		},
		quarantine: svc,
		replies:    replies,
	}
}

// Handle processes a Discord interaction for the fresh accounts command
func (c *FreshAccountsCommand) Handle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !isModerator(i) {
		return c.replies.denied(ctx, s, i)
	}

	sub := i.ApplicationCommandData().Options[0]
	switch sub.Name {
	case "status":
		output, err := c.quarantine.GetSettings(ctx, &quarantine.GetSettingsInput{GuildID: i.GuildID})
		if err != nil {
			return c.replies.fail(ctx, s, i, err)
		}
		return RespondWithEphemeralEmbed(s, i, renderSettings(output.Settings))

	case "set":
		input := &quarantine.SetFreshAccountsInput{GuildID: i.GuildID}
		for _, opt := range sub.Options {
			switch opt.Name {
			case "enabled":
				input.Enabled = opt.BoolValue()
			case "age_days":
				input.AgeThresholdDays = int(opt.IntValue())
			}
		}

		output, err := c.quarantine.SetFreshAccounts(ctx, input)
		if err != nil {
			return c.replies.fail(ctx, s, i, err)
		}
		return RespondWithEphemeralEmbed(s, i, renderSettings(output.Settings))
	}

	return RespondWithError(s, i, "Unknown subcommand")
}
