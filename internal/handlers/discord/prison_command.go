package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/jailbird/internal/services/prisonbreak"
)

// ThrowCommand handles the /throw command
type ThrowCommand struct {
	BaseCommand
	prisonBreak prisonbreak.Service
	replies     *replier
}

// NewThrowCommand creates a new throw command handler
func NewThrowCommand(svc prisonbreak.Service, replies *replier) *ThrowCommand {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(prisonbreak.Items))
	for _, item := range prisonbreak.Items {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: item, Value: item})
	}

	return &ThrowCommand{
		BaseCommand: BaseCommand{
			Name:        "throw",
			Description: "Throw something at a prisoner",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "item",
					Description: "What to throw",
					Required:    true,
					Choices:     choices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "target",
					Description: "Prisoner to aim at, random jail cam prisoner when empty",
				},
			},
		},
		prisonBreak: svc,
		replies:     replies,
	}
}

// Handle processes a Discord interaction for the throw command
func (c *ThrowCommand) Handle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	throwerID, throwerName := invoker(i)
	opts := options(i)

	input := &prisonbreak.ThrowInput{
		GuildID:     i.GuildID,
		ThrowerID:   throwerID,
		ThrowerName: throwerName,
	}
	if opt, ok := opts["item"]; ok {
		input.Item = opt.StringValue()
	}
	if opt, ok := opts["target"]; ok {
		input.TargetID = opt.UserValue(nil).ID
	}

	output, err := c.prisonBreak.Throw(ctx, input)
	if err != nil {
		return c.replies.fail(ctx, s, i, err)
	}

	reply := fmt.Sprintf("Your %s sailed into %s's cell.", input.Item, mention(output.TargetID))
	if output.Offer != nil {
		reply += " It felt heavier than a cake should..."
	}
	return RespondWithEphemeralMessage(s, i, reply)
}

// PrisonBreakCommand handles the /prisonbreak command
type PrisonBreakCommand struct {
	BaseCommand
	prisonBreak prisonbreak.Service
	replies     *replier
}

// NewPrisonBreakCommand creates a new prison break command handler
func NewPrisonBreakCommand(svc prisonbreak.Service, replies *replier) *PrisonBreakCommand {
	target := func(description string) []*discordgo.ApplicationCommandOption {
		return []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "target",
				Description: description,
			},
		}
	}

	return &PrisonBreakCommand{
		BaseCommand: BaseCommand{
			Name:        "prisonbreak",
			Description: "Run an escape attempt for quarantined members",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Start a prison break",
					Options:     target("Single prisoner to play, every free prisoner when empty"),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "stop",
					Description: "Stop running prison breaks",
					Options:     target("Only stop the game this prisoner is in"),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "status",
					Description: "Show running prison breaks",
				},
			},
		},
		prisonBreak: svc,
		replies:     replies,
	}
}

// Handle processes a Discord interaction for the prison break command
func (c *PrisonBreakCommand) Handle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return RespondWithError(s, i, "Unknown subcommand")
	}

	sub := data.Options[0]
	targetID := ""
	for _, opt := range sub.Options {
		if opt.Name == "target" {
			targetID = opt.UserValue(nil).ID
		}
	}

	switch sub.Name {
	case "start":
		return c.handleStart(ctx, s, i, targetID)
	case "stop":
		return c.handleStop(ctx, s, i, targetID)
	case "status":
		return c.handleStatus(ctx, s, i)
	}

	return RespondWithError(s, i, "Unknown subcommand")
}

func (c *PrisonBreakCommand) handleStart(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, targetID string) error {
	if !isModerator(i) {
		return c.replies.denied(ctx, s, i)
	}

	moderatorID, _ := invoker(i)

	// the stage briefing is posted to every cell first
	if err := Defer(s, i, false); err != nil {
		return err
	}

	output, err := c.prisonBreak.StartGame(ctx, &prisonbreak.StartGameInput{
		GuildID:   i.GuildID,
		StartedBy: moderatorID,
		PlayerID:  targetID,
	})
	if err != nil {
		return c.replies.failDeferred(ctx, s, i, err)
	}
	return EditWithEmbed(s, i, renderGameStart(output))
}

func (c *PrisonBreakCommand) handleStop(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, targetID string) error {
	if !isModerator(i) {
		return c.replies.denied(ctx, s, i)
	}

	output, err := c.prisonBreak.StopGame(ctx, &prisonbreak.StopGameInput{
		GuildID:  i.GuildID,
		PlayerID: targetID,
	})
	if err != nil {
		return c.replies.fail(ctx, s, i, err)
	}

	return RespondWithEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "🛑 Prison break called off",
		Description: fmt.Sprintf("Stopped %d game(s). The guards are back on patrol.", len(output.Stopped)),
		Color:       colorInfo,
	})
}

func (c *PrisonBreakCommand) handleStatus(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	output, err := c.prisonBreak.GetStatus(ctx, &prisonbreak.GetStatusInput{GuildID: i.GuildID})
	if err != nil {
		return c.replies.fail(ctx, s, i, err)
	}
	return RespondWithEphemeralEmbed(s, i, renderGameStatus(output))
}

// PrisonHelpCommand handles the /prisonhelp command
type PrisonHelpCommand struct {
	BaseCommand
}

// NewPrisonHelpCommand creates a new prison help command handler
func NewPrisonHelpCommand() *PrisonHelpCommand {
	return &PrisonHelpCommand{
		BaseCommand: BaseCommand{
			Name:        "prisonhelp",
			Description: "Explain quarantine, the jail cam and prison breaks",
		},
	}
}

// Handle processes a Discord interaction for the prison help command
func (c *PrisonHelpCommand) Handle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return RespondWithEphemeralEmbed(s, i, renderHelp())
}
