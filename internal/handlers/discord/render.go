package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/jailbird/internal/models"
	"github.com/KirkDiggler/jailbird/internal/platform"
	"github.com/KirkDiggler/jailbird/internal/services/isolation"
	"github.com/KirkDiggler/jailbird/internal/services/messaging"
	"github.com/KirkDiggler/jailbird/internal/services/prisonbreak"
	"github.com/KirkDiggler/jailbird/internal/services/quarantine"
	"github.com/KirkDiggler/jailbird/internal/services/spectator"
)

// maxListedFailures keeps failure summaries inside an embed field
const maxListedFailures = 5

// errorType picks the flavour text family for a service error, empty when
// the error text itself is fit to show
func errorType(err error) string {
	switch {
	case errors.Is(err, quarantine.ErrNotQuarantined),
		errors.Is(err, prisonbreak.ErrPlayerNotQuarantined),
		errors.Is(err, prisonbreak.ErrTargetNotQuarantined):
		return "not_quarantined"
	case errors.Is(err, quarantine.ErrAlreadyQuarantined):
		return "already_quarantined"
	case errors.Is(err, quarantine.ErrElevatedTarget):
		return "elevated_target"
	case errors.Is(err, prisonbreak.ErrNoActiveGame):
		return "no_game"
	case errors.Is(err, prisonbreak.ErrNoEligiblePlayers):
		return "no_players"
	}

	var qe quarantine.QuarantineError
	var ge prisonbreak.GameError
	if errors.As(err, &qe) || errors.As(err, &ge) {
		return ""
	}
	return "default"
}

func mention(userID string) string {
	return "<@" + userID + ">"
}

func channelMention(channelID string) string {
	return "<#" + channelID + ">"
}

// formatSentence describes when a record ends
func formatSentence(record *models.QuarantineRecord) string {
	if record.EndTime == nil {
		return "Indefinite"
	}
	return fmt.Sprintf("<t:%d:R>", record.EndTime.Unix())
}

// formatNet renders a signed ledger total
func formatNet(minutes int) string {
	switch {
	case minutes < 0:
		return fmt.Sprintf("%d min", minutes)
	case minutes > 0:
		return fmt.Sprintf("+%d min", minutes)
	}
	return "none"
}

func formatFailures(attempted int, failures []isolation.Failure) string {
	if len(failures) == 0 {
		return fmt.Sprintf("%d of %d changes applied", attempted, attempted)
	}

	lines := []string{fmt.Sprintf("%d of %d changes applied", attempted-len(failures), attempted)}
	for n, f := range failures {
		if n == maxListedFailures {
			lines = append(lines, fmt.Sprintf("...and %d more", len(failures)-maxListedFailures))
			break
		}
		lines = append(lines, fmt.Sprintf("`%s` on %s: %v", f.Op, f.Target, f.Err))
	}
	return strings.Join(lines, "\n")
}

func renderStart(output *quarantine.StartOutput) *discordgo.MessageEmbed {
	record := output.Record
	embed := &discordgo.MessageEmbed{
		Title:       "🔒 Quarantined",
		Description: fmt.Sprintf("%s has been locked up.", mention(record.MemberID)),
		Color:       colorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Cell", Value: channelMention(record.ConfinementChannelID), Inline: true},
			{Name: "Release", Value: formatSentence(record), Inline: true},
		},
	}

	if record.Reason != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Reason", Value: record.Reason})
	}

	if record.PublicView && record.MirrorChannelID != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Jail cam",
			Value:  channelMention(record.MirrorChannelID),
			Inline: true,
		})
	}

	if output.IsolationErr != nil {
		embed.Color = colorWarning
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "⚠️ Confinement failed",
			Value: fmt.Sprintf("The record was kept but permissions were not changed: %v", output.IsolationErr),
		})
		return embed
	}

	if len(output.Failures) > 0 {
		embed.Color = colorWarning
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Permissions",
		Value: formatFailures(output.Attempted, output.Failures),
	})
	return embed
}

func renderRelease(output *quarantine.ReleaseOutput) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "🔓 Released",
		Description: fmt.Sprintf("%s is free to go.", mention(output.Record.MemberID)),
		Color:       colorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Permissions", Value: formatFailures(output.Attempted, output.Failures)},
		},
	}
	if len(output.Failures) > 0 {
		embed.Color = colorWarning
	}
	return embed
}

func renderList(output *quarantine.ListOutput) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🏢 Cell block",
		Color: colorInfo,
	}

	if len(output.Entries) == 0 {
		embed.Description = "Nobody is locked up."
		return embed
	}

	lines := make([]string, 0, len(output.Entries))
	for _, entry := range output.Entries {
		line := fmt.Sprintf("%s in %s, release %s, adjusted %s",
			mention(entry.Record.MemberID),
			channelMention(entry.Record.ConfinementChannelID),
			formatSentence(entry.Record),
			formatNet(entry.NetMinutes))
		if entry.Record.PublicView {
			line += " 📺"
		}
		lines = append(lines, line)
	}
	embed.Description = strings.Join(lines, "\n")
	return embed
}

func renderSettings(settings *models.ServerSettings) *discordgo.MessageEmbed {
	jailCam := "Not set"
	if settings.JailCamChannelID != "" {
		jailCam = channelMention(settings.JailCamChannelID)
	}

	gate := "Off"
	if settings.FreshAccounts.Enabled {
		gate = fmt.Sprintf("Accounts younger than %d days", settings.FreshAccounts.AgeThresholdDays)
	}

	return &discordgo.MessageEmbed{
		Title: "⚙️ Jail settings",
		Color: colorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Jail cam", Value: jailCam, Inline: true},
			{Name: "Fresh account gate", Value: gate, Inline: true},
		},
	}
}

func renderGameStart(output *prisonbreak.StartGameOutput) *discordgo.MessageEmbed {
	players := make([]string, 0, len(output.Game.Players))
	for _, p := range output.Game.Players {
		players = append(players, mention(p))
	}

	return &discordgo.MessageEmbed{
		Title:       "🚨 Prison break! " + output.Intro.Title,
		Description: output.Intro.Message,
		Color:       colorWarning,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Players", Value: strings.Join(players, ", ")},
			{Name: "Spectators", Value: fmt.Sprintf("React on the jail cam with %s to help or %s to sabotage.",
				strings.Join(spectator.HelpEmojis, " "), strings.Join(spectator.SabotageEmojis, " "))},
		},
	}
}

func renderGameStatus(output *prisonbreak.GetStatusOutput) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🗺️ Prison breaks",
		Color: colorInfo,
	}

	if len(output.Games) == 0 {
		embed.Description = "No escape attempts in progress."
		return embed
	}

	for _, status := range output.Games {
		lines := []string{fmt.Sprintf("Stage %d of %d: %s", status.Game.Stage, len(models.Stages), status.Rules.Name)}
		for _, p := range status.Players {
			switch {
			case !p.Quarantined:
				lines = append(lines, fmt.Sprintf("%s already out", mention(p.MemberID)))
			case p.EndTime == nil:
				lines = append(lines, fmt.Sprintf("%s indefinite, adjusted %s", mention(p.MemberID), formatNet(p.NetMinutes)))
			default:
				lines = append(lines, fmt.Sprintf("%s release <t:%d:R>, adjusted %s", mention(p.MemberID), p.EndTime.Unix(), formatNet(p.NetMinutes)))
			}
		}
		lines = append(lines, fmt.Sprintf("Crowd: %d 🙏 / %d 👎", status.Game.SpectatorVotes.Help, status.Game.SpectatorVotes.Sabotage))

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Game " + status.Game.ID,
			Value: strings.Join(lines, "\n"),
		})
	}
	return embed
}

// renderAttempt is the cell reply to an evaluated attempt
func renderAttempt(output *prisonbreak.SubmitAttemptOutput) string {
	lines := []string{output.Message}
	if output.Feedback != "" {
		lines = append(lines, "> "+output.Feedback)
	}

	for _, adj := range output.Adjustments {
		sign := "-"
		if adj.Direction == models.DirectionExtend {
			sign = "+"
		}
		if adj.Minutes > 0 {
			lines = append(lines, fmt.Sprintf("%s: %s%d%% (%s%d min)", mention(adj.MemberID), sign, adj.Percent, sign, adj.Minutes))
		}
	}
	return strings.Join(lines, "\n")
}

// renderChallengeComplete is the cell reply to a solved challenge offer
func renderChallengeComplete(output *quarantine.CompleteChallengeOutput) string {
	reply := fmt.Sprintf("🔓 Correct! That's %d%% off your sentence.", output.Offer.RewardPercent)
	if output.Adjustment != nil && output.Adjustment.Applied && output.Adjustment.EndTime != nil {
		reply += fmt.Sprintf(" You now walk free <t:%d:R>.", output.Adjustment.EndTime.Unix())
	}
	return reply
}

func renderHelp() *discordgo.MessageEmbed {
	stages := make([]string, 0, len(models.Stages))
	for _, r := range models.Stages {
		stages = append(stages, fmt.Sprintf("**%d. %s**: win -%d%%, %d misses +%d%%",
			r.Stage, r.Name, r.RewardPercent, r.FailureThreshold, r.PenaltyPercent))
	}

	return &discordgo.MessageEmbed{
		Title:       "📖 Jailbird",
		Description: "Quarantined members sit in a private cell. Public cells are mirrored to the jail cam, and the jail cam can talk back.",
		Color:       colorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Prison break", Value: strings.Join(stages, "\n")},
			{Name: "How to play", Value: strings.Join([]string{
				"Lock picking: send four digits, e.g. `3-7-1-9`",
				"Tunnel digging: send directions, e.g. `n e e s`",
				"Guard evasion: name a hiding spot: " + strings.Join(models.GuardSpots, ", "),
				"Great escape: every player sends the code word: " + strings.Join(models.EscapeCodeWords, ", "),
			}, "\n")},
			{Name: "Spectators", Value: fmt.Sprintf("React on jail cam messages: %s help, %s sabotage.",
				strings.Join(spectator.HelpEmojis, " "), strings.Join(spectator.SabotageEmojis, " "))},
			{Name: "Throwing things", Value: "`/throw` a " + strings.Join(prisonbreak.Items, ", ") + ". Cakes may hide a file."},
		},
	}
}

// replier turns service errors into user-facing replies
type replier struct {
	messaging messaging.Service
	logger    *slog.Logger
}

func (r *replier) errorText(ctx context.Context, err error) string {
	kind := errorType(err)
	if kind == "" {
		return err.Error()
	}
	if kind == "default" {
		r.logger.Error("command failed", "err", err)
	}

	msg, msgErr := r.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{ErrorType: kind})
	if msgErr != nil {
		return "Something went wrong."
	}
	return msg.Message
}

// fail responds to an interaction with an error
func (r *replier) fail(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, err error) error {
	return RespondWithError(s, i, r.errorText(ctx, err))
}

// failDeferred finishes a deferred interaction with an error
func (r *replier) failDeferred(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, err error) error {
	return EditWithEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Error",
		Description: r.errorText(ctx, err),
		Color:       colorError,
	})
}

// denied tells a member they lack the rights for a command
func (r *replier) denied(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	text := "You are not allowed to do that."
	if msg, err := r.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{ErrorType: "not_allowed"}); err == nil {
		text = msg.Message
	}
	return RespondWithError(s, i, text)
}

// isModerator reports whether the invoker holds any elevated permission
func isModerator(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&platform.ElevatedPermissions != 0
}
