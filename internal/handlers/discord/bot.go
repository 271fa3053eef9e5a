package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/jailbird/internal/models"
	"github.com/KirkDiggler/jailbird/internal/scheduler"
	"github.com/KirkDiggler/jailbird/internal/services/messaging"
	"github.com/KirkDiggler/jailbird/internal/services/mirror"
	"github.com/KirkDiggler/jailbird/internal/services/prisonbreak"
	"github.com/KirkDiggler/jailbird/internal/services/quarantine"
	"github.com/KirkDiggler/jailbird/internal/services/spectator"
)

const (
	// eventTimeout bounds the work done for a single gateway event
	eventTimeout = 30 * time.Second

	// commandTimeout bounds a slash command. Commands defer their reply and
	// may edit it until the interaction token expires after 15 minutes.
	commandTimeout = 14 * time.Minute
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	config     *Config
	logger     *slog.Logger

	// ctx is cancelled when the bot stops, event handlers derive from it
	ctx    context.Context
	cancel context.CancelFunc
}

// Config holds the configuration for the bot
type Config struct {
	// Session is the gateway session shared with the platform adapter
	Session *discordgo.Session

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Services
	Quarantine  quarantine.Service
	PrisonBreak prisonbreak.Service
	Spectator   spectator.Service
	Mirror      mirror.Service
	Messaging   messaging.Service

	// Scheduler is started once the gateway is ready, optional
	Scheduler *scheduler.Scheduler

	// Logger is optional, defaults to slog.Default()
	Logger *slog.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Session == nil {
		return nil, errors.New("session cannot be nil")
	}

	if cfg.Quarantine == nil {
		return nil, errors.New("quarantine service cannot be nil")
	}

	if cfg.PrisonBreak == nil {
		return nil, errors.New("prison break service cannot be nil")
	}

	if cfg.Spectator == nil {
		return nil, errors.New("spectator service cannot be nil")
	}

	if cfg.Mirror == nil {
		return nil, errors.New("mirror service cannot be nil")
	}

	if cfg.Messaging == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	bot := &Bot{
		session:    cfg.Session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		config:     cfg,
		logger:     logger.With("component", "bot"),
		ctx:        ctx,
		cancel:     cancel,
	}

	cfg.Session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsMessageContent

	cfg.Session.AddHandler(bot.handleReady)
	cfg.Session.AddHandler(bot.handleInteraction)
	cfg.Session.AddHandler(bot.handleMessage)
	cfg.Session.AddHandler(bot.handleReaction)
	cfg.Session.AddHandler(bot.handleMemberJoin)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	replies := &replier{messaging: b.config.Messaging, logger: b.logger}
	commands := []CommandHandler{
		NewQuarantineCommand(b.config.Quarantine, replies),
		NewUnquarantineCommand(b.config.Quarantine, replies),
		NewQuarantineListCommand(b.config.Quarantine, replies),
		NewSetJailCamCommand(b.config.Quarantine, replies),
		NewFreshAccountsCommand(b.config.Quarantine, replies),
		NewPrisonBreakCommand(b.config.PrisonBreak, replies),
		NewThrowCommand(b.config.PrisonBreak, replies),
		NewPrisonHelpCommand(),
	}
	for _, cmd := range commands {
		if err := b.RegisterCommand(cmd); err != nil {
			return fmt.Errorf("failed to register %s command: %w", cmd.GetName(), err)
		}
	}

	b.logger.Info("bot is now running")
	return nil
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	b.cancel()

	if b.config.Scheduler != nil {
		b.config.Scheduler.Shutdown()
	}

	appID := b.appID()
	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn("failed to delete command", "command", cmdName, "id", cmdID, "err", err)
		} else {
			b.logger.Debug("deleted command", "command", cmdName, "id", cmdID)
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord. Commands are registered
// for the configured guild when set, globally otherwise.
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	// Store the command handler and its ID
	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info("registered command", "command", cmd.GetName(), "id", createdCmd.ID, "guild", b.config.GuildID)

	return nil
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

func (b *Bot) botUserID() string {
	if b.session.State == nil || b.session.State.User == nil {
		return ""
	}
	return b.session.State.User.ID
}

// eventContext returns a context for one gateway event
func (b *Bot) eventContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(b.ctx, timeout)
}

// recoverEvent keeps a panicking handler from taking down the gateway loop
func (b *Bot) recoverEvent(event string) {
	if r := recover(); r != nil {
		b.logger.Error("event handler panicked", "event", event, "panic", r)
	}
}

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("gateway ready", "user", r.User.Username, "guilds", len(r.Guilds))

	if b.config.Scheduler != nil {
		b.config.Scheduler.Start(b.ctx)
	}

	if err := s.UpdateCustomStatus("Guarding the yard"); err != nil {
		b.logger.Warn("failed to update status", "err", err)
	}
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer b.recoverEvent("interaction")

	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	h, ok := b.commands[name]
	if !ok {
		return
	}

	ctx, cancel := b.eventContext(commandTimeout)
	defer cancel()

	if err := h.Handle(ctx, s, i); err != nil {
		b.logger.Error("error handling command", "command", name, "err", err)
	}
}

// handleMessage routes guild messages to challenges, the game and the jail cam
func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	defer b.recoverEvent("message")

	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	ctx, cancel := b.eventContext(eventTimeout)
	defer cancel()

	authorName := m.Author.Username
	if m.Author.GlobalName != "" {
		authorName = m.Author.GlobalName
	}
	if m.Member != nil && m.Member.Nick != "" {
		authorName = m.Member.Nick
	}

	b.handlePrisonerMessage(ctx, s, m, authorName)

	attachments := make([]string, 0, len(m.Attachments))
	for _, a := range m.Attachments {
		attachments = append(attachments, a.URL)
	}

	_, err := b.config.Mirror.HandleMessage(ctx, &mirror.HandleMessageInput{
		GuildID:        m.GuildID,
		ChannelID:      m.ChannelID,
		MessageID:      m.ID,
		AuthorID:       m.Author.ID,
		AuthorName:     authorName,
		AuthorBot:      m.Author.Bot,
		Content:        m.Content,
		AttachmentURLs: attachments,
	})
	if err != nil {
		b.logger.Error("failed to relay message", "guild", m.GuildID, "channel", m.ChannelID, "err", err)
	}
}

// handlePrisonerMessage answers challenge offers first, then game attempts
func (b *Bot) handlePrisonerMessage(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, authorName string) {
	challenge, err := b.config.Quarantine.CompleteChallenge(ctx, &quarantine.CompleteChallengeInput{
		GuildID:   m.GuildID,
		MemberID:  m.Author.ID,
		ChannelID: m.ChannelID,
		Content:   m.Content,
	})
	if err != nil {
		b.logger.Error("failed to check challenge", "guild", m.GuildID, "member", m.Author.ID, "err", err)
	} else if challenge.Completed {
		b.reply(s, m, renderChallengeComplete(challenge))
		return
	}

	attempt, err := b.config.PrisonBreak.SubmitAttempt(ctx, &prisonbreak.SubmitAttemptInput{
		GuildID:    m.GuildID,
		AuthorID:   m.Author.ID,
		AuthorName: authorName,
		Content:    m.Content,
	})
	if err != nil {
		b.logger.Error("failed to submit attempt", "guild", m.GuildID, "member", m.Author.ID, "err", err)
		return
	}
	if attempt.Routed && attempt.Outcome != models.AttemptOutcomeIgnored {
		b.reply(s, m, renderAttempt(attempt))
	}
}

func (b *Bot) reply(s *discordgo.Session, m *discordgo.MessageCreate, content string) {
	if _, err := s.ChannelMessageSendReply(m.ChannelID, content, m.Reference()); err != nil {
		b.logger.Warn("failed to reply", "channel", m.ChannelID, "err", err)
	}
}

// handleReaction counts crowd votes on jail cam messages
func (b *Bot) handleReaction(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	defer b.recoverEvent("reaction")

	if r.GuildID == "" || r.UserID == b.botUserID() {
		return
	}

	ctx, cancel := b.eventContext(eventTimeout)
	defer cancel()

	_, err := b.config.Spectator.HandleReaction(ctx, &spectator.HandleReactionInput{
		GuildID:   r.GuildID,
		ChannelID: r.ChannelID,
		MessageID: r.MessageID,
		UserID:    r.UserID,
		Emoji:     r.Emoji.APIName(),
	})
	if err != nil {
		b.logger.Error("failed to handle reaction", "guild", r.GuildID, "channel", r.ChannelID, "err", err)
	}
}

// handleMemberJoin applies the fresh account gate
func (b *Bot) handleMemberJoin(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	defer b.recoverEvent("member_join")

	if m.Member == nil || m.User == nil || m.User.Bot {
		return
	}

	ctx, cancel := b.eventContext(eventTimeout)
	defer cancel()

	output, err := b.config.Quarantine.AdmitMember(ctx, &quarantine.AdmitMemberInput{
		GuildID:     m.GuildID,
		MemberID:    m.User.ID,
		ModeratorID: b.botUserID(),
	})
	if err != nil {
		b.logger.Error("failed to admit member", "guild", m.GuildID, "member", m.User.ID, "err", err)
		return
	}
	if output.Quarantined {
		b.logger.Info("fresh account quarantined", "guild", m.GuildID, "member", m.User.ID)
	}
}
