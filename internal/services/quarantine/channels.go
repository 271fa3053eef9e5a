package quarantine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/KirkDiggler/jailbird/internal/models"
	"github.com/KirkDiggler/jailbird/internal/platform"
	quarantineRepo "github.com/KirkDiggler/jailbird/internal/repositories/quarantine"
)

// cellChannelName follows Discord's text channel naming: lower case, no spaces
func cellChannelName(member *platform.Member) string {
	var b strings.Builder
	for _, r := range strings.ToLower(member.Username) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '.':
			b.WriteRune('-')
		}
	}

	name := b.String()
	if name == "" {
		name = member.ID
	}
	return ConfinementChannelPrefix + name
}

// findOrCreateChannel discovers a text channel by name, creating it when absent
func (s *service) findOrCreateChannel(ctx context.Context, guildID, name, reason string) (string, bool, error) {
	channels, err := s.platform.GuildChannels(ctx, guildID)
	if err != nil {
		return "", false, err
	}

	for _, ch := range channels {
		if ch.Text && ch.Name == name {
			return ch.ID, false, nil
		}
	}

	created, err := s.platform.CreateTextChannel(ctx, guildID, name, reason)
	if err != nil {
		return "", false, err
	}

	s.logger.Info("created channel", "guild", guildID, "channel", created.ID, "name", name)
	return created.ID, true, nil
}

// resolveStartMirror picks the jail cam for a new public quarantine: the
// configured channel, then the caller's, then one named jail-cam, then a new one
func (s *service) resolveStartMirror(ctx context.Context, input *StartInput) (string, bool, error) {
	settings, err := s.quarantineRepo.GetSettings(ctx, &quarantineRepo.GetSettingsInput{GuildID: input.GuildID})
	if err != nil {
		return "", false, fmt.Errorf("failed to get server settings: %w", err)
	}

	if settings.JailCamChannelID != "" {
		return settings.JailCamChannelID, false, nil
	}

	if input.MirrorChannelID != "" {
		return input.MirrorChannelID, false, nil
	}

	return s.findOrCreateChannel(ctx, input.GuildID, DefaultMirrorChannelName, input.Reason)
}

// resolveMirror returns the jail cam a record mirrors to right now. The
// configured channel wins over the one chosen at start.
func (s *service) resolveMirror(ctx context.Context, record *models.QuarantineRecord) string {
	if !record.PublicView {
		return ""
	}

	settings, err := s.quarantineRepo.GetSettings(ctx, &quarantineRepo.GetSettingsInput{GuildID: record.GuildID})
	if err != nil {
		s.logger.Warn("failed to get server settings", "guild", record.GuildID, "err", err)
	} else if settings.JailCamChannelID != "" {
		return settings.JailCamChannelID
	}

	return record.MirrorChannelID
}

// ResolveMirrorChannel returns the jail cam a record currently mirrors to
func (s *service) ResolveMirrorChannel(ctx context.Context, input *ResolveMirrorChannelInput) (*ResolveMirrorChannelOutput, error) {
	if input == nil || input.Record == nil {
		return nil, errors.New("input and record cannot be nil")
	}

	return &ResolveMirrorChannelOutput{
		ChannelID: s.resolveMirror(ctx, input.Record),
	}, nil
}

// GetMirrorAudience reports whether a channel is a jail cam and who it mirrors
func (s *service) GetMirrorAudience(ctx context.Context, input *GetMirrorAudienceInput) (*GetMirrorAudienceOutput, error) {
	if input == nil || input.GuildID == "" || input.ChannelID == "" {
		return nil, errors.New("guild ID and channel ID are required")
	}

	settings, err := s.quarantineRepo.GetSettings(ctx, &quarantineRepo.GetSettingsInput{GuildID: input.GuildID})
	if err != nil {
		return nil, fmt.Errorf("failed to get server settings: %w", err)
	}

	records, err := s.quarantineRepo.ListRecords(ctx, &quarantineRepo.ListRecordsInput{GuildID: input.GuildID})
	if err != nil {
		return nil, fmt.Errorf("failed to list quarantine records: %w", err)
	}

	output := &GetMirrorAudienceOutput{
		IsMirror: settings.JailCamChannelID != "" && settings.JailCamChannelID == input.ChannelID,
		Records:  []*models.QuarantineRecord{},
	}

	for _, record := range records.Records {
		if !record.PublicView {
			continue
		}

		mirror := record.MirrorChannelID
		if settings.JailCamChannelID != "" {
			mirror = settings.JailCamChannelID
		}

		if mirror == input.ChannelID {
			output.Records = append(output.Records, record)
		}
	}

	if len(output.Records) > 0 {
		output.IsMirror = true
	}

	return output, nil
}

// GetSettings retrieves a guild's settings
func (s *service) GetSettings(ctx context.Context, input *GetSettingsInput) (*GetSettingsOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, ErrMissingTarget
	}

	settings, err := s.quarantineRepo.GetSettings(ctx, &quarantineRepo.GetSettingsInput{GuildID: input.GuildID})
	if err != nil {
		return nil, fmt.Errorf("failed to get server settings: %w", err)
	}

	return &GetSettingsOutput{Settings: settings}, nil
}

// SetJailCam configures or clears the guild's jail cam channel
func (s *service) SetJailCam(ctx context.Context, input *SetJailCamInput) (*SetJailCamOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, ErrMissingTarget
	}

	if input.ChannelID != "" {
		ch, err := s.platform.Channel(ctx, input.ChannelID)
		if err != nil {
			if errors.Is(err, platform.ErrNotFound) {
				return nil, ErrChannelNotFound
			}
			return nil, fmt.Errorf("failed to look up channel: %w", err)
		}
		if ch.GuildID != "" && ch.GuildID != input.GuildID {
			return nil, ErrChannelNotFound
		}
	}

	unlock := s.locker.Lock("settings", input.GuildID)
	defer unlock()

	settings, err := s.quarantineRepo.GetSettings(ctx, &quarantineRepo.GetSettingsInput{GuildID: input.GuildID})
	if err != nil {
		return nil, fmt.Errorf("failed to get server settings: %w", err)
	}

	settings.JailCamChannelID = input.ChannelID

	if err := s.quarantineRepo.SaveSettings(ctx, &quarantineRepo.SaveSettingsInput{Settings: settings}); err != nil {
		return nil, fmt.Errorf("failed to save server settings: %w", err)
	}

	s.logger.Info("jail cam configured", "guild", input.GuildID, "channel", input.ChannelID)
	return &SetJailCamOutput{Settings: settings}, nil
}

// SetFreshAccounts configures the new-account gate
func (s *service) SetFreshAccounts(ctx context.Context, input *SetFreshAccountsInput) (*SetFreshAccountsOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, ErrMissingTarget
	}

	days := input.AgeThresholdDays
	if days <= 0 {
		days = DefaultFreshAccountDays
	}

	unlock := s.locker.Lock("settings", input.GuildID)
	defer unlock()

	settings, err := s.quarantineRepo.GetSettings(ctx, &quarantineRepo.GetSettingsInput{GuildID: input.GuildID})
	if err != nil {
		return nil, fmt.Errorf("failed to get server settings: %w", err)
	}

	settings.FreshAccounts = models.FreshAccountSettings{
		Enabled:          input.Enabled,
		AgeThresholdDays: days,
	}

	if err := s.quarantineRepo.SaveSettings(ctx, &quarantineRepo.SaveSettingsInput{Settings: settings}); err != nil {
		return nil, fmt.Errorf("failed to save server settings: %w", err)
	}

	return &SetFreshAccountsOutput{Settings: settings}, nil
}

// AdmitMember applies the new-account gate to a joining member
func (s *service) AdmitMember(ctx context.Context, input *AdmitMemberInput) (*AdmitMemberOutput, error) {
	if input == nil || input.GuildID == "" || input.MemberID == "" {
		return nil, ErrMissingTarget
	}

	settings, err := s.quarantineRepo.GetSettings(ctx, &quarantineRepo.GetSettingsInput{GuildID: input.GuildID})
	if err != nil {
		return nil, fmt.Errorf("failed to get server settings: %w", err)
	}

	if !settings.FreshAccounts.Enabled {
		return &AdmitMemberOutput{}, nil
	}

	member, err := s.platform.Member(ctx, input.GuildID, input.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up member: %w", err)
	}

	if member.Bot || member.AccountCreatedAt.IsZero() {
		return &AdmitMemberOutput{}, nil
	}

	days := settings.FreshAccounts.AgeThresholdDays
	if days <= 0 {
		days = DefaultFreshAccountDays
	}

	age := s.clock.Now().Sub(member.AccountCreatedAt)
	if age >= daysToDuration(days) {
		return &AdmitMemberOutput{}, nil
	}

	started, err := s.Start(ctx, &StartInput{
		GuildID:     input.GuildID,
		TargetID:    input.MemberID,
		ModeratorID: input.ModeratorID,
		Reason:      fmt.Sprintf("Account is younger than %d days", days),
		Trigger:     "fresh_account",
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyQuarantined) || errors.Is(err, ErrElevatedTarget) {
			return &AdmitMemberOutput{}, nil
		}
		return nil, err
	}

	return &AdmitMemberOutput{
		Quarantined: true,
		Record:      started.Record,
	}, nil
}
