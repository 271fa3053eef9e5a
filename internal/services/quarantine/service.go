package quarantine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/KirkDiggler/jailbird/internal/common/clock"
	"github.com/KirkDiggler/jailbird/internal/common/keylock"
	"github.com/KirkDiggler/jailbird/internal/common/uuid"
	"github.com/KirkDiggler/jailbird/internal/models"
	"github.com/KirkDiggler/jailbird/internal/platform"
	quarantineRepo "github.com/KirkDiggler/jailbird/internal/repositories/quarantine"
	ledgerRepo "github.com/KirkDiggler/jailbird/internal/repositories/sentence_ledger"
	"github.com/KirkDiggler/jailbird/internal/services/isolation"
	"github.com/KirkDiggler/jailbird/internal/services/messaging"
)

// service implements the Service interface
type service struct {
	quarantineRepo quarantineRepo.Repository
	ledgerRepo     ledgerRepo.Repository
	isolation      isolation.Service
	platform       platform.Platform
	messaging      messaging.Service
	clock          clock.Clock
	uuidGenerator  uuid.UUID
	locker         *keylock.Locker
	logger         *slog.Logger
}

// New creates a new quarantine service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.QuarantineRepo == nil {
		return nil, ErrNilRepository
	}

	if cfg.LedgerRepo == nil {
		return nil, ErrNilLedger
	}

	if cfg.Isolation == nil {
		return nil, ErrNilIsolation
	}

	if cfg.Platform == nil {
		return nil, ErrNilPlatform
	}

	if cfg.Messaging == nil {
		return nil, ErrNilMessaging
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	locker := cfg.Locker
	if locker == nil {
		locker = keylock.New()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		quarantineRepo: cfg.QuarantineRepo,
		ledgerRepo:     cfg.LedgerRepo,
		isolation:      cfg.Isolation,
		platform:       cfg.Platform,
		messaging:      cfg.Messaging,
		clock:          cfg.Clock,
		uuidGenerator:  cfg.UUIDGenerator,
		locker:         locker,
		logger:         logger.With("component", "quarantine"),
	}, nil
}

func (s *service) lockRecord(guildID, memberID string) func() {
	return s.locker.Lock("quarantine", guildID, memberID)
}

// Start confines a member and persists their quarantine record
func (s *service) Start(ctx context.Context, input *StartInput) (*StartOutput, error) {
	if input == nil || input.GuildID == "" || input.TargetID == "" {
		return nil, ErrMissingTarget
	}

	unlock := s.lockRecord(input.GuildID, input.TargetID)
	defer unlock()

	_, err := s.quarantineRepo.GetRecord(ctx, &quarantineRepo.GetRecordInput{
		GuildID:  input.GuildID,
		MemberID: input.TargetID,
	})
	if err == nil {
		return nil, ErrAlreadyQuarantined
	}
	if !errors.Is(err, quarantineRepo.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check quarantine record: %w", err)
	}

	perms, err := s.platform.MemberPermissions(ctx, input.GuildID, input.TargetID)
	if err != nil {
		return nil, fmt.Errorf("failed to check target permissions: %w", err)
	}
	if perms&platform.ElevatedPermissions != 0 {
		return nil, ErrElevatedTarget
	}

	member, err := s.platform.Member(ctx, input.GuildID, input.TargetID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up target: %w", err)
	}

	output := &StartOutput{}

	cellID, created, err := s.findOrCreateChannel(ctx, input.GuildID, cellChannelName(member), input.Reason)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrChannelSetup, err)
	}
	if created {
		output.CreatedChannels = append(output.CreatedChannels, cellID)
	}

	// The cell is only for the prisoner and staff
	var keepers []string
	if input.ModeratorID != "" {
		keepers = append(keepers, input.ModeratorID)
	}
	if err := s.platform.RestrictChannel(ctx, input.GuildID, cellID, keepers, input.Reason); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrChannelSetup, err)
	}

	var mirrorID string
	if input.PublicView {
		mirrorID, created, err = s.resolveStartMirror(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrChannelSetup, err)
		}
		if created {
			output.CreatedChannels = append(output.CreatedChannels, mirrorID)
		}
	}

	now := s.clock.Now()
	record := &models.QuarantineRecord{
		GuildID:              input.GuildID,
		MemberID:             input.TargetID,
		Reason:               input.Reason,
		ModeratorID:          input.ModeratorID,
		CreatedAt:            now,
		SavedRoles:           []string{},
		ConfinementChannelID: cellID,
		PublicView:           input.PublicView,
		MirrorChannelID:      mirrorID,
	}
	if input.DurationMinutes > 0 {
		end := now.Add(time.Duration(input.DurationMinutes) * time.Minute)
		minutes := input.DurationMinutes
		record.EndTime = &end
		record.OriginalDurationMinutes = &minutes
	}

	if err := s.quarantineRepo.SaveRecord(ctx, &quarantineRepo.SaveRecordInput{Record: record}); err != nil {
		return nil, fmt.Errorf("failed to save quarantine record: %w", err)
	}

	confined, err := s.isolation.Confine(ctx, &isolation.ConfineInput{
		GuildID:          input.GuildID,
		MemberID:         input.TargetID,
		AllowedChannelID: cellID,
		Reason:           input.Reason,
	})
	if err != nil {
		s.logger.Warn("confinement could not begin", "guild", input.GuildID, "member", input.TargetID, "err", err)
		output.IsolationErr = err
	} else {
		record.SavedRoles = confined.StrippedRoles
		output.Attempted = confined.Attempted
		output.Failures = confined.Failures

		if err := s.quarantineRepo.SaveRecord(ctx, &quarantineRepo.SaveRecordInput{Record: record}); err != nil {
			return nil, fmt.Errorf("failed to save stripped roles: %w", err)
		}
	}

	trigger := input.Trigger
	if trigger == "" {
		trigger = "command"
	}
	quarantinesStarted.WithLabelValues(trigger).Inc()

	s.logger.Info("member quarantined",
		"guild", input.GuildID,
		"member", input.TargetID,
		"moderator", input.ModeratorID,
		"minutes", input.DurationMinutes,
		"public", input.PublicView,
		"failures", len(output.Failures),
	)

	output.Record = record
	return output, nil
}

// Release restores a member's access and deletes their record
func (s *service) Release(ctx context.Context, input *ReleaseInput) (*ReleaseOutput, error) {
	if input == nil || input.GuildID == "" || input.TargetID == "" {
		return nil, ErrMissingTarget
	}

	unlock := s.lockRecord(input.GuildID, input.TargetID)
	defer unlock()

	return s.release(ctx, input)
}

// release must be called with the record lock held
func (s *service) release(ctx context.Context, input *ReleaseInput) (*ReleaseOutput, error) {
	record, err := s.quarantineRepo.GetRecord(ctx, &quarantineRepo.GetRecordInput{
		GuildID:  input.GuildID,
		MemberID: input.TargetID,
	})
	if err != nil {
		if errors.Is(err, quarantineRepo.ErrRecordNotFound) {
			return &ReleaseOutput{WasQuarantined: false}, nil
		}
		return nil, fmt.Errorf("failed to get quarantine record: %w", err)
	}

	released, err := s.isolation.Release(ctx, &isolation.ReleaseInput{
		GuildID:      input.GuildID,
		MemberID:     input.TargetID,
		RestoreRoles: record.SavedRoles,
		Reason:       input.Reason,
	})
	if err != nil {
		// keep the record so the next attempt can restore the saved roles
		return nil, fmt.Errorf("failed to release member: %w", err)
	}

	if err := s.quarantineRepo.DeleteRecord(ctx, &quarantineRepo.DeleteRecordInput{
		GuildID:  input.GuildID,
		MemberID: input.TargetID,
	}); err != nil {
		return nil, fmt.Errorf("failed to delete quarantine record: %w", err)
	}

	if err := s.ledgerRepo.ClearMember(ctx, &ledgerRepo.ClearMemberInput{
		GuildID:  input.GuildID,
		MemberID: input.TargetID,
	}); err != nil {
		s.logger.Warn("failed to clear sentence ledger", "guild", input.GuildID, "member", input.TargetID, "err", err)
	}

	trigger := "manual"
	if input.Expired {
		trigger = "expiry"
	}
	quarantinesReleased.WithLabelValues(trigger).Inc()

	s.logger.Info("member released",
		"guild", input.GuildID,
		"member", input.TargetID,
		"trigger", trigger,
		"failures", len(released.Failures),
	)

	return &ReleaseOutput{
		WasQuarantined: true,
		Record:         record,
		Attempted:      released.Attempted,
		Failures:       released.Failures,
	}, nil
}

// Get retrieves a member's quarantine record
func (s *service) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.GuildID == "" || input.MemberID == "" {
		return nil, ErrMissingTarget
	}

	record, err := s.quarantineRepo.GetRecord(ctx, &quarantineRepo.GetRecordInput{
		GuildID:  input.GuildID,
		MemberID: input.MemberID,
	})
	if err != nil {
		if errors.Is(err, quarantineRepo.ErrRecordNotFound) {
			return nil, ErrNotQuarantined
		}
		return nil, fmt.Errorf("failed to get quarantine record: %w", err)
	}

	output := &GetOutput{Record: record}

	ledger, err := s.ledgerRepo.GetAdjustments(ctx, &ledgerRepo.GetAdjustmentsInput{
		GuildID:  input.GuildID,
		MemberID: input.MemberID,
	})
	if err != nil {
		s.logger.Warn("failed to read sentence ledger", "guild", input.GuildID, "member", input.MemberID, "err", err)
	} else {
		output.NetMinutes = ledger.NetMinutes
		output.Adjustments = ledger.Adjustments
	}

	return output, nil
}

// List retrieves every quarantine record of a guild
func (s *service) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, ErrMissingTarget
	}

	records, err := s.quarantineRepo.ListRecords(ctx, &quarantineRepo.ListRecordsInput{
		GuildID: input.GuildID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list quarantine records: %w", err)
	}

	entries := make([]*ListEntry, 0, len(records.Records))
	for _, record := range records.Records {
		entry := &ListEntry{Record: record}

		ledger, err := s.ledgerRepo.GetAdjustments(ctx, &ledgerRepo.GetAdjustmentsInput{
			GuildID:  record.GuildID,
			MemberID: record.MemberID,
		})
		if err != nil {
			s.logger.Warn("failed to read sentence ledger", "guild", record.GuildID, "member", record.MemberID, "err", err)
		} else {
			entry.NetMinutes = ledger.NetMinutes
		}

		entries = append(entries, entry)
	}

	return &ListOutput{Entries: entries}, nil
}

// AdjustSentence moves a timed sentence by a percentage of its original length
func (s *service) AdjustSentence(ctx context.Context, input *AdjustSentenceInput) (*AdjustSentenceOutput, error) {
	if input == nil || input.GuildID == "" || input.TargetID == "" {
		return nil, ErrMissingTarget
	}

	if input.Percent <= 0 {
		return nil, ErrInvalidPercent
	}

	if input.Direction != models.DirectionReduce && input.Direction != models.DirectionExtend {
		return nil, ErrInvalidDirection
	}

	unlock := s.lockRecord(input.GuildID, input.TargetID)
	defer unlock()

	record, err := s.quarantineRepo.GetRecord(ctx, &quarantineRepo.GetRecordInput{
		GuildID:  input.GuildID,
		MemberID: input.TargetID,
	})
	if err != nil {
		if errors.Is(err, quarantineRepo.ErrRecordNotFound) {
			return nil, ErrNotQuarantined
		}
		return nil, fmt.Errorf("failed to get quarantine record: %w", err)
	}

	output, entry := s.adjust(record, input)
	if !output.Applied {
		return output, nil
	}

	if err := s.quarantineRepo.SaveRecord(ctx, &quarantineRepo.SaveRecordInput{Record: record}); err != nil {
		return nil, fmt.Errorf("failed to save quarantine record: %w", err)
	}

	s.recordAdjustment(ctx, entry)
	return output, nil
}

// adjust applies a sentence change to record in memory. The original
// duration is never touched; reductions never move the end time into the past.
func (s *service) adjust(record *models.QuarantineRecord, input *AdjustSentenceInput) (*AdjustSentenceOutput, *models.SentenceAdjustment) {
	if !record.IsTimed() {
		return &AdjustSentenceOutput{Applied: false}, nil
	}

	minutes := int(math.Round(float64(input.Percent) / 100 * float64(*record.OriginalDurationMinutes)))
	delta := time.Duration(minutes) * time.Minute

	now := s.clock.Now()
	end := *record.EndTime
	signed := minutes

	switch input.Direction {
	case models.DirectionReduce:
		end = end.Add(-delta)
		if end.Before(now) {
			end = now
		}
		signed = -minutes
	case models.DirectionExtend:
		end = end.Add(delta)
	}

	record.EndTime = &end

	sentenceAdjustments.WithLabelValues(string(input.Direction), string(input.Reason)).Inc()

	return &AdjustSentenceOutput{
			Applied: true,
			Minutes: minutes,
			EndTime: &end,
		}, &models.SentenceAdjustment{
			ID:        s.uuidGenerator.NewUUID(),
			GuildID:   record.GuildID,
			MemberID:  record.MemberID,
			Minutes:   signed,
			Percent:   input.Percent,
			Reason:    input.Reason,
			GameID:    input.GameID,
			Timestamp: now,
		}
}

func (s *service) recordAdjustment(ctx context.Context, entry *models.SentenceAdjustment) {
	if entry == nil {
		return
	}

	if err := s.ledgerRepo.AddAdjustment(ctx, &ledgerRepo.AddAdjustmentInput{Adjustment: entry}); err != nil {
		s.logger.Warn("failed to record sentence adjustment", "guild", entry.GuildID, "member", entry.MemberID, "err", err)
	}
}

// ExpireDue releases every record whose sentence has been served
func (s *service) ExpireDue(ctx context.Context, input *ExpireDueInput) (*ExpireDueOutput, error) {
	guilds, err := s.quarantineRepo.ListGuilds(ctx, &quarantineRepo.ListGuildsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list guilds: %w", err)
	}

	output := &ExpireDueOutput{Released: []*models.QuarantineRecord{}}

	for _, guildID := range guilds.GuildIDs {
		records, err := s.quarantineRepo.ListRecords(ctx, &quarantineRepo.ListRecordsInput{GuildID: guildID})
		if err != nil {
			expiryScanErrors.Inc()
			s.logger.Error("failed to list records for expiry", "guild", guildID, "err", err)
			continue
		}

		for _, record := range records.Records {
			if !record.IsExpired(s.clock.Now()) {
				continue
			}

			released, err := s.expire(ctx, record)
			if err != nil {
				expiryScanErrors.Inc()
				s.logger.Error("failed to expire record", "guild", guildID, "member", record.MemberID, "err", err)
				continue
			}

			if released != nil {
				output.Released = append(output.Released, released)
				s.notifyRelease(ctx, released)
			}
		}
	}

	return output, nil
}

// expire releases a record if it is still expired once the lock is held
func (s *service) expire(ctx context.Context, candidate *models.QuarantineRecord) (*models.QuarantineRecord, error) {
	unlock := s.lockRecord(candidate.GuildID, candidate.MemberID)
	defer unlock()

	current, err := s.quarantineRepo.GetRecord(ctx, &quarantineRepo.GetRecordInput{
		GuildID:  candidate.GuildID,
		MemberID: candidate.MemberID,
	})
	if err != nil {
		if errors.Is(err, quarantineRepo.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	// a penalty may have landed since the scan read the record
	if !current.IsExpired(s.clock.Now()) {
		return nil, nil
	}

	released, err := s.release(ctx, &ReleaseInput{
		GuildID:  candidate.GuildID,
		TargetID: candidate.MemberID,
		Reason:   "Quarantine sentence served",
		Expired:  true,
	})
	if err != nil {
		return nil, err
	}

	if !released.WasQuarantined {
		return nil, nil
	}
	return released.Record, nil
}

// notifyRelease announces an automatic release on the jail cam, or in the
// cell when the record had no jail cam
func (s *service) notifyRelease(ctx context.Context, record *models.QuarantineRecord) {
	channelID := s.resolveMirror(ctx, record)
	if channelID == "" {
		channelID = record.ConfinementChannelID
	}
	if channelID == "" {
		return
	}

	msg, err := s.messaging.GetReleaseMessage(ctx, &messaging.GetReleaseMessageInput{
		MemberMention: fmt.Sprintf("<@%s>", record.MemberID),
		Expired:       true,
	})
	if err != nil {
		s.logger.Warn("failed to build release message", "err", err)
		return
	}

	if _, err := s.platform.SendMessage(ctx, channelID, msg.Message); err != nil {
		s.logger.Warn("failed to send release notification", "guild", record.GuildID, "channel", channelID, "err", err)
	}
}
