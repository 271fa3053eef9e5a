package quarantine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/jailbird/internal/models"
	quarantineRepo "github.com/KirkDiggler/jailbird/internal/repositories/quarantine"
)

// DefaultChallengeTTL is how long an offer stays open when no TTL is given
const DefaultChallengeTTL = 10 * time.Minute

func daysToDuration(days int) time.Duration {
	return time.Duration(days) * 24 * time.Hour
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// OfferChallenge attaches an ad-hoc reward task to a prisoner
func (s *service) OfferChallenge(ctx context.Context, input *OfferChallengeInput) (*OfferChallengeOutput, error) {
	if input == nil || input.GuildID == "" || input.TargetID == "" {
		return nil, ErrMissingTarget
	}

	if input.Prompt == "" || normalizeAnswer(input.Answer) == "" || input.RewardPercent <= 0 {
		return nil, ErrInvalidChallenge
	}

	ttl := input.TTL
	if ttl <= 0 {
		ttl = DefaultChallengeTTL
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

	now := s.clock.Now()

	// finished offers are dropped so the record stays small
	open := record.OpenChallenges(now)
	if len(open) >= MaxOpenChallenges {
		return nil, ErrTooManyChallenges
	}

	offer := &models.ChallengeOffer{
		ID:            s.uuidGenerator.NewUUID(),
		Prompt:        input.Prompt,
		Answer:        input.Answer,
		RewardPercent: input.RewardPercent,
		OfferedBy:     input.OfferedBy,
		OfferedAt:     now,
		ExpiresAt:     now.Add(ttl),
	}
	record.Challenges = append(open, offer)

	if err := s.quarantineRepo.SaveRecord(ctx, &quarantineRepo.SaveRecordInput{Record: record}); err != nil {
		return nil, fmt.Errorf("failed to save quarantine record: %w", err)
	}

	return &OfferChallengeOutput{Offer: offer}, nil
}

// CompleteChallenge checks a prisoner's message against their open offers
func (s *service) CompleteChallenge(ctx context.Context, input *CompleteChallengeInput) (*CompleteChallengeOutput, error) {
	if input == nil || input.GuildID == "" || input.MemberID == "" {
		return nil, ErrMissingTarget
	}

	answer := normalizeAnswer(input.Content)
	if answer == "" {
		return &CompleteChallengeOutput{}, nil
	}

	unlock := s.lockRecord(input.GuildID, input.MemberID)
	defer unlock()

	record, err := s.quarantineRepo.GetRecord(ctx, &quarantineRepo.GetRecordInput{
		GuildID:  input.GuildID,
		MemberID: input.MemberID,
	})
	if err != nil {
		if errors.Is(err, quarantineRepo.ErrRecordNotFound) {
			return &CompleteChallengeOutput{}, nil
		}
		return nil, fmt.Errorf("failed to get quarantine record: %w", err)
	}

	if input.ChannelID != record.ConfinementChannelID {
		return &CompleteChallengeOutput{}, nil
	}

	now := s.clock.Now()

	var matched *models.ChallengeOffer
	for _, offer := range record.OpenChallenges(now) {
		if normalizeAnswer(offer.Answer) == answer {
			matched = offer
			break
		}
	}
	if matched == nil {
		return &CompleteChallengeOutput{}, nil
	}

	matched.Completed = true
	matched.CompletedAt = &now

	adjusted, entry := s.adjust(record, &AdjustSentenceInput{
		GuildID:   input.GuildID,
		TargetID:  input.MemberID,
		Percent:   matched.RewardPercent,
		Direction: models.DirectionReduce,
		Reason:    models.AdjustmentReasonChallengeOffer,
	})

	if err := s.quarantineRepo.SaveRecord(ctx, &quarantineRepo.SaveRecordInput{Record: record}); err != nil {
		return nil, fmt.Errorf("failed to save quarantine record: %w", err)
	}

	s.recordAdjustment(ctx, entry)

	return &CompleteChallengeOutput{
		Completed:  true,
		Offer:      matched,
		Adjustment: adjusted,
	}, nil
}
