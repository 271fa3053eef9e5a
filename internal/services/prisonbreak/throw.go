package prisonbreak

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/jailbird/internal/dice"
	"github.com/KirkDiggler/jailbird/internal/models"
	"github.com/KirkDiggler/jailbird/internal/services/messaging"
	"github.com/KirkDiggler/jailbird/internal/services/quarantine"
)

// Throw lets a free member throw an item at a prisoner
func (s *service) Throw(ctx context.Context, input *ThrowInput) (*ThrowOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, ErrMissingGuild
	}

	item := strings.ToLower(strings.TrimSpace(input.Item))
	if !contains(Items, item) {
		return nil, ErrUnknownItem
	}

	_, err := s.quarantine.Get(ctx, &quarantine.GetInput{GuildID: input.GuildID, MemberID: input.ThrowerID})
	switch {
	case err == nil:
		return nil, ErrThrowerQuarantined
	case !errors.Is(err, quarantine.ErrNotQuarantined):
		return nil, err
	}

	record, err := s.throwTarget(ctx, input)
	if err != nil {
		return nil, err
	}

	targetName := "<@" + record.MemberID + ">"
	if member, err := s.platform.Member(ctx, input.GuildID, record.MemberID); err == nil {
		targetName = member.DisplayName
	}

	msg, err := s.messaging.GetThrowMessage(ctx, &messaging.GetThrowMessageInput{
		ThrowerName: input.ThrowerName,
		TargetName:  targetName,
		Item:        item,
	})
	if err != nil {
		return nil, err
	}

	itemsThrown.WithLabelValues(item).Inc()

	channels := []string{record.ConfinementChannelID}
	mirror, err := s.quarantine.ResolveMirrorChannel(ctx, &quarantine.ResolveMirrorChannelInput{Record: record})
	if err != nil {
		s.logger.Warn("failed to resolve jail cam", "guild", input.GuildID, "member", record.MemberID, "err", err)
	} else if mirror.ChannelID != "" && mirror.ChannelID != record.ConfinementChannelID {
		channels = append(channels, mirror.ChannelID)
	}
	s.post(ctx, channels, msg.Message)

	output := &ThrowOutput{
		TargetID: record.MemberID,
		Message:  msg.Message,
	}

	if item == ItemCake {
		output.Offer = s.bakeFile(ctx, input, record)
	}

	return output, nil
}

// throwTarget is the named prisoner or a random one on the jail cam
func (s *service) throwTarget(ctx context.Context, input *ThrowInput) (*models.QuarantineRecord, error) {
	if input.TargetID != "" {
		got, err := s.quarantine.Get(ctx, &quarantine.GetInput{GuildID: input.GuildID, MemberID: input.TargetID})
		if err != nil {
			if errors.Is(err, quarantine.ErrNotQuarantined) {
				return nil, ErrTargetNotQuarantined
			}
			return nil, err
		}
		return got.Record, nil
	}

	list, err := s.quarantine.List(ctx, &quarantine.ListInput{GuildID: input.GuildID})
	if err != nil {
		return nil, err
	}

	var public []*models.QuarantineRecord
	for _, entry := range list.Entries {
		if entry.Record.PublicView {
			public = append(public, entry.Record)
		}
	}
	if len(public) == 0 {
		return nil, ErrNoTargets
	}

	return dice.Pick(s.diceRoller, public), nil
}

// bakeFile offers the cake's hidden challenge. A prisoner already holding
// the maximum number of offers just gets cake.
func (s *service) bakeFile(ctx context.Context, input *ThrowInput, record *models.QuarantineRecord) *models.ChallengeOffer {
	word := dice.Pick(s.diceRoller, cakeWords)
	scrambled := scramble(s.diceRoller, word)

	offered, err := s.quarantine.OfferChallenge(ctx, &quarantine.OfferChallengeInput{
		GuildID:       input.GuildID,
		TargetID:      record.MemberID,
		OfferedBy:     input.ThrowerID,
		Prompt:        fmt.Sprintf("There's a file baked into the cake! Unscramble **%s** in here to shave %d%% off your sentence.", scrambled, CakeRewardPercent),
		Answer:        word,
		RewardPercent: CakeRewardPercent,
		TTL:           CakeChallengeTTL,
	})
	if err != nil {
		if !errors.Is(err, quarantine.ErrTooManyChallenges) {
			s.logger.Warn("failed to offer cake challenge", "guild", input.GuildID, "member", record.MemberID, "err", err)
		}
		return nil
	}

	s.post(ctx, []string{record.ConfinementChannelID}, offered.Offer.Prompt)
	return offered.Offer
}

// scramble shuffles the letters of a word, never returning it unchanged
func scramble(roller dice.Roller, word string) string {
	letters := []rune(word)
	for i := len(letters) - 1; i > 0; i-- {
		j := roller.Roll(i+1) - 1
		letters[i], letters[j] = letters[j], letters[i]
	}

	if string(letters) == word {
		for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
			letters[i], letters[j] = letters[j], letters[i]
		}
	}
	return string(letters)
}

func (s *service) post(ctx context.Context, channelIDs []string, content string) {
	for _, channelID := range channelIDs {
		if channelID == "" {
			continue
		}
		if _, err := s.platform.SendMessage(ctx, channelID, content); err != nil {
			s.logger.Warn("failed to post message", "channel", channelID, "err", err)
		}
	}
}
