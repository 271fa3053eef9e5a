package prisonbreak

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/KirkDiggler/jailbird/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/jailbird/internal/common/uuid/mocks"
	"github.com/KirkDiggler/jailbird/internal/dice"
	diceMocks "github.com/KirkDiggler/jailbird/internal/dice/mocks"
	"github.com/KirkDiggler/jailbird/internal/models"
	"github.com/KirkDiggler/jailbird/internal/platform"
	platformMocks "github.com/KirkDiggler/jailbird/internal/platform/mocks"
	gameRepo "github.com/KirkDiggler/jailbird/internal/repositories/prison_game"
	"github.com/KirkDiggler/jailbird/internal/services/messaging"
	"github.com/KirkDiggler/jailbird/internal/services/quarantine"
	quarantineMocks "github.com/KirkDiggler/jailbird/internal/services/quarantine/mocks"
)

type PrisonBreakServiceTestSuite struct {
	suite.Suite
	mockCtrl       *gomock.Controller
	mockQuarantine *quarantineMocks.MockService
	mockPlatform   *platformMocks.MockPlatform
	mockRoller     *diceMocks.MockRoller
	mockClock      *clockMocks.MockClock
	mockUUID       *uuidMocks.MockUUID

	mr       *miniredis.Miniredis
	client   *redis.Client
	gameRepo gameRepo.Repository

	service Service
	ctx     context.Context

	now         time.Time
	idSeq       int
	guildID     string
	jailed      map[string]*models.QuarantineRecord
	adjustments []*quarantine.AdjustSentenceInput
}

func (s *PrisonBreakServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockQuarantine = quarantineMocks.NewMockService(s.mockCtrl)
	s.mockPlatform = platformMocks.NewMockPlatform(s.mockCtrl)
	s.mockRoller = diceMocks.NewMockRoller(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.ctx = context.Background()

	s.now = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.idSeq = 0
	s.guildID = "guild-1"
	s.jailed = make(map[string]*models.QuarantineRecord)
	s.adjustments = nil

	s.mockClock.EXPECT().Now().DoAndReturn(func() time.Time { return s.now }).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().DoAndReturn(func() string {
		s.idSeq++
		return fmt.Sprintf("id-%d", s.idSeq)
	}).AnyTimes()

	// the quarantine service is backed by the jailed map
	s.mockQuarantine.EXPECT().Get(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input *quarantine.GetInput) (*quarantine.GetOutput, error) {
			record, ok := s.jailed[input.MemberID]
			if !ok {
				return nil, quarantine.ErrNotQuarantined
			}
			return &quarantine.GetOutput{Record: record}, nil
		}).AnyTimes()
	s.mockQuarantine.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *quarantine.ListInput) (*quarantine.ListOutput, error) {
			output := &quarantine.ListOutput{}
			for _, id := range []string{"alice", "bob", "carol", "dave"} {
				if record, ok := s.jailed[id]; ok {
					output.Entries = append(output.Entries, &quarantine.ListEntry{Record: record})
				}
			}
			return output, nil
		}).AnyTimes()
	s.mockQuarantine.EXPECT().AdjustSentence(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input *quarantine.AdjustSentenceInput) (*quarantine.AdjustSentenceOutput, error) {
			if _, ok := s.jailed[input.TargetID]; !ok {
				return nil, quarantine.ErrNotQuarantined
			}
			s.adjustments = append(s.adjustments, input)
			return &quarantine.AdjustSentenceOutput{Applied: true, Minutes: input.Percent}, nil
		}).AnyTimes()
	s.mockQuarantine.EXPECT().ResolveMirrorChannel(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input *quarantine.ResolveMirrorChannelInput) (*quarantine.ResolveMirrorChannelOutput, error) {
			if !input.Record.PublicView {
				return &quarantine.ResolveMirrorChannelOutput{}, nil
			}
			return &quarantine.ResolveMirrorChannelOutput{ChannelID: input.Record.MirrorChannelID}, nil
		}).AnyTimes()

	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr
	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})

	repo, err := gameRepo.NewRedis(&gameRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.gameRepo = repo

	msgs, err := messaging.NewService(&messaging.ServiceConfig{Roller: dice.New(&dice.Config{Seed: 7})})
	s.Require().NoError(err)

	svc, err := New(&Config{
		GameRepo:      s.gameRepo,
		Quarantine:    s.mockQuarantine,
		Platform:      s.mockPlatform,
		Messaging:     msgs,
		DiceRoller:    s.mockRoller,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *PrisonBreakServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
	s.client.Close()
	s.mr.Close()
}

func TestPrisonBreakServiceSuite(t *testing.T) {
	suite.Run(t, new(PrisonBreakServiceTestSuite))
}

func (s *PrisonBreakServiceTestSuite) jail(memberID string, public bool) *models.QuarantineRecord {
	end := s.now.Add(time.Hour)
	minutes := 60
	record := &models.QuarantineRecord{
		GuildID:                 s.guildID,
		MemberID:                memberID,
		CreatedAt:               s.now,
		EndTime:                 &end,
		OriginalDurationMinutes: &minutes,
		ConfinementChannelID:    "cell-" + memberID,
		PublicView:              public,
	}
	if public {
		record.MirrorChannelID = "cam-1"
	}
	s.jailed[memberID] = record
	return record
}

func (s *PrisonBreakServiceTestSuite) seedGame(id string, stage int, challenge *models.ChallengeState, players ...string) *models.GameSession {
	game := &models.GameSession{
		ID:                  id,
		GuildID:             s.guildID,
		Players:             players,
		Stage:               stage,
		Challenge:           challenge,
		Active:              true,
		ChallengesCompleted: []int{},
		StartedBy:           "mod-1",
		CreatedAt:           s.now,
		UpdatedAt:           s.now,
	}
	s.Require().NoError(s.gameRepo.SaveGame(s.ctx, &gameRepo.SaveGameInput{Game: game}))
	return game
}

func (s *PrisonBreakServiceTestSuite) stored(id string) *models.GameSession {
	game, err := s.gameRepo.GetGame(s.ctx, &gameRepo.GetGameInput{GuildID: s.guildID, GameID: id})
	s.Require().NoError(err)
	return game
}

func lockPick(combination ...int) *models.ChallengeState {
	var c [4]int
	copy(c[:], combination)
	return &models.ChallengeState{
		Kind:     models.ChallengeKindLockPick,
		LockPick: &models.LockPickChallenge{Combination: c},
	}
}

func tunnel(path ...models.TunnelDirection) *models.ChallengeState {
	return &models.ChallengeState{
		Kind:   models.ChallengeKindTunnel,
		Tunnel: &models.TunnelChallenge{Path: path},
	}
}

func guard(safeSpot string) *models.ChallengeState {
	return &models.ChallengeState{
		Kind:  models.ChallengeKindGuard,
		Guard: &models.GuardChallenge{SafeSpot: safeSpot},
	}
}

func greatEscape(codeWord string) *models.ChallengeState {
	return &models.ChallengeState{
		Kind:   models.ChallengeKindEscape,
		Escape: &models.EscapeChallenge{CodeWord: codeWord, Ready: []string{}},
	}
}

func (s *PrisonBreakServiceTestSuite) attempt(authorID, content string) *SubmitAttemptOutput {
	output, err := s.service.SubmitAttempt(s.ctx, &SubmitAttemptInput{
		GuildID:    s.guildID,
		AuthorID:   authorID,
		AuthorName: authorID,
		Content:    content,
	})
	s.Require().NoError(err)
	return output
}

func (s *PrisonBreakServiceTestSuite) TestNewValidation() {
	_, err := New(nil)
	s.Equal(ErrNilConfig, err)

	_, err = New(&Config{})
	s.Equal(ErrNilGameRepo, err)

	_, err = New(&Config{GameRepo: s.gameRepo})
	s.Equal(ErrNilQuarantine, err)

	_, err = New(&Config{GameRepo: s.gameRepo, Quarantine: s.mockQuarantine, Platform: s.mockPlatform})
	s.Equal(ErrNilMessaging, err)
}

func (s *PrisonBreakServiceTestSuite) TestStartGameWithFreePrisoners() {
	s.jail("alice", true)
	s.jail("bob", false)
	s.jail("carol", false)
	s.seedGame("busy", models.StageLockPicking, lockPick(0, 0, 0, 0), "carol")

	gomock.InOrder(
		s.mockRoller.EXPECT().Roll(10).Return(4),
		s.mockRoller.EXPECT().Roll(10).Return(8),
		s.mockRoller.EXPECT().Roll(10).Return(2),
		s.mockRoller.EXPECT().Roll(10).Return(10),
	)

	s.mockPlatform.EXPECT().SendMessage(gomock.Any(), "cell-alice", gomock.Any()).Return("m1", nil)
	s.mockPlatform.EXPECT().SendMessage(gomock.Any(), "cell-bob", gomock.Any()).Return("m2", nil)

	output, err := s.service.StartGame(s.ctx, &StartGameInput{GuildID: s.guildID, StartedBy: "mod-1"})
	s.Require().NoError(err)

	s.Equal([]string{"alice", "bob"}, output.Game.Players)
	s.Equal(models.StageLockPicking, output.Game.Stage)
	s.True(output.Game.Active)
	s.Equal([4]int{3, 7, 1, 9}, output.Game.Challenge.LockPick.Combination)
	s.Equal("Stage 1: Lock Picking", output.Intro.Title)

	stored := s.stored(output.Game.ID)
	s.Equal([]string{"alice", "bob"}, stored.Players)
}

func (s *PrisonBreakServiceTestSuite) TestStartGameRejections() {
	_, err := s.service.StartGame(s.ctx, &StartGameInput{GuildID: s.guildID, PlayerID: "alice"})
	s.Equal(ErrPlayerNotQuarantined, err)

	_, err = s.service.StartGame(s.ctx, &StartGameInput{GuildID: s.guildID})
	s.Equal(ErrNoEligiblePlayers, err)

	s.jail("alice", false)
	s.seedGame("g1", models.StageLockPicking, lockPick(0, 0, 0, 0), "alice")

	_, err = s.service.StartGame(s.ctx, &StartGameInput{GuildID: s.guildID, PlayerID: "alice"})
	s.Equal(ErrPlayerAlreadyInGame, err)

	_, err = s.service.StartGame(s.ctx, &StartGameInput{GuildID: s.guildID})
	s.Equal(ErrNoEligiblePlayers, err)
}

func (s *PrisonBreakServiceTestSuite) TestLockPickWinAdvancesStage() {
	s.jail("alice", false)
	s.seedGame("g1", models.StageLockPicking, lockPick(3, 7, 1, 9), "alice")

	// every tunnel step rolls north
	s.mockRoller.EXPECT().Roll(4).Return(1).Times(models.TunnelPathLength)
	s.mockPlatform.EXPECT().SendMessage(gomock.Any(), "cell-alice", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, content string) (string, error) {
			s.Contains(content, "**Stage 2: Tunnel Digging**")
			return "m1", nil
		})

	output := s.attempt("alice", "3-7-1-9")

	s.True(output.Routed)
	s.Equal(models.AttemptOutcomeStageWon, output.Outcome)
	s.Equal(models.StageLockPicking, output.Stage)
	s.Require().NotNil(output.NextStage)
	s.Equal("Stage 2: Tunnel Digging", output.NextStage.Title)
	s.NotEmpty(output.Message)

	s.Require().Len(s.adjustments, 1)
	s.Equal("alice", s.adjustments[0].TargetID)
	s.Equal(15, s.adjustments[0].Percent)
	s.Equal(models.DirectionReduce, s.adjustments[0].Direction)
	s.Equal(models.AdjustmentReasonStageWon, s.adjustments[0].Reason)
	s.Equal("g1", s.adjustments[0].GameID)

	stored := s.stored("g1")
	s.Equal(models.StageTunnelDigging, stored.Stage)
	s.Equal([]int{1}, stored.ChallengesCompleted)
	s.Equal(models.ChallengeKindTunnel, stored.Challenge.Kind)
	s.Equal(models.SpectatorVotes{}, stored.SpectatorVotes)
}

func (s *PrisonBreakServiceTestSuite) TestMalformedCombinationsAreIgnored() {
	s.jail("alice", false)
	s.seedGame("g1", models.StageLockPicking, lockPick(3, 7, 1, 9), "alice")

	for _, content := range []string{"37-19", "3-7-1-9-2", "let me out", "12345"} {
		output := s.attempt("alice", content)
		s.True(output.Routed, content)
		s.Equal(models.AttemptOutcomeIgnored, output.Outcome, content)
		s.Empty(output.Message, content)
	}

	s.Empty(s.adjustments)
	s.Equal(0, s.stored("g1").Challenge.LockPick.Attempts)
}

func (s *PrisonBreakServiceTestSuite) TestLockPickThresholdPenalty() {
	s.jail("alice", false)
	s.seedGame("g1", models.StageLockPicking, lockPick(3, 7, 1, 9), "alice")

	first := s.attempt("alice", "3 7 0 0")
	s.Equal(models.AttemptOutcomeMiss, first.Outcome)
	s.Equal("2 of 4 digits are in the right place.", first.Feedback)

	s.Equal(models.AttemptOutcomeMiss, s.attempt("alice", "0000").Outcome)
	s.Empty(s.adjustments)

	third := s.attempt("alice", "1,2,3,4")
	s.Equal(models.AttemptOutcomeThreshold, third.Outcome)
	s.Require().Len(third.Adjustments, 1)
	s.Equal(5, third.Adjustments[0].Percent)

	s.Require().Len(s.adjustments, 1)
	s.Equal(models.DirectionExtend, s.adjustments[0].Direction)
	s.Equal(models.AdjustmentReasonStageFailed, s.adjustments[0].Reason)

	stored := s.stored("g1")
	s.Equal(models.StageLockPicking, stored.Stage)
	s.Equal(0, stored.Challenge.LockPick.Attempts)
	s.Equal([4]int{3, 7, 1, 9}, stored.Challenge.LockPick.Combination)
}

func (s *PrisonBreakServiceTestSuite) TestTunnelProgressCarriesAcrossMessages() {
	s.jail("alice", false)
	s.seedGame("g1", models.StageTunnelDigging, tunnel(models.North, models.East, models.South, models.West, models.North), "alice")

	first := s.attempt("alice", "n e")
	s.Equal(models.AttemptOutcomeProgress, first.Outcome)
	s.Equal("2 of 5 steps dug.", first.Feedback)
	s.Equal(2, s.stored("g1").Challenge.Tunnel.Progress)

	second := s.attempt("alice", "South")
	s.Equal(models.AttemptOutcomeProgress, second.Outcome)
	s.Equal("3 of 5 steps dug.", second.Feedback)

	chatter := s.attempt("alice", "dig faster")
	s.Equal(models.AttemptOutcomeIgnored, chatter.Outcome)

	stored := s.stored("g1")
	s.Equal(3, stored.Challenge.Tunnel.Progress)
	s.Equal(0, stored.Challenge.Tunnel.WrongPresses)
	s.Empty(s.adjustments)
}

func (s *PrisonBreakServiceTestSuite) TestTunnelCaveInAfterFourWrongPresses() {
	s.jail("alice", false)
	s.seedGame("g1", models.StageTunnelDigging, tunnel(models.North, models.East, models.South, models.West, models.North), "alice")

	s.Equal(models.AttemptOutcomeProgress, s.attempt("alice", "north east").Outcome)

	// wrong presses short of the threshold keep the dug steps
	for n, content := range []string{"w", "n", "east"} {
		output := s.attempt("alice", content)
		s.Equal(models.AttemptOutcomeMiss, output.Outcome, content)
		s.Empty(output.Adjustments, content)

		stored := s.stored("g1")
		s.Equal(2, stored.Challenge.Tunnel.Progress, content)
		s.Equal(n+1, stored.Challenge.Tunnel.WrongPresses, content)
	}
	s.Empty(s.adjustments)

	caveIn := s.attempt("alice", "W")
	s.Equal(models.AttemptOutcomeThreshold, caveIn.Outcome)
	s.Require().Len(caveIn.Adjustments, 1)
	s.Equal(7, caveIn.Adjustments[0].Percent)
	s.Equal(models.DirectionExtend, caveIn.Adjustments[0].Direction)

	s.Require().Len(s.adjustments, 1)
	s.Equal("alice", s.adjustments[0].TargetID)
	s.Equal(models.AdjustmentReasonStageFailed, s.adjustments[0].Reason)

	stored := s.stored("g1")
	s.Equal(models.StageTunnelDigging, stored.Stage)
	s.Equal(0, stored.Challenge.Tunnel.Progress)
	s.Equal(0, stored.Challenge.Tunnel.WrongPresses)
	s.Equal([]models.TunnelDirection{models.North, models.East, models.South, models.West, models.North}, stored.Challenge.Tunnel.Path)
}

func (s *PrisonBreakServiceTestSuite) TestTunnelFullPathAdvancesStage() {
	s.jail("alice", false)
	game := s.seedGame("g1", models.StageTunnelDigging, tunnel(models.North, models.East, models.South, models.West, models.North), "alice")
	game.ChallengesCompleted = []int{models.StageLockPicking}
	s.Require().NoError(s.gameRepo.SaveGame(s.ctx, &gameRepo.SaveGameInput{Game: game}))

	// the fourth guard spot is the vent
	s.mockRoller.EXPECT().Roll(len(models.GuardSpots)).Return(4)
	s.mockPlatform.EXPECT().SendMessage(gomock.Any(), "cell-alice", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, content string) (string, error) {
			s.Contains(content, "**Stage 3: Guard Evasion**")
			return "m1", nil
		})

	output := s.attempt("alice", "n, e, s, w, n")
	s.Equal(models.AttemptOutcomeStageWon, output.Outcome)
	s.Equal(models.StageTunnelDigging, output.Stage)
	s.Require().NotNil(output.NextStage)
	s.Equal("Stage 3: Guard Evasion", output.NextStage.Title)

	s.Require().Len(s.adjustments, 1)
	s.Equal(20, s.adjustments[0].Percent)
	s.Equal(models.DirectionReduce, s.adjustments[0].Direction)
	s.Equal(models.AdjustmentReasonStageWon, s.adjustments[0].Reason)

	stored := s.stored("g1")
	s.Equal(models.StageGuardEvasion, stored.Stage)
	s.Equal([]int{models.StageLockPicking, models.StageTunnelDigging}, stored.ChallengesCompleted)
	s.Equal(models.ChallengeKindGuard, stored.Challenge.Kind)
	s.Equal("vent", stored.Challenge.Guard.SafeSpot)
	s.Nil(stored.Challenge.Tunnel)
}

func (s *PrisonBreakServiceTestSuite) TestGuardIgnoresUnknownSpots() {
	s.jail("alice", false)
	s.seedGame("g1", models.StageGuardEvasion, guard("vent"), "alice")

	for _, content := range []string{"garden", "the laundry", "vent kitchen", ""} {
		output := s.attempt("alice", content)
		s.True(output.Routed, content)
		s.Equal(models.AttemptOutcomeIgnored, output.Outcome, content)
	}

	s.Empty(s.adjustments)
	s.Equal(0, s.stored("g1").Challenge.Guard.Attempts)
}

func (s *PrisonBreakServiceTestSuite) TestGuardCaughtAfterFourWrongSpots() {
	s.jail("alice", false)
	s.seedGame("g1", models.StageGuardEvasion, guard("vent"), "alice")

	for n, spot := range []string{"laundry", "kitchen", "library"} {
		output := s.attempt("alice", spot)
		s.Equal(models.AttemptOutcomeMiss, output.Outcome, spot)
		s.Equal(fmt.Sprintf("A guard checks the %s.", spot), output.Feedback)
		s.Equal(n+1, s.stored("g1").Challenge.Guard.Attempts)
	}
	s.Empty(s.adjustments)

	caught := s.attempt("alice", "Chapel")
	s.Equal(models.AttemptOutcomeThreshold, caught.Outcome)
	s.Equal("Caught by the guards!", caught.Feedback)

	s.Require().Len(s.adjustments, 1)
	s.Equal(10, s.adjustments[0].Percent)
	s.Equal(models.DirectionExtend, s.adjustments[0].Direction)
	s.Equal(models.AdjustmentReasonStageFailed, s.adjustments[0].Reason)

	stored := s.stored("g1")
	s.Equal(models.StageGuardEvasion, stored.Stage)
	s.Equal(0, stored.Challenge.Guard.Attempts)
	s.Equal("vent", stored.Challenge.Guard.SafeSpot)
}

func (s *PrisonBreakServiceTestSuite) TestGuardSafeSpotAdvancesToGreatEscape() {
	s.jail("alice", false)
	s.jail("bob", false)
	s.seedGame("g1", models.StageGuardEvasion, guard("vent"), "alice", "bob")

	s.mockRoller.EXPECT().Roll(len(models.EscapeCodeWords)).Return(2)
	s.mockPlatform.EXPECT().SendMessage(gomock.Any(), "cell-alice", gomock.Any()).Return("m1", nil)
	s.mockPlatform.EXPECT().SendMessage(gomock.Any(), "cell-bob", gomock.Any()).Return("m2", nil)

	output := s.attempt("bob", " Vent ")
	s.Equal(models.AttemptOutcomeStageWon, output.Outcome)
	s.Require().NotNil(output.NextStage)
	s.Equal("Stage 4: Great Escape", output.NextStage.Title)

	// only the player who found the spot is rewarded
	s.Require().Len(s.adjustments, 1)
	s.Equal("bob", s.adjustments[0].TargetID)
	s.Equal(25, s.adjustments[0].Percent)
	s.Equal(models.DirectionReduce, s.adjustments[0].Direction)

	stored := s.stored("g1")
	s.Equal(models.StageGreatEscape, stored.Stage)
	s.Equal([]int{models.StageGuardEvasion}, stored.ChallengesCompleted)
	s.Equal(models.ChallengeKindEscape, stored.Challenge.Kind)
	s.Equal("escape", stored.Challenge.Escape.CodeWord)
	s.Empty(stored.Challenge.Escape.Ready)
}

func (s *PrisonBreakServiceTestSuite) TestConcurrentWinsAdvanceOnce() {
	s.jail("alice", false)
	s.jail("bob", false)
	s.seedGame("g1", models.StageLockPicking, lockPick(3, 7, 1, 9), "alice", "bob")

	// a second advance would roll another path and announce again
	s.mockRoller.EXPECT().Roll(len(models.TunnelDirections)).Return(1).Times(models.TunnelPathLength)
	s.mockPlatform.EXPECT().SendMessage(gomock.Any(), gomock.Any(), gomock.Any()).Return("m", nil).Times(2)

	var wg sync.WaitGroup
	outcomes := make([]models.AttemptOutcome, 2)
	errs := make([]error, 2)
	for n, playerID := range []string{"alice", "bob"} {
		n, playerID := n, playerID
		wg.Add(1)
		go func() {
			defer wg.Done()
			output, err := s.service.SubmitAttempt(s.ctx, &SubmitAttemptInput{
				GuildID:    s.guildID,
				AuthorID:   playerID,
				AuthorName: playerID,
				Content:    "3719",
			})
			errs[n] = err
			if err == nil {
				outcomes[n] = output.Outcome
			}
		}()
	}
	wg.Wait()

	s.Require().NoError(errs[0])
	s.Require().NoError(errs[1])
	s.ElementsMatch([]models.AttemptOutcome{models.AttemptOutcomeStageWon, models.AttemptOutcomeIgnored}, outcomes)
	s.Len(s.adjustments, 1)

	stored := s.stored("g1")
	s.Equal(models.StageTunnelDigging, stored.Stage)
	s.Equal([]int{models.StageLockPicking}, stored.ChallengesCompleted)
}

func (s *PrisonBreakServiceTestSuite) TestGreatEscapeNeedsEveryPlayer() {
	s.jail("alice", true)
	s.jail("bob", true)
	s.seedGame("g1", models.StageGreatEscape, greatEscape("freedom"), "alice", "bob")

	first := s.attempt("alice", "Freedom")
	s.Equal(models.AttemptOutcomeProgress, first.Outcome)
	s.Equal("Waiting on 1 more.", first.Feedback)

	second := s.attempt("bob", "escape")
	s.Equal(models.AttemptOutcomeMiss, second.Outcome)
	s.Equal([]string{"alice"}, s.stored("g1").Challenge.Escape.Ready)

	third := s.attempt("bob", " freedom ")
	s.Equal(models.AttemptOutcomeEscaped, third.Outcome)
	s.True(third.Completed)
	s.Nil(third.NextStage)

	s.Require().Len(s.adjustments, 2)
	s.Equal("alice", s.adjustments[0].TargetID)
	s.Equal("bob", s.adjustments[1].TargetID)
	for _, adj := range s.adjustments {
		s.Equal(30, adj.Percent)
		s.Equal(models.DirectionReduce, adj.Direction)
	}

	stored := s.stored("g1")
	s.False(stored.Active)
	s.True(stored.Completed)
	s.Nil(stored.Challenge)
	s.Equal(models.StageGreatEscape, stored.Stage)
	s.Equal([]int{4}, stored.ChallengesCompleted)

	after := s.attempt("alice", "freedom")
	s.False(after.Routed)
}

func (s *PrisonBreakServiceTestSuite) TestGreatEscapeThresholdPenalisesEveryPlayer() {
	s.jail("alice", false)
	s.jail("bob", false)
	game := s.seedGame("g1", models.StageGreatEscape, greatEscape("freedom"), "alice", "bob")
	game.Challenge.Escape.WrongCodes = 4
	game.Challenge.Escape.Ready = []string{"alice"}
	s.Require().NoError(s.gameRepo.SaveGame(s.ctx, &gameRepo.SaveGameInput{Game: game}))

	output := s.attempt("bob", "liberty")
	s.Equal(models.AttemptOutcomeThreshold, output.Outcome)

	s.Require().Len(s.adjustments, 2)
	s.Equal(15, s.adjustments[0].Percent)
	s.Equal(models.DirectionExtend, s.adjustments[1].Direction)

	stored := s.stored("g1")
	s.Empty(stored.Challenge.Escape.Ready)
	s.Equal(0, stored.Challenge.Escape.WrongCodes)
}

func (s *PrisonBreakServiceTestSuite) TestHelpfulCrowdAidsFailedAttempt() {
	s.jail("alice", true)
	game := s.seedGame("g1", models.StageLockPicking, lockPick(3, 7, 1, 9), "alice")
	game.SpectatorVotes = models.SpectatorVotes{Help: 3}
	s.Require().NoError(s.gameRepo.SaveGame(s.ctx, &gameRepo.SaveGameInput{Game: game}))

	s.mockRoller.EXPECT().Chance(30).Return(true)

	output := s.attempt("alice", "0000")
	s.Equal(models.AttemptOutcomeAided, output.Outcome)

	s.Require().Len(s.adjustments, 1)
	s.Equal(2, s.adjustments[0].Percent)
	s.Equal(models.DirectionReduce, s.adjustments[0].Direction)
	s.Equal(models.AdjustmentReasonSpectatorHelp, s.adjustments[0].Reason)

	stored := s.stored("g1")
	s.Equal(0, stored.Challenge.LockPick.Attempts)
	s.Equal(models.StageLockPicking, stored.Stage)
}

func (s *PrisonBreakServiceTestSuite) TestSaboteursSpoilWinningAttempt() {
	s.jail("alice", true)
	game := s.seedGame("g1", models.StageLockPicking, lockPick(3, 7, 1, 9), "alice")
	game.SpectatorVotes = models.SpectatorVotes{Help: 1, Sabotage: 4}
	s.Require().NoError(s.gameRepo.SaveGame(s.ctx, &gameRepo.SaveGameInput{Game: game}))

	s.mockRoller.EXPECT().Chance(20).Return(true)

	output := s.attempt("alice", "3719")
	s.Equal(models.AttemptOutcomeSabotaged, output.Outcome)
	s.Nil(output.NextStage)

	s.Require().Len(s.adjustments, 1)
	s.Equal(3, s.adjustments[0].Percent)
	s.Equal(models.DirectionExtend, s.adjustments[0].Direction)
	s.Equal(models.AdjustmentReasonSpectatorSabotage, s.adjustments[0].Reason)

	stored := s.stored("g1")
	s.Equal(models.StageLockPicking, stored.Stage)
	s.Empty(stored.ChallengesCompleted)
	s.Equal(models.SpectatorVotes{Help: 1, Sabotage: 4}, stored.SpectatorVotes)
}

func (s *PrisonBreakServiceTestSuite) TestCrowdRollThatFailsChangesNothing() {
	s.jail("alice", true)
	game := s.seedGame("g1", models.StageLockPicking, lockPick(3, 7, 1, 9), "alice")
	game.SpectatorVotes = models.SpectatorVotes{Help: 5}
	s.Require().NoError(s.gameRepo.SaveGame(s.ctx, &gameRepo.SaveGameInput{Game: game}))

	s.mockRoller.EXPECT().Chance(30).Return(false)

	output := s.attempt("alice", "0000")
	s.Equal(models.AttemptOutcomeMiss, output.Outcome)
	s.Empty(s.adjustments)
	s.Equal(1, s.stored("g1").Challenge.LockPick.Attempts)
}

func (s *PrisonBreakServiceTestSuite) TestAttemptNotRouted() {
	out := s.attempt("alice", "3719")
	s.False(out.Routed)

	s.jail("alice", false)
	out = s.attempt("alice", "3719")
	s.False(out.Routed)

	s.jail("bob", false)
	s.seedGame("g1", models.StageLockPicking, lockPick(3, 7, 1, 9), "bob")
	out = s.attempt("alice", "3719")
	s.False(out.Routed)
}

func (s *PrisonBreakServiceTestSuite) TestStopGame() {
	s.jail("alice", false)
	s.jail("bob", false)
	s.seedGame("g1", models.StageLockPicking, lockPick(3, 7, 1, 9), "alice")
	s.seedGame("g2", models.StageLockPicking, lockPick(3, 7, 1, 9), "bob")

	output, err := s.service.StopGame(s.ctx, &StopGameInput{GuildID: s.guildID, PlayerID: "bob"})
	s.Require().NoError(err)
	s.Require().Len(output.Stopped, 1)
	s.Equal("g2", output.Stopped[0].ID)

	s.False(s.stored("g2").Active)
	s.True(s.stored("g1").Active)
	s.False(s.attempt("bob", "3719").Routed)

	output, err = s.service.StopGame(s.ctx, &StopGameInput{GuildID: s.guildID})
	s.Require().NoError(err)
	s.Len(output.Stopped, 1)

	_, err = s.service.StopGame(s.ctx, &StopGameInput{GuildID: s.guildID})
	s.Equal(ErrNoActiveGame, err)
}

func (s *PrisonBreakServiceTestSuite) TestGetStatus() {
	s.jail("alice", false)
	s.seedGame("g1", models.StageLockPicking, lockPick(3, 7, 1, 9), "alice", "bob")

	output, err := s.service.GetStatus(s.ctx, &GetStatusInput{GuildID: s.guildID})
	s.Require().NoError(err)
	s.Require().Len(output.Games, 1)

	status := output.Games[0]
	s.Equal("Lock Picking", status.Rules.Name)
	s.Require().Len(status.Players, 2)
	s.True(status.Players[0].Quarantined)
	s.NotNil(status.Players[0].EndTime)
	s.False(status.Players[1].Quarantined)
}

func (s *PrisonBreakServiceTestSuite) TestCollectStale() {
	s.jail("alice", false)
	s.seedGame("g1", models.StageGreatEscape, greatEscape("freedom"), "alice", "bob")
	s.seedGame("g2", models.StageLockPicking, lockPick(3, 7, 1, 9), "carol")

	game := s.stored("g1")
	game.Challenge.Escape.Ready = []string{"bob"}
	s.Require().NoError(s.gameRepo.SaveGame(s.ctx, &gameRepo.SaveGameInput{Game: game}))

	output, err := s.service.CollectStale(s.ctx, &CollectStaleInput{})
	s.Require().NoError(err)
	s.Equal(2, output.PlayersRemoved)
	s.Equal(1, output.GamesDeactivated)

	g1 := s.stored("g1")
	s.True(g1.Active)
	s.Equal([]string{"alice"}, g1.Players)
	s.Empty(g1.Challenge.Escape.Ready)

	s.False(s.stored("g2").Active)
}

func (s *PrisonBreakServiceTestSuite) TestThrowAtNamedPrisoner() {
	s.jail("bob", true)

	s.mockPlatform.EXPECT().Member(gomock.Any(), s.guildID, "bob").
		Return(&platform.Member{ID: "bob", DisplayName: "Bobby"}, nil)
	s.mockPlatform.EXPECT().SendMessage(gomock.Any(), "cell-bob", gomock.Any()).Return("m1", nil)
	s.mockPlatform.EXPECT().SendMessage(gomock.Any(), "cam-1", gomock.Any()).Return("m2", nil)

	output, err := s.service.Throw(s.ctx, &ThrowInput{
		GuildID:     s.guildID,
		ThrowerID:   "alice",
		ThrowerName: "Alice",
		Item:        "Tomato",
		TargetID:    "bob",
	})
	s.Require().NoError(err)
	s.Equal("bob", output.TargetID)
	s.Contains(output.Message, "Alice")
	s.Contains(output.Message, "Bobby")
	s.Nil(output.Offer)
}

func (s *PrisonBreakServiceTestSuite) TestThrowAtRandomPublicPrisoner() {
	s.jail("alice", false)
	s.jail("bob", true)

	s.mockRoller.EXPECT().Roll(1).Return(1)
	s.mockPlatform.EXPECT().Member(gomock.Any(), s.guildID, "bob").Return(nil, platform.ErrNotFound)
	s.mockPlatform.EXPECT().SendMessage(gomock.Any(), gomock.Any(), gomock.Any()).Return("m", nil).Times(2)

	output, err := s.service.Throw(s.ctx, &ThrowInput{GuildID: s.guildID, ThrowerID: "carol", ThrowerName: "Carol", Item: "flower"})
	s.Require().NoError(err)
	s.Equal("bob", output.TargetID)
	s.Contains(output.Message, "<@bob>")
}

func (s *PrisonBreakServiceTestSuite) TestThrowRejections() {
	s.jail("alice", false)

	_, err := s.service.Throw(s.ctx, &ThrowInput{GuildID: s.guildID, ThrowerID: "carol", Item: "brick"})
	s.Equal(ErrUnknownItem, err)

	_, err = s.service.Throw(s.ctx, &ThrowInput{GuildID: s.guildID, ThrowerID: "alice", Item: "tomato"})
	s.Equal(ErrThrowerQuarantined, err)

	_, err = s.service.Throw(s.ctx, &ThrowInput{GuildID: s.guildID, ThrowerID: "carol", Item: "tomato", TargetID: "dave"})
	s.Equal(ErrTargetNotQuarantined, err)

	_, err = s.service.Throw(s.ctx, &ThrowInput{GuildID: s.guildID, ThrowerID: "carol", Item: "tomato"})
	s.Equal(ErrNoTargets, err)
}

func (s *PrisonBreakServiceTestSuite) TestThrowCakeOffersChallenge() {
	s.jail("bob", false)

	s.mockPlatform.EXPECT().Member(gomock.Any(), s.guildID, "bob").
		Return(&platform.Member{ID: "bob", DisplayName: "Bobby"}, nil)

	// "keys" with an identity shuffle is reversed
	s.mockRoller.EXPECT().Roll(len(cakeWords)).Return(7)
	s.mockRoller.EXPECT().Roll(4).Return(4)
	s.mockRoller.EXPECT().Roll(3).Return(3)
	s.mockRoller.EXPECT().Roll(2).Return(2)

	var offered *quarantine.OfferChallengeInput
	s.mockQuarantine.EXPECT().OfferChallenge(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input *quarantine.OfferChallengeInput) (*quarantine.OfferChallengeOutput, error) {
			offered = input
			return &quarantine.OfferChallengeOutput{Offer: &models.ChallengeOffer{
				ID:            "offer-1",
				Prompt:        input.Prompt,
				Answer:        input.Answer,
				RewardPercent: input.RewardPercent,
			}}, nil
		})

	gomock.InOrder(
		s.mockPlatform.EXPECT().SendMessage(gomock.Any(), "cell-bob", gomock.Any()).Return("m1", nil),
		s.mockPlatform.EXPECT().SendMessage(gomock.Any(), "cell-bob", gomock.Any()).Return("m2", nil),
	)

	output, err := s.service.Throw(s.ctx, &ThrowInput{
		GuildID:     s.guildID,
		ThrowerID:   "alice",
		ThrowerName: "Alice",
		Item:        ItemCake,
		TargetID:    "bob",
	})
	s.Require().NoError(err)
	s.Require().NotNil(output.Offer)

	s.Require().NotNil(offered)
	s.Equal("keys", offered.Answer)
	s.Equal(CakeRewardPercent, offered.RewardPercent)
	s.Equal(CakeChallengeTTL, offered.TTL)
	s.Equal("alice", offered.OfferedBy)
	s.Contains(offered.Prompt, "**syek**")
}

func (s *PrisonBreakServiceTestSuite) TestThrowCakeAtFullPrisonerIsJustCake() {
	s.jail("bob", false)

	s.mockPlatform.EXPECT().Member(gomock.Any(), s.guildID, "bob").
		Return(&platform.Member{ID: "bob", DisplayName: "Bobby"}, nil)
	s.mockRoller.EXPECT().Roll(gomock.Any()).Return(1).AnyTimes()
	s.mockQuarantine.EXPECT().OfferChallenge(gomock.Any(), gomock.Any()).Return(nil, quarantine.ErrTooManyChallenges)
	s.mockPlatform.EXPECT().SendMessage(gomock.Any(), "cell-bob", gomock.Any()).Return("m1", nil)

	output, err := s.service.Throw(s.ctx, &ThrowInput{GuildID: s.guildID, ThrowerID: "alice", Item: ItemCake, TargetID: "bob"})
	s.Require().NoError(err)
	s.Nil(output.Offer)
}
