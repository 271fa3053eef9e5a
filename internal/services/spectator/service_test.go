package spectator

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/KirkDiggler/jailbird/internal/common/clock/mocks"
	"github.com/KirkDiggler/jailbird/internal/models"
	platformMocks "github.com/KirkDiggler/jailbird/internal/platform/mocks"
	gameRepo "github.com/KirkDiggler/jailbird/internal/repositories/prison_game"
	"github.com/KirkDiggler/jailbird/internal/services/quarantine"
	quarantineMocks "github.com/KirkDiggler/jailbird/internal/services/quarantine/mocks"
)

type SpectatorServiceTestSuite struct {
	suite.Suite
	mockCtrl       *gomock.Controller
	mockQuarantine *quarantineMocks.MockService
	mockPlatform   *platformMocks.MockPlatform
	mockClock      *clockMocks.MockClock

	mr       *miniredis.Miniredis
	client   *redis.Client
	gameRepo gameRepo.Repository

	service Service
	ctx     context.Context
	now     time.Time
	guildID string
}

func (s *SpectatorServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockQuarantine = quarantineMocks.NewMockService(s.mockCtrl)
	s.mockPlatform = platformMocks.NewMockPlatform(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.ctx = context.Background()
	s.now = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.guildID = "guild-1"

	s.mockClock.EXPECT().Now().Return(s.now).AnyTimes()

	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr
	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})

	repo, err := gameRepo.NewRedis(&gameRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.gameRepo = repo

	svc, err := New(&Config{
		GameRepo:   s.gameRepo,
		Quarantine: s.mockQuarantine,
		Platform:   s.mockPlatform,
		Clock:      s.mockClock,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *SpectatorServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
	s.client.Close()
	s.mr.Close()
}

func TestSpectatorServiceSuite(t *testing.T) {
	suite.Run(t, new(SpectatorServiceTestSuite))
}

func (s *SpectatorServiceTestSuite) seedGame(id string, active bool) {
	s.Require().NoError(s.gameRepo.SaveGame(s.ctx, &gameRepo.SaveGameInput{Game: &models.GameSession{
		ID:        id,
		GuildID:   s.guildID,
		Players:   []string{"prisoner"},
		Stage:     models.StageLockPicking,
		Challenge: &models.ChallengeState{Kind: models.ChallengeKindLockPick, LockPick: &models.LockPickChallenge{}},
		Active:    active,
		CreatedAt: s.now,
		UpdatedAt: s.now,
	}}))
}

func (s *SpectatorServiceTestSuite) votes(id string) models.SpectatorVotes {
	game, err := s.gameRepo.GetGame(s.ctx, &gameRepo.GetGameInput{GuildID: s.guildID, GameID: id})
	s.Require().NoError(err)
	return game.SpectatorVotes
}

func (s *SpectatorServiceTestSuite) expectMirror(isMirror bool) {
	s.mockQuarantine.EXPECT().GetMirrorAudience(gomock.Any(), &quarantine.GetMirrorAudienceInput{
		GuildID:   s.guildID,
		ChannelID: "cam-1",
	}).Return(&quarantine.GetMirrorAudienceOutput{IsMirror: isMirror}, nil)
}

func (s *SpectatorServiceTestSuite) react(userID, emoji string) *HandleReactionOutput {
	output, err := s.service.HandleReaction(s.ctx, &HandleReactionInput{
		GuildID:   s.guildID,
		ChannelID: "cam-1",
		MessageID: "msg-1",
		UserID:    userID,
		Emoji:     emoji,
	})
	s.Require().NoError(err)
	return output
}

func (s *SpectatorServiceTestSuite) TestSignalFor() {
	s.Equal(SignalHelp, SignalFor("🙏"))
	s.Equal(SignalHelp, SignalFor("🗝️"))
	s.Equal(SignalHelp, SignalFor("\U0001F5DD"))
	s.Equal(SignalSabotage, SignalFor("🚨"))
	s.Equal(SignalNone, SignalFor("😂"))
}

func (s *SpectatorServiceTestSuite) TestHelpCountsOnEveryActiveGame() {
	s.seedGame("g1", true)
	s.seedGame("g2", true)
	s.seedGame("g3", false)
	s.expectMirror(true)
	s.mockQuarantine.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, quarantine.ErrNotQuarantined)

	output := s.react("fan", "💪")
	s.True(output.Counted)
	s.Equal(2, output.Games)
	s.Equal(SignalHelp, output.Signal)

	s.Equal(models.SpectatorVotes{Help: 1}, s.votes("g1"))
	s.Equal(models.SpectatorVotes{Help: 1}, s.votes("g2"))
	s.Equal(models.SpectatorVotes{}, s.votes("g3"))
}

func (s *SpectatorServiceTestSuite) TestSabotageCounts() {
	s.seedGame("g1", true)
	s.expectMirror(true)
	s.mockQuarantine.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, quarantine.ErrNotQuarantined)

	output := s.react("snitch", "🔒")
	s.True(output.Counted)
	s.Equal(models.SpectatorVotes{Sabotage: 1}, s.votes("g1"))
}

func (s *SpectatorServiceTestSuite) TestPrisonerReactionIsRemoved() {
	s.seedGame("g1", true)
	s.expectMirror(true)
	s.mockQuarantine.EXPECT().Get(gomock.Any(), &quarantine.GetInput{GuildID: s.guildID, MemberID: "prisoner"}).
		Return(&quarantine.GetOutput{Record: &models.QuarantineRecord{MemberID: "prisoner"}}, nil)
	s.mockPlatform.EXPECT().RemoveReaction(gomock.Any(), "cam-1", "msg-1", "🙏", "prisoner").Return(nil)

	output := s.react("prisoner", "🙏")
	s.False(output.Counted)
	s.True(output.Removed)
	s.Equal(models.SpectatorVotes{}, s.votes("g1"))
}

func (s *SpectatorServiceTestSuite) TestIgnoredReactions() {
	s.seedGame("g1", true)

	// not a signal, no lookups at all
	s.False(s.react("fan", "😂").Counted)

	s.expectMirror(false)
	s.False(s.react("fan", "🙏").Counted)

	s.Equal(models.SpectatorVotes{}, s.votes("g1"))
}

func (s *SpectatorServiceTestSuite) TestNoActiveGames() {
	s.seedGame("g1", false)
	s.expectMirror(true)

	output := s.react("fan", "🙏")
	s.False(output.Counted)
	s.False(output.Removed)
}
