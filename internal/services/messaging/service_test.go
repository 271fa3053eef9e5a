package messaging

import (
	"context"
	"testing"

	diceMocks "github.com/KirkDiggler/jailbird/internal/dice/mocks"
	"github.com/KirkDiggler/jailbird/internal/models"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type MessagingServiceTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockRoller *diceMocks.MockRoller
	service    Service
	ctx        context.Context
}

func (s *MessagingServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRoller = diceMocks.NewMockRoller(s.mockCtrl)
	s.ctx = context.Background()

	// always pick the first variant
	s.mockRoller.EXPECT().Roll(gomock.Any()).Return(1).AnyTimes()

	svc, err := NewService(&ServiceConfig{Roller: s.mockRoller})
	s.Require().NoError(err)
	s.service = svc
}

func (s *MessagingServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *MessagingServiceTestSuite) TestThrowMessageNamesBothMembers() {
	output, err := s.service.GetThrowMessage(s.ctx, &GetThrowMessageInput{
		ThrowerName: "alice",
		TargetName:  "bob",
		Item:        "Tomato",
	})
	s.Require().NoError(err)
	s.Equal("🍅 alice lobs a tomato through the bars. It splats all over bob. The guards pretend not to see.", output.Message)
	s.Equal(ToneFunny, output.Tone)
}

func (s *MessagingServiceTestSuite) TestReleaseMessageDependsOnTrigger() {
	expired, err := s.service.GetReleaseMessage(s.ctx, &GetReleaseMessageInput{MemberMention: "<@1>", Expired: true})
	s.Require().NoError(err)
	s.Contains(expired.Message, "served their time")

	early, err := s.service.GetReleaseMessage(s.ctx, &GetReleaseMessageInput{MemberMention: "<@1>"})
	s.Require().NoError(err)
	s.Contains(early.Message, "released early")
}

func (s *MessagingServiceTestSuite) TestStageIntroListsRules() {
	output, err := s.service.GetStageIntroMessage(s.ctx, &GetStageIntroMessageInput{
		Stage:   models.StageGreatEscape,
		Players: 2,
	})
	s.Require().NoError(err)
	s.Equal("Stage 4: Great Escape", output.Title)
	s.Contains(output.Message, "freedom, escape, sunrise, liberty")
	s.Contains(output.Message, "All 2 of you")
	s.Contains(output.Message, "-30% sentence")
	s.Contains(output.Message, "+15% sentence")

	_, err = s.service.GetStageIntroMessage(s.ctx, &GetStageIntroMessageInput{Stage: 5})
	s.Error(err)
}

func (s *MessagingServiceTestSuite) TestIgnoredAttemptHasNoMessage() {
	output, err := s.service.GetAttemptMessage(s.ctx, &GetAttemptMessageInput{
		PlayerName: "bob",
		Outcome:    models.AttemptOutcomeIgnored,
	})
	s.Require().NoError(err)
	s.Empty(output.Message)

	output, err = s.service.GetAttemptMessage(s.ctx, &GetAttemptMessageInput{
		PlayerName: "bob",
		Outcome:    models.AttemptOutcomeStageWon,
	})
	s.Require().NoError(err)
	s.Equal("✅ bob cracked it! On to the next stage.", output.Message)
	s.Equal(ToneCelebration, output.Tone)
}

func (s *MessagingServiceTestSuite) TestErrorMessageFallsBackToGeneric() {
	output, err := s.service.GetErrorMessage(s.ctx, &GetErrorMessageInput{ErrorType: "unheard_of"})
	s.Require().NoError(err)
	s.Equal("Something went wrong in the cell block. Try again later.", output.Message)
}

func TestMessagingServiceSuite(t *testing.T) {
	suite.Run(t, new(MessagingServiceTestSuite))
}
