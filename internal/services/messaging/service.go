package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/jailbird/internal/dice"
	"github.com/KirkDiggler/jailbird/internal/models"
)

// service implements the Service interface
type service struct {
	roller dice.Roller
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	if config == nil {
		return nil, errors.New("config cannot be nil")
	}

	roller := config.Roller
	if roller == nil {
		roller = dice.New(nil)
	}

	return &service{
		roller: roller,
	}, nil
}

func (s *service) pick(messages []string) string {
	return dice.Pick(s.roller, messages)
}

// GetThrowMessage returns flavour text for an item thrown at a prisoner
func (s *service) GetThrowMessage(ctx context.Context, input *GetThrowMessageInput) (*GetThrowMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var messages []string
	tone := ToneFunny

	switch strings.ToLower(input.Item) {
	case "tomato":
		messages = []string{
			"🍅 %[1]s lobs a tomato through the bars. It splats all over %[2]s. The guards pretend not to see.",
			"🍅 SPLAT! %[1]s just tomato'd %[2]s. Ketchup is not included in the prison menu.",
			"🍅 %[2]s is now 40%% tomato. Courtesy of %[1]s.",
		}
	case "flower":
		tone = ToneEncouraging
		messages = []string{
			"🌸 %[1]s slips a flower between the bars for %[2]s. Hang in there.",
			"🌸 A single flower lands in %[2]s's cell. The card just says \"%[1]s\".",
			"🌸 %[1]s tosses %[2]s a flower. Even the warden looks touched.",
		}
	case "cake":
		tone = ToneSarcastic
		messages = []string{
			"🎂 %[1]s sends %[2]s a suspiciously heavy cake. Something rattles inside...",
			"🎂 A cake for %[2]s, from %[1]s. Happy birthday! Definitely nothing hidden in it.",
			"🎂 %[1]s bakes %[2]s a cake. The guards did not check the filling.",
		}
	case "pillow":
		messages = []string{
			"🛏️ %[1]s launches a pillow at %[2]s. Direct hit. Fluff everywhere.",
			"🛏️ %[2]s catches a pillow to the face. %[1]s calls it a care package.",
		}
	case "rubber duck":
		messages = []string{
			"🦆 A rubber duck bounces off %[2]s's head. %[1]s is not sorry.",
			"🦆 %[1]s throws a rubber duck to %[2]s. It squeaks judgementally.",
			"🦆 %[2]s has a new cellmate: a rubber duck from %[1]s.",
		}
	default:
		tone = ToneNeutral
		messages = []string{
			"%[1]s throws something at %[2]s. Nobody is quite sure what it was.",
		}
	}

	return &GetThrowMessageOutput{
		Message: fmt.Sprintf(s.pick(messages), input.ThrowerName, input.TargetName),
		Tone:    tone,
	}, nil
}

// GetReleaseMessage returns the announcement for a released member
func (s *service) GetReleaseMessage(ctx context.Context, input *GetReleaseMessageInput) (*GetReleaseMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var messages []string
	if input.Expired {
		messages = []string{
			"🔓 %s has served their time and walks free. Behave out there.",
			"🔓 The cell door creaks open. %s has done their time.",
			"🔓 Time's up! %s is released back into the wild.",
			"🔓 %s's sentence is over. The jail cam will miss you.",
		}
	} else {
		messages = []string{
			"🔓 %s has been released early by the warden.",
			"🔓 Good behaviour pays off. %s is free to go.",
			"🔓 %s got a pardon. Don't make us regret it.",
		}
	}

	return &GetReleaseMessageOutput{
		Message: fmt.Sprintf(s.pick(messages), input.MemberMention),
	}, nil
}

// GetStageIntroMessage returns the briefing for a prison-break stage
func (s *service) GetStageIntroMessage(ctx context.Context, input *GetStageIntroMessageInput) (*GetStageIntroMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	rules, ok := models.RulesFor(input.Stage)
	if !ok {
		return nil, fmt.Errorf("unknown stage %d", input.Stage)
	}

	var message string
	switch input.Stage {
	case models.StageLockPicking:
		message = "The cell lock has a four digit combination. Send your guess as four digits, like `3-7-1-9` or `3719`."
	case models.StageTunnelDigging:
		message = "Dig the tunnel one step at a time. Send directions like `N`, `S`, `E`, `W` (or `north`...). A wrong turn caves in part of the tunnel."
	case models.StageGuardEvasion:
		message = fmt.Sprintf("The guards sweep every spot but one. Pick your hiding place: %s.", strings.Join(models.GuardSpots, ", "))
	case models.StageGreatEscape:
		message = fmt.Sprintf("The getaway driver only answers to the code word. It is one of: %s.", strings.Join(models.EscapeCodeWords, ", "))
		if input.Players > 1 {
			message += fmt.Sprintf(" All %d of you must send it.", input.Players)
		}
	}

	message += fmt.Sprintf("\nWin: -%d%% sentence. %d wrong tries: +%d%% sentence.",
		rules.RewardPercent, rules.FailureThreshold, rules.PenaltyPercent)

	return &GetStageIntroMessageOutput{
		Title:   fmt.Sprintf("Stage %d: %s", rules.Stage, rules.Name),
		Message: message,
	}, nil
}

// GetAttemptMessage returns the reaction to an evaluated game attempt
func (s *service) GetAttemptMessage(ctx context.Context, input *GetAttemptMessageInput) (*GetAttemptMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var messages []string
	tone := ToneFunny

	switch input.Outcome {
	case models.AttemptOutcomeMiss:
		messages = []string{
			"Nope. %s will have to try again.",
			"Not even close, %s. Well, maybe close.",
			"The guards chuckle at %s's attempt.",
		}
	case models.AttemptOutcomeProgress:
		tone = ToneEncouraging
		messages = []string{
			"%s is making progress. Keep going!",
			"Nice one, %s. Almost there.",
		}
	case models.AttemptOutcomeThreshold:
		tone = ToneSarcastic
		messages = []string{
			"🚨 Too many mistakes! The guards noticed %s. Sentence extended.",
			"🚨 Alarm! %s fumbled one time too many. More time on the clock.",
		}
	case models.AttemptOutcomeStageWon:
		tone = ToneCelebration
		messages = []string{
			"✅ %s cracked it! On to the next stage.",
			"✅ Brilliant work, %s. The path ahead is open.",
		}
	case models.AttemptOutcomeEscaped:
		tone = ToneCelebration
		messages = []string{
			"🏃 %s and crew made the great escape! Sentences slashed.",
			"🏃 Over the wall! %s's gang is out of here.",
		}
	case models.AttemptOutcomeAided:
		tone = ToneEncouraging
		messages = []string{
			"🙏 That was wrong, but the crowd slipped %s a little help. Small sentence cut.",
			"💪 The spectators cheered %s on. The warden knocked a bit off the sentence.",
		}
	case models.AttemptOutcomeSabotaged:
		tone = ToneSarcastic
		messages = []string{
			"👎 %s had it, but someone in the crowd tipped off the guards!",
			"🚨 Sabotage! The spectators ratted %s out right at the finish.",
		}
	default:
		return &GetAttemptMessageOutput{Tone: ToneNeutral}, nil
	}

	return &GetAttemptMessageOutput{
		Message: fmt.Sprintf(s.pick(messages), input.PlayerName),
		Tone:    tone,
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneFunny
	}

	var messages []string
	switch input.ErrorType {
	case "not_quarantined":
		messages = []string{
			"That member isn't behind bars.",
			"No cell with that name on the door.",
		}
	case "already_quarantined":
		messages = []string{
			"They're already locked up.",
			"One cell per inmate, please.",
		}
	case "elevated_target":
		messages = []string{
			"You can't lock up the guards.",
			"That member holds moderation permissions and can't be quarantined.",
		}
	case "no_game":
		messages = []string{
			"No prison break is running right now.",
			"Everyone's in their cells. No escape attempt in progress.",
		}
	case "no_players":
		messages = []string{
			"There's nobody in jail to break out.",
			"Every eligible prisoner is already busy escaping.",
		}
	case "not_allowed":
		messages = []string{
			"Only staff can do that.",
			"Nice try. Warden's orders only.",
		}
	default:
		messages = []string{
			"Something went wrong in the cell block. Try again later.",
			"The jail computer crashed. Try again.",
		}
	}

	return &GetErrorMessageOutput{
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}
