package prisonbreak

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/KirkDiggler/jailbird/internal/dice"
	"github.com/KirkDiggler/jailbird/internal/models"
)

var tokenSeparators = regexp.MustCompile(`[\s,\-]+`)

var directionAliases = map[string]models.TunnelDirection{
	"n":     models.North,
	"north": models.North,
	"s":     models.South,
	"south": models.South,
	"e":     models.East,
	"east":  models.East,
	"w":     models.West,
	"west":  models.West,
}

// evaluation is what a message did to a challenge
type evaluation struct {
	outcome models.AttemptOutcome

	// feedback is a short hint for the player, may be empty
	feedback string
}

func tokenize(content string) []string {
	var tokens []string
	for _, t := range tokenSeparators.Split(strings.ToLower(strings.TrimSpace(content)), -1) {
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// newChallenge rolls a fresh challenge for a stage
func newChallenge(roller dice.Roller, stage int) *models.ChallengeState {
	switch stage {
	case models.StageLockPicking:
		var combination [4]int
		for i := range combination {
			combination[i] = roller.Roll(10) - 1
		}
		return &models.ChallengeState{
			Kind:     models.ChallengeKindLockPick,
			LockPick: &models.LockPickChallenge{Combination: combination},
		}
	case models.StageTunnelDigging:
		path := make([]models.TunnelDirection, models.TunnelPathLength)
		for i := range path {
			path[i] = dice.Pick(roller, models.TunnelDirections)
		}
		return &models.ChallengeState{
			Kind:   models.ChallengeKindTunnel,
			Tunnel: &models.TunnelChallenge{Path: path},
		}
	case models.StageGuardEvasion:
		return &models.ChallengeState{
			Kind:  models.ChallengeKindGuard,
			Guard: &models.GuardChallenge{SafeSpot: dice.Pick(roller, models.GuardSpots)},
		}
	case models.StageGreatEscape:
		return &models.ChallengeState{
			Kind:   models.ChallengeKindEscape,
			Escape: &models.EscapeChallenge{CodeWord: dice.Pick(roller, models.EscapeCodeWords), Ready: []string{}},
		}
	}
	return nil
}

// evaluate applies one message to the challenge in place. Unrecognisable
// text leaves the challenge untouched and reports AttemptOutcomeIgnored.
func evaluate(game *models.GameSession, playerID, content string) evaluation {
	rules, ok := models.RulesFor(game.Stage)
	if !ok || game.Challenge == nil {
		return evaluation{outcome: models.AttemptOutcomeIgnored}
	}

	tokens := tokenize(content)
	if len(tokens) == 0 {
		return evaluation{outcome: models.AttemptOutcomeIgnored}
	}

	switch game.Challenge.Kind {
	case models.ChallengeKindLockPick:
		return evaluateLockPick(game.Challenge.LockPick, rules, tokens)
	case models.ChallengeKindTunnel:
		return evaluateTunnel(game.Challenge.Tunnel, rules, tokens)
	case models.ChallengeKindGuard:
		return evaluateGuard(game.Challenge.Guard, rules, tokens)
	case models.ChallengeKindEscape:
		return evaluateEscape(game.Challenge.Escape, rules, game.Players, playerID, tokens)
	}
	return evaluation{outcome: models.AttemptOutcomeIgnored}
}

// parseCombination accepts four single digits or one four digit token
func parseCombination(tokens []string) ([4]int, bool) {
	var guess [4]int

	digits := tokens
	if len(tokens) == 1 {
		if len(tokens[0]) != 4 {
			return guess, false
		}
		digits = strings.Split(tokens[0], "")
	}
	if len(digits) != 4 {
		return guess, false
	}

	for i, d := range digits {
		if len(d) != 1 || d[0] < '0' || d[0] > '9' {
			return guess, false
		}
		guess[i] = int(d[0] - '0')
	}
	return guess, true
}

func evaluateLockPick(c *models.LockPickChallenge, rules models.StageRules, tokens []string) evaluation {
	guess, ok := parseCombination(tokens)
	if !ok {
		return evaluation{outcome: models.AttemptOutcomeIgnored}
	}

	if guess == c.Combination {
		return evaluation{outcome: models.AttemptOutcomeStageWon}
	}

	inPlace := 0
	for i := range guess {
		if guess[i] == c.Combination[i] {
			inPlace++
		}
	}
	feedback := fmt.Sprintf("%d of 4 digits are in the right place.", inPlace)

	c.Attempts++
	if c.Attempts >= rules.FailureThreshold {
		c.Attempts = 0
		return evaluation{outcome: models.AttemptOutcomeThreshold, feedback: feedback}
	}
	return evaluation{outcome: models.AttemptOutcomeMiss, feedback: feedback}
}

func evaluateTunnel(c *models.TunnelChallenge, rules models.StageRules, tokens []string) evaluation {
	presses := make([]models.TunnelDirection, 0, len(tokens))
	for _, t := range tokens {
		dir, ok := directionAliases[t]
		if !ok {
			return evaluation{outcome: models.AttemptOutcomeIgnored}
		}
		presses = append(presses, dir)
	}

	for _, dir := range presses {
		if dir != c.Path[c.Progress] {
			c.WrongPresses++
			if c.WrongPresses >= rules.FailureThreshold {
				c.WrongPresses = 0
				c.Progress = 0
				return evaluation{outcome: models.AttemptOutcomeThreshold, feedback: "The tunnel caved in. Back to the start."}
			}
			return evaluation{
				outcome:  models.AttemptOutcomeMiss,
				feedback: fmt.Sprintf("Solid rock to the %s. %d of %d steps dug.", dir, c.Progress, len(c.Path)),
			}
		}

		c.Progress++
		if c.Progress == len(c.Path) {
			return evaluation{outcome: models.AttemptOutcomeStageWon}
		}
	}

	return evaluation{
		outcome:  models.AttemptOutcomeProgress,
		feedback: fmt.Sprintf("%d of %d steps dug.", c.Progress, len(c.Path)),
	}
}

func evaluateGuard(c *models.GuardChallenge, rules models.StageRules, tokens []string) evaluation {
	if len(tokens) != 1 || !contains(models.GuardSpots, tokens[0]) {
		return evaluation{outcome: models.AttemptOutcomeIgnored}
	}

	if tokens[0] == c.SafeSpot {
		return evaluation{outcome: models.AttemptOutcomeStageWon}
	}

	c.Attempts++
	if c.Attempts >= rules.FailureThreshold {
		c.Attempts = 0
		return evaluation{outcome: models.AttemptOutcomeThreshold, feedback: "Caught by the guards!"}
	}
	return evaluation{outcome: models.AttemptOutcomeMiss, feedback: fmt.Sprintf("A guard checks the %s.", tokens[0])}
}

func evaluateEscape(c *models.EscapeChallenge, rules models.StageRules, players []string, playerID string, tokens []string) evaluation {
	if len(tokens) != 1 || !contains(models.EscapeCodeWords, tokens[0]) {
		return evaluation{outcome: models.AttemptOutcomeIgnored}
	}

	if tokens[0] != c.CodeWord {
		c.WrongCodes++
		if c.WrongCodes >= rules.FailureThreshold {
			c.WrongCodes = 0
			c.Ready = []string{}
			return evaluation{outcome: models.AttemptOutcomeThreshold, feedback: "The driver panicked and left. Everyone regroup."}
		}
		return evaluation{outcome: models.AttemptOutcomeMiss, feedback: "The driver doesn't recognise that word."}
	}

	if c.IsReady(playerID) {
		return evaluation{outcome: models.AttemptOutcomeIgnored}
	}
	c.Ready = append(c.Ready, playerID)

	waiting := 0
	for _, p := range players {
		if !c.IsReady(p) {
			waiting++
		}
	}
	if waiting == 0 {
		return evaluation{outcome: models.AttemptOutcomeStageWon}
	}

	return evaluation{
		outcome:  models.AttemptOutcomeProgress,
		feedback: fmt.Sprintf("Waiting on %d more.", waiting),
	}
}

func contains(options []string, s string) bool {
	for _, o := range options {
		if o == s {
			return true
		}
	}
	return false
}
