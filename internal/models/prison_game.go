package models

import (
	"time"
)

// Stage numbers of the prison break
const (
	StageLockPicking   = 1
	StageTunnelDigging = 2
	StageGuardEvasion  = 3
	StageGreatEscape   = 4
)

// StageRules holds the tuning for one stage
type StageRules struct {
	// Stage is the stage number
	Stage int

	// Name is the display name
	Name string

	// FailureThreshold is the number of wrong attempts that triggers the penalty
	FailureThreshold int

	// RewardPercent is the sentence reduction on a win
	RewardPercent int

	// PenaltyPercent is the sentence extension when the threshold is reached
	PenaltyPercent int
}

// Stages is the ordered stage table
var Stages = []StageRules{
	{Stage: StageLockPicking, Name: "Lock Picking", FailureThreshold: 3, RewardPercent: 15, PenaltyPercent: 5},
	{Stage: StageTunnelDigging, Name: "Tunnel Digging", FailureThreshold: 4, RewardPercent: 20, PenaltyPercent: 7},
	{Stage: StageGuardEvasion, Name: "Guard Evasion", FailureThreshold: 4, RewardPercent: 25, PenaltyPercent: 10},
	{Stage: StageGreatEscape, Name: "Great Escape", FailureThreshold: 5, RewardPercent: 30, PenaltyPercent: 15},
}

// RulesFor returns the rules of a stage, false when the stage is unknown
func RulesFor(stage int) (StageRules, bool) {
	if stage < 1 || stage > len(Stages) {
		return StageRules{}, false
	}
	return Stages[stage-1], true
}

// SpectatorVotes tallies help and sabotage signals for the current stage
type SpectatorVotes struct {
	Help     int
	Sabotage int
}

// GameSession represents one prison-break run for a set of quarantined players
type GameSession struct {
	// ID is the unique identifier for the game
	ID string

	// GuildID is the guild the game runs in
	GuildID string

	// Players are the quarantined members taking part
	Players []string

	// Stage is the current stage, 1 through 4
	Stage int

	// Challenge is the live challenge, nil once the game is over
	Challenge *ChallengeState

	// SpectatorVotes are reset on every stage transition
	SpectatorVotes SpectatorVotes

	// Active is false once stopped or completed
	Active bool

	// Completed is true after the great escape succeeds
	Completed bool

	// ChallengesCompleted lists the stage numbers won so far
	ChallengesCompleted []int

	// StartedBy is the moderator or member who started the game
	StartedBy string

	// CreatedAt is when the game was created
	CreatedAt time.Time

	// UpdatedAt is when the game was last updated
	UpdatedAt time.Time
}

// HasPlayer reports whether the member is playing this game
func (g *GameSession) HasPlayer(memberID string) bool {
	for _, p := range g.Players {
		if p == memberID {
			return true
		}
	}
	return false
}

// AcceptsAttempts reports whether an attempt may be routed to this game
func (g *GameSession) AcceptsAttempts() bool {
	return g.Active && g.Challenge != nil
}

// ChallengeKind tags the populated variant of a ChallengeState
type ChallengeKind string

const (
	ChallengeKindLockPick ChallengeKind = "lock_pick"
	ChallengeKindTunnel   ChallengeKind = "tunnel"
	ChallengeKindGuard    ChallengeKind = "guard"
	ChallengeKindEscape   ChallengeKind = "escape"
)

// ChallengeState is a tagged union: Kind names the one non-nil variant
type ChallengeState struct {
	Kind ChallengeKind

	LockPick *LockPickChallenge `json:",omitempty"`
	Tunnel   *TunnelChallenge   `json:",omitempty"`
	Guard    *GuardChallenge    `json:",omitempty"`
	Escape   *EscapeChallenge   `json:",omitempty"`
}

// LockPickChallenge is stage 1: guess a four digit combination
type LockPickChallenge struct {
	Combination [4]int
	Attempts    int
}

// TunnelDirection is one step of a tunnel path
type TunnelDirection string

const (
	North TunnelDirection = "N"
	South TunnelDirection = "S"
	East  TunnelDirection = "E"
	West  TunnelDirection = "W"
)

// TunnelDirections is the order directions are rolled in
var TunnelDirections = []TunnelDirection{North, South, East, West}

// TunnelPathLength is the number of steps in a tunnel
const TunnelPathLength = 5

// TunnelChallenge is stage 2: press the hidden path one step at a time
type TunnelChallenge struct {
	Path         []TunnelDirection
	Progress     int
	WrongPresses int
}

// GuardSpots are the hiding places of stage 3
var GuardSpots = []string{"laundry", "kitchen", "library", "vent", "chapel"}

// GuardChallenge is stage 3: pick the one spot the guards skip
type GuardChallenge struct {
	SafeSpot string
	Attempts int
}

// EscapeCodeWords are the candidate code words of stage 4
var EscapeCodeWords = []string{"freedom", "escape", "sunrise", "liberty"}

// EscapeChallenge is stage 4: every player must send the shared code word
type EscapeChallenge struct {
	CodeWord   string
	Ready      []string
	WrongCodes int
}

// IsReady reports whether the member already submitted the code word
func (e *EscapeChallenge) IsReady(memberID string) bool {
	for _, id := range e.Ready {
		if id == memberID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so an evaluation can be rolled back
func (c *ChallengeState) Clone() *ChallengeState {
	if c == nil {
		return nil
	}
	out := &ChallengeState{Kind: c.Kind}
	if c.LockPick != nil {
		lp := *c.LockPick
		out.LockPick = &lp
	}
	if c.Tunnel != nil {
		t := *c.Tunnel
		t.Path = append([]TunnelDirection(nil), c.Tunnel.Path...)
		out.Tunnel = &t
	}
	if c.Guard != nil {
		g := *c.Guard
		out.Guard = &g
	}
	if c.Escape != nil {
		e := *c.Escape
		e.Ready = append([]string(nil), c.Escape.Ready...)
		out.Escape = &e
	}
	return out
}

// AttemptOutcome is what a single evaluated game attempt amounted to
type AttemptOutcome string

const (
	// AttemptOutcomeIgnored means the text was not a recognisable answer
	AttemptOutcomeIgnored AttemptOutcome = "ignored"

	// AttemptOutcomeMiss is a counted wrong answer below the threshold
	AttemptOutcomeMiss AttemptOutcome = "miss"

	// AttemptOutcomeProgress is a correct partial answer, e.g. one tunnel step
	// or one player ready in the great escape
	AttemptOutcomeProgress AttemptOutcome = "progress"

	// AttemptOutcomeThreshold is a wrong answer that reached the failure threshold
	AttemptOutcomeThreshold AttemptOutcome = "threshold"

	// AttemptOutcomeStageWon advanced the game to the next stage
	AttemptOutcomeStageWon AttemptOutcome = "stage_won"

	// AttemptOutcomeEscaped won the final stage
	AttemptOutcomeEscaped AttemptOutcome = "escaped"

	// AttemptOutcomeAided is a failure spectators turned into a small reward
	AttemptOutcomeAided AttemptOutcome = "aided"

	// AttemptOutcomeSabotaged is a win spectators turned into a penalty
	AttemptOutcomeSabotaged AttemptOutcome = "sabotaged"
)
