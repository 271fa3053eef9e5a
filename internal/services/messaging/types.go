package messaging

import (
	"github.com/KirkDiggler/jailbird/internal/dice"
	"github.com/KirkDiggler/jailbird/internal/models"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneSarcastic is a sarcastic tone
	ToneSarcastic MessageTone = "sarcastic"

	// ToneEncouraging is an encouraging tone
	ToneEncouraging MessageTone = "encouraging"

	// ToneCelebration is a celebratory tone
	ToneCelebration MessageTone = "celebration"
)

// GetThrowMessageInput contains parameters for getting a throw message
type GetThrowMessageInput struct {
	// ThrowerName is the display name of the member throwing
	ThrowerName string

	// TargetName is the display name of the prisoner
	TargetName string

	// Item is what was thrown
	Item string
}

// GetThrowMessageOutput contains the generated throw message
type GetThrowMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetReleaseMessageInput contains parameters for getting a release message
type GetReleaseMessageInput struct {
	// MemberMention is how the released member is addressed
	MemberMention string

	// Expired is true when the sentence ran out rather than a moderator releasing early
	Expired bool
}

// GetReleaseMessageOutput contains the generated release message
type GetReleaseMessageOutput struct {
	Message string
}

// GetStageIntroMessageInput contains parameters for a stage briefing
type GetStageIntroMessageInput struct {
	// Stage is the stage being introduced
	Stage int

	// Players is the number of players in the game
	Players int
}

// GetStageIntroMessageOutput contains the stage briefing
type GetStageIntroMessageOutput struct {
	// Title names the stage
	Title string

	// Message explains how to play it
	Message string
}

// GetAttemptMessageInput contains parameters for an attempt reaction
type GetAttemptMessageInput struct {
	// PlayerName is the display name of the player who attempted
	PlayerName string

	// Outcome is what the attempt amounted to
	Outcome models.AttemptOutcome

	// Stage is the stage the attempt was made in
	Stage int
}

// GetAttemptMessageOutput contains the attempt reaction
type GetAttemptMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetErrorMessageInput contains parameters for an error message
type GetErrorMessageInput struct {
	// ErrorType selects the family of messages, e.g. "not_quarantined"
	ErrorType string

	// PreferredTone is optional
	PreferredTone MessageTone
}

// GetErrorMessageOutput contains the error message
type GetErrorMessageOutput struct {
	Message string
	Tone    MessageTone
}

// ServiceConfig contains configuration for the messaging service
type ServiceConfig struct {
	// Roller picks between message variants
	Roller dice.Roller
}
