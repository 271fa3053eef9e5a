package sentence_ledger

import "github.com/KirkDiggler/jailbird/internal/models"

// AddAdjustmentInput contains parameters for recording an adjustment
type AddAdjustmentInput struct {
	Adjustment *models.SentenceAdjustment
}

// GetAdjustmentsInput contains parameters for reading a member's ledger
type GetAdjustmentsInput struct {
	GuildID  string
	MemberID string
}

// GetAdjustmentsOutput contains a member's ledger
type GetAdjustmentsOutput struct {
	// Adjustments are ordered oldest first
	Adjustments []*models.SentenceAdjustment

	// NetMinutes is the signed sum of every adjustment
	NetMinutes int
}

// ClearMemberInput contains parameters for clearing a member's ledger
type ClearMemberInput struct {
	GuildID  string
	MemberID string
}
