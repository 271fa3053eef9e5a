package sentence_ledger

import (
	"context"
)

// Repository defines the interface for the sentence adjustment ledger
type Repository interface {
	// AddAdjustment appends an adjustment to a member's ledger
	AddAdjustment(ctx context.Context, input *AddAdjustmentInput) error

	// GetAdjustments retrieves a member's adjustments, oldest first
	GetAdjustments(ctx context.Context, input *GetAdjustmentsInput) (*GetAdjustmentsOutput, error)

	// ClearMember removes every adjustment of a member
	ClearMember(ctx context.Context, input *ClearMemberInput) error
}
