package history

import (
	"context"

	"github.com/google/uuid"
)

type ConversationRepository interface {
	Create(ctx context.Context, e *ConversationEntry) error
	// ListByPatient returns the patient's messages oldest first, plus the
	// total row count.
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]ConversationEntry, int, error)
}

type WellnessRepository interface {
	Create(ctx context.Context, e *WellnessEntry) error
}
