package verification

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNoActiveCode is returned when a patient has no unused code on record.
var ErrNoActiveCode = errors.New("no active verification code")

type CodeRepository interface {
	Create(ctx context.Context, c *Code) error
	// LatestUnused returns the most recently created unused code for the
	// patient, or ErrNoActiveCode. Older unused codes are ignored: issuing
	// a new code implicitly invalidates them.
	LatestUnused(ctx context.Context, patientID uuid.UUID) (*Code, error)
	// MarkUsed consumes the code. A code that is already used (or unknown)
	// yields ErrNoActiveCode, so a racing consumer cannot succeed twice.
	MarkUsed(ctx context.Context, id uuid.UUID) error
}
