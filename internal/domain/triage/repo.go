package triage

import (
	"context"

	"github.com/google/uuid"
)

type CaseRepository interface {
	Create(ctx context.Context, c *Case) error
	// ListByDoctor returns the doctor's cases newest first, joined with
	// patient name and document number, plus the total row count.
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]CaseRecord, int, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	// ListByDoctor returns the doctor's appointments soonest first, joined
	// with patient name and document number, plus the total row count.
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]AppointmentRecord, int, error)
}
