package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no patient matches the document number.
	ErrNotFound = errors.New("patient not found")
	// ErrDuplicateDocument is returned when an insert loses the race on the
	// document number's unique constraint.
	ErrDuplicateDocument = errors.New("document number already registered")
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetByDocument(ctx context.Context, dni string) (*Patient, error)
}
