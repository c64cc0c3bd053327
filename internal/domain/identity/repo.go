package identity

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no doctor matches the lookup.
	ErrNotFound = errors.New("doctor not found")
	// ErrEmailTaken is returned when registering with an email already in use.
	ErrEmailTaken = errors.New("email already registered")
)

type DoctorRepository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByEmail(ctx context.Context, email string) (*Doctor, error)
	// FirstBySpecialty returns the first active doctor whose specialty
	// matches case-insensitively, or ErrNotFound.
	FirstBySpecialty(ctx context.Context, specialty string) (*Doctor, error)
}
