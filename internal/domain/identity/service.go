package identity

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/medisense/intake/internal/platform/auth"
)

var (
	// ErrMissingFields is returned when a registration field is empty.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidCredentials is returned uniformly for unknown email,
	// inactive account, and wrong password so login failures never reveal
	// which part was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	doctors DoctorRepository
	tokens  *auth.TokenManager
}

func NewService(doctors DoctorRepository, tokens *auth.TokenManager) *Service {
	return &Service{doctors: doctors, tokens: tokens}
}

// Register creates a doctor account. The password is stored as a bcrypt hash,
// never in plaintext.
func (s *Service) Register(ctx context.Context, name, email, password, specialty string) (*Doctor, error) {
	if name == "" || email == "" || password == "" || NormalizeSpecialty(specialty) == "" {
		return nil, ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	d := &Doctor{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Specialty:    NormalizeSpecialty(specialty),
		Active:       true,
	}
	if err := s.doctors.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Authenticate verifies a doctor's credentials and issues a session token.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Doctor, string, error) {
	d, err := s.doctors.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if !d.Active {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(d.ID, d.Specialty)
	if err != nil {
		return nil, "", err
	}
	return d, token, nil
}

// FirstBySpecialty resolves the doctor assigned to new triage cases for a
// specialty. Matching is case-insensitive on the normalized label.
func (s *Service) FirstBySpecialty(ctx context.Context, specialty string) (*Doctor, error) {
	return s.doctors.FirstBySpecialty(ctx, NormalizeSpecialty(specialty))
}
