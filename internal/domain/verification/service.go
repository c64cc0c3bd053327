package verification

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/medisense/intake/internal/domain/patient"
)

var (
	// ErrCodeIncorrect is returned when the submitted code does not match
	// the authoritative code's value. Checked before expiry: a wrong code
	// is always reported as incorrect, even when it is also expired.
	ErrCodeIncorrect = errors.New("verification code incorrect")
	// ErrCodeExpired is returned when the matching code's TTL has elapsed.
	ErrCodeExpired = errors.New("verification code expired")
)

// PatientDirectory is the slice of the patient registry the engine needs.
type PatientDirectory interface {
	FindByDocument(ctx context.Context, dni string) (*patient.Patient, error)
}

// CodeMailer dispatches a verification code to the patient. Delivery is
// fire-and-forget; the implementation logs failures instead of returning them.
type CodeMailer interface {
	DispatchVerificationCode(ctx context.Context, to, code string)
}

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service issues and verifies one-time codes. Single use plus the short TTL
// plus "most recent unused code wins" bound the replay window without a
// revocation list: issuing a new code makes older unused codes inert.
type Service struct {
	codes    CodeRepository
	patients PatientDirectory
	mailer   CodeMailer
	tx       TxRunner
	now      func() time.Time
}

func NewService(codes CodeRepository, patients PatientDirectory, mailer CodeMailer, tx TxRunner) *Service {
	return &Service{
		codes:    codes,
		patients: patients,
		mailer:   mailer,
		tx:       tx,
		now:      time.Now,
	}
}

// generateCode draws a 6-digit decimal code uniformly over 000000–999999,
// keeping leading zeros.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Issue creates a fresh code for the patient with the given document number
// and emails it. The returned time is when the code expires.
func (s *Service) Issue(ctx context.Context, dni string) (time.Time, error) {
	p, err := s.patients.FindByDocument(ctx, dni)
	if err != nil {
		return time.Time{}, err
	}

	value, err := generateCode()
	if err != nil {
		return time.Time{}, err
	}

	code := &Code{
		PatientID: p.ID,
		Value:     value,
		ExpiresAt: s.now().Add(CodeTTL),
	}
	if err := s.codes.Create(ctx, code); err != nil {
		return time.Time{}, err
	}

	// The code is valid for verification even if delivery fails.
	email := ""
	if p.Email != nil {
		email = *p.Email
	}
	s.mailer.DispatchVerificationCode(ctx, email, value)

	return code.ExpiresAt, nil
}

// Verify checks the submitted code against the patient's most recent unused
// code and consumes it on success. The read and the mark-used update run in
// one transaction; the read locks the row and the update only matches rows
// still unused, so of two concurrent verifications exactly one consumes the
// code and the other gets ErrNoActiveCode.
func (s *Service) Verify(ctx context.Context, dni, submitted string) (*patient.Patient, error) {
	p, err := s.patients.FindByDocument(ctx, dni)
	if err != nil {
		return nil, err
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		code, err := s.codes.LatestUnused(ctx, p.ID)
		if err != nil {
			return err
		}
		if code.Value != submitted {
			return ErrCodeIncorrect
		}
		if s.now().After(code.ExpiresAt) {
			return ErrCodeExpired
		}
		return s.codes.MarkUsed(ctx, code.ID)
	})
	if err != nil {
		return nil, err
	}

	return p, nil
}
