package patient

import (
	"context"
	"errors"
)

// ErrMissingDocument is returned when a request omits the document number.
var ErrMissingDocument = errors.New("document number is required")

// Service is the patient registry. Every workflow that references a patient
// by document number resolves it here, so the find-or-create rule and the
// uniqueness invariant live in exactly one place.
type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

// FindByDocument looks a patient up by DNI.
func (s *Service) FindByDocument(ctx context.Context, dni string) (*Patient, error) {
	if dni == "" {
		return nil, ErrMissingDocument
	}
	return s.patients.GetByDocument(ctx, dni)
}

// Create registers a new patient. The document number must be unused.
func (s *Service) Create(ctx context.Context, id Identity) (*Patient, error) {
	if id.DocumentNumber == "" {
		return nil, ErrMissingDocument
	}

	p := &Patient{
		FullName:       id.FullName(),
		DocumentNumber: id.DocumentNumber,
	}
	if id.Whatsapp != "" {
		p.WhatsappNumber = &id.Whatsapp
	}
	if id.Email != "" {
		p.Email = &id.Email
	}
	if err := s.patients.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// CreateOrGet resolves a patient by document number, creating the record on
// first reference. Concurrent first references race on the unique constraint;
// the loser re-reads the winner's row.
func (s *Service) CreateOrGet(ctx context.Context, id Identity) (*Patient, error) {
	p, err := s.FindByDocument(ctx, id.DocumentNumber)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	p, err = s.Create(ctx, id)
	if errors.Is(err, ErrDuplicateDocument) {
		return s.patients.GetByDocument(ctx, id.DocumentNumber)
	}
	return p, err
}
