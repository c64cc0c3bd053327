package history

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/medisense/intake/internal/domain/patient"
)

// ErrMissingFields is returned when a log request omits a required field.
var ErrMissingFields = errors.New("missing required fields")

// PatientRegistry is the slice of the patient registry the log needs.
// Conversation logging requires the patient to exist already; wellness
// logging registers unknown patients on first contact.
type PatientRegistry interface {
	FindByDocument(ctx context.Context, dni string) (*patient.Patient, error)
	CreateOrGet(ctx context.Context, id patient.Identity) (*patient.Patient, error)
}

// Service appends to and reads the per-patient interaction history.
type Service struct {
	conversations ConversationRepository
	wellness      WellnessRepository
	patients      PatientRegistry
}

func NewService(conversations ConversationRepository, wellness WellnessRepository, patients PatientRegistry) *Service {
	return &Service{
		conversations: conversations,
		wellness:      wellness,
		patients:      patients,
	}
}

// LogConversation appends a chat message to a known patient's history.
func (s *Service) LogConversation(ctx context.Context, dni string, caseID *uuid.UUID, sender, message string) (*ConversationEntry, error) {
	if dni == "" || sender == "" || message == "" {
		return nil, ErrMissingFields
	}

	p, err := s.patients.FindByDocument(ctx, dni)
	if err != nil {
		return nil, err
	}

	e := &ConversationEntry{
		PatientID: p.ID,
		CaseID:    caseID,
		Sender:    sender,
		Message:   message,
	}
	if err := s.conversations.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// ListConversations returns a patient's chat history, oldest first.
func (s *Service) ListConversations(ctx context.Context, dni string, limit, offset int) ([]ConversationEntry, int, error) {
	p, err := s.patients.FindByDocument(ctx, dni)
	if err != nil {
		return nil, 0, err
	}
	return s.conversations.ListByPatient(ctx, p.ID, limit, offset)
}

// LogWellness appends a wellness tip exchange, registering the patient on
// first contact.
func (s *Service) LogWellness(ctx context.Context, id patient.Identity, userMessage, aiResponse, category string) (*WellnessEntry, error) {
	if id.DocumentNumber == "" || userMessage == "" || aiResponse == "" {
		return nil, ErrMissingFields
	}

	p, err := s.patients.CreateOrGet(ctx, id)
	if err != nil {
		return nil, err
	}

	e := &WellnessEntry{
		PatientID:   p.ID,
		UserMessage: userMessage,
		AIResponse:  aiResponse,
	}
	if category != "" {
		e.Category = &category
	}
	if err := s.wellness.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
