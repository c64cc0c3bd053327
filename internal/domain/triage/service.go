package triage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/medisense/intake/internal/domain/identity"
	"github.com/medisense/intake/internal/domain/patient"
)

var (
	// ErrMissingAppointmentTime is returned when the intake carries no
	// usable appointment time. Rejected before any write.
	ErrMissingAppointmentTime = errors.New("appointment time is required")
	// ErrNoDoctorAvailable is returned when no active doctor matches the
	// requested specialty.
	ErrNoDoctorAvailable = errors.New("no doctor available for specialty")
)

// PatientRegistry is the slice of the patient registry the orchestrator needs.
type PatientRegistry interface {
	CreateOrGet(ctx context.Context, id patient.Identity) (*patient.Patient, error)
}

// DoctorDirectory resolves the doctor a case is assigned to.
type DoctorDirectory interface {
	FirstBySpecialty(ctx context.Context, specialty string) (*identity.Doctor, error)
}

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Intake is everything the external triage assessment hands over when it
// decides a case should be opened.
type Intake struct {
	Patient         patient.Identity
	Summary         string
	Symptoms        SymptomList
	Specialty       string
	RiskLevel       string
	Diagnosis       string
	Treatment       string
	Justification   string
	AppointmentTime string
}

// Service turns triage assessments into registered cases with confirmed
// appointments, and serves the doctor-facing case and appointment lists.
type Service struct {
	cases        CaseRepository
	appointments AppointmentRepository
	patients     PatientRegistry
	doctors      DoctorDirectory
	tx           TxRunner
}

func NewService(cases CaseRepository, appointments AppointmentRepository, patients PatientRegistry, doctors DoctorDirectory, tx TxRunner) *Service {
	return &Service{
		cases:        cases,
		appointments: appointments,
		patients:     patients,
		doctors:      doctors,
		tx:           tx,
	}
}

// CreateFromTriage opens a case and its auto-confirmed appointment from a
// triage assessment. The case and appointment inserts run in one transaction
// so a case can never exist without its appointment. Patient find-or-create
// happens before that transaction and is not rolled back when doctor matching
// fails; a patient record on its own is harmless and the next intake reuses it.
func (s *Service) CreateFromTriage(ctx context.Context, in Intake) (*Case, *Appointment, error) {
	if strings.TrimSpace(in.AppointmentTime) == "" {
		return nil, nil, ErrMissingAppointmentTime
	}
	scheduledAt, err := time.Parse(time.RFC3339, in.AppointmentTime)
	if err != nil {
		// An unparsable timestamp is no more usable than an absent one.
		return nil, nil, ErrMissingAppointmentTime
	}

	p, err := s.patients.CreateOrGet(ctx, in.Patient)
	if err != nil {
		return nil, nil, err
	}

	specialty := identity.NormalizeSpecialty(in.Specialty)
	if specialty == "" {
		specialty = DefaultSpecialty
	}
	d, err := s.doctors.FirstBySpecialty(ctx, specialty)
	if errors.Is(err, identity.ErrNotFound) {
		return nil, nil, ErrNoDoctorAvailable
	}
	if err != nil {
		return nil, nil, err
	}

	symptoms := in.Symptoms
	if symptoms == nil {
		symptoms = SymptomList{}
	}

	cs := &Case{
		PatientID:     p.ID,
		DoctorID:      d.ID,
		Specialty:     specialty,
		RiskLevel:     in.RiskLevel,
		Status:        StatusRegistered,
		Summary:       in.Summary,
		Symptoms:      symptoms,
		Diagnosis:     in.Diagnosis,
		Treatment:     in.Treatment,
		Justification: in.Justification,
		Price:         FlatPrice,
	}
	appt := &Appointment{
		PatientID:   p.ID,
		DoctorID:    d.ID,
		Specialty:   specialty,
		ScheduledAt: scheduledAt,
		Status:      StatusConfirmed,
		Price:       FlatPrice,
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.cases.Create(ctx, cs); err != nil {
			return err
		}
		appt.CaseID = cs.ID
		return s.appointments.Create(ctx, appt)
	})
	if err != nil {
		return nil, nil, err
	}
	return cs, appt, nil
}

// ListCases returns the doctor's cases, newest first.
func (s *Service) ListCases(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]CaseRecord, int, error) {
	return s.cases.ListByDoctor(ctx, doctorID, limit, offset)
}

// ListAppointments returns the doctor's appointments, soonest first.
func (s *Service) ListAppointments(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]AppointmentRecord, int, error) {
	return s.appointments.ListByDoctor(ctx, doctorID, limit, offset)
}
