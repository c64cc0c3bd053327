package triage

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// StatusRegistered is the status every new case is created with.
	StatusRegistered = "REGISTRADO"
	// StatusConfirmed is the status every auto-created appointment carries.
	StatusConfirmed = "CONFIRMADA"
	// DefaultSpecialty is used when the intake omits a specialty.
	DefaultSpecialty = "Medicina General"
	// FlatPrice is the fixed consultation price applied to cases and
	// appointments alike.
	FlatPrice = 8.00
)

// SymptomList is an ordered list of symptom labels. It unmarshals from either
// a JSON array of strings or a single comma-separated string; entries are
// trimmed either way.
type SymptomList []string

func (s *SymptomList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		if arr == nil {
			*s = SymptomList{}
			return nil
		}
		for i := range arr {
			arr[i] = strings.TrimSpace(arr[i])
		}
		*s = arr
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err == nil {
		if strings.TrimSpace(joined) == "" {
			*s = SymptomList{}
			return nil
		}
		parts := strings.Split(joined, ",")
		out := make(SymptomList, 0, len(parts))
		for _, p := range parts {
			out = append(out, strings.TrimSpace(p))
		}
		*s = out
		return nil
	}

	// Anything else (null, a number, an object) degrades to no symptoms.
	*s = SymptomList{}
	return nil
}

// Case maps to the cases table. Symptoms are stored as a jsonb array so the
// submitted order survives round-trips.
type Case struct {
	ID            uuid.UUID   `db:"id" json:"id"`
	PatientID     uuid.UUID   `db:"patient_id" json:"patient_id"`
	DoctorID      uuid.UUID   `db:"assigned_doctor_id" json:"assigned_doctor_id"`
	Specialty     string      `db:"specialty" json:"specialty"`
	RiskLevel     string      `db:"risk_level" json:"risk_level"`
	Status        string      `db:"status" json:"status"`
	Summary       string      `db:"ai_summary" json:"ai_summary"`
	Symptoms      SymptomList `db:"ai_symptoms" json:"ai_symptoms"`
	Diagnosis     string      `db:"possible_diagnosis" json:"possible_diagnosis"`
	Treatment     string      `db:"recommended_treatment" json:"recommended_treatment"`
	Justification string      `db:"diagnosis_justification" json:"diagnosis_justification"`
	Price         float64     `db:"estimated_price" json:"estimated_price"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
}

// Appointment maps to the appointments table.
type Appointment struct {
	ID          uuid.UUID `db:"id" json:"id"`
	CaseID      uuid.UUID `db:"case_id" json:"case_id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorID    uuid.UUID `db:"doctor_id" json:"doctor_id"`
	Specialty   string    `db:"specialty" json:"specialty"`
	ScheduledAt time.Time `db:"scheduled_date" json:"scheduled_date"`
	Status      string    `db:"status" json:"status"`
	Price       float64   `db:"price" json:"price"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// CaseRecord is a case joined with the patient it belongs to, as served to
// the doctor's case list.
type CaseRecord struct {
	Case
	PatientName    string `db:"patient_name" json:"patient_name"`
	DocumentNumber string `db:"dni" json:"dni"`
}

// AppointmentRecord is an appointment joined with its patient.
type AppointmentRecord struct {
	Appointment
	PatientName    string `db:"patient_name" json:"patient_name"`
	DocumentNumber string `db:"dni" json:"dni"`
}
