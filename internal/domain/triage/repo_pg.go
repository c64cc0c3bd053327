package triage

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medisense/intake/internal/platform/db"
)

type caseRepoPG struct{ pool *pgxpool.Pool }

func NewCaseRepoPG(pool *pgxpool.Pool) CaseRepository { return &caseRepoPG{pool: pool} }

func (r *caseRepoPG) conn(ctx context.Context) db.Querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *caseRepoPG) Create(ctx context.Context, c *Case) error {
	c.ID = uuid.New()
	symptoms, err := json.Marshal(c.Symptoms)
	if err != nil {
		return err
	}
	_, err = r.conn(ctx).Exec(ctx, `
		INSERT INTO cases (
			id, patient_id, assigned_doctor_id, specialty,
			risk_level, status, ai_summary, ai_symptoms,
			possible_diagnosis, recommended_treatment, diagnosis_justification,
			estimated_price
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		c.ID, c.PatientID, c.DoctorID, c.Specialty,
		c.RiskLevel, c.Status, c.Summary, symptoms,
		c.Diagnosis, c.Treatment, c.Justification,
		c.Price)
	return err
}

func (r *caseRepoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]CaseRecord, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM cases WHERE assigned_doctor_id = $1`, doctorID).
		Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT c.id, c.patient_id, c.assigned_doctor_id, c.specialty,
		       c.risk_level, c.status, c.ai_summary, c.ai_symptoms,
		       c.possible_diagnosis, c.recommended_treatment, c.diagnosis_justification,
		       c.estimated_price, c.created_at,
		       p.full_name AS patient_name, p.document_number AS dni
		FROM cases c
		JOIN patients p ON p.id = c.patient_id
		WHERE c.assigned_doctor_id = $1
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3`, doctorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records := make([]CaseRecord, 0)
	for rows.Next() {
		var rec CaseRecord
		var symptoms []byte
		if err := rows.Scan(
			&rec.ID, &rec.PatientID, &rec.DoctorID, &rec.Specialty,
			&rec.RiskLevel, &rec.Status, &rec.Summary, &symptoms,
			&rec.Diagnosis, &rec.Treatment, &rec.Justification,
			&rec.Price, &rec.CreatedAt,
			&rec.PatientName, &rec.DocumentNumber,
		); err != nil {
			return nil, 0, err
		}
		if err := json.Unmarshal(symptoms, &rec.Symptoms); err != nil {
			rec.Symptoms = SymptomList{}
		}
		records = append(records, rec)
	}
	return records, total, rows.Err()
}

type appointmentRepoPG struct{ pool *pgxpool.Pool }

func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

func (r *appointmentRepoPG) conn(ctx context.Context) db.Querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointments (
			id, case_id, patient_id, doctor_id, specialty,
			scheduled_date, status, price
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		a.ID, a.CaseID, a.PatientID, a.DoctorID, a.Specialty,
		a.ScheduledAt, a.Status, a.Price)
	return err
}

func (r *appointmentRepoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]AppointmentRecord, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM appointments WHERE doctor_id = $1`, doctorID).
		Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT a.id, a.case_id, a.patient_id, a.doctor_id, a.specialty,
		       a.scheduled_date, a.status, a.price, a.created_at,
		       p.full_name AS patient_name, p.document_number AS dni
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		WHERE a.doctor_id = $1
		ORDER BY a.scheduled_date ASC
		LIMIT $2 OFFSET $3`, doctorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records := make([]AppointmentRecord, 0)
	for rows.Next() {
		var rec AppointmentRecord
		if err := rows.Scan(
			&rec.ID, &rec.CaseID, &rec.PatientID, &rec.DoctorID, &rec.Specialty,
			&rec.ScheduledAt, &rec.Status, &rec.Price, &rec.CreatedAt,
			&rec.PatientName, &rec.DocumentNumber,
		); err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	return records, total, rows.Err()
}
