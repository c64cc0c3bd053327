package history

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medisense/intake/internal/platform/db"
)

type conversationRepoPG struct{ pool *pgxpool.Pool }

func NewConversationRepoPG(pool *pgxpool.Pool) ConversationRepository {
	return &conversationRepoPG{pool: pool}
}

func (r *conversationRepoPG) conn(ctx context.Context) db.Querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *conversationRepoPG) Create(ctx context.Context, e *ConversationEntry) error {
	e.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO conversations (id, patient_id, case_id, sender, message)
		VALUES ($1,$2,$3,$4,$5)`,
		e.ID, e.PatientID, e.CaseID, e.Sender, e.Message)
	return err
}

func (r *conversationRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]ConversationEntry, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM conversations WHERE patient_id = $1`, patientID).
		Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, patient_id, case_id, sender, message, created_at
		FROM conversations
		WHERE patient_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entries := make([]ConversationEntry, 0)
	for rows.Next() {
		var e ConversationEntry
		if err := rows.Scan(&e.ID, &e.PatientID, &e.CaseID, &e.Sender, &e.Message, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

type wellnessRepoPG struct{ pool *pgxpool.Pool }

func NewWellnessRepoPG(pool *pgxpool.Pool) WellnessRepository {
	return &wellnessRepoPG{pool: pool}
}

func (r *wellnessRepoPG) conn(ctx context.Context) db.Querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *wellnessRepoPG) Create(ctx context.Context, e *WellnessEntry) error {
	e.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO wellness_logs (id, patient_id, user_message, ai_response, category)
		VALUES ($1,$2,$3,$4,$5)`,
		e.ID, e.PatientID, e.UserMessage, e.AIResponse, e.Category)
	return err
}
