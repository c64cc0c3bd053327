package verification

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medisense/intake/internal/platform/db"
)

type codeRepoPG struct{ pool *pgxpool.Pool }

func NewCodeRepoPG(pool *pgxpool.Pool) CodeRepository { return &codeRepoPG{pool: pool} }

func (r *codeRepoPG) conn(ctx context.Context) db.Querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *codeRepoPG) Create(ctx context.Context, c *Code) error {
	c.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient_verification_codes (id, patient_id, code, expires_at)
		VALUES ($1,$2,$3,$4)`,
		c.ID, c.PatientID, c.Value, c.ExpiresAt)
	return err
}

func (r *codeRepoPG) LatestUnused(ctx context.Context, patientID uuid.UUID) (*Code, error) {
	// FOR UPDATE so a concurrent verifier blocks here and re-evaluates
	// is_used once the winner commits.
	var c Code
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, patient_id, code, expires_at, is_used, created_at
		FROM patient_verification_codes
		WHERE patient_id = $1 AND is_used = false
		ORDER BY created_at DESC
		LIMIT 1
		FOR UPDATE`, patientID).
		Scan(&c.ID, &c.PatientID, &c.Value, &c.ExpiresAt, &c.Used, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoActiveCode
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *codeRepoPG) MarkUsed(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient_verification_codes
		SET is_used = true
		WHERE id = $1 AND is_used = false`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoActiveCode
	}
	return err
}
