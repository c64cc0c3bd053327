package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medisense/intake/internal/platform/db"
)

const uniqueViolation = "23505"

type doctorRepoPG struct{ pool *pgxpool.Pool }

func NewDoctorRepoPG(pool *pgxpool.Pool) DoctorRepository { return &doctorRepoPG{pool: pool} }

func (r *doctorRepoPG) conn(ctx context.Context) db.Querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const doctorCols = `id, name, email, password_hash, specialty, is_active, created_at, updated_at`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.Name, &d.Email, &d.PasswordHash, &d.Specialty,
		&d.Active, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &d, err
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, specialty, is_active)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		d.ID, d.Name, d.Email, d.PasswordHash, d.Specialty, d.Active)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrEmailTaken
	}
	return err
}

func (r *doctorRepoPG) GetByEmail(ctx context.Context, email string) (*Doctor, error) {
	return scanDoctor(r.conn(ctx).QueryRow(ctx,
		`SELECT `+doctorCols+` FROM users WHERE email = $1`, email))
}

func (r *doctorRepoPG) FirstBySpecialty(ctx context.Context, specialty string) (*Doctor, error) {
	return scanDoctor(r.conn(ctx).QueryRow(ctx, `
		SELECT `+doctorCols+` FROM users
		WHERE LOWER(specialty) = $1 AND is_active = true
		ORDER BY created_at ASC
		LIMIT 1`, CanonicalSpecialty(specialty)))
}
