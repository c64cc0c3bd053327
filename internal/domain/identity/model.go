package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Doctor maps to the users table.
type Doctor struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Specialty    string    `db:"specialty" json:"specialty"`
	Active       bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// NormalizeSpecialty trims the surrounding whitespace of a specialty label.
// Specialties are stored as entered; every comparison site goes through
// CanonicalSpecialty so registration and doctor matching agree on what
// "equal" means.
func NormalizeSpecialty(s string) string {
	return strings.TrimSpace(s)
}

// CanonicalSpecialty returns the form of a specialty label used for equality
// comparisons.
func CanonicalSpecialty(s string) string {
	return strings.ToLower(NormalizeSpecialty(s))
}
