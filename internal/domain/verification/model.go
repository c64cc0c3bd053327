package verification

import (
	"time"

	"github.com/google/uuid"
)

// CodeTTL is the validity window of a verification code.
const CodeTTL = 60 * time.Second

// Code maps to the patient_verification_codes table. Rows are never deleted;
// used and expired codes stay behind for audit.
type Code struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	Value     string    `db:"code" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	Used      bool      `db:"is_used" json:"is_used"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
