package patient

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patients table. The document number (DNI) is the
// natural key every workflow uses to reference a patient.
type Patient struct {
	ID             uuid.UUID `db:"id" json:"id"`
	FullName       string    `db:"full_name" json:"full_name"`
	DocumentNumber string    `db:"document_number" json:"document_number"`
	WhatsappNumber *string   `db:"whatsapp_number" json:"whatsapp_number,omitempty"`
	Email          *string   `db:"email" json:"email,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Identity carries the patient identity fields submitted by clients. The
// demographic fields are only used when the patient does not exist yet.
type Identity struct {
	FirstName      string `json:"nombres"`
	LastName       string `json:"apellidos"`
	DocumentNumber string `json:"dni"`
	Whatsapp       string `json:"whatsapp"`
	Email          string `json:"email"`
}

// FullName joins the submitted name parts.
func (i Identity) FullName() string {
	return strings.TrimSpace(i.FirstName + " " + i.LastName)
}
