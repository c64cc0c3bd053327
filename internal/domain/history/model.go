package history

import (
	"time"

	"github.com/google/uuid"
)

// ConversationEntry maps to the conversations table. One row per chat
// message; the log is append-only.
type ConversationEntry struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	PatientID uuid.UUID  `db:"patient_id" json:"patient_id"`
	CaseID    *uuid.UUID `db:"case_id" json:"case_id"`
	Sender    string     `db:"sender" json:"sender"`
	Message   string     `db:"message" json:"message"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// WellnessEntry maps to the wellness_logs table. One row per wellness tip
// exchange; the log is append-only.
type WellnessEntry struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	UserMessage string    `db:"user_message" json:"user_message"`
	AIResponse  string    `db:"ai_response" json:"ai_response"`
	Category    *string   `db:"category" json:"category"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
