package models

import "time"

// Step values for Session.Step.
const (
	StepIdle            = "idle"
	StepAwaitingConfirm = "awaiting_confirm"
	StepAwaitingPhone   = "awaiting_phone"
	StepAwaitingName    = "awaiting_name"
)

// Session tracks where a chat is in the verification dialogue. Correlation
// on the phone-echo prompt remains the step detector; the session carries
// the canonical pending phone and bounds abandoned dialogues via ExpiresAt.
type Session struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	ChatID       int64  `gorm:"uniqueIndex;not null"`
	Step         string
	PendingPhone string
	ExpiresAt    time.Time `gorm:"index"`
}

// VerifiedUser is one completed verification. Append-only: rows are created
// once per finished dialogue and never updated.
type VerifiedUser struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID     int64 `gorm:"index"`
	ChatID     int64
	Username   string
	Phone      string
	Name       string
	Code       string `gorm:"uniqueIndex"` // e.g., VER-1A2B3C4D
	VerifiedAt time.Time
}
