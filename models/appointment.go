package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment statuses. Cancelled and completed are terminal.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// KnownStatus reports whether s is one of the four appointment statuses.
func KnownStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// TerminalStatuses permit no further transitions and do not occupy a slot.
var TerminalStatuses = []string{StatusCancelled, StatusCompleted}

type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SalonID   uuid.UUID `gorm:"type:uuid;index;not null" json:"salon_id"`
	MasterID  uuid.UUID `gorm:"type:uuid;index;not null" json:"master_id"`
	ServiceID uuid.UUID `gorm:"type:uuid;index;not null" json:"service_id"`
	ClientID  string    `gorm:"index;not null" json:"client_id"`

	// Datetime keeps the literal ISO-8601 string the client sent. Conflict
	// detection compares these strings byte for byte, so the stored value is
	// never reformatted.
	Datetime string `gorm:"index;not null" json:"datetime"`
	Status   string `gorm:"not null;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"-"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
