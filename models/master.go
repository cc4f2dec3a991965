package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Master struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null" json:"salon_id"`
	Name    string    `gorm:"not null" json:"name"`

	// TelegramID lets the API recognize the master as a caller.
	TelegramID *string `gorm:"index" json:"telegram_id"`
	// Phone is used for SMS reminders when no Telegram id is known.
	Phone *string `json:"phone"`

	CreatedAt time.Time `json:"-"`
}

func (m *Master) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}
