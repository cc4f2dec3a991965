package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null" json:"salon_id"`
	Name    string    `gorm:"not null" json:"name"`

	Price       *float64 `gorm:"type:decimal(10,2)" json:"price"`
	Duration    *int     `json:"duration"` // in minutes
	Description *string  `json:"description"`

	CreatedAt time.Time `json:"-"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
