package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Salon struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name    string    `gorm:"not null" json:"name"`
	OwnerID string    `gorm:"uniqueIndex;not null" json:"owner_id"` // external identity of the owner

	Masters      []Master      `gorm:"foreignKey:SalonID;constraint:OnDelete:CASCADE" json:"masters"`
	Services     []Service     `gorm:"foreignKey:SalonID;constraint:OnDelete:CASCADE" json:"services"`
	Appointments []Appointment `gorm:"foreignKey:SalonID;constraint:OnDelete:CASCADE" json:"appointments"`

	CreatedAt time.Time `json:"-"`
}

func (s *Salon) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
