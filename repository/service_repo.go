package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loguncov/telegram-salon-mvp/models"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(service *models.Service) error {
	return r.db.Create(service).Error
}

func (r *ServiceRepository) ListBySalon(salonID uuid.UUID) ([]models.Service, error) {
	var services []models.Service
	err := r.db.Where("salon_id = ?", salonID).
		Order("created_at ASC").Find(&services).Error
	return services, err
}

func (r *ServiceRepository) GetInSalon(salonID, serviceID uuid.UUID) (*models.Service, error) {
	var service models.Service
	err := r.db.First(&service, "salon_id = ? AND id = ?", salonID, serviceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &service, nil
}

type ServiceUpdate struct {
	Name        *string
	Price       *float64
	Duration    *int
	Description *string
}

// Update applies only the supplied fields.
func (r *ServiceRepository) Update(salonID, serviceID uuid.UUID, upd ServiceUpdate) (*models.Service, error) {
	fields := map[string]interface{}{}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.Price != nil {
		fields["price"] = *upd.Price
	}
	if upd.Duration != nil {
		fields["duration"] = *upd.Duration
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	if len(fields) > 0 {
		if err := r.db.Model(&models.Service{}).
			Where("salon_id = ? AND id = ?", salonID, serviceID).
			Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.GetInSalon(salonID, serviceID)
}

// Delete removes a service and reports whether a row went away.
func (r *ServiceRepository) Delete(salonID, serviceID uuid.UUID) (bool, error) {
	result := r.db.Where("salon_id = ? AND id = ?", salonID, serviceID).
		Delete(&models.Service{})
	return result.RowsAffected > 0, result.Error
}
