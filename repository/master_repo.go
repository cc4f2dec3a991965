package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loguncov/telegram-salon-mvp/models"
)

type MasterRepository struct {
	db *gorm.DB
}

func NewMasterRepository(db *gorm.DB) *MasterRepository {
	return &MasterRepository{db: db}
}

func (r *MasterRepository) Create(master *models.Master) error {
	return r.db.Create(master).Error
}

func (r *MasterRepository) ListBySalon(salonID uuid.UUID) ([]models.Master, error) {
	var masters []models.Master
	err := r.db.Where("salon_id = ?", salonID).
		Order("created_at ASC").Find(&masters).Error
	return masters, err
}

// GetInSalon looks a master up scoped to one salon, so out-of-salon ids are
// indistinguishable from missing ones.
func (r *MasterRepository) GetInSalon(salonID, masterID uuid.UUID) (*models.Master, error) {
	var master models.Master
	err := r.db.First(&master, "salon_id = ? AND id = ?", salonID, masterID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &master, nil
}

func (r *MasterRepository) GetByID(masterID uuid.UUID) (*models.Master, error) {
	var master models.Master
	err := r.db.First(&master, "id = ?", masterID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &master, nil
}

type MasterUpdate struct {
	Name  *string
	Phone *string
}

// Update applies only the supplied fields.
func (r *MasterRepository) Update(salonID, masterID uuid.UUID, upd MasterUpdate) (*models.Master, error) {
	fields := map[string]interface{}{}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.Phone != nil {
		fields["phone"] = *upd.Phone
	}
	if len(fields) > 0 {
		if err := r.db.Model(&models.Master{}).
			Where("salon_id = ? AND id = ?", salonID, masterID).
			Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.GetInSalon(salonID, masterID)
}

// Delete removes a master and reports whether a row went away.
func (r *MasterRepository) Delete(salonID, masterID uuid.UUID) (bool, error) {
	result := r.db.Where("salon_id = ? AND id = ?", salonID, masterID).
		Delete(&models.Master{})
	return result.RowsAffected > 0, result.Error
}

// ListByTelegram returns every master record recognized by the external
// identity, across all salons.
func (r *MasterRepository) ListByTelegram(telegramID string) ([]models.Master, error) {
	var masters []models.Master
	err := r.db.Where("telegram_id = ?", telegramID).
		Order("created_at ASC").Find(&masters).Error
	return masters, err
}
