package repository

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loguncov/telegram-salon-mvp/models"
)

// ErrDuplicateKey marks an insert refused by a unique index.
var ErrDuplicateKey = errors.New("duplicate key")

type SalonRepository struct {
	db *gorm.DB
}

func NewSalonRepository(db *gorm.DB) *SalonRepository {
	return &SalonRepository{db: db}
}

// GetByID loads a salon with its children. Returns (nil, nil) when no row
// exists; callers turn that into a 404.
func (r *SalonRepository) GetByID(id uuid.UUID) (*models.Salon, error) {
	var salon models.Salon
	err := r.db.
		Preload("Masters", orderByCreation).
		Preload("Services", orderByCreation).
		Preload("Appointments", orderByCreation).
		First(&salon, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &salon, nil
}

// GetByOwner finds the salon owned by the given external identity.
func (r *SalonRepository) GetByOwner(ownerID string) (*models.Salon, error) {
	var salon models.Salon
	err := r.db.
		Preload("Masters", orderByCreation).
		Preload("Services", orderByCreation).
		Preload("Appointments", orderByCreation).
		First(&salon, "owner_id = ?", ownerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &salon, nil
}

// Create inserts the salon. A second salon for the same owner trips the
// owner_id unique index, so racing creates cannot both land; the violation
// comes back as ErrDuplicateKey.
func (r *SalonRepository) Create(salon *models.Salon) error {
	err := r.db.Create(salon).Error
	if err != nil && isDuplicateKey(err) {
		return ErrDuplicateKey
	}
	return err
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Fallback for drivers without gorm error translation.
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

// Update applies only the supplied fields.
func (r *SalonRepository) Update(id uuid.UUID, name *string) (*models.Salon, error) {
	if name != nil {
		if err := r.db.Model(&models.Salon{}).Where("id = ?", id).
			Update("name", *name).Error; err != nil {
			return nil, err
		}
	}
	return r.GetByID(id)
}

// ListAll returns every salon in creation order with masters preloaded, the
// order the role resolver scans in.
func (r *SalonRepository) ListAll() ([]models.Salon, error) {
	var salons []models.Salon
	err := r.db.
		Preload("Masters", orderByCreation).
		Order("created_at ASC").
		Find(&salons).Error
	return salons, err
}

// ListAllWithChildren also preloads services, for catalog summaries.
func (r *SalonRepository) ListAllWithChildren() ([]models.Salon, error) {
	var salons []models.Salon
	err := r.db.
		Preload("Masters", orderByCreation).
		Preload("Services", orderByCreation).
		Order("created_at ASC").
		Find(&salons).Error
	return salons, err
}

func orderByCreation(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}
