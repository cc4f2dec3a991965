package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loguncov/telegram-salon-mvp/models"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// CreateIfFree inserts the appointment unless the master already has a
// non-terminal appointment with the identical datetime string. Check and
// insert run in one transaction so two concurrent bookings cannot both pass.
func (r *AppointmentRepository) CreateIfFree(appt *models.Appointment) (conflict bool, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Appointment{}).
			Where("master_id = ? AND datetime = ? AND status NOT IN ?",
				appt.MasterID, appt.Datetime, models.TerminalStatuses).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			conflict = true
			return nil
		}
		return tx.Create(appt).Error
	})
	return conflict, err
}

func (r *AppointmentRepository) GetByID(id uuid.UUID) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.db.First(&appt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// ListBySalon returns a salon's appointments, optionally narrowed by master
// and status.
func (r *AppointmentRepository) ListBySalon(salonID uuid.UUID, masterID *uuid.UUID, status *string) ([]models.Appointment, error) {
	query := r.db.Where("salon_id = ?", salonID)
	if masterID != nil {
		query = query.Where("master_id = ?", *masterID)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var appts []models.Appointment
	err := query.Order("created_at ASC").Find(&appts).Error
	return appts, err
}

func (r *AppointmentRepository) ListByMasters(masterIDs []uuid.UUID) ([]models.Appointment, error) {
	if len(masterIDs) == 0 {
		return []models.Appointment{}, nil
	}
	var appts []models.Appointment
	err := r.db.Where("master_id IN ?", masterIDs).
		Order("created_at ASC").Find(&appts).Error
	return appts, err
}

func (r *AppointmentRepository) ListByClient(clientID string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.Where("client_id = ?", clientID).
		Order("created_at ASC").Find(&appts).Error
	return appts, err
}

// ListActiveByMaster returns the master's appointments still occupying time,
// i.e. everything not cancelled or completed.
func (r *AppointmentRepository) ListActiveByMaster(masterID uuid.UUID) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.
		Where("master_id = ? AND status NOT IN ?", masterID, models.TerminalStatuses).
		Order("created_at ASC").Find(&appts).Error
	return appts, err
}

func (r *AppointmentRepository) ListByStatus(status string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.Where("status = ?", status).
		Order("created_at ASC").Find(&appts).Error
	return appts, err
}

func (r *AppointmentRepository) UpdateStatus(id uuid.UUID, status string) (*models.Appointment, error) {
	if err := r.db.Model(&models.Appointment{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return nil, err
	}
	return r.GetByID(id)
}
