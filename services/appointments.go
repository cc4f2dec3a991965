package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/loguncov/telegram-salon-mvp/models"
	"github.com/loguncov/telegram-salon-mvp/repository"
	"github.com/loguncov/telegram-salon-mvp/utils"
)

// Candidate slots form a fixed hourly grid from 09:00 to 17:00 inclusive.
const (
	slotFirstHour = 9
	slotLastHour  = 17

	// A slot is suppressed when a live booking sits within this distance of
	// its start, in either direction.
	slotCollisionWindow = time.Hour
)

// AppointmentService owns the booking lifecycle: validation of new bookings,
// slot computation and the status state machine.
type AppointmentService struct {
	salons   *repository.SalonRepository
	masters  *repository.MasterRepository
	services *repository.ServiceRepository
	appts    *repository.AppointmentRepository

	now func() time.Time // overridable in tests
}

func NewAppointmentService(
	salons *repository.SalonRepository,
	masters *repository.MasterRepository,
	services *repository.ServiceRepository,
	appts *repository.AppointmentRepository,
) *AppointmentService {
	return &AppointmentService{
		salons:   salons,
		masters:  masters,
		services: services,
		appts:    appts,
		now:      time.Now,
	}
}

type CreateAppointmentRequest struct {
	SalonID   uuid.UUID
	MasterID  uuid.UUID
	ServiceID uuid.UUID
	Datetime  string
	ClientID  string
}

// CreateAppointment runs the booking validation chain and inserts the new
// pending appointment. Each step fails before anything is written.
func (s *AppointmentService) CreateAppointment(req CreateAppointmentRequest) (*models.Appointment, error) {
	salon, err := s.salons.GetByID(req.SalonID)
	if err != nil {
		return nil, err
	}
	if salon == nil {
		return nil, ErrSalonNotFound
	}

	master, err := s.masters.GetInSalon(req.SalonID, req.MasterID)
	if err != nil {
		return nil, err
	}
	if master == nil {
		return nil, ErrMasterNotFound
	}

	service, err := s.services.GetInSalon(req.SalonID, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, ErrServiceNotFound
	}

	// Offset-carrying datetimes are compared against aware now, bare ones
	// against local now. Either way the moment must be strictly in the
	// future.
	when, _, err := utils.ParseDateTime(req.Datetime)
	if err != nil {
		return nil, ErrInvalidDatetime
	}
	if !when.After(s.now()) {
		return nil, ErrPastDatetime
	}

	appt := &models.Appointment{
		SalonID:   req.SalonID,
		MasterID:  req.MasterID,
		ServiceID: req.ServiceID,
		ClientID:  req.ClientID,
		Datetime:  req.Datetime,
		Status:    models.StatusPending,
	}
	conflict, err := s.appts.CreateIfFree(appt)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrMasterBusy
	}
	return appt, nil
}

// AvailableSlots returns the free slot starts for one master on one date,
// earliest first, formatted as ISO-8601 strings.
func (s *AppointmentService) AvailableSlots(salonID, masterID uuid.UUID, date string) ([]string, error) {
	salon, err := s.salons.GetByID(salonID)
	if err != nil {
		return nil, err
	}
	if salon == nil {
		return nil, ErrSalonNotFound
	}

	master, err := s.masters.GetInSalon(salonID, masterID)
	if err != nil {
		return nil, err
	}
	if master == nil {
		return nil, ErrMasterNotFound
	}

	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	active, err := s.appts.ListActiveByMaster(masterID)
	if err != nil {
		return nil, err
	}

	// Bookings on the requested date, parsed once. Rows with unparsable
	// datetimes cannot collide with anything and are skipped.
	var booked []time.Time
	for _, appt := range active {
		when, _, err := utils.ParseDateTime(appt.Datetime)
		if err != nil {
			continue
		}
		if utils.SameDate(when, day) {
			booked = append(booked, when)
		}
	}

	now := s.now()
	slots := make([]string, 0, slotLastHour-slotFirstHour+1)
	for hour := slotFirstHour; hour <= slotLastHour; hour++ {
		start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.Local)
		if !start.After(now) {
			continue
		}
		if collides(start, booked) {
			continue
		}
		slots = append(slots, start.Format(utils.SlotLayout))
	}
	return slots, nil
}

func collides(slot time.Time, booked []time.Time) bool {
	for _, when := range booked {
		diff := when.Sub(slot)
		if diff < 0 {
			diff = -diff
		}
		if diff <= slotCollisionWindow {
			return true
		}
	}
	return false
}

// UpdateStatusAsOwner applies a status change to an appointment in the
// owner's salon. Appointments outside the salon read as missing.
func (s *AppointmentService) UpdateStatusAsOwner(ownerID string, apptID uuid.UUID, target string) (*models.Appointment, error) {
	salon, err := s.salons.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if salon == nil {
		return nil, ErrSalonNotFound
	}

	appt, err := s.appts.GetByID(apptID)
	if err != nil {
		return nil, err
	}
	if appt == nil || appt.SalonID != salon.ID {
		return nil, ErrAppointmentNotFound
	}
	return s.transition(appt, target)
}

// UpdateStatusAsMaster applies a status change to one of the caller's own
// appointments, located via their master records.
func (s *AppointmentService) UpdateStatusAsMaster(identity string, apptID uuid.UUID, target string) (*models.Appointment, error) {
	records, err := s.masters.ListByTelegram(identity)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotSalonMaster
	}
	// A master acts within one salon: the first one that recognizes them.
	records = inSalon(records, records[0].SalonID)

	appt, err := s.appts.GetByID(apptID)
	if err != nil {
		return nil, err
	}
	if appt == nil || !ownsAppointment(records, appt) {
		return nil, ErrAppointmentNotFound
	}
	return s.transition(appt, target)
}

// UpdateStatusAsClient lets a client cancel their own appointment. Any
// target other than cancelled is rejected outright.
func (s *AppointmentService) UpdateStatusAsClient(clientID string, apptID uuid.UUID, target string) (*models.Appointment, error) {
	appt, err := s.appts.GetByID(apptID)
	if err != nil {
		return nil, err
	}
	if appt == nil || appt.ClientID != clientID {
		return nil, ErrAppointmentNotFound
	}

	if target != models.StatusCancelled {
		return nil, ErrClientOnlyCancel
	}
	return s.transition(appt, target)
}

// transition enforces the status state machine shared by every role. The
// terminal-state check comes first: a frozen appointment reports itself as
// frozen no matter what target was asked for.
func (s *AppointmentService) transition(appt *models.Appointment, target string) (*models.Appointment, error) {
	switch appt.Status {
	case models.StatusCancelled:
		return nil, ErrModifyCancelled
	case models.StatusCompleted:
		if target != models.StatusCompleted {
			return nil, ErrModifyCompleted
		}
	}
	if !models.KnownStatus(target) {
		return nil, ErrInvalidStatus
	}
	return s.appts.UpdateStatus(appt.ID, target)
}

func inSalon(records []models.Master, salonID uuid.UUID) []models.Master {
	kept := records[:0]
	for _, m := range records {
		if m.SalonID == salonID {
			kept = append(kept, m)
		}
	}
	return kept
}

func ownsAppointment(records []models.Master, appt *models.Appointment) bool {
	for _, m := range records {
		if m.ID == appt.MasterID {
			return true
		}
	}
	return false
}
