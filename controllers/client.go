package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/loguncov/telegram-salon-mvp/models"
	"github.com/loguncov/telegram-salon-mvp/repository"
	"github.com/loguncov/telegram-salon-mvp/services"
	"github.com/loguncov/telegram-salon-mvp/utils"
)

// ClientController serves the public catalog and the client's own bookings.
// Catalog payloads hide internal contact fields of masters.
type ClientController struct {
	salons    *repository.SalonRepository
	appts     *repository.AppointmentRepository
	lifecycle *services.AppointmentService
}

func NewClientController(
	salons *repository.SalonRepository,
	appts *repository.AppointmentRepository,
	lifecycle *services.AppointmentService,
) *ClientController {
	return &ClientController{salons: salons, appts: appts, lifecycle: lifecycle}
}

// requireSalonParam resolves the :id path parameter or writes the 404.
func (ctl *ClientController) requireSalonParam(c *gin.Context) *models.Salon {
	salonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondServiceError(c, services.ErrSalonNotFound)
		return nil
	}
	salon, err := ctl.salons.GetByID(salonID)
	if err != nil {
		respondServiceError(c, err)
		return nil
	}
	if salon == nil {
		respondServiceError(c, services.ErrSalonNotFound)
		return nil
	}
	return salon
}

func salonSummary(salon *models.Salon) gin.H {
	return gin.H{
		"id":             salon.ID,
		"name":           salon.Name,
		"masters_count":  len(salon.Masters),
		"services_count": len(salon.Services),
	}
}

// ListSalons is public: every salon as a summary row.
func (ctl *ClientController) ListSalons(c *gin.Context) {
	salons, err := ctl.salons.ListAllWithChildren()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	items := make([]gin.H, 0, len(salons))
	for i := range salons {
		items = append(items, salonSummary(&salons[i]))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (ctl *ClientController) GetSalon(c *gin.Context) {
	salon := ctl.requireSalonParam(c)
	if salon == nil {
		return
	}
	c.JSON(http.StatusOK, salonSummary(salon))
}

// SalonMasters lists a salon's masters without their contact identities.
func (ctl *ClientController) SalonMasters(c *gin.Context) {
	salon := ctl.requireSalonParam(c)
	if salon == nil {
		return
	}
	items := make([]gin.H, 0, len(salon.Masters))
	for _, m := range salon.Masters {
		items = append(items, gin.H{"id": m.ID, "name": m.Name})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (ctl *ClientController) SalonServices(c *gin.Context) {
	salon := ctl.requireSalonParam(c)
	if salon == nil {
		return
	}
	items := make([]gin.H, 0, len(salon.Services))
	for _, s := range salon.Services {
		items = append(items, gin.H{
			"id":          s.ID,
			"name":        s.Name,
			"price":       s.Price,
			"duration":    s.Duration,
			"description": s.Description,
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// AvailableSlots returns the free hourly slots for one master on one date.
func (ctl *ClientController) AvailableSlots(c *gin.Context) {
	salonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondServiceError(c, services.ErrSalonNotFound)
		return
	}
	masterID, err := uuid.Parse(c.Query("master_id"))
	if err != nil {
		respondServiceError(c, services.ErrMasterNotFound)
		return
	}

	slots, err := ctl.lifecycle.AvailableSlots(salonID, masterID, c.Query("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": slots})
}

// --- Bookings ---

type CreateAppointmentInput struct {
	SalonID   string `json:"salon_id" binding:"required"`
	MasterID  string `json:"master_id" binding:"required"`
	ServiceID string `json:"service_id" binding:"required"`
	Datetime  string `json:"datetime" binding:"required"`
}

func (ctl *ClientController) CreateAppointment(c *gin.Context) {
	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	salonID, err := uuid.Parse(input.SalonID)
	if err != nil {
		respondServiceError(c, services.ErrSalonNotFound)
		return
	}
	masterID, err := uuid.Parse(input.MasterID)
	if err != nil {
		respondServiceError(c, services.ErrMasterNotFound)
		return
	}
	serviceID, err := uuid.Parse(input.ServiceID)
	if err != nil {
		respondServiceError(c, services.ErrServiceNotFound)
		return
	}

	appt, err := ctl.lifecycle.CreateAppointment(services.CreateAppointmentRequest{
		SalonID:   salonID,
		MasterID:  masterID,
		ServiceID: serviceID,
		Datetime:  input.Datetime,
		ClientID:  utils.UserID(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

func (ctl *ClientController) MyAppointments(c *gin.Context) {
	appts, err := ctl.appts.ListByClient(utils.UserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": appts})
}

// UpdateAppointment is the client's narrow patch endpoint: only cancellation
// of their own appointment is allowed.
func (ctl *ClientController) UpdateAppointment(c *gin.Context) {
	apptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondServiceError(c, services.ErrAppointmentNotFound)
		return
	}

	var input UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	appt, err := ctl.lifecycle.UpdateStatusAsClient(utils.UserID(c), apptID, input.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}
