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

// MasterController serves staff members recognized via their Telegram id.
type MasterController struct {
	salons    *repository.SalonRepository
	masters   *repository.MasterRepository
	appts     *repository.AppointmentRepository
	lifecycle *services.AppointmentService
}

func NewMasterController(
	salons *repository.SalonRepository,
	masters *repository.MasterRepository,
	appts *repository.AppointmentRepository,
	lifecycle *services.AppointmentService,
) *MasterController {
	return &MasterController{
		salons:    salons,
		masters:   masters,
		appts:     appts,
		lifecycle: lifecycle,
	}
}

// myRecords returns the caller's master records in their salon (the first
// salon that recognizes them), or writes the 404.
func (ctl *MasterController) myRecords(c *gin.Context) []models.Master {
	records, err := ctl.masters.ListByTelegram(utils.UserID(c))
	if err != nil {
		respondServiceError(c, err)
		return nil
	}
	if len(records) == 0 {
		respondServiceError(c, services.ErrNotSalonMaster)
		return nil
	}

	salonID := records[0].SalonID
	mine := records[:0]
	for _, m := range records {
		if m.SalonID == salonID {
			mine = append(mine, m)
		}
	}
	return mine
}

func (ctl *MasterController) GetSalon(c *gin.Context) {
	records := ctl.myRecords(c)
	if records == nil {
		return
	}

	salon, err := ctl.salons.GetByID(records[0].SalonID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if salon == nil {
		respondServiceError(c, services.ErrNotSalonMaster)
		return
	}
	normalizeSalon(salon)

	c.JSON(http.StatusOK, gin.H{
		"id":       salon.ID,
		"name":     salon.Name,
		"masters":  salon.Masters,
		"services": salon.Services,
	})
}

func (ctl *MasterController) MyAppointments(c *gin.Context) {
	records := ctl.myRecords(c)
	if records == nil {
		return
	}

	ids := make([]uuid.UUID, 0, len(records))
	for _, m := range records {
		ids = append(ids, m.ID)
	}

	appts, err := ctl.appts.ListByMasters(ids)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": appts})
}

func (ctl *MasterController) UpdateAppointment(c *gin.Context) {
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

	appt, err := ctl.lifecycle.UpdateStatusAsMaster(utils.UserID(c), apptID, input.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}
