package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/loguncov/telegram-salon-mvp/models"
	"github.com/loguncov/telegram-salon-mvp/repository"
	"github.com/loguncov/telegram-salon-mvp/services"
	"github.com/loguncov/telegram-salon-mvp/utils"
)

// OwnerController serves the salon back office: the salon itself, its
// masters and services, and appointment administration.
type OwnerController struct {
	salons    *repository.SalonRepository
	masters   *repository.MasterRepository
	services  *repository.ServiceRepository
	appts     *repository.AppointmentRepository
	lifecycle *services.AppointmentService
}

func NewOwnerController(
	salons *repository.SalonRepository,
	masters *repository.MasterRepository,
	svcRepo *repository.ServiceRepository,
	appts *repository.AppointmentRepository,
	lifecycle *services.AppointmentService,
) *OwnerController {
	return &OwnerController{
		salons:    salons,
		masters:   masters,
		services:  svcRepo,
		appts:     appts,
		lifecycle: lifecycle,
	}
}

// requireSalon loads the caller's salon or writes the 404.
func (ctl *OwnerController) requireSalon(c *gin.Context) *models.Salon {
	salon, err := ctl.salons.GetByOwner(utils.UserID(c))
	if err != nil {
		respondServiceError(c, err)
		return nil
	}
	if salon == nil {
		respondServiceError(c, services.ErrSalonNotFound)
		return nil
	}
	normalizeSalon(salon)
	return salon
}

// --- Salon ---

type CreateSalonInput struct {
	Name string `json:"name"`
}

type UpdateSalonInput struct {
	Name *string `json:"name"`
}

func (ctl *OwnerController) GetSalon(c *gin.Context) {
	salon := ctl.requireSalon(c)
	if salon == nil {
		return
	}
	c.JSON(http.StatusOK, salon)
}

func (ctl *OwnerController) CreateSalon(c *gin.Context) {
	var input CreateSalonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	name := input.Name
	if name == "" {
		name = "Мой салон"
	}

	// The owner_id unique index is the single source of truth for "one salon
	// per owner"; a pre-read here would leave a race window.
	salon := &models.Salon{Name: name, OwnerID: utils.UserID(c)}
	if err := ctl.salons.Create(salon); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			respondServiceError(c, services.ErrSalonExists)
			return
		}
		respondServiceError(c, err)
		return
	}
	normalizeSalon(salon)
	c.JSON(http.StatusCreated, salon)
}

func (ctl *OwnerController) UpdateSalon(c *gin.Context) {
	salon := ctl.requireSalon(c)
	if salon == nil {
		return
	}

	var input UpdateSalonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	updated, err := ctl.salons.Update(salon.ID, input.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	normalizeSalon(updated)
	c.JSON(http.StatusOK, updated)
}

// --- Masters ---

type CreateMasterInput struct {
	Name       string  `json:"name" binding:"required"`
	TelegramID *string `json:"telegram_id"`
	Phone      *string `json:"phone"`
}

type UpdateMasterInput struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

func (ctl *OwnerController) ListMasters(c *gin.Context) {
	salon := ctl.requireSalon(c)
	if salon == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": salon.Masters})
}

func (ctl *OwnerController) AddMaster(c *gin.Context) {
	salon := ctl.requireSalon(c)
	if salon == nil {
		return
	}

	var input CreateMasterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Phone != nil && !utils.ValidatePhone(*input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	master := &models.Master{
		SalonID:    salon.ID,
		Name:       input.Name,
		TelegramID: input.TelegramID,
		Phone:      input.Phone,
	}
	if err := ctl.masters.Create(master); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, master)
}

func (ctl *OwnerController) UpdateMaster(c *gin.Context) {
	salon := ctl.requireSalon(c)
	if salon == nil {
		return
	}

	masterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondServiceError(c, services.ErrMasterNotFound)
		return
	}

	var input UpdateMasterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Phone != nil && !utils.ValidatePhone(*input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	master, err := ctl.masters.Update(salon.ID, masterID, repository.MasterUpdate{
		Name:  input.Name,
		Phone: input.Phone,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if master == nil {
		respondServiceError(c, services.ErrMasterNotFound)
		return
	}
	c.JSON(http.StatusOK, master)
}

func (ctl *OwnerController) DeleteMaster(c *gin.Context) {
	salon := ctl.requireSalon(c)
	if salon == nil {
		return
	}

	masterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondServiceError(c, services.ErrMasterNotFound)
		return
	}

	deleted, err := ctl.masters.Delete(salon.ID, masterID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !deleted {
		respondServiceError(c, services.ErrMasterNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// --- Services ---

type CreateServiceInput struct {
	Name        string   `json:"name" binding:"required"`
	Price       *float64 `json:"price"`
	Duration    *int     `json:"duration"` // in minutes
	Description *string  `json:"description"`
}

type UpdateServiceInput struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Duration    *int     `json:"duration"`
	Description *string  `json:"description"`
}

func (ctl *OwnerController) ListServices(c *gin.Context) {
	salon := ctl.requireSalon(c)
	if salon == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": salon.Services})
}

func (ctl *OwnerController) AddService(c *gin.Context) {
	salon := ctl.requireSalon(c)
	if salon == nil {
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service := &models.Service{
		SalonID:     salon.ID,
		Name:        input.Name,
		Price:       input.Price,
		Duration:    input.Duration,
		Description: input.Description,
	}
	if err := ctl.services.Create(service); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, service)
}

func (ctl *OwnerController) UpdateService(c *gin.Context) {
	salon := ctl.requireSalon(c)
	if salon == nil {
		return
	}

	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondServiceError(c, services.ErrServiceNotFound)
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service, err := ctl.services.Update(salon.ID, serviceID, repository.ServiceUpdate{
		Name:        input.Name,
		Price:       input.Price,
		Duration:    input.Duration,
		Description: input.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if service == nil {
		respondServiceError(c, services.ErrServiceNotFound)
		return
	}
	c.JSON(http.StatusOK, service)
}

func (ctl *OwnerController) DeleteService(c *gin.Context) {
	salon := ctl.requireSalon(c)
	if salon == nil {
		return
	}

	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondServiceError(c, services.ErrServiceNotFound)
		return
	}

	deleted, err := ctl.services.Delete(salon.ID, serviceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !deleted {
		respondServiceError(c, services.ErrServiceNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// --- Appointments ---

type UpdateAppointmentInput struct {
	Status string `json:"status" binding:"required"`
}

// ListAppointments returns the salon's appointments, optionally filtered by
// master_id and status query parameters.
func (ctl *OwnerController) ListAppointments(c *gin.Context) {
	salon := ctl.requireSalon(c)
	if salon == nil {
		return
	}

	var masterID *uuid.UUID
	if raw := c.Query("master_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"items": []models.Appointment{}})
			return
		}
		masterID = &id
	}
	var status *string
	if raw := c.Query("status"); raw != "" {
		status = &raw
	}

	appts, err := ctl.appts.ListBySalon(salon.ID, masterID, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": appts})
}

func (ctl *OwnerController) UpdateAppointment(c *gin.Context) {
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

	appt, err := ctl.lifecycle.UpdateStatusAsOwner(utils.UserID(c), apptID, input.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// --- Dashboard ---

// Dashboard gives the owner a quick overview: entity counts and the
// appointment breakdown by status.
func (ctl *OwnerController) Dashboard(c *gin.Context) {
	salon := ctl.requireSalon(c)
	if salon == nil {
		return
	}

	byStatus := map[string]int{
		models.StatusPending:   0,
		models.StatusConfirmed: 0,
		models.StatusCancelled: 0,
		models.StatusCompleted: 0,
	}
	for _, appt := range salon.Appointments {
		byStatus[appt.Status]++
	}

	c.JSON(http.StatusOK, gin.H{
		"salon_id":               salon.ID,
		"masters_count":          len(salon.Masters),
		"services_count":         len(salon.Services),
		"appointments_count":     len(salon.Appointments),
		"appointments_by_status": byStatus,
	})
}

// normalizeSalon replaces nil child slices with empty ones so the JSON shows
// [] instead of null.
func normalizeSalon(salon *models.Salon) {
	if salon.Masters == nil {
		salon.Masters = []models.Master{}
	}
	if salon.Services == nil {
		salon.Services = []models.Service{}
	}
	if salon.Appointments == nil {
		salon.Appointments = []models.Appointment{}
	}
}
