package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/loguncov/telegram-salon-mvp/services"
	"github.com/loguncov/telegram-salon-mvp/utils"
)

// UserController answers "who am I": owner, master or client.
type UserController struct {
	roles *services.RoleService
}

func NewUserController(roles *services.RoleService) *UserController {
	return &UserController{roles: roles}
}

func (ctl *UserController) GetRole(c *gin.Context) {
	userID := utils.UserID(c)

	var salonID *uuid.UUID
	rawSalonID := c.Query("salon_id")
	if rawSalonID != "" {
		// A malformed salon id cannot match any salon; the resolver then
		// falls back to the global scan, same as an unknown one.
		if id, err := uuid.Parse(rawSalonID); err == nil {
			salonID = &id
		}
	}

	role, err := ctl.roles.Resolve(userID, salonID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var salonField interface{}
	if rawSalonID != "" {
		salonField = rawSalonID
	}
	c.JSON(http.StatusOK, gin.H{
		"role":     role,
		"user_id":  userID,
		"salon_id": salonField,
	})
}
