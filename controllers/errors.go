package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loguncov/telegram-salon-mvp/services"
	"github.com/loguncov/telegram-salon-mvp/utils"
)

// respondServiceError maps business-layer sentinels onto HTTP statuses.
// Anything unrecognized is a server fault.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSalonNotFound),
		errors.Is(err, services.ErrMasterNotFound),
		errors.Is(err, services.ErrServiceNotFound),
		errors.Is(err, services.ErrAppointmentNotFound),
		errors.Is(err, services.ErrNotSalonMaster):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())

	case errors.Is(err, services.ErrMasterBusy):
		utils.RespondWithError(c, http.StatusConflict, err.Error())

	case errors.Is(err, services.ErrSalonExists),
		errors.Is(err, services.ErrInvalidDatetime),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrPastDatetime),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrModifyCancelled),
		errors.Is(err, services.ErrModifyCompleted),
		errors.Is(err, services.ErrClientOnlyCancel):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())

	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}
