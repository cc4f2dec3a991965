package services

import "errors"

// Sentinel errors raised by the business layer. Controllers map them onto
// HTTP status codes; the messages are the ones surfaced to callers.
var (
	ErrSalonNotFound       = errors.New("Salon not found")
	ErrSalonExists         = errors.New("Salon already exists")
	ErrMasterNotFound      = errors.New("Master not found")
	ErrServiceNotFound     = errors.New("Service not found")
	ErrAppointmentNotFound = errors.New("Appointment not found")

	ErrInvalidDatetime = errors.New("Invalid datetime format")
	ErrInvalidDate     = errors.New("Invalid date format")
	ErrPastDatetime    = errors.New("Cannot book in the past")
	ErrMasterBusy      = errors.New("Master already booked at this time")

	ErrInvalidStatus    = errors.New("Invalid status")
	ErrModifyCancelled  = errors.New("Cannot modify cancelled appointment")
	ErrModifyCompleted  = errors.New("Cannot modify completed appointment")
	ErrClientOnlyCancel = errors.New("Client can only cancel appointments")
	ErrNotSalonMaster   = errors.New("Salon not found or user is not a master")
)
