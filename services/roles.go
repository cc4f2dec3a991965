package services

import (
	"github.com/google/uuid"

	"github.com/loguncov/telegram-salon-mvp/models"
	"github.com/loguncov/telegram-salon-mvp/repository"
)

const (
	RoleOwner  = "owner"
	RoleMaster = "master"
	RoleClient = "client"
)

// RoleService derives a caller's role from the opaque external identity.
// It never fails: anyone who is neither an owner nor a master is a client.
type RoleService struct {
	salons *repository.SalonRepository
}

func NewRoleService(salons *repository.SalonRepository) *RoleService {
	return &RoleService{salons: salons}
}

// Resolve determines the role. With a salon id the check is scoped to that
// salon; otherwise salons are scanned in creation order and the first owner
// or master match wins.
func (s *RoleService) Resolve(identity string, salonID *uuid.UUID) (string, error) {
	if salonID != nil {
		salon, err := s.salons.GetByID(*salonID)
		if err != nil {
			return "", err
		}
		if salon != nil {
			return roleInSalon(salon, identity), nil
		}
		// Unknown salon id degrades to the global scan.
	}

	salons, err := s.salons.ListAll()
	if err != nil {
		return "", err
	}
	for i := range salons {
		if role := roleInSalon(&salons[i], identity); role != RoleClient {
			return role, nil
		}
	}
	return RoleClient, nil
}

func roleInSalon(salon *models.Salon, identity string) string {
	if salon.OwnerID == identity {
		return RoleOwner
	}
	for _, m := range salon.Masters {
		if m.TelegramID != nil && *m.TelegramID == identity {
			return RoleMaster
		}
	}
	return RoleClient
}
