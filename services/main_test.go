package services

import (
	"fmt"
	"testing"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"

	"github.com/loguncov/telegram-salon-mvp/models"
	"github.com/loguncov/telegram-salon-mvp/repository"
)

type testEnv struct {
	db        *gorm.DB
	salons    *repository.SalonRepository
	masters   *repository.MasterRepository
	services  *repository.ServiceRepository
	appts     *repository.AppointmentRepository
	lifecycle *AppointmentService
	roles     *RoleService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Salon{}, &models.Master{}, &models.Service{}, &models.Appointment{},
	); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}

	salons := repository.NewSalonRepository(db)
	masters := repository.NewMasterRepository(db)
	svcRepo := repository.NewServiceRepository(db)
	appts := repository.NewAppointmentRepository(db)

	return &testEnv{
		db:        db,
		salons:    salons,
		masters:   masters,
		services:  svcRepo,
		appts:     appts,
		lifecycle: NewAppointmentService(salons, masters, svcRepo, appts),
		roles:     NewRoleService(salons),
	}
}

func strPtr(s string) *string { return &s }

// seedSalon creates a salon with one master and one service.
func seedSalon(t *testing.T, env *testEnv, ownerID, masterTelegramID string) (*models.Salon, *models.Master, *models.Service) {
	t.Helper()

	salon := &models.Salon{Name: "Test Salon", OwnerID: ownerID}
	if err := env.salons.Create(salon); err != nil {
		t.Fatalf("failed to create salon: %v", err)
	}

	master := &models.Master{SalonID: salon.ID, Name: "Мастер Анна"}
	if masterTelegramID != "" {
		master.TelegramID = strPtr(masterTelegramID)
	}
	if err := env.masters.Create(master); err != nil {
		t.Fatalf("failed to create master: %v", err)
	}

	price := 1500.0
	service := &models.Service{SalonID: salon.ID, Name: "Маникюр", Price: &price}
	if err := env.services.Create(service); err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	return salon, master, service
}
