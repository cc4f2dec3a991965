package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"

	"github.com/loguncov/telegram-salon-mvp/models"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(gormsqlite.New(gormsqlite.Config{
		DriverName: "sqlite",
		DSN:        dsn,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Salon{},
		&models.Master{},
		&models.Service{},
		&models.Appointment{},
	))
	return SetupRouter(db)
}

func doRequest(t *testing.T, r *gin.Engine, method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
}

// seedViaAPI builds a salon with one master and one service through the owner
// endpoints and returns the three ids.
func seedViaAPI(t *testing.T, r *gin.Engine, ownerID, masterTelegramID string) (salonID, masterID, serviceID string) {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/owner/salon", ownerID, gin.H{"name": "Студия Луна"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var salon struct {
		ID string `json:"id"`
	}
	decode(t, w, &salon)

	w = doRequest(t, r, http.MethodPost, "/api/owner/masters", ownerID, gin.H{
		"name":        "Мастер Анна",
		"telegram_id": masterTelegramID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var master struct {
		ID string `json:"id"`
	}
	decode(t, w, &master)

	w = doRequest(t, r, http.MethodPost, "/api/owner/services", ownerID, gin.H{
		"name":  "Маникюр",
		"price": 1500.0,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var service struct {
		ID string `json:"id"`
	}
	decode(t, w, &service)

	return salon.ID, master.ID, service.ID
}

func TestHealth(t *testing.T) {
	r := setupRouter(t)

	w := doRequest(t, r, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	decode(t, w, &body)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["time"])
}

func TestMissingUserHeader(t *testing.T) {
	r := setupRouter(t)

	for _, path := range []string{
		"/api/owner/salon",
		"/api/master/salon",
		"/api/client/appointments",
		"/api/user/role",
	} {
		w := doRequest(t, r, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusUnauthorized, w.Code, path)

		var body map[string]string
		decode(t, w, &body)
		assert.Equal(t, "Missing X-User-Id header", body["error"])
	}
}

func TestPublicCatalogNeedsNoHeader(t *testing.T) {
	r := setupRouter(t)
	salonID, _, _ := seedViaAPI(t, r, "owner-1", "tg-anna")

	w := doRequest(t, r, http.MethodGet, "/api/client/salons", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items []map[string]interface{} `json:"items"`
	}
	decode(t, w, &body)
	require.Len(t, body.Items, 1)
	assert.Equal(t, salonID, body.Items[0]["id"])
	assert.Equal(t, float64(1), body.Items[0]["masters_count"])
	assert.Equal(t, float64(1), body.Items[0]["services_count"])
}

func TestOwnerSalonLifecycle(t *testing.T) {
	r := setupRouter(t)

	t.Run("no salon yet", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/api/owner/salon", "owner-1", nil)
		require.Equal(t, http.StatusNotFound, w.Code)

		var body map[string]string
		decode(t, w, &body)
		assert.Equal(t, "Salon not found", body["error"])
	})

	t.Run("create with default name", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPost, "/api/owner/salon", "owner-1", gin.H{})
		require.Equal(t, http.StatusCreated, w.Code)

		var salon struct {
			Name     string            `json:"name"`
			Masters  []json.RawMessage `json:"masters"`
			Services []json.RawMessage `json:"services"`
		}
		decode(t, w, &salon)
		assert.Equal(t, "Мой салон", salon.Name)
		assert.NotNil(t, salon.Masters)
		assert.NotNil(t, salon.Services)
	})

	t.Run("second salon is refused", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPost, "/api/owner/salon", "owner-1", gin.H{"name": "Второй"})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var body map[string]string
		decode(t, w, &body)
		assert.Equal(t, "Salon already exists", body["error"])
	})

	t.Run("rename", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPatch, "/api/owner/salon", "owner-1", gin.H{"name": "Студия Луна"})
		require.Equal(t, http.StatusOK, w.Code)

		var salon struct {
			Name string `json:"name"`
		}
		decode(t, w, &salon)
		assert.Equal(t, "Студия Луна", salon.Name)
	})
}

func TestOwnerMasterValidation(t *testing.T) {
	r := setupRouter(t)
	seedViaAPI(t, r, "owner-1", "tg-anna")

	t.Run("bad phone refused", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPost, "/api/owner/masters", "owner-1", gin.H{
			"name":  "Ольга",
			"phone": "not-a-phone",
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete unknown master", func(t *testing.T) {
		w := doRequest(t, r, http.MethodDelete, "/api/owner/masters/"+uuid.NewString(), "owner-1", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete malformed id", func(t *testing.T) {
		w := doRequest(t, r, http.MethodDelete, "/api/owner/masters/not-a-uuid", "owner-1", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestClientMastersHideContacts(t *testing.T) {
	r := setupRouter(t)
	salonID, masterID, _ := seedViaAPI(t, r, "owner-1", "tg-anna")

	w := doRequest(t, r, http.MethodGet, "/api/client/salons/"+salonID+"/masters", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items []map[string]interface{} `json:"items"`
	}
	decode(t, w, &body)
	require.Len(t, body.Items, 1)
	assert.Equal(t, masterID, body.Items[0]["id"])
	assert.Equal(t, "Мастер Анна", body.Items[0]["name"])
	assert.NotContains(t, body.Items[0], "telegram_id")
	assert.NotContains(t, body.Items[0], "phone")
}

func TestRoleEndpoint(t *testing.T) {
	r := setupRouter(t)
	salonID, _, _ := seedViaAPI(t, r, "owner-1", "tg-anna")

	cases := []struct {
		user string
		want string
	}{
		{"owner-1", "owner"},
		{"tg-anna", "master"},
		{"client-7", "client"},
	}
	for _, tc := range cases {
		w := doRequest(t, r, http.MethodGet, "/api/user/role?salon_id="+salonID, tc.user, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		decode(t, w, &body)
		assert.Equal(t, tc.want, body["role"], tc.user)
		assert.Equal(t, tc.user, body["user_id"])
		assert.Equal(t, salonID, body["salon_id"])
	}

	t.Run("without salon id", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/api/user/role", "owner-1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		decode(t, w, &body)
		assert.Equal(t, "owner", body["role"])
		assert.Nil(t, body["salon_id"])
	})

	t.Run("malformed salon id is echoed back", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/api/user/role?salon_id=garbage", "tg-anna", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		decode(t, w, &body)
		assert.Equal(t, "master", body["role"])
		assert.Equal(t, "garbage", body["salon_id"])
	})
}

// TestBookingScenario walks the whole flow over HTTP: the owner builds the
// salon, a client books, a double-booking is refused, the master confirms,
// the client cancels, and the cancelled record is frozen.
func TestBookingScenario(t *testing.T) {
	r := setupRouter(t)
	salonID, masterID, serviceID := seedViaAPI(t, r, "owner-1", "tg-anna")

	const datetime = "2099-08-01T12:00:00"
	booking := gin.H{
		"salon_id":   salonID,
		"master_id":  masterID,
		"service_id": serviceID,
		"datetime":   datetime,
	}

	var apptID string
	t.Run("client books", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPost, "/api/client/appointments", "client-7", booking)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var appt struct {
			ID       string `json:"id"`
			Status   string `json:"status"`
			Datetime string `json:"datetime"`
		}
		decode(t, w, &appt)
		apptID = appt.ID
		assert.Equal(t, models.StatusPending, appt.Status)
		assert.Equal(t, datetime, appt.Datetime)
	})

	t.Run("same slot is refused", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPost, "/api/client/appointments", "client-8", booking)
		require.Equal(t, http.StatusConflict, w.Code)

		var body map[string]string
		decode(t, w, &body)
		assert.Equal(t, "Master already booked at this time", body["error"])
	})

	t.Run("booked hour vanishes from the grid", func(t *testing.T) {
		path := fmt.Sprintf("/api/client/salons/%s/available-slots?master_id=%s&date=2099-08-01", salonID, masterID)
		w := doRequest(t, r, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Items []string `json:"items"`
		}
		decode(t, w, &body)
		assert.NotContains(t, body.Items, "2099-08-01T12:00:00")
		assert.NotContains(t, body.Items, "2099-08-01T11:00:00")
		assert.NotContains(t, body.Items, "2099-08-01T13:00:00")
		assert.Contains(t, body.Items, "2099-08-01T10:00:00")
		assert.Contains(t, body.Items, "2099-08-01T14:00:00")
	})

	t.Run("owner sees the booking", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/api/owner/appointments?status=pending", "owner-1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Items []models.Appointment `json:"items"`
		}
		decode(t, w, &body)
		require.Len(t, body.Items, 1)
		assert.Equal(t, "client-7", body.Items[0].ClientID)
	})

	t.Run("master confirms", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPatch, "/api/master/appointments/"+apptID, "tg-anna", gin.H{"status": "confirmed"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var appt struct {
			Status string `json:"status"`
		}
		decode(t, w, &appt)
		assert.Equal(t, models.StatusConfirmed, appt.Status)
	})

	t.Run("stranger cannot touch it", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPatch, "/api/client/appointments/"+apptID, "client-8", gin.H{"status": "cancelled"})
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("client cancels their own", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPatch, "/api/client/appointments/"+apptID, "client-7", gin.H{"status": "cancelled"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("cancelled record is frozen", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPatch, "/api/master/appointments/"+apptID, "tg-anna", gin.H{"status": "completed"})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("cancelled slot is free again", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPost, "/api/client/appointments", "client-9", booking)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})
}

func TestMasterCabinet(t *testing.T) {
	r := setupRouter(t)
	salonID, masterID, serviceID := seedViaAPI(t, r, "owner-1", "tg-anna")

	t.Run("unknown staff gets 404", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/api/master/salon", "tg-nobody", nil)
		require.Equal(t, http.StatusNotFound, w.Code)

		var body map[string]string
		decode(t, w, &body)
		assert.Equal(t, "Salon not found or user is not a master", body["error"])
	})

	t.Run("salon view", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/api/master/salon", "tg-anna", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		decode(t, w, &body)
		assert.Equal(t, salonID, body["id"])
	})

	t.Run("own appointments", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPost, "/api/client/appointments", "client-7", gin.H{
			"salon_id":   salonID,
			"master_id":  masterID,
			"service_id": serviceID,
			"datetime":   "2099-09-01T15:00:00",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = doRequest(t, r, http.MethodGet, "/api/master/appointments", "tg-anna", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Items []models.Appointment `json:"items"`
		}
		decode(t, w, &body)
		require.Len(t, body.Items, 1)
		assert.Equal(t, "2099-09-01T15:00:00", body.Items[0].Datetime)
	})
}

func TestBookingValidation(t *testing.T) {
	r := setupRouter(t)
	salonID, masterID, serviceID := seedViaAPI(t, r, "owner-1", "tg-anna")

	cases := []struct {
		name     string
		body     gin.H
		wantCode int
		wantErr  string
	}{
		{
			"unknown salon",
			gin.H{"salon_id": uuid.NewString(), "master_id": masterID, "service_id": serviceID, "datetime": "2099-08-01T12:00:00"},
			http.StatusNotFound, "Salon not found",
		},
		{
			"unknown master",
			gin.H{"salon_id": salonID, "master_id": uuid.NewString(), "service_id": serviceID, "datetime": "2099-08-01T12:00:00"},
			http.StatusNotFound, "Master not found",
		},
		{
			"unknown service",
			gin.H{"salon_id": salonID, "master_id": masterID, "service_id": uuid.NewString(), "datetime": "2099-08-01T12:00:00"},
			http.StatusNotFound, "Service not found",
		},
		{
			"garbage datetime",
			gin.H{"salon_id": salonID, "master_id": masterID, "service_id": serviceID, "datetime": "tomorrow noon"},
			http.StatusBadRequest, "Invalid datetime format",
		},
		{
			"past datetime",
			gin.H{"salon_id": salonID, "master_id": masterID, "service_id": serviceID, "datetime": "2020-01-01T12:00:00"},
			http.StatusBadRequest, "Cannot book in the past",
		},
		{
			"missing field",
			gin.H{"salon_id": salonID, "master_id": masterID, "datetime": "2099-08-01T12:00:00"},
			http.StatusBadRequest, "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, r, http.MethodPost, "/api/client/appointments", "client-7", tc.body)
			require.Equal(t, tc.wantCode, w.Code, w.Body.String())
			if tc.wantErr != "" {
				var body map[string]string
				decode(t, w, &body)
				assert.Equal(t, tc.wantErr, body["error"])
			}
		})
	}
}

func TestOwnerDashboard(t *testing.T) {
	r := setupRouter(t)
	salonID, masterID, serviceID := seedViaAPI(t, r, "owner-1", "tg-anna")

	for _, dt := range []string{"2099-08-01T10:00:00", "2099-08-02T10:00:00"} {
		w := doRequest(t, r, http.MethodPost, "/api/client/appointments", "client-7", gin.H{
			"salon_id":   salonID,
			"master_id":  masterID,
			"service_id": serviceID,
			"datetime":   dt,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := doRequest(t, r, http.MethodGet, "/api/owner/dashboard", "owner-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		SalonID           string         `json:"salon_id"`
		MastersCount      int            `json:"masters_count"`
		ServicesCount     int            `json:"services_count"`
		AppointmentsCount int            `json:"appointments_count"`
		ByStatus          map[string]int `json:"appointments_by_status"`
	}
	decode(t, w, &body)
	assert.Equal(t, salonID, body.SalonID)
	assert.Equal(t, 1, body.MastersCount)
	assert.Equal(t, 1, body.ServicesCount)
	assert.Equal(t, 2, body.AppointmentsCount)
	assert.Equal(t, 2, body.ByStatus[models.StatusPending])
	assert.Equal(t, 0, body.ByStatus[models.StatusCancelled])
}
