package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/loguncov/telegram-salon-mvp/config"
	"github.com/loguncov/telegram-salon-mvp/controllers"
	"github.com/loguncov/telegram-salon-mvp/repository"
	"github.com/loguncov/telegram-salon-mvp/services"
	"github.com/loguncov/telegram-salon-mvp/utils"
)

// SetupRouter wires repositories, services and controllers into the gin
// engine. Protected groups require the X-User-Id header; the client catalog
// is public.
func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(config.RequestLogger())

	// The mini-app runs inside Telegram's webview; origins vary.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-User-Id"}
	r.Use(cors.New(corsConfig))

	salonRepo := repository.NewSalonRepository(db)
	masterRepo := repository.NewMasterRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	apptRepo := repository.NewAppointmentRepository(db)

	lifecycle := services.NewAppointmentService(salonRepo, masterRepo, serviceRepo, apptRepo)
	roles := services.NewRoleService(salonRepo)

	owner := controllers.NewOwnerController(salonRepo, masterRepo, serviceRepo, apptRepo, lifecycle)
	client := controllers.NewClientController(salonRepo, apptRepo, lifecycle)
	master := controllers.NewMasterController(salonRepo, masterRepo, apptRepo, lifecycle)
	user := controllers.NewUserController(roles)

	r.StaticFile("/", "./static/index.html")
	r.GET("/health", controllers.Health)

	api := r.Group("/api")

	ownerAPI := api.Group("/owner", utils.RequireUser())
	{
		ownerAPI.GET("/salon", owner.GetSalon)
		ownerAPI.POST("/salon", owner.CreateSalon)
		ownerAPI.PATCH("/salon", owner.UpdateSalon)

		ownerAPI.GET("/masters", owner.ListMasters)
		ownerAPI.POST("/masters", owner.AddMaster)
		ownerAPI.PATCH("/masters/:id", owner.UpdateMaster)
		ownerAPI.DELETE("/masters/:id", owner.DeleteMaster)

		ownerAPI.GET("/services", owner.ListServices)
		ownerAPI.POST("/services", owner.AddService)
		ownerAPI.PATCH("/services/:id", owner.UpdateService)
		ownerAPI.DELETE("/services/:id", owner.DeleteService)

		ownerAPI.GET("/appointments", owner.ListAppointments)
		ownerAPI.PATCH("/appointments/:id", owner.UpdateAppointment)

		ownerAPI.GET("/dashboard", owner.Dashboard)
	}

	clientAPI := api.Group("/client")
	{
		clientAPI.GET("/salons", client.ListSalons)
		clientAPI.GET("/salons/:id", client.GetSalon)
		clientAPI.GET("/salons/:id/masters", client.SalonMasters)
		clientAPI.GET("/salons/:id/services", client.SalonServices)
		clientAPI.GET("/salons/:id/available-slots", client.AvailableSlots)

		bookings := clientAPI.Group("/appointments", utils.RequireUser())
		{
			bookings.POST("", client.CreateAppointment)
			bookings.GET("", client.MyAppointments)
			bookings.PATCH("/:id", client.UpdateAppointment)
		}
	}

	masterAPI := api.Group("/master", utils.RequireUser())
	{
		masterAPI.GET("/salon", master.GetSalon)
		masterAPI.GET("/appointments", master.MyAppointments)
		masterAPI.PATCH("/appointments/:id", master.UpdateAppointment)
	}

	api.GET("/user/role", utils.RequireUser(), user.GetRole)

	return r
}
