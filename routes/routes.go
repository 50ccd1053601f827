package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nichehotel-backend/controllers"
	"nichehotel-backend/middleware"
	"nichehotel-backend/services"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Deps is everything the router wires together.
type Deps struct {
	Auth      *controllers.AuthController
	Admins    *controllers.AdminController
	Roles     *controllers.RoleController
	Hotels    *controllers.HotelController
	Rooms     *controllers.RoomController
	RoomTypes *controllers.RoomTypeController
	Bookings  *controllers.BookingController
	Wizard    *controllers.WizardController
	Dashboard *controllers.DashboardController
	Settings  *controllers.SettingsController
	Activity  *controllers.ActivityController

	AuthSvc  *services.AuthService
	Metrics  *services.Metrics
	Registry *prometheus.Registry
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Static("/uploads", "./uploads")

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.Metrics(d.Metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", d.Auth.Login)
		}

		// Public booking form. No auth, no capability checks; the
		// controllers expose only guest-safe data.
		wizard := api.Group("/wizard")
		{
			wizard.GET("/settings", d.Wizard.FormSettings)
			wizard.GET("/availability", d.Wizard.Availability)
			wizard.GET("/hotels/:id/rooms", d.Wizard.RoomsForHotel)
			wizard.GET("/room-types/:slug", d.Wizard.RoomTypeDetails)
			wizard.POST("/bookings", d.Wizard.CreateBooking)
			wizard.POST("/payments/paypal", d.Wizard.StartPayment)
		}

		authed := api.Group("")
		authed.Use(middleware.Authenticate(d.AuthSvc))
		{
			authed.GET("/auth/whoami", d.Auth.Whoami)
			authed.GET("/dashboard", d.Dashboard.Metrics)

			bookings := authed.Group("/bookings", middleware.RequireCapability(services.CapEditBookings))
			{
				bookings.GET("", d.Bookings.List)
				bookings.POST("", d.Bookings.Create)
				bookings.GET("/export.csv", d.Bookings.ExportCSV)
				bookings.GET("/export.xlsx", d.Bookings.ExportXLSX)
				bookings.POST("/bulk-status", d.Bookings.BulkUpdateStatus)
				bookings.GET("/:id", d.Bookings.Get)
				bookings.PUT("/:id/status", d.Bookings.UpdateStatus)
				bookings.PUT("/:id/payment", d.Bookings.UpdatePayment)
			}

			hotels := authed.Group("/hotels", middleware.RequireCapability(services.CapEditBookings))
			{
				hotels.GET("", d.Hotels.List)
				hotels.POST("", d.Hotels.Create)
				hotels.POST("/bulk", d.Hotels.BulkCreate)
				hotels.GET("/:id", d.Hotels.Get)
				hotels.PUT("/:id", d.Hotels.Update)
				hotels.DELETE("/:id", d.Hotels.Delete)
			}

			rooms := authed.Group("/rooms", middleware.RequireCapability(services.CapEditBookings))
			{
				rooms.GET("", d.Rooms.List)
				rooms.POST("", d.Rooms.Create)
				rooms.POST("/bulk", d.Rooms.BulkCreate)
				rooms.GET("/:id", d.Rooms.Get)
				rooms.PUT("/:id", d.Rooms.Update)
				rooms.PATCH("/:id", d.Rooms.Update)
				rooms.DELETE("/:id", d.Rooms.Delete)
			}

			roomTypes := authed.Group("/room-types", middleware.RequireCapability(services.CapEditBookings))
			{
				roomTypes.GET("", d.RoomTypes.List)
				roomTypes.POST("", d.RoomTypes.Create)
				roomTypes.GET("/:id", d.RoomTypes.Get)
				roomTypes.PUT("/:id", d.RoomTypes.Update)
				roomTypes.DELETE("/:id", d.RoomTypes.Delete)
			}

			logs := authed.Group("/activity-logs", middleware.RequireCapability(services.CapViewLogs))
			{
				logs.GET("", d.Activity.List)
			}

			settings := authed.Group("/settings", middleware.RequireCapability(services.CapManageSettings))
			{
				settings.GET("/booking-form", d.Settings.GetBookingForm)
				settings.PUT("/booking-form", d.Settings.SaveBookingForm)
				settings.GET("/payment", d.Settings.GetPayment)
				settings.PUT("/payment", d.Settings.SavePayment)
				settings.GET("/webhooks", d.Settings.GetWebhooks)
				settings.PUT("/webhooks", d.Settings.SaveWebhooks)
			}

			admins := authed.Group("/admins", middleware.RequireCapability(services.CapManageSettings))
			{
				admins.GET("", d.Admins.List)
				admins.POST("", d.Admins.Create)
				admins.PUT("/:id/role", d.Admins.AssignRole)
				admins.DELETE("/:id", d.Admins.Delete)
			}

			roles := authed.Group("/roles", middleware.RequireCapability(services.CapManageSettings))
			{
				roles.GET("", d.Roles.List)
				roles.POST("", d.Roles.Create)
				roles.PUT("/:id/permissions", d.Roles.UpdatePermissions)
				roles.DELETE("/:id", d.Roles.Delete)
			}
		}
	}

	return r
}
