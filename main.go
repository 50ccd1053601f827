package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"nichehotel-backend/config"
	"nichehotel-backend/controllers"
	"nichehotel-backend/routes"
	"nichehotel-backend/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found; continuing with environment variables")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	db := config.DB
	log.Println("database connection established")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := services.NewMetrics(registry)

	// Redis is optional; without it the dashboard just computes fresh.
	var cache *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		if err := cache.Ping(context.Background()).Err(); err != nil {
			log.Printf("redis unreachable, dashboard cache disabled: %v", err)
			cache = nil
		}
	}

	authService := services.NewAuthService(db)
	adminService := services.NewAdminService(db)
	hotelService := services.NewHotelService(db)
	roomService := services.NewRoomService(db)
	roomTypeService := services.NewRoomTypeService(db)
	settingsService := services.NewSettingsService(db)
	activityService := services.NewActivityService(db)
	webhookService := services.NewWebhookService(settingsService, metrics)
	dispatcher := services.NewDispatcher(webhookService, activityService)
	bookingService := services.NewBookingService(db, services.NewAllocator(nil), metrics)
	dashboardService := services.NewDashboardService(db, cache)
	paypalService := services.NewPayPalService(settingsService)

	router := routes.SetupRouter(routes.Deps{
		Auth:      controllers.NewAuthController(authService),
		Admins:    controllers.NewAdminController(adminService),
		Roles:     controllers.NewRoleController(db),
		Hotels:    controllers.NewHotelController(hotelService),
		Rooms:     controllers.NewRoomController(roomService),
		RoomTypes: controllers.NewRoomTypeController(roomTypeService),
		Bookings:  controllers.NewBookingController(bookingService, settingsService, dispatcher),
		Wizard: &controllers.WizardController{
			Bookings:   bookingService,
			Rooms:      roomService,
			Types:      roomTypeService,
			Dashboard:  dashboardService,
			Settings:   settingsService,
			PayPal:     paypalService,
			Dispatcher: dispatcher,
		},
		Dashboard: controllers.NewDashboardController(dashboardService),
		Settings:  controllers.NewSettingsController(settingsService),
		Activity:  controllers.NewActivityController(activityService),

		AuthSvc:  authService,
		Metrics:  metrics,
		Registry: registry,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("shutdown signal received, shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server stopped gracefully")
}
