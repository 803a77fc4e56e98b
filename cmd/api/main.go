package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/slotwise/bookings/internal/cache"
	"github.com/slotwise/bookings/internal/domain"
	"github.com/slotwise/bookings/internal/http/handlers"
	"github.com/slotwise/bookings/internal/mailer"
	"github.com/slotwise/bookings/internal/notify"
	"github.com/slotwise/bookings/internal/repo/postgres"
	"github.com/slotwise/bookings/internal/scheduleclient"
	"github.com/slotwise/bookings/internal/service"
	"github.com/slotwise/bookings/pkg/config"
	"github.com/slotwise/bookings/pkg/database"
	"github.com/slotwise/bookings/pkg/events"
	"github.com/slotwise/bookings/pkg/logger"
	mw "github.com/slotwise/bookings/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Error("Invalid Redis URL", "error", err)
		os.Exit(1)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	// Repositories
	scheduleRepo := postgres.NewScheduleRepo(pool)
	bookingRepo := postgres.NewBookingRepo(pool)
	userRepo := postgres.NewUserRepo(pool)

	// The schedule read path goes to the local store unless a remote
	// provider is configured.
	var provider service.ScheduleProvider = service.StoreProvider{Repo: scheduleRepo}
	if cfg.Schedule.RemoteURL != "" {
		provider = scheduleclient.New(cfg.Schedule.RemoteURL)
	}

	scheduleCache := cache.NewScheduleCache(rdb, cfg.Schedule.CacheTTL)

	window := domain.SlotWindow{
		StartHour: cfg.Booking.WindowStartHour,
		EndHour:   cfg.Booking.WindowEndHour,
	}
	step := time.Duration(cfg.Booking.SlotMinutes) * time.Minute

	availabilityService := service.NewAvailabilityService(provider, scheduleRepo, scheduleCache, eventBus, window, step)
	bookingService := service.NewBookingService(bookingRepo, availabilityService, eventBus, step)

	// Notification consumer
	var mail mailer.Service
	if cfg.Email.DevMode {
		mail = mailer.NewDevMailer()
	} else {
		mail = mailer.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}
	if err := notify.NewConsumer(eventBus, mail).Start(); err != nil {
		logger.Error("Failed to start notify consumer", "error", err)
		os.Exit(1)
	}

	h := handlers.New(availabilityService, bookingService, userRepo, cfg)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
	}))
	r.Use(mw.RequestID)
	r.Use(mw.Health)
	r.Use(mw.Logging)

	r.Route("/", func(r chi.Router) {
		// Public
		r.Get("/owners/{ownerID}/slots", h.GetDaySlots)
		r.Post("/bookings", h.CreateBooking)
		r.Get("/bookings/{id}", h.GetBooking)
		r.Delete("/bookings/{id}", h.CancelBooking)

		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)

		// Owner (JWT required)
		r.Route("/me", func(r chi.Router) {
			r.Use(h.RequireJWT)
			r.Get("/schedule", h.GetMySchedule)
			r.Put("/schedule", h.PutMySchedule)
			r.Get("/bookings", h.ListOwnerBookings)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down bookings API...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Shutdown error", "error", err)
		}
	}()

	logger.Info("Starting bookings API", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
