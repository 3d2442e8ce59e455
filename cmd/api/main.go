package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/grovebook/mentor-sessions/internal/database"
	"github.com/grovebook/mentor-sessions/internal/http/handlers"
	"github.com/grovebook/mentor-sessions/internal/http/middleware"
	"github.com/grovebook/mentor-sessions/internal/platform/sessions"
	"github.com/grovebook/mentor-sessions/internal/repo/postgres"
	"github.com/grovebook/mentor-sessions/internal/service"
	"github.com/grovebook/mentor-sessions/pkg/config"
	"github.com/grovebook/mentor-sessions/pkg/events"
	"github.com/grovebook/mentor-sessions/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Error("invalid redis url", "error", err)
		os.Exit(1)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()
	sessionStore := sessions.NewRedisStore(rdb)

	var bus events.Publisher = events.Noop{}
	if cfg.NATS.URL != "" {
		natsBus, err := events.NewNATSBus(cfg.NATS.URL)
		if err != nil {
			logger.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer natsBus.Close()
		bus = natsBus
	}

	// Stores
	slotRepo := postgres.NewSlotRepo(pool)
	bookingRepo := postgres.NewBookingRepo(pool)
	userRepo := postgres.NewUserRepo(pool)
	uploadRepo := postgres.NewUploadRepo(pool)

	// Services
	authSvc := service.NewAuthService(userRepo, sessionStore, bus, cfg.Session.Secret, cfg.Session.TTL)
	reservationSvc := service.NewReservationService(slotRepo, bookingRepo, uploadRepo, bus)
	slotSvc := service.NewSlotService(slotRepo, bus)
	querySvc := service.NewQueryService(slotRepo, bookingRepo, userRepo, uploadRepo)

	validate := validator.New()
	session := middleware.NewSessionMiddleware(authSvc)
	authLimiter := middleware.NewRateLimiter(pool, middleware.RateLimitConfig{
		Requests: 10,
		Window:   time.Minute,
	})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.LogContext)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(session.WithIdentity)

	r.Route("/api", func(r chi.Router) {
		r.With(authLimiter.Middleware()).
			Mount("/auth", handlers.NewAuthHandler(authSvc, validate, cfg.Session.SecureCookie).Routes())
		r.Mount("/mentors", handlers.NewMentorsHandler(querySvc).Routes())
		r.Mount("/mentor", handlers.NewMentorHandler(slotSvc, querySvc, validate).Routes())
		r.Mount("/bookings", handlers.NewBookingsHandler(reservationSvc, validate).Routes())
		r.Mount("/uploads", handlers.NewUploadsHandler(uploadRepo, validate).Routes())
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
