package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/travelbooking/api"
	"github.com/Domenick1991/travelbooking/config"
	"github.com/Domenick1991/travelbooking/internal/auth"
	"github.com/Domenick1991/travelbooking/internal/bootstrap"
	"github.com/Domenick1991/travelbooking/internal/cache"
	"github.com/Domenick1991/travelbooking/internal/health"
	"github.com/Domenick1991/travelbooking/internal/kafka"
	"github.com/Domenick1991/travelbooking/internal/repository"
	"github.com/Domenick1991/travelbooking/internal/service/booking"
	"github.com/Domenick1991/travelbooking/internal/service/destinations"
	"github.com/Domenick1991/travelbooking/internal/service/flights"
	"github.com/Domenick1991/travelbooking/internal/service/users"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("parse database config: %w", err)
	}
	poolCfg.MaxConns = cfg.Database.MaxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	applied, err := repository.Migrate(ctx, pool)
	if err != nil {
		return err
	}
	if len(applied) > 0 {
		logger.Info("applied migrations", "migrations", applied)
	}

	checker := health.NewChecker(pool, cfg.Health.Interval(), cfg.Health.Timeout(), logger)
	go checker.Run(ctx)

	userRepo := repository.NewUserRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	destinationRepo := repository.NewDestinationRepository(pool)

	destinationOpts := []destinations.Option{destinations.WithFeaturedLimit(cfg.Catalog.FeaturedLimit)}
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, cfg.Catalog.CacheTTL())
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn("redis unavailable, catalog served from postgres", "addr", cfg.Redis.Addr, "error", err)
		}
		destinationOpts = append(destinationOpts, destinations.WithCache(redisCache))
	}

	bookingOpts := []booking.BookingServiceOption{booking.WithSeatInventory(cfg.Booking.EnforceSeatInventory)}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
		defer producer.Close()
		bookingOpts = append(bookingOpts, booking.WithProducer(producer, cfg.Kafka.BookingEventsTopic),
			booking.WithPublishTimeout(cfg.Kafka.PublishTimeout()))
	}

	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret)
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost, cfg.Auth.AllowLegacyPlaintext)

	userService := users.NewUserService(userRepo, tokens, hasher, logger)
	flightService := flights.NewFlightService(flightRepo)
	destinationService := destinations.NewDestinationService(destinationRepo, logger, destinationOpts...)
	bookingService := booking.NewBookingService(
		repository.NewFlightBookingRepository(pool),
		repository.NewDestinationBookingRepository(pool),
		flightRepo,
		destinationRepo,
		userRepo,
		logger,
		bookingOpts...,
	)

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(api.RouterDeps{
		Users:        userService,
		Flights:      flightService,
		Destinations: destinationService,
		Bookings:     bookingService,
		Tokens:       tokens,
		Health:       checker,
		Logger:       logger,
	})

	return bootstrap.Run(ctx, cfg.HTTP, router, logger)
}
