package api

import (
	"log/slog"
	"net/http"

	"github.com/Domenick1991/travelbooking/internal/service/booking"
	"github.com/Domenick1991/travelbooking/internal/service/destinations"
	"github.com/Domenick1991/travelbooking/internal/service/flights"
	"github.com/Domenick1991/travelbooking/internal/service/users"
	"github.com/gin-gonic/gin"
)

type HealthReporter interface {
	Healthy() bool
}

type RouterDeps struct {
	Users        users.UserUseCase
	Flights      flights.FlightUseCase
	Destinations destinations.DestinationUseCase
	Bookings     booking.BookingUseCase
	Tokens       TokenParser
	// Health backs /healthz; nil reports healthy.
	Health HealthReporter
	Logger *slog.Logger
}

// NewRouter builds the gin engine with every route under /api plus /healthz.
func NewRouter(deps RouterDeps) *gin.Engine {
	configureBinding()

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(deps.Logger))

	router.GET("/healthz", func(c *gin.Context) {
		if deps.Health != nil && !deps.Health.Healthy() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := router.Group("/api")
	userHandler := NewUserHandler(deps.Users, deps.Logger)
	userHandler.Register(public)
	NewFlightHandler(deps.Flights, deps.Logger).Register(public.Group("/flights"))
	NewDestinationHandler(deps.Destinations, deps.Logger).Register(public.Group("/destinations"))

	protected := router.Group("/api", RequireAuth(deps.Tokens, deps.Logger))
	userHandler.RegisterProtected(protected)
	NewBookingHandler(deps.Bookings, deps.Logger).Register(protected)

	return router
}
