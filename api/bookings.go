package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
	logger  *slog.Logger
}

// createFlightBookingRequest carries the display fields the client shows
// next to the flight. They are accepted and ignored; the stored flight is
// authoritative.
type createFlightBookingRequest struct {
	FlightID      int64           `json:"flight_id" binding:"required"`
	FlightNumber  string          `json:"flight_number" binding:"required"`
	FromCity      string          `json:"from_city" binding:"required"`
	ToCity        string          `json:"to_city" binding:"required"`
	Passengers    int             `json:"passengers"`
	DepartureDate json.RawMessage `json:"departure_date,omitempty"`
	ArrivalDate   json.RawMessage `json:"arrival_date,omitempty"`
	Airline       json.RawMessage `json:"airline,omitempty"`
	Price         json.RawMessage `json:"price,omitempty"`
	ClassType     json.RawMessage `json:"class_type,omitempty"`
}

type createFlightBookingResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// createDestinationBookingRequest ignores client-computed pricing.
type createDestinationBookingRequest struct {
	DestinationID int64           `json:"destination_id" binding:"required"`
	CheckInDate   string          `json:"check_in_date" binding:"required"`
	CheckOutDate  string          `json:"check_out_date" binding:"required"`
	Guests        int             `json:"guests"`
	Location      json.RawMessage `json:"location,omitempty"`
	Nights        json.RawMessage `json:"nights,omitempty"`
	PricePerNight json.RawMessage `json:"price_per_night,omitempty"`
	TotalPrice    json.RawMessage `json:"total_price,omitempty"`
}

type createDestinationBookingResponse struct {
	ID         int64   `json:"id"`
	Nights     int     `json:"nights"`
	TotalPrice float64 `json:"total_price"`
	Message    string  `json:"message"`
}

func NewBookingHandler(service booking.BookingUseCase, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{service: service, logger: logger}
}

// Register expects RequireAuth upstream.
func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/flight-bookings", h.listFlights)
	router.POST("/flight-bookings", h.createFlight)
	router.DELETE("/flight-bookings/:id", h.cancelFlight)

	router.GET("/destination-bookings", h.listDestinations)
	router.POST("/destination-bookings", h.createDestination)
	router.DELETE("/destination-bookings/:id", h.cancelDestination)
}

func (h *BookingHandler) listFlights(c *gin.Context) {
	userID, _ := UserIDFrom(c)
	list, err := h.service.ListFlightBookings(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newFlightBookingResponses(list))
}

func (h *BookingHandler) createFlight(c *gin.Context) {
	var req createFlightBookingRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}

	userID, _ := UserIDFrom(c)
	created, err := h.service.CreateFlightBooking(c.Request.Context(), userID, booking.CreateFlightBookingInput{
		FlightID:     req.FlightID,
		FlightNumber: req.FlightNumber,
		FromCity:     req.FromCity,
		ToCity:       req.ToCity,
		Passengers:   req.Passengers,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, createFlightBookingResponse{ID: created.ID, Message: "Flight booked successfully"})
}

func (h *BookingHandler) cancelFlight(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	userID, _ := UserIDFrom(c)
	if err := h.service.CancelFlightBooking(c.Request.Context(), userID, id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Flight booking cancelled successfully"})
}

func (h *BookingHandler) listDestinations(c *gin.Context) {
	userID, _ := UserIDFrom(c)
	list, err := h.service.ListDestinationBookings(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newDestinationBookingResponses(list))
}

func (h *BookingHandler) createDestination(c *gin.Context) {
	var req createDestinationBookingRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}

	userID, _ := UserIDFrom(c)
	created, err := h.service.CreateDestinationBooking(c.Request.Context(), userID, booking.CreateDestinationBookingInput{
		DestinationID: req.DestinationID,
		CheckIn:       req.CheckInDate,
		CheckOut:      req.CheckOutDate,
		Guests:        req.Guests,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, createDestinationBookingResponse{
		ID:         created.ID,
		Nights:     created.Nights,
		TotalPrice: domain.CentsToAmount(created.TotalPriceCents),
		Message:    "Destination booked successfully",
	})
}

func (h *BookingHandler) cancelDestination(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	userID, _ := UserIDFrom(c)
	if err := h.service.CancelDestinationBooking(c.Request.Context(), userID, id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Destination booking cancelled successfully"})
}
