package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
	logger  *slog.Logger
}

func NewFlightHandler(service flights.FlightUseCase, logger *slog.Logger) *FlightHandler {
	return &FlightHandler{service: service, logger: logger}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/search", h.search)
	router.GET("/:id", h.get)
}

func (h *FlightHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), flights.ListQuery{
		FromCity:  c.Query("from_city"),
		ToCity:    c.Query("to_city"),
		ClassType: c.Query("class_type"),
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newFlightResponses(list))
}

func (h *FlightHandler) search(c *gin.Context) {
	list, err := h.service.Search(c.Request.Context(), flights.SearchQuery{
		FromCity:      c.Query("from_city"),
		ToCity:        c.Query("to_city"),
		ClassType:     c.Query("class_type"),
		Passengers:    c.Query("passengers"),
		DepartureDate: c.Query("departure_date"),
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, newFlightResponses(list))
}

func newFlightResponses(list []domain.Flight) []flightResponse {
	out := make([]flightResponse, 0, len(list))
	for _, f := range list {
		out = append(out, newFlightResponse(f))
	}
	return out
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newFlightResponse(*flight))
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Validation("INVALID_ID", "id must be a positive integer")
	}
	return id, nil
}
