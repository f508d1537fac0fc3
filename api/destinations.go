package api

import (
	"log/slog"
	"net/http"

	"github.com/Domenick1991/travelbooking/internal/service/destinations"
	"github.com/gin-gonic/gin"
)

type DestinationHandler struct {
	service destinations.DestinationUseCase
	logger  *slog.Logger
}

func NewDestinationHandler(service destinations.DestinationUseCase, logger *slog.Logger) *DestinationHandler {
	return &DestinationHandler{service: service, logger: logger}
}

func (h *DestinationHandler) Register(router *gin.RouterGroup) {
	router.GET("/featured", h.featured)
	router.GET("/search", h.search)
}

func (h *DestinationHandler) featured(c *gin.Context) {
	list, err := h.service.Featured(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newDestinationResponses(list))
}

// search ignores its query string and returns the whole catalog.
func (h *DestinationHandler) search(c *gin.Context) {
	list, err := h.service.Search(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newDestinationResponses(list))
}
