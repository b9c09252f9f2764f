package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Travelintrips/travelindashboard-sub001/internal/apperrors"
	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
	portssvc "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/services"
	"github.com/Travelintrips/travelindashboard-sub001/internal/middleware"
)

// mappingHandler manages the account mapping table.
type mappingHandler struct {
	mappingService portssvc.MappingSvcFacade
}

func newMappingHandler(ms portssvc.MappingSvcFacade) *mappingHandler {
	return &mappingHandler{mappingService: ms}
}

func registerMappingRoutes(rg *gin.RouterGroup, ms portssvc.MappingSvcFacade) {
	h := newMappingHandler(ms)

	mappings := rg.Group("/mappings")
	{
		mappings.GET("", h.listMappings)
		mappings.GET("/:transactionType", h.getMapping)
		mappings.PUT("", h.upsertMapping)
	}
}

func (h *mappingHandler) listMappings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	mappings, err := h.mappingService.ListMappings(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list account mappings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list mappings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mappings": mappings})
}

func (h *mappingHandler) getMapping(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionType := c.Param("transactionType")

	m, err := h.mappingService.GetMapping(c.Request.Context(), transactionType)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No mapping for transaction type"})
			return
		}
		logger.Error("Failed to read account mapping", slog.String("transaction_type", transactionType), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read mapping"})
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *mappingHandler) upsertMapping(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var mapping domain.AccountMapping
	if err := c.ShouldBindJSON(&mapping); err != nil {
		logger.Warn("Failed to bind JSON for UpsertMapping", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if mapping.TransactionType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "transactionType is required"})
		return
	}

	if err := h.mappingService.UpsertMapping(c.Request.Context(), mapping); err != nil {
		logger.Error("Failed to upsert account mapping", slog.String("transaction_type", mapping.TransactionType), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upsert mapping"})
		return
	}
	c.JSON(http.StatusOK, mapping)
}
