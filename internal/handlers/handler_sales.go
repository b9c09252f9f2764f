package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Travelintrips/travelindashboard-sub001/internal/apperrors"
	portssvc "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/services"
	"github.com/Travelintrips/travelindashboard-sub001/internal/dto"
	"github.com/Travelintrips/travelindashboard-sub001/internal/middleware"
)

// salesHandler handles the sales-data action endpoint.
type salesHandler struct {
	queueService     portssvc.PendingQueueSvcFacade
	reportingService portssvc.ReportingSvcFacade
}

func newSalesHandler(qs portssvc.PendingQueueSvcFacade, rs portssvc.ReportingSvcFacade) *salesHandler {
	return &salesHandler{
		queueService:     qs,
		reportingService: rs,
	}
}

func registerSalesRoutes(rg *gin.RouterGroup, qs portssvc.PendingQueueSvcFacade, rs portssvc.ReportingSvcFacade) {
	h := newSalesHandler(qs, rs)
	rg.POST("/sales-data", h.handleSalesAction)
}

// handleSalesAction dispatches the sales-data action envelope.
func (h *salesHandler) handleSalesAction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind sales action envelope", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	switch req.Action {
	case dto.ActionCreateSale:
		h.createSale(c, req.Data)
	case dto.ActionGetSalesReport:
		h.getSalesReport(c, req.Data)
	default:
		logger.Warn("Unknown sales action", slog.String("action", req.Action))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown action: " + req.Action})
	}
}

func (h *salesHandler) createSale(c *gin.Context, data json.RawMessage) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSaleRequest
	if err := bindActionData(c, data, &req); err != nil {
		return
	}

	ev, err := h.queueService.EnqueueSale(c.Request.Context(), req.ToSalesTransaction())
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Rejected invalid sales event", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to record sales event", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record sale"})
		return
	}

	logger.Info("Recorded sales event",
		slog.String("transaction_id", ev.TransactionID),
		slog.String("transaction_type", string(ev.TransactionType)))
	c.JSON(http.StatusCreated, ev)
}

func (h *salesHandler) getSalesReport(c *gin.Context, data json.RawMessage) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PeriodRequest
	if err := bindActionData(c, data, &req); err != nil {
		return
	}

	rows, err := h.reportingService.SalesReport(c.Request.Context(), req.From, req.To)
	if err != nil {
		logger.Error("Failed to build sales report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build sales report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}
