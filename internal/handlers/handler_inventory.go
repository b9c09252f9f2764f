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

// inventoryHandler handles the inventory-data action endpoint.
type inventoryHandler struct {
	queueService     portssvc.PendingQueueSvcFacade
	reportingService portssvc.ReportingSvcFacade
}

func newInventoryHandler(qs portssvc.PendingQueueSvcFacade, rs portssvc.ReportingSvcFacade) *inventoryHandler {
	return &inventoryHandler{
		queueService:     qs,
		reportingService: rs,
	}
}

func registerInventoryRoutes(rg *gin.RouterGroup, qs portssvc.PendingQueueSvcFacade, rs portssvc.ReportingSvcFacade) {
	h := newInventoryHandler(qs, rs)
	rg.POST("/inventory-data", h.handleInventoryAction)
}

// handleInventoryAction dispatches the inventory-data action envelope.
func (h *inventoryHandler) handleInventoryAction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind inventory action envelope", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	switch req.Action {
	case dto.ActionCreateInventoryTransaction:
		h.createInventoryTransaction(c, req.Data)
	case dto.ActionGetInventoryReport:
		h.getInventoryReport(c, req.Data)
	default:
		logger.Warn("Unknown inventory action", slog.String("action", req.Action))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown action: " + req.Action})
	}
}

func (h *inventoryHandler) createInventoryTransaction(c *gin.Context, data json.RawMessage) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateInventoryTransactionRequest
	if err := bindActionData(c, data, &req); err != nil {
		return
	}

	ev, err := h.queueService.EnqueueInventory(c.Request.Context(), req.ToInventoryTransaction())
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Rejected invalid inventory event", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to record inventory event", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record inventory transaction"})
		return
	}

	logger.Info("Recorded inventory event",
		slog.String("transaction_id", ev.TransactionID),
		slog.String("transaction_type", string(ev.TransactionType)))
	c.JSON(http.StatusCreated, ev)
}

func (h *inventoryHandler) getInventoryReport(c *gin.Context, data json.RawMessage) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PeriodRequest
	if err := bindActionData(c, data, &req); err != nil {
		return
	}

	rows, err := h.reportingService.InventoryReport(c.Request.Context(), req.From, req.To)
	if err != nil {
		logger.Error("Failed to build inventory report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build inventory report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}
