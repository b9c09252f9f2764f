package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/services"
	"github.com/Travelintrips/travelindashboard-sub001/internal/core/services"
	"github.com/Travelintrips/travelindashboard-sub001/internal/dto"
	"github.com/Travelintrips/travelindashboard-sub001/internal/middleware"
)

// syncHandler exposes the synchronization runs and the status snapshot.
type syncHandler struct {
	syncService portssvc.SyncSvcFacade
}

func newSyncHandler(ss portssvc.SyncSvcFacade) *syncHandler {
	return &syncHandler{syncService: ss}
}

func registerSyncRoutes(rg *gin.RouterGroup, ss portssvc.SyncSvcFacade) {
	h := newSyncHandler(ss)

	sync := rg.Group("/sync")
	{
		sync.POST("/sales", h.runSalesSync)
		sync.POST("/inventory", h.runInventorySync)
		sync.POST("/full", h.runFullSync)
		sync.GET("/status", h.getStatus)
	}
}

func (h *syncHandler) runSalesSync(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	result, err := h.syncService.RunSalesSync(c.Request.Context())
	if err != nil {
		h.writeSyncError(c, "sales", err)
		return
	}
	logger.Info("Sales sync finished",
		slog.Int("synced", result.SyncedCount),
		slog.Int("failed", result.FailedCount))
	c.JSON(http.StatusOK, dto.ToSyncResultResponse(result))
}

func (h *syncHandler) runInventorySync(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	result, err := h.syncService.RunInventorySync(c.Request.Context())
	if err != nil {
		h.writeSyncError(c, "inventory", err)
		return
	}
	logger.Info("Inventory sync finished",
		slog.Int("synced", result.SyncedCount),
		slog.Int("failed", result.FailedCount))
	c.JSON(http.StatusOK, dto.ToSyncResultResponse(result))
}

func (h *syncHandler) runFullSync(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	result, err := h.syncService.RunFullSync(c.Request.Context())
	if err != nil {
		h.writeSyncError(c, "full", err)
		return
	}
	logger.Info("Full sync finished",
		slog.Int("sales_synced", result.Sales.SyncedCount),
		slog.Int("inventory_synced", result.Inventory.SyncedCount))
	c.JSON(http.StatusOK, gin.H{
		"sales":     dto.ToSyncResultResponse(&result.Sales),
		"inventory": dto.ToSyncResultResponse(&result.Inventory),
	})
}

func (h *syncHandler) getStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status, err := h.syncService.Status(c.Request.Context())
	if err != nil {
		logger.Error("Failed to read sync status", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read sync status"})
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *syncHandler) writeSyncError(c *gin.Context, kind string, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if errors.Is(err, services.ErrSyncInProgress) {
		logger.Warn("Rejected concurrent sync run", slog.String("kind", kind))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	logger.Error("Sync run failed", slog.String("kind", kind), slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Sync run failed"})
}
