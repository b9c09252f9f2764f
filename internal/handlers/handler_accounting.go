package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Travelintrips/travelindashboard-sub001/internal/apperrors"
	portssvc "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/services"
	"github.com/Travelintrips/travelindashboard-sub001/internal/core/services"
	"github.com/Travelintrips/travelindashboard-sub001/internal/dto"
	"github.com/Travelintrips/travelindashboard-sub001/internal/middleware"
)

// accountingHandler handles the accounting-data action endpoint and the chart
// of accounts routes.
type accountingHandler struct {
	ledgerService    portssvc.LedgerSvcFacade
	reportingService portssvc.ReportingSvcFacade
}

func newAccountingHandler(ls portssvc.LedgerSvcFacade, rs portssvc.ReportingSvcFacade) *accountingHandler {
	return &accountingHandler{
		ledgerService:    ls,
		reportingService: rs,
	}
}

// registerAccountingRoutes registers the accounting action endpoint and the
// account management routes.
func registerAccountingRoutes(rg *gin.RouterGroup, ls portssvc.LedgerSvcFacade, rs portssvc.ReportingSvcFacade) {
	h := newAccountingHandler(ls, rs)

	rg.POST("/accounting-data", h.handleAccountingAction)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.DELETE("/:code", h.deactivateAccount)
	}

	transactions := rg.Group("/transactions")
	{
		transactions.GET("/:transactionID", h.getTransaction)
		transactions.POST("/:transactionID/void", h.voidTransaction)
	}
}

// handleAccountingAction dispatches the accounting-data action envelope.
func (h *accountingHandler) handleAccountingAction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind accounting action envelope", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	switch req.Action {
	case dto.ActionGetBalanceSheet:
		h.getBalanceSheet(c, req.Data)
	case dto.ActionGetIncomeStatement:
		h.getIncomeStatement(c, req.Data)
	case dto.ActionPostTransaction:
		h.postTransaction(c, req.Data)
	default:
		logger.Warn("Unknown accounting action", slog.String("action", req.Action))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown action: " + req.Action})
	}
}

func (h *accountingHandler) getBalanceSheet(c *gin.Context, data json.RawMessage) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BalanceSheetRequest
	if err := bindActionData(c, data, &req); err != nil {
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), req.AsOf)
	if err != nil {
		logger.Error("Failed to build balance sheet", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build balance sheet"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *accountingHandler) getIncomeStatement(c *gin.Context, data json.RawMessage) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PeriodRequest
	if err := bindActionData(c, data, &req); err != nil {
		return
	}

	report, err := h.reportingService.IncomeStatement(c.Request.Context(), req.From, req.To)
	if err != nil {
		logger.Error("Failed to build income statement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build income statement"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *accountingHandler) postTransaction(c *gin.Context, data json.RawMessage) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostTransactionRequest
	if err := bindActionData(c, data, &req); err != nil {
		return
	}

	txn := req.ToTransaction()
	if err := h.ledgerService.PostTransaction(c.Request.Context(), txn); err != nil {
		switch {
		case errors.Is(err, services.ErrTransactionUnbalanced),
			errors.Is(err, services.ErrTransactionMinEntries),
			errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Rejected unbalanced or invalid transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrPersistenceFailed):
			logger.Error("Both persistence paths failed for manual transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post transaction"})
		default:
			logger.Error("Failed to post transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post transaction"})
		}
		return
	}

	logger.Info("Posted manual transaction", slog.String("description", txn.Description))
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

func (h *accountingHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.ledgerService.CreateAccount(c.Request.Context(), req, systemUserID(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate account code", slog.String("code", req.Code))
			c.JSON(http.StatusConflict, gin.H{"error": "Account code already exists"})
			return
		}
		logger.Error("Failed to create account", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (h *accountingHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accounts, err := h.ledgerService.ListAccounts(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

func (h *accountingHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	if err := h.ledgerService.DeactivateAccount(c.Request.Context(), code, systemUserID(c)); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to deactivate account", slog.String("code", code), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate account"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *accountingHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	txn, err := h.ledgerService.GetTransaction(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		logger.Error("Failed to fetch transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transaction"})
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *accountingHandler) voidTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	if err := h.ledgerService.VoidTransaction(c.Request.Context(), transactionID, systemUserID(c), timeNow()); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found or not voidable"})
			return
		}
		logger.Error("Failed to void transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to void transaction"})
		return
	}
	c.Status(http.StatusNoContent)
}
