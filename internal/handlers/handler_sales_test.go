package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
	portssvc "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/services"
	"github.com/Travelintrips/travelindashboard-sub001/internal/handlers"
	"github.com/Travelintrips/travelindashboard-sub001/internal/platform/config"
)

// --- Mock PendingQueueService ---
type MockQueueService struct {
	mock.Mock
}

func (m *MockQueueService) EnqueueSale(ctx context.Context, ev domain.SalesTransaction) (*domain.SalesTransaction, error) {
	args := m.Called(ctx, ev)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesTransaction), args.Error(1)
}

func (m *MockQueueService) EnqueueInventory(ctx context.Context, ev domain.InventoryTransaction) (*domain.InventoryTransaction, error) {
	args := m.Called(ctx, ev)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryTransaction), args.Error(1)
}

func (m *MockQueueService) ListUnsyncedSales(ctx context.Context) ([]domain.SalesTransaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalesTransaction), args.Error(1)
}

func (m *MockQueueService) ListUnsyncedInventory(ctx context.Context) ([]domain.InventoryTransaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryTransaction), args.Error(1)
}

func (m *MockQueueService) MarkSaleSynced(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockQueueService) MarkInventorySynced(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

var _ portssvc.PendingQueueSvcFacade = (*MockQueueService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}

func (m *MockReportingService) IncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatementReport, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeStatementReport), args.Error(1)
}

func (m *MockReportingService) SalesReport(ctx context.Context, from, to time.Time) ([]domain.SalesReportRow, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalesReportRow), args.Error(1)
}

func (m *MockReportingService) InventoryReport(ctx context.Context, from, to time.Time) ([]domain.InventoryReportRow, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryReportRow), args.Error(1)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Test Suite Setup ---

type SalesHandlerTestSuite struct {
	suite.Suite
	mockQueue     *MockQueueService
	mockReporting *MockReportingService
	router        *gin.Engine
}

func (suite *SalesHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockQueue = new(MockQueueService)
	suite.mockReporting = new(MockReportingService)

	container := &portssvc.ServiceContainer{
		Queue:     suite.mockQueue,
		Reporting: suite.mockReporting,
	}
	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &config.Config{}, container, nil)
}

func (suite *SalesHandlerTestSuite) postAction(path, action string, data any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(data)
	suite.Require().NoError(err)
	body, err := json.Marshal(map[string]any{"action": action, "data": json.RawMessage(raw)})
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *SalesHandlerTestSuite) TestCreateSale_Success() {
	saved := &domain.SalesTransaction{
		TransactionID:   "SAL-1",
		TransactionType: domain.SalesFlight,
		CustomerName:    "Budi",
		ProductName:     "CGK-DPS",
		TotalAmount:     decimal.NewFromInt(1250000),
	}
	suite.mockQueue.On("EnqueueSale", mock.Anything, mock.MatchedBy(func(ev domain.SalesTransaction) bool {
		return ev.TransactionType == domain.SalesFlight && !ev.SyncedToAccounting
	})).Return(saved, nil).Once()

	w := suite.postAction("/api/v1/sales-data", "createSale", map[string]any{
		"transactionType": "flight",
		"customerName":    "Budi",
		"productName":     "CGK-DPS",
		"totalAmount":     "1250000",
	})

	suite.Equal(http.StatusCreated, w.Code)

	var resp domain.SalesTransaction
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("SAL-1", resp.TransactionID)
	suite.mockQueue.AssertExpectations(suite.T())
}

func (suite *SalesHandlerTestSuite) TestCreateSale_InvalidTransactionType() {
	w := suite.postAction("/api/v1/sales-data", "createSale", map[string]any{
		"transactionType": "spa_service",
		"customerName":    "Budi",
		"productName":     "Massage",
		"totalAmount":     "90000",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockQueue.AssertNotCalled(suite.T(), "EnqueueSale", mock.Anything, mock.Anything)
}

func (suite *SalesHandlerTestSuite) TestCreateSale_MissingCustomerName() {
	w := suite.postAction("/api/v1/sales-data", "createSale", map[string]any{
		"transactionType": "hotel",
		"productName":     "Deluxe Room",
		"totalAmount":     "500000",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockQueue.AssertNotCalled(suite.T(), "EnqueueSale", mock.Anything, mock.Anything)
}

func (suite *SalesHandlerTestSuite) TestUnknownAction() {
	w := suite.postAction("/api/v1/sales-data", "deleteEverything", map[string]any{})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Unknown action")
}

func (suite *SalesHandlerTestSuite) TestGetSalesReport() {
	rows := []domain.SalesReportRow{
		{TransactionType: domain.SalesHotel, TransactionCount: 2, TotalAmount: decimal.NewFromInt(1200000)},
	}
	suite.mockReporting.On("SalesReport", mock.Anything, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(rows, nil).Once()

	w := suite.postAction("/api/v1/sales-data", "getSalesReport", map[string]any{
		"from": time.Now().AddDate(0, 0, -7).Format(time.RFC3339),
		"to":   time.Now().Format(time.RFC3339),
	})

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "hotel")
	suite.mockReporting.AssertExpectations(suite.T())
}

func (suite *SalesHandlerTestSuite) TestHealthEndpoint() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
}

// --- Run Test Suite ---

func TestSalesHandler(t *testing.T) {
	suite.Run(t, new(SalesHandlerTestSuite))
}
