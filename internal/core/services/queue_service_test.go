package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Travelintrips/travelindashboard-sub001/internal/apperrors"
	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
	portssvc "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/services"
	"github.com/Travelintrips/travelindashboard-sub001/internal/core/services"
)

// MockSalesEventStore is a mock type for the SalesEventStore interface
type MockSalesEventStore struct {
	mock.Mock
}

func (m *MockSalesEventStore) SaveSalesTransaction(ctx context.Context, ev domain.SalesTransaction) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockSalesEventStore) ListUnsyncedSales(ctx context.Context) ([]domain.SalesTransaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalesTransaction), args.Error(1)
}

func (m *MockSalesEventStore) MarkSalesSynced(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockSalesEventStore) ListSalesBetween(ctx context.Context, from, to time.Time) ([]domain.SalesTransaction, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalesTransaction), args.Error(1)
}

// MockInventoryEventStore is a mock type for the InventoryEventStore interface
type MockInventoryEventStore struct {
	mock.Mock
}

func (m *MockInventoryEventStore) SaveInventoryTransaction(ctx context.Context, ev domain.InventoryTransaction) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockInventoryEventStore) ListUnsyncedInventory(ctx context.Context) ([]domain.InventoryTransaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryTransaction), args.Error(1)
}

func (m *MockInventoryEventStore) MarkInventorySynced(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockInventoryEventStore) ListInventoryBetween(ctx context.Context, from, to time.Time) ([]domain.InventoryTransaction, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryTransaction), args.Error(1)
}

// --- Test Suite Setup ---

type PendingQueueServiceTestSuite struct {
	suite.Suite
	mockSales     *MockSalesEventStore
	mockInventory *MockInventoryEventStore
	service       portssvc.PendingQueueSvcFacade
}

func (suite *PendingQueueServiceTestSuite) SetupTest() {
	suite.mockSales = new(MockSalesEventStore)
	suite.mockInventory = new(MockInventoryEventStore)
	suite.service = services.NewPendingQueueService(suite.mockSales, suite.mockInventory)
}

// --- Test Cases ---

func (suite *PendingQueueServiceTestSuite) TestEnqueueSale_AssignsIDAndForcesUnsynced() {
	ctx := context.Background()
	ev := domain.SalesTransaction{
		TransactionType:    domain.SalesHotel,
		CustomerName:       "Sari",
		TotalAmount:        decimal.NewFromInt(500000),
		SyncedToAccounting: true, // must be forced back to false
	}

	suite.mockSales.On("SaveSalesTransaction", ctx, mock.MatchedBy(func(saved domain.SalesTransaction) bool {
		return saved.TransactionID != "" && !saved.SyncedToAccounting
	})).Return(nil).Once()

	saved, err := suite.service.EnqueueSale(ctx, ev)

	suite.Require().NoError(err)
	suite.Require().NotNil(saved)
	suite.NotEmpty(saved.TransactionID)
	suite.False(saved.SyncedToAccounting)
	suite.False(saved.CreatedAt.IsZero())
	suite.mockSales.AssertExpectations(suite.T())
}

func (suite *PendingQueueServiceTestSuite) TestEnqueueSale_KeepsProvidedID() {
	ctx := context.Background()
	ev := domain.SalesTransaction{
		TransactionID:   "SAL-EXTERNAL-1",
		TransactionType: domain.SalesFlight,
		TotalAmount:     decimal.NewFromInt(100000),
	}

	suite.mockSales.On("SaveSalesTransaction", ctx, mock.MatchedBy(func(saved domain.SalesTransaction) bool {
		return saved.TransactionID == "SAL-EXTERNAL-1"
	})).Return(nil).Once()

	saved, err := suite.service.EnqueueSale(ctx, ev)

	suite.Require().NoError(err)
	suite.Equal("SAL-EXTERNAL-1", saved.TransactionID)
}

func (suite *PendingQueueServiceTestSuite) TestEnqueueSale_RejectsNegativeAmount() {
	ctx := context.Background()
	ev := domain.SalesTransaction{
		TransactionType: domain.SalesFlight,
		TotalAmount:     decimal.NewFromInt(-1),
	}

	saved, err := suite.service.EnqueueSale(ctx, ev)

	suite.Require().Error(err)
	suite.Nil(saved)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSales.AssertNotCalled(suite.T(), "SaveSalesTransaction", mock.Anything, mock.Anything)
}

func (suite *PendingQueueServiceTestSuite) TestEnqueueInventory_RequiresProductID() {
	ctx := context.Background()
	ev := domain.InventoryTransaction{
		TransactionType: domain.InventoryPurchase,
		TotalAmount:     decimal.NewFromInt(80000000),
	}

	saved, err := suite.service.EnqueueInventory(ctx, ev)

	suite.Require().Error(err)
	suite.Nil(saved)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PendingQueueServiceTestSuite) TestEnqueueInventory_Success() {
	ctx := context.Background()
	ev := domain.InventoryTransaction{
		TransactionType: domain.InventoryPurchase,
		ProductID:       "PRD-1",
		Quantity:        decimal.NewFromInt(10),
		TotalAmount:     decimal.NewFromInt(80000000),
	}

	suite.mockInventory.On("SaveInventoryTransaction", ctx, mock.MatchedBy(func(saved domain.InventoryTransaction) bool {
		return saved.TransactionID != "" && !saved.SyncedToAccounting
	})).Return(nil).Once()

	saved, err := suite.service.EnqueueInventory(ctx, ev)

	suite.Require().NoError(err)
	suite.NotEmpty(saved.TransactionID)
	suite.mockInventory.AssertExpectations(suite.T())
}

func (suite *PendingQueueServiceTestSuite) TestEnqueueSale_StoreError() {
	ctx := context.Background()
	storeErr := errors.New("store unavailable")
	ev := domain.SalesTransaction{
		TransactionType: domain.SalesFlight,
		TotalAmount:     decimal.NewFromInt(100000),
	}

	suite.mockSales.On("SaveSalesTransaction", ctx, mock.AnythingOfType("domain.SalesTransaction")).Return(storeErr).Once()

	saved, err := suite.service.EnqueueSale(ctx, ev)

	suite.Require().Error(err)
	suite.Nil(saved)
	suite.ErrorIs(err, storeErr)
}

func (suite *PendingQueueServiceTestSuite) TestMarkSynced_Delegates() {
	ctx := context.Background()
	suite.mockSales.On("MarkSalesSynced", ctx, "SAL-1").Return(nil).Once()
	suite.mockInventory.On("MarkInventorySynced", ctx, "INV-1").Return(nil).Once()

	suite.Require().NoError(suite.service.MarkSaleSynced(ctx, "SAL-1"))
	suite.Require().NoError(suite.service.MarkInventorySynced(ctx, "INV-1"))

	suite.mockSales.AssertExpectations(suite.T())
	suite.mockInventory.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestPendingQueueService(t *testing.T) {
	suite.Run(t, new(PendingQueueServiceTestSuite))
}
