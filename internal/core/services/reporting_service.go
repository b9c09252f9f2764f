package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
	portsrepo "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/repositories"
	portssvc "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/services"
	"github.com/Travelintrips/travelindashboard-sub001/internal/utils/accounting"
)

// reportingService builds the balance-sheet, income-statement and operational
// reports from the aggregation read paths.
type reportingService struct {
	BaseService

	ledger    portsrepo.ReportingReader
	sales     portsrepo.SalesEventStore
	inventory portsrepo.InventoryEventStore
}

// NewReportingService creates a new reporting service.
func NewReportingService(ledger portsrepo.ReportingReader, sales portsrepo.SalesEventStore, inventory portsrepo.InventoryEventStore) portssvc.ReportingSvcFacade {
	return &reportingService{
		ledger:    ledger,
		sales:     sales,
		inventory: inventory,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// BalanceSheet aggregates net asset, liability and equity balances as of a date.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	rows, err := s.ledger.GetAccountActivity(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	report := &domain.BalanceSheetReport{
		Assets:      []domain.AccountAmount{},
		Liabilities: []domain.AccountAmount{},
		Equity:      []domain.AccountAmount{},
	}
	for _, row := range rows {
		amount := domain.AccountAmount{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			Name:        row.AccountName,
			NetAmount:   accounting.NetAmount(row.Category, row.Debit, row.Credit),
		}
		switch row.Category {
		case domain.Asset:
			report.Assets = append(report.Assets, amount)
		case domain.Liability:
			report.Liabilities = append(report.Liabilities, amount)
		case domain.Equity:
			report.Equity = append(report.Equity, amount)
		}
	}
	report.TotalAssets = accounting.SumNet(report.Assets)
	report.TotalLiabilities = accounting.SumNet(report.Liabilities)
	report.TotalEquity = accounting.SumNet(report.Equity)
	return report, nil
}

// IncomeStatement aggregates revenue and expense activity over a period.
func (s *reportingService) IncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatementReport, error) {
	rows, err := s.ledger.GetAccountActivityBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve income statement data: %w", err)
	}

	report := &domain.IncomeStatementReport{
		Revenue:  []domain.AccountAmount{},
		Expenses: []domain.AccountAmount{},
	}
	for _, row := range rows {
		amount := domain.AccountAmount{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			Name:        row.AccountName,
			NetAmount:   accounting.NetAmount(row.Category, row.Debit, row.Credit),
		}
		switch row.Category {
		case domain.Revenue:
			report.Revenue = append(report.Revenue, amount)
		case domain.Expense:
			report.Expenses = append(report.Expenses, amount)
		}
	}
	report.TotalRevenue = accounting.SumNet(report.Revenue)
	report.TotalExpenses = accounting.SumNet(report.Expenses)
	report.NetProfit = report.TotalRevenue.Sub(report.TotalExpenses)
	return report, nil
}

// SalesReport aggregates sales events by service type over a period.
func (s *reportingService) SalesReport(ctx context.Context, from, to time.Time) ([]domain.SalesReportRow, error) {
	events, err := s.sales.ListSalesBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales transactions: %w", err)
	}

	byType := make(map[domain.SalesTransactionType]*domain.SalesReportRow)
	var order []domain.SalesTransactionType
	for _, ev := range events {
		row, ok := byType[ev.TransactionType]
		if !ok {
			row = &domain.SalesReportRow{TransactionType: ev.TransactionType}
			byType[ev.TransactionType] = row
			order = append(order, ev.TransactionType)
		}
		row.TransactionCount++
		row.TotalAmount = row.TotalAmount.Add(ev.TotalAmount)
	}

	rows := make([]domain.SalesReportRow, 0, len(order))
	for _, t := range order {
		rows = append(rows, *byType[t])
	}
	return rows, nil
}

// InventoryReport aggregates inventory movements by movement type over a period.
func (s *reportingService) InventoryReport(ctx context.Context, from, to time.Time) ([]domain.InventoryReportRow, error) {
	events, err := s.inventory.ListInventoryBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory transactions: %w", err)
	}

	byType := make(map[domain.InventoryTransactionType]*domain.InventoryReportRow)
	var order []domain.InventoryTransactionType
	for _, ev := range events {
		row, ok := byType[ev.TransactionType]
		if !ok {
			row = &domain.InventoryReportRow{TransactionType: ev.TransactionType}
			byType[ev.TransactionType] = row
			order = append(order, ev.TransactionType)
		}
		row.TransactionCount++
		row.TotalQuantity = row.TotalQuantity.Add(ev.Quantity)
		row.TotalAmount = row.TotalAmount.Add(ev.TotalAmount)
	}

	rows := make([]domain.InventoryReportRow, 0, len(order))
	for _, t := range order {
		rows = append(rows, *byType[t])
	}
	return rows, nil
}
