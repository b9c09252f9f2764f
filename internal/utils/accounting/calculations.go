package accounting

import (
	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NetAmount reduces an account's aggregated debit and credit sums to the net
// amount reported for its category.
// ASSET/EXPENSE grow with debits; LIABILITY/EQUITY/REVENUE grow with credits.
func NetAmount(category domain.AccountCategory, debit, credit decimal.Decimal) decimal.Decimal {
	switch category {
	case domain.Asset, domain.Expense:
		return debit.Sub(credit)
	case domain.Liability, domain.Equity, domain.Revenue:
		return credit.Sub(debit)
	default:
		return debit.Sub(credit)
	}
}

// SumNet totals the net amounts of a report section.
func SumNet(rows []domain.AccountAmount) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.NetAmount)
	}
	return total
}
