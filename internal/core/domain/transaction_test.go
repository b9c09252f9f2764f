package domain_test

import (
	"testing"

	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func entry(code string, debit, credit int64) domain.TransactionEntry {
	return domain.TransactionEntry{
		AccountCode: code,
		Debit:       decimal.NewFromInt(debit),
		Credit:      decimal.NewFromInt(credit),
	}
}

func TestTransaction_Balanced(t *testing.T) {
	tests := []struct {
		name        string
		transaction domain.Transaction
		want        bool
	}{
		{
			name: "simple two entry posting",
			transaction: domain.Transaction{
				Entries: []domain.TransactionEntry{
					entry("1101", 80000000, 0),
					entry("1100", 0, 80000000),
				},
			},
			want: true,
		},
		{
			name: "four entry sale with COGS pair",
			transaction: domain.Transaction{
				Entries: []domain.TransactionEntry{
					entry("1100", 750000, 0),
					entry("4101", 0, 750000),
					entry("5101", 500000, 0),
					entry("1101", 0, 500000),
				},
			},
			want: true,
		},
		{
			name: "unbalanced entries",
			transaction: domain.Transaction{
				Entries: []domain.TransactionEntry{
					entry("1100", 750000, 0),
					entry("4101", 0, 700000),
				},
			},
			want: false,
		},
		{
			name:        "no entries balances trivially",
			transaction: domain.Transaction{},
			want:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.transaction.Balanced())
		})
	}
}

func TestValidateBalance(t *testing.T) {
	balanced := domain.Transaction{
		TransactionID: "ACC-1",
		Entries: []domain.TransactionEntry{
			entry("1101", 100, 0),
			entry("1100", 0, 100),
		},
	}
	assert.NoError(t, domain.ValidateBalance(balanced))

	unbalanced := domain.Transaction{
		TransactionID: "ACC-2",
		Entries: []domain.TransactionEntry{
			entry("1101", 100, 0),
			entry("1100", 0, 90),
		},
	}
	err := domain.ValidateBalance(unbalanced)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does not balance")

	negative := domain.Transaction{
		TransactionID: "ACC-3",
		Entries: []domain.TransactionEntry{
			entry("1101", -100, 0),
			entry("1100", 0, -100),
		},
	}
	assert.Error(t, domain.ValidateBalance(negative))
}

func TestTransaction_EntryTotals(t *testing.T) {
	txn := domain.Transaction{
		Entries: []domain.TransactionEntry{
			entry("1100", 750000, 0),
			entry("4101", 0, 750000),
			entry("5101", 500000, 0),
			entry("1101", 0, 500000),
		},
	}
	debits, credits := txn.EntryTotals()
	assert.True(t, debits.Equal(decimal.NewFromInt(1250000)))
	assert.True(t, credits.Equal(decimal.NewFromInt(1250000)))
}
