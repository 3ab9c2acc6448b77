package xlsx

import (
	"bytes"
	"testing"
	"time"

	"github.com/bnema/walletwise-cli/internal/application"
	"github.com/bnema/walletwise-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func exportFixture() application.ExportData {
	created := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	wallets := []domain.Wallet{
		{ID: "w1", Name: "Cash", Balance: 10, Currency: "USD", CreatedAt: created},
		{ID: "w2", Name: "Bank", Balance: 150000, Currency: "IDR", CreatedAt: created.AddDate(0, 0, 1)},
	}
	frozen := domain.FrozenSet{"w2": {}}

	return application.ExportData{
		Overview: application.Overview{
			Profile: domain.Profile{ID: "personal"},
			User:    domain.User{Email: "ana@example.com"},
			Entitlements: domain.Entitlements{
				Tier:          domain.TierProPlus,
				EffectiveTier: domain.TierProPlus,
			},
			Wallets:         domain.MarkFrozen(wallets, frozen, "USD", domain.StaticRates()),
			Frozen:          frozen,
			DisplayCurrency: "USD",
			TotalBalance:    10,
			RatesSource:     application.RatesSourceStatic,
			CapturedAt:      time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC),
		},
		Transactions: []domain.Transaction{
			{ID: "t2", WalletID: "w2", Type: domain.TransactionExpense, Category: "food", Amount: 30000, Date: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)},
			{ID: "t1", WalletID: "w1", Type: domain.TransactionIncome, Category: "salary", Amount: 100, Description: "Jan", Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		},
		GeneratedAt: time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestWriteWorkbook(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, exportFixture()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SheetSummary, SheetWallets, SheetTransactions}, f.GetSheetList())

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Equal(t, []string{"Profile", "personal"}, summary[0])
	assert.Equal(t, []string{"Effective tier", "pro_plus"}, summary[3])
	assert.Equal(t, []string{"Frozen wallets", "1"}, summary[6])
	assert.Equal(t, []string{"Generated at", "2024-02-01T09:00:00Z"}, summary[9])

	wallets, err := f.GetRows(SheetWallets)
	require.NoError(t, err)
	require.Len(t, wallets, 3)
	assert.Equal(t, "wallet_id", wallets[0][0])
	assert.Equal(t, []string{"w2", "Bank", "IDR", "150000", "USD", "10", "TRUE", "2024-01-03T00:00:00Z"}, wallets[2])

	txs, err := f.GetRows(SheetTransactions)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, "t1", txs[1][1], "rows are sorted by date")
	assert.Equal(t, "2024-01-05", txs[1][0])
	assert.Equal(t, "IDR", txs[2][6])
	assert.Equal(t, "TRUE", txs[2][8])
}

func TestWriteWithoutTransactions(t *testing.T) {
	t.Parallel()

	data := exportFixture()
	data.Transactions = nil

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, data))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(SheetTransactions)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
