package domain

import "time"

type TransactionID string

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

type Transaction struct {
	ID          TransactionID
	WalletID    WalletID
	Type        TransactionType
	Category    string
	Amount      float64
	Description string
	Date        time.Time
	CreatedAt   time.Time
}

type Summary struct {
	TotalIncome  float64
	TotalExpense float64
	Net          float64
	Count        int
}

// SummarizeTransactions totals income and expense in displayCurrency. Each
// transaction is in its wallet's currency (USD when the wallet is unknown);
// transactions of frozen wallets are skipped.
func SummarizeTransactions(txs []Transaction, wallets []Wallet, frozen FrozenSet, displayCurrency string, rates RateTable) Summary {
	currencies := walletCurrencies(wallets)

	var summary Summary
	for _, tx := range txs {
		if frozen.Has(tx.WalletID) {
			continue
		}

		converted := Convert(tx.Amount, currencies.of(tx.WalletID), displayCurrency, rates)
		switch tx.Type {
		case TransactionIncome:
			summary.TotalIncome += converted
		case TransactionExpense:
			summary.TotalExpense += converted
		default:
			continue
		}
		summary.Count++
	}
	summary.Net = summary.TotalIncome - summary.TotalExpense

	return summary
}

type currencyIndex map[WalletID]string

func walletCurrencies(wallets []Wallet) currencyIndex {
	index := make(currencyIndex, len(wallets))
	for _, wallet := range wallets {
		index[wallet.ID] = wallet.Currency
	}

	return index
}

// of returns the wallet currency, USD when the wallet is unknown.
func (c currencyIndex) of(id WalletID) string {
	if currency := c[id]; currency != "" {
		return currency
	}

	return BaseCurrency
}
