package domain

import (
	"sort"
	"strings"
)

const uncategorized = "uncategorized"

// Category is a transaction category. System categories are shared by every
// account; the rest are custom ones owned by the user.
type Category struct {
	ID       string
	Name     string
	Type     TransactionType
	IsSystem bool
}

// CategoryTotal is the display-currency sum of one category and type.
type CategoryTotal struct {
	Category string
	Type     TransactionType
	Amount   float64
	Count    int
}

// TotalsByCategory sums transactions per category and type in
// displayCurrency, skipping frozen wallets. Rows come largest first, ties by
// category name.
func TotalsByCategory(txs []Transaction, wallets []Wallet, frozen FrozenSet, displayCurrency string, rates RateTable) []CategoryTotal {
	currencies := walletCurrencies(wallets)

	type key struct {
		category string
		kind     TransactionType
	}
	totals := map[key]*CategoryTotal{}
	for _, tx := range txs {
		if frozen.Has(tx.WalletID) {
			continue
		}
		if tx.Type != TransactionIncome && tx.Type != TransactionExpense {
			continue
		}

		name := strings.TrimSpace(tx.Category)
		if name == "" {
			name = uncategorized
		}

		k := key{category: name, kind: tx.Type}
		row, ok := totals[k]
		if !ok {
			row = &CategoryTotal{Category: name, Type: tx.Type}
			totals[k] = row
		}
		row.Amount += Convert(tx.Amount, currencies.of(tx.WalletID), displayCurrency, rates)
		row.Count++
	}

	out := make([]CategoryTotal, 0, len(totals))
	for _, row := range totals {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Type < out[j].Type
	})

	return out
}

// FilterTotals keeps the rows of one transaction type.
func FilterTotals(rows []CategoryTotal, kind TransactionType) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(rows))
	for _, row := range rows {
		if row.Type == kind {
			out = append(out, row)
		}
	}

	return out
}
