package domain

import (
	"math"
	"strings"
	"time"
)

const BaseCurrency = "USD"

// RateTable maps a currency code to units per one USD.
type RateTable map[string]float64

// StaticRates is the built-in table used when live rates are unavailable.
func StaticRates() RateTable {
	return RateTable{
		"USD": 1,
		"IDR": 15000,
	}
}

// Rate returns the rate for code. Missing, non-positive and NaN rates are
// treated as 1 so an unknown currency never breaks a total.
func (r RateTable) Rate(code string) float64 {
	rate, ok := r[normalizeCurrency(code)]
	if !ok || math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return 1
	}

	return rate
}

func (r RateTable) Has(code string) bool {
	_, ok := r[normalizeCurrency(code)]
	return ok
}

func normalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Convert moves amount from one currency to another through USD.
func Convert(amount float64, from, to string, rates RateTable) float64 {
	if normalizeCurrency(from) == normalizeCurrency(to) {
		return amount
	}

	amountInBase := amount / rates.Rate(from)
	return amountInBase * rates.Rate(to)
}

// AggregateBalances sums wallet balances in displayCurrency, skipping frozen
// wallets. Values are not rounded.
func AggregateBalances(wallets []Wallet, frozen FrozenSet, displayCurrency string, rates RateTable) float64 {
	var total float64
	for _, wallet := range wallets {
		if frozen.Has(wallet.ID) {
			continue
		}
		total += Convert(wallet.Balance, wallet.Currency, displayCurrency, rates)
	}

	return total
}

// RateSnapshot is a fetched rate table.
type RateSnapshot struct {
	Base      string
	Rates     RateTable
	UpdatedAt time.Time
}

func (s RateSnapshot) IsStale(now time.Time, maxAge time.Duration) bool {
	if s.UpdatedAt.IsZero() {
		return true
	}

	if maxAge <= 0 {
		return false
	}

	return now.Sub(s.UpdatedAt) > maxAge
}

// RatesOrStatic falls back to StaticRates when no live table is available.
func RatesOrStatic(snapshot *RateSnapshot) RateTable {
	if snapshot == nil || len(snapshot.Rates) == 0 {
		return StaticRates()
	}

	return snapshot.Rates
}
