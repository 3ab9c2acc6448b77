package application

import (
	"time"

	"github.com/bnema/walletwise-cli/internal/domain"
)

type RatesSource string

const (
	RatesSourceLive   RatesSource = "live"
	RatesSourceStatic RatesSource = "static"
)

// Overview is the evaluated state of one profile at a point in time.
type Overview struct {
	Profile         domain.Profile
	User            domain.User
	Entitlements    domain.Entitlements
	WalletLimit     domain.WalletLimit
	Wallets         []domain.WalletView
	Frozen          domain.FrozenSet
	DisplayCurrency string
	TotalBalance    float64
	Rates           domain.RateTable
	RatesSource     RatesSource
	RatesStale      bool
	TrialRemaining  *time.Duration
	CapturedAt      time.Time
	FromCache       bool
	// PlanErr is set when the tier has no row in the limit table.
	PlanErr error
	// LoadErr is set by GetOverviewAll for profiles that could not be loaded.
	LoadErr error
}

type SummaryReport struct {
	Profile         domain.Profile
	Range           domain.TimeRange
	DisplayCurrency string
	Buckets         []domain.BucketSummary
	Total           domain.Summary
	FromCache       bool
}

// CategoriesReport lists the categories of a profile. Custom is only fetched
// when the effective tier allows custom categories.
type CategoriesReport struct {
	Profile       domain.Profile
	Entitlements  domain.Entitlements
	Categories    []domain.Category
	Custom        []domain.Category
	CustomAllowed bool
}

// AnalyticsReport breaks the calendar year down by month and by category.
type AnalyticsReport struct {
	Profile         domain.Profile
	DisplayCurrency string
	Months          []domain.BucketSummary
	Expenses        []domain.CategoryTotal
	Income          []domain.CategoryTotal
	Total           domain.Summary
	FromCache       bool
}

type RatesReport struct {
	Base      string
	Rates     domain.RateTable
	Source    RatesSource
	UpdatedAt time.Time
	Stale     bool
}

type ExportData struct {
	Overview     Overview
	Transactions []domain.Transaction
	GeneratedAt  time.Time
}
