package overview

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/bnema/walletwise-cli/internal/application"
	"github.com/bnema/walletwise-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func lapsedTrialOverview() application.Overview {
	wallets := []domain.Wallet{
		{ID: "w1", Name: "Cash", Balance: 10, Currency: "USD"},
		{ID: "w2", Name: "Bank", Balance: 150000, Currency: "IDR"},
		{ID: "w3", Name: "Savings", Balance: 30, Currency: "USD"},
		{ID: "w4", Name: "Travel", Balance: 40, Currency: "USD"},
	}
	frozen := domain.FrozenSet{"w4": {}}
	end := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	return application.Overview{
		Profile: domain.Profile{ID: "personal"},
		User: domain.User{
			Email: "ana@example.com",
			Subscription: domain.Subscription{
				Tier:     domain.TierProTrial,
				End:      domain.ExpiresAt(end),
				IsActive: true,
			},
		},
		Entitlements: domain.Entitlements{
			Tier:          domain.TierProTrial,
			EffectiveTier: domain.TierFree,
			Limits:        domain.TierLimits{MaxWallets: intPtr(3)},
			TrialLapsed:   true,
		},
		WalletLimit:     domain.WalletLimit{Current: 4, Max: intPtr(3), CanCreate: false},
		Wallets:         domain.MarkFrozen(wallets, frozen, "USD", domain.StaticRates()),
		Frozen:          frozen,
		DisplayCurrency: "USD",
		TotalBalance:    50,
		RatesSource:     application.RatesSourceStatic,
		CapturedAt:      now.Add(-2 * time.Hour),
	}
}

func TestRenderLapsedTrial(t *testing.T) {
	output, err := Render([]application.Overview{lapsedTrialOverview()}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "profiles: 1")
	assert.Contains(t, output, "personal (ana@example.com)")
	assert.Contains(t, output, "Pro Trial, effective Free")
	assert.Contains(t, output, "[trial ended]")
	assert.Contains(t, output, "trial: ended 08 Jan 2024")
	assert.Contains(t, output, "4/3")
	assert.Contains(t, output, "[limit reached]")
	assert.Contains(t, output, "analytics no")
	assert.Contains(t, output, "USD 50.00")
	assert.Contains(t, output, "(1 frozen wallet excluded)")
	assert.Contains(t, output, "IDR 150,000.00")
	assert.Contains(t, output, "≈ USD 10.00")
	assert.Contains(t, output, "Travel")
	assert.Contains(t, output, "[frozen]")
	assert.Contains(t, output, "static fallback")
	assert.NotContains(t, output, "[offline]")
}

func TestRenderActiveTrialAndUnlimitedWallets(t *testing.T) {
	o := lapsedTrialOverview()
	o.User.Subscription.End = domain.ExpiresAt(now.Add(36 * time.Hour))
	o.Entitlements = domain.Entitlements{
		Tier:          domain.TierProTrial,
		EffectiveTier: domain.TierProTrial,
		Limits:        domain.TierLimits{CustomCategories: true},
	}
	o.WalletLimit = domain.WalletLimit{Current: 4, CanCreate: true}
	o.Frozen = domain.FrozenSet{}
	for i := range o.Wallets {
		o.Wallets[i].Frozen = false
	}
	remaining := 36 * time.Hour
	o.TrialRemaining = &remaining

	output, err := Render([]application.Overview{o}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "plan: Pro Trial")
	assert.NotContains(t, output, "effective")
	assert.Contains(t, output, "trial: ends in 2 days (02 Feb 2024)")
	assert.Contains(t, output, "4 (unlimited)")
	assert.Contains(t, output, "custom categories yes")
	assert.NotContains(t, output, "[frozen]")
}

func TestRenderUnreadableTrialEnd(t *testing.T) {
	o := lapsedTrialOverview()
	o.User.Subscription.End = domain.ParseExpiry("next tuesday")
	o.Entitlements.EffectiveTier = domain.TierProTrial
	o.Entitlements.TrialLapsed = false

	output, err := Render([]application.Overview{o}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, `unreadable end date "next tuesday"`)
}

func TestRenderPlanErrorAndLoadError(t *testing.T) {
	planErr := lapsedTrialOverview()
	planErr.Profile.ID = "gold"
	planErr.Entitlements = domain.Entitlements{Tier: "enterprise", EffectiveTier: "enterprise"}
	planErr.PlanErr = &domain.ConfigError{Tier: "enterprise"}

	loadErr := application.Overview{Profile: domain.Profile{ID: "broken"}, LoadErr: errors.New("snapshot not found")}

	output, err := Render([]application.Overview{planErr, loadErr}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "profiles: 2")
	assert.Contains(t, output, `unable to determine plan (tier "enterprise")`)
	assert.NotContains(t, output, "features:")
	assert.Contains(t, output, "broken")
	assert.Contains(t, output, "error: snapshot not found")
}

func TestRenderCachedSnapshotAndStaleRates(t *testing.T) {
	o := lapsedTrialOverview()
	o.FromCache = true
	o.RatesSource = application.RatesSourceLive
	o.RatesStale = true

	output, err := Render([]application.Overview{o}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "[offline] cached snapshot from 2 hours ago")
	assert.Contains(t, output, "rates: live [stale]")
}

func TestRenderNoProfiles(t *testing.T) {
	output, err := Render(nil, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "profiles: 0")
	assert.Contains(t, output, "No profiles configured")
}

func TestRenderSummary(t *testing.T) {
	buckets := domain.Buckets(domain.TimeRangeWeekly, now, time.Monday)
	txs := []domain.Transaction{
		{ID: "t1", WalletID: "w1", Type: domain.TransactionIncome, Amount: 1500, Date: now},
		{ID: "t2", WalletID: "w1", Type: domain.TransactionExpense, Amount: 500, Date: now.Add(time.Hour)},
	}
	wallets := []domain.Wallet{{ID: "w1", Currency: "USD"}}
	grouped := domain.GroupTransactions(txs, buckets, wallets, nil, "USD", domain.StaticRates())

	output, err := RenderSummary(application.SummaryReport{
		Profile:         domain.Profile{ID: "personal"},
		Range:           domain.TimeRangeWeekly,
		DisplayCurrency: "USD",
		Buckets:         grouped,
		Total:           domain.SummarizeTransactions(txs, wallets, nil, "USD", domain.StaticRates()),
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "Weekly summary")
	assert.Contains(t, output, "Week 1 (1-7 Feb)")
	assert.Contains(t, output, "net USD 1.0k")
	assert.Contains(t, output, "USD 1,500.00")
	assert.Contains(t, output, "USD 1,000.00")
	assert.Contains(t, output, "2 transactions")
}

func TestRenderRates(t *testing.T) {
	output, err := RenderRates(application.RatesReport{
		Base:      "USD",
		Rates:     domain.RateTable{"USD": 1, "IDR": 15000, "EUR": 0.92},
		Source:    application.RatesSourceLive,
		UpdatedAt: now.Add(-3 * time.Hour),
		Stale:     true,
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "base: USD, source: live, updated 3 hours ago")
	assert.Contains(t, output, "[stale]")
	assert.Contains(t, output, "IDR  15000")
	assert.Contains(t, output, "EUR  0.92")
}

func TestOverviewJSON(t *testing.T) {
	t.Parallel()

	out := NewOverviewJSON(lapsedTrialOverview())

	assert.Equal(t, "pro_trial", out.Tier)
	assert.Equal(t, "free", out.EffectiveTier)
	assert.True(t, out.TrialLapsed)
	require.NotNil(t, out.TrialEndsAt)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), *out.TrialEndsAt)
	assert.Equal(t, []string{"w4"}, out.FrozenWalletIDs)
	require.NotNil(t, out.Limits)
	assert.Equal(t, 3, *out.Limits.MaxWallets)
	assert.False(t, out.WalletLimit.CanCreate)
	require.Len(t, out.Wallets, 4)
	assert.True(t, out.Wallets[3].Frozen)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"effectiveTier":"free"`)
	assert.Contains(t, string(raw), `"frozenWalletIds":["w4"]`)
}

func TestOverviewJSONWithPlanError(t *testing.T) {
	t.Parallel()

	o := lapsedTrialOverview()
	o.PlanErr = &domain.ConfigError{Tier: "enterprise"}

	out := NewOverviewJSON(o)
	assert.Nil(t, out.Limits)
	assert.Contains(t, out.Error, "enterprise")
}

func TestRatesJSONOmitsZeroUpdate(t *testing.T) {
	t.Parallel()

	out := NewRatesJSON(application.RatesReport{Base: "USD", Rates: domain.StaticRates(), Source: application.RatesSourceStatic})
	assert.Nil(t, out.UpdatedAt)
	assert.Equal(t, "static", out.Source)
}

func TestRenderCategories(t *testing.T) {
	system := domain.Category{ID: "food", Name: "Food", Type: domain.TransactionExpense, IsSystem: true}
	custom := domain.Category{ID: "c1", Name: "Gym", Type: domain.TransactionExpense}

	output, err := RenderCategories(application.CategoriesReport{
		Profile:       domain.Profile{ID: "personal"},
		Entitlements:  domain.Entitlements{EffectiveTier: domain.TierPro},
		Categories:    []domain.Category{system, custom},
		Custom:        []domain.Category{custom},
		CustomAllowed: true,
	}, RenderOptions{Now: now})
	require.NoError(t, err)
	assert.Contains(t, output, "profile: personal, plan: Pro")
	assert.Contains(t, output, "Food [system]")
	assert.Contains(t, output, "custom:")
	assert.Contains(t, output, "Gym")

	output, err = RenderCategories(application.CategoriesReport{
		Profile:      domain.Profile{ID: "personal"},
		Entitlements: domain.Entitlements{EffectiveTier: domain.TierFree},
		Categories:   []domain.Category{system},
	}, RenderOptions{Now: now})
	require.NoError(t, err)
	assert.Contains(t, output, "custom categories need a Pro plan")
	assert.NotContains(t, output, "custom:")
}

func TestRenderAnalytics(t *testing.T) {
	txs := []domain.Transaction{
		{ID: "t1", WalletID: "w1", Type: domain.TransactionIncome, Category: "salary", Amount: 1500, Date: now},
		{ID: "t2", WalletID: "w1", Type: domain.TransactionExpense, Category: "food", Amount: 500, Date: now},
	}
	wallets := []domain.Wallet{{ID: "w1", Currency: "USD"}}
	totals := domain.TotalsByCategory(txs, wallets, nil, "USD", domain.StaticRates())
	report := application.AnalyticsReport{
		Profile:         domain.Profile{ID: "personal"},
		DisplayCurrency: "USD",
		Months:          domain.GroupTransactions(txs, domain.Buckets(domain.TimeRangeMonthly, now, time.Monday), wallets, nil, "USD", domain.StaticRates()),
		Expenses:        domain.FilterTotals(totals, domain.TransactionExpense),
		Income:          domain.FilterTotals(totals, domain.TransactionIncome),
		Total:           domain.SummarizeTransactions(txs, wallets, nil, "USD", domain.StaticRates()),
	}

	output, err := RenderAnalytics(report, RenderOptions{Now: now})
	require.NoError(t, err)
	assert.Contains(t, output, "spending by category:")
	assert.Contains(t, output, "food  USD 500.00  (1)")
	assert.Contains(t, output, "salary  USD 1,500.00  (1)")
	assert.Contains(t, output, "monthly breakdown:")

	out := NewAnalyticsJSON(report)
	assert.Len(t, out.Months, 12)
	require.Len(t, out.Expenses, 1)
	assert.Equal(t, "food", out.Expenses[0].Category)
	assert.InDelta(t, 1000.0, out.Net, 1e-9)
}
