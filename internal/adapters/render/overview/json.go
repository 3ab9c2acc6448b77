package overview

import (
	"time"

	"github.com/bnema/walletwise-cli/internal/application"
	"github.com/bnema/walletwise-cli/internal/domain"
)

// OverviewJSON is the machine-readable form of an application.Overview,
// shared by `--json` output and the HTTP sidecar.
type OverviewJSON struct {
	Profile         string          `json:"profile"`
	Email           string          `json:"email,omitempty"`
	Tier            string          `json:"tier"`
	EffectiveTier   string          `json:"effectiveTier"`
	IsActive        bool            `json:"isActive"`
	TrialLapsed     bool            `json:"trialLapsed"`
	TrialEndsAt     *time.Time      `json:"trialEndsAt,omitempty"`
	TrialEndRaw     string          `json:"trialEndRaw,omitempty"`
	TrialRemaining  string          `json:"trialRemaining,omitempty"`
	Limits          *LimitsJSON     `json:"limits,omitempty"`
	WalletLimit     WalletLimitJSON `json:"walletLimit"`
	Wallets         []WalletJSON    `json:"wallets"`
	FrozenWalletIDs []string        `json:"frozenWalletIds"`
	DisplayCurrency string          `json:"displayCurrency"`
	TotalBalance    float64         `json:"totalBalance"`
	RatesSource     string          `json:"ratesSource"`
	RatesStale      bool            `json:"ratesStale"`
	CapturedAt      *time.Time      `json:"capturedAt,omitempty"`
	FromCache       bool            `json:"fromCache"`
	Error           string          `json:"error,omitempty"`
}

type LimitsJSON struct {
	MaxWallets       *int `json:"maxWallets"`
	Analytics        bool `json:"analytics"`
	Export           bool `json:"export"`
	CustomCategories bool `json:"customCategories"`
}

type WalletLimitJSON struct {
	Current   int  `json:"current"`
	Max       *int `json:"max"`
	CanCreate bool `json:"canCreate"`
}

type WalletJSON struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Balance         float64   `json:"balance"`
	Currency        string    `json:"currency"`
	DisplayBalance  float64   `json:"displayBalance"`
	DisplayCurrency string    `json:"displayCurrency"`
	Frozen          bool      `json:"frozen"`
	CreatedAt       time.Time `json:"createdAt"`
}

type BucketJSON struct {
	ID           string    `json:"id"`
	Label        string    `json:"label"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	TotalIncome  float64   `json:"totalIncome"`
	TotalExpense float64   `json:"totalExpense"`
	Net          float64   `json:"net"`
	Count        int       `json:"count"`
}

type SummaryJSON struct {
	Profile         string       `json:"profile"`
	Range           string       `json:"range"`
	DisplayCurrency string       `json:"displayCurrency"`
	Buckets         []BucketJSON `json:"buckets"`
	TotalIncome     float64      `json:"totalIncome"`
	TotalExpense    float64      `json:"totalExpense"`
	Net             float64      `json:"net"`
	Count           int          `json:"count"`
	FromCache       bool         `json:"fromCache"`
}

type CategoryJSON struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsSystem bool   `json:"isSystem"`
}

type CategoriesJSON struct {
	Profile       string         `json:"profile"`
	EffectiveTier string         `json:"effectiveTier"`
	Categories    []CategoryJSON `json:"categories,omitempty"`
	Custom        []CategoryJSON `json:"custom"`
	CustomAllowed bool           `json:"customAllowed"`
}

type CategoryTotalJSON struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Count    int     `json:"count"`
}

type AnalyticsJSON struct {
	Profile         string              `json:"profile"`
	DisplayCurrency string              `json:"displayCurrency"`
	Months          []BucketJSON        `json:"months"`
	Expenses        []CategoryTotalJSON `json:"expensesByCategory"`
	Income          []CategoryTotalJSON `json:"incomeByCategory"`
	TotalIncome     float64             `json:"totalIncome"`
	TotalExpense    float64             `json:"totalExpense"`
	Net             float64             `json:"net"`
	FromCache       bool                `json:"fromCache"`
}

type RatesJSON struct {
	Base      string             `json:"base"`
	Source    string             `json:"source"`
	Rates     map[string]float64 `json:"rates"`
	UpdatedAt *time.Time         `json:"updatedAt,omitempty"`
	Stale     bool               `json:"stale"`
}

func NewOverviewJSON(o application.Overview) OverviewJSON {
	out := OverviewJSON{
		Profile:         string(o.Profile.ID),
		Email:           o.User.Email,
		Tier:            string(o.Entitlements.Tier),
		EffectiveTier:   string(o.Entitlements.EffectiveTier),
		IsActive:        o.User.Subscription.IsActive,
		TrialLapsed:     o.Entitlements.TrialLapsed,
		WalletLimit:     WalletLimitJSON{Current: o.WalletLimit.Current, Max: o.WalletLimit.Max, CanCreate: o.WalletLimit.CanCreate},
		Wallets:         make([]WalletJSON, 0, len(o.Wallets)),
		FrozenWalletIDs: make([]string, 0, o.Frozen.Len()),
		DisplayCurrency: o.DisplayCurrency,
		TotalBalance:    o.TotalBalance,
		RatesSource:     string(o.RatesSource),
		RatesStale:      o.RatesStale,
		CapturedAt:      timePtr(o.CapturedAt),
		FromCache:       o.FromCache,
	}

	switch {
	case o.LoadErr != nil:
		out.Error = o.LoadErr.Error()
	case o.PlanErr != nil:
		out.Error = o.PlanErr.Error()
	default:
		limits := o.Entitlements.Limits
		out.Limits = &LimitsJSON{
			MaxWallets:       limits.MaxWallets,
			Analytics:        limits.Analytics,
			Export:           limits.Export,
			CustomCategories: limits.CustomCategories,
		}
	}

	if o.Entitlements.Tier == domain.TierProTrial {
		end := o.User.Subscription.End
		if at, ok := end.Time(); ok {
			out.TrialEndsAt = &at
		} else if end.Unparsed() {
			out.TrialEndRaw = end.Raw()
		}
	}
	if o.TrialRemaining != nil {
		out.TrialRemaining = o.TrialRemaining.String()
	}

	for _, view := range o.Wallets {
		out.Wallets = append(out.Wallets, WalletJSON{
			ID:              string(view.ID),
			Name:            view.Name,
			Balance:         view.Balance,
			Currency:        view.Currency,
			DisplayBalance:  view.DisplayBalance,
			DisplayCurrency: view.DisplayCurrency,
			Frozen:          view.Frozen,
			CreatedAt:       view.CreatedAt,
		})
	}
	for _, id := range o.Frozen.IDs() {
		out.FrozenWalletIDs = append(out.FrozenWalletIDs, string(id))
	}

	return out
}

func NewOverviewsJSON(overviews []application.Overview) []OverviewJSON {
	out := make([]OverviewJSON, 0, len(overviews))
	for _, o := range overviews {
		out = append(out, NewOverviewJSON(o))
	}

	return out
}

func NewSummaryJSON(report application.SummaryReport) SummaryJSON {
	return SummaryJSON{
		Profile:         string(report.Profile.ID),
		Range:           string(report.Range),
		DisplayCurrency: report.DisplayCurrency,
		Buckets:         bucketsJSON(report.Buckets),
		TotalIncome:     report.Total.TotalIncome,
		TotalExpense:    report.Total.TotalExpense,
		Net:             report.Total.Net,
		Count:           report.Total.Count,
		FromCache:       report.FromCache,
	}
}

func bucketsJSON(buckets []domain.BucketSummary) []BucketJSON {
	out := make([]BucketJSON, 0, len(buckets))
	for _, bucket := range buckets {
		out = append(out, BucketJSON{
			ID:           bucket.Bucket.ID,
			Label:        bucket.Bucket.Label,
			Start:        bucket.Bucket.Start,
			End:          bucket.Bucket.End,
			TotalIncome:  bucket.Summary.TotalIncome,
			TotalExpense: bucket.Summary.TotalExpense,
			Net:          bucket.Summary.Net,
			Count:        bucket.Summary.Count,
		})
	}

	return out
}

func NewCategoriesJSON(report application.CategoriesReport) CategoriesJSON {
	out := CategoriesJSON{
		Profile:       string(report.Profile.ID),
		EffectiveTier: string(report.Entitlements.EffectiveTier),
		Custom:        categoriesJSON(report.Custom),
		CustomAllowed: report.CustomAllowed,
	}
	if report.Categories != nil {
		out.Categories = categoriesJSON(report.Categories)
	}

	return out
}

func categoriesJSON(categories []domain.Category) []CategoryJSON {
	out := make([]CategoryJSON, 0, len(categories))
	for _, category := range categories {
		out = append(out, CategoryJSON{
			ID:       category.ID,
			Name:     category.Name,
			Type:     string(category.Type),
			IsSystem: category.IsSystem,
		})
	}

	return out
}

func NewAnalyticsJSON(report application.AnalyticsReport) AnalyticsJSON {
	return AnalyticsJSON{
		Profile:         string(report.Profile.ID),
		DisplayCurrency: report.DisplayCurrency,
		Months:          bucketsJSON(report.Months),
		Expenses:        categoryTotalsJSON(report.Expenses),
		Income:          categoryTotalsJSON(report.Income),
		TotalIncome:     report.Total.TotalIncome,
		TotalExpense:    report.Total.TotalExpense,
		Net:             report.Total.Net,
		FromCache:       report.FromCache,
	}
}

func categoryTotalsJSON(rows []domain.CategoryTotal) []CategoryTotalJSON {
	out := make([]CategoryTotalJSON, 0, len(rows))
	for _, row := range rows {
		out = append(out, CategoryTotalJSON{Category: row.Category, Amount: row.Amount, Count: row.Count})
	}

	return out
}

func NewRatesJSON(report application.RatesReport) RatesJSON {
	return RatesJSON{
		Base:      report.Base,
		Source:    string(report.Source),
		Rates:     report.Rates,
		UpdatedAt: timePtr(report.UpdatedAt),
		Stale:     report.Stale,
	}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}

	return &t
}
