package domain

import "time"

// TierLimits are the feature gates for one tier. A nil MaxWallets means the
// wallet count is unlimited.
type TierLimits struct {
	MaxWallets       *int
	Analytics        bool
	Export           bool
	CustomCategories bool
}

func (l TierLimits) UnlimitedWallets() bool {
	return l.MaxWallets == nil
}

const freeMaxWallets = 3

func walletCap(n int) *int {
	return &n
}

// LimitsFor looks up the static limit table. The switch is exhaustive over
// Tier; an unknown value is a configuration error.
func LimitsFor(tier Tier) (TierLimits, error) {
	switch tier {
	case TierFree:
		return TierLimits{MaxWallets: walletCap(freeMaxWallets)}, nil
	case TierProTrial:
		return TierLimits{CustomCategories: true}, nil
	case TierPro:
		return TierLimits{CustomCategories: true}, nil
	case TierProPlus:
		return TierLimits{Analytics: true, Export: true, CustomCategories: true}, nil
	default:
		return TierLimits{}, &ConfigError{Tier: tier}
	}
}

// FreeWalletLimit is the permanent wallet allowance of the free tier, the
// same constant the free row of LimitsFor is built from.
func FreeWalletLimit() int {
	return freeMaxWallets
}

func CanCreateWallet(tier Tier, currentWalletCount int) (bool, error) {
	limits, err := LimitsFor(tier)
	if err != nil {
		return false, err
	}

	if limits.MaxWallets == nil {
		return true, nil
	}

	return currentWalletCount < *limits.MaxWallets, nil
}

// WalletLimit mirrors the wallet counter shown next to the create button.
type WalletLimit struct {
	Current   int
	Max       *int
	CanCreate bool
}

// Entitlements is the gating view of a subscription at a point in time.
type Entitlements struct {
	Tier          Tier
	EffectiveTier Tier
	Limits        TierLimits
	TrialLapsed   bool
	EvaluatedAt   time.Time
}

func ResolveEntitlements(sub Subscription, now time.Time) (Entitlements, error) {
	effective := ResolveEffectiveTier(sub, now)
	limits, err := LimitsFor(effective)
	if err != nil {
		return Entitlements{Tier: sub.Tier, EffectiveTier: effective, EvaluatedAt: now}, err
	}

	return Entitlements{
		Tier:          sub.Tier,
		EffectiveTier: effective,
		Limits:        limits,
		TrialLapsed:   sub.TrialLapsed(now),
		EvaluatedAt:   now,
	}, nil
}

// WalletLimitFor counts every stored wallet, frozen ones included.
func (e Entitlements) WalletLimitFor(walletCount int) WalletLimit {
	canCreate := e.Limits.MaxWallets == nil || walletCount < *e.Limits.MaxWallets

	return WalletLimit{
		Current:   walletCount,
		Max:       e.Limits.MaxWallets,
		CanCreate: canCreate,
	}
}
