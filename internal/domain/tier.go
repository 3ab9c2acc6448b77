package domain

import (
	"fmt"
	"strings"
)

type Tier string

const (
	TierFree     Tier = "free"
	TierProTrial Tier = "pro_trial"
	TierPro      Tier = "pro"
	TierProPlus  Tier = "pro_plus"
)

// Tiers lists every known tier in upgrade order.
func Tiers() []Tier {
	return []Tier{TierFree, TierProTrial, TierPro, TierProPlus}
}

func (t Tier) Valid() bool {
	switch t {
	case TierFree, TierProTrial, TierPro, TierProPlus:
		return true
	default:
		return false
	}
}

func (t Tier) Label() string {
	switch t {
	case TierFree:
		return "Free"
	case TierProTrial:
		return "Pro Trial"
	case TierPro:
		return "Pro"
	case TierProPlus:
		return "Pro+"
	case "":
		return "Unknown"
	default:
		return string(t)
	}
}

// ParseTier normalizes an upstream tier value. Unknown values are returned
// as-is together with an error so callers can still display them.
func ParseTier(raw string) (Tier, error) {
	tier := Tier(strings.ToLower(strings.TrimSpace(raw)))
	if tier == "" {
		return TierFree, nil
	}
	if !tier.Valid() {
		return tier, &ConfigError{Tier: tier, Reason: fmt.Sprintf("unknown subscription tier %q", raw)}
	}

	return tier, nil
}
