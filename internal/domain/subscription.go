package domain

import "time"

// Subscription is the billing state asserted by the account service. A zero
// StartDate means the start is unknown.
type Subscription struct {
	Tier      Tier
	StartDate time.Time
	End       Expiry
	IsActive  bool
}

// TrialLapsed reports whether this is a pro_trial whose known end date is
// before now. It is the only case in which wallets get frozen.
func (s Subscription) TrialLapsed(now time.Time) bool {
	return s.Tier == TierProTrial && s.End.LapsedAt(now)
}

func (s Subscription) StartKnown() bool {
	return !s.StartDate.IsZero()
}

// ResolveEffectiveTier returns the tier used for feature gating at now.
// A pro_trial whose end date is unknown or malformed stays pro_trial.
func ResolveEffectiveTier(sub Subscription, now time.Time) Tier {
	if sub.Tier != TierProTrial {
		return sub.Tier
	}

	if sub.End.LapsedAt(now) {
		return TierFree
	}

	return TierProTrial
}

// TrialRemaining is the time left on an active trial. ok is false when the
// subscription is not a trial with a known end date.
func TrialRemaining(sub Subscription, now time.Time) (remaining time.Duration, ok bool) {
	if sub.Tier != TierProTrial {
		return 0, false
	}

	end, known := sub.End.Time()
	if !known {
		return 0, false
	}

	remaining = end.Sub(now.UTC())
	if remaining < 0 {
		remaining = 0
	}

	return remaining, true
}
