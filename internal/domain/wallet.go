package domain

import (
	"sort"
	"time"
)

type WalletID string

type Wallet struct {
	ID        WalletID
	Name      string
	Balance   float64
	Currency  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FrozenSet holds the ids of wallets created under trial capacity that has
// since lapsed.
type FrozenSet map[WalletID]struct{}

func (s FrozenSet) Has(id WalletID) bool {
	_, ok := s[id]
	return ok
}

func (s FrozenSet) Len() int {
	return len(s)
}

// IDs returns the frozen ids in lexical order.
func (s FrozenSet) IDs() []WalletID {
	ids := make([]WalletID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

// ComputeFrozenWallets returns the wallets hidden after a pro_trial lapses:
// those beyond the first freeMaxWallets by creation time that were created
// on or after the trial start. Anything else returns an empty set. An unknown
// trial start freezes nothing, and a wallet without a creation time is never
// frozen.
func ComputeFrozenWallets(sub Subscription, wallets []Wallet, now time.Time, freeMaxWallets int) FrozenSet {
	frozen := FrozenSet{}
	if !sub.TrialLapsed(now) || !sub.StartKnown() || len(wallets) == 0 {
		return frozen
	}

	if freeMaxWallets < 0 {
		freeMaxWallets = 0
	}
	if len(wallets) <= freeMaxWallets {
		return frozen
	}

	sorted := make([]Wallet, len(wallets))
	copy(sorted, wallets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	for _, wallet := range sorted[freeMaxWallets:] {
		if wallet.CreatedAt.IsZero() || wallet.CreatedAt.Before(sub.StartDate) {
			continue
		}
		frozen[wallet.ID] = struct{}{}
	}

	return frozen
}

// WalletView is a wallet row with its display-currency balance.
type WalletView struct {
	Wallet
	Frozen          bool
	DisplayBalance  float64
	DisplayCurrency string
}

func MarkFrozen(wallets []Wallet, frozen FrozenSet, displayCurrency string, rates RateTable) []WalletView {
	views := make([]WalletView, 0, len(wallets))
	for _, wallet := range wallets {
		views = append(views, WalletView{
			Wallet:          wallet,
			Frozen:          frozen.Has(wallet.ID),
			DisplayBalance:  Convert(wallet.Balance, wallet.Currency, displayCurrency, rates),
			DisplayCurrency: displayCurrency,
		})
	}

	return views
}
