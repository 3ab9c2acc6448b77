package domain

import "time"

type ProfileID string

// Profile is a locally configured WalletWise login.
type Profile struct {
	ID       ProfileID
	Name     string
	Metadata ProfileMetadata
	Auth     Auth
	Snapshot *AccountSnapshot
}

type ProfileMetadata struct {
	BaseURL   string
	SecretRef string
	// DisplayCurrency overrides the currency from the user's settings.
	DisplayCurrency string
}

type AuthMethod string

const (
	AuthMethodToken   AuthMethod = "token"
	AuthMethodSession AuthMethod = "session"
)

type Auth struct {
	Method AuthMethod
	// SecretRef points to a secret-store entry, typically in "walletwise://profile/kind" form.
	SecretRef string
}

type UserSettings struct {
	Currency string
	Language string
}

// User is the account record returned by the profile endpoint.
type User struct {
	ID           string
	Email        string
	Name         string
	Settings     UserSettings
	Subscription Subscription
}

// AccountSnapshot is the last state fetched from the API.
type AccountSnapshot struct {
	User         User
	Wallets      []Wallet
	Transactions []Transaction
	Rates        *RateSnapshot
	CapturedAt   time.Time
}

// DisplayCurrency picks the profile override, then the user setting, then USD.
func (p Profile) DisplayCurrency() string {
	if p.Metadata.DisplayCurrency != "" {
		return normalizeCurrency(p.Metadata.DisplayCurrency)
	}
	if p.Snapshot != nil && p.Snapshot.User.Settings.Currency != "" {
		return normalizeCurrency(p.Snapshot.User.Settings.Currency)
	}

	return BaseCurrency
}
