package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Profiles []profileSchema `toml:"profiles"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported profiles schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type profileSchema struct {
	ID       string          `toml:"id"`
	Name     string          `toml:"name"`
	Metadata metadataSchema  `toml:"metadata"`
	Auth     authSchema      `toml:"auth"`
	Snapshot *snapshotSchema `toml:"snapshot,omitempty"`
}

type metadataSchema struct {
	BaseURL         string `toml:"base_url,omitempty"`
	SecretRef       string `toml:"secret_ref"`
	DisplayCurrency string `toml:"display_currency,omitempty"`
}

type authSchema struct {
	Method    string `toml:"method"`
	SecretRef string `toml:"secret_ref"`
}

type snapshotSchema struct {
	CapturedAt   string              `toml:"captured_at"`
	User         userSchema          `toml:"user"`
	Rates        *ratesSchema        `toml:"rates,omitempty"`
	Wallets      []walletSchema      `toml:"wallets,omitempty"`
	Transactions []transactionSchema `toml:"transactions,omitempty"`
}

type userSchema struct {
	ID           string             `toml:"id"`
	Email        string             `toml:"email"`
	Name         string             `toml:"name"`
	Currency     string             `toml:"currency,omitempty"`
	Language     string             `toml:"language,omitempty"`
	Subscription subscriptionSchema `toml:"subscription"`
}

// subscriptionSchema keeps end_date verbatim when it could not be parsed, so
// the fail-open evaluation survives a reload.
type subscriptionSchema struct {
	Tier      string `toml:"tier"`
	StartDate string `toml:"start_date"`
	EndDate   string `toml:"end_date,omitempty"`
	IsActive  bool   `toml:"is_active"`
}

type ratesSchema struct {
	Base      string             `toml:"base"`
	UpdatedAt string             `toml:"updated_at"`
	Rates     map[string]float64 `toml:"rates"`
}

type walletSchema struct {
	ID        string  `toml:"id"`
	Name      string  `toml:"name"`
	Balance   float64 `toml:"balance"`
	Currency  string  `toml:"currency"`
	CreatedAt string  `toml:"created_at"`
	UpdatedAt string  `toml:"updated_at,omitempty"`
}

type transactionSchema struct {
	ID          string  `toml:"id"`
	WalletID    string  `toml:"wallet_id"`
	Type        string  `toml:"type"`
	Category    string  `toml:"category,omitempty"`
	Amount      float64 `toml:"amount"`
	Description string  `toml:"description,omitempty"`
	Date        string  `toml:"date"`
	CreatedAt   string  `toml:"created_at,omitempty"`
}
