package ports

import (
	"context"
	"time"

	"github.com/bnema/walletwise-cli/internal/domain"
)

// Credentials authenticate a call against the WalletWise API.
type Credentials struct {
	BaseURL string
	Method  domain.AuthMethod
	Token   string
}

type TransactionFilter struct {
	WalletID  domain.WalletID
	StartDate time.Time
	EndDate   time.Time
}

// WalletWiseAPI is the upstream REST surface the CLI reads from.
type WalletWiseAPI interface {
	Login(ctx context.Context, baseURL, email, password string) (string, error)
	Profile(ctx context.Context, creds Credentials) (domain.User, error)
	Wallets(ctx context.Context, creds Credentials) ([]domain.Wallet, error)
	Transactions(ctx context.Context, creds Credentials, filter TransactionFilter) ([]domain.Transaction, error)
	FxRates(ctx context.Context, creds Credentials) (domain.RateSnapshot, error)
	RefreshFxRates(ctx context.Context, creds Credentials) (domain.RateSnapshot, error)
	// Categories lists system and custom categories together.
	Categories(ctx context.Context, creds Credentials) ([]domain.Category, error)
	CustomCategories(ctx context.Context, creds Credentials) ([]domain.Category, error)
}
