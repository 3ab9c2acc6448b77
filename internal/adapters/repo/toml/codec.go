package toml

import (
	"time"

	"github.com/bnema/walletwise-cli/internal/domain"
)

func toSchema(profile domain.Profile) profileSchema {
	return profileSchema{
		ID:   string(profile.ID),
		Name: profile.Name,
		Metadata: metadataSchema{
			BaseURL:         profile.Metadata.BaseURL,
			SecretRef:       profile.Metadata.SecretRef,
			DisplayCurrency: profile.Metadata.DisplayCurrency,
		},
		Auth: authSchema{
			Method:    string(profile.Auth.Method),
			SecretRef: profile.Auth.SecretRef,
		},
		Snapshot: toSnapshotSchema(profile.Snapshot),
	}
}

func fromSchema(profile profileSchema) domain.Profile {
	metadataSecretRef := profile.Metadata.SecretRef
	if metadataSecretRef == "" {
		metadataSecretRef = profile.Auth.SecretRef
	}

	authSecretRef := profile.Auth.SecretRef
	if authSecretRef == "" {
		authSecretRef = profile.Metadata.SecretRef
	}

	return domain.Profile{
		ID:   domain.ProfileID(profile.ID),
		Name: profile.Name,
		Metadata: domain.ProfileMetadata{
			BaseURL:         profile.Metadata.BaseURL,
			SecretRef:       metadataSecretRef,
			DisplayCurrency: profile.Metadata.DisplayCurrency,
		},
		Auth: domain.Auth{
			Method:    domain.AuthMethod(profile.Auth.Method),
			SecretRef: authSecretRef,
		},
		Snapshot: fromSnapshotSchema(profile.Snapshot),
	}
}

func toSnapshotSchema(snapshot *domain.AccountSnapshot) *snapshotSchema {
	if snapshot == nil {
		return nil
	}

	user := snapshot.User
	encoded := &snapshotSchema{
		CapturedAt: formatTime(snapshot.CapturedAt),
		User: userSchema{
			ID:       user.ID,
			Email:    user.Email,
			Name:     user.Name,
			Currency: user.Settings.Currency,
			Language: user.Settings.Language,
			Subscription: subscriptionSchema{
				Tier:      string(user.Subscription.Tier),
				StartDate: formatTime(user.Subscription.StartDate),
				EndDate:   formatExpiry(user.Subscription.End),
				IsActive:  user.Subscription.IsActive,
			},
		},
	}

	if snapshot.Rates != nil {
		encoded.Rates = &ratesSchema{
			Base:      snapshot.Rates.Base,
			UpdatedAt: formatTime(snapshot.Rates.UpdatedAt),
			Rates:     map[string]float64(snapshot.Rates.Rates),
		}
	}

	for _, wallet := range snapshot.Wallets {
		encoded.Wallets = append(encoded.Wallets, walletSchema{
			ID:        string(wallet.ID),
			Name:      wallet.Name,
			Balance:   wallet.Balance,
			Currency:  wallet.Currency,
			CreatedAt: formatTime(wallet.CreatedAt),
			UpdatedAt: formatTime(wallet.UpdatedAt),
		})
	}

	for _, tx := range snapshot.Transactions {
		encoded.Transactions = append(encoded.Transactions, transactionSchema{
			ID:          string(tx.ID),
			WalletID:    string(tx.WalletID),
			Type:        string(tx.Type),
			Category:    tx.Category,
			Amount:      tx.Amount,
			Description: tx.Description,
			Date:        formatTime(tx.Date),
			CreatedAt:   formatTime(tx.CreatedAt),
		})
	}

	return encoded
}

func fromSnapshotSchema(snapshot *snapshotSchema) *domain.AccountSnapshot {
	if snapshot == nil {
		return nil
	}

	user := snapshot.User
	decoded := &domain.AccountSnapshot{
		CapturedAt: parseTime(snapshot.CapturedAt),
		User: domain.User{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Settings: domain.UserSettings{
				Currency: user.Currency,
				Language: user.Language,
			},
			Subscription: domain.Subscription{
				Tier:      domain.Tier(user.Subscription.Tier),
				StartDate: parseTime(user.Subscription.StartDate),
				End:       domain.ParseExpiry(user.Subscription.EndDate),
				IsActive:  user.Subscription.IsActive,
			},
		},
	}

	if snapshot.Rates != nil {
		decoded.Rates = &domain.RateSnapshot{
			Base:      snapshot.Rates.Base,
			UpdatedAt: parseTime(snapshot.Rates.UpdatedAt),
			Rates:     domain.RateTable(snapshot.Rates.Rates),
		}
	}

	if len(snapshot.Wallets) > 0 {
		decoded.Wallets = make([]domain.Wallet, 0, len(snapshot.Wallets))
	}
	for _, wallet := range snapshot.Wallets {
		decoded.Wallets = append(decoded.Wallets, domain.Wallet{
			ID:        domain.WalletID(wallet.ID),
			Name:      wallet.Name,
			Balance:   wallet.Balance,
			Currency:  wallet.Currency,
			CreatedAt: parseTime(wallet.CreatedAt),
			UpdatedAt: parseTime(wallet.UpdatedAt),
		})
	}

	if len(snapshot.Transactions) > 0 {
		decoded.Transactions = make([]domain.Transaction, 0, len(snapshot.Transactions))
	}
	for _, tx := range snapshot.Transactions {
		decoded.Transactions = append(decoded.Transactions, domain.Transaction{
			ID:          domain.TransactionID(tx.ID),
			WalletID:    domain.WalletID(tx.WalletID),
			Type:        domain.TransactionType(tx.Type),
			Category:    tx.Category,
			Amount:      tx.Amount,
			Description: tx.Description,
			Date:        parseTime(tx.Date),
			CreatedAt:   parseTime(tx.CreatedAt),
		})
	}

	return decoded
}

func formatExpiry(end domain.Expiry) string {
	if at, ok := end.Time(); ok {
		return formatTime(at)
	}

	return end.Raw()
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339Nano)
}
