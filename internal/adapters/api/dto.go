package api

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/bnema/walletwise-cli/internal/domain"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
	Error   *errorBody      `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginData struct {
	AccessToken string `json:"accessToken"`
}

type subscriptionDTO struct {
	Tier      string `json:"tier"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	IsActive  bool   `json:"isActive"`
}

type settingsDTO struct {
	Currency string `json:"currency"`
	Language string `json:"language"`
}

type accountDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// userDTO accepts the account fields either nested under "profile" or at the
// top level next to the subscription. Neither is required.
type userDTO struct {
	Profile      *accountDTO     `json:"profile"`
	ID           string          `json:"id"`
	Email        string          `json:"email"`
	Name         string          `json:"name"`
	Subscription subscriptionDTO `json:"subscription"`
	Settings     settingsDTO     `json:"settings"`
}

func (u userDTO) account() accountDTO {
	out := accountDTO{ID: u.ID, Email: u.Email, Name: u.Name}
	if u.Profile == nil {
		return out
	}

	if id := strings.TrimSpace(u.Profile.ID); id != "" {
		out.ID = id
	}
	if u.Profile.Email != "" {
		out.Email = u.Profile.Email
	}
	if u.Profile.Name != "" {
		out.Name = u.Profile.Name
	}

	return out
}

type walletDTO struct {
	ID        string  `json:"id" validate:"required"`
	Name      string  `json:"name"`
	Balance   float64 `json:"balance"`
	Currency  string  `json:"currency" validate:"omitempty,alpha"`
	CreatedAt string  `json:"createdAt" validate:"required"`
	UpdatedAt string  `json:"updatedAt"`
}

type transactionDTO struct {
	ID          string  `json:"id" validate:"required"`
	WalletID    string  `json:"walletId" validate:"required"`
	Type        string  `json:"type" validate:"required"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount" validate:"gte=0"`
	Description string  `json:"description"`
	Date        string  `json:"date" validate:"required"`
	CreatedAt   string  `json:"createdAt"`
}

// categoryDTO covers both /categories options and /categories/custom rows;
// custom rows carry no isSystem flag.
type categoryDTO struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Type     string `json:"type" validate:"oneof=income expense"`
	IsSystem bool   `json:"isSystem"`
}

type fxRatesDTO struct {
	BaseCode  string             `json:"baseCode"`
	Rates     map[string]float64 `json:"rates" validate:"required"`
	UpdatedAt string             `json:"updatedAt"`
}

func timestamp(raw string) time.Time {
	parsed, _ := domain.ParseTimestamp(raw)
	return parsed
}

func (w walletDTO) toDomain() domain.Wallet {
	return domain.Wallet{
		ID:        domain.WalletID(w.ID),
		Name:      w.Name,
		Balance:   w.Balance,
		Currency:  strings.ToUpper(strings.TrimSpace(w.Currency)),
		CreatedAt: timestamp(w.CreatedAt),
		UpdatedAt: timestamp(w.UpdatedAt),
	}
}

func (t transactionDTO) toDomain() domain.Transaction {
	return domain.Transaction{
		ID:          domain.TransactionID(t.ID),
		WalletID:    domain.WalletID(t.WalletID),
		Type:        domain.TransactionType(strings.ToLower(strings.TrimSpace(t.Type))),
		Category:    t.Category,
		Amount:      t.Amount,
		Description: t.Description,
		Date:        timestamp(t.Date),
		CreatedAt:   timestamp(t.CreatedAt),
	}
}

func (c categoryDTO) toDomain() domain.Category {
	return domain.Category{
		ID:       c.ID,
		Name:     c.Name,
		Type:     domain.TransactionType(c.Type),
		IsSystem: c.IsSystem,
	}
}

func (r fxRatesDTO) toDomain() domain.RateSnapshot {
	rates := make(domain.RateTable, len(r.Rates))
	for code, rate := range r.Rates {
		rates[strings.ToUpper(strings.TrimSpace(code))] = rate
	}

	base := strings.ToUpper(strings.TrimSpace(r.BaseCode))
	if base == "" {
		base = domain.BaseCurrency
	}

	return domain.RateSnapshot{
		Base:      base,
		Rates:     rates,
		UpdatedAt: timestamp(r.UpdatedAt),
	}
}
