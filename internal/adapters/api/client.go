package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/walletwise-cli/internal/domain"
	"github.com/bnema/walletwise-cli/internal/logger"
	"github.com/bnema/walletwise-cli/internal/ports"
	"github.com/bnema/walletwise-cli/internal/version"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	maxResponseBytes  = 1 << 20
	sessionCookieName = "accessToken"
	dateLayout        = "2006-01-02"
)

// Client talks to the WalletWise REST API.
type Client struct {
	http      *http.Client
	log       *slog.Logger
	validate  *validator.Validate
	userAgent string
}

type Option func(*Client)

func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if strings.TrimSpace(ua) != "" {
			c.userAgent = ua
		}
	}
}

func NewClient(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	c := &Client{
		http:      httpClient,
		log:       logger.Discard(),
		validate:  validator.New(),
		userAgent: "ww/" + version.Version,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

var _ ports.WalletWiseAPI = (*Client)(nil)

// Login posts credentials and returns the access token, taken from the
// payload when present and from the session cookie otherwise.
func (c *Client) Login(ctx context.Context, baseURL, email, password string) (string, error) {
	payload := loginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := c.validate.Struct(payload); err != nil {
		return "", fmt.Errorf("validate login request: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode login request: %w", err)
	}

	creds := ports.Credentials{BaseURL: baseURL}
	response, data, err := c.do(ctx, http.MethodPost, creds, "/auth/login", nil, body)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	var login loginData
	if len(data) > 0 {
		if err := json.Unmarshal(data, &login); err != nil {
			c.log.Debug("login payload has no token object", "err", err)
		}
	}
	if token := strings.TrimSpace(login.AccessToken); token != "" {
		return token, nil
	}

	for _, cookie := range response.Cookies() {
		if cookie.Name == sessionCookieName && strings.TrimSpace(cookie.Value) != "" {
			return cookie.Value, nil
		}
	}

	return "", fmt.Errorf("login: response carried no access token")
}

func (c *Client) Profile(ctx context.Context, creds ports.Credentials) (domain.User, error) {
	var dto userDTO
	if err := c.get(ctx, creds, "/user/profile", nil, &dto); err != nil {
		return domain.User{}, fmt.Errorf("fetch profile: %w", err)
	}
	account := dto.account()

	tier, err := domain.ParseTier(dto.Subscription.Tier)
	if err != nil {
		c.log.Warn("unknown subscription tier", "tier", dto.Subscription.Tier, "user", account.ID)
	}

	// An unreadable start date stays zero, which freezes nothing.
	startDate, ok := domain.ParseTimestamp(dto.Subscription.StartDate)
	if !ok && strings.TrimSpace(dto.Subscription.StartDate) != "" {
		c.log.Warn("unreadable subscription start date", "start_date", dto.Subscription.StartDate, "user", account.ID)
	}

	return domain.User{
		ID:    account.ID,
		Email: account.Email,
		Name:  account.Name,
		Settings: domain.UserSettings{
			Currency: strings.ToUpper(strings.TrimSpace(dto.Settings.Currency)),
			Language: dto.Settings.Language,
		},
		Subscription: domain.Subscription{
			Tier:      tier,
			StartDate: startDate,
			End:       domain.ParseExpiry(dto.Subscription.EndDate),
			IsActive:  dto.Subscription.IsActive,
		},
	}, nil
}

func (c *Client) Wallets(ctx context.Context, creds ports.Credentials) ([]domain.Wallet, error) {
	var dtos []walletDTO
	if err := c.get(ctx, creds, "/wallets", nil, &dtos); err != nil {
		return nil, fmt.Errorf("fetch wallets: %w", err)
	}

	wallets := make([]domain.Wallet, 0, len(dtos))
	for i, dto := range dtos {
		if err := c.validate.Struct(dto); err != nil {
			return nil, fmt.Errorf("validate wallet %d: %w", i, err)
		}
		wallets = append(wallets, dto.toDomain())
	}

	return wallets, nil
}

func (c *Client) Transactions(ctx context.Context, creds ports.Credentials, filter ports.TransactionFilter) ([]domain.Transaction, error) {
	query := url.Values{}
	if !filter.StartDate.IsZero() {
		query.Set("startDate", filter.StartDate.UTC().Format(dateLayout))
	}
	if !filter.EndDate.IsZero() {
		query.Set("endDate", filter.EndDate.UTC().Format(dateLayout))
	}
	if filter.WalletID != "" {
		query.Set("walletId", string(filter.WalletID))
	}

	var dtos []transactionDTO
	if err := c.get(ctx, creds, "/transactions", query, &dtos); err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}

	txs := make([]domain.Transaction, 0, len(dtos))
	for _, dto := range dtos {
		if err := c.validate.Struct(dto); err != nil {
			c.log.Warn("skipping invalid transaction", "id", dto.ID, "err", err)
			continue
		}
		txs = append(txs, dto.toDomain())
	}

	return txs, nil
}

func (c *Client) FxRates(ctx context.Context, creds ports.Credentials) (domain.RateSnapshot, error) {
	var dto fxRatesDTO
	if err := c.get(ctx, creds, "/settings/fx-rates", nil, &dto); err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("fetch fx rates: %w", err)
	}

	return c.rates(dto)
}

func (c *Client) RefreshFxRates(ctx context.Context, creds ports.Credentials) (domain.RateSnapshot, error) {
	_, data, err := c.do(ctx, http.MethodPost, creds, "/settings/fx-rates/refresh", nil, nil)
	if err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("refresh fx rates: %w", err)
	}

	var dto fxRatesDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("decode fx rates: %w", err)
	}

	return c.rates(dto)
}

func (c *Client) Categories(ctx context.Context, creds ports.Credentials) ([]domain.Category, error) {
	return c.categories(ctx, creds, "/categories")
}

func (c *Client) CustomCategories(ctx context.Context, creds ports.Credentials) ([]domain.Category, error) {
	return c.categories(ctx, creds, "/categories/custom")
}

func (c *Client) categories(ctx context.Context, creds ports.Credentials, path string) ([]domain.Category, error) {
	var dtos []categoryDTO
	if err := c.get(ctx, creds, path, nil, &dtos); err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}

	categories := make([]domain.Category, 0, len(dtos))
	for _, dto := range dtos {
		dto.Type = strings.ToLower(strings.TrimSpace(dto.Type))
		if err := c.validate.Struct(dto); err != nil {
			c.log.Warn("skipping invalid category", "id", dto.ID, "err", err)
			continue
		}
		categories = append(categories, dto.toDomain())
	}

	return categories, nil
}

func (c *Client) rates(dto fxRatesDTO) (domain.RateSnapshot, error) {
	if err := c.validate.Struct(dto); err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("validate fx rates: %w", err)
	}

	return dto.toDomain(), nil
}

func (c *Client) get(ctx context.Context, creds ports.Credentials, path string, query url.Values, out any) error {
	_, data, err := c.do(ctx, http.MethodGet, creds, path, query, nil)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// do performs one request and returns the unwrapped data field of the
// response envelope.
func (c *Client) do(ctx context.Context, method string, creds ports.Credentials, path string, query url.Values, body []byte) (*http.Response, json.RawMessage, error) {
	base := strings.TrimRight(strings.TrimSpace(creds.BaseURL), "/")
	if base == "" {
		return nil, nil, fmt.Errorf("base url is empty")
	}

	endpoint := base + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	request, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", c.userAgent)
	request.Header.Set("X-Request-ID", requestID)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	setAuth(request, creds)

	start := time.Now()
	response, err := c.http.Do(request)
	if err != nil {
		return nil, nil, fmt.Errorf("perform request: %w", err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}

	c.log.Debug("walletwise api call",
		"method", method,
		"path", path,
		"status", response.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, nil, apiError(response.StatusCode, raw)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, nil, fmt.Errorf("decode envelope: %w", err)
	}
	if !env.Success {
		apiErr := &Error{Status: response.StatusCode, Message: env.Message}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return nil, nil, apiErr
	}

	return response, env.Data, nil
}

func setAuth(request *http.Request, creds ports.Credentials) {
	token := strings.TrimSpace(creds.Token)
	if token == "" {
		return
	}

	switch creds.Method {
	case domain.AuthMethodSession:
		request.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	default:
		request.Header.Set("Authorization", "Bearer "+token)
	}
}

func apiError(status int, raw []byte) error {
	apiErr := &Error{Status: status}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		apiErr.Message = strings.TrimSpace(string(raw))
		return apiErr
	}

	apiErr.Message = env.Message
	if env.Error != nil {
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
	}

	return apiErr
}
