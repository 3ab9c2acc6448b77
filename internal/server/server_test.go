package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bnema/walletwise-cli/internal/adapters/api"
	"github.com/bnema/walletwise-cli/internal/application"
	"github.com/bnema/walletwise-cli/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) GetOverview(ctx context.Context, q application.OverviewQuery) (application.Overview, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(application.Overview), args.Error(1)
}

func (m *serviceMock) GetSummary(ctx context.Context, q application.SummaryQuery) (application.SummaryReport, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(application.SummaryReport), args.Error(1)
}

func (m *serviceMock) GetAnalytics(ctx context.Context, q application.OverviewQuery) (application.AnalyticsReport, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(application.AnalyticsReport), args.Error(1)
}

func intPtr(v int) *int { return &v }

func lapsedOverview() application.Overview {
	wallets := []domain.Wallet{
		{ID: "w1", Name: "Cash", Balance: 10, Currency: "USD"},
		{ID: "w2", Name: "Bank", Balance: 20, Currency: "USD"},
		{ID: "w3", Name: "Savings", Balance: 30, Currency: "USD"},
		{ID: "w4", Name: "Travel", Balance: 40, Currency: "USD"},
	}
	frozen := domain.FrozenSet{"w4": {}}

	return application.Overview{
		Profile: domain.Profile{ID: "personal"},
		User: domain.User{Subscription: domain.Subscription{
			Tier:     domain.TierProTrial,
			End:      domain.ExpiresAt(time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)),
			IsActive: true,
		}},
		Entitlements: domain.Entitlements{
			Tier:          domain.TierProTrial,
			EffectiveTier: domain.TierFree,
			Limits:        domain.TierLimits{MaxWallets: intPtr(3)},
			TrialLapsed:   true,
		},
		WalletLimit:     domain.WalletLimit{Current: 4, Max: intPtr(3)},
		Wallets:         domain.MarkFrozen(wallets, frozen, "USD", domain.StaticRates()),
		Frozen:          frozen,
		DisplayCurrency: "USD",
		TotalBalance:    60,
		RatesSource:     application.RatesSourceStatic,
	}
}

func newTestServer(t *testing.T, svc Service, cfg Config) *Server {
	t.Helper()
	return New(svc, cfg, nil)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestHealth(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &serviceMock{}, Config{})
	rec := get(t, srv.Handler(), "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestEntitlements(t *testing.T) {
	t.Parallel()

	svc := &serviceMock{}
	svc.On("GetOverview", mock.Anything, application.OverviewQuery{ID: "personal"}).Return(lapsedOverview(), nil).Once()
	srv := newTestServer(t, svc, Config{})

	rec := get(t, srv.Handler(), "/v1/profiles/personal/entitlements")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "pro_trial", body["tier"])
	assert.Equal(t, "free", body["effectiveTier"])
	assert.Equal(t, true, body["trialLapsed"])
	assert.Equal(t, []any{"w4"}, body["frozenWalletIds"])

	assert.Equal(t, 1.0, testutil.ToFloat64(srv.metrics.evaluations.WithLabelValues("free")))
	assert.Equal(t, 1.0, testutil.ToFloat64(srv.metrics.frozenWallets.WithLabelValues("personal")))
	svc.AssertExpectations(t)
}

func TestWalletsOffline(t *testing.T) {
	t.Parallel()

	svc := &serviceMock{}
	svc.On("GetOverview", mock.Anything, application.OverviewQuery{ID: "personal", Offline: true}).Return(lapsedOverview(), nil).Once()
	srv := newTestServer(t, svc, Config{})

	rec := get(t, srv.Handler(), "/v1/profiles/personal/wallets?offline=true")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Wallets []struct {
			ID     string `json:"id"`
			Frozen bool   `json:"frozen"`
		} `json:"wallets"`
		WalletLimit struct {
			CanCreate bool `json:"canCreate"`
		} `json:"walletLimit"`
		TotalBalance float64 `json:"totalBalance"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Wallets, 4)
	assert.True(t, body.Wallets[3].Frozen)
	assert.False(t, body.WalletLimit.CanCreate)
	assert.Equal(t, 60.0, body.TotalBalance)
	svc.AssertExpectations(t)
}

func TestSummaryQueryParameters(t *testing.T) {
	t.Parallel()

	sunday := time.Sunday
	svc := &serviceMock{}
	svc.On("GetSummary", mock.Anything, application.SummaryQuery{
		ID:        "personal",
		Range:     domain.TimeRangeDaily,
		WeekStart: &sunday,
	}).Return(application.SummaryReport{
		Profile:         domain.Profile{ID: "personal"},
		Range:           domain.TimeRangeDaily,
		DisplayCurrency: "USD",
		Total:           domain.Summary{TotalIncome: 100, TotalExpense: 40, Net: 60, Count: 2},
	}, nil).Once()
	srv := newTestServer(t, svc, Config{})

	rec := get(t, srv.Handler(), "/v1/profiles/personal/summary?range=Daily&weekStart=sun")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"range":"daily"`)
	assert.Contains(t, rec.Body.String(), `"net":60`)
	svc.AssertExpectations(t)
}

func TestSummaryRejectsBadParameters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target string
		code   string
	}{
		{name: "range", target: "/v1/profiles/personal/summary?range=yearly", code: "invalid_range"},
		{name: "week start", target: "/v1/profiles/personal/summary?weekStart=someday", code: "invalid_week_start"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &serviceMock{}
			srv := newTestServer(t, svc, Config{})
			rec := get(t, srv.Handler(), tt.target)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.code)
			svc.AssertNotCalled(t, "GetSummary", mock.Anything, mock.Anything)
		})
	}
}

func TestAnalytics(t *testing.T) {
	t.Parallel()

	svc := &serviceMock{}
	svc.On("GetAnalytics", mock.Anything, application.OverviewQuery{ID: "personal", Offline: true}).Return(application.AnalyticsReport{
		Profile:         domain.Profile{ID: "personal"},
		DisplayCurrency: "USD",
		Expenses:        []domain.CategoryTotal{{Category: "food", Type: domain.TransactionExpense, Amount: 40, Count: 2}},
		Total:           domain.Summary{TotalIncome: 100, TotalExpense: 40, Net: 60, Count: 3},
	}, nil).Once()
	svc.On("GetAnalytics", mock.Anything, application.OverviewQuery{ID: "free"}).
		Return(application.AnalyticsReport{}, fmt.Errorf("%w (effective tier free)", domain.ErrAnalyticsNotAllowed)).Once()
	srv := newTestServer(t, svc, Config{})

	rec := get(t, srv.Handler(), "/v1/profiles/personal/analytics?offline=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"expensesByCategory":[{"category":"food","amount":40,"count":2}]`)
	assert.Contains(t, rec.Body.String(), `"fromCache":false`)

	rec = get(t, srv.Handler(), "/v1/profiles/free/analytics")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "plan_not_entitled", body.Error.Code)
	assert.Contains(t, body.Error.Message, "effective tier free")
	svc.AssertExpectations(t)
}

func TestErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "unknown profile", err: fmt.Errorf("get profile by id: %w", domain.ErrProfileNotFound), status: http.StatusNotFound, code: "profile_not_found"},
		{name: "no snapshot", err: fmt.Errorf("profile x: %w", domain.ErrSnapshotNotFound), status: http.StatusNotFound, code: "snapshot_not_found"},
		{name: "no credential", err: fmt.Errorf("profile x has no credential: %w", domain.ErrSecretNotFound), status: http.StatusConflict, code: "credential_missing"},
		{name: "unauthorized", err: fmt.Errorf("fetch profile: %w", &api.Error{Status: http.StatusUnauthorized}), status: http.StatusBadGateway, code: "upstream_unauthorized"},
		{name: "upstream", err: fmt.Errorf("fetch wallets: %w", &api.Error{Status: http.StatusInternalServerError}), status: http.StatusBadGateway, code: "upstream_error"},
		{name: "other", err: fmt.Errorf("disk full"), status: http.StatusInternalServerError, code: "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &serviceMock{}
			svc.On("GetOverview", mock.Anything, mock.Anything).Return(application.Overview{}, tt.err).Once()
			srv := newTestServer(t, svc, Config{})

			rec := get(t, srv.Handler(), "/v1/profiles/x/entitlements")

			assert.Equal(t, tt.status, rec.Code)

			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestRateLimiterRejectsBurst(t *testing.T) {
	t.Parallel()

	svc := &serviceMock{}
	svc.On("GetOverview", mock.Anything, mock.Anything).Return(lapsedOverview(), nil)
	srv := newTestServer(t, svc, Config{RateLimit: 0.001, Burst: 2})

	statuses := make([]int, 0, 3)
	for range 3 {
		statuses = append(statuses, get(t, srv.Handler(), "/v1/profiles/personal/entitlements").Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)
	assert.Equal(t, 1.0, testutil.ToFloat64(srv.metrics.rateLimited))

	// health is outside the limited subrouter
	assert.Equal(t, http.StatusOK, get(t, srv.Handler(), "/health").Code)
}

func TestRateLimiterSweepsIdleVisitors(t *testing.T) {
	t.Parallel()

	current := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	l := newRateLimiter(1, 1, prometheus.NewCounter(prometheus.CounterOpts{Name: "test_rejected"}))
	l.now = func() time.Time { return current }

	l.get("10.0.0.1")
	current = current.Add(visitorTTL + time.Second)
	l.get("10.0.0.2")
	l.sweep()

	assert.Len(t, l.visitors, 1)
	assert.Contains(t, l.visitors, "10.0.0.2")
}

func TestClientAddr(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:5555"
	assert.Equal(t, "192.0.2.10", clientAddr(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", clientAddr(req))
}

func TestRequestIDIsPropagated(t *testing.T) {
	t.Parallel()

	var seen string
	h := requestIDMiddleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestMetricsEndpointAndUnknownRoute(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &serviceMock{}, Config{})
	_ = get(t, srv.Handler(), "/health")

	notFound := get(t, srv.Handler(), "/nope")
	assert.Equal(t, http.StatusNotFound, notFound.Code)
	assert.Contains(t, notFound.Body.String(), "not_found")

	rec := get(t, srv.Handler(), "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `walletwise_http_requests_total{method="GET",route="/health",status="OK"} 1`)
}

func TestRecoversFromPanics(t *testing.T) {
	t.Parallel()

	svc := &serviceMock{}
	svc.On("GetOverview", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		panic("boom")
	}).Return(application.Overview{}, nil)
	srv := newTestServer(t, svc, Config{})

	rec := get(t, srv.Handler(), "/v1/profiles/personal/entitlements")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := newTestServer(t, &serviceMock{}, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, listener) }()

	url := "http://" + listener.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &serviceMock{}, Config{})
	req := httptest.NewRequest(http.MethodOptions, "/v1/profiles/personal/entitlements", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Header().Get("Access-Control-Allow-Origin"), "*"))
}
