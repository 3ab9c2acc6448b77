package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/bnema/walletwise-cli/internal/adapters/api"
	"github.com/bnema/walletwise-cli/internal/adapters/render/overview"
	"github.com/bnema/walletwise-cli/internal/application"
	"github.com/bnema/walletwise-cli/internal/config"
	"github.com/bnema/walletwise-cli/internal/domain"
	"github.com/gorilla/mux"
)

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = message
	writeJSON(w, status, body)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) entitlements(w http.ResponseWriter, r *http.Request) {
	o, ok := s.loadOverview(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, overview.NewOverviewJSON(o))
}

func (s *Server) wallets(w http.ResponseWriter, r *http.Request) {
	o, ok := s.loadOverview(w, r)
	if !ok {
		return
	}

	out := overview.NewOverviewJSON(o)
	writeJSON(w, http.StatusOK, map[string]any{
		"profile":         out.Profile,
		"wallets":         out.Wallets,
		"frozenWalletIds": out.FrozenWalletIDs,
		"walletLimit":     out.WalletLimit,
		"displayCurrency": out.DisplayCurrency,
		"totalBalance":    out.TotalBalance,
	})
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	q := application.SummaryQuery{
		ID:      domain.ProfileID(mux.Vars(r)["id"]),
		Range:   domain.TimeRangeWeekly,
		Offline: offline(r),
	}
	if raw := strings.TrimSpace(query.Get("range")); raw != "" {
		q.Range = domain.TimeRange(strings.ToLower(raw))
		if !q.Range.Valid() {
			writeError(w, http.StatusBadRequest, "invalid_range", "range must be daily, weekly or monthly")
			return
		}
	}
	if raw := query.Get("weekStart"); raw != "" {
		day, err := config.ParseWeekday(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_week_start", err.Error())
			return
		}
		q.WeekStart = &day
	}

	report, err := s.service.GetSummary(r.Context(), q)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, overview.NewSummaryJSON(report))
}

func (s *Server) analytics(w http.ResponseWriter, r *http.Request) {
	q := application.OverviewQuery{ID: domain.ProfileID(mux.Vars(r)["id"]), Offline: offline(r)}

	report, err := s.service.GetAnalytics(r.Context(), q)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, overview.NewAnalyticsJSON(report))
}

// loadOverview loads and evaluates the profile named in the path, writing the
// error response itself when that fails.
func (s *Server) loadOverview(w http.ResponseWriter, r *http.Request) (application.Overview, bool) {
	id := domain.ProfileID(mux.Vars(r)["id"])

	o, err := s.service.GetOverview(r.Context(), application.OverviewQuery{ID: id, Offline: offline(r)})
	if err != nil {
		s.fail(w, r, err)
		return application.Overview{}, false
	}

	s.metrics.evaluations.WithLabelValues(string(o.Entitlements.EffectiveTier)).Inc()
	s.metrics.frozenWallets.WithLabelValues(string(id)).Set(float64(o.Frozen.Len()))

	return o, true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		s.metrics.upstreamFailures.WithLabelValues(code).Inc()
		s.log.Error("request failed", "path", r.URL.Path, "request_id", RequestID(r.Context()), "error", err)
	}

	writeError(w, status, code, err.Error())
}

func classify(err error) (int, string) {
	var configErr *domain.ConfigError
	var apiErr *api.Error

	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound, "profile_not_found"
	case errors.Is(err, domain.ErrSnapshotNotFound):
		return http.StatusNotFound, "snapshot_not_found"
	case errors.Is(err, domain.ErrSecretNotFound):
		return http.StatusConflict, "credential_missing"
	case errors.Is(err, domain.ErrAnalyticsNotAllowed):
		return http.StatusForbidden, "plan_not_entitled"
	case errors.As(err, &configErr):
		return http.StatusUnprocessableEntity, "unknown_tier"
	case errors.Is(err, api.ErrUnauthorized):
		return http.StatusBadGateway, "upstream_unauthorized"
	case errors.As(err, &apiErr):
		return http.StatusBadGateway, "upstream_error"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func offline(r *http.Request) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get("offline"))
	return err == nil && v
}
