package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/bnema/walletwise-cli/internal/domain"
	"github.com/bnema/walletwise-cli/internal/ports"
)

const secretScheme = "walletwise://"

// Settings are the config-driven knobs of the service.
type Settings struct {
	DefaultBaseURL  string
	DisplayCurrency string
	RatesMaxAge     time.Duration
	WeekStart       time.Weekday
}

type Service struct {
	repo     ports.ProfileRepository
	store    ports.SecretStore
	api      ports.WalletWiseAPI
	clock    ports.Clock
	log      *slog.Logger
	settings Settings
}

type Option func(*Service)

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

func WithSettings(settings Settings) Option {
	return func(s *Service) {
		s.settings = settings
	}
}

func NewService(repo ports.ProfileRepository, store ports.SecretStore, api ports.WalletWiseAPI, clock ports.Clock, opts ...Option) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	s := &Service{
		repo:  repo,
		store: store,
		api:   api,
		clock: clock,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		settings: Settings{
			RatesMaxAge: time.Hour,
			WeekStart:   time.Monday,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SecretKey is the secret-store key for a profile credential.
func SecretKey(id domain.ProfileID, method domain.AuthMethod) string {
	return fmt.Sprintf("%s%s/%s", secretScheme, id, method)
}

func (s *Service) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	return profiles, nil
}

func (s *Service) SetAuth(ctx context.Context, id domain.ProfileID, method domain.AuthMethod, secretKey, secretValue string) error {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return fmt.Errorf("get profile by id: %w", err)
		}
		profile = domain.Profile{ID: id, Name: string(id)}
	}
	originalProfile := profile

	previousSecretRefs := uniqueSecretRefs(profile.Metadata.SecretRef, profile.Auth.SecretRef)

	if err := s.store.Put(ctx, secretKey, secretValue); err != nil {
		return fmt.Errorf("store auth secret: %w", err)
	}

	profile.Auth = domain.Auth{
		Method:    method,
		SecretRef: secretKey,
	}
	profile.Metadata.SecretRef = secretKey

	if err := s.repo.Save(ctx, profile); err != nil {
		if rollbackErr := s.store.Delete(ctx, secretKey); rollbackErr != nil {
			return fmt.Errorf("save profile auth and rollback stored secret: %w", errors.Join(err, rollbackErr))
		}

		return fmt.Errorf("save profile auth: %w", err)
	}

	for _, previousSecretRef := range previousSecretRefs {
		if previousSecretRef == secretKey {
			continue
		}
		if err := s.store.Delete(ctx, previousSecretRef); err != nil {
			remaining := remainingSecretRefs(previousSecretRefs, previousSecretRef)
			restoreProfile := originalProfile
			applySecretRefs(&restoreProfile, remaining)
			if len(remaining) == 0 {
				restoreProfile.Auth.Method = ""
			} else {
				restoreProfile.Auth.Method = originalProfile.Auth.Method
			}

			var rollbackErr error
			if restoreErr := s.repo.Save(ctx, restoreProfile); restoreErr != nil {
				rollbackErr = errors.Join(rollbackErr, restoreErr)
			}
			if newSecretDeleteErr := s.store.Delete(ctx, secretKey); newSecretDeleteErr != nil {
				rollbackErr = errors.Join(rollbackErr, newSecretDeleteErr)
			}
			if rollbackErr != nil {
				return fmt.Errorf("delete previous auth secret and rollback auth update: %w", errors.Join(err, rollbackErr))
			}
			return fmt.Errorf("delete previous auth secret: %w", err)
		}
	}

	s.log.Debug("profile auth updated", "profile", id, "method", method)

	return nil
}

func (s *Service) RemoveAuth(ctx context.Context, id domain.ProfileID) error {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get profile by id: %w", err)
	}
	originalProfile := profile

	secretRefs := uniqueSecretRefs(profile.Metadata.SecretRef, profile.Auth.SecretRef)

	profile.Auth = domain.Auth{}
	profile.Metadata.SecretRef = ""
	profile.Snapshot = nil

	if err := s.repo.Save(ctx, profile); err != nil {
		return fmt.Errorf("save profile auth: %w", err)
	}

	for _, secretRef := range secretRefs {
		if err := s.store.Delete(ctx, secretRef); err != nil {
			remaining := remainingSecretRefs(secretRefs, secretRef)
			restoreProfile := profile
			applySecretRefs(&restoreProfile, remaining)
			if len(remaining) > 0 {
				restoreProfile.Auth.Method = originalProfile.Auth.Method
			}
			if restoreErr := s.repo.Save(ctx, restoreProfile); restoreErr != nil {
				return fmt.Errorf("delete auth secret and restore remaining refs: %w", errors.Join(err, restoreErr))
			}
			return fmt.Errorf("delete auth secret: %w", err)
		}
	}

	return nil
}

func uniqueSecretRefs(secretRefs ...string) []string {
	result := make([]string, 0, len(secretRefs))
	seen := make(map[string]struct{}, len(secretRefs))

	for _, secretRef := range secretRefs {
		if secretRef == "" {
			continue
		}
		if _, ok := seen[secretRef]; ok {
			continue
		}

		seen[secretRef] = struct{}{}
		result = append(result, secretRef)
	}

	return result
}

func remainingSecretRefs(secretRefs []string, failed string) []string {
	for i, secretRef := range secretRefs {
		if secretRef == failed {
			return secretRefs[i:]
		}
	}
	return nil
}

func applySecretRefs(profile *domain.Profile, secretRefs []string) {
	profile.Metadata.SecretRef = ""
	profile.Auth.SecretRef = ""

	if len(secretRefs) > 0 {
		profile.Metadata.SecretRef = secretRefs[0]
		profile.Auth.SecretRef = secretRefs[0]
	}
	if len(secretRefs) > 1 {
		profile.Auth.SecretRef = secretRefs[1]
	}
}

func (s *Service) SetBaseURL(ctx context.Context, id domain.ProfileID, baseURL string) error {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get profile by id: %w", err)
	}

	profile.Metadata.BaseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")

	if err := s.repo.Save(ctx, profile); err != nil {
		return fmt.Errorf("save profile base url: %w", err)
	}

	return nil
}

func (s *Service) SetDisplayCurrency(ctx context.Context, id domain.ProfileID, currency string) error {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get profile by id: %w", err)
	}

	profile.Metadata.DisplayCurrency = strings.ToUpper(strings.TrimSpace(currency))

	if err := s.repo.Save(ctx, profile); err != nil {
		return fmt.Errorf("save profile display currency: %w", err)
	}

	return nil
}

// Login exchanges email and password for a session token and stores it as
// the profile credential.
func (s *Service) Login(ctx context.Context, cmd LoginCommand) error {
	baseURL := strings.TrimRight(strings.TrimSpace(cmd.BaseURL), "/")
	if baseURL == "" {
		baseURL = s.baseURLFor(domain.Profile{ID: cmd.ID})
		if existing, err := s.repo.GetByID(ctx, cmd.ID); err == nil {
			baseURL = s.baseURLFor(existing)
		}
	}

	token, err := s.api.Login(ctx, baseURL, cmd.Email, cmd.Password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	if err := s.SetAuth(ctx, cmd.ID, domain.AuthMethodSession, SecretKey(cmd.ID, domain.AuthMethodSession), token); err != nil {
		return err
	}

	if strings.TrimSpace(cmd.BaseURL) != "" {
		return s.SetBaseURL(ctx, cmd.ID, baseURL)
	}

	return nil
}

func (s *Service) baseURLFor(profile domain.Profile) string {
	if profile.Metadata.BaseURL != "" {
		return profile.Metadata.BaseURL
	}

	return s.settings.DefaultBaseURL
}

func (s *Service) credentials(ctx context.Context, profile domain.Profile) (ports.Credentials, error) {
	secretRef := profile.Auth.SecretRef
	if secretRef == "" {
		secretRef = profile.Metadata.SecretRef
	}
	if secretRef == "" {
		return ports.Credentials{}, fmt.Errorf("profile %s has no credential: %w", profile.ID, domain.ErrSecretNotFound)
	}

	token, err := s.store.Get(ctx, secretRef)
	if err != nil {
		return ports.Credentials{}, fmt.Errorf("load auth secret: %w", err)
	}

	method := profile.Auth.Method
	if method == "" {
		method = domain.AuthMethodToken
	}

	return ports.Credentials{
		BaseURL: s.baseURLFor(profile),
		Method:  method,
		Token:   token,
	}, nil
}

// Refresh fetches the account state from the API and stores it as the
// profile snapshot. When the rates endpoint fails the previous table is
// kept, or none at all so the static table applies.
func (s *Service) Refresh(ctx context.Context, id domain.ProfileID) (domain.Profile, error) {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("get profile by id: %w", err)
	}

	creds, err := s.credentials(ctx, profile)
	if err != nil {
		return domain.Profile{}, err
	}

	now := s.clock.Now()

	user, err := s.api.Profile(ctx, creds)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("fetch profile: %w", err)
	}

	wallets, err := s.api.Wallets(ctx, creds)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("fetch wallets: %w", err)
	}

	start, end := s.transactionWindow(now)
	transactions, err := s.api.Transactions(ctx, creds, ports.TransactionFilter{StartDate: start, EndDate: end})
	if err != nil {
		return domain.Profile{}, fmt.Errorf("fetch transactions: %w", err)
	}

	var rates *domain.RateSnapshot
	if profile.Snapshot != nil {
		rates = profile.Snapshot.Rates
	}
	if live, err := s.api.FxRates(ctx, creds); err != nil {
		s.log.Warn("fx rates unavailable, keeping previous table", "profile", id, "error", err)
	} else {
		rates = &live
	}

	profile.Snapshot = &domain.AccountSnapshot{
		User:         user,
		Wallets:      wallets,
		Transactions: transactions,
		Rates:        rates,
		CapturedAt:   now,
	}

	if err := s.repo.Save(ctx, profile); err != nil {
		return domain.Profile{}, fmt.Errorf("save profile snapshot: %w", err)
	}

	s.log.Info("profile refreshed",
		"profile", id,
		"tier", user.Subscription.Tier,
		"wallets", len(wallets),
		"transactions", len(transactions),
	)

	return profile, nil
}

// transactionWindow covers both the calendar year and the current week, so
// every range of the summary command can be served from one snapshot.
func (s *Service) transactionWindow(now time.Time) (time.Time, time.Time) {
	start, end := domain.FetchRange(domain.Buckets(domain.TimeRangeMonthly, now, s.settings.WeekStart), now)
	weekStart, weekEnd := domain.FetchRange(domain.Buckets(domain.TimeRangeDaily, now, s.settings.WeekStart), now)
	if weekStart.Before(start) {
		start = weekStart
	}
	if weekEnd.After(end) {
		end = weekEnd
	}

	return start, end
}

// load returns the profile with a usable snapshot, refreshing first unless
// offline is set. A failed refresh falls back to the cached snapshot.
func (s *Service) load(ctx context.Context, id domain.ProfileID, offline bool) (domain.Profile, bool, error) {
	if !offline {
		profile, err := s.Refresh(ctx, id)
		if err == nil {
			return profile, false, nil
		}
		if errors.Is(err, domain.ErrProfileNotFound) || errors.Is(err, domain.ErrSecretNotFound) {
			return domain.Profile{}, false, err
		}
		s.log.Warn("refresh failed, using cached snapshot", "profile", id, "error", err)

		cached, getErr := s.repo.GetByID(ctx, id)
		if getErr != nil || cached.Snapshot == nil {
			return domain.Profile{}, false, err
		}
		return cached, true, nil
	}

	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Profile{}, false, fmt.Errorf("get profile by id: %w", err)
	}
	if profile.Snapshot == nil {
		return domain.Profile{}, false, fmt.Errorf("profile %s: %w", id, domain.ErrSnapshotNotFound)
	}

	return profile, true, nil
}

func (s *Service) GetOverview(ctx context.Context, q OverviewQuery) (Overview, error) {
	profile, cached, err := s.load(ctx, q.ID, q.Offline)
	if err != nil {
		return Overview{}, err
	}

	overview := s.overviewFor(profile, s.clock.Now())
	overview.FromCache = cached

	return overview, nil
}

// GetOverviewAll renders every profile that has credentials. Profiles that
// cannot be loaded are reported through Overview.LoadErr.
func (s *Service) GetOverviewAll(ctx context.Context, offline bool) ([]Overview, error) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	overviews := make([]Overview, 0, len(profiles))
	for _, profile := range profiles {
		overview, err := s.GetOverview(ctx, OverviewQuery{ID: profile.ID, Offline: offline})
		if err != nil {
			overviews = append(overviews, Overview{Profile: profile, LoadErr: err})
			continue
		}
		overviews = append(overviews, overview)
	}

	return overviews, nil
}

func (s *Service) overviewFor(profile domain.Profile, now time.Time) Overview {
	snapshot := profile.Snapshot
	sub := snapshot.User.Subscription
	display := s.displayCurrency(profile)
	rates := domain.RatesOrStatic(snapshot.Rates)
	frozen := domain.ComputeFrozenWallets(sub, snapshot.Wallets, now, domain.FreeWalletLimit())

	overview := Overview{
		Profile:         profile,
		User:            snapshot.User,
		DisplayCurrency: display,
		Frozen:          frozen,
		Wallets:         domain.MarkFrozen(snapshot.Wallets, frozen, display, rates),
		TotalBalance:    domain.AggregateBalances(snapshot.Wallets, frozen, display, rates),
		Rates:           rates,
		RatesSource:     ratesSource(snapshot.Rates),
		CapturedAt:      snapshot.CapturedAt,
	}
	if snapshot.Rates != nil {
		overview.RatesStale = snapshot.Rates.IsStale(now, s.settings.RatesMaxAge)
	}
	if remaining, ok := domain.TrialRemaining(sub, now); ok {
		overview.TrialRemaining = &remaining
	}

	entitlements, err := domain.ResolveEntitlements(sub, now)
	overview.Entitlements = entitlements
	if err != nil {
		s.log.Error("unable to determine plan", "profile", profile.ID, "tier", sub.Tier, "error", err)
		overview.PlanErr = err
		overview.WalletLimit = domain.WalletLimit{Current: len(snapshot.Wallets)}
		return overview
	}
	overview.WalletLimit = entitlements.WalletLimitFor(len(snapshot.Wallets))

	return overview
}

func (s *Service) displayCurrency(profile domain.Profile) string {
	if profile.Metadata.DisplayCurrency == "" && s.settings.DisplayCurrency != "" {
		return strings.ToUpper(strings.TrimSpace(s.settings.DisplayCurrency))
	}

	return profile.DisplayCurrency()
}

func ratesSource(snapshot *domain.RateSnapshot) RatesSource {
	if snapshot == nil || len(snapshot.Rates) == 0 {
		return RatesSourceStatic
	}

	return RatesSourceLive
}

// CheckWalletCreation answers whether one more wallet may be created.
// Unknown tiers surface as a *domain.ConfigError.
func (s *Service) CheckWalletCreation(ctx context.Context, q OverviewQuery) (domain.WalletLimit, error) {
	overview, err := s.GetOverview(ctx, q)
	if err != nil {
		return domain.WalletLimit{}, err
	}
	if overview.PlanErr != nil {
		return overview.WalletLimit, overview.PlanErr
	}
	if !overview.WalletLimit.CanCreate {
		return overview.WalletLimit, domain.ErrWalletLimitReached
	}

	return overview.WalletLimit, nil
}

func (s *Service) GetSummary(ctx context.Context, q SummaryQuery) (SummaryReport, error) {
	rangeKind := q.Range
	if !rangeKind.Valid() {
		rangeKind = domain.TimeRangeWeekly
	}
	weekStart := s.settings.WeekStart
	if q.WeekStart != nil {
		weekStart = *q.WeekStart
	}

	profile, cached, err := s.load(ctx, q.ID, q.Offline)
	if err != nil {
		return SummaryReport{}, err
	}

	now := s.clock.Now()
	overview := s.overviewFor(profile, now)
	buckets := domain.Buckets(rangeKind, now, weekStart)
	transactions := profile.Snapshot.Transactions

	grouped := domain.GroupTransactions(transactions, buckets, profile.Snapshot.Wallets, overview.Frozen, overview.DisplayCurrency, overview.Rates)

	start, end := domain.FetchRange(buckets, now)
	inRange := make([]domain.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx.Date.Before(start) || tx.Date.After(end) {
			continue
		}
		inRange = append(inRange, tx)
	}

	return SummaryReport{
		Profile:         profile,
		Range:           rangeKind,
		DisplayCurrency: overview.DisplayCurrency,
		Buckets:         grouped,
		Total:           domain.SummarizeTransactions(inRange, profile.Snapshot.Wallets, overview.Frozen, overview.DisplayCurrency, overview.Rates),
		FromCache:       cached,
	}, nil
}

// GetRates returns the rate table of the profile. With refresh set, the API
// is asked to recompute the table first.
func (s *Service) GetRates(ctx context.Context, id domain.ProfileID, refresh bool) (RatesReport, error) {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return RatesReport{}, fmt.Errorf("get profile by id: %w", err)
	}
	now := s.clock.Now()

	if refresh {
		creds, err := s.credentials(ctx, profile)
		if err != nil {
			return RatesReport{}, err
		}
		snapshot, err := s.api.RefreshFxRates(ctx, creds)
		if err != nil {
			return RatesReport{}, fmt.Errorf("refresh fx rates: %w", err)
		}
		if profile.Snapshot == nil {
			profile.Snapshot = &domain.AccountSnapshot{CapturedAt: now}
		}
		profile.Snapshot.Rates = &snapshot
		if err := s.repo.Save(ctx, profile); err != nil {
			return RatesReport{}, fmt.Errorf("save fx rates: %w", err)
		}
	}

	var current *domain.RateSnapshot
	if profile.Snapshot != nil {
		current = profile.Snapshot.Rates
	}

	report := RatesReport{
		Base:   domain.BaseCurrency,
		Rates:  domain.RatesOrStatic(current),
		Source: ratesSource(current),
	}
	if current != nil {
		report.UpdatedAt = current.UpdatedAt
		report.Stale = current.IsStale(now, s.settings.RatesMaxAge)
		if current.Base != "" {
			report.Base = current.Base
		}
	}

	return report, nil
}

// PrepareExport gathers the rows of a spreadsheet export. Only tiers with
// the export entitlement may export.
func (s *Service) PrepareExport(ctx context.Context, q OverviewQuery) (ExportData, error) {
	overview, err := s.GetOverview(ctx, q)
	if err != nil {
		return ExportData{}, err
	}
	if overview.PlanErr != nil {
		return ExportData{}, overview.PlanErr
	}
	if !overview.Entitlements.Limits.Export {
		return ExportData{}, fmt.Errorf("%w (effective tier %s)", domain.ErrExportNotAllowed, overview.Entitlements.EffectiveTier)
	}

	return ExportData{
		Overview:     overview,
		Transactions: overview.Profile.Snapshot.Transactions,
		GeneratedAt:  s.clock.Now(),
	}, nil
}

// ListCategories lists the categories of a profile, custom ones only when
// the effective tier has the custom categories entitlement.
func (s *Service) ListCategories(ctx context.Context, q CategoriesQuery) (CategoriesReport, error) {
	profile, err := s.repo.GetByID(ctx, q.ID)
	if err != nil {
		return CategoriesReport{}, fmt.Errorf("get profile by id: %w", err)
	}

	creds, err := s.credentials(ctx, profile)
	if err != nil {
		return CategoriesReport{}, err
	}

	user, err := s.api.Profile(ctx, creds)
	if err != nil {
		return CategoriesReport{}, fmt.Errorf("fetch profile: %w", err)
	}

	entitlements, err := domain.ResolveEntitlements(user.Subscription, s.clock.Now())
	if err != nil {
		return CategoriesReport{}, err
	}

	report := CategoriesReport{
		Profile:       profile,
		Entitlements:  entitlements,
		CustomAllowed: entitlements.Limits.CustomCategories,
	}
	if q.CustomOnly && !report.CustomAllowed {
		return CategoriesReport{}, fmt.Errorf("%w (effective tier %s)", domain.ErrCustomCategoriesNotAllowed, entitlements.EffectiveTier)
	}

	if !q.CustomOnly {
		report.Categories, err = s.api.Categories(ctx, creds)
		if err != nil {
			return CategoriesReport{}, fmt.Errorf("fetch categories: %w", err)
		}
	}

	if report.CustomAllowed {
		report.Custom, err = s.api.CustomCategories(ctx, creds)
		if err != nil {
			return CategoriesReport{}, fmt.Errorf("fetch custom categories: %w", err)
		}
	}

	return report, nil
}

// GetAnalytics breaks the snapshot transactions of the calendar year down by
// month and category. Only tiers with the analytics entitlement get it.
func (s *Service) GetAnalytics(ctx context.Context, q OverviewQuery) (AnalyticsReport, error) {
	profile, cached, err := s.load(ctx, q.ID, q.Offline)
	if err != nil {
		return AnalyticsReport{}, err
	}

	now := s.clock.Now()
	overview := s.overviewFor(profile, now)
	if overview.PlanErr != nil {
		return AnalyticsReport{}, overview.PlanErr
	}
	if !overview.Entitlements.Limits.Analytics {
		return AnalyticsReport{}, fmt.Errorf("%w (effective tier %s)", domain.ErrAnalyticsNotAllowed, overview.Entitlements.EffectiveTier)
	}

	buckets := domain.Buckets(domain.TimeRangeMonthly, now, s.settings.WeekStart)
	start, end := domain.FetchRange(buckets, now)
	snapshot := profile.Snapshot

	inRange := make([]domain.Transaction, 0, len(snapshot.Transactions))
	for _, tx := range snapshot.Transactions {
		if tx.Date.Before(start) || tx.Date.After(end) {
			continue
		}
		inRange = append(inRange, tx)
	}

	display := overview.DisplayCurrency
	totals := domain.TotalsByCategory(inRange, snapshot.Wallets, overview.Frozen, display, overview.Rates)

	return AnalyticsReport{
		Profile:         profile,
		DisplayCurrency: display,
		Months:          domain.GroupTransactions(inRange, buckets, snapshot.Wallets, overview.Frozen, display, overview.Rates),
		Expenses:        domain.FilterTotals(totals, domain.TransactionExpense),
		Income:          domain.FilterTotals(totals, domain.TransactionIncome),
		Total:           domain.SummarizeTransactions(inRange, snapshot.Wallets, overview.Frozen, display, overview.Rates),
		FromCache:       cached,
	}, nil
}

// ApplySubscriptionUpdate reacts to a pushed subscription change. The whole
// snapshot is refetched; if that fails the pushed tier is written onto the
// cached snapshot so gating still follows the new plan.
func (s *Service) ApplySubscriptionUpdate(ctx context.Context, id domain.ProfileID, update ports.SubscriptionUpdate) (Overview, error) {
	s.log.Info("subscription update received", "profile", id, "tier", update.Tier, "active", update.IsActive)

	profile, err := s.Refresh(ctx, id)
	if err != nil {
		s.log.Warn("refresh after subscription update failed", "profile", id, "error", err)

		cached, getErr := s.repo.GetByID(ctx, id)
		if getErr != nil {
			return Overview{}, fmt.Errorf("get profile by id: %w", getErr)
		}
		if cached.Snapshot == nil {
			return Overview{}, err
		}
		cached.Snapshot.User.Subscription.Tier = update.Tier
		cached.Snapshot.User.Subscription.IsActive = update.IsActive
		if update.Tier != domain.TierProTrial {
			cached.Snapshot.User.Subscription.End = domain.NeverExpires()
		}
		if saveErr := s.repo.Save(ctx, cached); saveErr != nil {
			return Overview{}, fmt.Errorf("save pushed subscription: %w", saveErr)
		}
		profile = cached
	}

	return s.overviewFor(profile, s.clock.Now()), nil
}

// Watch follows subscription events for a profile until ctx is cancelled,
// calling onChange with the re-evaluated overview after every event.
func (s *Service) Watch(ctx context.Context, id domain.ProfileID, events ports.SubscriptionEvents, onChange func(Overview) error) error {
	profile, _, err := s.load(ctx, id, false)
	if err != nil {
		return err
	}

	// The socket handshake joins the account room by user id.
	userID := strings.TrimSpace(profile.Snapshot.User.ID)
	if userID == "" {
		return fmt.Errorf("watch profile %s: %w", id, domain.ErrUserIDUnknown)
	}

	creds, err := s.credentials(ctx, profile)
	if err != nil {
		return err
	}

	if err := onChange(s.overviewFor(profile, s.clock.Now())); err != nil {
		return err
	}

	return events.Subscribe(ctx, creds, userID, func(update ports.SubscriptionUpdate) error {
		overview, err := s.ApplySubscriptionUpdate(ctx, id, update)
		if err != nil {
			return err
		}
		return onChange(overview)
	})
}
