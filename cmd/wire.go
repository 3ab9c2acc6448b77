package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/bnema/walletwise-cli/internal/adapters/api"
	"github.com/bnema/walletwise-cli/internal/adapters/events/socketio"
	"github.com/bnema/walletwise-cli/internal/adapters/render/overview"
	tomlrepo "github.com/bnema/walletwise-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/walletwise-cli/internal/adapters/secrets/chain"
	"github.com/bnema/walletwise-cli/internal/application"
	"github.com/bnema/walletwise-cli/internal/config"
	"github.com/bnema/walletwise-cli/internal/logger"
	"github.com/bnema/walletwise-cli/internal/ports"
)

type app struct {
	service          *application.Service
	cfg              config.Config
	log              *slog.Logger
	events           ports.SubscriptionEvents
	renderOverview   func([]application.Overview, overview.RenderOptions) (string, error)
	renderSummary    func(application.SummaryReport, overview.RenderOptions) (string, error)
	renderRates      func(application.RatesReport, overview.RenderOptions) (string, error)
	renderCategories func(application.CategoriesReport, overview.RenderOptions) (string, error)
	renderAnalytics  func(application.AnalyticsReport, overview.RenderOptions) (string, error)
	now              func() time.Time
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	v := config.New(homeDir)
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	weekStart, err := config.ParseWeekday(cfg.Display.WeekStart)
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg.Log.Level)

	repo, err := tomlrepo.NewRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire profile repository: %w", err)
	}

	secretStore, err := chainstore.NewCredentialStore(cfg.Secrets.Dir, chainstore.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	client := api.NewClient(&http.Client{Timeout: cfg.API.Timeout}, api.WithLogger(log))

	service := application.NewService(repo, secretStore, client, ports.SystemClock{},
		application.WithLogger(log),
		application.WithSettings(application.Settings{
			DefaultBaseURL:  cfg.API.BaseURL,
			DisplayCurrency: cfg.Display.Currency,
			RatesMaxAge:     cfg.Rates.MaxAge,
			WeekStart:       weekStart,
		}),
	)

	return &app{
		service:          service,
		cfg:              cfg,
		log:              log,
		events:           socketio.NewWatcher(socketio.WithLogger(log)),
		renderOverview:   overview.Render,
		renderSummary:    overview.RenderSummary,
		renderRates:      overview.RenderRates,
		renderCategories: overview.RenderCategories,
		renderAnalytics:  overview.RenderAnalytics,
		now:              time.Now,
	}, nil
}
