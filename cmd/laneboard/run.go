package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/laneboard/internal/app"
	"github.com/riordanpawley/laneboard/internal/config"
	"github.com/riordanpawley/laneboard/internal/controller"
	"github.com/riordanpawley/laneboard/internal/metrics"
	"github.com/riordanpawley/laneboard/internal/services/aggregate"
	"github.com/riordanpawley/laneboard/internal/services/boardconfig"
	"github.com/riordanpawley/laneboard/internal/services/catalog"
	"github.com/riordanpawley/laneboard/internal/services/host"
	"github.com/riordanpawley/laneboard/internal/services/metadata"
	"github.com/riordanpawley/laneboard/internal/services/network"
	"github.com/riordanpawley/laneboard/internal/services/webapi"
	"github.com/riordanpawley/laneboard/internal/store"
)

func runBoard(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if metricsAddr != "" {
		cfg.Metrics.Addr = metricsAddr
	}

	logOut, err := openLogFile(cfg.Logging.File)
	if err != nil {
		return err
	}
	defer logOut.Close()
	logger := newLogger(logOut, cfg.Logging.Level, debug)

	m := metrics.New()
	if cfg.Metrics.Addr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.Metrics.Addr, logger); err != nil {
				logger.Error("metrics endpoint stopped", "error", err)
			}
		}()
	}

	ctrl := newController(ctx, cfg, m, logger)

	logger.Info("starting laneboard", "version", version, "org", cfg.WebAPI.BaseURL)
	model := app.New(ctx, ctrl, logger.With("component", "app")).
		WithConnectivity(network.NewStatusChecker(cfg.WebAPI.BaseURL))
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("running board: %w", err)
	}
	return nil
}

// newController wires the Web API client and the board services
func newController(ctx context.Context, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) *controller.Controller {
	httpClient := webapi.NewHTTPClient(ctx, cfg.WebAPI.BaseURL, webapi.AuthOptions{
		TenantID:     cfg.WebAPI.TenantID,
		ClientID:     cfg.WebAPI.ClientID,
		ClientSecret: cfg.WebAPI.ClientSecret,
		Token:        cfg.WebAPI.Token,
	}, cfg.WebAPI.Timeout(), m.InstrumentRoundTripper)

	client := webapi.NewClient(httpClient, webapi.Options{
		BaseURL:        cfg.WebAPI.BaseURL,
		APIVersion:     cfg.WebAPI.APIVersion,
		EntitySetNames: cfg.WebAPI.EntitySetNames,
		RateLimit:      cfg.WebAPI.RateLimit,
		Burst:          cfg.WebAPI.Burst,
	}, logger.With("component", "webapi"))

	return controller.New(controller.Deps{
		Store: store.New(logger.With("component", "store")),
		Host: host.NewBrowserHost(client, &host.ExecRunner{}, host.Options{
			OrgURL: cfg.WebAPI.BaseURL,
			AppID:  cfg.Session.AppID,
			UserID: cfg.Session.UserID,
			Opener: cfg.Session.Opener,
		}, logger.With("component", "host")),
		Loader:         boardconfig.NewLoader(client, cfg.Board.UserConfigAttribute, logger.With("component", "boardconfig")),
		Resolver:       metadata.NewResolver(client, logger.With("component", "metadata")),
		Catalog:        catalog.NewCatalog(client, logger.With("component", "catalog")),
		Aggregator:     aggregate.NewAggregator(client, m, logger.With("component", "aggregate")),
		Metrics:        m,
		StateAttribute: cfg.Board.StateAttribute,
	}, logger.With("component", "controller"))
}

// openLogFile opens the log file for appending. The terminal belongs to the
// board, so logs never go to stdout.
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

func newLogger(w io.Writer, level string, debug bool) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level, debug)}))
}

func parseLevel(level string, debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
