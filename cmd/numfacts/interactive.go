package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"numfacts/cmd/numfacts/screen"
	"numfacts/cmd/numfacts/ui"
	"numfacts/internal/config"
	"numfacts/internal/facts"
	"numfacts/internal/logging"

	"go.uber.org/zap"
)

// runInteractive starts the full-screen fact screen.
func runInteractive() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := startLogging(cfg); err != nil {
		return err
	}
	defer func() { _ = logging.Sync() }()

	boot := logging.Get(logging.CategoryBoot)
	boot.Info("starting interactive screen",
		zap.String("endpoint", cfg.Service.Endpoint),
		zap.String("theme", cfg.UI.Theme),
	)

	reducer := facts.NewReducer(newService(cfg))
	opts := []screen.Option{
		screen.WithStyles(ui.NewStyles(ui.ThemeByName(cfg.UI.Theme))),
	}

	if w := startWatcher(ctx); w != nil {
		defer w.Stop()
		opts = append(opts, screen.WithConfigUpdates(w.Updates()))
	}

	m := screen.New(ctx, reducer, initialState(cfg), opts...)
	return screen.Run(ctx, m)
}

// startWatcher watches the config file for theme changes. A missing config
// directory just disables reloads.
func startWatcher(ctx context.Context) *config.Watcher {
	log := logging.Get(logging.CategoryConfig)

	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	w, err := config.NewWatcher(path, config.DefaultReloadDebounce)
	if err != nil {
		log.Debug("config reload disabled", zap.Error(err))
		return nil
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		log.Debug("config reload disabled", zap.Error(err))
		return nil
	}
	return w
}
