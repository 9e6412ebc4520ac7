package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"subtrack/src/client"
	"subtrack/src/config"
	"subtrack/src/tui"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "dashboard:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadDashboard()
	if err != nil {
		return err
	}

	logger, err := newFileLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	api := client.New(cfg.API.URL,
		client.WithHTTPClient(&http.Client{Timeout: cfg.HTTP.Timeout}),
		client.WithToken(cfg.API.Token),
	)
	nav := &client.FileNavigator{Client: api, Dir: cfg.Export.Dir}
	app := tui.NewApp(api, nav, logger)
	nav.Saved = func(path string) {
		logger.Info("export saved", zap.String("path", path))
		app.Status("Export saved to " + path)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("dashboard starting", zap.String("api", cfg.API.URL))
	return app.Run(ctx)
}

// newFileLogger keeps log output off the terminal the dashboard draws on.
func newFileLogger(lc config.LogConfig) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{lc.Path}
	zc.ErrorOutputPaths = []string{lc.Path}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zc.Build()
}
