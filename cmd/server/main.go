package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vecino/alerts"
)

func main() {
	logger := &slogLogger{base: slog.New(slog.NewTextHandler(os.Stderr, nil))}

	if err := run(logger); err != nil {
		logger.Error("server exited: %v", err)
		os.Exit(1)
	}
}

func run(logger alerts.Logger) error {
	cfg, err := alerts.NewConfigFromEnv()
	if err != nil {
		return err
	}

	db, err := alerts.OpenDB(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	if err := alerts.RunMigrations(ctx, db); err != nil {
		return err
	}

	repo := alerts.NewRepositoryManager(db)
	repo.MustValidate()

	tokens := alerts.NewTokenService(cfg, logger)
	app := alerts.NewServer(cfg, repo, tokens, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening on %s", cfg.ListenAddr)
		errCh <- app.Listen(cfg.ListenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("received %s, shutting down", sig)
		return app.ShutdownWithTimeout(10 * time.Second)
	}
}

// slogLogger adapts the printf-style Logger interface onto slog.
type slogLogger struct {
	base *slog.Logger
}

func (l *slogLogger) Debug(format string, args ...any) {
	l.base.Debug(render(format, args...))
}

func (l *slogLogger) Info(format string, args ...any) {
	l.base.Info(render(format, args...))
}

func (l *slogLogger) Error(format string, args ...any) {
	l.base.Error(render(format, args...))
}

func render(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
