package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ichetanmittal/p2p-ios-backend/internal/app/migrate"
	"github.com/ichetanmittal/p2p-ios-backend/internal/config"
	httpx "github.com/ichetanmittal/p2p-ios-backend/internal/http"
	"github.com/ichetanmittal/p2p-ios-backend/internal/logger"
	"github.com/ichetanmittal/p2p-ios-backend/internal/notifier"
	"github.com/ichetanmittal/p2p-ios-backend/internal/repository/postgres"
	"github.com/ichetanmittal/p2p-ios-backend/internal/service/account"
)

func main() {
	cfg := config.Load()
	log := logger.New("api", slog.LevelInfo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	runner, err := migrate.New(pool, cfg.DatabaseURL, cfg.MigrationsDir, log)
	if err != nil {
		log.Error("failed to configure migrations", "error", err)
		os.Exit(1)
	}
	defer runner.Close()
	if err := runner.Ping(ctx); err != nil {
		log.Error("database ping failed", "error", err)
		os.Exit(1)
	}
	if err := runner.Ensure(ctx); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	repo := postgres.New(pool)

	var mailer notifier.Notifier
	switch cfg.MailerMode {
	case config.MailerModeSMTP:
		mailer = notifier.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom, cfg.VerificationCodeTTL)
		log.Info("using SMTP mailer", "host", cfg.SMTPHost)
	default:
		mailer = notifier.NewLogMailer(log, cfg.VerificationCodeTTL)
		log.Info("using log mailer")
	}

	accountSvc := account.New(repo, mailer, log, cfg)

	router := httpx.NewRouter(log, accountSvc, pool.Ping)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errorCh := make(chan error, 1)
	go func() {
		log.Info("api server starting", "addr", cfg.Addr)
		errorCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
		log.Info("api server stopped")
	case err := <-errorCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}
}
