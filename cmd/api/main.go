package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/njprem/Glamoure_APP_BackEnd/internal/config"
	"github.com/njprem/Glamoure_APP_BackEnd/internal/logging"
	"github.com/njprem/Glamoure_APP_BackEnd/internal/repository/memory"
	"github.com/njprem/Glamoure_APP_BackEnd/internal/repository/ports"
	"github.com/njprem/Glamoure_APP_BackEnd/internal/repository/postgres"
	"github.com/njprem/Glamoure_APP_BackEnd/internal/service"
	transporthttp "github.com/njprem/Glamoure_APP_BackEnd/internal/transport/http"
	"github.com/njprem/Glamoure_APP_BackEnd/internal/transport/mail"
	"github.com/njprem/Glamoure_APP_BackEnd/internal/util"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run() error {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr, logging.WithMetadata("glamoure-api", cfg.AppEnv))
		if err != nil {
			log.Printf("Warning: logstash disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, writer))
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var (
		users     ports.UserRepository
		wardrobes ports.WardrobeRepository
	)
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		log.Printf("using in-memory storage, data is lost on restart")
		users = memory.NewUserRepo()
		wardrobes = memory.NewWardrobeRepo()
	default:
		db, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		users = postgres.NewUserRepo(db)
		wardrobes = postgres.NewWardrobeRepo(db)
	}

	var notifier service.PasswordResetNotifier
	if cfg.SMTPHost != "" {
		notifier = mail.NewPasswordResetMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, cfg.SMTPUseTLS, cfg.FrontendBaseURL)
	} else {
		log.Printf("Warning: SMTP_HOST not set, password reset emails will not be delivered")
	}
	if cfg.PasswordResetExposeSecrets {
		log.Printf("Warning: PASSWORD_RESET_EXPOSE_SECRETS is on, reset codes are returned when email delivery fails")
	}

	tokens := util.NewJWTManager(cfg.JWTSecret)
	authSvc := service.NewAuthService(users, tokens, cfg.SessionTTL, cfg.AdminEmail, cfg.GoogleAudience)
	resetSvc := service.NewPasswordResetService(users, tokens, notifier, service.PasswordResetConfig{
		LinkTTL:       cfg.PasswordResetTTL,
		VerifiedTTL:   cfg.PasswordResetVerifiedTTL,
		OTPLength:     cfg.PasswordResetOTPLength,
		NotifyTimeout: cfg.NotifyTimeout,
		ExposeSecrets: cfg.PasswordResetExposeSecrets,
	})
	adminSvc := service.NewAdminService(users, wardrobes)
	wardrobeSvc := service.NewWardrobeService(wardrobes)

	e := transporthttp.NewRouter(transporthttp.RouterOptions{AllowOrigins: cfg.AllowOrigins})
	transporthttp.RegisterAuth(e, authSvc, resetSvc)
	transporthttp.RegisterAdmin(e, authSvc, adminSvc)
	transporthttp.RegisterWardrobes(e, authSvc, wardrobeSvc)
	transporthttp.RegisterPages(e)
	transporthttp.RegisterSwagger(e, cfg.SwaggerSpecPath)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on :%s (env=%s, storage=%s)", cfg.Port, cfg.AppEnv, cfg.StorageDriver)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	return e.Shutdown(shutdownCtx)
}
