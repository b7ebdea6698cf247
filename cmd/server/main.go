// Server entrypoint: config, Postgres, Redis, migrations, router, graceful shutdown.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/marketbytes-devops/alameinmovers/internal/auth"
	"github.com/marketbytes-devops/alameinmovers/internal/config"
	"github.com/marketbytes-devops/alameinmovers/internal/db"
	"github.com/marketbytes-devops/alameinmovers/internal/enquiry"
	"github.com/marketbytes-devops/alameinmovers/internal/jobs"
	"github.com/marketbytes-devops/alameinmovers/internal/mailer"
	"github.com/marketbytes-devops/alameinmovers/internal/migrations"
	"github.com/marketbytes-devops/alameinmovers/internal/recaptcha"
	rds "github.com/marketbytes-devops/alameinmovers/internal/redis"
	"github.com/marketbytes-devops/alameinmovers/internal/router"
	"github.com/marketbytes-devops/alameinmovers/internal/security"
	"github.com/marketbytes-devops/alameinmovers/internal/users"
)

func main() {
	config.LoadDotEnvUp(8)

	logger, _ := zap.NewProduction()
	if os.Getenv("APP_ENV") == "local" {
		logger, _ = zap.NewDevelopment()
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}

	ctx := context.Background()

	pool, err := db.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal("postgres init failed", zap.Error(err))
	}
	defer pool.Close()

	if err := migrations.Up(cfg.Postgres.DSN); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	rdb, err := rds.New(cfg.Redis)
	if err != nil {
		logger.Fatal("redis init failed", zap.Error(err))
	}
	defer rds.Close(rdb)

	jwtm := security.NewJWTManager(cfg.Security.JWTSecret, cfg.Security.AccessTokenTTL, cfg.Security.RefreshTokenTTL)
	mail := mailer.New(cfg.Mail, cfg.App.PublicURL)
	usersRepo := users.NewRepo(pool)
	authSvc := auth.NewService(usersRepo, mail, jwtm, rdb,
		cfg.Security.OTPWindow, cfg.Security.OTPRequestsPerEmail, cfg.Security.OTPRequestWindow)

	deps := router.Dependencies{
		Cfg:           cfg,
		Redis:         rdb,
		AuthValidator: jwtm,
		AuthService:   authSvc,
		JobStore:      jobs.NewRepo(pool),
		EnquiryStore:  enquiry.NewRepo(pool),
		Mailer:        mail,
		Captcha:       recaptcha.New(cfg.Recaptcha),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router.New(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("http server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
