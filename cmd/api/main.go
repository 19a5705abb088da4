package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/mslima/blog-core-go/internal/account"
	accountrepo "github.com/mslima/blog-core-go/internal/account/repo"
	"github.com/mslima/blog-core-go/internal/auth"
	"github.com/mslima/blog-core-go/internal/category"
	categoryrepo "github.com/mslima/blog-core-go/internal/category/repo"
	"github.com/mslima/blog-core-go/internal/config"
	"github.com/mslima/blog-core-go/internal/mail"
	"github.com/mslima/blog-core-go/internal/router"
	"github.com/mslima/blog-core-go/pkg/database"
	"github.com/mslima/blog-core-go/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	// this is best-effort: if no .env exists, continue (use defaults or real env)
	_ = godotenv.Load()

	// init logger
	lg, err := utilities.Init(utilities.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting blog-core-go")

	cfg := config.FromEnv()
	if cfg.JwtKey == "" {
		sugar.Fatal("JWT_KEY must be set")
	}

	// init db
	sqlDB, err := database.Connect(database.ConfigFromEnv())
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer sqlDB.Close()

	// wrap with sqlx for convenience in repos/services; shares the same
	// underlying *sql.DB, so the one Close above covers both
	sqlxDB := sqlx.NewDb(sqlDB, "postgres")

	accounts := accountrepo.NewAccountRepo(sqlxDB)
	categories := categoryrepo.NewCategoryRepo(sqlxDB)

	setupCtx, setupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer setupCancel()
	if err := accounts.EnsureTable(setupCtx); err != nil {
		sugar.Fatalf("ensure accounts table: %v", err)
	}
	if err := categories.EnsureTable(setupCtx); err != nil {
		sugar.Fatalf("ensure categories table: %v", err)
	}

	tokens := auth.NewTokenService(cfg.JwtKey, cfg.TokenTTL)
	gate := auth.NewGate(tokens, cfg.ApiKeyName, cfg.ApiKey, sugar)
	mailer := mail.FromConfig(&cfg)
	images := account.NewDiskImageStore(cfg.ImageDir)

	accountSvc := account.NewService(accounts, tokens, mailer, images, sugar)
	categorySvc := category.NewService(categories, cfg.CategoryCacheTTL)

	routes := router.Table(
		account.NewHandler(accountSvc, sugar),
		category.NewHandler(categorySvc, sugar),
	)
	handler := router.RegisterRoutes(sugar, gate, routes)

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler,
	}

	// run server in background
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	sugar.Infow("service is running", "addr", cfg.HTTPAddr)

	<-ctx.Done()

	sugar.Info("shutting down")

	// give a short grace period for cleanup
	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// ping db once more
	if err := sqlDB.PingContext(doneCtx); err != nil {
		sugar.Warnf("db ping on shutdown failed: %v", err)
	}

	// shutdown http server
	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
