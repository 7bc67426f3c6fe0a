package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/festivo/festivo-backend/api/routes"
	"github.com/festivo/festivo-backend/internal/catalog"
	"github.com/festivo/festivo-backend/internal/packages"
	"github.com/festivo/festivo-backend/internal/pricing"
	"github.com/festivo/festivo-backend/internal/recommend"
	"github.com/festivo/festivo-backend/internal/submit"
	"github.com/festivo/festivo-backend/internal/wizard"
	"github.com/festivo/festivo-backend/internal/wizard/drafts"
	"github.com/festivo/festivo-backend/internal/wizard/forms"
	"github.com/festivo/festivo-backend/pkg/config"
	"github.com/festivo/festivo-backend/pkg/logger"
	"github.com/festivo/festivo-backend/pkg/metrics"
	"github.com/festivo/festivo-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	recommendClient, err := recommend.NewClient(cfg.Recommendation)
	if err != nil {
		logg.Error(context.Background(), "failed to create recommendation client", err)
		os.Exit(1)
	}

	catalogClient, err := catalog.NewClient(cfg.Catalog)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog client", err)
		os.Exit(1)
	}

	submitClient, err := submit.NewClient(cfg.Submission)
	if err != nil {
		logg.Error(context.Background(), "failed to create submission client", err)
		os.Exit(1)
	}

	recommendMetrics := metrics.NewRecommendationMetrics(prometheus.DefaultRegisterer)

	fetcher, err := recommend.NewFetcher(recommendClient, recommendMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create recommendation fetcher", err)
		os.Exit(1)
	}

	packageService, err := packages.NewService(pricing.NewPolicy(cfg.Pricing), fetcher, packages.WithSnapshotCache(redisClient))
	if err != nil {
		logg.Error(context.Background(), "failed to create package service", err)
		os.Exit(1)
	}

	draftStore, err := drafts.NewStore(redisClient, cfg.Drafts)
	if err != nil {
		logg.Error(context.Background(), "failed to create draft store", err)
		os.Exit(1)
	}

	wizardService, err := wizard.NewService(forms.Factory, submitClient, draftStore)
	if err != nil {
		logg.Error(context.Background(), "failed to create wizard service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, redisClient, catalogClient, packageService, wizardService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
