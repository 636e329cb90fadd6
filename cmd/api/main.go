package main

import (
	"fmt"
	"log"
	"time"

	"wardrobeapi/controllers"
	"wardrobeapi/dbhelper"
	"wardrobeapi/services"
	"wardrobeapi/tasks"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	if services.GetEnv("JWT_SECRET", "") == "" {
		log.Fatal("JWT_SECRET environment variable is not set!")
	}
	logger := services.LoggerFromEnv()

	err := sentry.Init(sentry.ClientOptions{
		// empty DSN disables reporting
		Dsn:              services.GetEnv("SENTRY_DSN", ""),
		Environment:      services.GetEnv("ENV", "local"),
		Release:          "wardrobeapi@1.0.0",
		TracesSampleRate: 1.0,
	})
	if err != nil {
		log.Fatalf("sentry.Init: %s", err)
	}
	defer sentry.Recover()
	defer sentry.Flush(2 * time.Second)

	db := dbhelper.SetupDB()

	engine, err := services.LoadEngine(logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build outfit engine")
	}
	catalog, err := services.NewDBCatalogCache(db, services.GetEnvDuration("CATALOG_CACHE_TTL", services.DefaultCatalogTTL), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize catalog cache")
	}

	var enqueuer tasks.Enqueuer
	if addr := services.GetEnv("ASYNC_BROKER_ADDRESS", ""); addr != "" {
		asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: addr})
		defer asynqClient.Close()
		enqueuer = asynqClient
	} else {
		logger.Warn().Msg("ASYNC_BROKER_ADDRESS not set, wear counts are updated inline")
	}

	e := controllers.SetupServer(db, engine, catalog, enqueuer, logger)
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))

	addr := fmt.Sprintf(":%s", services.GetEnv("PORT", "8083"))
	logger.Info().Str("addr", addr).Msg("starting api")
	e.Logger.Fatal(e.Start(addr))
}
