package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/supplysight/backend/internal/api/http"
	"github.com/supplysight/backend/internal/cache"
	"github.com/supplysight/backend/internal/config"
	"github.com/supplysight/backend/internal/dashboard"
	"github.com/supplysight/backend/internal/export"
	"github.com/supplysight/backend/internal/scheduler"
	"github.com/supplysight/backend/internal/store"
	"github.com/supplysight/backend/internal/weather"
	"github.com/supplysight/backend/internal/weather/providers"
)

// exportDelay simulates export-file generation time.
const exportDelay = 1500 * time.Millisecond

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Weather gateway: provider behind coordinate-keyed caches.
	provider := providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey)
	weatherCache := cache.New[weather.WeatherSnapshot](cfg.CacheDuration)
	forecastCache := cache.New[weather.ForecastSnapshot](cfg.CacheDuration)
	weatherSvc := weather.NewService(provider, weatherCache, forecastCache)

	// Business store and dashboard aggregation.
	memStore := store.NewMemoryStore()
	if cfg.SeedData {
		memStore.Seed()
	}
	dashboardSvc := dashboard.NewService(memStore)
	exportSvc := export.NewService(exportDelay)

	// Periodic cache sweep.
	sched := scheduler.New(cfg.CacheCleanupInterval)
	sched.Register("weather", weatherCache)
	sched.Register("forecast", forecastCache)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "supplysight",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "supplysight",
		})
	})

	httpapi.RegisterRoutes(app, httpapi.Deps{
		Weather:   weatherSvc,
		Store:     memStore,
		Dashboard: dashboardSvc,
		Export:    exportSvc,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
