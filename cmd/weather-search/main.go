package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/weather-search/internal/api/http"
	"github.com/i474232898/weather-search/internal/config"
	"github.com/i474232898/weather-search/internal/metrics"
	"github.com/i474232898/weather-search/internal/scheduler"
	"github.com/i474232898/weather-search/internal/search"
	"github.com/i474232898/weather-search/internal/store"
	"github.com/i474232898/weather-search/internal/weather"
	"github.com/i474232898/weather-search/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	places, err := search.LoadPlaces(cfg.PlacesFile)
	if err != nil {
		log.Fatalf("failed to load places: %v", err)
	}

	recorder := metrics.NewPrometheusRecorder()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provider := newProvider(cfg, providers.HTTPClientConfig{
		Client:  httpClient,
		Observe: recorder.ObserveProvider,
	})
	log.Printf("INFO: using weather provider %s", provider.Name())

	// Process-wide recent searches; reset on restart.
	recent := store.NewRecentSearches(store.DefaultMaxRecent)

	merger := search.NewMerger(places, provider, recorder)
	coordinator := search.NewCoordinator(provider, recent, recorder)
	session := search.NewSession(merger, coordinator, recent, search.RealClock{}, cfg.DebounceDelay)

	// Optional periodic refresh of the displayed place.
	sched := scheduler.New(cfg.RefreshInterval, coordinator)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-search",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  "weather-search",
			"provider": provider.Name(),
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(recorder.Handler()))

	// API routes.
	httpapi.RegisterRoutes(app, merger, session)

	go func() {
		log.Printf("INFO: listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

func newProvider(cfg *config.AppConfig, httpCfg providers.HTTPClientConfig) weather.Provider {
	if cfg.Provider == config.ProviderWeatherAPI {
		return providers.NewWeatherAPIProvider(httpCfg, providers.WeatherAPIConfig{
			APIKey:  cfg.WeatherAPIKey,
			BaseURL: cfg.WeatherAPIBaseURL,
			Lang:    cfg.WeatherAPILang,
		})
	}
	return providers.NewOpenWeatherProvider(httpCfg, providers.OpenWeatherConfig{
		APIKey:  cfg.OpenWeatherAPIKey,
		BaseURL: cfg.OpenWeatherBaseURL,
		Units:   cfg.OpenWeatherUnits,
		Lang:    cfg.OpenWeatherLang,
	})
}
