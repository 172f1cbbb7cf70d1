package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/jwildes/weather-forecast-app/internal/api/http"
	"github.com/jwildes/weather-forecast-app/internal/chat"
	"github.com/jwildes/weather-forecast-app/internal/config"
	"github.com/jwildes/weather-forecast-app/internal/metrics"
	"github.com/jwildes/weather-forecast-app/internal/scheduler"
	"github.com/jwildes/weather-forecast-app/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Metrics registry shared by the provider, the chat proxy and /metrics.
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector("weather_forecast_app", registry)

	// Shared HTTP client for outbound upstream calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	service := providers.NewWeatherAPIProvider(providers.Config{
		APIKey:            cfg.WeatherAPIKey,
		BaseURL:           cfg.WeatherBaseURL,
		HTTPClient:        httpClient,
		FallbackCity:      cfg.IPFallbackCity,
		WeatherCacheSize:  cfg.WeatherCacheSize,
		WeatherCacheTTL:   cfg.WeatherCacheTTL,
		LocationCacheSize: cfg.LocationCacheSize,
		LocationCacheTTL:  cfg.LocationCacheTTL,
		SearchCacheSize:   cfg.SearchCacheSize,
		SearchCacheTTL:    cfg.SearchCacheTTL,
		Metrics:           collector,
	})

	chatClient := chat.NewClient(chat.Config{
		APIKey:     cfg.ChatAPIKey,
		Endpoint:   cfg.ChatEndpoint,
		Deployment: cfg.ChatDeployment,
		APIVersion: cfg.ChatAPIVersion,
		Timeout:    cfg.ChatTimeout,
		Metrics:    collector,
	})
	if !chatClient.Configured() {
		log.Println("INFO: chat credentials not configured; chat requests will return errors")
	}

	// Scheduler that keeps configured locations warm in the cache.
	sched := scheduler.New(cfg.RefreshLocations, cfg.RefreshInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-forecast-app",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          120 * time.Second,
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
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	httpapi.RegisterRoutes(app, httpapi.Deps{
		Service:    service,
		Chat:       chatClient,
		DefaultZip: cfg.DefaultZip,
	})

	go func() {
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
