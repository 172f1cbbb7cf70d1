package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig is the process-wide configuration, read once at startup.
type AppConfig struct {
	// WeatherAPIKey authenticates against the upstream weather API. An
	// empty key makes weather operations fail cleanly instead of crashing.
	WeatherAPIKey string

	// WeatherBaseURL overrides the upstream base URL, mainly for tests.
	WeatherBaseURL string

	// HTTPTimeout bounds each outbound upstream call.
	HTTPTimeout time.Duration

	// Cache sizing. Weather-class data is small and short-lived, location
	// data larger and long-lived, search data in between.
	WeatherCacheSize  int
	WeatherCacheTTL   time.Duration
	LocationCacheSize int
	LocationCacheTTL  time.Duration
	SearchCacheSize   int
	SearchCacheTTL    time.Duration

	// DefaultZip serves forecast requests that carry no location.
	DefaultZip string

	// IPFallbackCity is used when IP geolocation resolves to no city.
	IPFallbackCity string

	// RefreshLocations are kept warm in the cache by the background job;
	// empty means no job is scheduled.
	RefreshLocations []string
	RefreshInterval  time.Duration

	// Chat proxy credentials. Absence disables the chat feature without
	// affecting weather operations.
	ChatAPIKey     string
	ChatEndpoint   string
	ChatDeployment string
	ChatAPIVersion string
	ChatTimeout    time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.WeatherAPIKey = os.Getenv("WEATHER_API_KEY")
	cfg.WeatherBaseURL = getenvDefault("WEATHER_API_BASE_URL", "http://api.weatherapi.com/v1")

	timeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	cfg.WeatherCacheSize = getenvInt("WEATHER_CACHE_SIZE", 100)
	cfg.LocationCacheSize = getenvInt("LOCATION_CACHE_SIZE", 200)
	cfg.SearchCacheSize = getenvInt("SEARCH_CACHE_SIZE", 100)

	if cfg.WeatherCacheTTL, err = getenvDuration("WEATHER_CACHE_TTL", "5m"); err != nil {
		return nil, err
	}
	if cfg.LocationCacheTTL, err = getenvDuration("LOCATION_CACHE_TTL", "1h"); err != nil {
		return nil, err
	}
	if cfg.SearchCacheTTL, err = getenvDuration("SEARCH_CACHE_TTL", "10m"); err != nil {
		return nil, err
	}

	cfg.DefaultZip = os.Getenv("DEFAULT_ZIP_CODE")
	cfg.IPFallbackCity = getenvDefault("IP_FALLBACK_CITY", "London")

	if raw := os.Getenv("REFRESH_LOCATIONS"); raw != "" {
		for _, loc := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(loc); trimmed != "" {
				cfg.RefreshLocations = append(cfg.RefreshLocations, trimmed)
			}
		}
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "15m"); err != nil {
		return nil, err
	}

	cfg.ChatAPIKey = os.Getenv("AZURE_OPENAI_API_KEY")
	cfg.ChatEndpoint = os.Getenv("AZURE_OPENAI_ENDPOINT")
	cfg.ChatDeployment = os.Getenv("AZURE_OPENAI_DEPLOYMENT")
	cfg.ChatAPIVersion = getenvDefault("AZURE_OPENAI_API_VERSION", "2024-10-21")
	if cfg.ChatTimeout, err = getenvDuration("CHAT_TIMEOUT", "60s"); err != nil {
		return nil, err
	}

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	v := getenvDefault(key, def)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
