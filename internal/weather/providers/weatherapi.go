package providers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/jwildes/weather-forecast-app/internal/cache"
	"github.com/jwildes/weather-forecast-app/internal/metrics"
	"github.com/jwildes/weather-forecast-app/internal/weather"
)

// Cache defaults. Weather-class data changes quickly, locations barely at
// all, searches somewhere in between.
const (
	defaultWeatherCacheSize = 100
	defaultWeatherCacheTTL  = 5 * time.Minute

	defaultLocationCacheSize = 200
	defaultLocationCacheTTL  = time.Hour

	defaultSearchCacheSize = 100
	defaultSearchCacheTTL  = 10 * time.Minute
)

const (
	defaultBaseURL      = "http://api.weatherapi.com/v1"
	defaultFallbackCity = "London"

	// hourlyForecastDays limits how many forecast days carry an hourly
	// breakdown in a detailed forecast.
	hourlyForecastDays = 3

	historyDays = 7
)

// Config holds the construction parameters for a WeatherAPIProvider. Zero
// values fall back to sensible defaults.
type Config struct {
	APIKey  string
	BaseURL string

	HTTPClient *http.Client

	// FallbackCity is used when IP geolocation resolves to no city.
	FallbackCity string

	WeatherCacheSize  int
	WeatherCacheTTL   time.Duration
	LocationCacheSize int
	LocationCacheTTL  time.Duration
	SearchCacheSize   int
	SearchCacheTTL    time.Duration

	Metrics *metrics.Collector

	// Now supplies the wall clock; tests pin it.
	Now func() time.Time
}

// WeatherAPIProvider implements weather.Service against WeatherAPI.com.
// Each operation keeps its own bounded response cache so a key collision
// across operations cannot occur.
type WeatherAPIProvider struct {
	apiKey       string
	baseURL      string
	client       *http.Client
	circuit      *gobreaker.CircuitBreaker
	fallbackCity string
	metrics      *metrics.Collector
	now          func() time.Time

	weatherCache  *cache.Cache[*weather.Bundle]
	forecastCache *cache.Cache[*weather.DetailedForecast]
	locationCache *cache.Cache[*weather.Location]
	searchCache   *cache.Cache[[]weather.SearchResult]
	hourlyCache   *cache.Cache[*weather.HourlyForecast]
	currentCache  *cache.Cache[*weather.CurrentWeather]
}

// NewWeatherAPIProvider creates a provider with its caches. One instance is
// expected per process so the cache set lives for the process lifetime.
func NewWeatherAPIProvider(cfg Config) *WeatherAPIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.FallbackCity == "" {
		cfg.FallbackCity = defaultFallbackCity
	}
	if cfg.WeatherCacheSize <= 0 {
		cfg.WeatherCacheSize = defaultWeatherCacheSize
	}
	if cfg.WeatherCacheTTL <= 0 {
		cfg.WeatherCacheTTL = defaultWeatherCacheTTL
	}
	if cfg.LocationCacheSize <= 0 {
		cfg.LocationCacheSize = defaultLocationCacheSize
	}
	if cfg.LocationCacheTTL <= 0 {
		cfg.LocationCacheTTL = defaultLocationCacheTTL
	}
	if cfg.SearchCacheSize <= 0 {
		cfg.SearchCacheSize = defaultSearchCacheSize
	}
	if cfg.SearchCacheTTL <= 0 {
		cfg.SearchCacheTTL = defaultSearchCacheTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weatherapi",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &WeatherAPIProvider{
		apiKey:       cfg.APIKey,
		baseURL:      cfg.BaseURL,
		client:       cfg.HTTPClient,
		circuit:      cb,
		fallbackCity: cfg.FallbackCity,
		metrics:      cfg.Metrics,
		now:          cfg.Now,

		weatherCache:  cache.New[*weather.Bundle](cfg.WeatherCacheSize, cfg.WeatherCacheTTL),
		forecastCache: cache.New[*weather.DetailedForecast](cfg.WeatherCacheSize, cfg.WeatherCacheTTL),
		locationCache: cache.New[*weather.Location](cfg.LocationCacheSize, cfg.LocationCacheTTL),
		searchCache:   cache.New[[]weather.SearchResult](cfg.SearchCacheSize, cfg.SearchCacheTTL),
		hourlyCache:   cache.New[*weather.HourlyForecast](cfg.WeatherCacheSize, cfg.WeatherCacheTTL),
		currentCache:  cache.New[*weather.CurrentWeather](cfg.WeatherCacheSize, cfg.WeatherCacheTTL),
	}
}

// apiEnvelope matches the envelope shared by the forecast, history and
// current endpoints. Absent sections decode to zero values.
type apiEnvelope struct {
	Location weather.Location `json:"location"`
	Current  weather.Current  `json:"current"`
	Forecast weather.Forecast `json:"forecast"`
	Alerts   weather.Alerts   `json:"alerts"`
}

// request performs one upstream call, recording metrics for it. The
// (nil, nil) return means upstream reported the location as not found.
func (p *WeatherAPIProvider) request(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	start := time.Now()
	body, err := doRequest(ctx, p.client, p.circuit, p.apiKey, p.baseURL, endpoint, params)

	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case body == nil:
		outcome = "not_found"
	}
	p.metrics.ObserveUpstream(endpoint, outcome, time.Since(start))

	return body, err
}

// GetWeatherData returns current weather, a 3-day forecast, alerts, and up
// to 7 days of history for a location. Nil when the forecast call fails or
// the location is unknown. Failed individual history days are skipped.
func (p *WeatherAPIProvider) GetWeatherData(ctx context.Context, location string) *weather.Bundle {
	key := cache.Key("weather", location)
	if b, ok := p.weatherCache.Get(key); ok {
		p.metrics.CacheHit("weather")
		return b
	}
	p.metrics.CacheMiss("weather")

	body, err := p.request(ctx, "forecast.json", url.Values{
		"q":      {location},
		"days":   {"3"},
		"aqi":    {"yes"},
		"alerts": {"yes"},
	})
	if err != nil {
		log.Printf("weatherapi: forecast fetch failed for %q: %v", location, err)
		return nil
	}
	if body == nil {
		return nil
	}

	var env apiEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		log.Printf("weatherapi: forecast decode failed for %q: %v", location, err)
		return nil
	}

	bundle := &weather.Bundle{
		Location: env.Location,
		Current:  env.Current,
		Forecast: env.Forecast,
		Alerts:   env.Alerts,
		History:  p.fetchHistory(ctx, location, historyDays),
	}
	ensureBundleSections(bundle)

	p.weatherCache.Put(key, bundle)
	return bundle
}

// fetchHistory fetches single-day history for the past days days, newest
// first. A failing day is skipped, not fatal, so the list may be partial.
func (p *WeatherAPIProvider) fetchHistory(ctx context.Context, location string, days int) []weather.ForecastDay {
	history := make([]weather.ForecastDay, 0, days)
	for i := 1; i <= days; i++ {
		date := p.now().AddDate(0, 0, -i).Format("2006-01-02")

		body, err := p.request(ctx, "history.json", url.Values{
			"q":  {location},
			"dt": {date},
		})
		if err != nil {
			log.Printf("weatherapi: history fetch failed for %q on %s: %v", location, date, err)
			continue
		}
		if body == nil {
			continue
		}

		var env apiEnvelope
		if err := json.Unmarshal(body, &env); err != nil {
			log.Printf("weatherapi: history decode failed for %q on %s: %v", location, date, err)
			continue
		}
		if len(env.Forecast.ForecastDay) == 0 {
			continue
		}
		history = append(history, env.Forecast.ForecastDay[0])
	}
	return history
}

// ValidateLocation checks whether a location can be queried. Negative
// results are never cached so a momentarily-invalid query does not stick.
func (p *WeatherAPIProvider) ValidateLocation(ctx context.Context, location string) (bool, *weather.Location) {
	key := cache.Key("validate", location)
	if loc, ok := p.locationCache.Get(key); ok {
		p.metrics.CacheHit("location")
		return true, loc
	}
	p.metrics.CacheMiss("location")

	body, err := p.request(ctx, "current.json", url.Values{"q": {location}})
	if err != nil {
		log.Printf("weatherapi: validation failed for %q: %v", location, err)
		return false, nil
	}
	if body == nil {
		return false, nil
	}

	var env apiEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		log.Printf("weatherapi: validation decode failed for %q: %v", location, err)
		return false, nil
	}

	loc := env.Location
	p.locationCache.Put(key, &loc)
	return true, &loc
}

type searchItem struct {
	Name    string `json:"name"`
	Region  string `json:"region"`
	Country string `json:"country"`
}

// SearchLocations returns up to limit matches for a partial query. Queries
// shorter than 2 characters short-circuit without a network call.
func (p *WeatherAPIProvider) SearchLocations(ctx context.Context, query string, limit int) []weather.SearchResult {
	if len(strings.TrimSpace(query)) < 2 {
		return []weather.SearchResult{}
	}

	key := cache.Key("search", query, strconv.Itoa(limit))
	if results, ok := p.searchCache.Get(key); ok {
		p.metrics.CacheHit("search")
		return results
	}
	p.metrics.CacheMiss("search")

	body, err := p.request(ctx, "search.json", url.Values{"q": {query}})
	if err != nil {
		log.Printf("weatherapi: search failed for %q: %v", query, err)
		return []weather.SearchResult{}
	}
	if body == nil {
		return []weather.SearchResult{}
	}

	var items []searchItem
	if err := json.Unmarshal(body, &items); err != nil {
		log.Printf("weatherapi: search decode failed for %q: %v", query, err)
		return []weather.SearchResult{}
	}

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	results := make([]weather.SearchResult, 0, len(items))
	for _, item := range items {
		results = append(results, weather.NewSearchResult(item.Name, item.Region, item.Country))
	}

	// Empty result sets are not cached.
	if len(results) > 0 {
		p.searchCache.Put(key, results)
	}
	return results
}

// GetDetailedForecast returns an extended forecast with a per-day astronomy
// list and the hourly breakdown of the first days.
func (p *WeatherAPIProvider) GetDetailedForecast(ctx context.Context, location string, days int) *weather.DetailedForecast {
	if days <= 0 {
		days = 10
	}

	key := cache.Key("detailed", location, strconv.Itoa(days))
	if f, ok := p.forecastCache.Get(key); ok {
		p.metrics.CacheHit("forecast")
		return f
	}
	p.metrics.CacheMiss("forecast")

	body, err := p.request(ctx, "forecast.json", url.Values{
		"q":      {location},
		"days":   {strconv.Itoa(days)},
		"aqi":    {"yes"},
		"alerts": {"yes"},
	})
	if err != nil {
		log.Printf("weatherapi: detailed forecast fetch failed for %q: %v", location, err)
		return nil
	}
	if body == nil {
		return nil
	}

	var env apiEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		log.Printf("weatherapi: detailed forecast decode failed for %q: %v", location, err)
		return nil
	}

	astronomy := make([]weather.AstronomyDay, 0, len(env.Forecast.ForecastDay))
	hourly := make([]weather.HourlyDay, 0, hourlyForecastDays)
	for _, day := range env.Forecast.ForecastDay {
		astronomy = append(astronomy, weather.AstronomyDay{
			Date:             day.Date,
			Astro:            day.Astro,
			MoonPhase:        day.Astro.MoonPhase,
			MoonIllumination: day.Astro.MoonIllumination,
		})
		if len(hourly) < hourlyForecastDays {
			hours := day.Hour
			if hours == nil {
				hours = []weather.Hour{}
			}
			hourly = append(hourly, weather.HourlyDay{Date: day.Date, Hours: hours})
		}
	}

	result := &weather.DetailedForecast{
		Location:  env.Location,
		Current:   env.Current,
		Forecast:  env.Forecast,
		Alerts:    env.Alerts,
		Astronomy: astronomy,
		Hourly:    hourly,
	}
	if result.Forecast.ForecastDay == nil {
		result.Forecast.ForecastDay = []weather.ForecastDay{}
	}
	if result.Alerts.Alert == nil {
		result.Alerts.Alert = []weather.Alert{}
	}

	p.forecastCache.Put(key, result)
	return result
}

// GetHourlyForecast returns the hourly breakdown for one date, using the
// forecast endpoint for today-or-future dates and the history endpoint for
// strictly past ones.
func (p *WeatherAPIProvider) GetHourlyForecast(ctx context.Context, location, date string) *weather.HourlyForecast {
	key := cache.Key("hourly", location, date)
	if f, ok := p.hourlyCache.Get(key); ok {
		p.metrics.CacheHit("hourly")
		return f
	}
	p.metrics.CacheMiss("hourly")

	target, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil
	}

	now := p.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	endpoint := "forecast.json"
	if target.Before(today) {
		endpoint = "history.json"
	}

	body, err := p.request(ctx, endpoint, url.Values{
		"q":  {location},
		"dt": {date},
	})
	if err != nil {
		log.Printf("weatherapi: hourly fetch failed for %q on %s: %v", location, date, err)
		return nil
	}
	if body == nil {
		return nil
	}

	var env apiEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		log.Printf("weatherapi: hourly decode failed for %q on %s: %v", location, date, err)
		return nil
	}

	var day weather.ForecastDay
	if len(env.Forecast.ForecastDay) > 0 {
		day = env.Forecast.ForecastDay[0]
	}
	hours := day.Hour
	if hours == nil {
		hours = []weather.Hour{}
	}

	result := &weather.HourlyForecast{
		Location:   env.Location,
		Date:       date,
		Hourly:     hours,
		DaySummary: day.Day,
		Astronomy:  day.Astro,
	}

	p.hourlyCache.Put(key, result)
	return result
}

// GetCurrentLocationByIP resolves an IP address to a location and fetches
// current weather for the detected city. An empty ip means auto-detection
// via the upstream's sentinel query. The weather sub-call failing degrades
// to a nil CurrentWeather field, not overall failure.
func (p *WeatherAPIProvider) GetCurrentLocationByIP(ctx context.Context, ip string) *weather.IPWeather {
	query := ip
	if query == "" {
		query = "auto:ip"
	}

	body, err := p.request(ctx, "ip.json", url.Values{"q": {query}})
	if err != nil {
		log.Printf("weatherapi: ip lookup failed for %q: %v", query, err)
		return nil
	}
	if body == nil {
		return nil
	}

	var info weather.IPInfo
	if err := json.Unmarshal(body, &info); err != nil {
		log.Printf("weatherapi: ip decode failed for %q: %v", query, err)
		return nil
	}

	city := info.City
	if city == "" {
		city = p.fallbackCity
	}

	result := &weather.IPWeather{UserInfo: info}
	if cw := p.GetCurrentWeather(ctx, city); cw != nil {
		result.CurrentWeather = cw
	}
	return result
}

// GetCurrentWeather returns only current conditions, air quality included.
func (p *WeatherAPIProvider) GetCurrentWeather(ctx context.Context, location string) *weather.CurrentWeather {
	key := cache.Key("current", location)
	if cw, ok := p.currentCache.Get(key); ok {
		p.metrics.CacheHit("current")
		return cw
	}
	p.metrics.CacheMiss("current")

	body, err := p.request(ctx, "current.json", url.Values{
		"q":   {location},
		"aqi": {"yes"},
	})
	if err != nil {
		log.Printf("weatherapi: current fetch failed for %q: %v", location, err)
		return nil
	}
	if body == nil {
		return nil
	}

	var env apiEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		log.Printf("weatherapi: current decode failed for %q: %v", location, err)
		return nil
	}

	result := &weather.CurrentWeather{Location: env.Location, Current: env.Current}
	p.currentCache.Put(key, result)
	return result
}

// GetBulkWeather fetches weather for each location sequentially, keeping
// only the successes in input order.
func (p *WeatherAPIProvider) GetBulkWeather(ctx context.Context, locations []string) []*weather.Bundle {
	results := make([]*weather.Bundle, 0, len(locations))
	for _, location := range locations {
		if b := p.GetWeatherData(ctx, location); b != nil {
			results = append(results, b)
		}
	}
	return results
}

// ensureBundleSections replaces nil optional sections with empty containers
// so callers may index them safely.
func ensureBundleSections(b *weather.Bundle) {
	if b.Forecast.ForecastDay == nil {
		b.Forecast.ForecastDay = []weather.ForecastDay{}
	}
	if b.Alerts.Alert == nil {
		b.Alerts.Alert = []weather.Alert{}
	}
	if b.History == nil {
		b.History = []weather.ForecastDay{}
	}
}

var _ weather.Service = (*WeatherAPIProvider)(nil)
