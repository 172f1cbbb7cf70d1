package weather

import "context"

// Service abstracts a weather data source. A second provider can be
// substituted without touching callers.
//
// Operations never surface transport errors: an upstream failure or an
// unknown location is reported as a nil/empty result, matching the fact
// that "location not found" is an expected, frequent outcome. Partial
// results (e.g. some history days missing) are still successes.
type Service interface {
	// GetWeatherData returns current conditions, a 3-day forecast, alerts,
	// and up to 7 days of history. Nil when the location is unknown or the
	// forecast call fails.
	GetWeatherData(ctx context.Context, location string) *Bundle

	// ValidateLocation reports whether a location can be queried, with its
	// resolved info on success.
	ValidateLocation(ctx context.Context, location string) (bool, *Location)

	// SearchLocations returns up to limit matches for a partial query.
	// Queries shorter than 2 characters return an empty list without a
	// network call.
	SearchLocations(ctx context.Context, query string, limit int) []SearchResult

	// GetDetailedForecast returns an extended forecast with astronomy and
	// hourly data. Nil on failure.
	GetDetailedForecast(ctx context.Context, location string, days int) *DetailedForecast

	// GetHourlyForecast returns the hourly breakdown for one date
	// (YYYY-MM-DD), using the forecast endpoint for today-or-future dates
	// and the history endpoint for past ones. Nil on failure or an
	// unparseable date.
	GetHourlyForecast(ctx context.Context, location, date string) *HourlyForecast

	// GetCurrentLocationByIP resolves an IP address (empty means
	// auto-detect) to a location and fetches current weather for it.
	GetCurrentLocationByIP(ctx context.Context, ip string) *IPWeather

	// GetCurrentWeather returns only current conditions, air quality
	// included. Nil on failure.
	GetCurrentWeather(ctx context.Context, location string) *CurrentWeather

	// GetBulkWeather fetches weather for each location, keeping only the
	// successes in input order.
	GetBulkWeather(ctx context.Context, locations []string) []*Bundle
}
