package weather

import "strings"

// Location describes the place a weather reading belongs to, as reported by
// the upstream API.
type Location struct {
	Name      string  `json:"name"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	TzID      string  `json:"tz_id"`
	Localtime string  `json:"localtime"`
}

// Condition is the textual/icon description of a weather state.
type Condition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
	Code int    `json:"code"`
}

// AirQuality carries pollutant concentrations plus the US EPA 1-6 category.
// A zero EPAIndex means no air quality data was reported.
type AirQuality struct {
	CO       float64 `json:"co"`
	NO2      float64 `json:"no2"`
	O3       float64 `json:"o3"`
	SO2      float64 `json:"so2"`
	PM25     float64 `json:"pm2_5"`
	PM10     float64 `json:"pm10"`
	EPAIndex int     `json:"us-epa-index"`
}

// Current holds current observed conditions.
type Current struct {
	LastUpdated string      `json:"last_updated"`
	TempC       float64     `json:"temp_c"`
	TempF       float64     `json:"temp_f"`
	IsDay       int         `json:"is_day"`
	Condition   Condition   `json:"condition"`
	WindKph     float64     `json:"wind_kph"`
	WindMph     float64     `json:"wind_mph"`
	WindDir     string      `json:"wind_dir"`
	PressureMb  float64     `json:"pressure_mb"`
	PrecipMm    float64     `json:"precip_mm"`
	Humidity    float64     `json:"humidity"`
	Cloud       float64     `json:"cloud"`
	FeelslikeC  float64     `json:"feelslike_c"`
	FeelslikeF  float64     `json:"feelslike_f"`
	VisKm       float64     `json:"vis_km"`
	UV          float64     `json:"uv"`
	GustKph     float64     `json:"gust_kph"`
	AirQuality  *AirQuality `json:"air_quality,omitempty"`
}

// Day summarizes a whole forecast or history day.
type Day struct {
	MaxtempC          float64   `json:"maxtemp_c"`
	MaxtempF          float64   `json:"maxtemp_f"`
	MintempC          float64   `json:"mintemp_c"`
	MintempF          float64   `json:"mintemp_f"`
	AvgtempC          float64   `json:"avgtemp_c"`
	MaxwindKph        float64   `json:"maxwind_kph"`
	TotalprecipMm     float64   `json:"totalprecip_mm"`
	Avghumidity       float64   `json:"avghumidity"`
	DailyChanceOfRain float64   `json:"daily_chance_of_rain"`
	DailyChanceOfSnow float64   `json:"daily_chance_of_snow"`
	Condition         Condition `json:"condition"`
	UV                float64   `json:"uv"`
}

// Astro holds per-day sun and moon data. Times are 12-hour clock strings
// like "06:30 AM"; MoonPhase is a name like "Waxing Crescent".
type Astro struct {
	Sunrise          string `json:"sunrise"`
	Sunset           string `json:"sunset"`
	Moonrise         string `json:"moonrise"`
	Moonset          string `json:"moonset"`
	MoonPhase        string `json:"moon_phase"`
	MoonIllumination string `json:"moon_illumination"`
}

// Hour is a single hourly reading within a forecast day.
type Hour struct {
	TimeEpoch    int64     `json:"time_epoch"`
	Time         string    `json:"time"`
	TempC        float64   `json:"temp_c"`
	TempF        float64   `json:"temp_f"`
	IsDay        int       `json:"is_day"`
	Condition    Condition `json:"condition"`
	WindKph      float64   `json:"wind_kph"`
	PrecipMm     float64   `json:"precip_mm"`
	Humidity     float64   `json:"humidity"`
	FeelslikeC   float64   `json:"feelslike_c"`
	ChanceOfRain float64   `json:"chance_of_rain"`
	UV           float64   `json:"uv"`
}

// ForecastDay is one day of forecast or history.
type ForecastDay struct {
	Date      string `json:"date"`
	DateEpoch int64  `json:"date_epoch"`
	Day       Day    `json:"day"`
	Astro     Astro  `json:"astro"`
	Hour      []Hour `json:"hour"`
}

// Forecast is the upstream forecast envelope.
type Forecast struct {
	ForecastDay []ForecastDay `json:"forecastday"`
}

// Alert is a severe weather alert as delivered by the upstream API.
// Timestamps are raw ISO-8601 strings; parsing and severity classification
// happen in the enrich package.
type Alert struct {
	Headline    string `json:"headline"`
	Event       string `json:"event"`
	Severity    string `json:"severity"`
	Urgency     string `json:"urgency"`
	Areas       string `json:"areas"`
	Desc        string `json:"desc"`
	Instruction string `json:"instruction"`
	Effective   string `json:"effective"`
	Expires     string `json:"expires"`
}

// Alerts is the upstream alerts envelope.
type Alerts struct {
	Alert []Alert `json:"alert"`
}

// Bundle is the assembled result of GetWeatherData: current conditions,
// multi-day forecast, alerts, and recent history. Optional sections are
// always present as empty (non-nil) containers so callers and templates can
// index them safely.
type Bundle struct {
	Location Location      `json:"location"`
	Current  Current       `json:"current"`
	Forecast Forecast      `json:"forecast"`
	Alerts   Alerts        `json:"alerts"`
	History  []ForecastDay `json:"history"`
}

// DetailedForecast extends a forecast with per-day astronomy and the hourly
// breakdown of the first forecast days.
type DetailedForecast struct {
	Location  Location       `json:"location"`
	Current   Current        `json:"current"`
	Forecast  Forecast       `json:"forecast"`
	Alerts    Alerts         `json:"alerts"`
	Astronomy []AstronomyDay `json:"astronomy"`
	Hourly    []HourlyDay    `json:"hourly"`
}

// AstronomyDay pairs a forecast date with its raw astro block.
type AstronomyDay struct {
	Date             string `json:"date"`
	Astro            Astro  `json:"astro"`
	MoonPhase        string `json:"moon_phase"`
	MoonIllumination string `json:"moon_illumination"`
}

// HourlyDay pairs a forecast date with its hour-by-hour readings.
type HourlyDay struct {
	Date  string `json:"date"`
	Hours []Hour `json:"hours"`
}

// HourlyForecast is a single day's hourly breakdown with its summary and
// astronomy, sourced from either the forecast or the history endpoint.
type HourlyForecast struct {
	Location   Location `json:"location"`
	Date       string   `json:"date"`
	Hourly     []Hour   `json:"hourly"`
	DaySummary Day      `json:"day_summary"`
	Astronomy  Astro    `json:"astronomy"`
}

// CurrentWeather is the current-conditions response for a location.
type CurrentWeather struct {
	Location Location `json:"location"`
	Current  Current  `json:"current"`
}

// IPInfo is the upstream IP geolocation response.
type IPInfo struct {
	IP          string  `json:"ip"`
	Type        string  `json:"type"`
	City        string  `json:"city"`
	Region      string  `json:"region"`
	CountryName string  `json:"country_name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	TzID        string  `json:"tz_id"`
}

// IPWeather pairs IP geolocation info with current weather for the resolved
// city. CurrentWeather is nil when the follow-up weather call failed; the
// geolocation result is still useful on its own.
type IPWeather struct {
	UserInfo       IPInfo          `json:"user_info"`
	CurrentWeather *CurrentWeather `json:"current_weather"`
}

// SearchResult is a single location-search match. Display is the
// comma-joined non-empty parts of name/region/country; Value is the
// canonical query term for follow-up calls.
type SearchResult struct {
	Name    string `json:"name"`
	Region  string `json:"region"`
	Country string `json:"country"`
	Display string `json:"display"`
	Value   string `json:"value"`
}

// NewSearchResult builds a SearchResult with its derived display string.
func NewSearchResult(name, region, country string) SearchResult {
	parts := make([]string, 0, 3)
	for _, p := range []string{name, region, country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return SearchResult{
		Name:    name,
		Region:  region,
		Country: country,
		Display: strings.Join(parts, ", "),
		Value:   name,
	}
}
