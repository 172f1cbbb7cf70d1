package enrich

import (
	"fmt"
	"strings"
	"time"

	"github.com/jwildes/weather-forecast-app/internal/weather"
)

// astronomyForecastDays caps the multi-day astronomy forecast.
const astronomyForecastDays = 5

var moonPhaseEmojis = map[string]string{
	"new moon":        "🌑",
	"waxing crescent": "🌒",
	"first quarter":   "🌓",
	"waxing gibbous":  "🌔",
	"full moon":       "🌕",
	"waning gibbous":  "🌖",
	"last quarter":    "🌗",
	"waning crescent": "🌘",
	"third quarter":   "🌗", // alias for last quarter
}

// MoonPhaseEmoji maps a moon phase name to its emoji, case-insensitively.
// Unrecognized phases get a generic moon glyph.
func MoonPhaseEmoji(phase string) string {
	if emoji, ok := moonPhaseEmojis[strings.ToLower(phase)]; ok {
		return emoji
	}
	return "🌙"
}

// DaylightDuration computes the time between sunrise and sunset, both given
// as 12-hour clock strings like "06:30 AM". A sunset that numerically
// precedes sunrise wraps past midnight. Missing or malformed times yield
// ok=false rather than an error.
func DaylightDuration(sunrise, sunset string) (string, bool) {
	if sunrise == "" || sunset == "" {
		return "", false
	}

	rise, err := time.Parse("03:04 PM", sunrise)
	if err != nil {
		return "", false
	}
	set, err := time.Parse("03:04 PM", sunset)
	if err != nil {
		return "", false
	}

	duration := set.Sub(rise)
	if duration < 0 {
		duration += 24 * time.Hour
	}

	hours := int(duration.Hours())
	minutes := int(duration.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", hours, minutes), true
}

// AstronomyInfo is the processed sun and moon summary for one day.
type AstronomyInfo struct {
	Date             string `json:"date"`
	IsCurrentDay     bool   `json:"is_current_day"`
	Sunrise          string `json:"sunrise"`
	Sunset           string `json:"sunset"`
	Moonrise         string `json:"moonrise"`
	Moonset          string `json:"moonset"`
	HasMoonrise      bool   `json:"has_moonrise"`
	HasMoonset       bool   `json:"has_moonset"`
	MoonPhase        string `json:"moon_phase"`
	MoonPhaseEmoji   string `json:"moon_phase_emoji"`
	MoonIllumination string `json:"moon_illumination"`
	DaylightDuration string `json:"daylight_duration,omitempty"`
}

// ProcessAstronomyDay derives the astronomy summary for a single forecast
// day.
func ProcessAstronomyDay(day weather.ForecastDay, isCurrentDay bool) AstronomyInfo {
	astro := day.Astro

	info := AstronomyInfo{
		Date:             day.Date,
		IsCurrentDay:     isCurrentDay,
		Sunrise:          astro.Sunrise,
		Sunset:           astro.Sunset,
		Moonrise:         astro.Moonrise,
		Moonset:          astro.Moonset,
		HasMoonrise:      astro.Moonrise != "" && strings.ToLower(astro.Moonrise) != "no moonrise",
		HasMoonset:       astro.Moonset != "" && strings.ToLower(astro.Moonset) != "no moonset",
		MoonPhase:        astro.MoonPhase,
		MoonPhaseEmoji:   MoonPhaseEmoji(astro.MoonPhase),
		MoonIllumination: astro.MoonIllumination,
	}

	if duration, ok := DaylightDuration(astro.Sunrise, astro.Sunset); ok {
		info.DaylightDuration = duration
	}

	return info
}

// AstronomyForecast walks the forecast days and returns their processed
// astronomy summaries. Days with an invalid date are skipped; the current
// day is included only when includeCurrentDay is set.
func AstronomyForecast(days []weather.ForecastDay, now time.Time, includeCurrentDay bool) []AstronomyInfo {
	today := now.Format("2006-01-02")

	result := make([]AstronomyInfo, 0, len(days))
	for _, day := range days {
		if _, err := time.Parse("2006-01-02", day.Date); err != nil {
			continue
		}
		isCurrentDay := day.Date == today
		if isCurrentDay && !includeCurrentDay {
			continue
		}
		result = append(result, ProcessAstronomyDay(day, isCurrentDay))
	}
	return result
}

// AstronomySummary holds today's astronomy plus the upcoming days.
type AstronomySummary struct {
	Today    *AstronomyInfo  `json:"today,omitempty"`
	Forecast []AstronomyInfo `json:"forecast"`
}

// SummarizeAstronomy extracts today's astronomy and a short multi-day
// astronomy forecast (current day excluded) from the forecast days.
func SummarizeAstronomy(days []weather.ForecastDay, now time.Time) AstronomySummary {
	summary := AstronomySummary{Forecast: []AstronomyInfo{}}

	all := AstronomyForecast(days, now, true)
	if len(all) > 0 {
		summary.Today = &all[0]
	}

	upcoming := AstronomyForecast(days, now, false)
	if len(upcoming) > astronomyForecastDays {
		upcoming = upcoming[:astronomyForecastDays]
	}
	summary.Forecast = upcoming

	return summary
}
