package enrich

import (
	"fmt"
	"time"

	"github.com/jwildes/weather-forecast-app/internal/weather"
)

var priorityLabels = [...]string{"Safe", "Caution", "Warning", "Danger"}

// SafetySummary reduces UV, air quality, and active alerts to a single
// ordinal priority with a list of human-readable concerns.
type SafetySummary struct {
	Priority          int      `json:"priority"`
	PriorityLabel     string   `json:"priority_label"`
	Concerns          []string `json:"concerns"`
	HasConcerns       bool     `json:"has_concerns"`
	ActiveAlertsCount int      `json:"active_alerts_count"`
}

// SummarizeSafety combines the classified inputs into a 0 (safe) to 3
// (danger) priority, taking the maximum across all sources. Only alerts
// active at now contribute.
func SummarizeSafety(uv *UVInfo, aqi *AQIInfo, alerts []AlertInfo, now time.Time) SafetySummary {
	concerns := []string{}
	priority := 0

	if uv != nil {
		switch uv.Level {
		case UVExtreme:
			concerns = append(concerns, "Extreme UV radiation")
			priority = maxInt(priority, 3)
		case UVVeryHigh:
			concerns = append(concerns, "Very high UV radiation")
			priority = maxInt(priority, 2)
		case UVHigh:
			concerns = append(concerns, "High UV radiation")
			priority = maxInt(priority, 1)
		}
	}

	if aqi != nil {
		switch aqi.Level {
		case AQIHazardous:
			concerns = append(concerns, "Hazardous air quality")
			priority = maxInt(priority, 3)
		case AQIVeryUnhealthy:
			concerns = append(concerns, "Very unhealthy air quality")
			priority = maxInt(priority, 3)
		case AQIUnhealthy:
			concerns = append(concerns, "Unhealthy air quality")
			priority = maxInt(priority, 2)
		case AQIUnhealthySensitive:
			concerns = append(concerns, "Air quality concern for sensitive groups")
			priority = maxInt(priority, 1)
		}
	}

	active := 0
	for _, alert := range alerts {
		if !alert.ActiveAt(now) {
			continue
		}
		active++
		concerns = append(concerns, fmt.Sprintf("%s (%s)", alert.Event, alert.Severity))
		switch alert.Severity {
		case SeverityExtreme, SeveritySevere:
			priority = maxInt(priority, 3)
		case SeverityModerate:
			priority = maxInt(priority, 2)
		}
	}

	return SafetySummary{
		Priority:          priority,
		PriorityLabel:     priorityLabels[priority],
		Concerns:          concerns,
		HasConcerns:       len(concerns) > 0,
		ActiveAlertsCount: active,
	}
}

// Enrichment is the full derived safety and astronomy view of a weather
// bundle.
type Enrichment struct {
	UV        *UVInfo          `json:"uv_info,omitempty"`
	AQI       *AQIInfo         `json:"aqi_info,omitempty"`
	Alerts    []AlertInfo      `json:"alerts_info"`
	Astronomy AstronomySummary `json:"astronomy"`
	Safety    SafetySummary    `json:"safety_summary"`
}

// EnrichBundle derives everything the presentation layer needs from an
// already-fetched bundle. Nil input gives nil output.
func EnrichBundle(b *weather.Bundle, now time.Time) *Enrichment {
	if b == nil {
		return nil
	}

	uv := UVInfoFor(b.Current.UV)
	aqi := AQIInfoFor(b.Current.AirQuality)
	alerts := NormalizeAlerts(b.Alerts, now)

	return &Enrichment{
		UV:        &uv,
		AQI:       aqi,
		Alerts:    alerts,
		Astronomy: SummarizeAstronomy(b.Forecast.ForecastDay, now),
		Safety:    SummarizeSafety(&uv, aqi, alerts, now),
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
