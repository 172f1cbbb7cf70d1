package enrich

import (
	"testing"
	"time"

	"github.com/jwildes/weather-forecast-app/internal/weather"
)

func TestSummarizeSafetyAllClear(t *testing.T) {
	uv := UVInfoFor(1)
	summary := SummarizeSafety(&uv, nil, nil, time.Now())

	if summary.Priority != 0 || summary.PriorityLabel != "Safe" {
		t.Errorf("clear conditions got priority %d (%s)", summary.Priority, summary.PriorityLabel)
	}
	if summary.HasConcerns {
		t.Error("clear conditions should have no concerns")
	}
}

func TestSummarizeSafetyTakesMaximum(t *testing.T) {
	now := time.Now()
	uv := UVInfoFor(6) // high -> priority 1
	aqi := AQIInfoFor(&weather.AirQuality{EPAIndex: 4})

	summary := SummarizeSafety(&uv, aqi, nil, now)

	if summary.Priority != 2 {
		t.Errorf("priority = %d, want 2 (unhealthy air dominates high UV)", summary.Priority)
	}
	if len(summary.Concerns) != 2 {
		t.Errorf("concerns = %v, want 2 entries", summary.Concerns)
	}
	if summary.PriorityLabel != "Warning" {
		t.Errorf("label = %q, want Warning", summary.PriorityLabel)
	}
}

func TestSummarizeSafetyActiveAlerts(t *testing.T) {
	now := time.Now()

	alerts := []AlertInfo{
		{
			Event:     "Tornado Warning",
			Severity:  SeveritySevere,
			Effective: now.Add(-time.Hour),
			Expires:   now.Add(time.Hour),
		},
		{
			Event:     "Flood Watch",
			Severity:  SeverityModerate,
			Effective: now.Add(-48 * time.Hour),
			Expires:   now.Add(-24 * time.Hour), // expired, must not count
		},
	}

	summary := SummarizeSafety(nil, nil, alerts, now)

	if summary.Priority != 3 {
		t.Errorf("priority = %d, want 3 for an active severe alert", summary.Priority)
	}
	if summary.ActiveAlertsCount != 1 {
		t.Errorf("active alerts = %d, want 1", summary.ActiveAlertsCount)
	}
	if summary.PriorityLabel != "Danger" {
		t.Errorf("label = %q, want Danger", summary.PriorityLabel)
	}
}

func TestEnrichBundle(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	bundle := &weather.Bundle{
		Current: weather.Current{
			UV:         8,
			AirQuality: &weather.AirQuality{EPAIndex: 2, PM25: 9},
		},
		Forecast: weather.Forecast{ForecastDay: []weather.ForecastDay{
			{Date: "2025-06-01", Astro: weather.Astro{Sunrise: "05:30 AM", Sunset: "08:45 PM", MoonPhase: "New Moon"}},
		}},
		Alerts: weather.Alerts{Alert: []weather.Alert{
			{Headline: "Heat Advisory", Event: "Heat", Severity: "Moderate",
				Effective: "2025-06-01T00:00:00Z", Expires: "2025-06-02T00:00:00Z"},
		}},
	}

	e := EnrichBundle(bundle, now)
	if e == nil {
		t.Fatal("expected enrichment for a non-nil bundle")
	}
	if e.UV == nil || e.UV.Level != UVVeryHigh {
		t.Errorf("UV enrichment = %+v, want very_high", e.UV)
	}
	if e.AQI == nil || e.AQI.Level != AQIModerate {
		t.Errorf("AQI enrichment = %+v, want moderate", e.AQI)
	}
	if len(e.Alerts) != 1 {
		t.Fatalf("alerts = %d, want 1", len(e.Alerts))
	}
	if e.Astronomy.Today == nil || e.Astronomy.Today.DaylightDuration != "15h 15m" {
		t.Errorf("astronomy today = %+v", e.Astronomy.Today)
	}
	// Very high UV (2) vs active moderate alert (2) -> warning.
	if e.Safety.Priority != 2 {
		t.Errorf("safety priority = %d, want 2", e.Safety.Priority)
	}

	if EnrichBundle(nil, now) != nil {
		t.Error("nil bundle should enrich to nil")
	}
}
