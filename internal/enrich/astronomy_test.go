package enrich

import (
	"testing"
	"time"

	"github.com/jwildes/weather-forecast-app/internal/weather"
)

func TestMoonPhaseEmoji(t *testing.T) {
	cases := []struct {
		phase string
		want  string
	}{
		{"New Moon", "🌑"},
		{"Full Moon", "🌕"},
		{"First Quarter", "🌓"},
		{"Waxing Crescent", "🌒"},
		{"Waning Gibbous", "🌖"},
		{"Third Quarter", "🌗"},
		{"FULL MOON", "🌕"},
		{"Blood Moon", "🌙"},
		{"", "🌙"},
	}
	for _, tc := range cases {
		if got := MoonPhaseEmoji(tc.phase); got != tc.want {
			t.Errorf("MoonPhaseEmoji(%q) = %q, want %q", tc.phase, got, tc.want)
		}
	}
}

func TestDaylightDuration(t *testing.T) {
	cases := []struct {
		sunrise, sunset string
		want            string
		ok              bool
	}{
		{"06:30 AM", "05:45 PM", "11h 15m", true},
		{"05:00 AM", "09:00 PM", "16h 0m", true},
		{"11:00 PM", "01:00 AM", "2h 0m", true}, // wraps past midnight
		{"12:00 PM", "12:00 PM", "0h 0m", true},
		{"", "05:45 PM", "", false},
		{"06:30 AM", "", "", false},
		{"gibberish", "05:45 PM", "", false},
		{"06:30 AM", "25:99 XX", "", false},
	}
	for _, tc := range cases {
		got, ok := DaylightDuration(tc.sunrise, tc.sunset)
		if ok != tc.ok || got != tc.want {
			t.Errorf("DaylightDuration(%q, %q) = (%q, %v), want (%q, %v)",
				tc.sunrise, tc.sunset, got, ok, tc.want, tc.ok)
		}
	}
}

func TestProcessAstronomyDay(t *testing.T) {
	day := weather.ForecastDay{
		Date: "2025-06-01",
		Astro: weather.Astro{
			Sunrise:          "06:30 AM",
			Sunset:           "05:45 PM",
			Moonrise:         "08:00 PM",
			Moonset:          "No moonset",
			MoonPhase:        "Waxing Gibbous",
			MoonIllumination: "78",
		},
	}

	info := ProcessAstronomyDay(day, true)

	if !info.IsCurrentDay {
		t.Error("expected IsCurrentDay to be set")
	}
	if !info.HasMoonrise {
		t.Error("expected HasMoonrise for a real moonrise time")
	}
	if info.HasMoonset {
		t.Error("expected HasMoonset false for 'No moonset'")
	}
	if info.MoonPhaseEmoji != "🌔" {
		t.Errorf("moon emoji = %q, want 🌔", info.MoonPhaseEmoji)
	}
	if info.DaylightDuration != "11h 15m" {
		t.Errorf("daylight duration = %q, want 11h 15m", info.DaylightDuration)
	}
}

func TestSummarizeAstronomy(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	days := make([]weather.ForecastDay, 0, 8)
	for i := 0; i < 8; i++ {
		days = append(days, weather.ForecastDay{
			Date:  now.AddDate(0, 0, i).Format("2006-01-02"),
			Astro: weather.Astro{Sunrise: "06:00 AM", Sunset: "08:00 PM", MoonPhase: "Full Moon"},
		})
	}
	// A malformed date should be skipped, not break the summary.
	days = append(days, weather.ForecastDay{Date: "June 9th"})

	summary := SummarizeAstronomy(days, now)

	if summary.Today == nil {
		t.Fatal("expected today's astronomy to be present")
	}
	if !summary.Today.IsCurrentDay {
		t.Error("expected first entry to be flagged as current day")
	}
	if len(summary.Forecast) != astronomyForecastDays {
		t.Fatalf("forecast length = %d, want %d", len(summary.Forecast), astronomyForecastDays)
	}
	for _, entry := range summary.Forecast {
		if entry.IsCurrentDay {
			t.Errorf("forecast entry %s should exclude the current day", entry.Date)
		}
	}
}
