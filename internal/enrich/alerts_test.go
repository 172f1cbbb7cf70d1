package enrich

import (
	"testing"
	"time"

	"github.com/jwildes/weather-forecast-app/internal/weather"
)

func TestNormalizeAlertSeverity(t *testing.T) {
	now := time.Now()
	cases := []struct {
		severity string
		want     AlertSeverity
		color    string
	}{
		{"Extreme", SeverityExtreme, "#FF0000"},
		{"SEVERE", SeveritySevere, "#FF4500"},
		{"Moderate", SeverityModerate, "#FFA500"},
		{"minor", SeverityMinor, "#FFD700"},
		{"whatever", SeverityUnknown, "#808080"},
		{"", SeverityUnknown, "#808080"},
	}
	for _, tc := range cases {
		info := NormalizeAlert(weather.Alert{Severity: tc.severity}, now)
		if info.Severity != tc.want {
			t.Errorf("severity %q normalized to %q, want %q", tc.severity, info.Severity, tc.want)
		}
		if info.Color != tc.color {
			t.Errorf("severity %q got color %q, want %q", tc.severity, info.Color, tc.color)
		}
	}
}

func TestNormalizeAlertUrgency(t *testing.T) {
	now := time.Now()
	cases := []struct {
		urgency string
		want    AlertUrgency
	}{
		{"Immediate", UrgencyImmediate},
		{"expected", UrgencyExpected},
		{"Future", UrgencyFuture},
		{"Past", UrgencyPast},
		{"unclear", UrgencyUnknown},
	}
	for _, tc := range cases {
		info := NormalizeAlert(weather.Alert{Urgency: tc.urgency}, now)
		if info.Urgency != tc.want {
			t.Errorf("urgency %q normalized to %q, want %q", tc.urgency, info.Urgency, tc.want)
		}
	}
}

func TestNormalizeAlertDefaults(t *testing.T) {
	info := NormalizeAlert(weather.Alert{}, time.Now())
	if info.Headline != "Weather Alert" {
		t.Errorf("empty headline became %q, want %q", info.Headline, "Weather Alert")
	}
	if info.Event != "Unknown Event" {
		t.Errorf("empty event became %q, want %q", info.Event, "Unknown Event")
	}
}

func TestNormalizeAlertTimestamps(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	info := NormalizeAlert(weather.Alert{
		Effective: "2025-06-01T10:00:00Z",
		Expires:   "2025-06-01T18:00:00-05:00",
	}, now)

	if !info.Effective.Equal(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("effective parsed as %v", info.Effective)
	}
	wantExpires := time.Date(2025, 6, 1, 18, 0, 0, 0, time.FixedZone("", -5*3600))
	if !info.Expires.Equal(wantExpires) {
		t.Errorf("expires parsed as %v, want %v", info.Expires, wantExpires)
	}

	// Garbage timestamps fall back to now instead of failing the alert.
	fallback := NormalizeAlert(weather.Alert{Effective: "not-a-time", Expires: "also bad"}, now)
	if !fallback.Effective.Equal(now) || !fallback.Expires.Equal(now) {
		t.Errorf("unparseable timestamps should fall back to now, got %v / %v", fallback.Effective, fallback.Expires)
	}
}

func TestAlertActiveAt(t *testing.T) {
	now := time.Now()

	active := AlertInfo{Effective: now.Add(-time.Hour), Expires: now.Add(time.Hour)}
	if !active.ActiveAt(now) {
		t.Error("alert spanning now should be active")
	}

	expired := AlertInfo{Effective: now.Add(-2 * time.Hour), Expires: now.Add(-time.Hour)}
	if expired.ActiveAt(now) {
		t.Error("expired alert should not be active")
	}

	upcoming := AlertInfo{Effective: now.Add(time.Hour), Expires: now.Add(2 * time.Hour)}
	if upcoming.ActiveAt(now) {
		t.Error("not-yet-effective alert should not be active")
	}
}
