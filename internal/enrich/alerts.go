package enrich

import (
	"strings"
	"time"

	"github.com/jwildes/weather-forecast-app/internal/weather"
)

// AlertSeverity is the normalized severity of a weather alert.
type AlertSeverity string

const (
	SeverityExtreme  AlertSeverity = "extreme"
	SeveritySevere   AlertSeverity = "severe"
	SeverityModerate AlertSeverity = "moderate"
	SeverityMinor    AlertSeverity = "minor"
	SeverityUnknown  AlertSeverity = "unknown"
)

// AlertUrgency is the normalized urgency of a weather alert.
type AlertUrgency string

const (
	UrgencyImmediate AlertUrgency = "immediate"
	UrgencyExpected  AlertUrgency = "expected"
	UrgencyFuture    AlertUrgency = "future"
	UrgencyPast      AlertUrgency = "past"
	UrgencyUnknown   AlertUrgency = "unknown"
)

// AlertInfo is a normalized severe weather alert with parsed timestamps and
// a display color/icon derived from severity.
type AlertInfo struct {
	Headline    string        `json:"headline"`
	Event       string        `json:"event"`
	Severity    AlertSeverity `json:"severity"`
	Urgency     AlertUrgency  `json:"urgency"`
	Areas       string        `json:"areas"`
	Description string        `json:"description"`
	Instruction string        `json:"instruction"`
	Effective   time.Time     `json:"effective"`
	Expires     time.Time     `json:"expires"`
	Color       string        `json:"color"`
	Icon        string        `json:"icon"`
}

// NormalizeAlert classifies a raw upstream alert. Unparseable timestamps
// fall back to now rather than failing the whole alert.
func NormalizeAlert(a weather.Alert, now time.Time) AlertInfo {
	severity, color, icon := classifySeverity(a.Severity)

	headline := a.Headline
	if headline == "" {
		headline = "Weather Alert"
	}
	event := a.Event
	if event == "" {
		event = "Unknown Event"
	}

	return AlertInfo{
		Headline:    headline,
		Event:       event,
		Severity:    severity,
		Urgency:     classifyUrgency(a.Urgency),
		Areas:       a.Areas,
		Description: a.Desc,
		Instruction: a.Instruction,
		Effective:   parseAlertTime(a.Effective, now),
		Expires:     parseAlertTime(a.Expires, now),
		Color:       color,
		Icon:        icon,
	}
}

// NormalizeAlerts classifies every alert in an upstream alerts envelope.
// The result is never nil.
func NormalizeAlerts(alerts weather.Alerts, now time.Time) []AlertInfo {
	result := make([]AlertInfo, 0, len(alerts.Alert))
	for _, a := range alerts.Alert {
		result = append(result, NormalizeAlert(a, now))
	}
	return result
}

// ActiveAt reports whether the alert window covers t, inclusive on both
// ends.
func (a AlertInfo) ActiveAt(t time.Time) bool {
	return !t.Before(a.Effective) && !t.After(a.Expires)
}

// IsActive reports whether the alert is active right now.
func (a AlertInfo) IsActive() bool {
	return a.ActiveAt(time.Now())
}

func classifySeverity(s string) (AlertSeverity, string, string) {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "extreme"):
		return SeverityExtreme, "#FF0000", "🚨"
	case strings.Contains(lower, "severe"):
		return SeveritySevere, "#FF4500", "⚠️"
	case strings.Contains(lower, "moderate"):
		return SeverityModerate, "#FFA500", "⚡"
	case strings.Contains(lower, "minor"):
		return SeverityMinor, "#FFD700", "ℹ️"
	default:
		return SeverityUnknown, "#808080", "📢"
	}
}

func classifyUrgency(s string) AlertUrgency {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "immediate"):
		return UrgencyImmediate
	case strings.Contains(lower, "expected"):
		return UrgencyExpected
	case strings.Contains(lower, "future"):
		return UrgencyFuture
	case strings.Contains(lower, "past"):
		return UrgencyPast
	default:
		return UrgencyUnknown
	}
}

// parseAlertTime parses an ISO-8601 timestamp, normalizing a trailing Z to
// a zero offset. Anything unparseable becomes now.
func parseAlertTime(s string, now time.Time) time.Time {
	if s == "" {
		return now
	}
	normalized := strings.Replace(s, "Z", "+00:00", 1)
	for _, layout := range []string{"2006-01-02T15:04:05-07:00", "2006-01-02T15:04:05.999999-07:00"} {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t
		}
	}
	return now
}
