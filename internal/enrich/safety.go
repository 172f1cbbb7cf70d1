// Package enrich derives human-facing safety and astronomy summaries from
// already-fetched weather data. Everything here is pure: no network I/O, no
// shared state.
package enrich

import "github.com/jwildes/weather-forecast-app/internal/weather"

// UVLevel classifies a UV index reading.
type UVLevel string

const (
	UVLow      UVLevel = "low"
	UVModerate UVLevel = "moderate"
	UVHigh     UVLevel = "high"
	UVVeryHigh UVLevel = "very_high"
	UVExtreme  UVLevel = "extreme"
)

// UVInfo is a UV index reading with its safety classification.
type UVInfo struct {
	Value          float64 `json:"value"`
	Level          UVLevel `json:"level"`
	Color          string  `json:"color"`
	Recommendation string  `json:"recommendation"`
	Icon           string  `json:"icon"`
}

// UVInfoFor classifies a UV index value into the five WHO bands. Negative
// input is clamped to zero.
func UVInfoFor(value float64) UVInfo {
	if value < 0 {
		value = 0
	}

	switch {
	case value <= 2:
		return UVInfo{
			Value:          value,
			Level:          UVLow,
			Color:          "#289500",
			Recommendation: "Minimal protection needed. Wear sunglasses on bright days.",
			Icon:           "🟢",
		}
	case value <= 5:
		return UVInfo{
			Value:          value,
			Level:          UVModerate,
			Color:          "#F7E400",
			Recommendation: "Protection required. Wear sunscreen SPF 30+, hat, and sunglasses.",
			Icon:           "🟡",
		}
	case value <= 7:
		return UVInfo{
			Value:          value,
			Level:          UVHigh,
			Color:          "#F85900",
			Recommendation: "Protection essential. Seek shade during midday. Sunscreen, hat, and sunglasses required.",
			Icon:           "🟠",
		}
	case value <= 10:
		return UVInfo{
			Value:          value,
			Level:          UVVeryHigh,
			Color:          "#D8001D",
			Recommendation: "Extra protection required. Avoid sun 10am-4pm. Sunscreen SPF 50+, protective clothing required.",
			Icon:           "🔴",
		}
	default:
		return UVInfo{
			Value:          value,
			Level:          UVExtreme,
			Color:          "#6B49C8",
			Recommendation: "Take all precautions. Avoid sun exposure. Unprotected skin can burn in minutes.",
			Icon:           "🟣",
		}
	}
}

// AQILevel classifies a US EPA air quality category.
type AQILevel string

const (
	AQIGood               AQILevel = "good"
	AQIModerate           AQILevel = "moderate"
	AQIUnhealthySensitive AQILevel = "unhealthy_sensitive"
	AQIUnhealthy          AQILevel = "unhealthy"
	AQIVeryUnhealthy      AQILevel = "very_unhealthy"
	AQIHazardous          AQILevel = "hazardous"
)

// AQIInfo is an air quality reading with its EPA classification and health
// guidance.
type AQIInfo struct {
	Value    int      `json:"value"`
	Level    AQILevel `json:"level"`
	Color    string   `json:"color"`
	Guidance string   `json:"guidance"`
	Icon     string   `json:"icon"`
	PM25     float64  `json:"pm2_5"`
	PM10     float64  `json:"pm10"`
}

// AQIInfoFor classifies air quality from the upstream us-epa-index (1-6).
// A missing block or a zero index means no data, signalled by nil rather
// than a zero-valued classification.
func AQIInfoFor(aq *weather.AirQuality) *AQIInfo {
	if aq == nil || aq.EPAIndex == 0 {
		return nil
	}

	info := &AQIInfo{
		Value: aq.EPAIndex,
		PM25:  aq.PM25,
		PM10:  aq.PM10,
	}

	switch aq.EPAIndex {
	case 1:
		info.Level = AQIGood
		info.Color = "#00E400"
		info.Guidance = "Air quality is satisfactory. Air pollution poses little or no risk."
		info.Icon = "🟢"
	case 2:
		info.Level = AQIModerate
		info.Color = "#FFFF00"
		info.Guidance = "Acceptable air quality. Unusually sensitive people should consider limiting prolonged outdoor exertion."
		info.Icon = "🟡"
	case 3:
		info.Level = AQIUnhealthySensitive
		info.Color = "#FF7E00"
		info.Guidance = "People with respiratory or heart conditions, elderly, and children should limit prolonged outdoor exertion."
		info.Icon = "🟠"
	case 4:
		info.Level = AQIUnhealthy
		info.Color = "#FF0000"
		info.Guidance = "Everyone may begin to experience health effects. Sensitive groups should avoid prolonged outdoor exertion."
		info.Icon = "🔴"
	case 5:
		info.Level = AQIVeryUnhealthy
		info.Color = "#8F3F97"
		info.Guidance = "Health alert. Everyone should avoid prolonged outdoor exertion. Sensitive groups should avoid all outdoor activity."
		info.Icon = "🟣"
	default:
		info.Level = AQIHazardous
		info.Color = "#7E0023"
		info.Guidance = "Health warning of emergency conditions. Everyone should avoid all outdoor exertion."
		info.Icon = "🟤"
	}

	return info
}
