package weather

import (
	"encoding/json"
	"testing"
)

func TestNewSearchResultDisplay(t *testing.T) {
	cases := []struct {
		name, region, country string
		want                  string
	}{
		{"London", "City of London, Greater London", "United Kingdom", "London, City of London, Greater London, United Kingdom"},
		{"Denver", "", "United States of America", "Denver, United States of America"},
		{"Paris", "Ile-de-France", "", "Paris, Ile-de-France"},
		{"Tokyo", "", "", "Tokyo"},
		{"", "", "", ""},
	}
	for _, tc := range cases {
		got := NewSearchResult(tc.name, tc.region, tc.country)
		if got.Display != tc.want {
			t.Errorf("NewSearchResult(%q, %q, %q).Display = %q, want %q",
				tc.name, tc.region, tc.country, got.Display, tc.want)
		}
		if got.Value != tc.name {
			t.Errorf("NewSearchResult(%q, ...).Value = %q, want the name back", tc.name, got.Value)
		}
	}
}

func TestCurrentDecodesAirQuality(t *testing.T) {
	payload := `{
		"temp_c": 21.5,
		"uv": 6,
		"condition": {"text": "Sunny", "code": 1000},
		"air_quality": {"pm2_5": 8.2, "pm10": 12.0, "us-epa-index": 2}
	}`

	var current Current
	if err := json.Unmarshal([]byte(payload), &current); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if current.AirQuality == nil {
		t.Fatal("expected air quality block to decode")
	}
	if current.AirQuality.EPAIndex != 2 || current.AirQuality.PM25 != 8.2 {
		t.Errorf("air quality decoded as %+v", current.AirQuality)
	}
}

func TestCurrentWithoutAirQuality(t *testing.T) {
	var current Current
	if err := json.Unmarshal([]byte(`{"temp_c": 3.0}`), &current); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if current.AirQuality != nil {
		t.Errorf("absent air quality should stay nil, got %+v", current.AirQuality)
	}
}
