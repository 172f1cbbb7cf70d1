package enrich

import (
	"testing"

	"github.com/jwildes/weather-forecast-app/internal/weather"
)

func TestUVInfoBands(t *testing.T) {
	cases := []struct {
		value float64
		level UVLevel
		color string
	}{
		{0, UVLow, "#289500"},
		{2, UVLow, "#289500"},
		{2.1, UVModerate, "#F7E400"},
		{5, UVModerate, "#F7E400"},
		{6, UVHigh, "#F85900"},
		{7, UVHigh, "#F85900"},
		{8, UVVeryHigh, "#D8001D"},
		{10, UVVeryHigh, "#D8001D"},
		{11, UVExtreme, "#6B49C8"},
		{15, UVExtreme, "#6B49C8"},
	}
	for _, tc := range cases {
		info := UVInfoFor(tc.value)
		if info.Level != tc.level {
			t.Errorf("UVInfoFor(%v).Level = %q, want %q", tc.value, info.Level, tc.level)
		}
		if info.Color != tc.color {
			t.Errorf("UVInfoFor(%v).Color = %q, want %q", tc.value, info.Color, tc.color)
		}
		if info.Recommendation == "" {
			t.Errorf("UVInfoFor(%v) has empty recommendation", tc.value)
		}
	}
}

func TestUVInfoNegativeClampedToZero(t *testing.T) {
	got := UVInfoFor(-3)
	want := UVInfoFor(0)
	if got != want {
		t.Errorf("UVInfoFor(-3) = %+v, want %+v", got, want)
	}
	if got.Value != 0 {
		t.Errorf("expected clamped value 0, got %v", got.Value)
	}
}

func TestAQIInfoLevels(t *testing.T) {
	cases := []struct {
		index int
		level AQILevel
		color string
	}{
		{1, AQIGood, "#00E400"},
		{2, AQIModerate, "#FFFF00"},
		{3, AQIUnhealthySensitive, "#FF7E00"},
		{4, AQIUnhealthy, "#FF0000"},
		{5, AQIVeryUnhealthy, "#8F3F97"},
		{6, AQIHazardous, "#7E0023"},
	}
	for _, tc := range cases {
		info := AQIInfoFor(&weather.AirQuality{EPAIndex: tc.index, PM25: 12.5, PM10: 20})
		if info == nil {
			t.Fatalf("AQIInfoFor(index=%d) returned nil", tc.index)
		}
		if info.Level != tc.level {
			t.Errorf("AQIInfoFor(index=%d).Level = %q, want %q", tc.index, info.Level, tc.level)
		}
		if info.Color != tc.color {
			t.Errorf("AQIInfoFor(index=%d).Color = %q, want %q", tc.index, info.Color, tc.color)
		}
		if info.PM25 != 12.5 || info.PM10 != 20 {
			t.Errorf("AQIInfoFor(index=%d) did not pass through PM values: %+v", tc.index, info)
		}
	}
}

func TestAQIInfoMissingData(t *testing.T) {
	if got := AQIInfoFor(nil); got != nil {
		t.Errorf("AQIInfoFor(nil) = %+v, want nil", got)
	}
	if got := AQIInfoFor(&weather.AirQuality{EPAIndex: 0}); got != nil {
		t.Errorf("AQIInfoFor(index=0) = %+v, want nil", got)
	}
}
