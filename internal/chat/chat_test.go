package chat

import (
	"bufio"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jwildes/weather-forecast-app/internal/enrich"
	"github.com/jwildes/weather-forecast-app/internal/weather"
)

func TestBuildSystemPromptBare(t *testing.T) {
	prompt := BuildSystemPrompt(nil)
	if !strings.Contains(prompt, "weather assistant") {
		t.Error("base prompt missing")
	}
	if strings.Contains(prompt, "CURRENTLY DISPLAYED WEATHER") {
		t.Error("empty context should not add a weather section")
	}
}

func TestBuildSystemPromptWithContext(t *testing.T) {
	uv := enrich.UVInfoFor(8)
	ctx := &Context{
		CurrentWeather: &WeatherContext{
			Location: weather.Location{Name: "Denver", Region: "Colorado", Country: "USA"},
			Current: weather.Current{
				TempC:     30,
				Condition: weather.Condition{Text: "Sunny"},
				UV:        8,
			},
			UV: &uv,
			Forecast: weather.Forecast{ForecastDay: []weather.ForecastDay{
				{Date: "2025-06-01", Day: weather.Day{MaxtempC: 32, MintempC: 18, Condition: weather.Condition{Text: "Sunny"}}},
			}},
		},
		Locations: []RecentLocation{{Name: "Boulder", TempC: 27, Condition: "Clear"}},
	}

	prompt := BuildSystemPrompt(ctx)

	for _, want := range []string{
		"Location: Denver, Colorado, USA",
		"Condition: Sunny",
		"UV Safety: very_high",
		"Forecast Summary:",
		"- 2025-06-01: Sunny, high 32.0°C, low 18.0°C",
		"Recently searched locations:",
		"- Boulder: 27.0°C, Clear",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestStreamUnconfigured(t *testing.T) {
	client := NewClient(Config{})

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	client.Stream(context.Background(), "hello", nil, w)

	out := buf.String()
	if !strings.Contains(out, `"error"`) {
		t.Errorf("expected an error event, got %q", out)
	}
	if !strings.HasSuffix(out, "data: [DONE]\n\n") {
		t.Errorf("stream must end with a DONE marker, got %q", out)
	}
}

func TestStreamRelaysChunks(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("api-key"); got != "secret" {
			t.Errorf("api-key header = %q", got)
		}
		if !strings.Contains(r.URL.Path, "/openai/deployments/gpt-weather/chat/completions") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte(`data: {"choices":[{"delta":{"content":"Hel"}}]}` + "\n\n"))
		w.Write([]byte(`data: {"choices":[{"delta":{"content":"lo"}}]}` + "\n\n"))
		w.Write([]byte(`data: {"choices":[{"delta":{}}]}` + "\n\n"))
		w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer upstream.Close()

	client := NewClient(Config{
		APIKey:     "secret",
		Endpoint:   upstream.URL,
		Deployment: "gpt-weather",
	})

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	client.Stream(context.Background(), "hi", nil, w)

	out := buf.String()
	if !strings.Contains(out, `data: {"content":"Hel"}`) || !strings.Contains(out, `data: {"content":"lo"}`) {
		t.Errorf("chunks not relayed: %q", out)
	}
	if !strings.HasSuffix(out, "data: [DONE]\n\n") {
		t.Errorf("stream must end with DONE, got %q", out)
	}
}

func TestStreamUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	client := NewClient(Config{APIKey: "secret", Endpoint: upstream.URL, Deployment: "gpt-weather"})

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	client.Stream(context.Background(), "hi", nil, w)

	if !strings.Contains(buf.String(), "status 502") {
		t.Errorf("expected an upstream status error event, got %q", buf.String())
	}
}
