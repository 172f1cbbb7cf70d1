// Package chat proxies chat-completion requests to an Azure OpenAI
// deployment, streaming incremental text back to the caller as server-sent
// events with a weather-aware system prompt.
package chat

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwildes/weather-forecast-app/internal/enrich"
	"github.com/jwildes/weather-forecast-app/internal/metrics"
	"github.com/jwildes/weather-forecast-app/internal/weather"
)

const (
	// maxResponseTokens bounds each completion.
	maxResponseTokens = 500

	// Prompt context limits.
	maxPromptAlerts       = 3
	maxPromptForecastDays = 5
	maxPromptLocations    = 5
)

// Config holds the chat proxy credentials and limits.
type Config struct {
	APIKey     string
	Endpoint   string
	Deployment string
	APIVersion string
	Timeout    time.Duration

	HTTPClient *http.Client
	Metrics    *metrics.Collector
}

// Client relays chat completions to the configured endpoint.
type Client struct {
	apiKey     string
	endpoint   string
	deployment string
	apiVersion string
	httpClient *http.Client
	metrics    *metrics.Collector
}

// NewClient creates a chat client. Missing credentials are allowed; the
// client then reports itself unconfigured and streams become error events.
func NewClient(cfg Config) *Client {
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2024-10-21"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		apiKey:     cfg.APIKey,
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		deployment: cfg.Deployment,
		apiVersion: cfg.APIVersion,
		httpClient: cfg.HTTPClient,
		metrics:    cfg.Metrics,
	}
}

// Configured reports whether credentials and deployment are present.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.endpoint != "" && c.deployment != ""
}

// Endpoint returns the configured endpoint for status reporting.
func (c *Client) Endpoint() string { return c.endpoint }

// Deployment returns the configured deployment for status reporting.
func (c *Client) Deployment() string { return c.deployment }

// WeatherContext is the currently displayed weather the assistant may
// reference.
type WeatherContext struct {
	Location weather.Location   `json:"location"`
	Current  weather.Current    `json:"current"`
	UV       *enrich.UVInfo     `json:"uv_info,omitempty"`
	AQI      *enrich.AQIInfo    `json:"aqi_info,omitempty"`
	Alerts   []enrich.AlertInfo `json:"alerts,omitempty"`
	Forecast weather.Forecast   `json:"forecast"`
}

// RecentLocation is a recently searched location summary.
type RecentLocation struct {
	Name      string  `json:"location"`
	TempC     float64 `json:"temp_c"`
	Condition string  `json:"condition"`
}

// Context is the weather context supplied with a chat request.
type Context struct {
	CurrentWeather *WeatherContext  `json:"currentWeather,omitempty"`
	Locations      []RecentLocation `json:"locations,omitempty"`
}

const basePrompt = `You are a helpful weather assistant with expertise in meteorology and weather patterns.
Your role is to help users understand weather conditions, forecasts, and provide insights about the weather
in their searched locations.

You have access to current weather data and forecasts for the user's currently displayed city.
When answering questions, be conversational, friendly, and informative. Use the weather data provided
to give accurate, context-aware responses.

Guidelines:
- Answer weather-related questions using the provided data
- When the user asks "is this typical?" or similar questions, refer to the current conditions shown
- Explain weather patterns and phenomena when relevant
- Provide helpful suggestions (e.g., clothing recommendations, activity planning)
- If asked about locations not in the context, politely indicate you don't have current data for them
- Be concise but thorough in your explanations
- Use a friendly, conversational tone`

// BuildSystemPrompt blends the base assistant prompt with the supplied
// weather context.
func BuildSystemPrompt(chatCtx *Context) string {
	var b strings.Builder
	b.WriteString(basePrompt)

	if chatCtx == nil {
		return b.String()
	}

	if cw := chatCtx.CurrentWeather; cw != nil {
		parts := make([]string, 0, 3)
		for _, p := range []string{cw.Location.Name, cw.Location.Region, cw.Location.Country} {
			if p != "" {
				parts = append(parts, p)
			}
		}

		b.WriteString("\n\n=== CURRENTLY DISPLAYED WEATHER ===\n")
		fmt.Fprintf(&b, "Location: %s\n", strings.Join(parts, ", "))
		fmt.Fprintf(&b, "Condition: %s\n", cw.Current.Condition.Text)
		fmt.Fprintf(&b, "Temperature: %.1f°C (%.1f°F)\n", cw.Current.TempC, cw.Current.TempF)
		fmt.Fprintf(&b, "Feels like: %.1f°C (%.1f°F)\n", cw.Current.FeelslikeC, cw.Current.FeelslikeF)
		fmt.Fprintf(&b, "Humidity: %.0f%%\n", cw.Current.Humidity)
		fmt.Fprintf(&b, "Wind: %.1f km/h (%.1f mph)\n", cw.Current.WindKph, cw.Current.WindMph)
		fmt.Fprintf(&b, "Visibility: %.1f km\n", cw.Current.VisKm)
		fmt.Fprintf(&b, "Pressure: %.0f mb\n", cw.Current.PressureMb)
		fmt.Fprintf(&b, "UV Index: %.1f\n", cw.Current.UV)

		if cw.UV != nil {
			fmt.Fprintf(&b, "\nUV Safety: %s - %s\n", cw.UV.Level, cw.UV.Recommendation)
		}
		if cw.AQI != nil {
			fmt.Fprintf(&b, "\nAir Quality: %s", cw.AQI.Level)
			if cw.AQI.PM25 > 0 {
				fmt.Fprintf(&b, " (PM2.5: %.1f µg/m³)", cw.AQI.PM25)
			}
			fmt.Fprintf(&b, "\nAir Quality Guidance: %s\n", cw.AQI.Guidance)
		}
		if len(cw.Alerts) > 0 {
			b.WriteString("\n⚠️ ACTIVE WEATHER ALERTS:\n")
			for i, alert := range cw.Alerts {
				if i >= maxPromptAlerts {
					break
				}
				fmt.Fprintf(&b, "- %s: %s\n", alert.Headline, alert.Severity)
			}
		}
		if len(cw.Forecast.ForecastDay) > 0 {
			b.WriteString("\nForecast Summary:\n")
			for i, day := range cw.Forecast.ForecastDay {
				if i >= maxPromptForecastDays {
					break
				}
				fmt.Fprintf(&b, "- %s: %s, high %.1f°C, low %.1f°C\n",
					day.Date, day.Day.Condition.Text, day.Day.MaxtempC, day.Day.MintempC)
			}
		}
	}

	if len(chatCtx.Locations) > 0 {
		b.WriteString("\nRecently searched locations:\n")
		for i, loc := range chatCtx.Locations {
			if i >= maxPromptLocations {
				break
			}
			fmt.Fprintf(&b, "- %s: %.1f°C, %s\n", loc.Name, loc.TempC, loc.Condition)
		}
	}

	return b.String()
}

type completionRequest struct {
	Messages            []message `json:"messages"`
	Stream              bool      `json:"stream"`
	MaxCompletionTokens int       `json:"max_completion_tokens"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Stream relays one completion to w as server-sent events: data chunks of
// the form {"content": ...}, an {"error": ...} event on failure, and a
// final [DONE] marker either way. Configuration problems are reported in
// band so the front end can show them.
func (c *Client) Stream(ctx context.Context, userMessage string, chatCtx *Context, w *bufio.Writer) {
	streamID := uuid.NewString()
	log.Printf("chat: stream %s started (message %d chars)", streamID, len(userMessage))

	if c.apiKey == "" || c.endpoint == "" {
		c.metrics.ChatRequest("unconfigured")
		writeSSEError(w, "Chat endpoint not configured. Please set AZURE_OPENAI_API_KEY and AZURE_OPENAI_ENDPOINT.")
		return
	}
	if c.deployment == "" {
		c.metrics.ChatRequest("unconfigured")
		writeSSEError(w, "Chat deployment not configured. Please set AZURE_OPENAI_DEPLOYMENT.")
		return
	}

	payload := completionRequest{
		Messages: []message{
			{Role: "system", Content: BuildSystemPrompt(chatCtx)},
			{Role: "user", Content: userMessage},
		},
		Stream:              true,
		MaxCompletionTokens: maxResponseTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		c.metrics.ChatRequest("error")
		writeSSEError(w, fmt.Sprintf("chat request encoding failed: %v", err))
		return
	}

	u := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		c.endpoint, c.deployment, c.apiVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		c.metrics.ChatRequest("error")
		writeSSEError(w, fmt.Sprintf("chat request failed: %v", err))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ChatRequest("error")
		log.Printf("chat: stream %s upstream error: %v", streamID, err)
		writeSSEError(w, fmt.Sprintf("chat endpoint error: %v", err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.ChatRequest("error")
		log.Printf("chat: stream %s upstream status %d", streamID, resp.StatusCode)
		writeSSEError(w, fmt.Sprintf("chat endpoint returned status %d", resp.StatusCode))
		return
	}

	c.relay(streamID, resp.Body, w)
}

// relay copies upstream SSE chunks to the client, reshaping each delta into
// a {"content": ...} event.
func (c *Client) relay(streamID string, upstream io.Reader, w *bufio.Writer) {
	scanner := bufio.NewScanner(upstream)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "[DONE]" {
			break
		}

		var chunk completionChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}

		encoded, err := json.Marshal(map[string]string{"content": chunk.Choices[0].Delta.Content})
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "data: %s\n\n", encoded)
		w.Flush()
	}

	if err := scanner.Err(); err != nil {
		log.Printf("chat: stream %s relay error: %v", streamID, err)
	}

	fmt.Fprint(w, "data: [DONE]\n\n")
	w.Flush()
	c.metrics.ChatRequest("ok")
	log.Printf("chat: stream %s completed", streamID)
}

func writeSSEError(w *bufio.Writer, msg string) {
	encoded, err := json.Marshal(map[string]string{"error": msg})
	if err != nil {
		encoded = []byte(`{"error": "internal error"}`)
	}
	fmt.Fprintf(w, "data: %s\n\n", encoded)
	fmt.Fprint(w, "data: [DONE]\n\n")
	w.Flush()
}
