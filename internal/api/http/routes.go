package httpapi

import (
	"bufio"
	"bytes"
	"context"
	"embed"
	"html/template"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jwildes/weather-forecast-app/internal/chat"
	"github.com/jwildes/weather-forecast-app/internal/common"
	"github.com/jwildes/weather-forecast-app/internal/enrich"
	"github.com/jwildes/weather-forecast-app/internal/weather"
)

var validate = validator.New()

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Deps bundles what the HTTP handlers need.
type Deps struct {
	Service weather.Service
	Chat    *chat.Client

	// DefaultZip serves forecast requests that carry no location.
	DefaultZip string
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return handleHome(c, deps)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	forecast := app.Group("/forecast")
	forecast.Get("", func(c *fiber.Ctx) error {
		return handleForecast(c, deps)
	})

	api := forecast.Group("/api")

	api.Post("/weather/bulk", func(c *fiber.Ctx) error {
		var req bulkRequest
		if err := c.BodyParser(&req); err != nil || len(req.Locations) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "No locations provided")
		}

		results := deps.Service.GetBulkWeather(c.Context(), req.Locations)
		if results == nil {
			results = []*weather.Bundle{}
		}
		return c.JSON(results)
	})

	api.Get("/validate-location", func(c *fiber.Ctx) error {
		location := c.Query("location")
		if location == "" {
			return fiber.NewError(fiber.StatusBadRequest, "No location provided")
		}

		valid, info := deps.Service.ValidateLocation(c.Context(), location)
		if !valid {
			return c.JSON(fiber.Map{"valid": false})
		}
		return c.JSON(fiber.Map{"valid": true, "location": info})
	})

	api.Get("/search-locations", func(c *fiber.Ctx) error {
		query := c.Query("q")
		if len(query) < 2 {
			return c.JSON([]weather.SearchResult{})
		}

		limit := c.QueryInt("limit", 10)
		results := deps.Service.SearchLocations(c.Context(), query, limit)
		if results == nil {
			results = []weather.SearchResult{}
		}
		return c.JSON(results)
	})

	api.Get("/detailed-forecast", func(c *fiber.Ctx) error {
		req := detailedQuery{
			Location: c.Query("location"),
			Days:     c.QueryInt("days", 10),
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		data := deps.Service.GetDetailedForecast(c.Context(), req.Location, req.Days)
		if data == nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Unable to fetch detailed forecast")
		}
		return c.JSON(data)
	})

	api.Get("/hourly-forecast", func(c *fiber.Ctx) error {
		req := hourlyQuery{
			Location: c.Query("location"),
			Date:     c.Query("date"),
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Location and date required")
		}

		data := deps.Service.GetHourlyForecast(c.Context(), req.Location, req.Date)
		if data == nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Unable to fetch hourly forecast")
		}
		return c.JSON(data)
	})

	api.Get("/safety-info", func(c *fiber.Ctx) error {
		location := c.Query("location")
		if location == "" {
			return fiber.NewError(fiber.StatusBadRequest, "No location provided")
		}

		bundle := deps.Service.GetWeatherData(c.Context(), location)
		if bundle == nil {
			return fiber.NewError(fiber.StatusNotFound, "Unable to fetch weather data")
		}

		enrichment := enrich.EnrichBundle(bundle, time.Now())
		return c.JSON(fiber.Map{
			"location":       bundle.Location,
			"uv_info":        enrichment.UV,
			"aqi_info":       enrichment.AQI,
			"alerts_info":    enrichment.Alerts,
			"astronomy":      enrichment.Astronomy,
			"safety_summary": enrichment.Safety,
		})
	})

	if deps.Chat != nil {
		registerChatRoutes(app, deps.Chat)
	}
}

// handleHome renders the landing page: the visitor's IP-resolved location
// and its current weather. Browsers get HTML, API clients JSON.
func handleHome(c *fiber.Ctx, deps Deps) error {
	ip := c.Get("X-Forwarded-For")
	if ip == "" {
		ip = c.IP()
	}

	result := deps.Service.GetCurrentLocationByIP(c.Context(), ip)

	if !common.IsBrowser(c.Get(fiber.HeaderUserAgent)) {
		if result == nil {
			return c.JSON(fiber.Map{"user_info": fiber.Map{"error": "Unable to fetch IP information"}})
		}
		return c.JSON(result)
	}

	data := homePageData{}
	if result != nil {
		data.UserInfo = &result.UserInfo
		if cw := result.CurrentWeather; cw != nil {
			data.Weather = cw
			uv := enrich.UVInfoFor(cw.Current.UV)
			data.UV = &uv
			data.AQI = enrich.AQIInfoFor(cw.Current.AirQuality)
		}
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "home.html", data); err != nil {
		log.Printf("httpapi: home template failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render home page")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

// handleForecast serves the legacy forecast endpoint: browsers are sent to
// the home page, API clients get the forecast and history as JSON.
func handleForecast(c *fiber.Ctx, deps Deps) error {
	zip := c.Query("zip")

	if common.IsBrowser(c.Get(fiber.HeaderUserAgent)) {
		if zip != "" {
			return c.Redirect("/?location=" + zip)
		}
		return c.Redirect("/")
	}

	if zip == "" {
		zip = deps.DefaultZip
		if zip == "" {
			return fiber.NewError(fiber.StatusBadRequest, "ZIP code is required and no default is configured")
		}
	}

	bundle := deps.Service.GetWeatherData(c.Context(), zip)
	if bundle == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Unable to fetch weather data")
	}

	return c.JSON(fiber.Map{
		"forecast": bundle.Forecast,
		"history":  bundle.History,
	})
}

func registerChatRoutes(app *fiber.App, client *chat.Client) {
	grp := app.Group("/chat")

	grp.Get("/config", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"configured": client.Configured(),
			"endpoint":   client.Endpoint(),
			"deployment": client.Deployment(),
		})
	})

	grp.Post("/completions", func(c *fiber.Ctx) error {
		var req chatRequest
		if err := c.BodyParser(&req); err != nil || req.Message == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Message is required")
		}

		if req.Stream != nil && !*req.Stream {
			return fiber.NewError(fiber.StatusNotImplemented, "Non-streaming mode not implemented")
		}

		c.Set(fiber.HeaderContentType, "text/event-stream")
		c.Set(fiber.HeaderCacheControl, "no-cache")
		c.Set("X-Accel-Buffering", "no")

		message := req.Message
		chatCtx := req.Context
		c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
			client.Stream(context.Background(), message, chatCtx, w)
		})
		return nil
	})
}

type bulkRequest struct {
	Locations []string `json:"locations"`
}

type chatRequest struct {
	Message string        `json:"message"`
	Context *chat.Context `json:"context"`
	Stream  *bool         `json:"stream"`
}

// detailedQuery holds query parameters for the detailed forecast endpoint.
type detailedQuery struct {
	Location string `validate:"required"`
	Days     int    `validate:"gte=1,lte=10"`
}

// hourlyQuery holds query parameters for the hourly forecast endpoint.
type hourlyQuery struct {
	Location string `validate:"required"`
	Date     string `validate:"required,datetime=2006-01-02"`
}

type homePageData struct {
	UserInfo *weather.IPInfo
	Weather  *weather.CurrentWeather
	UV       *enrich.UVInfo
	AQI      *enrich.AQIInfo
}
