package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/jwildes/weather-forecast-app/internal/weather"
)

var errNoHTTPClient = errors.New("http client not configured")

type upstreamResponse struct {
	status int
	body   []byte
}

// doRequest issues a single GET to the upstream weather API through a
// circuit breaker. The API key is injected into params.
//
// A 400 from upstream means "bad query / location not found" and is an
// expected outcome, so it returns (nil, nil) rather than an error and does
// not count against the breaker. Transport failures and 5xx responses trip
// the breaker and surface as *weather.APIRequestError. No retries are
// attempted; the caller decides whether to retry or propagate.
func doRequest(
	ctx context.Context,
	client *http.Client,
	cb *gobreaker.CircuitBreaker,
	apiKey, baseURL, endpoint string,
	params url.Values,
) ([]byte, error) {
	if client == nil {
		return nil, errNoHTTPClient
	}
	if apiKey == "" {
		return nil, weather.ErrAPIKeyMissing
	}

	params.Set("key", apiKey)
	u := fmt.Sprintf("%s/%s?%s", baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			return nil, &weather.APIRequestError{Endpoint: endpoint, Err: execErr}
		}
		defer resp.Body.Close()

		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, &weather.APIRequestError{Endpoint: endpoint, Err: readErr}
		}

		if resp.StatusCode >= 500 {
			return nil, &weather.APIRequestError{Endpoint: endpoint, Status: resp.StatusCode}
		}

		return &upstreamResponse{status: resp.StatusCode, body: body}, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &weather.APIRequestError{Endpoint: endpoint, Err: err}
		}
		var apiErr *weather.APIRequestError
		if errors.As(err, &apiErr) {
			return nil, err
		}
		return nil, &weather.APIRequestError{Endpoint: endpoint, Err: err}
	}

	resp, ok := result.(*upstreamResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}

	if resp.status == http.StatusBadRequest {
		// Location not found or invalid query.
		return nil, nil
	}
	if resp.status < 200 || resp.status >= 300 {
		return nil, &weather.APIRequestError{Endpoint: endpoint, Status: resp.status}
	}

	return resp.body, nil
}
