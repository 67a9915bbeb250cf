package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"weather-report/pkg/observe"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

var errUpstreamStatus = errors.New("upstream server error")

// BreakerClient trips after consecutive transport failures or 5xx answers
// and then fails fast until the breaker timeout elapses. It never retries.
type BreakerClient struct {
	client HTTPClient
	cb     *gobreaker.CircuitBreaker
}

func NewBreakerClient(name string, client HTTPClient, maxFailures uint32, timeout time.Duration, l *observe.Logger) *BreakerClient {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			l.Warning("circuit breaker state changed", map[string]any{
				"client": name,
				"from":   from.String(),
				"to":     to.String(),
			})
		},
	}

	return &BreakerClient{
		client: client,
		cb:     gobreaker.NewCircuitBreaker(settings),
	}
}

func (c *BreakerClient) Do(req *http.Request) (*http.Response, error) {
	result, err := c.cb.Execute(func() (interface{}, error) {
		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return resp, errUpstreamStatus
		}
		return resp, nil
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("circuit breaker %s: %w", c.cb.Name(), err)
	}

	resp, _ := result.(*http.Response)
	if errors.Is(err, errUpstreamStatus) {
		// the caller still gets to read status and body
		return resp, nil
	}
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// OpenMeteoErrorResponse is the body Open-Meteo sends with 4xx answers.
type OpenMeteoErrorResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// getJSON performs a GET and decodes a 200 answer into out.
func getJSON(ctx context.Context, client HTTPClient, l *observe.Logger, repository, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	l.Info("received API response", map[string]any{
		"repository": repository,
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Check for HTTP error status codes
	if resp.StatusCode != http.StatusOK {
		var errorResp OpenMeteoErrorResponse
		if jsonErr := json.Unmarshal(body, &errorResp); jsonErr == nil && errorResp.Error {
			return fmt.Errorf("API error (status %d): %s", resp.StatusCode, errorResp.Reason)
		}
		return fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, resp.Status)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return nil
}
