package windborne

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/nwp-tools/windborne-export/internal/log"
)

// backoffConfig controls exponential backoff behaviour.
type backoffConfig struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
}

// httpClientConfig bundles HTTP client and resilience settings.
type httpClientConfig struct {
	client  *http.Client
	backoff backoffConfig
}

var (
	errRateLimited  = errors.New("rate limited")
	errServerError  = errors.New("server error")
	errUnexpected   = errors.New("unexpected status code")
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

// doWithResilience executes the request with retries, exponential
// backoff, and the client's circuit breaker. Rate-limit (429) and 5xx
// responses are retried; other non-2xx statuses fail immediately.
func (c *Client) doWithResilience(ctx context.Context, buildRequest func() (*http.Request, error)) (*http.Response, error) {
	if c.httpCfg.client == nil {
		return nil, errNoHTTPClient
	}

	var attempt int
	var lastErr error

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		// Rebuild each attempt so the signed token stays fresh.
		req, err := buildRequest()
		if err != nil {
			return nil, err
		}
		req = req.WithContext(ctx)

		result, err := c.circuit.Execute(func() (interface{}, error) {
			resp, execErr := c.httpCfg.client.Do(req)
			if execErr != nil {
				return nil, execErr
			}

			if resp.StatusCode == http.StatusTooManyRequests {
				resp.Body.Close()
				return nil, errRateLimited
			}
			if resp.StatusCode >= 500 {
				resp.Body.Close()
				return nil, fmt.Errorf("%w: %d", errServerError, resp.StatusCode)
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				resp.Body.Close()
				return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
			}

			return resp, nil
		})

		if err == nil {
			resp, ok := result.(*http.Response)
			if !ok {
				return nil, fmt.Errorf("unexpected result type from circuit breaker")
			}
			return resp, nil
		}

		// If the circuit is open, propagate immediately.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		// Client-side status errors are not worth another attempt;
		// everything else (network failures, 5xx, 429) is transient.
		if errors.Is(err, errUnexpected) {
			return nil, err
		}

		lastErr = err
		if attempt >= c.httpCfg.backoff.maxRetries {
			return nil, fmt.Errorf("giving up after %d attempt(s): %w", attempt+1, lastErr)
		}

		delay := c.httpCfg.backoff.initialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if c.httpCfg.backoff.maxInterval > 0 && delay > c.httpCfg.backoff.maxInterval {
			delay = c.httpCfg.backoff.maxInterval
		}

		log.Warnf("transient error from API (%v), retrying in %s", err, delay)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		attempt++
	}
}
