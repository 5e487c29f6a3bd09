// Package windborne implements the export.Source interface against the
// WindBorne Systems data API, described at
// https://windbornesystems.com/docs/api
package windborne

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sony/gobreaker"

	"github.com/nwp-tools/windborne-export/internal/export"
)

// DefaultBaseURL is the production sensor-data endpoint.
const DefaultBaseURL = "https://sensor-data.windbornesystems.com"

// superObservationsPath serves upstream-aggregated observations, which
// work better for NWP ingestion than the full high-resolution stream.
const superObservationsPath = "/api/v1/super_observations.json"

// Client fetches observation pages from the WindBorne API, signing each
// request with a short-lived JWT derived from the API key. Credentials
// are explicit constructor arguments; the client never reads process
// environment itself.
type Client struct {
	baseURL  string
	clientID string
	apiKey   string
	httpCfg  httpClientConfig
	circuit  *gobreaker.CircuitBreaker
}

// NewClient creates a Client. baseURL may be empty, in which case the
// production endpoint is used.
func NewClient(httpClient *http.Client, baseURL, clientID, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "windborne",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		baseURL:  baseURL,
		clientID: clientID,
		apiKey:   apiKey,
		httpCfg: httpClientConfig{
			client: httpClient,
			backoff: backoffConfig{
				maxRetries:      5,
				initialInterval: 1 * time.Second,
				maxInterval:     30 * time.Second,
			},
		},
		circuit: cb,
	}
}

// Observations fetches one page of super observations. The query's
// cursor, when set, is the next_page URL from the previous response;
// the window bounds and include_mission_name are re-applied to it, as
// the API expects them on every request.
func (c *Client) Observations(ctx context.Context, q export.Query) (export.Page, error) {
	buildRequest := func() (*http.Request, error) {
		u, err := c.pageURL(q)
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}

		token, err := c.signedToken()
		if err != nil {
			return nil, fmt.Errorf("sign auth token: %w", err)
		}
		req.SetBasicAuth(c.clientID, token)

		return req, nil
	}

	resp, err := c.doWithResilience(ctx, buildRequest)
	if err != nil {
		return export.Page{}, err
	}
	defer resp.Body.Close()

	var page export.Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return export.Page{}, fmt.Errorf("decode observations page: %w", err)
	}

	return page, nil
}

func (c *Client) pageURL(q export.Query) (string, error) {
	raw := q.Cursor
	if raw == "" {
		raw = c.baseURL + superObservationsPath
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse page url %q: %w", raw, err)
	}

	values := u.Query()
	values.Set("min_time", strconv.FormatInt(q.MinTime, 10))
	values.Set("max_time", strconv.FormatInt(q.MaxTime, 10))
	values.Set("include_mission_name", "true")
	u.RawQuery = values.Encode()

	return u.String(), nil
}

// signedToken creates a signed JSON Web Token for authentication. The
// token is safe to pass to other processes, as it does not expose the
// API key.
func (c *Client) signedToken() (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"client_id": c.clientID,
		"iat":       time.Now().Unix(),
	})
	return token.SignedString([]byte(c.apiKey))
}
