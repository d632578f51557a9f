// Package jamf implements a minimal Jamf Pro API client using the
// bearer-token authentication flow. It covers only the endpoints the
// advisor needs: token exchange and paginated computer inventory.
package jamf

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	tokenPath     = "/api/v1/auth/token"
	inventoryPath = "/api/v1/computers-inventory"

	// Only request the inventory sections the snapshot actually uses.
	inventorySections = "GENERAL,SECURITY,OPERATING_SYSTEM"

	defaultTimeout           = 60 * time.Second
	defaultRequestsPerSecond = 8
)

// ClientConfig carries the connection settings for a Client.
type ClientConfig struct {
	BaseURL           string
	ClientID          string
	ClientSecret      string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// Client talks to a single Jamf Pro server. It caches one bearer token for
// its lifetime and re-acquires it at most once per request on a 401.
// A Client is not safe for concurrent use; the advisor runs a single
// sequential fetch per invocation.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	limiter      *rate.Limiter
	logger       *zap.Logger

	token string
}

// NewClient validates cfg and returns a ready Client. Missing base URL or
// credentials is a *ConfigError; no network I/O happens here.
func NewClient(cfg ClientConfig, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, &ConfigError{Reason: "base URL is not set"}
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, &ConfigError{Reason: "client ID and client secret must be set"}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRequestsPerSecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient:   &http.Client{Timeout: timeout},
		limiter:      rate.NewLimiter(rate.Limit(rps), 1),
		logger:       logger,
	}, nil
}

// FetchInventory returns up to maxDevices devices, paging through the
// inventory endpoint in increasing page order. Pagination stops when the
// cap is reached, a page comes back empty, or a page comes back short
// (last page). A final page that overshoots the cap is truncated.
//
// maxDevices <= 0 returns an empty slice without issuing any request.
// pageSize <= 0 is a *ConfigError, also surfaced before any request.
// Any fetch error discards pages already retrieved; a snapshot built from
// a partial fetch would misrepresent fleet posture.
func (c *Client) FetchInventory(ctx context.Context, maxDevices, pageSize int) ([]Device, error) {
	if pageSize <= 0 {
		return nil, &ConfigError{Reason: fmt.Sprintf("page size must be positive, got %d", pageSize)}
	}
	if maxDevices <= 0 {
		return []Device{}, nil
	}

	devices := make([]Device, 0, maxDevices)
	for page := 0; len(devices) < maxDevices; page++ {
		batch, err := c.FetchPage(ctx, page, pageSize)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		devices = append(devices, batch...)
		if len(batch) < pageSize {
			// Last page.
			break
		}
	}
	if len(devices) > maxDevices {
		devices = devices[:maxDevices]
	}

	c.logger.Info("fetched device inventory",
		zap.Int("devices", len(devices)),
		zap.Int("max_devices", maxDevices),
	)
	return devices, nil
}

// FetchPage issues one inventory request for the given 0-based page.
// On a 401 the cached token is discarded and the page is retried exactly
// once with a fresh token; a second 401 is a fatal *AuthError.
func (c *Client) FetchPage(ctx context.Context, page, pageSize int) ([]Device, error) {
	batch, unauthorized, err := c.requestPage(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	if unauthorized {
		// Token likely expired mid-run. Clear it and retry once.
		c.token = ""
		c.logger.Debug("inventory request unauthorized, refreshing token", zap.Int("page", page))

		batch, unauthorized, err = c.requestPage(ctx, page, pageSize)
		if err != nil {
			return nil, err
		}
		if unauthorized {
			return nil, &AuthError{Reason: "inventory request unauthorized twice, token refresh did not help"}
		}
	}
	return batch, nil
}

// requestPage performs a single inventory GET with the current token.
// A 401 is reported via the unauthorized flag so FetchPage owns the
// retry decision; every other non-200 is an *APIError.
func (c *Client) requestPage(ctx context.Context, page, pageSize int) (devices []Device, unauthorized bool, err error) {
	endpoint := c.baseURL + inventoryPath

	token, err := c.acquireToken(ctx)
	if err != nil {
		return nil, false, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, false, &APIError{Endpoint: endpoint, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, false, &APIError{Endpoint: endpoint, Err: err}
	}
	q := req.URL.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("page-size", strconv.Itoa(pageSize))
	q.Set("section", inventorySections)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, &APIError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, true, nil
	case resp.StatusCode != http.StatusOK:
		return nil, false, &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	var pageResp inventoryPage
	if err := json.NewDecoder(resp.Body).Decode(&pageResp); err != nil {
		return nil, false, &APIError{Endpoint: endpoint, Err: fmt.Errorf("decode inventory response: %w", err)}
	}
	return pageResp.Results, false, nil
}

// acquireToken returns the cached bearer token, exchanging the client
// credentials for a new one on first use or after invalidation.
func (c *Client) acquireToken(ctx context.Context) (string, error) {
	if c.token != "" {
		return c.token, nil
	}
	endpoint := c.baseURL + tokenPath

	if err := c.limiter.Wait(ctx); err != nil {
		return "", &APIError{Endpoint: endpoint, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, http.NoBody)
	if err != nil {
		return "", &APIError{Endpoint: endpoint, Err: err}
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &APIError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &AuthError{Reason: fmt.Sprintf("token endpoint returned status %d", resp.StatusCode)}
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", &AuthError{Reason: "token endpoint returned an unreadable response", Err: err}
	}
	if tr.Token == "" {
		return "", &AuthError{Reason: "token endpoint returned no token"}
	}

	c.token = tr.Token
	c.logger.Debug("acquired bearer token")
	return c.token, nil
}
