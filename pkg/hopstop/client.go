package hopstop

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

var baseURL = "http://cm1-route.brighterplanet.com"

// retryDelay is multiplied by the attempt number between retries
var retryDelay = time.Second

const maxAttempts = 3

// Client talks to the HopStop proxy
type Client struct {
	httpClient *http.Client
	baseURL    string
	useCache   bool
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at another proxy instance
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCache enables the on-disk response cache
func WithCache(enabled bool) Option {
	return func(c *Client) {
		c.useCache = enabled
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getWithRetries attempts an HTTP GET request up to 3 times for 502/503/504/timeout errors
func (c *Client) getWithRetries(ctx context.Context, reqURL string) (*http.Response, error) {
	var lastErr error
	var lastStatus int

	for attempt := 0; attempt < maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "hootroot/1.0")
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err == nil {
			switch resp.StatusCode {
			case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
				resp.Body.Close()
				lastStatus = resp.StatusCode
				lastErr = fmt.Errorf("transient status code: %d", resp.StatusCode)
			default:
				return resp, nil
			}
		} else {
			lastStatus = 0
			lastErr = err
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt < maxAttempts-1 {
			fmt.Fprintf(os.Stderr, "[HopStop] Upstream congested, retrying... (Attempt %d/%d)\n", attempt+1, maxAttempts)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt+1) * retryDelay):
			}
		}
	}

	if lastStatus != 0 {
		return nil, &Error{StatusCode: lastStatus, Message: fmt.Sprintf("failed after %d attempts", maxAttempts)}
	}
	return nil, fmt.Errorf("failed after %d attempts: %w", maxAttempts, lastErr)
}

// Fetch requests transit directions for the given params
func (c *Client) Fetch(ctx context.Context, p Params) (*Result, error) {
	// The full URL keys the cache so answers from another proxy are never reused
	reqURL := fmt.Sprintf("%s/hopstops?%s", c.baseURL, p.Encode())

	if c.useCache {
		if cached, ok := readCache(reqURL); ok {
			return cached, nil
		}
	}

	resp, err := c.getWithRetries(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hopstop directions: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read hopstop response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &Error{StatusCode: resp.StatusCode, Message: msg}
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode hopstop JSON: %w", err)
	}

	if result.Error != "" {
		return nil, &Error{StatusCode: resp.StatusCode, Message: result.Error}
	}
	if len(result.Steps) == 0 {
		return nil, &Error{StatusCode: resp.StatusCode, Message: "no steps returned"}
	}

	if c.useCache {
		writeCache(reqURL, &result)
	}

	return &result, nil
}
