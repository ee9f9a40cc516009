package storefront

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"doorops/internal/config"
)

const (
	userAgent    = "doorops"
	maxErrorBody = 512
)

// HTTPDoer describes the HTTP client used by the storefront client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls the storefront API.
type Client struct {
	BaseURL        string
	ProductsPath   string
	CacheClearPath string
	HTTP           HTTPDoer
}

// StatusError reports a non-2xx response.
type StatusError struct {
	URL  string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned %d", e.URL, e.Code)
	}
	return fmt.Sprintf("%s returned %d: %s", e.URL, e.Code, e.Body)
}

// NewClient builds a Client from the storefront section of cfg.
func NewClient(cfg config.Storefront) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		ProductsPath:   cfg.ProductsPath,
		CacheClearPath: cfg.CacheClearPath,
		HTTP:           &http.Client{Timeout: timeout},
	}
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.BaseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// get performs a GET and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: endpoint, Code: resp.StatusCode, Body: truncate(strings.TrimSpace(string(body)), maxErrorBody)}
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
