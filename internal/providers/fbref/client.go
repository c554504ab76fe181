package fbref

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/pl-spend-service/internal/domain/wages"
	"github.com/preston-bernstein/pl-spend-service/internal/providers"
	"github.com/preston-bernstein/pl-spend-service/internal/season"
)

// Config controls how the client reaches FBref.
type Config struct {
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client scrapes Premier League wage tables from FBref.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs an FBref client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		userAgent:  resolveUserAgent(cfg.UserAgent),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		now:        time.Now,
	}
}

func (c *Client) Name() string {
	return providerName
}

// SeasonURL returns the wages page for a YYYY-YYYY season.
func (c *Client) SeasonURL(s string) (string, error) {
	slug, err := season.Slug(s)
	if err != nil {
		return "", err
	}
	return c.baseURL + fmt.Sprintf(wagesPathFormat, slug), nil
}

// FetchWages downloads and parses one season's wage table.
func (c *Client) FetchWages(ctx context.Context, s string) ([]wages.Row, error) {
	url, err := c.SeasonURL(s)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Message:    "fbref rate limited",
		}
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	tables, err := ParseTables(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fbref: parse %s: %w", s, err)
	}
	rows, err := mapWages(tables, s)
	if err != nil {
		return nil, fmt.Errorf("fbref: %s: %w", s, err)
	}
	return rows, nil
}
