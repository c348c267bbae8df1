// Package fetch retrieves the conference JSON feeds.
//
// Two resources exist: the upcoming feed, loaded eagerly once at startup,
// and the archive feed, loaded lazily the first time past conferences are
// requested. There is no retry logic; a failed load surfaces as an error
// for the UI to report.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/tobna/ai-deadlines/internal/conference"
)

// ErrDataLoad marks a network, status, or decode failure on a feed.
var ErrDataLoad = errors.New("data load failure")

const userAgent = "ai-deadlines/1.0 (https://github.com/tobna/ai-deadlines)"

// Client fetches conference feeds from a base URL.
type Client struct {
	http         *http.Client
	limiter      *rate.Limiter
	baseURL      string
	upcomingPath string
	archivePath  string
}

// NewClient creates a Client. Paths are resolved relative to baseURL.
// Requests are rate limited to one per second with a small burst, enough
// for the two feeds this program ever asks for.
func NewClient(baseURL, upcomingPath, archivePath string, timeout time.Duration) *Client {
	return &Client{
		http:         &http.Client{Timeout: timeout},
		limiter:      rate.NewLimiter(rate.Every(time.Second), 2),
		baseURL:      baseURL,
		upcomingPath: upcomingPath,
		archivePath:  archivePath,
	}
}

// Upcoming fetches the upcoming-conferences feed.
func (c *Client) Upcoming(ctx context.Context) ([]conference.Record, error) {
	return c.fetch(ctx, c.upcomingPath)
}

// Archive fetches the past-conferences feed.
func (c *Client) Archive(ctx context.Context) ([]conference.Record, error) {
	return c.fetch(ctx, c.archivePath)
}

func (c *Client) fetch(ctx context.Context, path string) ([]conference.Record, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve %q: %v", ErrDataLoad, path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrDataLoad, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataLoad, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d for %s", ErrDataLoad, resp.StatusCode, path)
	}

	var records []conference.Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrDataLoad, path, err)
	}
	return records, nil
}
