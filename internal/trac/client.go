package trac

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jrjsmrtn/macports-scripts/config"
	"github.com/jrjsmrtn/macports-scripts/internal/log"
)

// DefaultBaseURL is the MacPorts Trac instance.
const DefaultBaseURL = "https://trac.macports.org"

// defaultTimeout bounds one tracker query.
const defaultTimeout = 30 * time.Second

// StatusError reports a non-OK tracker response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tracker returned HTTP %d for %s", e.StatusCode, e.URL)
}

// Client queries a Trac instance over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a Client for the given Trac base URL. An empty base URL
// selects DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Tickets runs the maintainer's open-ticket query and parses the response.
// An empty result set is a valid outcome, not an error.
func (c *Client) Tickets(ctx context.Context, opts config.CheckOptions) ([]Ticket, error) {
	queryURL := BuildQueryURL(c.baseURL, opts)
	log.Debug("querying tracker", "url", queryURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building ticket query: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching tickets: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: queryURL}
	}

	tickets, err := ParseTSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing ticket response: %w", err)
	}
	return tickets, nil
}
