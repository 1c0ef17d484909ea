// Package github fetches a user's public activity from the GitHub API:
// the recent public-events feed (REST, paginated) and the long-range
// contribution calendar (GraphQL). It hands back plain data for the streak
// engine and has no opinion about what happens to it.
package github

import (
	"fmt"
	"net/http"
	"time"
)

const (
	defaultAPIBase    = "https://api.github.com"
	defaultGraphQLURL = "https://api.github.com/graphql"
	requestTimeout    = 30 * time.Second

	// perPage is the REST page size. 100 is the API maximum, which keeps
	// the page count (and rate-limit spend) low for a given lookback.
	perPage = 100
)

// APIError is a failed GitHub API call: the HTTP status plus whatever the
// API said about it.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return fmt.Sprintf("github auth/rate-limit error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("github api error %d: %s", e.StatusCode, e.Message)
}

// Config carries the endpoints and credentials for a Client. The zero value
// targets the public GitHub API anonymously.
type Config struct {
	// APIBase overrides the REST base URL (tests, GitHub Enterprise).
	APIBase string

	// GraphQLURL overrides the GraphQL endpoint.
	GraphQLURL string

	// Token is a GitHub API token. Optional for the public events feed,
	// required for the contribution calendar.
	Token string
}

// Client talks to the GitHub API.
type Client struct {
	apiBase    string
	graphQLURL string
	token      string
	http       *http.Client
}

// NewClient creates a Client from cfg, filling in public-API defaults.
func NewClient(cfg Config) *Client {
	c := &Client{
		apiBase:    cfg.APIBase,
		graphQLURL: cfg.GraphQLURL,
		token:      cfg.Token,
		http:       &http.Client{Timeout: requestTimeout},
	}
	if c.apiBase == "" {
		c.apiBase = defaultAPIBase
	}
	if c.graphQLURL == "" {
		c.graphQLURL = defaultGraphQLURL
	}
	return c
}

// setHeaders applies the standard GitHub request headers.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "streakcard")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
