package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/awray/streakcard/internal/streak"
)

// Event is one entry from the public events feed, trimmed to the fields the
// streak engine cares about. CreatedAt stays a raw string so a malformed
// timestamp degrades to a skipped record instead of a decode failure.
type Event struct {
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
	Payload   struct {
		Commits []struct {
			SHA     string `json:"sha"`
			Message string `json:"message"`
		} `json:"commits"`
	} `json:"payload"`
}

// Record converts the event into the streak engine's input shape. The item
// count is the number of commits in the push payload.
func (e Event) Record() streak.Record {
	return streak.Record{
		Kind:      e.Type,
		Timestamp: e.CreatedAt,
		Count:     len(e.Payload.Commits),
	}
}

// Records converts a batch of events.
func Records(events []Event) []streak.Record {
	records := make([]streak.Record, len(events))
	for i, e := range events {
		records[i] = e.Record()
	}
	return records
}

// EventOptions bounds an events fetch.
type EventOptions struct {
	// MaxPages caps the number of API pages fetched, clamped to 1..10.
	// GitHub refuses to paginate the events feed deeper than that anyway.
	MaxPages int

	// LookbackDays stops paging once a whole page is older than this many
	// days before now. Minimum 1.
	LookbackDays int
}

const (
	defaultMaxPages     = 5
	maxPagesCeiling     = 10
	defaultLookbackDays = 120
)

func (o EventOptions) normalized() EventOptions {
	if o.MaxPages < 1 {
		o.MaxPages = defaultMaxPages
	}
	if o.MaxPages > maxPagesCeiling {
		o.MaxPages = maxPagesCeiling
	}
	if o.LookbackDays < 1 {
		o.LookbackDays = defaultLookbackDays
	}
	return o
}

// FetchEvents retrieves the user's recent public events, following
// rel="next" pagination links until the page budget runs out, the feed
// ends, or a page falls entirely outside the lookback window.
//
// GitHub caps events-feed pagination depth; the resulting 422 is treated
// as "no more pages", not an error. Auth and rate-limit failures (401/403)
// surface as *APIError so callers can suggest a token.
func (c *Client) FetchEvents(ctx context.Context, username string, opts EventOptions) ([]Event, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	opts = opts.normalized()

	cutoff := time.Now().UTC().AddDate(0, 0, -opts.LookbackDays)

	next := fmt.Sprintf("%s/users/%s/events/public?%s",
		c.apiBase, url.PathEscape(username), url.Values{"per_page": {fmt.Sprint(perPage)}}.Encode())

	var events []Event
	for page := 0; next != "" && page < opts.MaxPages; page++ {
		pageEvents, link, err := c.fetchEventPage(ctx, next)
		if err != nil {
			// Pagination depth exceeded: GitHub returns 422 with a
			// "pagination is limited" message. Stop with what we have.
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnprocessableEntity &&
				strings.Contains(strings.ToLower(apiErr.Message), "pagination is limited") {
				break
			}
			return nil, err
		}
		if len(pageEvents) == 0 {
			break
		}

		events = append(events, pageEvents...)
		next = parseNextURL(link)

		// Everything older than the lookback window is irrelevant to the
		// streak math, so stop as soon as a page dips below the cutoff.
		if oldest, ok := pageOldest(pageEvents); ok && oldest.Before(cutoff) {
			break
		}
	}

	return events, nil
}

// fetchEventPage GETs one page and returns its events plus the Link header.
func (c *Client) fetchEventPage(ctx context.Context, pageURL string) ([]Event, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating events request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetching events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, "", &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	var events []Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, "", fmt.Errorf("decoding events page: %w", err)
	}
	return events, resp.Header.Get("Link"), nil
}

// parseNextURL extracts the rel="next" URL from a GitHub Link header, or ""
// when there is no next page.
func parseNextURL(link string) string {
	if link == "" {
		return ""
	}
	for _, chunk := range strings.Split(link, ",") {
		part := strings.TrimSpace(chunk)
		if !strings.Contains(part, `rel="next"`) {
			continue
		}
		start := strings.IndexByte(part, '<')
		end := strings.IndexByte(part, '>')
		if start != -1 && end > start {
			return part[start+1 : end]
		}
	}
	return ""
}

// pageOldest returns the oldest parseable timestamp in a page of events.
func pageOldest(events []Event) (time.Time, bool) {
	var oldest time.Time
	var found bool
	for _, e := range events {
		t, err := time.Parse(time.RFC3339, e.CreatedAt)
		if err != nil {
			continue
		}
		if !found || t.Before(oldest) {
			oldest = t
			found = true
		}
	}
	return oldest, found
}
