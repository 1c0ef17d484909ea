package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/awray/streakcard/internal/streak"
)

// calendarQuery pulls the per-day contribution calendar for a user over a
// date window. The calendar is GitHub's own long-range aggregation, which
// makes it the authoritative baseline the fresher events feed is merged
// onto.
const calendarQuery = `query($login: String!, $from: DateTime!, $to: DateTime!) {
  user(login: $login) {
    contributionsCollection(from: $from, to: $to) {
      contributionCalendar {
        weeks {
          contributionDays {
            date
            contributionCount
          }
        }
      }
    }
  }
}`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type calendarResponse struct {
	Data struct {
		User *struct {
			ContributionsCollection struct {
				ContributionCalendar struct {
					Weeks []struct {
						ContributionDays []struct {
							Date              string `json:"date"`
							ContributionCount int    `json:"contributionCount"`
						} `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// FetchCalendar retrieves the user's contribution calendar for the
// lookbackDays window ending now, already aggregated into a day-count map.
// Requires a token; the GraphQL API rejects anonymous queries.
func (c *Client) FetchCalendar(ctx context.Context, username string, lookbackDays int) (streak.Contributions, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if c.token == "" {
		return nil, fmt.Errorf("the contribution calendar requires a GitHub token")
	}
	if lookbackDays < 1 {
		lookbackDays = defaultLookbackDays
	}

	now := time.Now().UTC()
	body, err := json.Marshal(graphQLRequest{
		Query: calendarQuery,
		Variables: map[string]any{
			"login": username,
			"from":  now.AddDate(0, 0, -lookbackDays).Format(time.RFC3339),
			"to":    now.Format(time.RFC3339),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding calendar query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphQLURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating calendar request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching calendar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(raw)),
		}
	}

	var parsed calendarResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding calendar response: %w", err)
	}
	if len(parsed.Errors) > 0 {
		return nil, fmt.Errorf("calendar query failed: %s", parsed.Errors[0].Message)
	}
	if parsed.Data.User == nil {
		return nil, fmt.Errorf("github user %q not found", username)
	}

	byDay := make(streak.Contributions)
	for _, week := range parsed.Data.User.ContributionsCollection.ContributionCalendar.Weeks {
		for _, cd := range week.ContributionDays {
			day, err := streak.ParseDay(cd.Date)
			if err != nil {
				continue // skip a malformed calendar cell, keep the rest
			}
			if cd.ContributionCount > 0 {
				byDay[day] = cd.ContributionCount
			}
		}
	}
	return byDay, nil
}
