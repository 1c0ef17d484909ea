package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func eventJSON(createdAt string, commits int) string {
	shas := make([]string, commits)
	for i := range shas {
		shas[i] = fmt.Sprintf(`{"sha":"abc%d","message":"change %d"}`, i, i)
	}
	return fmt.Sprintf(`{"type":"PushEvent","created_at":%q,"payload":{"commits":[%s]}}`,
		createdAt, strings.Join(shas, ","))
}

func TestFetchEvents_SinglePage(t *testing.T) {
	var gotReq *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(r.Context())
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, "[%s,%s]",
			eventJSON(time.Now().UTC().Format(time.RFC3339), 2),
			eventJSON(time.Now().UTC().Format(time.RFC3339), 1))
	}))
	defer server.Close()

	c := NewClient(Config{APIBase: server.URL, Token: "tok_123"})
	events, err := c.FetchEvents(context.Background(), "octocat", EventOptions{})
	if err != nil {
		t.Fatalf("FetchEvents failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if len(events[0].Payload.Commits) != 2 {
		t.Errorf("first event commits = %d, want 2", len(events[0].Payload.Commits))
	}

	if got := gotReq.URL.Path; got != "/users/octocat/events/public" {
		t.Errorf("request path = %q", got)
	}
	if got := gotReq.URL.Query().Get("per_page"); got != "100" {
		t.Errorf("per_page = %q, want 100", got)
	}
	if got := gotReq.Header.Get("Accept"); got != "application/vnd.github+json" {
		t.Errorf("Accept header = %q", got)
	}
	if got := gotReq.Header.Get("Authorization"); got != "Bearer tok_123" {
		t.Errorf("Authorization header = %q", got)
	}
	if gotReq.Header.Get("User-Agent") == "" {
		t.Error("expected a User-Agent header")
	}
}

func TestFetchEvents_NoAuthHeaderWithoutToken(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		fmt.Fprint(w, "[]")
	}))
	defer server.Close()

	c := NewClient(Config{APIBase: server.URL})
	if _, err := c.FetchEvents(context.Background(), "octocat", EventOptions{}); err != nil {
		t.Fatalf("FetchEvents failed: %v", err)
	}
	if auth != "" {
		t.Errorf("Authorization header = %q, want empty for anonymous fetch", auth)
	}
}

func TestFetchEvents_FollowsNextLink(t *testing.T) {
	recent := time.Now().UTC().Format(time.RFC3339)

	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("page") {
		case "", "1":
			w.Header().Set("Link",
				fmt.Sprintf(`<%s/users/octocat/events/public?page=2&per_page=100>; rel="next"`, server.URL))
			fmt.Fprintf(w, "[%s]", eventJSON(recent, 1))
		case "2":
			fmt.Fprintf(w, "[%s]", eventJSON(recent, 3))
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	defer server.Close()

	c := NewClient(Config{APIBase: server.URL})
	events, err := c.FetchEvents(context.Background(), "octocat", EventOptions{MaxPages: 5})
	if err != nil {
		t.Fatalf("FetchEvents failed: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("got %d events across pages, want 2", len(events))
	}
}

func TestFetchEvents_MaxPagesCapsPagination(t *testing.T) {
	recent := time.Now().UTC().Format(time.RFC3339)

	var requests int
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		// Every page advertises another one.
		w.Header().Set("Link",
			fmt.Sprintf(`<%s/users/octocat/events/public?page=%d&per_page=100>; rel="next"`, server.URL, requests+1))
		fmt.Fprintf(w, "[%s]", eventJSON(recent, 1))
	}))
	defer server.Close()

	c := NewClient(Config{APIBase: server.URL})
	events, err := c.FetchEvents(context.Background(), "octocat", EventOptions{MaxPages: 2})
	if err != nil {
		t.Fatalf("FetchEvents failed: %v", err)
	}
	if requests != 2 {
		t.Errorf("made %d requests, want 2", requests)
	}
	if len(events) != 2 {
		t.Errorf("got %d events, want 2", len(events))
	}
}

func TestFetchEvents_StopsOncePageOlderThanLookback(t *testing.T) {
	stale := time.Now().UTC().AddDate(0, 0, -40).Format(time.RFC3339)

	var requests int
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Link",
			fmt.Sprintf(`<%s/users/octocat/events/public?page=2&per_page=100>; rel="next"`, server.URL))
		fmt.Fprintf(w, "[%s]", eventJSON(stale, 1))
	}))
	defer server.Close()

	c := NewClient(Config{APIBase: server.URL})
	events, err := c.FetchEvents(context.Background(), "octocat", EventOptions{MaxPages: 5, LookbackDays: 30})
	if err != nil {
		t.Fatalf("FetchEvents failed: %v", err)
	}
	if requests != 1 {
		t.Errorf("made %d requests, want 1 (page already past the lookback window)", requests)
	}
	if len(events) != 1 {
		t.Errorf("got %d events, want 1 (stale page still returned)", len(events))
	}
}

func TestFetchEvents_PaginationDepthCapIsNotAnError(t *testing.T) {
	recent := time.Now().UTC().Format(time.RFC3339)

	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			fmt.Fprint(w, `{"message":"In order to keep the API fast for everyone, pagination is limited."}`)
			return
		}
		w.Header().Set("Link",
			fmt.Sprintf(`<%s/users/octocat/events/public?page=2&per_page=100>; rel="next"`, server.URL))
		fmt.Fprintf(w, "[%s]", eventJSON(recent, 2))
	}))
	defer server.Close()

	c := NewClient(Config{APIBase: server.URL})
	events, err := c.FetchEvents(context.Background(), "octocat", EventOptions{MaxPages: 5})
	if err != nil {
		t.Fatalf("expected graceful stop at pagination cap, got: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("got %d events, want 1 (first page kept)", len(events))
	}
}

func TestFetchEvents_AuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"API rate limit exceeded"}`)
	}))
	defer server.Close()

	c := NewClient(Config{APIBase: server.URL})
	_, err := c.FetchEvents(context.Background(), "octocat", EventOptions{})
	if err == nil {
		t.Fatal("expected error for 403 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want 403", apiErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "auth/rate-limit") {
		t.Errorf("expected auth/rate-limit wording, got: %v", err)
	}
}

func TestFetchEvents_EmptyPageStops(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Link",
			fmt.Sprintf(`<%s/users/octocat/events/public?page=2&per_page=100>; rel="next"`, server.URL))
		fmt.Fprint(w, "[]")
	}))
	defer server.Close()

	c := NewClient(Config{APIBase: server.URL})
	events, err := c.FetchEvents(context.Background(), "octocat", EventOptions{MaxPages: 5})
	if err != nil {
		t.Fatalf("FetchEvents failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events, want 0", len(events))
	}
}

func TestFetchEvents_RequiresUsername(t *testing.T) {
	c := NewClient(Config{})
	if _, err := c.FetchEvents(context.Background(), "", EventOptions{}); err == nil {
		t.Error("expected error for empty username")
	}
}

func TestParseNextURL(t *testing.T) {
	cases := []struct {
		name string
		link string
		want string
	}{
		{"empty", "", ""},
		{"next only",
			`<https://api.github.com/user/1/events/public?page=2>; rel="next"`,
			"https://api.github.com/user/1/events/public?page=2"},
		{"next among others",
			`<https://api.github.com/x?page=9>; rel="last", <https://api.github.com/x?page=2>; rel="next"`,
			"https://api.github.com/x?page=2"},
		{"no next", `<https://api.github.com/x?page=1>; rel="prev"`, ""},
		{"malformed brackets", `https://api.github.com/x?page=2; rel="next"`, ""},
	}
	for _, c := range cases {
		if got := parseNextURL(c.link); got != c.want {
			t.Errorf("%s: parseNextURL = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestEventRecord(t *testing.T) {
	var e Event
	e.Type = "PushEvent"
	e.CreatedAt = "2026-08-29T10:00:00Z"
	e.Payload.Commits = append(e.Payload.Commits, struct {
		SHA     string `json:"sha"`
		Message string `json:"message"`
	}{SHA: "abc", Message: "fix"})

	r := e.Record()
	if r.Kind != "PushEvent" || r.Timestamp != "2026-08-29T10:00:00Z" || r.Count != 1 {
		t.Errorf("Record = %+v", r)
	}
}
