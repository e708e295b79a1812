package ghclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"testing"
	"time"

	gh "github.com/google/go-github/v57/github"
)

func TestConvertPullRequest(t *testing.T) {
	pr := &gh.PullRequest{
		Number: gh.Int(4242),
		Title:  gh.String("cmake: update to 3.30.2"),
		User:   &gh.User{Login: gh.String("alice")},
		Labels: []*gh.Label{
			{Name: gh.String("maintainer")},
			{Name: gh.String("by a member")},
		},
	}

	got := convertPullRequest(pr)
	want := PullRequest{
		Number: 4242,
		Title:  "cmake: update to 3.30.2",
		Author: "alice",
		Labels: []string{"maintainer", "by a member"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("convertPullRequest() = %+v, want %+v", got, want)
	}
}

func TestConvertPullRequestNoLabels(t *testing.T) {
	pr := &gh.PullRequest{
		Number: gh.Int(1),
		Title:  gh.String("unrelated change"),
		User:   &gh.User{Login: gh.String("bob")},
	}

	got := convertPullRequest(pr)
	if got.Labels != nil {
		t.Errorf("Labels = %v, want nil", got.Labels)
	}
}

func TestParseRateLimitHeaders(t *testing.T) {
	reset := time.Now().Add(time.Hour).Unix()
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set("X-RateLimit-Remaining", "42")
	resp.Header.Set("X-RateLimit-Limit", "60")
	resp.Header.Set("X-RateLimit-Reset", strconv.FormatInt(reset, 10))

	remaining, limit, resetAt := parseRateLimitHeaders(resp)
	if remaining != 42 {
		t.Errorf("remaining = %d, want 42", remaining)
	}
	if limit != 60 {
		t.Errorf("limit = %d, want 60", limit)
	}
	if resetAt.Unix() != reset {
		t.Errorf("resetAt = %v, want unix %d", resetAt, reset)
	}
}

func TestParseRateLimitHeadersAbsent(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}

	remaining, limit, _ := parseRateLimitHeaders(resp)
	if remaining != -1 || limit != -1 {
		t.Errorf("parseRateLimitHeaders() = (%d, %d), want (-1, -1)", remaining, limit)
	}
}

func TestRateLimitStateReset(t *testing.T) {
	s := &RateLimitState{}

	s.SetLimited(true, time.Now().Add(time.Hour))
	if !s.IsLimited() {
		t.Error("IsLimited() = false before reset time")
	}

	s.SetLimited(true, time.Now().Add(-time.Minute))
	if s.IsLimited() {
		t.Error("IsLimited() = true after reset time")
	}
}

func TestRateLimitTransportExhaustion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Limit", "60")
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10))
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()
	defer globalRateLimitState.SetLimited(false, time.Time{})

	client := &http.Client{Transport: &rateLimitTransport{base: http.DefaultTransport}}

	_, err := client.Get(server.URL)
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("Get() error = %v, want ErrRateLimited", err)
	}

	// Subsequent requests fail fast without reaching the server.
	_, err = client.Get(server.URL)
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("second Get() error = %v, want ErrRateLimited", err)
	}
}

func TestNewClientAnonymous(t *testing.T) {
	c := NewClient(context.Background(), "")
	if c == nil || c.client == nil {
		t.Fatal("NewClient() returned an unusable client")
	}
}
