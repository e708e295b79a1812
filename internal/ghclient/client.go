package ghclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gh "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/jrjsmrtn/macports-scripts/internal/log"
)

// The one upstream repository every pull request lands in.
const (
	UpstreamOwner = "macports"
	UpstreamRepo  = "macports-ports"
)

// defaultTimeout bounds a single API request.
const defaultTimeout = 30 * time.Second

// PullRequest is one open pull request of the upstream repository, reduced
// to the report columns.
type PullRequest struct {
	Number int
	Title  string
	Author string
	Labels []string
}

// Client wraps the GitHub API client.
type Client struct {
	client *gh.Client
}

// NewClient creates a GitHub client. An empty token yields an anonymous
// client, which can list public pull requests at a reduced rate limit;
// a token raises the limit.
func NewClient(ctx context.Context, token string) *Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(ctx, ts)
		httpClient.Transport = &rateLimitTransport{base: httpClient.Transport}
		log.Debug("using authenticated GitHub client")
	} else {
		httpClient = &http.Client{
			Transport: &rateLimitTransport{base: http.DefaultTransport},
		}
		log.Debug("using anonymous GitHub client")
	}
	httpClient.Timeout = defaultTimeout

	return &Client{client: gh.NewClient(httpClient)}
}

// ListOpenPullRequests fetches every open pull request of the upstream
// ports repository, following pagination. Labels arrive inline with each
// pull request.
func (c *Client) ListOpenPullRequests(ctx context.Context) ([]PullRequest, error) {
	opts := &gh.PullRequestListOptions{
		State: "open",
		ListOptions: gh.ListOptions{
			PerPage: 100,
		},
	}

	var prs []PullRequest
	for {
		page, resp, err := c.client.PullRequests.List(ctx, UpstreamOwner, UpstreamRepo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list open pull requests: %w", err)
		}

		for _, pr := range page {
			prs = append(prs, convertPullRequest(pr))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	log.Debug("fetched open pull requests", "count", len(prs))

	return prs, nil
}

// convertPullRequest flattens the API shape to the report row.
func convertPullRequest(pr *gh.PullRequest) PullRequest {
	var labels []string
	for _, label := range pr.Labels {
		labels = append(labels, label.GetName())
	}

	return PullRequest{
		Number: pr.GetNumber(),
		Title:  pr.GetTitle(),
		Author: pr.GetUser().GetLogin(),
		Labels: labels,
	}
}
