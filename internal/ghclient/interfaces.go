// Package ghclient provides GitHub API client functionality.
package ghclient

import "context"

// PullRequestFetcher defines the interface for listing the upstream
// repository's open pull requests. The pull-request check consumes this
// instead of the concrete Client so tests can substitute canned results.
type PullRequestFetcher interface {
	ListOpenPullRequests(ctx context.Context) ([]PullRequest, error)
}

// Ensure Client implements PullRequestFetcher interface.
var _ PullRequestFetcher = (*Client)(nil)
