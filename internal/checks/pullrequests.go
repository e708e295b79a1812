package checks

import (
	"context"
	"strings"

	"github.com/jrjsmrtn/macports-scripts/config"
	"github.com/jrjsmrtn/macports-scripts/internal/ghclient"
	"github.com/jrjsmrtn/macports-scripts/internal/log"
	"github.com/jrjsmrtn/macports-scripts/internal/macports"
	"github.com/jrjsmrtn/macports-scripts/internal/ports"
)

// PullRequests reports the upstream repository's open pull requests that
// concern the maintainer: authored by them, or touching one of their ports.
type PullRequests struct {
	fetcher ghclient.PullRequestFetcher
	filter  *ports.Filter
	opts    config.CheckOptions
}

// NewPullRequests returns the pull-request check for one maintainer.
func NewPullRequests(fetcher ghclient.PullRequestFetcher, pm macports.PackageManager, opts config.CheckOptions) *PullRequests {
	return &PullRequests{
		fetcher: fetcher,
		filter:  ports.NewFilter(pm),
		opts:    opts,
	}
}

func (c *PullRequests) Name() string { return config.SectionPullRequests }

// Run fetches all open pull requests and keeps the relevant ones.
func (c *PullRequests) Run(ctx context.Context) (Section, error) {
	section := Section{Check: c.Name()}

	effective, err := c.filter.EffectivePorts(ctx, c.opts)
	if err != nil {
		return section, err
	}

	prs, err := c.fetcher.ListOpenPullRequests(ctx)
	if err != nil {
		return section, err
	}

	section.PullRequests = MatchPullRequests(prs, c.opts.Maintainer, effective)
	log.Info("matched pull requests", "kept", len(section.PullRequests), "open", len(prs))
	return section, nil
}

// MatchPullRequests keeps pull requests authored by the maintainer or whose
// title references one of the effective ports.
func MatchPullRequests(prs []ghclient.PullRequest, maintainer string, effective []string) []ghclient.PullRequest {
	set := make(map[string]struct{}, len(effective))
	for _, port := range effective {
		set[port] = struct{}{}
	}

	var kept []ghclient.PullRequest
	for _, pr := range prs {
		if pr.Author == maintainer {
			kept = append(kept, pr)
			continue
		}
		for _, word := range TitlePorts(pr.Title) {
			if _, ok := set[word]; ok {
				kept = append(kept, pr)
				break
			}
		}
	}
	return kept
}

// TitlePorts returns the whitespace-separated words before the first ": "
// of a pull-request title. Titles conventionally prefix the affected port
// ("cmake: update to 3.30"). A multi-port prefix like "cmake, curl:" yields
// comma-suffixed words that match no port name.
func TitlePorts(title string) []string {
	head := strings.Split(title, ": ")[0]
	return strings.Fields(head)
}
