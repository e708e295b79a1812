// Package render turns check results into terminal and Markdown reports.
package render

import (
	"fmt"
	"io"

	"github.com/jrjsmrtn/macports-scripts/config"
	"github.com/jrjsmrtn/macports-scripts/internal/checks"
	"github.com/jrjsmrtn/macports-scripts/internal/ghclient"
	"github.com/jrjsmrtn/macports-scripts/internal/trac"
)

// Renderer writes a report to an output stream.
type Renderer interface {
	Render(report checks.Report, w io.Writer) error
}

var (
	_ Renderer = (*TableRenderer)(nil)
	_ Renderer = (*MarkdownRenderer)(nil)
)

// ticketURL returns the Trac page for a ticket.
func ticketURL(id int) string {
	return fmt.Sprintf("%s/ticket/%d", trac.DefaultBaseURL, id)
}

// pullRequestURL returns the upstream GitHub page for a pull request.
func pullRequestURL(number int) string {
	return fmt.Sprintf("https://github.com/%s/%s/pull/%d",
		ghclient.UpstreamOwner, ghclient.UpstreamRepo, number)
}

// emptyText is the line shown for a check that produced no findings.
func emptyText(check string) string {
	switch check {
	case config.SectionLivecheck:
		return "No upstream updates found."
	case config.SectionTickets:
		return "No relevant tickets."
	case config.SectionPullRequests:
		return "No relevant pull requests."
	case config.SectionLint:
		return "No lint complaints."
	default:
		return "Nothing to report."
	}
}
