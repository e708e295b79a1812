package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jrjsmrtn/macports-scripts/internal/checks"
	"github.com/jrjsmrtn/macports-scripts/internal/ghclient"
	"github.com/jrjsmrtn/macports-scripts/internal/trac"
	"github.com/nao1215/markdown"
)

// MarkdownRenderer writes a report as a Markdown document.
type MarkdownRenderer struct{}

// Render emits one H2 section per check under a common header.
func (r *MarkdownRenderer) Render(report checks.Report, w io.Writer) error {
	md := markdown.NewMarkdown(w)

	md.H1("MacPorts maintainer report")
	md.PlainText("")
	md.PlainTextf("*Generated: %s*", report.GeneratedAt.Format("2006-01-02 15:04"))
	md.PlainText("")

	for _, section := range report.Sections {
		writeSection(md, section)
	}

	return md.Build()
}

func writeSection(md *markdown.Markdown, section checks.Section) {
	md.H2(section.Check)
	md.PlainText("")

	switch {
	case section.Err != nil:
		md.Warningf("Check failed: %v", section.Err)
	case len(section.Tickets) > 0:
		writeTicketTable(md, section.Tickets)
	case len(section.PullRequests) > 0:
		writePullRequestTable(md, section.PullRequests)
	case section.Empty():
		md.PlainText(emptyText(section.Check))
	default:
		md.CodeBlocks(markdown.SyntaxHighlightText, strings.Join(section.Lines, "\n"))
	}
	md.PlainText("")
}

func writeTicketTable(md *markdown.Markdown, tickets []trac.Ticket) {
	rows := make([][]string, len(tickets))
	for i, t := range tickets {
		rows[i] = []string{
			fmt.Sprintf("[#%d](%s)", t.ID, ticketURL(t.ID)),
			t.Port,
			t.Type,
			t.Status,
			t.Summary,
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Ticket", "Port", "Type", "Status", "Summary"},
		Rows:   rows,
	})
}

func writePullRequestTable(md *markdown.Markdown, prs []ghclient.PullRequest) {
	rows := make([][]string, len(prs))
	for i, pr := range prs {
		rows[i] = []string{
			fmt.Sprintf("[#%d](%s)", pr.Number, pullRequestURL(pr.Number)),
			pr.Title,
			pr.Author,
			strings.Join(pr.Labels, ", "),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"PR", "Title", "Author", "Labels"},
		Rows:   rows,
	})
}
