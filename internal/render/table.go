package render

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/jrjsmrtn/macports-scripts/internal/checks"
	"github.com/jrjsmrtn/macports-scripts/internal/ghclient"
	"github.com/jrjsmrtn/macports-scripts/internal/trac"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// ansiRegex matches ANSI escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// TableRenderer writes a report as plain-text tables for the terminal.
type TableRenderer struct{}

// Render prints each section of the report, separated by blank lines.
func (r *TableRenderer) Render(report checks.Report, w io.Writer) error {
	for i, section := range report.Sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		renderSection(section, w)
	}
	return nil
}

func renderSection(section checks.Section, w io.Writer) {
	fmt.Fprintln(w, color.CyanString(section.Check))
	fmt.Fprintln(w, strings.Repeat("-", displayWidth(section.Check)))

	switch {
	case section.Err != nil:
		fmt.Fprintf(w, "%s %v\n", color.RedString("check failed:"), section.Err)
	case len(section.Tickets) > 0:
		renderTickets(section.Tickets, w)
	case len(section.PullRequests) > 0:
		renderPullRequests(section.PullRequests, w)
	case section.Empty():
		fmt.Fprintln(w, emptyText(section.Check))
	default:
		for _, line := range section.Lines {
			fmt.Fprintln(w, line)
		}
	}
}

// Column widths for the ticket table.
const (
	colTicketID      = 7
	colTicketPort    = 18
	colTicketType    = 12
	colTicketStatus  = 9
	colTicketSummary = 60
)

func renderTickets(tickets []trac.Ticket, w io.Writer) {
	fmt.Fprintf(w, "%-*s  %-*s  %-*s  %-*s  %s\n",
		colTicketID, "Ticket",
		colTicketPort, "Port",
		colTicketType, "Type",
		colTicketStatus, "Status",
		"Summary")
	fmt.Fprintln(w, strings.Repeat("-", colTicketID+colTicketPort+colTicketType+colTicketStatus+colTicketSummary+8))

	for _, t := range tickets {
		id := fmt.Sprintf("#%d", t.ID)
		linked := hyperlink(id, ticketURL(t.ID))
		linked = padRight(linked, displayWidth(id), colTicketID)

		port, portWidth := truncateToWidth(t.Port, colTicketPort)
		summary, _ := truncateToWidth(t.Summary, colTicketSummary)

		fmt.Fprintf(w, "%s  %s  %-*s  %-*s  %s\n",
			linked,
			padRight(port, portWidth, colTicketPort),
			colTicketType, t.Type,
			colTicketStatus, t.Status,
			summary)
	}
}

// Column widths for the pull request table.
const (
	colPRNumber = 7
	colPRTitle  = 50
	colPRAuthor = 16
)

func renderPullRequests(prs []ghclient.PullRequest, w io.Writer) {
	fmt.Fprintf(w, "%-*s  %-*s  %-*s  %s\n",
		colPRNumber, "PR",
		colPRTitle, "Title",
		colPRAuthor, "Author",
		"Labels")
	fmt.Fprintln(w, strings.Repeat("-", colPRNumber+colPRTitle+colPRAuthor+12))

	for _, pr := range prs {
		number := fmt.Sprintf("#%d", pr.Number)
		linked := hyperlink(number, pullRequestURL(pr.Number))
		linked = padRight(linked, displayWidth(number), colPRNumber)

		title, titleWidth := truncateToWidth(pr.Title, colPRTitle)
		author, authorWidth := truncateToWidth(pr.Author, colPRAuthor)

		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			linked,
			padRight(title, titleWidth, colPRTitle),
			padRight(author, authorWidth, colPRAuthor),
			strings.Join(pr.Labels, ", "))
	}
}

// hyperlink creates a clickable terminal hyperlink using OSC 8.
// Format: \033]8;;URL\033\\TEXT\033]8;;\033\\
func hyperlink(text, url string) string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return text
	}
	return fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", url, text)
}

// stripAnsi removes ANSI escape sequences from a string.
func stripAnsi(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// displayWidth returns the visible width of a string in terminal columns,
// accounting for wide characters and stripping ANSI escape sequences.
func displayWidth(s string) int {
	return runewidth.StringWidth(stripAnsi(s))
}

// truncateToWidth truncates a string to fit within maxWidth display columns,
// appending an ellipsis when it cuts. Returns the string and its visible width.
func truncateToWidth(s string, maxWidth int) (string, int) {
	plain := stripAnsi(s)
	width := runewidth.StringWidth(plain)
	if width <= maxWidth {
		return s, width
	}

	cutWidth := 0
	cutIndex := len(plain)
	for i, r := range plain {
		rw := runewidth.RuneWidth(r)
		if cutWidth+rw > maxWidth-3 {
			cutIndex = i
			break
		}
		cutWidth += rw
	}
	return plain[:cutIndex] + "...", cutWidth + 3
}

// padRight pads a string with spaces to reach the target visible width.
func padRight(s string, visibleWidth, targetWidth int) string {
	if visibleWidth >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-visibleWidth)
}
