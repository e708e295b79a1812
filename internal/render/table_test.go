package render

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jrjsmrtn/macports-scripts/config"
	"github.com/jrjsmrtn/macports-scripts/internal/checks"
	"github.com/jrjsmrtn/macports-scripts/internal/ghclient"
	"github.com/jrjsmrtn/macports-scripts/internal/trac"
)

func renderToString(t *testing.T, report checks.Report) string {
	t.Helper()

	var buf strings.Builder
	if err := (&TableRenderer{}).Render(report, &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestTableRendererTickets(t *testing.T) {
	report := checks.Report{
		GeneratedAt: time.Now(),
		Sections: []checks.Section{
			{
				Check: config.SectionTickets,
				Tickets: []trac.Ticket{
					{ID: 71444, Port: "gnuplot", Summary: "gnuplot fails to build on Sequoia", Status: "new", Type: "defect"},
					{ID: 70912, Port: "par2", Summary: "par2: update to 1.0.0", Status: "assigned", Type: "update"},
				},
			},
		},
	}

	output := renderToString(t, report)

	for _, want := range []string{
		"Tickets",
		"#71444",
		"gnuplot",
		"gnuplot fails to build on Sequoia",
		"defect",
		"#70912",
		"assigned",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q\nOutput:\n%s", want, output)
		}
	}
}

func TestTableRendererPullRequests(t *testing.T) {
	report := checks.Report{
		Sections: []checks.Section{
			{
				Check: config.SectionPullRequests,
				PullRequests: []ghclient.PullRequest{
					{Number: 28541, Title: "gnuplot: update to 6.0.2", Author: "jrjsmrtn", Labels: []string{"maintainer", "update"}},
				},
			},
		},
	}

	output := renderToString(t, report)

	for _, want := range []string{
		"PullRequests",
		"#28541",
		"gnuplot: update to 6.0.2",
		"jrjsmrtn",
		"maintainer, update",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q\nOutput:\n%s", want, output)
		}
	}
}

func TestTableRendererLines(t *testing.T) {
	lines := []string{
		"gnuplot seems to have been updated (port version: 6.0.0, new version: 6.0.2)",
		"par2 seems to have been updated (port version: 0.8.1, new version: 1.0.0)",
	}
	report := checks.Report{
		Sections: []checks.Section{
			{Check: config.SectionLivecheck, Lines: lines},
		},
	}

	output := renderToString(t, report)

	for _, line := range lines {
		if !strings.Contains(output, line) {
			t.Errorf("output missing line %q\nOutput:\n%s", line, output)
		}
	}
}

func TestTableRendererFailedCheckDoesNotHideOthers(t *testing.T) {
	report := checks.Report{
		Sections: []checks.Section{
			{Check: config.SectionLivecheck, Err: errors.New("port binary not found")},
			{Check: config.SectionLint, Lines: []string{"Error: Line 12 of the Portfile is too long"}},
		},
	}

	output := renderToString(t, report)

	if !strings.Contains(output, "check failed:") {
		t.Errorf("output missing failure marker\nOutput:\n%s", output)
	}
	if !strings.Contains(output, "port binary not found") {
		t.Errorf("output missing failure cause\nOutput:\n%s", output)
	}
	if !strings.Contains(output, "Line 12 of the Portfile is too long") {
		t.Errorf("section after a failed check was not rendered\nOutput:\n%s", output)
	}
}

func TestTableRendererEmptySections(t *testing.T) {
	tests := []struct {
		check string
		want  string
	}{
		{config.SectionLivecheck, "No upstream updates found."},
		{config.SectionTickets, "No relevant tickets."},
		{config.SectionPullRequests, "No relevant pull requests."},
		{config.SectionLint, "No lint complaints."},
	}

	for _, tt := range tests {
		t.Run(tt.check, func(t *testing.T) {
			report := checks.Report{Sections: []checks.Section{{Check: tt.check}}}
			output := renderToString(t, report)
			if !strings.Contains(output, tt.want) {
				t.Errorf("output missing %q\nOutput:\n%s", tt.want, output)
			}
		})
	}
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		maxWidth  int
		want      string
		wantWidth int
	}{
		{"short fits", "abc", 10, "abc", 3},
		{"exact fits", "abcdefghij", 10, "abcdefghij", 10},
		{"long is cut", "abcdefghijk", 10, "abcdefg...", 10},
		{"wide runes", "日本語のポート", 8, "日本...", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, gotWidth := truncateToWidth(tt.input, tt.maxWidth)
			if got != tt.want || gotWidth != tt.wantWidth {
				t.Errorf("truncateToWidth(%q, %d) = (%q, %d), want (%q, %d)",
					tt.input, tt.maxWidth, got, gotWidth, tt.want, tt.wantWidth)
			}
		})
	}
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain ascii", "port", 4},
		{"ansi stripped", "\x1b[31mport\x1b[0m", 4},
		{"wide runes", "ポート", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := displayWidth(tt.input); got != tt.want {
				t.Errorf("displayWidth(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 2, 5); got != "ab   " {
		t.Errorf("padRight(%q, 2, 5) = %q, want %q", "ab", got, "ab   ")
	}
	if got := padRight("abcde", 5, 5); got != "abcde" {
		t.Errorf("padRight(%q, 5, 5) = %q, want %q", "abcde", got, "abcde")
	}
}
