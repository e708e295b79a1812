package checks

import (
	"context"
	"fmt"
	"strings"

	"github.com/jrjsmrtn/macports-scripts/config"
	"github.com/jrjsmrtn/macports-scripts/internal/log"
	"github.com/jrjsmrtn/macports-scripts/internal/macports"
	"github.com/jrjsmrtn/macports-scripts/internal/ports"
)

// Lint reports lint findings across the maintainer's ports.
type Lint struct {
	pm     macports.PackageManager
	filter *ports.Filter
	opts   config.CheckOptions
}

// NewLint returns the lint check for one maintainer's ports.
func NewLint(pm macports.PackageManager, opts config.CheckOptions) *Lint {
	return &Lint{
		pm:     pm,
		filter: ports.NewFilter(pm),
		opts:   opts,
	}
}

func (c *Lint) Name() string { return config.SectionLint }

// Run lints the effective ports one by one, accumulating every not-OK line.
// Ports with no findings contribute nothing.
func (c *Lint) Run(ctx context.Context) (Section, error) {
	section := Section{Check: c.Name()}

	effective, err := c.filter.EffectivePorts(ctx, c.opts)
	if err != nil {
		return section, err
	}

	for i, port := range effective {
		log.Progress("linting %s (%d/%d)", port, i+1, len(effective))

		output, err := c.pm.Lint(ctx, port)
		if err != nil {
			log.ProgressClear()
			return section, fmt.Errorf("linting %s: %w", port, err)
		}
		section.Lines = append(section.Lines, NotOKLines(output)...)
	}
	log.ProgressDone()

	return section, nil
}

// NotOKLines keeps the lint output lines that do not begin with the literal
// "OK:" token, dropping empty lines.
func NotOKLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "OK:") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
