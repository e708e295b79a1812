package checks

import (
	"context"
	"strings"

	"github.com/jrjsmrtn/macports-scripts/config"
	"github.com/jrjsmrtn/macports-scripts/internal/log"
	"github.com/jrjsmrtn/macports-scripts/internal/macports"
	"github.com/jrjsmrtn/macports-scripts/internal/ports"
)

// updatedMarker is the livecheck phrase announcing a newer upstream version.
const updatedMarker = "seems to have been updated"

// Livecheck reports ports whose upstream released a newer version than the
// one packaged.
type Livecheck struct {
	pm     macports.PackageManager
	filter *ports.Filter
	opts   config.CheckOptions
}

// NewLivecheck returns the livecheck check for one maintainer's ports.
func NewLivecheck(pm macports.PackageManager, opts config.CheckOptions) *Livecheck {
	return &Livecheck{
		pm:     pm,
		filter: ports.NewFilter(pm),
		opts:   opts,
	}
}

func (c *Livecheck) Name() string { return config.SectionLivecheck }

// Run livechecks the effective ports in one invocation. The summarized
// section keeps only the "updated" notices; at verbose level the full raw
// output is surfaced instead.
func (c *Livecheck) Run(ctx context.Context) (Section, error) {
	section := Section{Check: c.Name()}

	effective, err := c.filter.EffectivePorts(ctx, c.opts)
	if err != nil {
		return section, err
	}
	if len(effective) == 0 {
		return section, nil
	}
	log.Info("running livecheck", "ports", len(effective))

	output, err := c.pm.Livecheck(ctx, effective)
	if err != nil {
		return section, err
	}

	if log.IsVerbose() {
		section.Lines = nonEmptyLines(output)
	} else {
		section.Lines = FilterUpdated(output)
	}
	return section, nil
}

// FilterUpdated keeps the livecheck lines announcing a newer upstream
// version, verbatim.
func FilterUpdated(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, updatedMarker) {
			lines = append(lines, line)
		}
	}
	return lines
}

// nonEmptyLines splits output into lines, dropping empty ones.
func nonEmptyLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
