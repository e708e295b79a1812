package checks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jrjsmrtn/macports-scripts/internal/log"
)

// Driver runs checks sequentially in the order they were added, isolating
// failures: a failing check is recorded in its section and the remaining
// checks still run.
type Driver struct {
	checks []Check
}

// NewDriver returns a Driver over the given checks.
func NewDriver(checks ...Check) *Driver {
	return &Driver{checks: checks}
}

// Run executes every check. The returned report holds one section per
// check, failed ones included. A non-nil error names the failed checks;
// findings alone never produce an error.
func (d *Driver) Run(ctx context.Context) (*Report, error) {
	report := &Report{GeneratedAt: time.Now()}

	var failed []string
	for _, check := range d.checks {
		log.Info("running check", "check", check.Name())

		section, err := check.Run(ctx)
		section.Check = check.Name()
		if err != nil {
			log.Warn("check failed", "check", check.Name(), "error", err)
			section.Err = err
			failed = append(failed, check.Name())
		}
		report.Sections = append(report.Sections, section)
	}

	if len(failed) > 0 {
		return report, fmt.Errorf("%d of %d checks failed: %s",
			len(failed), len(d.checks), strings.Join(failed, ", "))
	}
	return report, nil
}
