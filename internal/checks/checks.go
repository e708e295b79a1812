// Package checks implements the port health checks and the driver that
// runs them.
package checks

import (
	"context"
	"time"

	"github.com/jrjsmrtn/macports-scripts/internal/ghclient"
	"github.com/jrjsmrtn/macports-scripts/internal/trac"
)

// Check is one health check contributing a section to the report.
type Check interface {
	// Name returns the check's name for selection and logging.
	Name() string

	// Run executes the check and returns its report section. Returning an
	// error marks the check failed; it does not stop the other checks.
	Run(ctx context.Context) (Section, error)
}

// Section is one check's findings.
type Section struct {
	Check        string
	Lines        []string
	Tickets      []trac.Ticket
	PullRequests []ghclient.PullRequest
	Err          error
}

// Empty reports whether the section carries no findings and no failure.
func (s Section) Empty() bool {
	return s.Err == nil && len(s.Lines) == 0 && len(s.Tickets) == 0 && len(s.PullRequests) == 0
}

// Report accumulates every check's findings for one run.
type Report struct {
	GeneratedAt time.Time
	Sections    []Section
}
