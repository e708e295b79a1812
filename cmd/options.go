package cmd

import (
	"github.com/jrjsmrtn/macports-scripts/config"
	"github.com/jrjsmrtn/macports-scripts/internal/log"
	"github.com/jrjsmrtn/macports-scripts/internal/macports"
)

// Options holds the shared command-line options for the checkports CLI.
type Options struct {
	// Check selection, additive. With none set, every check runs.
	Livecheck    bool
	Tickets      bool
	PullRequests bool
	Lint         bool

	Verbose bool
	Debug   bool

	PortCommand string
	ReportPath  string
}

// NewOptions creates Options with defaults applied.
func NewOptions() *Options {
	return &Options{
		PortCommand: macports.DefaultBinary,
	}
}

// SelectedChecks returns the names of the checks to run, in report order.
func (o *Options) SelectedChecks() []string {
	selected := map[string]bool{
		config.SectionLivecheck:    o.Livecheck,
		config.SectionTickets:      o.Tickets,
		config.SectionPullRequests: o.PullRequests,
		config.SectionLint:         o.Lint,
	}

	all := !o.Livecheck && !o.Tickets && !o.PullRequests && !o.Lint

	var names []string
	for _, name := range config.Sections {
		if all || selected[name] {
			names = append(names, name)
		}
	}
	return names
}

// Verbosity maps the verbosity flags to a log level.
func (o *Options) Verbosity() int {
	switch {
	case o.Debug:
		return log.LevelDebug
	case o.Verbose:
		return log.LevelVerbose
	default:
		return log.LevelQuiet
	}
}
