// Package macports wraps the MacPorts port(1) command line tool.
package macports

import "context"

// PackageManager defines the interface for port(1) operations.
// The checks and the port filter consume this instead of the concrete
// Client so tests can substitute canned output.
type PackageManager interface {
	// Ports evaluates a port expression (`port echo`).
	Ports(ctx context.Context, expr string) ([]string, error)

	// SubportInfo returns the raw `port info --subports` output.
	SubportInfo(ctx context.Context, ports []string) (string, error)

	// Livecheck returns the combined `port livecheck` output.
	Livecheck(ctx context.Context, ports []string) (string, error)

	// Lint returns the `port lint` output for one port.
	Lint(ctx context.Context, port string) (string, error)
}

// Ensure Client implements PackageManager interface.
var _ PackageManager = (*Client)(nil)
