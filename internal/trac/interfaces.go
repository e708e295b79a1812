// Package trac queries the MacPorts Trac instance for open tickets.
package trac

import (
	"context"

	"github.com/jrjsmrtn/macports-scripts/config"
)

// TicketFetcher defines the interface for tracker queries.
// The ticket check consumes this instead of the concrete Client so tests
// can substitute canned results.
type TicketFetcher interface {
	Tickets(ctx context.Context, opts config.CheckOptions) ([]Ticket, error)
}

// Ensure Client implements TicketFetcher interface.
var _ TicketFetcher = (*Client)(nil)
