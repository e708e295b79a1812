package checks

import (
	"context"

	"github.com/jrjsmrtn/macports-scripts/config"
	"github.com/jrjsmrtn/macports-scripts/internal/log"
	"github.com/jrjsmrtn/macports-scripts/internal/trac"
)

// Tickets reports the maintainer's open tracker tickets.
type Tickets struct {
	fetcher trac.TicketFetcher
	opts    config.CheckOptions
}

// NewTickets returns the ticket check for one maintainer.
func NewTickets(fetcher trac.TicketFetcher, opts config.CheckOptions) *Tickets {
	return &Tickets{
		fetcher: fetcher,
		opts:    opts,
	}
}

func (c *Tickets) Name() string { return config.SectionTickets }

// Run queries the tracker. An empty result is a valid outcome; the section
// simply stays empty.
func (c *Tickets) Run(ctx context.Context) (Section, error) {
	section := Section{Check: c.Name()}

	if err := c.opts.Validate(); err != nil {
		return section, err
	}

	tickets, err := c.fetcher.Tickets(ctx, c.opts)
	if err != nil {
		return section, err
	}
	log.Info("fetched tickets", "count", len(tickets))

	section.Tickets = tickets
	return section, nil
}
