package trac

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Ticket is one row of a tracker query result.
type Ticket struct {
	ID      int
	Port    string
	Summary string
	Status  string
	Type    string
}

// ParseTSV parses a tab-separated query response with a header row into
// tickets, preserving the tracker's row order. An empty response yields no
// tickets and no error.
func ParseTSV(r io.Reader) ([]Ticket, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	// Summaries can carry stray double quotes.
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range reportColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("response missing column %q", name)
		}
	}

	var tickets []Ticket
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		rawID := strings.TrimSpace(record[col["id"]])
		id, err := strconv.Atoi(rawID)
		if err != nil {
			return nil, fmt.Errorf("invalid ticket id %q: %w", rawID, err)
		}
		tickets = append(tickets, Ticket{
			ID:      id,
			Port:    record[col["port"]],
			Summary: record[col["summary"]],
			Status:  record[col["status"]],
			Type:    record[col["type"]],
		})
	}
	return tickets, nil
}
