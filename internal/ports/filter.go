// Package ports computes the effective set of ports a check operates on.
package ports

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jrjsmrtn/macports-scripts/config"
	"github.com/jrjsmrtn/macports-scripts/internal/log"
	"github.com/jrjsmrtn/macports-scripts/internal/macports"
)

// Filter resolves a maintainer's configured port filter against the package
// manager.
type Filter struct {
	pm macports.PackageManager
}

// NewFilter returns a Filter backed by the given package manager.
func NewFilter(pm macports.PackageManager) *Filter {
	return &Filter{pm: pm}
}

// BuildFilter constructs the port expressions for the configured maintainer:
// a maintainer clause with every excluded port subtracted, plus one name
// clause per included port. Exclude clauses are set semantics, so they are
// sorted to keep the expression deterministic.
func BuildFilter(opts config.CheckOptions) []string {
	var expr strings.Builder
	expr.WriteString("maintainer:" + opts.Maintainer)

	excludes := append([]string(nil), opts.ExcludePorts...)
	sort.Strings(excludes)
	for _, port := range excludes {
		expr.WriteString(" and not name:" + port)
	}

	filters := []string{expr.String()}
	for _, port := range opts.IncludePorts {
		filters = append(filters, "name:"+port)
	}
	return filters
}

// ResolvePorts evaluates each filter expression against the package manager
// and unions the results into one sorted set.
func (f *Filter) ResolvePorts(ctx context.Context, filters []string) ([]string, error) {
	seen := make(map[string]struct{})
	var ports []string
	for _, expr := range filters {
		matched, err := f.pm.Ports(ctx, expr)
		if err != nil {
			return nil, fmt.Errorf("listing ports for %q: %w", expr, err)
		}
		for _, port := range matched {
			if _, dup := seen[port]; dup {
				continue
			}
			seen[port] = struct{}{}
			ports = append(ports, port)
		}
	}
	sort.Strings(ports)
	return ports, nil
}

// ResolveSubports queries the package manager for the subports of the given
// ports and flattens the answer into one set.
func (f *Filter) ResolveSubports(ctx context.Context, ports []string) ([]string, error) {
	if len(ports) == 0 {
		return nil, nil
	}
	blob, err := f.pm.SubportInfo(ctx, ports)
	if err != nil {
		return nil, fmt.Errorf("listing subports: %w", err)
	}
	return parseSubports(blob), nil
}

// EffectivePorts resolves the configured filter to the final port set. The
// exclude list always wins, even when an include clause or maintainer
// ownership matches an excluded port, and subports are subtracted when
// exclude_subports is set. The result is sorted.
func (f *Filter) EffectivePorts(ctx context.Context, opts config.CheckOptions) ([]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	ports, err := f.ResolvePorts(ctx, BuildFilter(opts))
	if err != nil {
		return nil, err
	}
	ports = subtract(ports, opts.ExcludePorts)

	if !opts.ExcludeSubports || len(ports) == 0 {
		return ports, nil
	}
	subports, err := f.ResolveSubports(ctx, ports)
	if err != nil {
		return nil, err
	}
	log.Debug("subtracting subports", "count", len(subports))
	return subtract(ports, subports), nil
}

// parseSubports extracts subport names from the package manager's subport
// listing: records separated by "--", names within a record separated by
// ",". Records may carry a "subports:" field label, and "none" marks a port
// without subports.
func parseSubports(blob string) []string {
	seen := make(map[string]struct{})
	var subports []string
	for _, record := range strings.Split(blob, "--") {
		for _, line := range strings.Split(record, "\n") {
			line = strings.TrimPrefix(strings.TrimSpace(line), "subports:")
			for _, name := range strings.Split(line, ",") {
				name = strings.TrimSpace(name)
				if name == "" || name == "none" {
					continue
				}
				if _, dup := seen[name]; dup {
					continue
				}
				seen[name] = struct{}{}
				subports = append(subports, name)
			}
		}
	}
	return subports
}

// subtract returns the ports not present in remove, preserving order.
func subtract(ports, remove []string) []string {
	if len(remove) == 0 {
		return ports
	}
	drop := make(map[string]struct{}, len(remove))
	for _, port := range remove {
		drop[port] = struct{}{}
	}
	var kept []string
	for _, port := range ports {
		if _, ok := drop[port]; ok {
			continue
		}
		kept = append(kept, port)
	}
	return kept
}
