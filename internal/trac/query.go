package trac

import (
	"net/url"
	"strings"

	"github.com/jrjsmrtn/macports-scripts/config"
)

// defaultStatuses are the open-ticket states every query covers.
var defaultStatuses = []string{"accepted", "assigned", "new", "reopened"}

// reportColumns are the columns requested from the tracker, in report order.
var reportColumns = []string{"id", "port", "summary", "status", "type"}

// param is one query-string pair. Trac's "or" separator is positional, so
// the query is assembled from an ordered list instead of url.Values, whose
// Encode sorts by key.
type param struct {
	key   string
	value string
}

// BuildQueryURL serializes the open-ticket query for one maintainer:
// the default statuses and the owner clause, OR'd with one "port contains"
// clause per include port. exclude_ports is not applied here; the query
// language offers no negated clause for it (known limitation).
func BuildQueryURL(base string, opts config.CheckOptions) string {
	params := make([]param, 0, len(defaultStatuses)+len(opts.IncludePorts)+len(reportColumns)+4)
	for _, status := range defaultStatuses {
		params = append(params, param{"status", status})
	}
	params = append(params, param{"owner", opts.Maintainer})
	if len(opts.IncludePorts) > 0 {
		params = append(params, param{"or", ""})
		for _, port := range opts.IncludePorts {
			params = append(params, param{"port", "~" + port})
		}
	}
	for _, col := range reportColumns {
		params = append(params, param{"col", col})
	}
	params = append(params, param{"order", "port"}, param{"format", "tab"})

	return base + "/query?" + encodeParams(params)
}

// encodeParams percent-encodes the pairs preserving their order. Pairs with
// an empty value (the "or" separator) are emitted as a bare key.
func encodeParams(params []param) string {
	var sb strings.Builder
	for i, p := range params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.key))
		if p.value != "" {
			sb.WriteByte('=')
			sb.WriteString(url.QueryEscape(p.value))
		}
	}
	return sb.String()
}
