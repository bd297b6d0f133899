package spec

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// QueryParam is one query pair in insertion order. Unlike headers and
// path params, repeated keys are allowed and serialize as repeated pairs.
type QueryParam struct {
	Key   string
	Value string
}

// encodeQuery serializes params in first-insertion order as URL-encoded
// key=value pairs joined by &.
func encodeQuery(params []QueryParam) string {
	pairs := make([]string, 0, len(params))
	for _, p := range params {
		pairs = append(pairs, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value))
	}
	return strings.Join(pairs, "&")
}

// formatQueryValue renders the accepted scalar value types (string,
// booleans, integers, floats) the way they appear in a query string.
func formatQueryValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		// Whole floats print without a trailing .0, matching how JSON
		// numbers round-trip.
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}
