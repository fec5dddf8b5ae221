package step

import (
	"strings"

	"github.com/alessio/shellescape"
)

// quote makes s a single shell word.
func quote(s string) string {
	return shellescape.Quote(s)
}

// quoteAll quotes each value and joins them with spaces.
func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quote(v)
	}
	return strings.Join(quoted, " ")
}
