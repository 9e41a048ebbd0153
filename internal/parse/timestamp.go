package parse

import (
	"strings"
	"time"
)

// timestampLayouts are tried in order; the first one that parses cleanly
// wins. Naive local time is assumed throughout — no timezone component is
// expected or interpreted.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"02-01-2006 15:04:05",
	"02/01/2006 15:04:05",
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"01/02/2006",
}

// parseTimestamp tries every supported layout in order and returns the
// first successful parse. An unparseable value is a soft error: the caller
// drops the row rather than failing the whole request.
func parseTimestamp(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
