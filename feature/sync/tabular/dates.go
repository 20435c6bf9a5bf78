package tabular

import (
	"strings"
	"time"
)

// timeLayouts is the ordered list of layouts the partner has been observed to
// emit. Datetime layouts come first so date-only layouts never truncate a
// timestamp that happens to share a prefix.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2006-01-02",
	"02/01/2006",
}

// ParseTime tries every known partner layout in order, interpreting naive
// timestamps in loc. The boolean is false when no layout matches; callers log
// the raw value and treat the field as unset rather than failing the row.
func ParseTime(raw string, loc *time.Location) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}

	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
