package task

import (
	"fmt"
	"strings"
	"time"
)

// DeadlineLayout is the format deadlines are entered and displayed in.
const DeadlineLayout = "2006-01-02 15:04"

// ParseDeadline parses a user-supplied deadline string. An empty string
// means no deadline and yields nil without error. RFC3339 is accepted as
// an alternative to the default layout.
func ParseDeadline(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	for _, layout := range []string{DeadlineLayout, time.RFC3339} {
		if dt, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &dt, nil
		}
	}

	return nil, &ValidationError{
		Field:  "deadline",
		Reason: fmt.Sprintf("%q is not in %q format", s, DeadlineLayout),
	}
}

// FormatDeadline renders a deadline for display; absent deadlines render
// as a dash.
func FormatDeadline(dt *time.Time) string {
	if dt == nil {
		return "-"
	}
	return dt.Format(DeadlineLayout)
}
