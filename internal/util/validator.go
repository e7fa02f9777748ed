package util

import (
	"fmt"
	"regexp"
	"time"
)

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidateHexColor checks a 6-hex-digit color code like #3498db.
func ValidateHexColor(color string) error {
	if !hexColorRe.MatchString(color) {
		return fmt.Errorf("color must be a valid hex code (e.g., #3498db)")
	}
	return nil
}

// ParseDate parses a transaction date, accepting RFC3339 and plain dates.
// Layouts without a zone are interpreted in the server's local zone, the same
// zone the reporting windows use.
func ParseDate(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %q", s)
}
