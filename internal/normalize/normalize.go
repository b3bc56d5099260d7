// Package normalize holds the pure normalization helpers shared by the
// validation layer: slug derivation, time canonicalization and date
// canonicalization.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	clock24  = regexp.MustCompile(`^([0-9]{1,2}):([0-5][0-9])$`)
	clock12  = regexp.MustCompile(`^([0-9]{1,2})(?::([0-5][0-9]))?\s*(am|pm)$`)
)

// Slugify derives a URL-safe identifier from a free-text title: lowercase,
// every run of non-alphanumeric characters collapsed to a single hyphen,
// leading and trailing hyphens stripped. A title with no alphanumeric
// characters yields "" and must be rejected by the caller.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Time canonicalizes a clock time to 24-hour "HH:MM". It accepts 24-hour
// "H:MM"/"HH:MM" (hours 0-23) or 12-hour "H[:MM] am|pm" (hours 1-12, case
// insensitive). 12pm stays 12, 12am becomes 00, other pm hours add 12.
func Time(s string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(s))

	if m := clock24.FindStringSubmatch(v); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if hour > 23 {
			return "", fmt.Errorf("invalid time %q: hour out of range", s)
		}
		return fmt.Sprintf("%02d:%s", hour, m[2]), nil
	}

	if m := clock12.FindStringSubmatch(v); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if hour < 1 || hour > 12 {
			return "", fmt.Errorf("invalid time %q: 12-hour clock expects hours 1-12", s)
		}
		minutes := m[2]
		if minutes == "" {
			minutes = "00"
		}
		switch m[3] {
		case "am":
			if hour == 12 {
				hour = 0
			}
		case "pm":
			if hour != 12 {
				hour += 12
			}
		}
		return fmt.Sprintf("%02d:%s", hour, minutes), nil
	}

	return "", fmt.Errorf("invalid time %q: expected HH:MM or H[:MM] am/pm", s)
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006/01/02",
	"02/01/2006",
}

// Date parses a date in any of the accepted layouts and returns the
// canonical ISO calendar date "YYYY-MM-DD".
func Date(s string) (string, error) {
	v := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("invalid date %q", s)
}
