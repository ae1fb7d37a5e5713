package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// ToMinutes converts an hour/minute pair into minutes since midnight.
// An empty ampm marker means the input is already 24h and passes through
// unchanged. "am" maps hour 12 to 0; "pm" maps hour 12 to 12 and every
// other hour to h+12. The minute component is never adjusted.
// Callers supply hour/minute already parsed from text; no bounds checks here.
func ToMinutes(hour, minute int, ampm string) int {
	switch strings.ToLower(ampm) {
	case "am":
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour != 12 {
			hour += 12
		}
	}
	return hour*60 + minute
}

// FormatMinutes renders minutes since midnight as a zero-padded "HH:MM".
func FormatMinutes(total int) string {
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// ClockMinutes parses a canonical "HH:MM" string back into minutes since
// midnight. Only strings produced by FormatMinutes (or equivalent 24h
// clock values) are accepted.
func ClockMinutes(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("bad clock value: %q", clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("bad clock value: %q", clock)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("bad clock value: %q", clock)
	}
	if hour > 23 || minute > 59 {
		return 0, fmt.Errorf("clock value out of range: %q", clock)
	}
	return hour*60 + minute, nil
}
