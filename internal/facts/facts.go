// Package facts normalizes caller-supplied availability calendars into an
// ordered list of availability-slot facts for the verification engine.
package facts

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Slot is one contiguous free-time interval on a given day, in minutes
// since midnight. Slots are request-scoped values: built fresh per call,
// never mutated, never persisted.
type Slot struct {
	Day         string `json:"day"`
	Label       string `json:"label"` // start time as "HH:MM"
	StartMinute int    `json:"start_minute"`
	EndMinute   int    `json:"end_minute"`
}

// FormatError reports a malformed availability entry, naming the offending
// string. It aborts the whole Build call; no partial fact list is returned.
type FormatError struct {
	Entry string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("bad availability entry: %q", e.Entry)
}

// DayOrder lists the seven canonical lowercase day names in week order.
// Build emits facts in this order so first-match evaluation downstream is
// deterministic regardless of map iteration.
var DayOrder = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

var spanPattern = regexp.MustCompile(`^\s*(\d{2}):(\d{2})\s*-\s*(\d{2}):(\d{2})\s*$`)

var dashReplacer = strings.NewReplacer("–", "-", "—", "-")

// ParseSpan parses a strict "HH:MM-HH:MM" 24h interval into start/end
// minutes. En and em dashes are accepted and normalized to a plain hyphen.
func ParseSpan(span string) (start, end int, err error) {
	m := spanPattern.FindStringSubmatch(dashReplacer.Replace(span))
	if m == nil {
		return 0, 0, &FormatError{Entry: span}
	}

	sH, _ := strconv.Atoi(m[1])
	sM, _ := strconv.Atoi(m[2])
	eH, _ := strconv.Atoi(m[3])
	eM, _ := strconv.Atoi(m[4])
	if sH > 23 || eH > 23 || sM > 59 || eM > 59 {
		return 0, 0, &FormatError{Entry: span}
	}

	start = 60*sH + sM
	end = 60*eH + eM
	if start >= end {
		return 0, 0, &FormatError{Entry: span}
	}
	return start, end, nil
}

// Build converts a day->intervals availability map into slot facts.
// Day keys are case-insensitive; every interval must be a valid
// "HH:MM-HH:MM" span or the whole call fails with a FormatError.
// Output is ordered by DayOrder, then by interval list order within a day.
func Build(availability map[string][]string) ([]Slot, error) {
	byDay := make(map[string][]string, len(availability))
	for name, spans := range availability {
		day := strings.ToLower(strings.TrimSpace(name))
		if !isDayName(day) {
			return nil, &FormatError{Entry: name}
		}
		byDay[day] = append(byDay[day], spans...)
	}

	var slots []Slot
	for _, day := range DayOrder {
		for _, span := range byDay[day] {
			start, end, err := ParseSpan(span)
			if err != nil {
				return nil, err
			}
			slots = append(slots, Slot{
				Day:         day,
				Label:       fmt.Sprintf("%02d:%02d", start/60, start%60),
				StartMinute: start,
				EndMinute:   end,
			})
		}
	}
	return slots, nil
}

// IsFormatError reports whether err is (or wraps) a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

func isDayName(day string) bool {
	for _, d := range DayOrder {
		if d == day {
			return true
		}
	}
	return false
}
