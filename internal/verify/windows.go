package verify

import (
	"fmt"

	"github.com/mrwolf/schedcheck/internal/facts"
	"github.com/mrwolf/schedcheck/internal/parser"
)

// Window is a named coarse time-of-day range in minutes since midnight.
type Window struct {
	Name        string
	StartMinute int
	EndMinute   int
}

// Windows maps the three ambiguous window words to concrete minute ranges.
// The boundaries are configuration, not hard-coded rules: callers load them
// from config (or take the defaults) so tests can pin exact values.
type Windows struct {
	Morning   Window
	Afternoon Window
	Evening   Window
}

// DefaultWindows returns the stock window boundaries:
// morning 08:00-12:00, afternoon 12:00-17:00, evening 17:00-21:00.
func DefaultWindows() Windows {
	return Windows{
		Morning:   Window{Name: parser.WindowMorning, StartMinute: 8 * 60, EndMinute: 12 * 60},
		Afternoon: Window{Name: parser.WindowAfternoon, StartMinute: 12 * 60, EndMinute: 17 * 60},
		Evening:   Window{Name: parser.WindowEvening, StartMinute: 17 * 60, EndMinute: 21 * 60},
	}
}

// ParseWindows builds window boundaries from three "HH:MM-HH:MM" spans.
func ParseWindows(morning, afternoon, evening string) (Windows, error) {
	var w Windows
	for _, def := range []struct {
		name string
		span string
		dst  *Window
	}{
		{parser.WindowMorning, morning, &w.Morning},
		{parser.WindowAfternoon, afternoon, &w.Afternoon},
		{parser.WindowEvening, evening, &w.Evening},
	} {
		start, end, err := facts.ParseSpan(def.span)
		if err != nil {
			return Windows{}, fmt.Errorf("window %s: %w", def.name, err)
		}
		*def.dst = Window{Name: def.name, StartMinute: start, EndMinute: end}
	}
	return w, nil
}

// Lookup resolves an ambiguous window word to its minute range.
func (w Windows) Lookup(name string) (Window, bool) {
	switch name {
	case parser.WindowMorning:
		return w.Morning, true
	case parser.WindowAfternoon:
		return w.Afternoon, true
	case parser.WindowEvening:
		return w.Evening, true
	}
	return Window{}, false
}
