package parser

import "testing"

func TestExtractClaim(t *testing.T) {
	tests := []struct {
		name     string
		answer   string
		wantDay  string
		wantTime string
		wantWin  string
	}{
		{
			name:     "day and exact time",
			answer:   "You are free on Friday at 13:30.",
			wantDay:  "friday",
			wantTime: "13:30",
		},
		{
			name:    "day and window",
			answer:  "Thursday morning is open.",
			wantDay: "thursday",
			wantWin: "morning",
		},
		{
			name:     "first occurrence wins per signal",
			answer:   "Friday at 13:30 would work, otherwise Saturday at 9:00am.",
			wantDay:  "friday",
			wantTime: "13:30",
		},
		{
			name:     "signals need not be adjacent",
			answer:   "The 10:00 slot is free, and that is on Monday.",
			wantDay:  "monday",
			wantTime: "10:00",
		},
		{
			name:     "pm marker normalized",
			answer:   "Tuesday at 3pm.",
			wantDay:  "tuesday",
			wantTime: "15:00",
		},
		{
			name:    "day only",
			answer:  "Wednesday should be fine.",
			wantDay: "wednesday",
		},
		{
			name:   "no signals at all",
			answer: "I am not sure about that.",
		},
		{
			name:   "empty answer",
			answer: "",
		},
		{
			name:     "window and time both kept",
			answer:   "Friday morning, say 09:30.",
			wantDay:  "friday",
			wantTime: "09:30",
			wantWin:  "morning",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ExtractClaim(tt.answer)
			if c.Day != tt.wantDay {
				t.Errorf("Day = %q, want %q", c.Day, tt.wantDay)
			}
			if c.ExactTime != tt.wantTime {
				t.Errorf("ExactTime = %q, want %q", c.ExactTime, tt.wantTime)
			}
			if c.Ambiguous != tt.wantWin {
				t.Errorf("Ambiguous = %q, want %q", c.Ambiguous, tt.wantWin)
			}
		})
	}
}
