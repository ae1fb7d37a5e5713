package parser

import (
	"strconv"
	"strings"
)

// Claim is the day/time assertion extracted from an assistant's final
// answer. Empty fields mean the signal was absent from the text; a claim
// with no usable day/time combination is still a valid value, the verifier
// just rejects it with a reason.
type Claim struct {
	Day       string
	ExactTime string // canonical "HH:MM" 24h
	Ambiguous string // morning/afternoon/evening
}

// ExtractClaim scans the answer text once per signal type and keeps only
// the first match of each kind, independently of the others. First
// occurrence wins on purpose; the extractor never reports multiple
// candidates or an error.
func ExtractClaim(answer string) Claim {
	var c Claim

	if m := dayPattern.FindString(answer); m != "" {
		c.Day = strings.ToLower(m)
	}

	if idx := timePattern.FindStringSubmatchIndex(answer); idx != nil {
		hour, _ := strconv.Atoi(group(answer, idx, 1))
		minute := groupInt(answer, idx, 2)
		c.ExactTime = FormatMinutes(ToMinutes(hour, minute, group(answer, idx, 3)))
	}

	if m := ambiguousPattern.FindString(answer); m != "" {
		c.Ambiguous = strings.ToLower(m)
	}

	return c
}
