package parser

import (
	"strconv"
	"strings"
)

// ParsedQuery is the structured form of a free-text scheduling query.
// Derived deterministically from Text and never mutated after ParseQuery
// returns it.
type ParsedQuery struct {
	Text       string
	Days       []string // lowercased, duplicates kept in order of appearance
	ExactTimes []string // canonical "HH:MM" 24h
	TimeRanges [][2]int // (start_minute, end_minute), non-decreasing
	Ambiguous  []string // morning/afternoon/evening
	Complexity string
}

// ParseQuery extracts day names, exact times, time ranges and ambiguous
// window words from text and classifies the query's complexity.
func ParseQuery(text string) ParsedQuery {
	days := extractDays(text)
	ambiguous := extractAmbiguous(text)
	ranges, rangeSpans := extractRanges(text)
	exact := extractExactTimes(text, rangeSpans)

	return ParsedQuery{
		Text:       text,
		Days:       days,
		ExactTimes: exact,
		TimeRanges: ranges,
		Ambiguous:  ambiguous,
		Complexity: classify(days, exact, ranges, ambiguous),
	}
}

// classify assigns a complexity tag. Rule order matters: ambiguity always
// wins, then multi-day/range, then the exact simple shape, and the
// insufficient-structure edge case is only reached after those fail.
func classify(days, exactTimes []string, ranges [][2]int, ambiguous []string) string {
	if len(ambiguous) > 0 {
		return ComplexityEdge
	}

	distinct := make(map[string]bool, len(days))
	for _, d := range days {
		distinct[d] = true
	}
	if len(distinct) > 1 || len(ranges) > 0 {
		return ComplexityComplex
	}

	if len(days) == 1 && len(exactTimes) == 1 {
		return ComplexitySimple
	}

	if len(days) == 0 || len(exactTimes)+len(ranges)+len(ambiguous) == 0 {
		return ComplexityEdge
	}

	return ComplexityComplex
}

func extractDays(text string) []string {
	var days []string
	for _, m := range dayPattern.FindAllString(text, -1) {
		days = append(days, strings.ToLower(m))
	}
	return days
}

func extractAmbiguous(text string) []string {
	var words []string
	for _, m := range ambiguousPattern.FindAllString(text, -1) {
		words = append(words, strings.ToLower(m))
	}
	return words
}

// extractRanges returns the minute ranges plus the matched text spans so
// exact-time extraction can skip times already consumed by a range.
func extractRanges(text string) ([][2]int, [][2]int) {
	var ranges [][2]int
	var spans [][2]int

	for _, idx := range rangePattern.FindAllStringSubmatchIndex(text, -1) {
		start := ToMinutes(groupInt(text, idx, 2), groupInt(text, idx, 3), group(text, idx, 4))
		end := ToMinutes(groupInt(text, idx, 6), groupInt(text, idx, 7), group(text, idx, 8))
		if end < start {
			start, end = end, start
		}
		ranges = append(ranges, [2]int{start, end})
		spans = append(spans, [2]int{idx[0], idx[1]})
	}
	return ranges, spans
}

func extractExactTimes(text string, rangeSpans [][2]int) []string {
	var times []string
	for _, idx := range timePattern.FindAllStringSubmatchIndex(text, -1) {
		if insideSpan(idx[0], rangeSpans) {
			continue
		}
		mins := ToMinutes(groupInt(text, idx, 1), groupInt(text, idx, 2), group(text, idx, 3))
		times = append(times, FormatMinutes(mins))
	}
	return times
}

func insideSpan(pos int, spans [][2]int) bool {
	for _, s := range spans {
		if pos >= s[0] && pos < s[1] {
			return true
		}
	}
	return false
}

// group returns the text of submatch n from a FindAllStringSubmatchIndex
// entry, or "" when the group did not participate in the match.
func group(text string, idx []int, n int) string {
	if idx[2*n] < 0 {
		return ""
	}
	return text[idx[2*n]:idx[2*n+1]]
}

func groupInt(text string, idx []int, n int) int {
	s := group(text, idx, n)
	if s == "" {
		return 0
	}
	v, _ := strconv.Atoi(s)
	return v
}
