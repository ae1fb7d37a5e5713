package parser

import "regexp"

// Shared pattern definitions for the query parser and the claim extractor.
// The two sides aggregate matches differently (the parser collects every
// occurrence, the extractor keeps only the first), so they stay separate
// operations built on the same patterns.
var (
	dayPattern       = regexp.MustCompile(`(?i)(monday|tuesday|wednesday|thursday|friday|saturday|sunday)`)
	timePattern      = regexp.MustCompile(`(?i)(\d{1,2})(?::?(\d{2}))?\s*(am|pm)?`)
	ambiguousPattern = regexp.MustCompile(`(?i)\b(morning|afternoon|evening)\b`)
	rangePattern     = regexp.MustCompile(`(?i)(between|from)\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\s*(and|to|-)\s*(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)
)

// Complexity tags for parsed queries
const (
	ComplexitySimple  = "simple"
	ComplexityComplex = "complex"
	ComplexityEdge    = "edge"
)

// Ambiguous window names
const (
	WindowMorning   = "morning"
	WindowAfternoon = "afternoon"
	WindowEvening   = "evening"
)
