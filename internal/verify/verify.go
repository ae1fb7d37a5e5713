// Package verify decides whether an extracted claim is consistent with a
// set of availability-slot facts. The decision is a pure function of its
// inputs: identical facts and claim always produce an identical verdict.
package verify

import (
	"context"

	"github.com/mrwolf/schedcheck/internal/facts"
	"github.com/mrwolf/schedcheck/internal/parser"
)

// Verdict is the outcome of checking one claim: validity plus a reason.
// The reason is always populated, as evidence for valid verdicts and as
// the cause for invalid ones.
type Verdict struct {
	IsValid bool   `json:"is_valid"`
	Reason  string `json:"reason"`
}

// ReasonMissingClaim is returned when a claim carries neither a day/time
// nor a day/window combination. This is a normal invalid verdict, not an
// error.
const ReasonMissingClaim = "claim missing day/time or ambiguous window"

// PredicateKind selects which rule a query exercises.
type PredicateKind string

const (
	PredicateExactTime PredicateKind = "exact_time"
	PredicateAmbiguous PredicateKind = "ambiguous"
)

// Query is a claim lowered into the shape the rule evaluator accepts:
// a day plus one predicate, exact_time(Time) or ambiguous(Window).
type Query struct {
	Day    string
	Kind   PredicateKind
	Time   string // "HH:MM", set when Kind is PredicateExactTime
	Window string // morning/afternoon/evening, set when Kind is PredicateAmbiguous
}

// QueryFromClaim lowers a claim into a rule query. The day/time
// combination takes precedence over day/window; ok is false when the claim
// has neither.
func QueryFromClaim(c parser.Claim) (Query, bool) {
	switch {
	case c.Day != "" && c.ExactTime != "":
		return Query{Day: c.Day, Kind: PredicateExactTime, Time: c.ExactTime}, true
	case c.Day != "" && c.Ambiguous != "":
		return Query{Day: c.Day, Kind: PredicateAmbiguous, Window: c.Ambiguous}, true
	}
	return Query{}, false
}

// Verify evaluates a claim against slot facts using the in-process rule
// table with the given window boundaries.
func Verify(slots []facts.Slot, claim parser.Claim, windows Windows) Verdict {
	query, ok := QueryFromClaim(claim)
	if !ok {
		return Verdict{IsValid: false, Reason: ReasonMissingClaim}
	}

	verdict, err := NewRuleTable(windows).Evaluate(context.Background(), slots, query)
	if err != nil {
		// The rule table never fails; this path exists for the Evaluator
		// contract only.
		return Verdict{IsValid: false, Reason: err.Error()}
	}
	return verdict
}
