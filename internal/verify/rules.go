package verify

import (
	"context"
	"fmt"

	"github.com/mrwolf/schedcheck/internal/facts"
	"github.com/mrwolf/schedcheck/internal/parser"
)

// RuleTable is the in-process rule evaluator. Instead of generating a
// textual logic program per call, the containment/window rules live in an
// explicit table keyed on predicate kind; evaluation scans the fact list
// in order and the first matching slot wins.
type RuleTable struct {
	windows Windows
}

// NewRuleTable creates a rule table with the given window boundaries.
func NewRuleTable(windows Windows) *RuleTable {
	return &RuleTable{windows: windows}
}

type rule struct {
	// matches reports whether a single slot satisfies the predicate.
	matches func(t *RuleTable, s facts.Slot, q Query) bool
	// evidence renders the valid-verdict reason from the matching slot.
	evidence func(s facts.Slot, q Query) string
	// noMatch is the invalid-verdict reason when no slot satisfies it.
	noMatch string
}

var ruleTable = map[PredicateKind]rule{
	PredicateExactTime: {
		matches: (*RuleTable).containsTime,
		evidence: func(s facts.Slot, q Query) string {
			return fmt.Sprintf("slot %s %s-%s contains %s",
				s.Day, s.Label, parser.FormatMinutes(s.EndMinute), q.Time)
		},
		noMatch: "no slot contains the requested time",
	},
	PredicateAmbiguous: {
		matches: (*RuleTable).overlapsWindow,
		evidence: func(s facts.Slot, q Query) string {
			return fmt.Sprintf("slot %s %s-%s overlaps the %s window",
				s.Day, s.Label, parser.FormatMinutes(s.EndMinute), q.Window)
		},
		noMatch: "no slot overlaps the requested window",
	},
}

// Evaluate checks the query against the facts. It holds no state across
// calls and never returns a non-nil error; malformed queries degrade to an
// invalid verdict with a diagnostic reason.
func (t *RuleTable) Evaluate(_ context.Context, slots []facts.Slot, q Query) (Verdict, error) {
	r, ok := ruleTable[q.Kind]
	if !ok {
		return Verdict{IsValid: false, Reason: fmt.Sprintf("unknown predicate: %s", q.Kind)}, nil
	}

	for _, s := range slots {
		if s.Day != q.Day {
			continue
		}
		if r.matches(t, s, q) {
			return Verdict{IsValid: true, Reason: r.evidence(s, q)}, nil
		}
	}
	return Verdict{IsValid: false, Reason: r.noMatch}, nil
}

// containsTime checks inclusive containment at both slot ends: a claim for
// exactly the start or end minute of a slot counts as available.
func (t *RuleTable) containsTime(s facts.Slot, q Query) bool {
	mins, err := parser.ClockMinutes(q.Time)
	if err != nil {
		return false
	}
	return s.StartMinute <= mins && mins <= s.EndMinute
}

// overlapsWindow checks inclusive overlap between the slot and the
// configured minute range for the claimed window word.
func (t *RuleTable) overlapsWindow(s facts.Slot, q Query) bool {
	w, ok := t.windows.Lookup(q.Window)
	if !ok {
		return false
	}
	return s.StartMinute <= w.EndMinute && w.StartMinute <= s.EndMinute
}
