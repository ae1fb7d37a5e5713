package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/mrwolf/schedcheck/internal/facts"
)

// Evaluator is the rule collaborator contract: given slot facts and one
// predicate query for a specific day, produce a verdict with a reason.
// RuleTable is the default in-process implementation; ProcessEvaluator
// delegates to an external command.
type Evaluator interface {
	Evaluate(ctx context.Context, slots []facts.Slot, q Query) (Verdict, error)
}

// EncodeFacts serializes slots as one available_slot line per fact, in
// fact-list order.
func EncodeFacts(slots []facts.Slot) string {
	var b strings.Builder
	for _, s := range slots {
		fmt.Fprintf(&b, "available_slot(%s, %q, %d, %d).\n",
			s.Day, s.Label, s.StartMinute, s.EndMinute)
	}
	return b.String()
}

// EncodeQuery serializes a query as a single validate line.
func EncodeQuery(q Query) string {
	switch q.Kind {
	case PredicateExactTime:
		return fmt.Sprintf("validate(%s, exact_time(%q)).\n", q.Day, q.Time)
	case PredicateAmbiguous:
		return fmt.Sprintf("validate(%s, ambiguous(%s)).\n", q.Day, q.Window)
	}
	return ""
}

// ProcessEvaluator runs an external rule evaluator per call. The encoded
// facts and query are written to the command's stdin; the command is
// expected to print a JSON verdict {"is_valid": ..., "reason": ...} on
// stdout. Output that does not parse as a verdict degrades to an invalid
// verdict carrying the raw output, so a misbehaving evaluator never
// crashes a verification call. Evaluation is stateless, so a timed-out or
// failed invocation is safe to retry.
type ProcessEvaluator struct {
	command string
	args    []string
	timeout time.Duration
}

// NewProcessEvaluator creates an evaluator around the given command.
func NewProcessEvaluator(command string, args []string, timeout time.Duration) *ProcessEvaluator {
	return &ProcessEvaluator{command: command, args: args, timeout: timeout}
}

// Evaluate invokes the external command with an explicit deadline.
// A timeout or spawn failure is returned as an error (recoverable at the
// boundary); unparseable output is not an error.
func (p *ProcessEvaluator) Evaluate(ctx context.Context, slots []facts.Slot, q Query) (Verdict, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.command, p.args...)
	cmd.Stdin = strings.NewReader(EncodeFacts(slots) + EncodeQuery(q))

	out, err := cmd.Output()
	if ctx.Err() != nil {
		return Verdict{}, fmt.Errorf("rule evaluator timed out after %v: %w", p.timeout, ctx.Err())
	}
	if err != nil {
		return Verdict{}, fmt.Errorf("running rule evaluator: %w", err)
	}

	raw := strings.TrimSpace(string(out))
	var v Verdict
	if jsonErr := json.Unmarshal([]byte(raw), &v); jsonErr != nil {
		return Verdict{IsValid: false, Reason: "evaluator returned: " + raw}, nil
	}
	return v, nil
}
