package verify

import (
	"context"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/mrwolf/schedcheck/internal/facts"
)

func TestEncodeFacts(t *testing.T) {
	slots := []facts.Slot{
		{Day: "thursday", Label: "09:00", StartMinute: 540, EndMinute: 720},
		{Day: "friday", Label: "13:00", StartMinute: 780, EndMinute: 960},
	}

	want := `available_slot(thursday, "09:00", 540, 720).
available_slot(friday, "13:00", 780, 960).
`
	if got := EncodeFacts(slots); got != want {
		t.Errorf("EncodeFacts = %q, want %q", got, want)
	}

	if got := EncodeFacts(nil); got != "" {
		t.Errorf("EncodeFacts(nil) = %q, want empty", got)
	}
}

func TestEncodeQuery(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  string
	}{
		{
			name:  "exact time",
			query: Query{Day: "friday", Kind: PredicateExactTime, Time: "13:30"},
			want:  "validate(friday, exact_time(\"13:30\")).\n",
		},
		{
			name:  "ambiguous window",
			query: Query{Day: "monday", Kind: PredicateAmbiguous, Window: "morning"},
			want:  "validate(monday, ambiguous(morning)).\n",
		},
		{
			name:  "unknown kind",
			query: Query{Day: "monday", Kind: "weird"},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeQuery(tt.query); got != tt.want {
				t.Errorf("EncodeQuery = %q, want %q", got, tt.want)
			}
		})
	}
}

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("external evaluator tests need a POSIX shell")
	}
}

func TestProcessEvaluatorParsesVerdict(t *testing.T) {
	skipWithoutShell(t)

	p := NewProcessEvaluator("echo", []string{`{"is_valid": true, "reason": "slot friday 13:00-16:00 contains 13:30"}`}, 5*time.Second)
	q := Query{Day: "friday", Kind: PredicateExactTime, Time: "13:30"}

	v, err := p.Evaluate(context.Background(), nil, q)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !v.IsValid {
		t.Errorf("verdict = %+v, want valid", v)
	}
	if !strings.Contains(v.Reason, "13:30") {
		t.Errorf("reason = %q", v.Reason)
	}
}

func TestProcessEvaluatorDegradesOnBadOutput(t *testing.T) {
	skipWithoutShell(t)

	p := NewProcessEvaluator("echo", []string{"yes probably"}, 5*time.Second)
	q := Query{Day: "friday", Kind: PredicateExactTime, Time: "13:30"}

	v, err := p.Evaluate(context.Background(), nil, q)
	if err != nil {
		t.Fatalf("unparseable output must not be an error: %v", err)
	}
	if v.IsValid {
		t.Error("degraded verdict must be invalid")
	}
	if !strings.Contains(v.Reason, "yes probably") {
		t.Errorf("degraded reason should carry the raw output, got %q", v.Reason)
	}
}

func TestProcessEvaluatorTimeout(t *testing.T) {
	skipWithoutShell(t)

	p := NewProcessEvaluator("sleep", []string{"2"}, 50*time.Millisecond)
	q := Query{Day: "friday", Kind: PredicateExactTime, Time: "13:30"}

	if _, err := p.Evaluate(context.Background(), nil, q); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestProcessEvaluatorMissingCommand(t *testing.T) {
	p := NewProcessEvaluator("schedcheck-no-such-evaluator", nil, time.Second)
	q := Query{Day: "friday", Kind: PredicateExactTime, Time: "13:30"}

	if _, err := p.Evaluate(context.Background(), nil, q); err == nil {
		t.Fatal("expected spawn error")
	}
}
