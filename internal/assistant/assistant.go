// Package assistant asks the scheduling LLM a question over a known
// availability calendar and extracts the final answer text for
// verification.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/mrwolf/schedcheck/internal/facts"
	"github.com/mrwolf/schedcheck/internal/llm"
)

// Prompt templates are process-wide read-only configuration. Keep them as
// constants; nothing mutates them at runtime.
const schedulingPrompt = `You are a scheduling assistant. Use only the availability below.

Availability:
%s

Question: %s

Format:
Answer: <final answer>
Evidence: <availability lines supporting the answer>
`

const (
	answerMarker   = "Answer:"
	evidenceMarker = "Evidence:"
)

// Assistant wraps the LLM behind the scheduling prompt.
type Assistant struct {
	client *llm.Client
}

// New creates an assistant around the given LLM client.
func New(client *llm.Client) *Assistant {
	return &Assistant{client: client}
}

// Ask renders the availability into the scheduling prompt, queries the
// LLM, and returns the final answer text.
func (a *Assistant) Ask(ctx context.Context, question string, availability map[string][]string) (string, error) {
	prompt := fmt.Sprintf(schedulingPrompt, FormatAvailability(availability), question)

	response, err := a.client.GenerateText(ctx, prompt, false)
	if err != nil {
		return "", fmt.Errorf("asking assistant: %w", err)
	}

	return ExtractAnswer(response), nil
}

// ExtractAnswer pulls the text after the Answer: marker, stopping before
// the Evidence: section. Responses without the marker are returned whole;
// the claim extractor downstream copes with free-form text either way.
func ExtractAnswer(response string) string {
	answer := response
	if idx := strings.Index(response, answerMarker); idx >= 0 {
		answer = response[idx+len(answerMarker):]
	}
	if idx := strings.Index(answer, evidenceMarker); idx >= 0 {
		answer = answer[:idx]
	}
	return strings.TrimSpace(answer)
}

// FormatAvailability renders the calendar one day per line in canonical
// weekday order, so prompts are stable across calls.
func FormatAvailability(availability map[string][]string) string {
	byDay := make(map[string][]string, len(availability))
	for name, spans := range availability {
		day := strings.ToLower(strings.TrimSpace(name))
		byDay[day] = append(byDay[day], spans...)
	}

	var b strings.Builder
	for _, day := range facts.DayOrder {
		spans, ok := byDay[day]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", day, strings.Join(spans, ", "))
	}
	return b.String()
}
