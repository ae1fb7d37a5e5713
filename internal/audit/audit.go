// Package audit keeps an append-only JSONL trail of every verdict the
// server hands out, independent of the queryable sqlite history.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entry is one audited verdict
type Entry struct {
	RunID       string `json:"run_id"`
	TS          string `json:"ts"`
	Actor       string `json:"actor"`
	Answer      string `json:"answer"`
	ClaimDay    string `json:"claim_day,omitempty"`
	ClaimTime   string `json:"claim_time,omitempty"`
	ClaimWindow string `json:"claim_window,omitempty"`
	IsValid     bool   `json:"is_valid"`
	Reason      string `json:"reason"`
}

// Log appends verdict entries to <dir>/verdicts.jsonl.
// A mutex serializes appends from concurrent requests.
type Log struct {
	dir string
	mu  sync.Mutex
}

// New creates an audit log rooted at dir
func New(dir string) *Log {
	return &Log{dir: dir}
}

// Append writes one entry as a JSON line
func (l *Log) Append(entry Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling audit entry: %w", err)
	}

	if err := appendLine(filepath.Join(l.dir, "verdicts.jsonl"), line); err != nil {
		return fmt.Errorf("appending audit entry: %w", err)
	}
	return nil
}

// NewEntry creates an audit entry with the timestamp populated
func NewEntry(runID, actor, answer, claimDay, claimTime, claimWindow string, isValid bool, reason string) Entry {
	return Entry{
		RunID:       runID,
		TS:          time.Now().UTC().Format(time.RFC3339),
		Actor:       actor,
		Answer:      answer,
		ClaimDay:    claimDay,
		ClaimTime:   claimTime,
		ClaimWindow: claimWindow,
		IsValid:     isValid,
		Reason:      reason,
	}
}

// appendLine appends a line to a file, creating it if needed.
// Includes retry logic (up to 3 attempts with backoff).
func appendLine(path string, line []byte) error {
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(100*(1<<uint(attempt-1))) * time.Millisecond)
		}
		if err := appendLineOnce(path, line); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}
	return fmt.Errorf("after 3 attempts: %w", lastErr)
}

func appendLineOnce(path string, line []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("writing log line: %w", err)
	}
	return nil
}
