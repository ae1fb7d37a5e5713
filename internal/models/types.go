package models

// VerifyRequest asks the server to check an assistant answer against a
// ground-truth availability calendar.
type VerifyRequest struct {
	Availability map[string][]string `json:"availability"`
	Answer       string              `json:"answer"`
}

// ClaimView is the structured claim extracted from an answer
type ClaimView struct {
	Day       string `json:"day,omitempty"`
	ExactTime string `json:"exact_time,omitempty"`
	Ambiguous string `json:"ambiguous,omitempty"`
}

// VerifyResponse is the verdict for one answer
type VerifyResponse struct {
	IsValid bool      `json:"is_valid"`
	Reason  string    `json:"reason"`
	Claim   ClaimView `json:"claim"`
}

// ParseRequest asks for diagnostics on a free-text scheduling query
type ParseRequest struct {
	Text string `json:"text"`
}

// ParseResponse is the structured form of a query plus its complexity tag
type ParseResponse struct {
	Text       string   `json:"text"`
	Days       []string `json:"days"`
	ExactTimes []string `json:"exact_times"`
	TimeRanges [][2]int `json:"time_ranges"`
	Ambiguous  []string `json:"ambiguous"`
	Complexity string   `json:"complexity"`
}

// EvaluateRequest runs the full loop: ask the assistant the question over
// the availability, then verify its answer.
type EvaluateRequest struct {
	Question     string              `json:"question"`
	Availability map[string][]string `json:"availability"`
}

// EvaluateResponse is the outcome of one assistant evaluation run
type EvaluateResponse struct {
	RunID      string    `json:"run_id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Complexity string    `json:"complexity"`
	IsValid    bool      `json:"is_valid"`
	Reason     string    `json:"reason"`
	Claim      ClaimView `json:"claim"`
}

// Run is one persisted verification run
type Run struct {
	RunID      string    `json:"run_id"`
	Actor      string    `json:"actor"`
	Question   string    `json:"question,omitempty"`
	Answer     string    `json:"answer"`
	Claim      ClaimView `json:"claim"`
	Complexity string    `json:"complexity,omitempty"`
	IsValid    bool      `json:"is_valid"`
	Reason     string    `json:"reason"`
	CreatedAt  string    `json:"created_at"`
}

// RunsResponse is returned by the runs endpoint
type RunsResponse struct {
	Runs []Run `json:"runs"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status  string `json:"status"`
	Ollama  string `json:"ollama"`
	DB      string `json:"db"`
	Version string `json:"version"`
}
