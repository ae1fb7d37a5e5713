package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mrwolf/schedcheck/internal/assistant"
	"github.com/mrwolf/schedcheck/internal/audit"
	"github.com/mrwolf/schedcheck/internal/config"
	"github.com/mrwolf/schedcheck/internal/db"
	"github.com/mrwolf/schedcheck/internal/facts"
	"github.com/mrwolf/schedcheck/internal/llm"
	"github.com/mrwolf/schedcheck/internal/models"
	"github.com/mrwolf/schedcheck/internal/parser"
	"github.com/mrwolf/schedcheck/internal/verify"
)

// ErrorResponse is the standard error response format
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
		Code:  code,
	})
}

type Handlers struct {
	cfg       *config.Config
	db        *db.DB
	audit     *audit.Log
	llm       *llm.Client
	assistant *assistant.Assistant
	evaluator verify.Evaluator
	windows   verify.Windows
}

func NewHandlers(cfg *config.Config, database *db.DB, auditLog *audit.Log, llmClient *llm.Client) *Handlers {
	windows, err := cfg.Windows()
	if err != nil {
		// Config validates window spans at load; reaching this means the
		// Config was built by hand with bad spans.
		log.Printf("WARNING: bad window config, using defaults: %v", err)
		windows = verify.DefaultWindows()
	}

	return &Handlers{
		cfg:       cfg,
		db:        database,
		audit:     auditLog,
		llm:       llmClient,
		assistant: assistant.New(llmClient),
		evaluator: verify.NewRuleTable(windows),
		windows:   windows,
	}
}

// Health handles GET /health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status:  "ok",
		Ollama:  h.checkOllama(),
		DB:      h.checkDB(),
		Version: "1.0.0",
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

func (h *Handlers) checkOllama() string {
	if h.llm == nil {
		return "not configured"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.llm.HealthCheck(ctx); err != nil {
		return "error: " + err.Error()
	}
	return "connected"
}

func (h *Handlers) checkDB() string {
	if err := h.db.Ping(); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}

// Verify handles POST /api/v1/verify: check an assistant answer against a
// ground-truth availability calendar.
func (h *Handlers) Verify(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "INVALID_BODY")
		return
	}

	if req.Answer == "" {
		writeError(w, http.StatusBadRequest, "answer is required", "MISSING_ANSWER")
		return
	}
	if len(req.Availability) == 0 {
		writeError(w, http.StatusBadRequest, "availability is required", "MISSING_AVAILABILITY")
		return
	}

	slots, err := facts.Build(req.Availability)
	if err != nil {
		// Malformed availability aborts the call; this is the only input
		// error that does.
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_AVAILABILITY")
		return
	}

	claim := parser.ExtractClaim(req.Answer)
	verdict := h.evaluate(r.Context(), slots, claim)

	resp := models.VerifyResponse{
		IsValid: verdict.IsValid,
		Reason:  verdict.Reason,
		Claim:   claimView(claim),
	}
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// Parse handles POST /api/v1/parse: diagnostics on a free-text query
func (h *Handlers) Parse(w http.ResponseWriter, r *http.Request) {
	var req models.ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "INVALID_BODY")
		return
	}

	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required", "MISSING_TEXT")
		return
	}

	pq := parser.ParseQuery(req.Text)

	resp := models.ParseResponse{
		Text:       pq.Text,
		Days:       pq.Days,
		ExactTimes: pq.ExactTimes,
		TimeRanges: pq.TimeRanges,
		Ambiguous:  pq.Ambiguous,
		Complexity: pq.Complexity,
	}
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// Evaluate handles POST /api/v1/evaluate: ask the assistant the question
// over the availability, verify its answer, and record the run.
func (h *Handlers) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req models.EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "INVALID_BODY")
		return
	}

	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "question is required", "MISSING_QUESTION")
		return
	}
	if len(req.Availability) == 0 {
		writeError(w, http.StatusBadRequest, "availability is required", "MISSING_AVAILABILITY")
		return
	}

	slots, err := facts.Build(req.Availability)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_AVAILABILITY")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	answer, err := h.assistant.Ask(ctx, req.Question, req.Availability)
	if err != nil {
		log.Printf("Assistant request failed: %v", err)
		writeError(w, http.StatusBadGateway, "assistant request failed", "ASSISTANT_FAILED")
		return
	}

	claim := parser.ExtractClaim(answer)
	verdict := h.evaluate(ctx, slots, claim)
	complexity := parser.ParseQuery(req.Question).Complexity

	actor := GetActor(r)
	runID := "run_" + uuid.NewString()

	if err := h.db.LogRun(db.RunRecord{
		RunID:       runID,
		Actor:       actor,
		Question:    req.Question,
		Answer:      answer,
		ClaimDay:    claim.Day,
		ClaimTime:   claim.ExactTime,
		ClaimWindow: claim.Ambiguous,
		Complexity:  complexity,
		IsValid:     verdict.IsValid,
		Reason:      verdict.Reason,
	}); err != nil {
		log.Printf("Failed to log run %s: %v", runID, err)
	}

	entry := audit.NewEntry(runID, actor, answer, claim.Day, claim.ExactTime, claim.Ambiguous, verdict.IsValid, verdict.Reason)
	if err := h.audit.Append(entry); err != nil {
		log.Printf("Failed to audit run %s: %v", runID, err)
	}

	resp := models.EvaluateResponse{
		RunID:      runID,
		Question:   req.Question,
		Answer:     answer,
		Complexity: complexity,
		IsValid:    verdict.IsValid,
		Reason:     verdict.Reason,
		Claim:      claimView(claim),
	}
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// Runs handles GET /api/v1/runs
func (h *Handlers) Runs(w http.ResponseWriter, r *http.Request) {
	actor := GetActor(r)

	var since *time.Time
	if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
		parsed, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			parsed, err = time.Parse("2006-01-02", sinceStr)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid since format, use RFC3339 or YYYY-MM-DD", "INVALID_DATE")
				return
			}
		}
		since = &parsed
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, _ = strconv.Atoi(limitStr)
	}

	records, err := h.db.GetRuns(actor, since, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "database error", "DB_ERROR")
		return
	}

	runs := make([]models.Run, 0, len(records))
	for _, rec := range records {
		runs = append(runs, models.Run{
			RunID:    rec.RunID,
			Actor:    rec.Actor,
			Question: rec.Question,
			Answer:   rec.Answer,
			Claim: models.ClaimView{
				Day:       rec.ClaimDay,
				ExactTime: rec.ClaimTime,
				Ambiguous: rec.ClaimWindow,
			},
			Complexity: rec.Complexity,
			IsValid:    rec.IsValid,
			Reason:     rec.Reason,
			CreatedAt:  rec.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.RunsResponse{Runs: runs})
}

// evaluate runs the claim through the rule evaluator. An incomplete claim
// and an evaluator failure both come back as normal invalid verdicts; the
// call never aborts here.
func (h *Handlers) evaluate(ctx context.Context, slots []facts.Slot, claim parser.Claim) verify.Verdict {
	query, ok := verify.QueryFromClaim(claim)
	if !ok {
		return verify.Verdict{IsValid: false, Reason: verify.ReasonMissingClaim}
	}

	verdict, err := h.evaluator.Evaluate(ctx, slots, query)
	if err != nil {
		log.Printf("Evaluator failed: %v", err)
		return verify.Verdict{IsValid: false, Reason: "evaluator failed: " + err.Error()}
	}
	return verdict
}

func claimView(c parser.Claim) models.ClaimView {
	return models.ClaimView{
		Day:       c.Day,
		ExactTime: c.ExactTime,
		Ambiguous: c.Ambiguous,
	}
}
