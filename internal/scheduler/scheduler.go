package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"

	"github.com/mrwolf/schedcheck/internal/db"
	"github.com/mrwolf/schedcheck/internal/llm"
)

// Scheduler manages background jobs: run-history pruning, Ollama health
// checks, and a daily run summary.
type Scheduler struct {
	scheduler gocron.Scheduler
	db        *db.DB
	llm       *llm.Client
	retention time.Duration
	timezone  *time.Location
}

// Config holds scheduler configuration
type Config struct {
	Timezone      string
	RetentionDays int
	// Clock is injectable for tests; nil means the real clock.
	Clock clockwork.Clock
}

// New creates a new scheduler
func New(database *db.DB, llmClient *llm.Client, cfg Config) (*Scheduler, error) {
	tz, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		tz = time.UTC
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clockwork.NewRealClock()
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(tz), gocron.WithClock(clk))
	if err != nil {
		return nil, err
	}

	retentionDays := cfg.RetentionDays
	if retentionDays <= 0 {
		retentionDays = 90
	}

	return &Scheduler{
		scheduler: s,
		db:        database,
		llm:       llmClient,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		timezone:  tz,
	}, nil
}

// Start starts the scheduler and registers all jobs
func (s *Scheduler) Start() error {
	// Prune old verification runs every hour
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(s.pruneRuns),
		gocron.WithName("prune-runs"),
	)
	if err != nil {
		return err
	}

	// Health check Ollama every 5 minutes
	_, err = s.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(s.healthCheck),
		gocron.WithName("health-check"),
	)
	if err != nil {
		return err
	}

	// Daily run summary at 06:00
	_, err = s.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(6, 0, 0))),
		gocron.NewTask(s.dailySummary),
		gocron.WithName("daily-summary"),
	)
	if err != nil {
		return err
	}

	s.scheduler.Start()
	log.Println("Scheduler started")
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}

// Jobs returns the registered job names, for introspection in tests
func (s *Scheduler) Jobs() []string {
	var names []string
	for _, j := range s.scheduler.Jobs() {
		names = append(names, j.Name())
	}
	return names
}

func (s *Scheduler) pruneRuns() {
	cutoff := time.Now().Add(-s.retention)
	n, err := s.db.PruneRuns(cutoff)
	if err != nil {
		log.Printf("Pruning runs failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Pruned %d verification runs older than %s", n, cutoff.Format("2006-01-02"))
	}
}

func (s *Scheduler) healthCheck() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.llm.HealthCheck(ctx); err != nil {
		log.Printf("Ollama health check failed: %v", err)
	}
}

func (s *Scheduler) dailySummary() {
	total, invalid, err := s.db.RunStatsSince(time.Now().Add(-24 * time.Hour))
	if err != nil {
		log.Printf("Run summary failed: %v", err)
		return
	}
	log.Printf("Last 24h: %d verification runs, %d invalid", total, invalid)
}
