package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
-- One row per verification run (assistant evaluation or direct verify)
CREATE TABLE IF NOT EXISTS verification_runs (
    run_id TEXT PRIMARY KEY,
    actor TEXT NOT NULL,
    question TEXT,
    answer TEXT NOT NULL,
    claim_day TEXT,
    claim_time TEXT,
    claim_window TEXT,
    complexity TEXT,
    is_valid INTEGER NOT NULL,
    reason TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_actor ON verification_runs(actor);
CREATE INDEX IF NOT EXISTS idx_runs_created ON verification_runs(created_at);
`

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

func (db *DB) migrate() error {
	_, err := db.conn.Exec(schema)
	if err != nil {
		return fmt.Errorf("executing migration: %w", err)
	}
	return nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping checks the connection, for health reporting
func (db *DB) Ping() error {
	return db.conn.Ping()
}

// RunRecord is one verification run row
type RunRecord struct {
	RunID       string
	Actor       string
	Question    string
	Answer      string
	ClaimDay    string
	ClaimTime   string
	ClaimWindow string
	Complexity  string
	IsValid     bool
	Reason      string
	CreatedAt   time.Time
}

// LogRun inserts a verification run
func (db *DB) LogRun(rec RunRecord) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := db.conn.Exec(`
		INSERT INTO verification_runs
		(run_id, actor, question, answer, claim_day, claim_time, claim_window, complexity, is_valid, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.RunID, rec.Actor, rec.Question, rec.Answer, rec.ClaimDay, rec.ClaimTime, rec.ClaimWindow,
		rec.Complexity, boolToInt(rec.IsValid), rec.Reason, createdAt.Format(time.RFC3339))
	return err
}

// GetRuns returns runs for an actor, newest first. A nil since means no
// lower bound; limit <= 0 means the default of 50.
func (db *DB) GetRuns(actor string, since *time.Time, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT run_id, actor, question, answer, claim_day, claim_time, claim_window, complexity, is_valid, reason, created_at
		FROM verification_runs
		WHERE actor = ?`
	args := []interface{}{actor}

	if since != nil {
		query += ` AND created_at >= ?`
		args = append(args, since.UTC().Format(time.RFC3339))
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var rec RunRecord
		var isValid int
		var createdAt string
		if err := rows.Scan(&rec.RunID, &rec.Actor, &rec.Question, &rec.Answer, &rec.ClaimDay,
			&rec.ClaimTime, &rec.ClaimWindow, &rec.Complexity, &isValid, &rec.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		rec.IsValid = isValid != 0
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		runs = append(runs, rec)
	}
	return runs, rows.Err()
}

// RunStatsSince counts total and invalid runs recorded at or after t
func (db *DB) RunStatsSince(t time.Time) (total, invalid int, err error) {
	row := db.conn.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN is_valid = 0 THEN 1 ELSE 0 END), 0)
		FROM verification_runs
		WHERE created_at >= ?
	`, t.UTC().Format(time.RFC3339))
	if err := row.Scan(&total, &invalid); err != nil {
		return 0, 0, fmt.Errorf("counting runs: %w", err)
	}
	return total, invalid, nil
}

// PruneRuns deletes runs recorded before the cutoff, returning the number
// of rows removed
func (db *DB) PruneRuns(before time.Time) (int64, error) {
	res, err := db.conn.Exec(`
		DELETE FROM verification_runs WHERE created_at < ?
	`, before.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("pruning runs: %w", err)
	}
	return res.RowsAffected()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
