package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"scout/internal/db"
)

// ErrNotFound is returned when a run ID has no archived row.
var ErrNotFound = errors.New("run not found")

// Run is one archived research run.
type Run struct {
	ID        string
	Role      string
	Topic     string
	Depth     string
	Format    string
	Model     string
	MaxTurns  int
	Status    string // "success" or the engine's error kind
	NumTurns  int
	CostUSD   float64
	Report    string
	Error     string
	CreatedAt time.Time
}

// Store archives runs in SQLite.
type Store struct {
	conn *sql.DB
}

func NewStore(database *db.DB) *Store {
	return &Store{conn: database.Conn()}
}

func (s *Store) SaveRun(ctx context.Context, run *Run) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO runs (id, role, topic, depth, format, model, max_turns, status, num_turns, cost_usd, report, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Role, run.Topic, run.Depth, run.Format, run.Model,
		run.MaxTurns, run.Status, run.NumTurns, run.CostUSD, run.Report,
		run.Error, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving run %s: %w", run.ID, err)
	}
	return nil
}

func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, role, topic, depth, format, model, max_turns, status, num_turns, cost_usd, report, error, created_at
		FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Role, &r.Topic, &r.Depth, &r.Format,
			&r.Model, &r.MaxTurns, &r.Status, &r.NumTurns, &r.CostUSD,
			&r.Report, &r.Error, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	var r Run
	err := s.conn.QueryRowContext(ctx, `
		SELECT id, role, topic, depth, format, model, max_turns, status, num_turns, cost_usd, report, error, created_at
		FROM runs WHERE id = ?`, id).
		Scan(&r.ID, &r.Role, &r.Topic, &r.Depth, &r.Format, &r.Model,
			&r.MaxTurns, &r.Status, &r.NumTurns, &r.CostUSD, &r.Report,
			&r.Error, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading run %s: %w", id, err)
	}
	return &r, nil
}
