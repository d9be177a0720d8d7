package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"phangs2caom2/internal/services"
)

const runColumns = "id, collection, observation_id, output_path, status, started_at, finished_at, error_kind, error_message"

// BeginRun inserts a running row and returns it with a fresh identifier.
func (s *Store) BeginRun(ctx context.Context, collection, observationID, outputPath string) (*Run, error) {
	id := uuid.NewString()
	if _, err := s.exec(ctx,
		`INSERT INTO runs (id, collection, observation_id, output_path, status, started_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		id, collection, observationID, nullable(outputPath), RunRunning, s.timestamp(),
	); err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return s.GetRun(ctx, id)
}

// FinishRun closes a run. A nil runErr marks it succeeded; otherwise the
// error's kind and message are stored.
func (s *Store) FinishRun(ctx context.Context, runID string, runErr error) error {
	status := RunSucceeded
	var kind, message string
	if runErr != nil {
		status = RunFailed
		kind = services.ErrorKind(runErr)
		message = runErr.Error()
	}
	res, err := s.exec(ctx,
		`UPDATE runs SET status = ?, finished_at = ?, error_kind = ?, error_message = ? WHERE id = ?`,
		status, s.timestamp(), nullable(kind), nullable(message), runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return services.Wrap(services.ErrNotFound, "ledger", "finish run", fmt.Sprintf("run %s", runID), nil)
	}
	return nil
}

// GetRun loads a run by full identifier or unique prefix.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, services.Wrap(services.ErrValidation, "ledger", "get run", "run id is empty", nil)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ? OR id LIKE ? ORDER BY id LIMIT 2`,
		id, id+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		if run.ID == id {
			return run, nil
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	switch len(runs) {
	case 0:
		return nil, services.Wrap(services.ErrNotFound, "ledger", "get run", fmt.Sprintf("run %s", id), nil)
	case 1:
		return runs[0], nil
	default:
		return nil, services.Wrap(services.ErrValidation, "ledger", "get run", fmt.Sprintf("run prefix %s is ambiguous", id), nil)
	}
}

// RecentRuns lists the newest runs first. A limit <= 0 returns every run.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run          Run
		status       string
		outputPath   sql.NullString
		startedRaw   sql.NullString
		finishedRaw  sql.NullString
		errorKind    sql.NullString
		errorMessage sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&run.Collection,
		&run.ObservationID,
		&outputPath,
		&status,
		&startedRaw,
		&finishedRaw,
		&errorKind,
		&errorMessage,
	); err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}
	run.Status = RunStatus(status)
	run.OutputPath = outputPath.String
	run.StartedAt = parseTimestamp(startedRaw)
	if finishedRaw.Valid {
		finished := parseTimestamp(finishedRaw)
		run.FinishedAt = &finished
	}
	run.ErrorKind = errorKind.String
	run.ErrorMessage = errorMessage.String
	return &run, nil
}
