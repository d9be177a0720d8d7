package ledger

import (
	"context"
	"database/sql"
	"fmt"
)

// RecordArtifact appends the outcome for one artifact URI to a run.
func (s *Store) RecordArtifact(ctx context.Context, artifact Artifact) error {
	if _, err := s.exec(ctx,
		`INSERT INTO artifacts (
            run_id, uri, product_id, telescope, header_path, header_sha256,
            status, error_kind, error_message, recorded_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		artifact.RunID,
		artifact.URI,
		nullable(artifact.ProductID),
		nullable(artifact.Telescope),
		nullable(artifact.HeaderPath),
		nullable(artifact.HeaderSHA256),
		artifact.Status,
		nullable(artifact.ErrorKind),
		nullable(artifact.ErrorMessage),
		s.timestamp(),
	); err != nil {
		return fmt.Errorf("insert artifact %s: %w", artifact.URI, err)
	}
	return nil
}

// Artifacts lists a run's artifact outcomes in the order they were recorded.
func (s *Store) Artifacts(ctx context.Context, runID string) ([]Artifact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, uri, product_id, telescope, header_path, header_sha256,
                status, error_kind, error_message, recorded_at
         FROM artifacts WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query artifacts: %w", err)
	}
	defer rows.Close()

	var out []Artifact
	for rows.Next() {
		var (
			artifact     Artifact
			status       string
			productID    sql.NullString
			telescope    sql.NullString
			headerPath   sql.NullString
			headerSHA    sql.NullString
			errorKind    sql.NullString
			errorMessage sql.NullString
			recordedRaw  sql.NullString
		)
		if err := rows.Scan(
			&artifact.RunID,
			&artifact.URI,
			&productID,
			&telescope,
			&headerPath,
			&headerSHA,
			&status,
			&errorKind,
			&errorMessage,
			&recordedRaw,
		); err != nil {
			return nil, fmt.Errorf("scan artifact: %w", err)
		}
		artifact.Status = ArtifactStatus(status)
		artifact.ProductID = productID.String
		artifact.Telescope = telescope.String
		artifact.HeaderPath = headerPath.String
		artifact.HeaderSHA256 = headerSHA.String
		artifact.ErrorKind = errorKind.String
		artifact.ErrorMessage = errorMessage.String
		artifact.RecordedAt = parseTimestamp(recordedRaw)
		out = append(out, artifact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artifacts: %w", err)
	}
	return out, nil
}
