package logging

import (
	"context"
	"log/slog"

	"phangs2caom2/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for ingestion run identifiers.
	FieldRunID = "run_id"
	// FieldObservationID is the standardized structured logging key for observation identifiers.
	FieldObservationID = "observation_id"
	// FieldProductID is the standardized structured logging key for plane product identifiers.
	FieldProductID = "product_id"
	// FieldArtifactURI is the standardized structured logging key for artifact URIs.
	FieldArtifactURI = "artifact_uri"
	// FieldStage is the standardized structured logging key for ingestion stage names.
	FieldStage = "stage"
	// FieldEventType classifies a log record for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint carries the operator's next step for warnings and errors.
	FieldErrorHint = "error_hint"
	// FieldErrorKind is the ledger classification of an error.
	FieldErrorKind = "error_kind"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 4)
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if id, ok := services.ObservationIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldObservationID, id))
	}
	if uri, ok := services.ArtifactURIFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldArtifactURI, uri))
	}
	if stage, ok := services.StageFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldStage, stage))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(args(fields)...)
}
