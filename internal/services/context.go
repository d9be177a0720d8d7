package services

import "context"

type contextKey string

const (
	runIDKey         contextKey = "run_id"
	observationIDKey contextKey = "observation_id"
	artifactURIKey   contextKey = "artifact_uri"
	stageKey         contextKey = "stage"
)

// WithRunID annotates context with the ingestion run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithObservationID annotates context with the observation being assembled.
func WithObservationID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, observationIDKey, id)
}

// ObservationIDFromContext returns the observation identifier if present.
func ObservationIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(observationIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithArtifactURI annotates context with the artifact currently being processed.
func WithArtifactURI(ctx context.Context, uri string) context.Context {
	if uri == "" {
		return ctx
	}
	return context.WithValue(ctx, artifactURIKey, uri)
}

// ArtifactURIFromContext returns the artifact URI if present.
func ArtifactURIFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(artifactURIKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStage annotates context with the driver stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(stageKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
