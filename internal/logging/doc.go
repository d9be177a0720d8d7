// Package logging builds the slog loggers used by the CLI and the ingestion
// pipeline.
//
// Console output is a single human-readable line per record with the
// component hoisted in front of the message; JSON output uses short keys
// (ts, level, msg) so the logs package can read it back. NewFromConfig wires
// both: console (or JSON) on stderr plus a JSON copy appended to the session
// log in the configured log directory.
//
// WithContext and the Field constants tag records with run, observation,
// artifact, and stage identifiers carried on a context.
package logging
