// Package services defines shared utilities consumed by the ingest driver and
// the metadata packages it calls into.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, observation IDs, artifact URIs, and
//     stage names for logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     (malformed name, missing context, malformed comment) so the driver can
//     record them in the ingestion ledger and abort the batch.
//
// Use these helpers when wiring new stages so failures surface with the same
// shape across the pipeline.
package services
