// Package ledger records ingestion history in SQLite.
//
// Every CLI run opens a run row, appends one artifact row per processed URI
// (ingested, skipped, or failed with its error kind), and closes the run with
// a final status. The history commands read the same tables back.
//
// Schema changes bump schemaVersion in schema.go; users delete the ledger file
// to adopt the new schema.
package ledger
