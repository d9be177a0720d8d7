// Package ingest drives one observation's ingestion run.
//
// A Processor resolves the artifact URIs from lineage entries or local header
// paths, decodes each into a naming.Name, applies the blueprint rules and the
// header comment rules to a shared observation record, and writes the record
// as JSON. Preview artifacts are recorded as skipped. The first failure aborts
// the run: the error is logged and recorded in the ledger with its kind, and
// the partially built record is still written for diagnosis.
//
// Runs that target the same output file are serialised with an advisory lock
// on "<output>.lock"; the record itself is replaced atomically.
package ingest
