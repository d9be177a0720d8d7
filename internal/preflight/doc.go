// Package preflight provides readiness checks for the filesystem paths and
// configuration phangs2caom2 depends on.
//
// The CLI "check" command renders RunAll's results; "run" calls RunAll and
// refuses to start when any check fails, so a doomed ingestion never writes a
// partial record or ledger entry.
package preflight
