// Package main hosts the phangs2caom2 CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into ingestion
// runs, name decoding, ledger history views, preflight checks, and
// configuration scaffolding. It centralizes configuration resolution and
// logger setup so subcommands only translate flags into calls on the
// internal packages.
package main
