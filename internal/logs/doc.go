// Package logs reads the JSON session log back for the CLI.
//
// Entries are decoded from the file written by the logging package, filtered
// by run, observation, or level, and rendered one per line. Tail returns the
// last matching entries with the offset to resume from; Follow polls for new
// entries until its context ends.
package logs
