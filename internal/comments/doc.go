// Package comments extracts provenance, calibration, and time-bounds facts
// from the free-text COMMENT cards of a PHANGS header.
//
// The Extractor runs after the blueprint pass. It selects the plane whose
// product ID matches the decoded name, creates its provenance if needed, and
// tests each comment against an ordered rule table; the first rule whose
// marker appears in the line handles it and the rest are skipped. Lines that
// match nothing are ignored. A matched line with an unparsable payload stops
// extraction with a *LineError; fields set by earlier lines stay set.
package comments
