// Package blueprint applies the static PHANGS mapping rules that build the
// base observation record for one artifact before header comments are read.
//
// Accumulate sets observation-level facts derived from the decoded name
// (algorithm, target, telescope and its ALMA location, instrument), creates
// the plane, artifact, part, and chunk for the artifact, and copies the
// header keywords the record needs (DATE, CDELT1/2, BMAJ/BMIN, BTYPE/BUNIT).
// Preview artifacts are left untouched.
package blueprint
