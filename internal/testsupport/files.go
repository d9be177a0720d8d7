package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// PHANGSComments are the COMMENT cards of a PHANGS-ALMA public release cube.
var PHANGSComments = []string{
	"Produced with PHANGS-ALMA pipeline version 4.0 Build 935",
	"Galaxy properties from PHANGS sample table version 1.6",
	"Calibration Level 4 (ANALYSIS_PRODUCT)",
	"PHANGS-ALMA Public Release 1",
	"Generated by the Physics at High Angular resolution",
	"in nearby GalaxieS (PHANGS) collaboration",
	"Canonical Reference: Leroy et al. (2021), ApJ, Submitted",
	"Release generated at 2021-03-04T07:28:10.245340",
	"Data from ALMA Proposal ID 2017.1.00886.L",
	"Observed in MJD interval [58077.386275,58081.464121]",
	"Observed in MJD interval [58290.770032,58365.629222]",
}

// PHANGSValueCards are the keyword cards the blueprint reads.
var PHANGSValueCards = []string{
	"SIMPLE  =                    T",
	"BITPIX  =                  -32",
	"NAXIS   =                    2",
	"CDELT1  =  -0.0002777777777778",
	"CDELT2  =   0.0002777777777778",
	"BMAJ    =   0.0004166666666667",
	"BMIN    =   0.0003888888888889",
	"BTYPE   = 'Intensity'",
	"BUNIT   = 'K km/s'",
	"DATE    = '2021-03-04T07:28:10'",
}

// WriteHeader writes a newline-separated header dump named fileName into dir
// and returns its path. Value cards come first, then each comment as a COMMENT
// card, then END.
func WriteHeader(t testing.TB, dir, fileName string, valueCards, comments []string) string {
	t.Helper()

	var b strings.Builder
	for _, card := range valueCards {
		b.WriteString(card)
		b.WriteByte('\n')
	}
	for _, comment := range comments {
		b.WriteString("COMMENT ")
		b.WriteString(comment)
		b.WriteByte('\n')
	}
	b.WriteString("END\n")

	path := filepath.Join(dir, fileName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WritePHANGSHeader writes a complete PHANGS header dump for fileName.
func WritePHANGSHeader(t testing.TB, dir, fileName string) string {
	t.Helper()
	return WriteHeader(t, dir, fileName, PHANGSValueCards, PHANGSComments)
}
