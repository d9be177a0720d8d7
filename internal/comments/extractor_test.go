package comments_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"phangs2caom2/internal/caom"
	"phangs2caom2/internal/comments"
	"phangs2caom2/internal/logging"
	"phangs2caom2/internal/naming"
	"phangs2caom2/internal/services"
	"phangs2caom2/internal/testsupport"
)

func decode(t *testing.T, identifier string) naming.Name {
	t.Helper()
	name, err := naming.Decode(identifier)
	if err != nil {
		t.Fatalf("Decode(%q): %v", identifier, err)
	}
	return name
}

// newRecord builds the plane, artifact, part, and chunk the blueprint pass
// would have created for name.
func newRecord(name naming.Name, withArtifact bool) *caom.Observation {
	obs := caom.New("PHANGS", name.ObservationID())
	plane := obs.EnsurePlane(name.ProductID())
	plane.CalibrationLevel = caom.CalibrationProduct
	if withArtifact {
		plane.EnsureArtifact(name.FileURI()).EnsurePart("0").EnsureChunk()
	}
	return obs
}

func newExtractor() *comments.Extractor {
	return comments.NewExtractor(logging.NewNop())
}

func TestApplyPopulatesProvenance(t *testing.T) {
	name := decode(t, "ngc2903_12m+7m+tp_co21_strict_mom0.fits")
	obs := newRecord(name, true)

	if err := newExtractor().Apply(obs, name, testsupport.PHANGSComments); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	plane := obs.Plane(name.ProductID())
	executed := time.Date(2021, 3, 4, 7, 28, 10, 245340000, time.UTC)
	want := &caom.Provenance{
		Name:         "PHANGS-ALMA pipeline",
		Version:      "4.0 Build 935",
		Project:      "PHANGS-ALMA",
		Organization: "PHANGS",
		LastExecuted: &executed,
	}
	if diff := cmp.Diff(want, plane.Provenance); diff != "" {
		t.Fatalf("unexpected provenance (-want +got):\n%s", diff)
	}
	if plane.CalibrationLevel != caom.CalibrationAnalysisProduct {
		t.Fatalf("expected analysis product level, got %s", plane.CalibrationLevel)
	}
	if obs.Proposal == nil || obs.Proposal.ID != "2017.1.00886.L" {
		t.Fatalf("unexpected proposal %#v", obs.Proposal)
	}
}

func TestTimeIntervalsAccumulateInOrder(t *testing.T) {
	name := decode(t, "ngc2903_7m+tp_co21.fits")
	obs := newRecord(name, true)
	lines := []string{
		"Observed in MJD interval [1.0,2.0]",
		"Observed in MJD interval [5.0,6.0]",
		"Observed in MJD interval [1.5,5.5]",
	}
	if err := newExtractor().Apply(obs, name, lines); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	chunk := obs.Artifact(name.FileURI()).FirstChunk()
	if chunk.Time == nil {
		t.Fatal("expected time axis")
	}
	if chunk.Time.Axis.Axis != (caom.Axis{Ctype: "TIME", Cunit: "d"}) || chunk.Time.Timesys != "UTC" {
		t.Fatalf("unexpected time axis %#v", chunk.Time)
	}
	want := []caom.CoordRange1D{
		{Start: caom.RefCoord{Pix: 0.5, Val: 1.0}, End: caom.RefCoord{Pix: 1.5, Val: 2.0}},
		{Start: caom.RefCoord{Pix: 0.5, Val: 5.0}, End: caom.RefCoord{Pix: 1.5, Val: 6.0}},
		{Start: caom.RefCoord{Pix: 0.5, Val: 1.5}, End: caom.RefCoord{Pix: 1.5, Val: 5.5}},
	}
	if diff := cmp.Diff(want, chunk.Time.Axis.Bounds.Samples); diff != "" {
		t.Fatalf("unexpected samples (-want +got):\n%s", diff)
	}
}

func TestCalibrationLevelWithCommentKeyword(t *testing.T) {
	name := decode(t, "ngc2903_7m+tp_co21_broad_mom0.fits")
	obs := newRecord(name, true)
	lines := []string{
		"COMMENT Calibration Level 4 (ANALYSIS_PRODUCT)",
		"COMMENT Calibration Level 3 (PRODUCT)",
		"an unrelated remark",
	}
	if err := newExtractor().Apply(obs, name, lines); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := obs.Plane(name.ProductID()).CalibrationLevel; got != caom.CalibrationAnalysisProduct {
		t.Fatalf("expected level to stay upgraded, got %s", got)
	}
}

func TestCalibrationLevelBelowSentinelLeavesPlane(t *testing.T) {
	name := decode(t, "ngc2903_7m+tp_co21.fits")
	obs := newRecord(name, true)
	if err := newExtractor().Apply(obs, name, []string{"Calibration Level 3 (PRODUCT)"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := obs.Plane(name.ProductID()).CalibrationLevel; got != caom.CalibrationProduct {
		t.Fatalf("expected product level, got %s", got)
	}
}

func TestProposalFirstMatchWins(t *testing.T) {
	first := decode(t, "ngc2903_7m+tp_co21.fits")
	second := decode(t, "ngc2903_7m+tp_co21_noise.fits")
	obs := newRecord(first, true)
	obs.EnsurePlane(second.ProductID()).EnsureArtifact(second.FileURI()).EnsurePart("0").EnsureChunk()

	extractor := newExtractor()
	if err := extractor.Apply(obs, first, []string{"Data from ALMA Proposal ID 2017.1.00886.L"}); err != nil {
		t.Fatalf("Apply first: %v", err)
	}
	if err := extractor.Apply(obs, second, []string{"Data from ALMA Proposal ID 2019.1.01234.S"}); err != nil {
		t.Fatalf("Apply second: %v", err)
	}
	if obs.Proposal.ID != "2017.1.00886.L" {
		t.Fatalf("expected first proposal to win, got %q", obs.Proposal.ID)
	}
}

func TestApplyIsIdempotentForProvenanceFields(t *testing.T) {
	name := decode(t, "ngc2903_12m+7m+tp_co21_2as_strict_mom1.fits")
	extractor := newExtractor()

	twice := newRecord(name, true)
	for i := 0; i < 2; i++ {
		if err := extractor.Apply(twice, name, testsupport.PHANGSComments); err != nil {
			t.Fatalf("Apply pass %d: %v", i, err)
		}
	}
	once := newRecord(name, true)
	if err := extractor.Apply(once, name, testsupport.PHANGSComments); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	type facts struct {
		Proposal     string
		Project      string
		Organization string
		Version      string
	}
	summarize := func(obs *caom.Observation) facts {
		prov := obs.Plane(name.ProductID()).Provenance
		return facts{obs.Proposal.ID, prov.Project, prov.Organization, prov.Version}
	}
	if diff := cmp.Diff(summarize(once), summarize(twice)); diff != "" {
		t.Fatalf("repeated application drifted (-once +twice):\n%s", diff)
	}
}

func TestApplyWithoutLinesIsNoop(t *testing.T) {
	name := decode(t, "ngc2903_7m+tp_co21.fits")
	if err := newExtractor().Apply(nil, name, nil); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
	obs := newRecord(name, true)
	if err := newExtractor().Apply(obs, name, []string{}); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
	if obs.Plane(name.ProductID()).Provenance != nil {
		t.Fatal("expected provenance untouched")
	}
}

func TestApplyMissingPlane(t *testing.T) {
	name := decode(t, "ngc2903_7m+tp_co21.fits")
	obs := caom.New("PHANGS", name.ObservationID())
	err := newExtractor().Apply(obs, name, testsupport.PHANGSComments)
	if !errors.Is(err, services.ErrMissingContext) {
		t.Fatalf("expected missing context error, got %v", err)
	}
}

func TestApplyMissingArtifactStillUpdatesProvenance(t *testing.T) {
	name := decode(t, "ngc2903_7m+tp_co21.fits")

	obs := newRecord(name, false)
	if err := newExtractor().Apply(obs, name, []string{"PHANGS-ALMA Public Release 1"}); err != nil {
		t.Fatalf("expected provenance-only lines to succeed, got %v", err)
	}
	if obs.Plane(name.ProductID()).Provenance.Project != "PHANGS-ALMA" {
		t.Fatal("expected project to be set")
	}

	obs = newRecord(name, false)
	err := newExtractor().Apply(obs, name, testsupport.PHANGSComments)
	if !errors.Is(err, services.ErrMissingContext) {
		t.Fatalf("expected missing context for time bounds, got %v", err)
	}
	if obs.Plane(name.ProductID()).Provenance.Organization != "PHANGS" {
		t.Fatal("expected organization to be set despite missing artifact")
	}
	if obs.Proposal == nil {
		t.Fatal("expected proposal to be set despite missing artifact")
	}
}

func TestMalformedCommentsSurface(t *testing.T) {
	cases := []struct {
		line  string
		field string
	}{
		{"Calibration Level four (ANALYSIS_PRODUCT)", "plane.calibration_level"},
		{"Calibration Level", "plane.calibration_level"},
		{"Release generated at not-a-time", "provenance.last_executed"},
		{"Observed in MJD interval [58077.386275]", "chunk.time.bounds"},
		{"Observed in MJD interval [abc,58081.464121]", "chunk.time.bounds"},
		{"Observed in MJD interval", "chunk.time.bounds"},
	}
	for _, tc := range cases {
		name := decode(t, "ngc2903_7m+tp_co21.fits")
		obs := newRecord(name, true)
		lines := []string{"PHANGS-ALMA Public Release 1", tc.line}
		err := newExtractor().Apply(obs, name, lines)
		if !errors.Is(err, services.ErrMalformedComment) {
			t.Fatalf("%q: expected malformed comment error, got %v", tc.line, err)
		}
		var lineErr *comments.LineError
		if !errors.As(err, &lineErr) {
			t.Fatalf("%q: expected LineError, got %T", tc.line, err)
		}
		if lineErr.Line != tc.line || lineErr.Field != tc.field {
			t.Fatalf("%q: unexpected line error %#v", tc.line, lineErr)
		}
		if obs.Plane(name.ProductID()).Provenance.Project != "PHANGS-ALMA" {
			t.Fatalf("%q: expected earlier fields to survive", tc.line)
		}
	}
}

func TestClassifyOrdering(t *testing.T) {
	extractor := newExtractor()
	cases := map[string]string{
		"Produced with PHANGS-ALMA pipeline version 4.0 Build 935": "provenance.version",
		"COMMENT Calibration Level 4 (ANALYSIS_PRODUCT)":           "plane.calibration_level",
		"PHANGS-ALMA Public Release 1":                             "provenance.project",
		"in nearby GalaxieS (PHANGS) collaboration":                "provenance.organization",
		"Release generated at 2021-03-04T07:28:10.245340":          "provenance.last_executed",
		"Data from ALMA Proposal ID 2017.1.00886.L":                "observation.proposal",
		"Observed in MJD interval [58077.386275,58081.464121]":     "chunk.time.bounds",
	}
	for line, want := range cases {
		got, ok := extractor.Classify(line)
		if !ok || got != want {
			t.Fatalf("Classify(%q) = %q, %v; want %q", line, got, ok, want)
		}
	}
	for _, line := range []string{
		"Galaxy properties from PHANGS sample table version 1.6",
		"Canonical Reference: Leroy et al. (2021), ApJ, Submitted",
		"COMMENTARY about nothing",
	} {
		if got, ok := extractor.Classify(line); ok {
			t.Fatalf("Classify(%q) unexpectedly matched %q", line, got)
		}
	}
}
