package comments

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"phangs2caom2/internal/caom"
)

const (
	provenanceName     = "PHANGS-ALMA pipeline"
	projectLabel       = "PHANGS-ALMA"
	organizationLabel  = "PHANGS"
	analysisLevelToken = 4

	timeAxisCtype   = "TIME"
	timeAxisCunit   = "d"
	timeAxisTimesys = "UTC"
	startPixel      = 0.5
	endPixel        = 1.5
)

// target is the slice of the record a rule may touch.
type target struct {
	obs   *caom.Observation
	plane *caom.Plane
	chunk *caom.Chunk
}

// rule maps a marker substring to its handler. Handlers receive the
// normalised line.
type rule struct {
	name   string
	marker string
	apply  func(t *target, line string) error
}

// errNoChunk signals a time-axis rule with nowhere to attach its sample.
var errNoChunk = errors.New("no chunk for time bounds")

// defaultRules is evaluated top to bottom; order matters because several
// PHANGS comments share words (e.g. "sample table version" vs "pipeline version").
var defaultRules = []rule{
	{name: "provenance.version", marker: "pipeline version ", apply: applyVersion},
	{name: "plane.calibration_level", marker: "Calibration Level", apply: applyCalibrationLevel},
	{name: "provenance.project", marker: "PHANGS-ALMA Public Release", apply: applyProject},
	{name: "provenance.organization", marker: "in nearby GalaxieS (PHANGS) collaboration", apply: applyOrganization},
	{name: "provenance.last_executed", marker: "Release generated at ", apply: applyLastExecuted},
	{name: "observation.proposal", marker: "Data from ALMA Proposal ID ", apply: applyProposal},
	{name: "chunk.time.bounds", marker: "Observed in MJD interval ", apply: applyTimeInterval},
}

func applyVersion(t *target, line string) error {
	_, version, _ := strings.Cut(line, " version ")
	t.plane.Provenance.Version = strings.TrimSpace(version)
	return nil
}

func applyCalibrationLevel(t *target, line string) error {
	tokens := strings.Fields(line)
	if len(tokens) < 3 {
		return fmt.Errorf("expected level as third token, found %d tokens", len(tokens))
	}
	level, err := strconv.Atoi(tokens[2])
	if err != nil {
		return fmt.Errorf("parse level %q: %w", tokens[2], err)
	}
	if level == analysisLevelToken {
		t.plane.CalibrationLevel = t.plane.CalibrationLevel.Upgrade(caom.CalibrationAnalysisProduct)
	}
	return nil
}

func applyProject(t *target, _ string) error {
	t.plane.Provenance.Project = projectLabel
	return nil
}

func applyOrganization(t *target, _ string) error {
	t.plane.Provenance.Organization = organizationLabel
	return nil
}

func applyLastExecuted(t *target, line string) error {
	_, raw, _ := strings.Cut(line, " at ")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("missing timestamp")
	}
	parsed, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	executed := parsed.UTC()
	t.plane.Provenance.LastExecuted = &executed
	return nil
}

func applyProposal(t *target, line string) error {
	if t.obs.Proposal != nil {
		return nil
	}
	_, id, _ := strings.Cut(line, " ID ")
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("missing proposal id")
	}
	t.obs.Proposal = &caom.Proposal{ID: id}
	return nil
}

func applyTimeInterval(t *target, line string) error {
	tokens := strings.Fields(line)
	if len(tokens) < 5 {
		return fmt.Errorf("expected interval as fifth token, found %d tokens", len(tokens))
	}
	start, end, err := parseInterval(tokens[4])
	if err != nil {
		return err
	}
	if t.chunk == nil {
		return errNoChunk
	}
	bounds := t.chunk.EnsureTimeBounds(timeAxisCtype, timeAxisCunit, timeAxisTimesys)
	bounds.Samples = append(bounds.Samples, caom.CoordRange1D{
		Start: caom.RefCoord{Pix: startPixel, Val: start},
		End:   caom.RefCoord{Pix: endPixel, Val: end},
	})
	return nil
}

// parseInterval reads "[start,end]".
func parseInterval(token string) (float64, float64, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(token, "["), "]")
	startRaw, endRaw, ok := strings.Cut(inner, ",")
	if !ok || strings.Contains(endRaw, ",") {
		return 0, 0, fmt.Errorf("expected [start,end], got %q", token)
	}
	start, err := strconv.ParseFloat(strings.TrimSpace(startRaw), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse interval start %q: %w", startRaw, err)
	}
	end, err := strconv.ParseFloat(strings.TrimSpace(endRaw), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse interval end %q: %w", endRaw, err)
	}
	return start, end, nil
}
