package blueprint

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"phangs2caom2/internal/caom"
	"phangs2caom2/internal/header"
	"phangs2caom2/internal/naming"
	"phangs2caom2/internal/services"
)

const (
	almaInstrument   = "Band 6"
	fitsContentType  = "application/fits"
	partName         = "0"
	transitionTBD    = "TBD"
	noiseMarker      = "noise"
	maskMarker       = "mask"
	telescopeGroup   = "ALMA"
	arcsecPerDegree  = 3600.0
	observableBinned = 1
)

// ALMA array centre, geocentric metres.
var (
	almaGeoLocationX = 2225015.30883296
	almaGeoLocationY = -5440016.41799762
	almaGeoLocationZ = -2481631.27428014
)

// Accumulate builds or updates the parts of obs that belong to name. hdr may
// be nil when no local header is available; header-derived fields are then
// left unset.
func Accumulate(obs *caom.Observation, name naming.Name, hdr *header.Header) error {
	if obs == nil {
		return services.Wrap(services.ErrMissingContext, "blueprint", "accumulate", "observation is nil", nil)
	}
	if name.IsPreview() {
		return nil
	}

	applyObservation(obs, name)
	plane := obs.EnsurePlane(name.ProductID())
	if err := applyPlane(plane, name, hdr); err != nil {
		return err
	}
	artifact := plane.EnsureArtifact(name.FileURI())
	applyArtifact(artifact)
	chunk := artifact.EnsurePart(partName).EnsureChunk()
	return applyChunk(chunk, name, hdr)
}

func applyObservation(obs *caom.Observation, name naming.Name) {
	obs.Type = caom.ObservationDerived
	if obs.Members == nil {
		obs.Members = []string{}
	}
	obs.Algorithm.Name = name.AlgorithmName()
	if strings.Contains(name.Telescope(), telescopeGroup) {
		obs.Instrument = &caom.Instrument{Name: almaInstrument}
	}
	obs.Target = &caom.Target{Name: name.TargetName()}
	x, y, z := almaGeoLocationX, almaGeoLocationY, almaGeoLocationZ
	obs.Telescope = &caom.Telescope{
		Name:         name.Telescope(),
		GeoLocationX: &x,
		GeoLocationY: &y,
		GeoLocationZ: &z,
	}
}

func applyPlane(plane *caom.Plane, name naming.Name, hdr *header.Header) error {
	plane.CalibrationLevel = plane.CalibrationLevel.Upgrade(caom.CalibrationProduct)
	plane.DataProductType = caom.DataProductCube
	if name.IsDerived() {
		plane.DataProductType = caom.DataProductImage
	}

	release, err := headerTime(hdr, "DATE")
	if err != nil {
		return services.Wrap(services.ErrValidation, "blueprint", "plane release", name.FileName(), err)
	}
	if release != nil {
		data, meta := *release, *release
		plane.DataRelease = &data
		plane.MetaRelease = &meta
	}
	return nil
}

func applyArtifact(artifact *caom.Artifact) {
	switch uri := artifact.URI; {
	case strings.Contains(uri, noiseMarker):
		artifact.ProductType = caom.ProductNoise
	case strings.Contains(uri, maskMarker):
		artifact.ProductType = caom.ProductCalibration
	default:
		artifact.ProductType = caom.ProductScience
	}
	artifact.ContentType = fitsContentType
}

func applyChunk(chunk *caom.Chunk, name naming.Name, hdr *header.Header) error {
	values, err := readFloats(hdr, "CDELT1", "CDELT2", "BMAJ", "BMIN")
	if err != nil {
		return services.Wrap(services.ErrValidation, "blueprint", "chunk", name.FileName(), err)
	}

	zero12, zero21 := 0.0, 0.0
	position := &caom.SpatialWCS{Function: caom.CDMatrix{
		CD11: values["CDELT1"],
		CD12: &zero12,
		CD21: &zero21,
		CD22: values["CDELT2"],
	}}
	position.Resolution = positionResolution(values["BMAJ"], values["BMIN"])
	chunk.Position = position

	chunk.Energy = &caom.SpectralWCS{Transition: &caom.Transition{
		Species:    name.EnergyTransition(),
		Transition: transitionTBD,
	}}

	observable := &caom.ObservableWCS{Bin: observableBinned}
	if btype, ok := hdr.Value("BTYPE"); ok {
		observable.Dependent.Ctype = btype
	}
	if bunit, ok := hdr.Value("BUNIT"); ok {
		observable.Dependent.Cunit = bunit
	}
	chunk.Observable = observable
	// Time bounds come from the header comments applied after the blueprint.
	chunk.Time = nil
	return nil
}

// positionResolution converts the beam axes from degrees to an arcsecond
// geometric mean. Both axes must be present.
func positionResolution(bmaj, bmin *float64) *float64 {
	if bmaj == nil || bmin == nil {
		return nil
	}
	resolution := arcsecPerDegree * math.Sqrt(*bmaj**bmin)
	return &resolution
}

func readFloats(hdr *header.Header, keywords ...string) (map[string]*float64, error) {
	out := make(map[string]*float64, len(keywords))
	for _, keyword := range keywords {
		value, ok, err := hdr.Float(keyword)
		if err != nil {
			return nil, err
		}
		if ok {
			v := value
			out[keyword] = &v
		}
	}
	return out, nil
}

func headerTime(hdr *header.Header, keyword string) (*time.Time, error) {
	raw, ok := hdr.Value(keyword)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parsed, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("keyword %s: parse %q as time: %w", keyword, raw, err)
	}
	utc := parsed.UTC()
	return &utc, nil
}
