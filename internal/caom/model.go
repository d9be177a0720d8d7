package caom

import "time"

// Observation is the top-level grouping of planes for one logical exposure or
// program unit.
type Observation struct {
	Collection    string          `json:"collection"`
	ObservationID string          `json:"observation_id"`
	Type          ObservationType `json:"type"`
	Members       []string        `json:"members"`
	Algorithm     Algorithm       `json:"algorithm"`
	Telescope     *Telescope      `json:"telescope,omitempty"`
	Instrument    *Instrument     `json:"instrument,omitempty"`
	Target        *Target         `json:"target,omitempty"`
	Proposal      *Proposal       `json:"proposal,omitempty"`
	Planes        []*Plane        `json:"planes,omitempty"`
}

type Algorithm struct {
	Name string `json:"name"`
}

// Telescope carries the display name and geocentric location in metres.
type Telescope struct {
	Name         string   `json:"name"`
	GeoLocationX *float64 `json:"geo_location_x,omitempty"`
	GeoLocationY *float64 `json:"geo_location_y,omitempty"`
	GeoLocationZ *float64 `json:"geo_location_z,omitempty"`
}

type Instrument struct {
	Name string `json:"name"`
}

type Target struct {
	Name string `json:"name"`
}

type Proposal struct {
	ID string `json:"id"`
}

// Plane groups artifacts sharing one calibration and processing identity.
type Plane struct {
	ProductID        string           `json:"product_id"`
	CalibrationLevel CalibrationLevel `json:"calibration_level"`
	DataProductType  DataProductType  `json:"data_product_type,omitempty"`
	DataRelease      *time.Time       `json:"data_release,omitempty"`
	MetaRelease      *time.Time       `json:"meta_release,omitempty"`
	Provenance       *Provenance      `json:"provenance,omitempty"`
	Artifacts        []*Artifact      `json:"artifacts,omitempty"`
}

// Provenance records how a plane's data was produced.
type Provenance struct {
	Name         string     `json:"name"`
	Version      string     `json:"version,omitempty"`
	Project      string     `json:"project,omitempty"`
	Organization string     `json:"organization,omitempty"`
	Producer     string     `json:"producer,omitempty"`
	Reference    string     `json:"reference,omitempty"`
	LastExecuted *time.Time `json:"last_executed,omitempty"`
}

// Artifact is one physical file's metadata, identified by URI.
type Artifact struct {
	URI         string      `json:"uri"`
	ProductType ProductType `json:"product_type"`
	ContentType string      `json:"content_type,omitempty"`
	Parts       []*Part     `json:"parts,omitempty"`
}

type Part struct {
	Name   string   `json:"name"`
	Chunks []*Chunk `json:"chunks,omitempty"`
}

// Chunk carries coordinate-axis metadata. Unset axes are nil.
type Chunk struct {
	Position   *SpatialWCS    `json:"position,omitempty"`
	Energy     *SpectralWCS   `json:"energy,omitempty"`
	Time       *TemporalWCS   `json:"time,omitempty"`
	Observable *ObservableWCS `json:"observable,omitempty"`
}

type Axis struct {
	Ctype string `json:"ctype"`
	Cunit string `json:"cunit,omitempty"`
}

// RefCoord pairs a pixel coordinate with its world value.
type RefCoord struct {
	Pix float64 `json:"pix"`
	Val float64 `json:"val"`
}

type CoordRange1D struct {
	Start RefCoord `json:"start"`
	End   RefCoord `json:"end"`
}

// CoordBounds1D holds disjoint samples in encounter order. Samples are never
// merged.
type CoordBounds1D struct {
	Samples []CoordRange1D `json:"samples"`
}

type CoordAxis1D struct {
	Axis   Axis           `json:"axis"`
	Bounds *CoordBounds1D `json:"bounds,omitempty"`
}

type TemporalWCS struct {
	Axis    CoordAxis1D `json:"axis"`
	Timesys string      `json:"timesys,omitempty"`
}

// CDMatrix is the position axis linear transform.
type CDMatrix struct {
	CD11 *float64 `json:"cd11,omitempty"`
	CD12 *float64 `json:"cd12,omitempty"`
	CD21 *float64 `json:"cd21,omitempty"`
	CD22 *float64 `json:"cd22,omitempty"`
}

type SpatialWCS struct {
	Function   CDMatrix `json:"function"`
	Resolution *float64 `json:"resolution,omitempty"`
}

type Transition struct {
	Species    string `json:"species"`
	Transition string `json:"transition"`
}

type SpectralWCS struct {
	Transition *Transition `json:"transition,omitempty"`
}

type ObservableWCS struct {
	Dependent Axis `json:"dependent"`
	Bin       int  `json:"bin"`
}
