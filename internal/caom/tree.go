package caom

import (
	"encoding/json"
	"strings"
)

// New returns an empty observation for the collection and ID.
func New(collection, observationID string) *Observation {
	return &Observation{
		Collection:    collection,
		ObservationID: observationID,
		Type:          ObservationSimple,
	}
}

// Plane returns the plane with productID, or nil.
func (o *Observation) Plane(productID string) *Plane {
	if o == nil {
		return nil
	}
	for _, plane := range o.Planes {
		if plane.ProductID == productID {
			return plane
		}
	}
	return nil
}

// EnsurePlane returns the plane with productID, appending it when absent.
func (o *Observation) EnsurePlane(productID string) *Plane {
	if plane := o.Plane(productID); plane != nil {
		return plane
	}
	plane := &Plane{ProductID: productID}
	o.Planes = append(o.Planes, plane)
	return plane
}

// Artifact searches every plane for uri.
func (o *Observation) Artifact(uri string) *Artifact {
	if o == nil {
		return nil
	}
	for _, plane := range o.Planes {
		if artifact := plane.Artifact(uri); artifact != nil {
			return artifact
		}
	}
	return nil
}

// Artifact returns the plane's artifact with uri, or nil.
func (p *Plane) Artifact(uri string) *Artifact {
	if p == nil {
		return nil
	}
	for _, artifact := range p.Artifacts {
		if artifact.URI == uri {
			return artifact
		}
	}
	return nil
}

// EnsureArtifact returns the artifact with uri, appending it when absent.
func (p *Plane) EnsureArtifact(uri string) *Artifact {
	if artifact := p.Artifact(uri); artifact != nil {
		return artifact
	}
	artifact := &Artifact{URI: uri}
	p.Artifacts = append(p.Artifacts, artifact)
	return artifact
}

// EnsureProvenance creates the plane's provenance with name when it is nil.
// An existing provenance is returned untouched.
func (p *Plane) EnsureProvenance(name string) *Provenance {
	if p.Provenance == nil {
		p.Provenance = &Provenance{Name: name}
	}
	return p.Provenance
}

// Part returns the artifact's part called name, or nil.
func (a *Artifact) Part(name string) *Part {
	if a == nil {
		return nil
	}
	for _, part := range a.Parts {
		if part.Name == name {
			return part
		}
	}
	return nil
}

// EnsurePart returns the named part, appending it when absent.
func (a *Artifact) EnsurePart(name string) *Part {
	if part := a.Part(name); part != nil {
		return part
	}
	part := &Part{Name: name}
	a.Parts = append(a.Parts, part)
	return part
}

// FirstChunk returns the first chunk of the first part, or nil when the
// artifact has no parts or the first part has no chunks.
func (a *Artifact) FirstChunk() *Chunk {
	if a == nil || len(a.Parts) == 0 {
		return nil
	}
	part := a.Parts[0]
	if len(part.Chunks) == 0 {
		return nil
	}
	return part.Chunks[0]
}

// EnsureChunk returns the part's first chunk, creating one when empty.
func (p *Part) EnsureChunk() *Chunk {
	if len(p.Chunks) == 0 {
		p.Chunks = append(p.Chunks, &Chunk{})
	}
	return p.Chunks[0]
}

// EnsureTimeBounds lazily builds the chunk's time axis and returns its bounds.
func (c *Chunk) EnsureTimeBounds(ctype, cunit, timesys string) *CoordBounds1D {
	if c.Time == nil {
		c.Time = &TemporalWCS{
			Axis:    CoordAxis1D{Axis: Axis{Ctype: ctype, Cunit: cunit}},
			Timesys: timesys,
		}
	}
	if c.Time.Axis.Bounds == nil {
		c.Time.Axis.Bounds = &CoordBounds1D{}
	}
	return c.Time.Axis.Bounds
}

// Encode serialises the observation as indented JSON.
func (o *Observation) Encode() ([]byte, error) {
	return json.MarshalIndent(o, "", "  ")
}

// Parse loads an observation from JSON, returning nil on blank input.
func Parse(raw []byte) (*Observation, error) {
	if strings.TrimSpace(string(raw)) == "" {
		return nil, nil
	}
	var obs Observation
	if err := json.Unmarshal(raw, &obs); err != nil {
		return nil, err
	}
	return &obs, nil
}
