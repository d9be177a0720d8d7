// Package caom defines the observation record assembled for archival
// cataloguing.
//
// The tree is Observation → Plane → Artifact → Part → Chunk. Planes are keyed
// by product ID, artifacts by URI, parts by name; the lookup helpers return
// pointers into the tree so the blueprint and comment passes mutate one record
// in place rather than copying it.
//
// # Key Types
//
// Observation: collection, observation ID, algorithm, telescope, instrument,
// target, proposal, and the ordered plane list.
//
// Plane: product ID, calibration level, data product type, release dates,
// provenance, and artifacts.
//
// Chunk: per-axis WCS metadata (position, energy, time, observable).
//
// # Entry Points
//
// Observation.Plane/EnsurePlane, Plane.Artifact/EnsureArtifact,
// Artifact.Part/EnsurePart, Artifact.FirstChunk, and Encode/Parse for JSON.
// The package holds no locks; callers serialise access to a shared record.
package caom
