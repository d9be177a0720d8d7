package naming

import (
	"fmt"

	"phangs2caom2/internal/services"
)

// Name is the decoded form of one artifact filename. It is immutable once
// returned by Decode.
type Name struct {
	fileName         string
	fileID           string
	fileURI          string
	observationID    string
	productID        string
	telescope        string
	targetName       string
	energyTransition string
	algorithmName    string
	derived          bool
	preview          bool
}

// FileName is the terminal filename with any .header suffix removed.
func (n Name) FileName() string { return n.fileName }

// FileID is the filename with every known extension stripped.
func (n Name) FileID() string { return n.fileID }

// FileURI is the artifact locator: the input locator itself, or one built
// from the decoder's URI scheme and archive.
func (n Name) FileURI() string { return n.fileURI }

// ObservationID is the first three underscore-delimited tokens.
func (n Name) ObservationID() string { return n.observationID }

// ProductID is the plane key under the decoder's naming scheme.
func (n Name) ProductID() string { return n.productID }

// Telescope is the display name for the array combination token.
func (n Name) Telescope() string { return n.telescope }

// TargetName is the leading token.
func (n Name) TargetName() string { return n.targetName }

// EnergyTransition is the third token, the spectral line.
func (n Name) EnergyTransition() string { return n.energyTransition }

// AlgorithmName joins the tokens after the observation ID, or is the
// transition plus "_datacube" when there are none.
func (n Name) AlgorithmName() string { return n.algorithmName }

// IsDerived reports whether the file ID carries the moment-map marker.
func (n Name) IsDerived() bool { return n.derived }

// IsPreview reports whether the artifact is a preview image that bypasses
// rule application.
func (n Name) IsPreview() bool { return n.preview }

func (n Name) String() string {
	return fmt.Sprintf("obs_id %s, file_id %s", n.observationID, n.fileID)
}

// NameError reports a filename that cannot be decoded.
type NameError struct {
	FileID string
	Reason string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("%s: %s in %s", services.ErrMalformedName, e.Reason, e.FileID)
}

func (e *NameError) Unwrap() error { return services.ErrMalformedName }
