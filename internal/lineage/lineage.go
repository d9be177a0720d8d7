// Package lineage resolves the artifact URIs an ingestion run processes, from
// either "product/uri" lineage entries or local header paths.
package lineage

import (
	"fmt"
	"path/filepath"
	"strings"

	"phangs2caom2/internal/naming"
	"phangs2caom2/internal/services"
)

const localExtension = ".fits"

// Entry pairs a plane product ID with one artifact URI.
type Entry struct {
	ProductID string
	URI       string
}

// String renders the entry in its command-line form.
func (e Entry) String() string {
	return e.ProductID + "/" + e.URI
}

// Parse splits "product/scheme:archive/file" at the first slash.
func Parse(raw string) (Entry, error) {
	raw = strings.TrimSpace(raw)
	productID, uri, ok := strings.Cut(raw, "/")
	if !ok || productID == "" || uri == "" {
		return Entry{}, services.Wrap(services.ErrValidation, "lineage", "parse",
			fmt.Sprintf("expected product/uri, got %q", raw), nil)
	}
	if _, _, _, err := naming.DecomposeURI(uri); err != nil {
		return Entry{}, services.Wrap(services.ErrValidation, "lineage", "parse", raw, err)
	}
	return Entry{ProductID: productID, URI: uri}, nil
}

// EntryFor returns the lineage entry that ingests name into its plane.
func EntryFor(name naming.Name) Entry {
	return Entry{ProductID: name.ProductID(), URI: name.FileURI()}
}

// FromLocal maps a local header or FITS path onto the artifact URI of the FITS
// file it describes.
func FromLocal(decoder *naming.Decoder, path string) (string, error) {
	fileID := naming.RemoveExtensions(filepath.Base(path))
	name, err := decoder.Decode(fileID + localExtension)
	if err != nil {
		return "", err
	}
	return name.FileURI(), nil
}

// URIs returns the artifact URIs for a run. Lineage entries take precedence
// over local paths; with neither there is nothing to ingest.
func URIs(decoder *naming.Decoder, lineage, local []string) ([]string, error) {
	switch {
	case len(lineage) > 0:
		uris := make([]string, 0, len(lineage))
		for _, raw := range lineage {
			entry, err := Parse(raw)
			if err != nil {
				return nil, err
			}
			uris = append(uris, entry.URI)
		}
		return uris, nil
	case len(local) > 0:
		uris := make([]string, 0, len(local))
		for _, path := range local {
			uri, err := FromLocal(decoder, path)
			if err != nil {
				return nil, err
			}
			uris = append(uris, uri)
		}
		return uris, nil
	default:
		return nil, services.Wrap(services.ErrValidation, "lineage", "uris",
			"no lineage entries or local paths to define artifact uris", nil)
	}
}
