package naming

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"

	"phangs2caom2/internal/services"
)

// Scheme selects how plane keys (product IDs) are derived.
type Scheme string

const (
	// SchemeFileID uses the file ID as the product ID.
	SchemeFileID Scheme = "file_id"
	// SchemeDerivedLabel maps derived and primary products onto two fixed labels.
	SchemeDerivedLabel Scheme = "derived_label"
)

const (
	DefaultArchive      = "PHANGS"
	DefaultURIScheme    = "ad"
	DefaultDerivedLabel = "derived"
	DefaultPrimaryLabel = "primary"

	derivedMarker   = "mom"
	datacubeSuffix  = "_datacube"
	headerExtension = ".header"
	minTokens       = 3
)

// Options configures a Decoder. Zero values take the package defaults.
type Options struct {
	Archive      string
	URIScheme    string
	Scheme       Scheme
	DerivedLabel string
	PrimaryLabel string
	// FoldCase matches markers and telescope tokens with Unicode case folding.
	// Stored values keep their original case either way.
	FoldCase bool
}

// Decoder turns filenames and artifact URIs into Names.
type Decoder struct {
	opts Options
	fold func(string) string
}

// NewDecoder validates opts and returns a decoder.
func NewDecoder(opts Options) (*Decoder, error) {
	if strings.TrimSpace(opts.Archive) == "" {
		opts.Archive = DefaultArchive
	}
	if strings.TrimSpace(opts.URIScheme) == "" {
		opts.URIScheme = DefaultURIScheme
	}
	if opts.Scheme == "" {
		opts.Scheme = SchemeFileID
	}
	if opts.DerivedLabel == "" {
		opts.DerivedLabel = DefaultDerivedLabel
	}
	if opts.PrimaryLabel == "" {
		opts.PrimaryLabel = DefaultPrimaryLabel
	}
	switch opts.Scheme {
	case SchemeFileID:
	case SchemeDerivedLabel:
		if opts.DerivedLabel == opts.PrimaryLabel {
			return nil, services.Wrap(services.ErrConfiguration, "naming", "labels",
				fmt.Sprintf("derived and primary labels must differ (both %q)", opts.DerivedLabel), nil)
		}
	default:
		return nil, services.Wrap(services.ErrConfiguration, "naming", "scheme",
			fmt.Sprintf("unsupported scheme %q", opts.Scheme), nil)
	}

	d := &Decoder{opts: opts}
	if opts.FoldCase {
		caser := cases.Fold()
		d.fold = caser.String
	}
	return d, nil
}

var defaultDecoder = &Decoder{opts: Options{
	Archive:      DefaultArchive,
	URIScheme:    DefaultURIScheme,
	Scheme:       SchemeFileID,
	DerivedLabel: DefaultDerivedLabel,
	PrimaryLabel: DefaultPrimaryLabel,
}}

// Decode decodes identifier with the PHANGS defaults.
func Decode(identifier string) (Name, error) {
	return defaultDecoder.Decode(identifier)
}

// Options returns the effective decoder options.
func (d *Decoder) Options() Options { return d.opts }

// Decode accepts a bare filename, a local path, or a resource locator. Only
// the terminal filename of a locator or path is decoded.
func (d *Decoder) Decode(identifier string) (Name, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return Name{}, &NameError{FileID: identifier, Reason: "empty identifier"}
	}

	fileName := filepath.Base(identifier)
	fileURI := ""
	if isLocator(identifier) {
		_, _, name, err := DecomposeURI(identifier)
		if err != nil {
			return Name{}, services.Wrap(services.ErrMalformedName, "naming", "decompose uri", "", err)
		}
		fileName = name
		// A locator names its artifact; keep it instead of rebuilding one
		// from the configured scheme and archive.
		fileURI = strings.TrimSuffix(identifier, headerExtension)
	}
	// Header dumps stand in for the FITS file they were extracted from.
	fileName = strings.TrimSuffix(fileName, headerExtension)
	if fileURI == "" {
		fileURI = fmt.Sprintf("%s:%s/%s", d.opts.URIScheme, d.opts.Archive, fileName)
	}

	fileID := RemoveExtensions(fileName)
	bits := strings.Split(fileID, "_")
	if len(bits) < minTokens {
		return Name{}, &NameError{
			FileID: fileID,
			Reason: fmt.Sprintf("expected at least %d underscore-delimited tokens, found %d", minTokens, len(bits)),
		}
	}

	telescope, ok := resolveTelescope(bits[1], d.fold)
	if !ok {
		return Name{}, &NameError{FileID: fileID, Reason: fmt.Sprintf("unexpected telescope value %q", bits[1])}
	}

	name := Name{
		fileName:         fileName,
		fileID:           fileID,
		fileURI:          fileURI,
		observationID:    strings.Join(bits[:minTokens], "_"),
		telescope:        telescope,
		targetName:       bits[0],
		energyTransition: bits[2],
		algorithmName:    bits[2] + datacubeSuffix,
		derived:          d.contains(fileID, derivedMarker),
		preview:          IsPreview(fileName),
	}
	if len(bits) > minTokens {
		name.algorithmName = strings.Join(bits[minTokens:], "")
	}
	name.productID = d.productID(name)
	return name, nil
}

func (d *Decoder) productID(name Name) string {
	if d.opts.Scheme != SchemeDerivedLabel {
		return name.fileID
	}
	if name.derived {
		return d.opts.DerivedLabel
	}
	return d.opts.PrimaryLabel
}

func (d *Decoder) contains(value, marker string) bool {
	if d.fold != nil {
		return strings.Contains(d.fold(value), d.fold(marker))
	}
	return strings.Contains(value, marker)
}
