package naming

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// knownExtensions are stripped from the end of a filename, last suffix first,
// to obtain its file ID.
var knownExtensions = []string{
	".fits", ".fit", ".fz", ".gz", ".bz2", ".header",
	".hdf5", ".h5", ".jpg", ".jpeg", ".png", ".gif", ".txt", ".xml",
}

var previewExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
}

// RemoveExtensions strips recognised format and compression suffixes from
// the end of fileName, one per pass, until none is left.
func RemoveExtensions(fileName string) string {
	result := fileName
	for {
		ext, ok := trailingExtension(result)
		if !ok {
			return result
		}
		result = strings.TrimSuffix(result, ext)
	}
}

func trailingExtension(name string) (string, bool) {
	for _, ext := range knownExtensions {
		if len(name) > len(ext) && strings.HasSuffix(name, ext) {
			return ext, true
		}
	}
	return "", false
}

// IsPreview reports whether the identifier names a preview image.
func IsPreview(identifier string) bool {
	_, ok := previewExtensions[strings.ToLower(filepath.Ext(identifier))]
	return ok
}

// DecomposeURI splits a resource locator into scheme, path, and filename.
// "ad:PHANGS/x.fits" yields ("ad", "PHANGS", "x.fits").
func DecomposeURI(uri string) (scheme, dir, fileName string, err error) {
	parsed, err := url.Parse(strings.TrimSpace(uri))
	if err != nil {
		return "", "", "", fmt.Errorf("parse uri %q: %w", uri, err)
	}
	if parsed.Scheme == "" {
		return "", "", "", fmt.Errorf("parse uri %q: missing scheme", uri)
	}
	full := parsed.Opaque
	if full == "" {
		full = strings.TrimPrefix(parsed.Path, "/")
	}
	dir, fileName = path.Split(full)
	if fileName == "" {
		return "", "", "", fmt.Errorf("parse uri %q: missing file name", uri)
	}
	return parsed.Scheme, strings.TrimSuffix(dir, "/"), fileName, nil
}

// isLocator distinguishes "scheme:rest" locators from bare names and paths.
func isLocator(identifier string) bool {
	idx := strings.Index(identifier, ":")
	if idx <= 0 {
		return false
	}
	// Windows drive letters look like one-letter schemes.
	return idx > 1 || strings.Contains(identifier, "://")
}
