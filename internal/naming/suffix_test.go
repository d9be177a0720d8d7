package naming

import "testing"

func TestRemoveExtensions(t *testing.T) {
	cases := map[string]string{
		"x_7m+tp_co21.fits":        "x_7m+tp_co21",
		"x_7m+tp_co21.fits.fz":     "x_7m+tp_co21",
		"x_7m+tp_co21.fits.gz":     "x_7m+tp_co21",
		"x_7m+tp_co21.fits.header": "x_7m+tp_co21",
		"x_7m+tp_co21":             "x_7m+tp_co21",
		".fits":                    ".fits",
		"x_7m+tp_co21.fit.fits":    "x_7m+tp_co21",
		"x_7m+tp_co21.fits.fit":    "x_7m+tp_co21",
		"x_7m+tp_co21.png.gz":      "x_7m+tp_co21",
		"x_7m+tp_co21.v2.fits":     "x_7m+tp_co21.v2",
		"x.fits.fits":              "x",
	}
	for input, want := range cases {
		if got := RemoveExtensions(input); got != want {
			t.Fatalf("RemoveExtensions(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestDecomposeURI(t *testing.T) {
	cases := []struct {
		uri, scheme, dir, file string
	}{
		{"ad:PHANGS/ngc2903_7m+tp_co21.fits", "ad", "PHANGS", "ngc2903_7m+tp_co21.fits"},
		{"cadc:PHANGS/a/b.fits", "cadc", "PHANGS/a", "b.fits"},
		{"https://example.org/data/x.fits", "https", "data", "x.fits"},
	}
	for _, tc := range cases {
		scheme, dir, file, err := DecomposeURI(tc.uri)
		if err != nil {
			t.Fatalf("DecomposeURI(%q): %v", tc.uri, err)
		}
		if scheme != tc.scheme || dir != tc.dir || file != tc.file {
			t.Fatalf("DecomposeURI(%q) = (%q, %q, %q)", tc.uri, scheme, dir, file)
		}
	}
	for _, bad := range []string{"no-scheme.fits", "ad:PHANGS/"} {
		if _, _, _, err := DecomposeURI(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestIsLocator(t *testing.T) {
	cases := map[string]bool{
		"ad:PHANGS/x.fits":   true,
		"https://h/x.fits":   true,
		"x.fits":             false,
		"/tmp/x.fits":        false,
		`C:\data\x.fits`:     false,
	}
	for input, want := range cases {
		if got := isLocator(input); got != want {
			t.Fatalf("isLocator(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestResolveTelescopeNormalisesOrder(t *testing.T) {
	for _, token := range []string{"tp+7m+12m", "7m+12m+tp", "12m+tp+7m"} {
		label, ok := resolveTelescope(token, nil)
		if !ok || label != "ALMA-12m + ALMA-7m + ALMA-TP" {
			t.Fatalf("resolveTelescope(%q) = %q, %v", token, label, ok)
		}
	}
}
