package lineage_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"phangs2caom2/internal/lineage"
	"phangs2caom2/internal/naming"
	"phangs2caom2/internal/services"
)

func TestParse(t *testing.T) {
	entry, err := lineage.Parse("ngc2903_7m+tp_co21_mom0/ad:PHANGS/ngc2903_7m+tp_co21_mom0.fits")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := lineage.Entry{ProductID: "ngc2903_7m+tp_co21_mom0", URI: "ad:PHANGS/ngc2903_7m+tp_co21_mom0.fits"}
	if entry != want {
		t.Fatalf("unexpected entry %#v", entry)
	}
	if entry.String() != "ngc2903_7m+tp_co21_mom0/ad:PHANGS/ngc2903_7m+tp_co21_mom0.fits" {
		t.Fatalf("unexpected String %q", entry.String())
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "no-slash", "/ad:PHANGS/x.fits", "product/", "product/not a uri"} {
		if _, err := lineage.Parse(raw); !errors.Is(err, services.ErrValidation) {
			t.Fatalf("Parse(%q): expected validation error, got %v", raw, err)
		}
	}
}

func TestEntryFor(t *testing.T) {
	name, err := naming.Decode("ngc2903_7m+tp_co21.fits")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got := lineage.EntryFor(name).String()
	if got != "ngc2903_7m+tp_co21/ad:PHANGS/ngc2903_7m+tp_co21.fits" {
		t.Fatalf("unexpected lineage %q", got)
	}
	entry, err := lineage.Parse(got)
	if err != nil || entry.ProductID != "ngc2903_7m+tp_co21" {
		t.Fatalf("formatted lineage does not parse: %#v %v", entry, err)
	}
}

func TestURIsFromLocalPaths(t *testing.T) {
	decoder, err := naming.NewDecoder(naming.Options{})
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	got, err := lineage.URIs(decoder, nil, []string{
		"/data/phangs/ngc2903_7m+tp_co21_mom0.fits.header",
		"ngc2903_7m+tp_co21.fits.gz",
	})
	if err != nil {
		t.Fatalf("URIs: %v", err)
	}
	want := []string{
		"ad:PHANGS/ngc2903_7m+tp_co21_mom0.fits",
		"ad:PHANGS/ngc2903_7m+tp_co21.fits",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected uris (-want +got):\n%s", diff)
	}
}

func TestURIsPrefersLineage(t *testing.T) {
	decoder, err := naming.NewDecoder(naming.Options{})
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	got, err := lineage.URIs(decoder,
		[]string{"ngc2903_7m+tp_co21_mom0/ad:PHANGS/ngc2903_7m+tp_co21_mom0.jpg"},
		[]string{"ignored_7m_co21.fits"},
	)
	if err != nil {
		t.Fatalf("URIs: %v", err)
	}
	if diff := cmp.Diff([]string{"ad:PHANGS/ngc2903_7m+tp_co21_mom0.jpg"}, got); diff != "" {
		t.Fatalf("unexpected uris (-want +got):\n%s", diff)
	}
}

func TestURIsErrors(t *testing.T) {
	decoder, err := naming.NewDecoder(naming.Options{})
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	if _, err := lineage.URIs(decoder, nil, nil); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := lineage.URIs(decoder, nil, []string{"ngc2903_9m_co21.fits"}); !errors.Is(err, services.ErrMalformedName) {
		t.Fatalf("expected malformed name, got %v", err)
	}
}
