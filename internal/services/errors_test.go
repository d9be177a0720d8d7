package services_test

import (
	"errors"
	"strings"
	"testing"

	"phangs2caom2/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrMalformedComment, "comments", "calibration level", "bad token", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrMalformedComment) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"comments", "calibration level", "bad token"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "processing failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestErrorKindMapping(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{services.Wrap(services.ErrMalformedName, "naming", "decode", "x", nil), "malformed_name"},
		{services.Wrap(services.ErrMissingContext, "comments", "select plane", "x", nil), "missing_context"},
		{services.Wrap(services.ErrMalformedComment, "comments", "parse", "x", nil), "malformed_comment"},
		{services.Wrap(services.ErrConfiguration, "config", "", "", nil), "configuration"},
		{services.Wrap(services.ErrNotFound, "ingest", "", "", nil), "not_found"},
		{errors.New("plain"), "error"},
	}
	for _, tc := range cases {
		if got := services.ErrorKind(tc.err); got != tc.want {
			t.Fatalf("ErrorKind(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
