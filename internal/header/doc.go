// Package header parses FITS header text dumps (.fits.header files).
//
// Dumps arrive either as newline-separated cards or as fixed 80-column cards
// with no separators. Each END card closes one HDU. Value cards keep their raw
// value text; numeric conversion happens on lookup so a malformed keyword
// surfaces as an error at the point of use.
package header
