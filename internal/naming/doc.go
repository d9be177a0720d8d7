// Package naming decodes PHANGS data-product filenames into the identifiers
// used to group artifacts into observations and planes.
//
// A name such as ngc2903_12m+7m+tp_co21_strict_mom0.fits is split on
// underscores: the target, the array-configuration token, and the spectral
// transition come first, and any remaining tokens name the processing recipe.
// The array token is resolved against a fixed telescope table after its parts
// are sorted into canonical order, so 7m+12m and 12m+7m resolve identically.
// An unknown combination is a malformed-name error; there is no default
// telescope.
//
// Two plane-key schemes exist in sibling collections and are kept separate:
// SchemeFileID uses the file ID, SchemeDerivedLabel collapses every derived
// product onto one label and every primary product onto another.
package naming
