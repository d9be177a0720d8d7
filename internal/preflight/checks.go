package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"phangs2caom2/internal/config"
	"phangs2caom2/internal/naming"
)

// CheckDirectoryAccess verifies that path is an existing directory the
// current user can read, write, and traverse.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckLedgerPath verifies the ledger file's directory is usable. The file
// itself is created on first open.
func CheckLedgerPath(name, path string) Result {
	if path == "" {
		return Result{Name: name, Detail: "(error: ledger_path is empty)"}
	}
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
		}
		if err := unix.Access(path, unix.R_OK|unix.W_OK); err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
		}
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (exists)", path)}
	}
	dir := CheckDirectoryAccess(name, filepath.Dir(path))
	if !dir.Passed {
		return dir
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
}

// CheckNaming confirms the naming section builds a decoder and summarises it.
func CheckNaming(cfg *config.Config) Result {
	const name = "Name decoder"
	decoder, err := naming.NewDecoder(NamingOptions(cfg))
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("(error: %v)", err)}
	}
	opts := decoder.Options()
	detail := fmt.Sprintf("scheme=%s uri=%s:%s/", opts.Scheme, opts.URIScheme, opts.Archive)
	if opts.Scheme == naming.SchemeDerivedLabel {
		detail += fmt.Sprintf(" labels=%s/%s", opts.DerivedLabel, opts.PrimaryLabel)
	}
	if opts.FoldCase {
		detail += " fold_case"
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

// NamingOptions maps the configuration onto decoder options.
func NamingOptions(cfg *config.Config) naming.Options {
	return naming.Options{
		Archive:      cfg.Collection.Archive,
		URIScheme:    cfg.Collection.URIScheme,
		Scheme:       naming.Scheme(cfg.Naming.Scheme),
		DerivedLabel: cfg.Naming.DerivedLabel,
		PrimaryLabel: cfg.Naming.PrimaryLabel,
		FoldCase:     cfg.Naming.FoldCase,
	}
}
