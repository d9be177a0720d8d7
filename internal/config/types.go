package config

import (
	"fmt"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds every setting phangs2caom2 reads from its TOML file.
type Config struct {
	Paths      Paths      `toml:"paths"`
	Collection Collection `toml:"collection"`
	Naming     Naming     `toml:"naming"`
	Logging    Logging    `toml:"logging"`
	Validation Validation `toml:"validation"`
}

// Paths locates observation records, logs, and the ingestion ledger.
type Paths struct {
	OutputDir  string `toml:"output_dir"`
	LogDir     string `toml:"log_dir"`
	LedgerPath string `toml:"ledger_path"`
}

// Collection names the archive collection artifacts belong to.
type Collection struct {
	Name      string `toml:"name"`
	Archive   string `toml:"archive"`
	URIScheme string `toml:"uri_scheme"`
}

// Naming controls how file names become plane keys.
type Naming struct {
	// Scheme is "file_id" (the stripped file name) or "derived_label"
	// (DerivedLabel or PrimaryLabel).
	Scheme       string `toml:"scheme"`
	DerivedLabel string `toml:"derived_label"`
	PrimaryLabel string `toml:"primary_label"`
	FoldCase     bool   `toml:"fold_case"`
}

type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

type Validation struct {
	// RequireHeaders fails a run when an artifact has no local header file.
	RequireHeaders bool `toml:"require_headers"`
}

// OutputPath returns the default record location for an observation.
func (c *Config) OutputPath(observationID string) string {
	return filepath.Join(c.Paths.OutputDir, observationID+".json")
}

// Encode renders the effective configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}
