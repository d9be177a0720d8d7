package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCollection()
	c.normalizeNaming()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.OutputDir, err = ExpandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.LedgerPath, err = ExpandPath(c.Paths.LedgerPath); err != nil {
		return fmt.Errorf("paths.ledger_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeCollection() {
	c.Collection.Name = strings.TrimSpace(c.Collection.Name)
	if c.Collection.Name == "" {
		c.Collection.Name = defaultCollection
	}
	c.Collection.Archive = strings.TrimSpace(c.Collection.Archive)
	if c.Collection.Archive == "" {
		c.Collection.Archive = c.Collection.Name
	}
	c.Collection.URIScheme = strings.ToLower(strings.TrimSpace(c.Collection.URIScheme))
	if c.Collection.URIScheme == "" {
		c.Collection.URIScheme = defaultURIScheme
	}
}

func (c *Config) normalizeNaming() {
	c.Naming.Scheme = strings.ToLower(strings.TrimSpace(c.Naming.Scheme))
	if c.Naming.Scheme == "" {
		c.Naming.Scheme = defaultScheme
	}
	c.Naming.DerivedLabel = strings.TrimSpace(c.Naming.DerivedLabel)
	if c.Naming.DerivedLabel == "" {
		c.Naming.DerivedLabel = defaultDerivedLabel
	}
	c.Naming.PrimaryLabel = strings.TrimSpace(c.Naming.PrimaryLabel)
	if c.Naming.PrimaryLabel == "" {
		c.Naming.PrimaryLabel = defaultPrimaryLabel
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv("PHANGS2CAOM2_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
