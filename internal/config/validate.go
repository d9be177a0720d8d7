package config

import (
	"fmt"
	"strings"

	"phangs2caom2/internal/services"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateCollection(); err != nil {
		return err
	}
	if err := c.validateNaming(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return invalid("paths.output_dir must be set")
	}
	return nil
}

func (c *Config) validateCollection() error {
	for key, value := range map[string]string{
		"collection.name":       c.Collection.Name,
		"collection.archive":    c.Collection.Archive,
		"collection.uri_scheme": c.Collection.URIScheme,
	} {
		if strings.ContainsAny(value, "/: \t") {
			return invalid("%s must not contain separators or whitespace (got %q)", key, value)
		}
	}
	return nil
}

func (c *Config) validateNaming() error {
	switch c.Naming.Scheme {
	case "file_id", "derived_label":
	default:
		return invalid("naming.scheme must be file_id or derived_label (got %q)", c.Naming.Scheme)
	}
	if c.Naming.DerivedLabel == c.Naming.PrimaryLabel {
		return invalid("naming.derived_label and naming.primary_label must differ (both %q)", c.Naming.DerivedLabel)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return invalid("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
}

func invalid(format string, args ...any) error {
	return services.Wrap(services.ErrConfiguration, "config", "validate", fmt.Sprintf(format, args...), nil)
}
