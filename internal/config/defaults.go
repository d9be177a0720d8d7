package config

const (
	defaultConfigPath   = "~/.config/phangs2caom2/config.toml"
	projectConfigName   = "phangs2caom2.toml"
	defaultOutputDir    = "~/.local/share/phangs2caom2/observations"
	defaultLogDir       = "~/.local/share/phangs2caom2/logs"
	defaultLedgerPath   = "~/.local/share/phangs2caom2/ledger.db"
	defaultCollection   = "PHANGS"
	defaultArchive      = "PHANGS"
	defaultURIScheme    = "ad"
	defaultScheme       = "file_id"
	defaultDerivedLabel = "derived"
	defaultPrimaryLabel = "primary"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
			LedgerPath: defaultLedgerPath,
		},
		Collection: Collection{
			Name:      defaultCollection,
			Archive:   defaultArchive,
			URIScheme: defaultURIScheme,
		},
		Naming: Naming{
			Scheme:       defaultScheme,
			DerivedLabel: defaultDerivedLabel,
			PrimaryLabel: defaultPrimaryLabel,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Validation: Validation{
			RequireHeaders: true,
		},
	}
}
