package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"phangs2caom2/internal/config"
	"phangs2caom2/internal/services"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "phangs2caom2", "config.toml"); resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}

	wantOutput := filepath.Join(tempHome, ".local", "share", "phangs2caom2", "observations")
	if cfg.Paths.OutputDir != wantOutput {
		t.Fatalf("unexpected output dir: got %q want %q", cfg.Paths.OutputDir, wantOutput)
	}
	if cfg.Paths.LedgerPath != filepath.Join(tempHome, ".local", "share", "phangs2caom2", "ledger.db") {
		t.Fatalf("unexpected ledger path: %q", cfg.Paths.LedgerPath)
	}
	if cfg.Collection.Archive != "PHANGS" || cfg.Collection.URIScheme != "ad" {
		t.Fatalf("unexpected collection defaults: %#v", cfg.Collection)
	}
	if cfg.Naming.Scheme != "file_id" || cfg.Naming.FoldCase {
		t.Fatalf("unexpected naming defaults: %#v", cfg.Naming)
	}
	if !cfg.Validation.RequireHeaders {
		t.Fatal("expected header validation on by default")
	}
}

func TestLoadProjectConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	projectDir := t.TempDir()
	t.Chdir(projectDir)

	content := "[naming]\nscheme = \"derived_label\"\n"
	if err := os.WriteFile(filepath.Join(projectDir, "phangs2caom2.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || filepath.Base(resolved) != "phangs2caom2.toml" {
		t.Fatalf("expected project config, got %q exists=%v", resolved, exists)
	}
	if cfg.Naming.Scheme != "derived_label" {
		t.Fatalf("expected derived_label scheme, got %q", cfg.Naming.Scheme)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "phangs2caom2.toml")

	type payload struct {
		Collection struct {
			Name    string `toml:"name"`
			Archive string `toml:"archive"`
		} `toml:"collection"`
		Naming struct {
			Scheme   string `toml:"scheme"`
			FoldCase bool   `toml:"fold_case"`
		} `toml:"naming"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Collection.Name = "PHANGS2"
	custom.Naming.Scheme = " Derived_Label "
	custom.Naming.FoldCase = true
	custom.Logging.Format = "JSON"
	custom.Logging.Level = "DEBUG"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Collection.Name != "PHANGS2" {
		t.Fatalf("expected collection from file, got %q", cfg.Collection.Name)
	}
	if cfg.Collection.Archive != "PHANGS2" {
		t.Fatalf("expected archive to fall back to collection name, got %q", cfg.Collection.Archive)
	}
	if cfg.Naming.Scheme != "derived_label" || !cfg.Naming.FoldCase {
		t.Fatalf("unexpected naming: %#v", cfg.Naming)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging: %#v", cfg.Logging)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[naming]\nschema = \"file_id\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown key to fail parsing")
	}
}

func TestEnvVarOverridesLogLevel(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[logging]\nlevel = \"info\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PHANGS2CAOM2_LOG_LEVEL", "warn")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected env override, got %q", cfg.Logging.Level)
	}
}

func TestWriteSample(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.WriteSample(path, false); err != nil {
		t.Fatalf("WriteSample returned error: %v", err)
	}
	if err := config.WriteSample(path, false); !errors.Is(err, config.ErrConfigExists) {
		t.Fatalf("expected ErrConfigExists on second write, got %v", err)
	}
	if err := config.WriteSample(path, true); err != nil {
		t.Fatalf("WriteSample with overwrite returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[naming]") {
		t.Fatalf("sample config missing naming section")
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	defaults := config.Default()
	if cfg.Naming != defaults.Naming || cfg.Collection != defaults.Collection {
		t.Fatalf("sample config drifted from defaults: %#v", cfg)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"empty output dir", func(c *config.Config) { c.Paths.OutputDir = "" }, "paths.output_dir"},
		{"archive with slash", func(c *config.Config) { c.Collection.Archive = "PHANGS/x" }, "collection.archive"},
		{"unknown scheme", func(c *config.Config) { c.Naming.Scheme = "by_type" }, "naming.scheme"},
		{"equal labels", func(c *config.Config) { c.Naming.PrimaryLabel = c.Naming.DerivedLabel }, "naming.derived_label"},
		{"unknown level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, services.ErrConfiguration) {
				t.Fatalf("expected configuration error, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in error, got %v", tc.want, err)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	for input, want := range map[string]string{
		"":              "",
		"~":             home,
		"~/phangs/out":  filepath.Join(home, "phangs", "out"),
		"/tmp/../tmp/x": "/tmp/x",
	} {
		got, err := config.ExpandPath(input)
		if err != nil {
			t.Fatalf("ExpandPath(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ExpandPath(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestEncodeIncludesSections(t *testing.T) {
	cfg := config.Default()
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	for _, section := range []string{"[paths]", "[collection]", "[naming]", "[logging]", "[validation]"} {
		if !strings.Contains(string(data), section) {
			t.Fatalf("expected %s in encoded config:\n%s", section, data)
		}
	}
}
