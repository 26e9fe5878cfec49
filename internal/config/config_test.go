package config

import (
	"os"
	"path/filepath"
	"testing"

	yaml "gopkg.in/yaml.v2"
)

func TestResolveEnvVars(t *testing.T) {
	t.Setenv("FORMSCAN_TEST_KEY", "secret123")

	tests := []struct {
		input string
		want  string
	}{
		{"${FORMSCAN_TEST_KEY}", "secret123"},
		{"prefix-${FORMSCAN_TEST_KEY}-suffix", "prefix-secret123-suffix"},
		{"no-vars-here", "no-vars-here"},
		{"", ""},
		{"${UNSET_VAR_XYZ}", ""},
	}

	for _, tt := range tests {
		if got := ResolveEnvVars(tt.input); got != tt.want {
			t.Errorf("ResolveEnvVars(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	gemini, ok := cfg.GetProvider("gemini")
	if !ok {
		t.Fatal("expected gemini provider in defaults")
	}
	if !gemini.Enabled {
		t.Error("gemini should be enabled by default")
	}
	if gemini.APIKey != "${GEMINI_API_KEY}" {
		t.Errorf("unexpected gemini api_key: %s", gemini.APIKey)
	}

	if cfg.Defaults.Provider != "gemini" {
		t.Errorf("unexpected default provider: %s", cfg.Defaults.Provider)
	}
	if len(cfg.Defaults.Fields) != 4 {
		t.Errorf("expected 4 default fields, got %d", len(cfg.Defaults.Fields))
	}
	if cfg.Raster.DPI != 200 {
		t.Errorf("unexpected default DPI: %d", cfg.Raster.DPI)
	}
	if !cfg.Extraction.Cache {
		t.Error("extraction cache should default on")
	}
	if cfg.Extraction.StrictKeys {
		t.Error("strict_keys should default off")
	}
}

func TestEnabledProviders(t *testing.T) {
	cfg := DefaultConfig()
	enabled := cfg.EnabledProviders()
	if _, ok := enabled["gemini"]; !ok {
		t.Error("gemini should be enabled")
	}
	if _, ok := enabled["openai"]; ok {
		t.Error("openai should be disabled by default")
	}
}

func TestToRegistryConfig(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "resolved-key")

	cfg := DefaultConfig()
	reg := cfg.ToRegistryConfig()

	gemini, ok := reg.Providers["gemini"]
	if !ok {
		t.Fatal("expected gemini in registry config")
	}
	if gemini.APIKey != "resolved-key" {
		t.Errorf("expected resolved key, got %q", gemini.APIKey)
	}
	if gemini.Type != "gemini" {
		t.Errorf("unexpected type: %s", gemini.Type)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written config: %v", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("written config is not valid yaml: %v", err)
	}
	if _, ok := cfg.Providers["gemini"]; !ok {
		t.Error("written config missing gemini provider")
	}
}

func TestNewManager_WithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
defaults:
  provider: openrouter
raster:
  dpi: 150
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cm, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	cfg := cm.Get()
	if cfg.Defaults.Provider != "openrouter" {
		t.Errorf("expected provider override, got %s", cfg.Defaults.Provider)
	}
	if cfg.Raster.DPI != 150 {
		t.Errorf("expected dpi override, got %d", cfg.Raster.DPI)
	}
}
