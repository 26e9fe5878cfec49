package config

// Config holds formscan configuration.
// Stored at: ~/.formscan/config.yaml
type Config struct {
	Providers  map[string]ProviderCfg `mapstructure:"providers" yaml:"providers"`
	Defaults   DefaultsCfg            `mapstructure:"defaults" yaml:"defaults"`
	Raster     RasterCfg              `mapstructure:"raster" yaml:"raster"`
	Extraction ExtractionCfg          `mapstructure:"extraction" yaml:"extraction"`
}

// ProviderCfg configures a vision model provider.
type ProviderCfg struct {
	Type        string `mapstructure:"type" yaml:"type"`                       // "gemini", "openrouter", "openai"
	Model       string `mapstructure:"model" yaml:"model"`                     // Model name
	APIKey      string `mapstructure:"api_key" yaml:"api_key"`                 // API key (supports ${ENV_VAR} syntax)
	TimeoutSecs int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"` // HTTP timeout
	Enabled     bool   `mapstructure:"enabled" yaml:"enabled"`
}

// DefaultsCfg specifies default selections for new extractions.
type DefaultsCfg struct {
	Provider string   `mapstructure:"provider" yaml:"provider"` // Default provider name
	Fields   []string `mapstructure:"fields" yaml:"fields"`     // Field list offered in the UI
}

// RasterCfg configures page rendering.
type RasterCfg struct {
	DPI       int `mapstructure:"dpi" yaml:"dpi"`
	CacheSize int `mapstructure:"cache_size" yaml:"cache_size"` // Rendered pages to keep
}

// ExtractionCfg configures model calls and result handling.
type ExtractionCfg struct {
	MaxTokens   int     `mapstructure:"max_tokens" yaml:"max_tokens"`
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
	// StrictKeys rejects replies whose keys do not exactly match the
	// requested fields.
	StrictKeys bool `mapstructure:"strict_keys" yaml:"strict_keys"`
	// Cache memoizes results by (page image, provider, fields). Model
	// replies are not deterministic, so a cached result may differ
	// from a fresh call.
	Cache     bool `mapstructure:"cache" yaml:"cache"`
	CacheSize int  `mapstructure:"cache_size" yaml:"cache_size"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Providers: map[string]ProviderCfg{
			"gemini": {
				Type:        "gemini",
				Model:       "gemini-2.0-flash",
				APIKey:      "${GEMINI_API_KEY}",
				TimeoutSecs: 120,
				Enabled:     true,
			},
			"openrouter": {
				Type:        "openrouter",
				Model:       "google/gemini-2.0-flash-001",
				APIKey:      "${OPENROUTER_API_KEY}",
				TimeoutSecs: 120,
				Enabled:     false,
			},
			"openai": {
				Type:        "openai",
				Model:       "gpt-4o",
				APIKey:      "${OPENAI_API_KEY}",
				TimeoutSecs: 120,
				Enabled:     false,
			},
		},
		Defaults: DefaultsCfg{
			Provider: "gemini",
			Fields: []string{
				"Invoice Number",
				"Customer Name",
				"Total Amount",
				"Due Date",
			},
		},
		Raster: RasterCfg{
			DPI:       200,
			CacheSize: 16,
		},
		Extraction: ExtractionCfg{
			MaxTokens:   4096,
			Temperature: 0,
			StrictKeys:  false,
			Cache:       true,
			CacheSize:   64,
		},
	}
}

// GetProvider returns a provider config by name.
func (c *Config) GetProvider(name string) (ProviderCfg, bool) {
	cfg, ok := c.Providers[name]
	return cfg, ok
}

// EnabledProviders returns all enabled providers.
func (c *Config) EnabledProviders() map[string]ProviderCfg {
	result := make(map[string]ProviderCfg)
	for name, cfg := range c.Providers {
		if cfg.Enabled {
			result[name] = cfg
		}
	}
	return result
}
