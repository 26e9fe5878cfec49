package providers

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Registry holds references to vision clients by name.
// It supports config-driven instantiation, hot-reload, and thread-safe access.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]VisionClient
	logger  *slog.Logger
}

// NewRegistry creates a new empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]VisionClient),
		logger:  slog.Default(),
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// Register registers a vision client by name.
func (r *Registry) Register(name string, client VisionClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[name] = client
	if r.logger != nil {
		r.logger.Info("registered vision client", "name", name)
	}
}

// Get returns a vision client by name.
func (r *Registry) Get(name string) (VisionClient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.clients[name]
	if !ok {
		return nil, fmt.Errorf("vision client not found: %s", name)
	}
	return client, nil
}

// Has checks if a vision client is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.clients[name]
	return ok
}

// List returns all registered client names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	return names
}

// RegistryConfig defines the providers to instantiate from config.
type RegistryConfig struct {
	Providers map[string]ProviderConfig
}

// ProviderConfig matches config.ProviderCfg with resolved API key.
type ProviderConfig struct {
	Type        string // "gemini", "openrouter", "openai"
	Model       string
	APIKey      string // Resolved API key
	TimeoutSecs int
	Enabled     bool
}

// NewRegistryFromConfig creates a registry with providers based on configuration.
// Only enabled providers with valid API keys are registered.
func NewRegistryFromConfig(cfg RegistryConfig) *Registry {
	r := NewRegistry()
	r.Reload(cfg)
	return r
}

// Reload updates the registry based on new configuration.
// Providers that are no longer configured will be unregistered.
// Providers with changed settings will be re-created.
func (r *Registry) Reload(cfg RegistryConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	want := make(map[string]bool)

	for name, provCfg := range cfg.Providers {
		if !provCfg.Enabled || provCfg.APIKey == "" {
			continue
		}
		want[name] = true

		existing, hasExisting := r.clients[name]
		if hasExisting && !needsUpdate(existing, provCfg) {
			continue
		}

		client := createClient(provCfg)
		if client == nil {
			if r.logger != nil {
				r.logger.Warn("unknown provider type", "name", name, "type", provCfg.Type)
			}
			continue
		}
		r.clients[name] = client
		if r.logger != nil {
			if hasExisting {
				r.logger.Info("updated vision client", "name", name, "type", provCfg.Type)
			} else {
				r.logger.Info("registered vision client", "name", name, "type", provCfg.Type)
			}
		}
	}

	for name := range r.clients {
		if !want[name] {
			delete(r.clients, name)
			if r.logger != nil {
				r.logger.Info("unregistered vision client", "name", name)
			}
		}
	}
}

// createClient creates a vision client based on provider type.
func createClient(cfg ProviderConfig) VisionClient {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	switch cfg.Type {
	case "gemini":
		return NewGeminiClient(GeminiConfig{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			Timeout: timeout,
		})
	case "openrouter":
		return NewOpenRouterClient(OpenRouterConfig{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			Timeout: timeout,
		})
	case "openai":
		return NewOpenAIClient(OpenAIConfig{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			Timeout: timeout,
		})
	default:
		return nil
	}
}

// needsUpdate checks if a client needs to be recreated for new config.
func needsUpdate(client VisionClient, cfg ProviderConfig) bool {
	switch c := client.(type) {
	case *GeminiClient:
		return c.apiKey != cfg.APIKey || c.model != cfg.Model
	case *OpenRouterClient:
		return c.apiKey != cfg.APIKey || c.model != cfg.Model
	case *OpenAIClient:
		return c.apiKey != cfg.APIKey || c.model != cfg.Model
	default:
		return true
	}
}
