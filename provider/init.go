package provider

import (
	"iris/config"
	"iris/model"
)

// InitializeProviders creates all enabled provider instances for the
// application.
//
// It handles:
//   - Loading API keys from the credential store (with env fallback)
//   - Mapping provider IDs to provider types
//   - Graceful degradation (logs warnings but doesn't fail)
//
// The returned map holds one entry per successfully initialized provider.
// A provider that cannot be created (missing key, bad URL) is skipped so
// the app can still start with the ones that work.
func InitializeProviders(cfg *config.Config) map[string]model.Provider {
	providers := make(map[string]model.Provider)

	for _, providerCfg := range cfg.Providers {
		if !cfg.ProviderEnabled(providerCfg.ID) {
			continue
		}

		p, err := NewProvider(Config{
			Type:    MapProviderIDToType(providerCfg.ID),
			BaseURL: providerCfg.BaseURL,
			APIKey:  cfg.APIKey(providerCfg.ID),
			Model:   cfg.ProviderModel(providerCfg.ID),
		})

		if err != nil {
			// Log warning but don't fail - allow app to start
			if config.DebugLog != nil {
				config.DebugLog.Printf("[Provider] Warning: failed to initialize provider %s: %v", providerCfg.ID, err)
			}
			continue
		}

		providers[providerCfg.ID] = p
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Provider] Initialized provider: %s (model: %s)", providerCfg.ID, p.GetModel())
		}
	}

	// The default provider must exist even when absent from the provider
	// list, e.g. a hand-edited config.toml with only default_provider set.
	if _, ok := providers[cfg.DefaultProvider]; !ok {
		p, err := NewProvider(Config{
			Type:    MapProviderIDToType(cfg.DefaultProvider),
			BaseURL: cfg.ProviderBaseURL(cfg.DefaultProvider),
			APIKey:  cfg.APIKey(cfg.DefaultProvider),
			Model:   cfg.DefaultModel,
		})
		if err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[Provider] Warning: failed to initialize default provider %s: %v", cfg.DefaultProvider, err)
			}
		} else {
			providers[cfg.DefaultProvider] = p
		}
	}

	return providers
}
