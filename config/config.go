package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type ProviderConfig struct {
	ID      string `toml:"id"`
	BaseURL string `toml:"base_url,omitempty"`
	Model   string `toml:"model,omitempty"`
	Enabled bool   `toml:"enabled"`
}

type BridgeConfig struct {
	Addr    string `toml:"addr"`
	Enabled bool   `toml:"enabled"`
}

type UserConfig struct {
	DefaultProvider string           `toml:"default_provider"`
	DefaultModel    string           `toml:"default_model"`
	Providers       []ProviderConfig `toml:"providers"`
	Bridge          BridgeConfig     `toml:"bridge"`
	RevealAnimation bool             `toml:"reveal_animation"`
	SecurityMethod  string           `toml:"security_method,omitempty"`
	SSHKeyPath      string           `toml:"ssh_key_path,omitempty"`
}

type Config struct {
	DataDirectory   string
	DefaultProvider string
	DefaultModel    string
	Providers       []ProviderConfig
	BridgeAddr      string
	BridgeEnabled   bool
	RevealAnimation bool
	CredentialStore *CredentialStore
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

// ProviderBaseURL returns the configured base URL for a provider, or ""
// when the provider is absent (the provider constructors apply defaults).
func (c *Config) ProviderBaseURL(id string) string {
	for _, p := range c.Providers {
		if p.ID == id {
			return p.BaseURL
		}
	}
	return ""
}

// ProviderModel returns the configured model for a provider, falling back
// to the global default when the provider matches the default provider.
func (c *Config) ProviderModel(id string) string {
	for _, p := range c.Providers {
		if p.ID == id && p.Model != "" {
			return p.Model
		}
	}
	if id == c.DefaultProvider {
		return c.DefaultModel
	}
	return ""
}

// ProviderEnabled reports whether a provider is switched on in the user
// config. The default provider is always considered enabled.
func (c *Config) ProviderEnabled(id string) bool {
	if id == c.DefaultProvider {
		return true
	}
	for _, p := range c.Providers {
		if p.ID == id {
			return p.Enabled
		}
	}
	return false
}

func (c *Config) applyEnvOverrides() {
	if dataDir := os.Getenv("IRIS_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
	if model := os.Getenv("IRIS_MODEL"); model != "" {
		c.DefaultModel = model
	}
	if addr := os.Getenv("IRIS_BRIDGE_ADDR"); addr != "" {
		c.BridgeAddr = addr
	}
}

func CheckDebug() bool {
	debug := os.Getenv("IRIS_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600 - debug output may contain request details
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (IRIS_DEBUG=%s) ===", os.Getenv("IRIS_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

func Load() (*Config, error) {
	systemCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}

	cfg := &Config{
		DataDirectory: systemCfg.DataDirectory,
	}
	cfg.applyEnvOverrides()

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to set data directory permissions: %w", err)
	}

	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	// IRIS_CONFIG points at an alternate user config, e.g. a test profile
	if override := os.Getenv("IRIS_CONFIG"); override != "" {
		alt, err := LoadUserConfigFromPath(ExpandPath(override))
		if err != nil {
			return nil, fmt.Errorf("failed to load config override: %w", err)
		}
		if alt != nil {
			userCfg = alt
		}
	}

	cfg.DefaultProvider = userCfg.DefaultProvider
	cfg.DefaultModel = userCfg.DefaultModel
	cfg.Providers = userCfg.Providers
	cfg.BridgeAddr = userCfg.Bridge.Addr
	cfg.BridgeEnabled = userCfg.Bridge.Enabled
	cfg.RevealAnimation = userCfg.RevealAnimation
	cfg.applyEnvOverrides()

	method := SecurityMethod(userCfg.SecurityMethod)
	if method == "" {
		method = SecurityPlainText
	}
	store := NewCredentialStore(method, ExpandPath(userCfg.SSHKeyPath))
	if err := store.Load(dataDir); err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	cfg.CredentialStore = store

	return cfg, nil
}

// SaveUserSettings writes the current user-editable settings back to
// config.toml, preserving the credential storage method. Called when the
// user changes a setting at runtime, e.g. the reveal toggle.
func (c *Config) SaveUserSettings() error {
	userCfg := &UserConfig{
		DefaultProvider: c.DefaultProvider,
		DefaultModel:    c.DefaultModel,
		Providers:       c.Providers,
		Bridge: BridgeConfig{
			Addr:    c.BridgeAddr,
			Enabled: c.BridgeEnabled,
		},
		RevealAnimation: c.RevealAnimation,
	}
	if c.CredentialStore != nil {
		userCfg.SecurityMethod = string(c.CredentialStore.GetMethod())
		userCfg.SSHKeyPath = c.CredentialStore.sshKeyPath
	}
	return SaveUserConfig(userCfg, c.DataDir())
}

// RequireDefaultCredential verifies that the default provider has an API
// credential available. The Ollama provider talks to a local server and
// needs no key. A missing credential is fatal at startup: the app refuses
// to start the interaction loop without one.
func (c *Config) RequireDefaultCredential() error {
	if c.DefaultProvider == "ollama" {
		return nil
	}
	if c.APIKey(c.DefaultProvider) != "" {
		return nil
	}
	return fmt.Errorf("no API key configured for provider %q", c.DefaultProvider)
}

// APIKey resolves the credential for a provider, preferring the credential
// store and falling back to the conventional environment variable.
func (c *Config) APIKey(providerID string) string {
	if c.CredentialStore != nil {
		if key := c.CredentialStore.Get(providerID); key != "" {
			return key
		}
	}
	return envCredential(providerID)
}

func envCredential(providerID string) string {
	switch providerID {
	case "gemini":
		return os.Getenv("GEMINI_API_KEY")
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	}
	return ""
}
