package provider

import (
	"path/filepath"
	"testing"

	"iris/config"
)

// A provider that cannot initialize logs a warning. With IRIS_DEBUG set
// but the log file unopenable, DebugLog stays nil and the warning path
// must not panic.
func TestInitializeProvidersWithoutDebugLog(t *testing.T) {
	t.Setenv("IRIS_DEBUG", "1")
	t.Setenv("GEMINI_API_KEY", "")

	config.DebugLog = nil
	config.InitDebugLog(filepath.Join(t.TempDir(), "missing", "deeper"))
	if config.DebugLog != nil {
		t.Fatal("debug log should not open inside a missing directory")
	}

	cfg := &config.Config{
		DefaultProvider: "gemini",
		Providers: []config.ProviderConfig{
			{ID: "gemini", Enabled: true},
		},
		CredentialStore: config.NewCredentialStore(config.SecurityPlainText, ""),
	}

	providers := InitializeProviders(cfg)
	if len(providers) != 0 {
		t.Errorf("expected no providers without an API key, got %d", len(providers))
	}
}

func TestInitializeProvidersSkipsDisabled(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := &config.Config{
		DefaultProvider: "ollama",
		Providers: []config.ProviderConfig{
			{ID: "ollama", BaseURL: "http://localhost:11434", Enabled: true},
			{ID: "openai", Enabled: false},
		},
		CredentialStore: config.NewCredentialStore(config.SecurityPlainText, ""),
	}

	providers := InitializeProviders(cfg)
	if _, ok := providers["openai"]; ok {
		t.Error("disabled provider must not be initialized")
	}
	if _, ok := providers["ollama"]; !ok {
		t.Error("enabled default provider missing")
	}
}
