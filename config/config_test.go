package config

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/ssh"
)

func TestExpandPath(t *testing.T) {
	home := GetHomeDir()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"tilde", "~/data", filepath.Join(home, "data")},
		{"absolute", "/var/lib/iris", "/var/lib/iris"},
		{"cleaned", "/var//lib/../lib/iris", "/var/lib/iris"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandPath(tt.input)
			if got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDefaultUserConfig(t *testing.T) {
	cfg := DefaultUserConfig()

	if cfg.DefaultProvider != "gemini" {
		t.Errorf("expected default provider gemini, got %s", cfg.DefaultProvider)
	}
	if cfg.DefaultModel != DefaultGeminiModel {
		t.Errorf("expected default model %s, got %s", DefaultGeminiModel, cfg.DefaultModel)
	}
	if cfg.Bridge.Addr != DefaultBridgeAddr {
		t.Errorf("expected bridge addr %s, got %s", DefaultBridgeAddr, cfg.Bridge.Addr)
	}
	if !cfg.RevealAnimation {
		t.Error("expected reveal animation enabled by default")
	}
}

func TestProviderModelFallback(t *testing.T) {
	cfg := &Config{
		DefaultProvider: "gemini",
		DefaultModel:    "gemini-1.5-pro",
		Providers: []ProviderConfig{
			{ID: "ollama", BaseURL: "http://localhost:11434", Model: "llava:latest"},
			{ID: "gemini"},
		},
	}

	if got := cfg.ProviderModel("ollama"); got != "llava:latest" {
		t.Errorf("expected llava:latest, got %s", got)
	}
	// Gemini has no explicit model, falls back to the global default
	if got := cfg.ProviderModel("gemini"); got != "gemini-1.5-pro" {
		t.Errorf("expected gemini-1.5-pro, got %s", got)
	}
	if got := cfg.ProviderModel("openai"); got != "" {
		t.Errorf("expected empty model for unknown provider, got %s", got)
	}
	if got := cfg.ProviderBaseURL("ollama"); got != "http://localhost:11434" {
		t.Errorf("unexpected base URL: %s", got)
	}
}

func TestProviderEnabled(t *testing.T) {
	cfg := &Config{
		DefaultProvider: "gemini",
		Providers: []ProviderConfig{
			{ID: "gemini", Enabled: false},
			{ID: "ollama", Enabled: true},
			{ID: "openai", Enabled: false},
		},
	}

	// The default provider counts as enabled even when switched off
	if !cfg.ProviderEnabled("gemini") {
		t.Error("default provider should always be enabled")
	}
	if !cfg.ProviderEnabled("ollama") {
		t.Error("expected ollama enabled")
	}
	if cfg.ProviderEnabled("openai") {
		t.Error("expected openai disabled")
	}
	if cfg.ProviderEnabled("anthropic") {
		t.Error("unknown provider should be disabled")
	}
}

func TestSaveUserSettingsRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := &Config{
		DataDirectory:   dir,
		DefaultProvider: "gemini",
		DefaultModel:    "gemini-1.5-flash",
		Providers: []ProviderConfig{
			{ID: "gemini", Model: "gemini-1.5-flash", Enabled: true},
		},
		BridgeAddr:      "127.0.0.1:9000",
		BridgeEnabled:   false,
		RevealAnimation: false,
		CredentialStore: NewCredentialStore(SecurityPlainText, ""),
	}

	if err := cfg.SaveUserSettings(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := LoadUserConfig(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.DefaultModel != "gemini-1.5-flash" {
		t.Errorf("default model = %q", loaded.DefaultModel)
	}
	if loaded.RevealAnimation {
		t.Error("reveal animation should persist as off")
	}
	if loaded.Bridge.Addr != "127.0.0.1:9000" || loaded.Bridge.Enabled {
		t.Errorf("bridge settings not persisted: %+v", loaded.Bridge)
	}
	if loaded.SecurityMethod != string(SecurityPlainText) {
		t.Errorf("security method = %q", loaded.SecurityMethod)
	}
	if len(loaded.Providers) != 1 || loaded.Providers[0].ID != "gemini" {
		t.Errorf("providers not persisted: %+v", loaded.Providers)
	}
}

func TestLoadUserConfigFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alt.toml")

	// Missing file is not an error, just no override
	cfg, err := LoadUserConfigFromPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != nil {
		t.Fatal("expected nil config for missing file")
	}

	content := "default_provider = \"ollama\"\ndefault_model = \"llava:latest\"\n"
	if err := writeFile(path, content); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err = LoadUserConfigFromPath(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.DefaultProvider != "ollama" {
		t.Errorf("default provider = %q", cfg.DefaultProvider)
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0600)
}

func TestAPIKeyEnvFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg := &Config{
		DefaultProvider: "gemini",
		CredentialStore: NewCredentialStore(SecurityPlainText, ""),
	}

	if got := cfg.APIKey("gemini"); got != "env-key" {
		t.Errorf("expected env fallback, got %q", got)
	}

	// Store wins over the environment
	cfg.CredentialStore.Set("gemini", "stored-key")
	if got := cfg.APIKey("gemini"); got != "stored-key" {
		t.Errorf("expected stored key to win, got %q", got)
	}

	if err := cfg.RequireDefaultCredential(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRequireDefaultCredentialMissing(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg := &Config{
		DefaultProvider: "gemini",
		CredentialStore: NewCredentialStore(SecurityPlainText, ""),
	}

	if err := cfg.RequireDefaultCredential(); err == nil {
		t.Fatal("expected error when no credential is configured")
	}

	// Ollama never needs a key
	cfg.DefaultProvider = "ollama"
	if err := cfg.RequireDefaultCredential(); err != nil {
		t.Errorf("ollama should not require a credential: %v", err)
	}
}

func TestCredentialStorePlainTextRoundTrip(t *testing.T) {
	dir := t.TempDir()

	store := NewCredentialStore(SecurityPlainText, "")
	store.Set("gemini", "abc123")
	store.Set("openai", "xyz789")

	if err := store.Save(dir); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded := NewCredentialStore(SecurityPlainText, "")
	if err := loaded.Load(dir); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if got := loaded.Get("gemini"); got != "abc123" {
		t.Errorf("expected abc123, got %q", got)
	}
	if got := loaded.Get("openai"); got != "xyz789" {
		t.Errorf("expected xyz789, got %q", got)
	}
	if got := loaded.Get("anthropic"); got != "" {
		t.Errorf("expected empty for unset provider, got %q", got)
	}
}

func TestCredentialStoreLoadMissingFile(t *testing.T) {
	store := NewCredentialStore(SecurityPlainText, "")
	if err := store.Load(t.TempDir()); err != nil {
		t.Fatalf("missing credentials file should not be an error: %v", err)
	}
	if got := store.Get("gemini"); got != "" {
		t.Errorf("expected empty store, got %q", got)
	}
}

func TestAESGCMRoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, 32)
	plaintext := []byte(`{"gemini":"secret"}`)

	ciphertext, err := encryptAESGCM(plaintext, key)
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if bytes.Equal(ciphertext, plaintext) {
		t.Fatal("ciphertext equals plaintext")
	}

	decrypted, err := decryptAESGCM(ciphertext, key)
	if err != nil {
		t.Fatalf("decrypt failed: %v", err)
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Errorf("round trip mismatch: got %q", decrypted)
	}

	// Tampered ciphertext must fail authentication
	ciphertext[len(ciphertext)-1] ^= 0xff
	if _, err := decryptAESGCM(ciphertext, key); err == nil {
		t.Error("expected tampered ciphertext to fail")
	}

	if _, err := decryptAESGCM([]byte("short"), key); err == nil {
		t.Error("expected error for truncated ciphertext")
	}
}

func TestDeriveAESKeyFromSSHDeterministic(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("keygen failed: %v", err)
	}
	signer, err := ssh.NewSignerFromKey(priv)
	if err != nil {
		t.Fatalf("signer failed: %v", err)
	}

	key1, err := DeriveAESKeyFromSSH(signer)
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}
	key2, err := DeriveAESKeyFromSSH(signer)
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}

	if len(key1) != 32 {
		t.Errorf("expected 32-byte key, got %d", len(key1))
	}
	// ED25519 signatures are deterministic, so the derived key must be stable
	if !bytes.Equal(key1, key2) {
		t.Error("derived keys differ across calls")
	}
}

func TestUserConfigTemplateParses(t *testing.T) {
	dir := t.TempDir()

	if err := CreateDefaultUserConfig(dir); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	cfg, err := LoadUserConfig(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.DefaultProvider != "gemini" {
		t.Errorf("expected gemini, got %s", cfg.DefaultProvider)
	}
	if len(cfg.Providers) != 4 {
		t.Errorf("expected 4 providers in template, got %d", len(cfg.Providers))
	}
	if !cfg.Bridge.Enabled {
		t.Error("expected bridge enabled in template")
	}
}
