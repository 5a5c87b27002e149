package config

const (
	DefaultBridgeAddr = "127.0.0.1:8418"

	DefaultGeminiModel    = "gemini-1.5-pro"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-3-5-sonnet-latest"
	DefaultOllamaModel    = "llava:latest"
	DefaultOllamaHost     = "http://localhost:11434"
)

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/iris",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		DefaultProvider: "gemini",
		DefaultModel:    DefaultGeminiModel,
		Providers: []ProviderConfig{
			{ID: "gemini", Model: DefaultGeminiModel, Enabled: true},
			{ID: "openai", Model: DefaultOpenAIModel, Enabled: false},
			{ID: "anthropic", Model: DefaultAnthropicModel, Enabled: false},
			{ID: "ollama", BaseURL: DefaultOllamaHost, Model: DefaultOllamaModel, Enabled: false},
		},
		Bridge: BridgeConfig{
			Addr:    DefaultBridgeAddr,
			Enabled: true,
		},
		RevealAnimation: true,
	}
}

func GenerateSystemConfigTemplate() string {
	return `# IRIS System Configuration
# Location: ~/.config/iris/settings.toml
# This file uses TOML format: https://toml.io

# Directory where user config and credentials are stored
data_directory = "~/.local/share/iris"
`
}

func GenerateUserConfigTemplate() string {
	return `# IRIS User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

# Provider used when the app starts
default_provider = "gemini"

# Model used when the app starts
default_model = "gemini-1.5-pro"

# How API keys in credentials.json are stored: "plain_text" or "ssh_key"
security_method = "plain_text"

# SSH private key used when security_method = "ssh_key"
# ssh_key_path = "~/.ssh/id_ed25519"

# Reveal assistant answers character by character
reveal_animation = true

# Local browser bridge for microphone dictation and camera capture
[bridge]
addr = "127.0.0.1:8418"
enabled = true

[[providers]]
id = "gemini"
model = "gemini-1.5-pro"
enabled = true

[[providers]]
id = "openai"
model = "gpt-4o-mini"
enabled = false

[[providers]]
id = "anthropic"
model = "claude-3-5-sonnet-latest"
enabled = false

[[providers]]
id = "ollama"
base_url = "http://localhost:11434"
model = "llava:latest"
enabled = false
`
}
