package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"iris/config"
	"iris/model"
	"iris/provider"
	"iris/speech"
	"iris/ui"
)

const Version = "v0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog(cfg.DataDir())

	// The default provider must be usable before the UI starts. Better a
	// clear modal now than a confusing error on the first question.
	if err := cfg.RequireDefaultCredential(); err != nil {
		errorMsg := fmt.Sprintf(
			"%v\n\nAdd the key to credentials.json in the data\ndirectory, or export the provider's environment\nvariable (e.g. GEMINI_API_KEY).", err)

		errorModal := ui.NewErrorModal("Configuration Error", errorMsg)
		p := tea.NewProgram(
			errorModal,
			tea.WithAltScreen(),
		)

		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	// Clean up old tmp dir in cache directory (crash recovery)
	if err := config.CleanupTempDir(); err != nil && config.DebugLog != nil {
		config.DebugLog.Printf("Warning: failed to cleanup old temp directory: %v", err)
	}

	// Camera captures land here; keep it out of cloud-synced paths
	if err := config.CreateTempDir(); err != nil {
		fmt.Printf("Failed to create temp directory: %v\n", err)
		os.Exit(1)
	}

	defer func() {
		if err := config.CleanupTempDir(); err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("Warning: failed to cleanup temp directory on exit: %v", err)
		}
	}()

	providers := provider.InitializeProviders(cfg)
	if len(providers) == 0 {
		fmt.Printf("No providers could be initialized, check config.toml\n")
		os.Exit(1)
	}

	dataModel := model.NewModel(cfg, providers, Version)

	p := tea.NewProgram(
		ui.NewAppView(dataModel),
		tea.WithAltScreen(),
	)

	// The bridge runs beside the TUI and feeds dictation and captures
	// into the update loop via p.Send
	var bridge *speech.Bridge
	if cfg.BridgeEnabled {
		bridge = speech.NewBridge(cfg.BridgeAddr, func(msg interface{}) { p.Send(msg) })
		go func() {
			p.Send(model.BridgeStartedMsg{Addr: bridge.Addr()})
			bridge.Start()
		}()
	}

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running iris: %v\n", err)
		os.Exit(1)
	}

	if bridge != nil {
		if err := bridge.Shutdown(); err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("Warning: bridge shutdown failed: %v", err)
		}
	}
}
