// Command livesub runs the real-time on-screen/audio live translator,
// grounded on the teacher's cmd/agent/main.go wiring style but rehomed
// onto a cobra command tree (internal/alicia's cmd/alicia/main.go shape)
// instead of a single flat main().
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nicksukie/livesub/internal/config"
	"github.com/nicksukie/livesub/internal/settings"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "livesub",
		Short: "Real-time on-screen/audio live translator",
	}

	var settingsPath string
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "livesub_settings.yaml", "path to the settings YAML file")

	rootCmd.AddCommand(
		runCmd(&settingsPath),
		replayCmd(&settingsPath),
		configShowCmd(&settingsPath),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(settingsPath string) (config.Config, error) {
	store, err := settings.Open(settingsPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("livesub: open settings: %w", err)
	}
	return config.Load(store), nil
}
