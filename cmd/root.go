package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ThatOtherAndrew/Flasher/internal/config"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "flasher",
	Short: "Full-screen flashing gray rectangle",
	Long: `flasher fills a window (or a terminal) with a gray that pulses along
an eased triangle wave.

Keys:
  Up / Down            step +/- 0.1
  Shift+Up / Down      step +/- 0.001
  Space                fire: 4 bursts of 500ms with 100ms pauses
  F                    toggle fullscreen
  Esc / Q              quit`,
	RunE:          Run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default ~/.config/flasher/settings.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: error, warn, info or debug (overrides settings)")
	addRunFlags(rootCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}

func settingsPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetSettingsPath()
}

func loadSettings() (*config.Settings, error) {
	path, err := settingsPath()
	if err != nil {
		return nil, err
	}
	return config.LoadSettings(path)
}
