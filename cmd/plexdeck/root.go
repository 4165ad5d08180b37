package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath string
	jsonOutput bool
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "plexdeck",
	Short: "Browse and play from your Plex Media Servers",
	Long: `plexdeck - link a plex.tv account, pick a server and library,
and browse, search and stream its content from the terminal.

Run 'plexdeck init' to write a config file and 'plexdeck link' to
authorize this device.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: discovered)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("plexdeck {{.Version}}\n")
}
