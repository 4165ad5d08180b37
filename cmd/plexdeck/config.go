package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vmunix/plexdeck/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate a configuration file",
	Long:  "Validates config.toml syntax, field values and environment variable substitution.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigTest,
}

var configShowCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Print the effective configuration with defaults applied",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configTestCmd, configShowCmd)
}

// configArgPath picks the positional path, else --config, else the
// discovered file.
func configArgPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if configPath != "" {
		return configPath, nil
	}
	return config.Discover()
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	path, err := configArgPath(args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.ConfigError
		if errors.As(err, &configErr) {
			printConfigErrors(out, configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(out, cfg)
	fmt.Fprintln(out, "\nConfiguration valid!")
	return nil
}

func printConfigErrors(w io.Writer, e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
		fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		fmt.Fprintln(w, "Validation errors:")
		for _, err := range e.Errors {
			fmt.Fprintf(w, "  - %s\n", err)
		}
		fmt.Fprintln(w)
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Configuration Summary:")
	fmt.Fprintf(w, "  Client:     %s on %s/%s\n", cfg.Client.Product, cfg.Client.Platform, cfg.Client.Device)
	fmt.Fprintf(w, "  Plex:       %s (timeout %s, %d retries)\n", cfg.Plex.AuthURL, cfg.Plex.RequestTimeout, cfg.Plex.Retries())
	fmt.Fprintf(w, "  Playback:   report every %s, played at %.0f%%\n", cfg.Playback.TimelineInterval, cfg.Playback.ScrobbleThreshold*100)
	fmt.Fprintf(w, "  Database:   %s\n", cfg.Database.Path)
	fmt.Fprintf(w, "  Log level:  %s\n", cfg.Log.Level)
}

// runConfigShow skips validation so a broken file can still be inspected.
func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := configArgPath(args)
	if errors.Is(err, config.ErrNotFound) {
		return config.Default().Encode(cmd.OutOrStdout())
	}
	if err != nil {
		return err
	}
	cfg, err := config.LoadWithoutValidation(path)
	if err != nil {
		return err
	}
	return cfg.Encode(cmd.OutOrStdout())
}
