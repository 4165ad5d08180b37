package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/plexdeck/internal/config"
	"github.com/vmunix/plexdeck/internal/plex"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an annotated config file",
	Long: `Write the default configuration file.

The file goes to --config when given, otherwise to
$XDG_CONFIG_HOME/plexdeck/config.toml.`,
	Args: cobra.NoArgs,
	RunE: runInitCmd,
}

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Authorize this device with a plex.tv account",
	Long: `Link this device to a plex.tv account.

A short code is printed; enter it at plex.tv/link (or open the printed
URL) while plexdeck waits. Once linked, plexdeck connects to your first
server and picks a library.`,
	Args: cobra.NoArgs,
	RunE: runLinkCmd,
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Forget the linked account and selections",
	Args:  cobra.NoArgs,
	RunE:  runUnlinkCmd,
}

func init() {
	rootCmd.AddCommand(initCmd, linkCmd, unlinkCmd)
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	linkCmd.Flags().Bool("relink", false, "Link again even if an account is already linked")
}

func runInitCmd(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}

	if force {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove existing config: %w", err)
		}
	}
	if err := config.WriteDefault(path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runLinkCmd(cmd *cobra.Command, args []string) error {
	relink, _ := cmd.Flags().GetBool("relink")
	return withApp(cmd, setupNone, func(ctx context.Context, a *app) error {
		out := cmd.OutOrStdout()
		if err := a.session.Restore(ctx); err != nil {
			return err
		}
		if a.session.Linked() && !relink {
			fmt.Fprintln(out, "Already linked. Use --relink to link a different account.")
			return nil
		}

		account, err := a.session.Link(ctx,
			func(pin *plex.Pin, authURL string) {
				fmt.Fprintf(out, "Enter code %s at https://plex.tv/link\n", pin.Code)
				fmt.Fprintf(out, "or open: %s\n\n", authURL)
				fmt.Fprintln(out, "Waiting for authorization...")
			},
			func(pin *plex.Pin) {
				a.log.Debug("pin checked", "code", pin.Code, "authorized", pin.Authorized())
			},
		)
		if err != nil {
			return fmt.Errorf("link failed: %w", err)
		}
		a.session.Wait()

		if jsonOutput {
			return printJSON(out, newStatusView(a.session.Status()))
		}
		fmt.Fprintf(out, "Linked as %s\n", account.Username)
		printStatusHuman(out, a.session.Status())
		return nil
	})
}

func runUnlinkCmd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, setupNone, func(ctx context.Context, a *app) error {
		if err := a.session.Restore(ctx); err != nil {
			return err
		}
		if err := a.session.Unlink(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Unlinked")
		return nil
	})
}
