package main

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for plexdeck.

To load completions:

Bash:
  $ source <(plexdeck completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ plexdeck completion bash > /etc/bash_completion.d/plexdeck
  # macOS:
  $ plexdeck completion bash > $(brew --prefix)/etc/bash_completion.d/plexdeck

Zsh:
  $ source <(plexdeck completion zsh)
  # To load completions for each session, execute once:
  $ plexdeck completion zsh > "${fpath[1]}/_plexdeck"

Fish:
  $ plexdeck completion fish | source
  # To load completions for each session, execute once:
  $ plexdeck completion fish > ~/.config/fish/completions/plexdeck.fish

PowerShell:
  PS> plexdeck completion powershell | Out-String | Invoke-Expression
  # To load completions for each session, execute once:
  PS> plexdeck completion powershell > plexdeck.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
