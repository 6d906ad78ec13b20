package main

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for goring.

To load completions:

Bash:

  $ source <(goring completion bash)

  To load completions for each session, execute once:
  Linux:
    $ goring completion bash > /etc/bash_completion.d/goring
  macOS:
    $ goring completion bash > /usr/local/etc/bash_completion.d/goring

Zsh:

  If shell completion is not already enabled in your environment,
  you will need to enable it. You can execute the following once:

  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  To load completions for each session, execute once:
  $ goring completion zsh > "${fpath[1]}/_goring"

  You will need to start a new shell for this setup to take effect.

Fish:

  $ goring completion fish | source

  To load completions for each session, execute once:
  $ goring completion fish > ~/.config/fish/completions/goring.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			rootCmd.GenFishCompletion(os.Stdout, true)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
