package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/tooltip/pkg/placement"
)

// completionCommand generates shell completion scripts. Besides commands and
// flags, the scripts complete the twelve --place values and each command's
// --format values.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for tooltip.

Completion covers subcommands, flags, placement names for --place
(top, top-left, ..., right-bottom) and output formats for --format.

Bash:
  $ source <(tooltip completion bash)

Zsh:
  $ tooltip completion zsh > "${fpath[1]}/_tooltip"

Fish:
  $ tooltip completion fish > ~/.config/fish/completions/tooltip.fish

PowerShell:
  PS> tooltip completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(c.out, true)
			case "zsh":
				return root.GenZshCompletion(c.out)
			case "fish":
				return root.GenFishCompletion(c.out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(c.out)
			}
			return nil
		},
	}

	return cmd
}

// completePlacements offers the twelve placement names for --place.
func completePlacements(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return placement.Names(), cobra.ShellCompDirectiveNoFileComp
}

// completeFormats offers the given output formats for --format.
func completeFormats(formats ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return formats, cobra.ShellCompDirectiveNoFileComp
	}
}
