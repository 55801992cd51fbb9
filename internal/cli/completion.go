package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/lookbook/internal/config"
	"github.com/matzehuels/lookbook/pkg/deck"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for lookbook and print it to stdout.

  bash:        source <(lookbook completion bash)
  zsh:         lookbook completion zsh > "${fpath[1]}/_lookbook"
  fish:        lookbook completion fish | source
  powershell:  lookbook completion powershell | Out-String | Invoke-Expression

Look arguments of export and render complete from the current deck.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// completeLooks completes look arguments with the IDs and titles of the
// deck's exportable looks. Images are not downloaded.
func (c *CLI) completeLooks(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := config.Load(c.v, c.configPath)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	d, err := deck.Load(cmd.Context(), cfg.Deck, nil, nil)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, s := range d.Exportable() {
		out = append(out, s.ID+"\t"+s.Title)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
