package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/papadavis47/mountains-tui/internal/shell"
)

var initShellCmd = &cobra.Command{
	Use:   "init <shell>",
	Short: "Output shell integration script",
	Long: `Output shell integration script for eval.

Generates shell-specific initialization code that sets up shell completions,
a prompt hook exporting the MOUNTAINS_* status variables and the
mountains_prompt_info helper function.

Supported shells: bash, zsh`,
	Example: `  # Add to ~/.bashrc
  eval "$(mountains init bash)"

  # Add to ~/.zshrc
  eval "$(mountains init zsh)"`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{noStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			shell.WriteBashInit(cmd.OutOrStdout())
		case "zsh":
			shell.WriteZshInit(cmd.OutOrStdout())
		default:
			fmt.Fprintf(os.Stderr, "Error: unsupported shell %q (supported: bash, zsh)\n", args[0])
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initShellCmd)
}
