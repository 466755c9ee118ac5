package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/aerostackdev/cli/internal/branding"
)

var rootCmd = &cobra.Command{
	Use:           branding.CLIName(),
	Short:         branding.Description(),
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

// SetVersion records the CLI version reported to the registry.
func SetVersion(version string) {
	deps.userAgent = branding.UserAgent(version)
}

// RunLocal executes one local subcommand. args[0] is the subcommand name.
// A prompt aborted with Ctrl-C is not an error.
func RunLocal(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if errors.Is(err, terminal.InterruptErr) {
		warn.Fprintln(rootCmd.OutOrStdout(), "\n  Aborted.")
		return nil
	}
	return err
}

// errAborted ends a command early after the user declined a confirmation.
var errAborted = terminal.InterruptErr

func requireArg(name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return fmt.Errorf("missing %s; usage: %s %s", name, branding.CLIName(), cmd.Use)
		}
		return cobra.MaximumNArgs(1)(cmd, args)
	}
}
