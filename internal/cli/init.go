package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aerostackdev/cli/internal/branding"
	"github.com/aerostackdev/cli/internal/scaffold"
)

const defaultProjectName = "my-aerostack-project"

var (
	initName    string
	initInstall bool
	initYes     bool
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Scaffold a new project (Hono + Drizzle)",
	Long: `Create a new project from the built-in template: a Hono app for
Cloudflare Workers with a Drizzle schema hub and the marker comments that
"add" uses to wire in community functions.

With no directory the project is created in the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "Project name (prompted when omitted)")
	initCmd.Flags().BoolVar(&initInstall, "install", true, "Run npm install after scaffolding")
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Accept defaults and skip confirmations")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	heading(out, branding.DisplayName()+" Init")

	target := "."
	if len(args) == 1 {
		target = args[0]
	}

	name := initName
	if name == "" {
		def := defaultProjectName
		if target != "." {
			def = filepath.Base(target)
		}
		if initYes {
			name = def
		} else {
			var err error
			if name, err = deps.prompter.Input("Project name:", def, required("Name")); err != nil {
				return err
			}
		}
	}

	install := initInstall
	if !initYes && !cmd.Flags().Changed("install") {
		var err error
		if install, err = deps.prompter.Confirm("Install npm dependencies now?", true); err != nil {
			return err
		}
	}

	dir, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", target, err)
	}
	if _, statErr := os.Stat(dir); statErr == nil && target != "." && !initYes {
		proceed, err := deps.prompter.Confirm(fmt.Sprintf("Directory %q already exists. Continue?", target), false)
		if err != nil {
			return err
		}
		if !proceed {
			return errAborted
		}
	}

	result, err := scaffold.Generate(scaffold.ProjectOptions{Name: name}, dir)
	if err != nil {
		return fmt.Errorf("creating project: %w", err)
	}
	deps.logger.Debug("project scaffolded", "dir", result.OutputDir, "files", len(result.Files))
	printOK(out, "Project files created (%d files)", len(result.Files))

	if install {
		fmt.Fprintln(out, "  Installing dependencies...")
		if err := deps.npmInstall(cmd.Context(), dir, deps.logger.Named("npm")); err != nil {
			printWarn(out, "npm install failed; run it manually")
			deps.logger.Warn("npm install failed", "error", err)
		} else {
			printOK(out, "Dependencies installed")
		}
	}

	printInitNextSteps(cmd, target)
	return nil
}

func printInitNextSteps(cmd *cobra.Command, target string) {
	out := cmd.OutOrStdout()
	cli := branding.CLIName()
	var steps []string
	if target != "." {
		steps = append(steps, "cd "+target)
	}
	steps = append(steps,
		"Set up Cloudflare D1: "+accent.Sprint("npx wrangler d1 create my-db"),
		"Update "+bold.Sprint("wrangler.toml")+" with your database ID",
		"Push schema: "+accent.Sprint("npx drizzle-kit push"),
		"Start dev: "+accent.Sprint("npx wrangler dev"),
		"Add functions: "+accent.Sprint(cli+" add <function-name>"),
	)

	fmt.Fprintln(out)
	success.Fprintln(out, "  ✓ Project created successfully!")
	fmt.Fprintln(out)
	bold.Fprintln(out, "  Next steps:")
	fmt.Fprintln(out)
	for i, s := range steps {
		fmt.Fprintf(out, "  %s %s\n", muted.Sprintf("%d.", i+1), s)
	}
	fmt.Fprintf(out, "\n  %s  %s\n\n", bold.Sprint("Registry:"), branding.HubURL())
}
