package dispatch

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"

	"github.com/aerostackdev/cli/internal/branding"
)

// LocalRunner executes a local subcommand given its name and arguments.
type LocalRunner interface {
	RunLocal(ctx context.Context, args []string) error
}

// LocalRunnerFunc adapts a function to LocalRunner.
type LocalRunnerFunc func(ctx context.Context, args []string) error

func (f LocalRunnerFunc) RunLocal(ctx context.Context, args []string) error {
	return f(ctx, args)
}

// BinaryResolver yields the path of a runnable core binary.
type BinaryResolver interface {
	Ensure(ctx context.Context) (string, error)
}

// ProcessRunner runs an executable to completion and returns its exit code.
type ProcessRunner interface {
	Run(ctx context.Context, path string, args []string) (int, error)
}

// Dispatcher executes parsed commands.
type Dispatcher struct {
	Version string
	Local   LocalRunner
	Binary  BinaryResolver
	Process ProcessRunner
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  hclog.Logger
}

func (d *Dispatcher) stdout() io.Writer {
	if d.Stdout != nil {
		return d.Stdout
	}
	return os.Stdout
}

func (d *Dispatcher) stderr() io.Writer {
	if d.Stderr != nil {
		return d.Stderr
	}
	return os.Stderr
}

func (d *Dispatcher) logger() hclog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return hclog.NewNullLogger()
}

// Run executes cmd and returns the process exit code. Errors are printed
// here and nowhere else.
func (d *Dispatcher) Run(ctx context.Context, cmd Command) int {
	switch cmd.Kind {
	case KindHelp:
		fmt.Fprint(d.stdout(), Usage(d.Version))
		return 0
	case KindVersion:
		fmt.Fprintln(d.stdout(), d.Version)
		return 0
	case KindInit, KindAdd, KindList, KindPublish, KindLogin:
		args := append([]string{cmd.Kind.String()}, cmd.Args...)
		if err := d.Local.RunLocal(ctx, args); err != nil {
			d.printError(err)
			return 1
		}
		return 0
	case KindPassthrough:
		return d.passthrough(ctx, cmd.Args)
	default:
		d.printError(fmt.Errorf("unhandled command kind %s", cmd.Kind))
		return 1
	}
}

func (d *Dispatcher) passthrough(ctx context.Context, args []string) int {
	path, err := d.Binary.Ensure(ctx)
	if err != nil {
		d.printError(err)
		return 1
	}
	d.logger().Debug("passing through to core binary", "path", path, "args", args)

	code, err := d.Process.Run(ctx, path, args)
	if err != nil {
		d.printError(err)
		return 1
	}
	return code
}

func (d *Dispatcher) printError(err error) {
	color.New(color.FgRed).Fprintf(d.stderr(), "Error: %s\n", err)
}

// Usage returns the top-level help text.
func Usage(version string) string {
	name := branding.CLIName()
	return fmt.Sprintf(`%[2]s v%[3]s

Usage:
  %[1]s <command> [options]

Commands:
  init [directory]        Scaffold a new project (Hono + Drizzle)
  add <slug>              Install a community function from the registry
  list                    Browse available functions in the registry
  publish [module-path]   Publish a local function to the community registry
  login                   Authenticate with your account

Any other command is handled by the %[1]s core binary, which is downloaded
on first use.

Examples:
  %[1]s init my-backend
  %[1]s add stripe-checkout
  %[1]s add alice/stripe-checkout --runtime=node
  %[1]s list --category=payments
  %[1]s publish ./src/modules/my-fn

Documentation:  %[4]s
`, name, branding.DisplayName(), version, branding.DocsURL())
}
