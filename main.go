package main

import (
	"context"
	"os"

	"github.com/aerostackdev/cli/internal/branding"
	"github.com/aerostackdev/cli/internal/cli"
	"github.com/aerostackdev/cli/internal/corebin"
	"github.com/aerostackdev/cli/internal/dispatch"
	"github.com/aerostackdev/cli/internal/logging"
)

// version is set via ldflags at build time.
var version = "1.0.0"

func main() {
	logger := logging.Default()
	cli.SetVersion(version)
	binary := corebin.New(
		corebin.WithLogger(logger.Named("corebin")),
		corebin.WithUserAgent(branding.UserAgent(version)),
	)
	d := &dispatch.Dispatcher{
		Version: version,
		Local:   dispatch.LocalRunnerFunc(cli.RunLocal),
		Binary:  binary,
		Process: dispatch.ExecRunner{Logger: logger.Named("exec")},
		Logger:  logger,
	}
	os.Exit(d.Run(context.Background(), dispatch.Parse(os.Args[1:])))
}
