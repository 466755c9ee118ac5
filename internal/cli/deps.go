package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/term"

	"github.com/aerostackdev/cli/internal/branding"
	"github.com/aerostackdev/cli/internal/config"
	"github.com/aerostackdev/cli/internal/logging"
	"github.com/aerostackdev/cli/internal/registry"
)

// dependencies are the collaborators commands reach for. Tests replace
// them wholesale.
type dependencies struct {
	prompter   Prompter
	config     *config.Store
	httpClient *http.Client
	logger     hclog.Logger
	userAgent  string
	npmInstall func(ctx context.Context, dir string, logger hclog.Logger) error
}

var deps = defaultDependencies()

func defaultDependencies() *dependencies {
	var p Prompter = surveyPrompter{}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		p = defaultsPrompter{}
	}
	return &dependencies{
		prompter:   p,
		config:     config.Default(),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logging.Default(),
		userAgent:  branding.UserAgent(""),
		npmInstall: runNpmInstall,
	}
}

// registryClient builds a client for the registry selected by flag,
// authenticated when a token is available.
func registryClient(flag string) *registry.Client {
	cfg := deps.config.Load()
	return registry.New(deps.config.RegistryURL(flag),
		registry.WithHTTPClient(deps.httpClient),
		registry.WithToken(cfg.Token),
		registry.WithUserAgent(deps.userAgent),
		registry.WithLogger(deps.logger.Named("registry")),
	)
}

func runNpmInstall(ctx context.Context, dir string, logger hclog.Logger) error {
	cmd := exec.CommandContext(ctx, "npm", "install")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		logger.Debug("npm install output", "output", string(out))
		return fmt.Errorf("npm install: %w", err)
	}
	return nil
}
