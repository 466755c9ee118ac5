package corebin

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hashicorp/go-hclog"

	"github.com/aerostackdev/cli/internal/branding"
	"github.com/aerostackdev/cli/internal/userdata"
)

const (
	defaultAPIBase      = "https://api.github.com"
	defaultDownloadBase = "https://github.com"
)

// Cache resolves the core binary for one platform and install directory.
type Cache struct {
	binary       string
	repo         string
	installDir   string
	goos         string
	goarch       string
	apiBase      string
	downloadBase string
	userAgent    string
	httpClient   *http.Client
	logger       hclog.Logger
	progress     io.Writer
}

// Option configures a Cache.
type Option func(*Cache)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cb *Cache) {
		cb.httpClient = c
	}
}

// WithAPIBase overrides the GitHub API base URL.
func WithAPIBase(url string) Option {
	return func(cb *Cache) {
		cb.apiBase = url
	}
}

// WithDownloadBase overrides the host serving release downloads.
func WithDownloadBase(url string) Option {
	return func(cb *Cache) {
		cb.downloadBase = url
	}
}

// WithInstallDir overrides the install directory.
func WithInstallDir(dir string) Option {
	return func(cb *Cache) {
		cb.installDir = dir
	}
}

// WithPlatform overrides the target OS and architecture.
func WithPlatform(goos, goarch string) Option {
	return func(cb *Cache) {
		cb.goos = goos
		cb.goarch = goarch
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l hclog.Logger) Option {
	return func(cb *Cache) {
		cb.logger = l
	}
}

// WithProgress sets where download progress is written (stderr by default).
func WithProgress(w io.Writer) Option {
	return func(cb *Cache) {
		cb.progress = w
	}
}

// WithUserAgent sets the User-Agent sent to GitHub.
func WithUserAgent(ua string) Option {
	return func(cb *Cache) {
		cb.userAgent = ua
	}
}

// New creates a Cache for the running platform and the default install dir.
func New(opts ...Option) *Cache {
	c := &Cache{
		binary:       branding.CoreBinary(),
		repo:         branding.GitHubRepo(),
		installDir:   userdata.InstallDir(),
		goos:         runtime.GOOS,
		goarch:       runtime.GOARCH,
		apiBase:      defaultAPIBase,
		downloadBase: defaultDownloadBase,
		userAgent:    branding.UserAgent(""),
		httpClient:   http.DefaultClient,
		logger:       hclog.NewNullLogger(),
		progress:     os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InstallDir returns the directory the binary is cached in.
func (c *Cache) InstallDir() string {
	return c.installDir
}

// BinaryPath returns the deterministic path of the cached executable.
func (c *Cache) BinaryPath() string {
	name := c.binary
	if c.goos == "windows" {
		name += ".exe"
	}
	return filepath.Join(c.installDir, name)
}
