// Package branding provides compile-time identity values for the CLI.
//
// Values live in branding.yaml next to this file and are baked into the
// binary with //go:embed.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	GitHubRepo  string `yaml:"github_repo"`
	CoreBinary  string `yaml:"core_binary"`
	RegistryURL string `yaml:"registry_url"`
	HubURL      string `yaml:"hub_url"`
	DocsURL     string `yaml:"docs_url"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is empty.
		defaults = brand{
			CLIName:     "aerostack",
			DisplayName: "Aerostack",
			Description: "Scaffold Aerostack projects and manage community functions",
			HomeDir:     ".aerostack",
			EnvPrefix:   "AEROSTACK",
			GitHubRepo:  "aerostackdev/cli",
			CoreBinary:  "aerostack",
			RegistryURL: "https://api.aerostack.dev/api",
			HubURL:      "https://hub.aerostack.dev",
			DocsURL:     "https://aerostack.dev/docs/cli",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "aerostack").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under the user's home (".aerostack").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix ("AEROSTACK").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GitHubRepo returns the "owner/repo" that publishes core binary releases.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// CoreBinary returns the base name of the native core executable and of its
// release archives.
func CoreBinary() string { load(); return defaults.CoreBinary }

// RegistryURL returns the default community registry API base URL.
func RegistryURL() string { load(); return defaults.RegistryURL }

// HubURL returns the public web URL of the function hub.
func HubURL() string { load(); return defaults.HubURL }

// DocsURL returns the CLI documentation URL.
func DocsURL() string { load(); return defaults.DocsURL }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("token") → "AEROSTACK_TOKEN".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}

// UserAgent returns the User-Agent sent by this CLI, e.g.
// "aerostack-cli/1.0.0". An empty version drops the suffix.
func UserAgent(version string) string {
	load()
	if version == "" {
		return defaults.CLIName + "-cli"
	}
	return defaults.CLIName + "-cli/" + version
}
