package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aerostackdev/cli/internal/branding"
	"github.com/aerostackdev/cli/internal/config"
	"github.com/aerostackdev/cli/internal/manifest"
	"github.com/aerostackdev/cli/internal/registry"
)

var (
	publishRegistry string
	publishOnly     bool
)

// Categories offered when publishing, in prompt order.
var publishCategories = []string{"payments", "auth", "email", "data", "api", "ai", "web3", "utility", "other"}

// Primary source candidates, most specific first.
var primaryFiles = []string{"core.ts", "adapter.ts", "index.ts"}

const nodeAdapterName = "node-adapter.ts"

var publishCmd = &cobra.Command{
	Use:   "publish [module-path]",
	Short: "Publish a local module to the community registry",
	Long: `Read a module directory and push it to the registry. Without a path the
single module under src/modules/ is used (you choose when there are several),
falling back to the current directory.

A module whose manifest already carries an id is updated in place; otherwise
a new function is created and its id is written back to the manifest.`,
	Example: `  aerostack publish
  aerostack publish ./src/modules/stripe-checkout
  aerostack publish --publish-only`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringVar(&publishRegistry, "registry", "", "Registry base URL")
	publishCmd.Flags().BoolVar(&publishOnly, "publish-only", false, "Publish the function recorded in the manifest without uploading")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	heading(out, branding.DisplayName()+" Publish")

	if !deps.config.IsAuthenticated() {
		return config.ErrNotAuthenticated
	}

	var path string
	if len(args) == 1 {
		path = args[0]
	}
	dir, err := findModuleDir(path)
	if err != nil {
		return err
	}
	deps.logger.Debug("publishing module", "dir", dir)

	m, err := readValidManifest(dir)
	if err != nil {
		return err
	}

	client := registryClient(publishRegistry)
	if publishOnly {
		if m.ID == "" {
			return fmt.Errorf("%s has no function id; run %s publish first", manifest.LocalFileName, branding.CLIName())
		}
		return publishFunction(cmd, client, m.ID)
	}

	gw, err := manifest.ReadGateway(dir)
	if err != nil {
		printWarn(out, "could not parse %s in %s", manifest.GatewayFileName, dir)
		deps.logger.Debug("gateway config ignored", "error", err)
		gw = &manifest.Gateway{}
	}

	primary, files, err := readSources(dir)
	if err != nil {
		return err
	}

	defName := m.Name
	if defName == "" {
		defName = filepath.Base(dir)
	}
	name, err := deps.prompter.Input("Function name:", defName, required("Name"))
	if err != nil {
		return err
	}
	description, err := deps.prompter.Input("Description:", "", minLength(10))
	if err != nil {
		return err
	}
	category, err := deps.prompter.Select("Category:", publishCategories, inferCategory(files))
	if err != nil {
		return err
	}
	rawTags, err := deps.prompter.Input("Tags (comma separated):", "", nil)
	if err != nil {
		return err
	}
	publishNow, err := deps.prompter.Confirm("Publish immediately? (No = save as draft)", false)
	if err != nil {
		return err
	}

	in := registry.FunctionInput{
		Name:            strings.TrimSpace(name),
		Description:     strings.TrimSpace(description),
		Category:        category,
		Code:            primary,
		Files:           files,
		Tags:            splitTags(rawTags),
		RouteExport:     m.RouteExport,
		RoutePath:       m.RoutePath,
		NpmDependencies: m.NpmDependencies,
		EnvVars:         m.EnvVars,
		AIConfig:        gw.AIConfig,
		Monetization:    gw.Monetization,
	}

	var id string
	if m.ID != "" {
		if err := client.Update(cmd.Context(), m.ID, in); err != nil {
			return err
		}
		id = m.ID
		printOK(out, "Function updated")
	} else {
		in.Language = "typescript"
		in.License = "MIT"
		created, err := client.Create(cmd.Context(), in)
		if err != nil {
			return err
		}
		id = created.ID
		m.ID = created.ID
		if created.Slug != "" {
			m.Slug = created.Slug
		}
		if created.Author != "" {
			m.Author = created.Author
		}
		if m.Name == "" {
			m.Name = in.Name
		}
		if err := manifest.WriteLocal(dir, m); err != nil {
			return fmt.Errorf("recording function id: %w", err)
		}
		printOK(out, "Function created: %s", accent.Sprintf("%s/%s", m.Author, m.Slug))
	}

	if !publishNow {
		fmt.Fprintf(out, "\n  %s To publish later:\n", success.Sprint("✓ Saved as draft."))
		fmt.Fprintf(out, "  %s\n\n", accent.Sprintf("%s publish --publish-only", branding.CLIName()))
		return nil
	}
	return publishFunction(cmd, client, id)
}

func publishFunction(cmd *cobra.Command, client *registry.Client, id string) error {
	out := cmd.OutOrStdout()
	res, err := client.Publish(cmd.Context(), id)
	if err != nil {
		return err
	}
	printOK(out, "Published!")
	if res.URL != "" {
		fmt.Fprintf(out, "\n  %s %s\n\n", bold.Sprint("Registry URL:"), accent.Sprint(hubLink(res.URL)))
	}
	return nil
}

// hubLink resolves a registry-relative path against the hub.
func hubLink(u string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return strings.TrimRight(branding.HubURL(), "/") + "/" + strings.TrimLeft(u, "/")
}

// findModuleDir resolves the module to publish: the given path, else the
// only directory under src/modules (or the user's pick), else the working
// directory.
func findModuleDir(path string) (string, error) {
	if path != "" {
		dir, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", path, err)
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return "", fmt.Errorf("directory not found: %s", dir)
		}
		return dir, nil
	}

	modules := filepath.Join("src", "modules")
	entries, err := os.ReadDir(modules)
	if errors.Is(err, os.ErrNotExist) {
		return os.Getwd()
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", modules, err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	switch len(dirs) {
	case 0:
		return "", fmt.Errorf("no modules found in %s", filepath.ToSlash(modules)+"/")
	case 1:
		return filepath.Abs(filepath.Join(modules, dirs[0]))
	}
	choice, err := deps.prompter.Select("Which module to publish?", dirs, "")
	if err != nil {
		return "", err
	}
	return filepath.Abs(filepath.Join(modules, choice))
}

// readValidManifest reads dir's manifest and rejects one that violates the
// schema.
func readValidManifest(dir string) (*manifest.Local, error) {
	path := filepath.Join(dir, manifest.LocalFileName)
	if _, err := os.Stat(path); err == nil {
		res, err := manifest.ValidateFile(path)
		if err != nil {
			return nil, err
		}
		if !res.Valid {
			return nil, manifestError(path, res.Issues)
		}
	}
	return manifest.ReadLocal(dir)
}

func manifestError(path string, issues []manifest.ValidationIssue) error {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid manifest %s:", path)
	for _, issue := range issues {
		fmt.Fprintf(&b, "\n  %s", issue)
	}
	return errors.New(b.String())
}

// readSources returns the primary source and every top-level .ts file in
// dir, keyed by file name. The generated Node adapter is left out.
func readSources(dir string) (string, map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	files := map[string]string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".ts") || name == nodeAdapterName {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return "", nil, fmt.Errorf("reading %s: %w", name, err)
		}
		files[name] = string(data)
	}

	for _, name := range primaryFiles {
		if code, ok := files[name]; ok {
			return code, files, nil
		}
	}
	return "", nil, fmt.Errorf("no TypeScript source files found in %s", dir)
}

// inferCategory guesses a category from the module's sources.
func inferCategory(files map[string]string) string {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, name := range names {
		b.WriteString(files[name])
		b.WriteByte('\n')
	}
	code := b.String()

	switch {
	case strings.Contains(code, "stripe"):
		return "payments"
	case strings.Contains(code, "drizzle") && strings.Contains(code, "auth"):
		return "auth"
	case strings.Contains(code, "email"), strings.Contains(code, "sendgrid"):
		return "email"
	}
	return "utility"
}

func splitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func minLength(n int) func(string) error {
	return func(v string) error {
		if len([]rune(strings.TrimSpace(v))) < n {
			return fmt.Errorf("at least %d characters required", n)
		}
		return nil
	}
}
