package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aerostackdev/cli/internal/branding"
	"github.com/aerostackdev/cli/internal/injector"
	"github.com/aerostackdev/cli/internal/manifest"
	"github.com/aerostackdev/cli/internal/registry"
	"github.com/aerostackdev/cli/internal/scaffold"
)

const (
	runtimeCloudflare = "cloudflare"
	runtimeNode       = "node"
)

var (
	addRuntime  string
	addForce    bool
	addRegistry string
)

var addCmd = &cobra.Command{
	Use:   "add <slug|author/slug>",
	Short: "Install a community function from the registry",
	Long: `Download a community function into src/modules/<slug>/ and wire it into
the project: its route is registered in src/index.ts and its schema, if any,
is re-exported from src/db/schema.ts. Running add twice changes nothing.`,
	Example: `  aerostack add stripe-checkout
  aerostack add alice/stripe-checkout
  aerostack add stripe-checkout --runtime=node`,
	Args: requireArg("function slug"),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addRuntime, "runtime", runtimeCloudflare, "Target runtime: cloudflare or node")
	addCmd.Flags().BoolVarP(&addForce, "force", "f", false, "Overwrite an existing module directory")
	addCmd.Flags().StringVar(&addRegistry, "registry", "", "Registry base URL")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if addRuntime != runtimeCloudflare && addRuntime != runtimeNode {
		return fmt.Errorf("unknown runtime %q (want %s or %s)", addRuntime, runtimeCloudflare, runtimeNode)
	}

	author, slug := splitRef(args[0])
	if err := checkSlug(slug); err != nil {
		return fmt.Errorf("invalid function reference %q: %w", args[0], err)
	}

	client := registryClient(addRegistry)
	heading(out, branding.DisplayName()+" Add")
	fmt.Fprintf(out, "  Fetching %s from %s\n", accent.Sprint(args[0]), client.BaseURL())

	var fn *registry.Function
	var err error
	if author != "" {
		fn, err = client.Get(cmd.Context(), author, slug)
	} else {
		fn, err = client.Install(cmd.Context(), slug)
	}
	if err != nil {
		return err
	}
	if fn.Slug != "" {
		if err := checkSlug(fn.Slug); err != nil {
			return fmt.Errorf("registry returned an unusable slug %q: %w", fn.Slug, err)
		}
		slug = fn.Slug
	}

	moduleDir := filepath.Join("src", "modules", slug)
	if _, err := os.Stat(moduleDir); err == nil && !addForce {
		return fmt.Errorf("%s already exists; use --force to overwrite", moduleDir)
	}

	m, err := writeModule(moduleDir, slug, fn)
	if err != nil {
		return err
	}
	printOK(out, "Module written to %s", filepath.ToSlash(moduleDir))
	warnManifestIssues(out, moduleDir)

	route := injector.RouteInjection{
		Import: fmt.Sprintf("import { %s } from './modules/%s';", m.RouteExport, slug),
		Route:  fmt.Sprintf("app.route('%s', %s);", m.RoutePath, m.RouteExport),
	}
	res, err := injector.InjectRoute(filepath.Join("src", "index.ts"), route)
	if err != nil {
		return err
	}
	reportInjection(out, "src/index.ts", res)

	if m.DrizzleSchema {
		schema := injector.SchemaInjection{
			Import: fmt.Sprintf("import * as %sSchema from '../modules/%s/schema';", identifier(slug), slug),
			Export: fmt.Sprintf("export * from '../modules/%s/schema';", slug),
		}
		res, err := injector.InjectSchema(filepath.Join("src", "db", "schema.ts"), schema)
		if err != nil {
			return err
		}
		reportInjection(out, "src/db/schema.ts", res)
	}

	printAddHints(cmd, m)
	return nil
}

// splitRef splits "author/slug" or "slug".
func splitRef(ref string) (author, slug string) {
	ref = strings.Trim(strings.TrimSpace(ref), "/")
	if a, s, found := strings.Cut(ref, "/"); found {
		return a, s
	}
	return "", ref
}

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// checkSlug rejects slugs that cannot name a directory under src/modules or
// appear inside a quoted import path.
func checkSlug(slug string) error {
	if slug == "" {
		return errors.New("empty slug")
	}
	if !slugPattern.MatchString(slug) || !filepath.IsLocal(slug) {
		return errors.New("slug may only contain letters, digits, '.', '_' and '-'")
	}
	return nil
}

// writeModule materialises fn under dir and returns the manifest it wrote.
func writeModule(dir, slug string, fn *registry.Function) (*manifest.Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}

	files := map[string]string{}
	for name, content := range fn.Files {
		if !filepath.IsLocal(name) {
			return nil, fmt.Errorf("registry file %q escapes the module directory", name)
		}
		files[filepath.FromSlash(name)] = content
	}
	if _, ok := files["index.ts"]; !ok {
		if fn.Code == "" {
			return nil, fmt.Errorf("function %s has no code", slug)
		}
		files["index.ts"] = fn.Code
	}
	if fn.SchemaCode != "" {
		files["schema.ts"] = fn.SchemaCode
	}
	if fn.Readme != "" {
		files["README.md"] = fn.Readme
	}

	m := &manifest.Local{
		ID:              fn.ID,
		Name:            fn.Name,
		Slug:            slug,
		Author:          fn.Owner(),
		Version:         fn.Version,
		Runtime:         addRuntime,
		RouteExport:     fn.RouteExport,
		RoutePath:       fn.RoutePath,
		NpmDependencies: fn.NpmDependencies,
		EnvVars:         fn.EnvVars,
	}
	if m.RouteExport == "" {
		m.RouteExport = identifier(slug) + "Route"
	}
	if m.RoutePath == "" {
		m.RoutePath = "/api/" + slug
	}
	_, m.DrizzleSchema = files["schema.ts"]

	if addRuntime == runtimeNode {
		m.NpmDependencies = appendMissing(m.NpmDependencies, "@hono/node-server")
		adapter, err := scaffold.NodeAdapter(scaffold.NodeAdapterData{Slug: slug, RouteExport: m.RouteExport})
		if err != nil {
			return nil, err
		}
		files["node-adapter.ts"] = adapter
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(files[name]), 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
	}

	if err := manifest.WriteLocal(dir, m); err != nil {
		return nil, err
	}
	return m, nil
}

func reportInjection(w io.Writer, file string, res injector.Result) {
	switch {
	case res.Modified:
		printOK(w, "Wired into %s", file)
	case res.Reason == injector.ReasonAlreadyInjected:
		fmt.Fprintf(w, "  %s already wired in %s\n", muted.Sprint("-"), file)
	default:
		printWarn(w, "%s", res.Reason)
	}
	for _, note := range res.Notes {
		printWarn(w, "%s", note)
	}
}

func printAddHints(cmd *cobra.Command, m *manifest.Local) {
	out := cmd.OutOrStdout()
	if len(m.NpmDependencies) > 0 {
		fmt.Fprintf(out, "\n  %s %s\n", bold.Sprint("Install dependencies:"), accent.Sprint("npm install "+strings.Join(m.NpmDependencies, " ")))
	}
	if len(m.EnvVars) > 0 {
		fmt.Fprintf(out, "\n  %s\n", bold.Sprint("Set these environment variables (.dev.vars or wrangler secret put):"))
		for _, v := range m.EnvVars {
			fmt.Fprintf(out, "    %s\n", v)
		}
	}
	if m.DrizzleSchema {
		fmt.Fprintf(out, "\n  %s %s\n", bold.Sprint("Push the new schema:"), accent.Sprint("npx drizzle-kit push"))
	}
	if m.Runtime == runtimeNode {
		fmt.Fprintf(out, "\n  %s %s\n", bold.Sprint("Run on Node.js:"), accent.Sprintf("npx tsx src/modules/%s/node-adapter.ts", m.Slug))
	}
	fmt.Fprintln(out)
}

var titleCase = cases.Title(language.Und)

// identifier turns a slug such as "stripe-checkout" into "stripeCheckout".
func identifier(slug string) string {
	parts := strings.FieldsFunc(slug, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	})
	if len(parts) == 0 {
		return "module"
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(parts[0]))
	for _, p := range parts[1:] {
		b.WriteString(titleCase.String(p))
	}
	id := b.String()
	if id[0] >= '0' && id[0] <= '9' {
		id = "m" + id
	}
	return id
}

func appendMissing(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}

// warnManifestIssues reports schema violations in dir's manifest without
// failing the command.
func warnManifestIssues(w io.Writer, dir string) {
	res, err := manifest.ValidateFile(filepath.Join(dir, manifest.LocalFileName))
	if err != nil {
		deps.logger.Debug("manifest validation skipped", "dir", dir, "error", err)
		return
	}
	for _, issue := range res.Issues {
		printWarn(w, "%s: %s", manifest.LocalFileName, issue)
	}
}
