package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed templates
var templateFS embed.FS

const (
	projectRoot     = "templates/project"
	nodeAdapterFile = "templates/node-adapter.ts.tmpl"
)

// Directories created empty in every new project.
var projectDirs = []string{
	filepath.Join("src", "modules"),
	filepath.Join("src", "lib"),
	"drizzle",
}

// Files written verbatim, outside the template tree because embed
// skips dotfiles.
var projectDotfiles = []struct{ name, content string }{
	{".env.example", "CLOUDFLARE_ACCOUNT_ID=\nCLOUDFLARE_DATABASE_ID=\nCLOUDFLARE_D1_TOKEN=\n"},
	{".gitignore", "node_modules/\ndist/\n.wrangler/\n.aerostack/\n.env\n"},
}

// ProjectOptions holds the values substituted into the project template.
type ProjectOptions struct {
	Name string
}

func (o ProjectOptions) tokens() map[string]string {
	return map[string]string{
		"PROJECT_NAME": o.Name,
	}
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
}

// Generate writes a new project into outputDir. Existing files with the
// same names are overwritten; callers confirm that with the user first.
func Generate(opts ProjectOptions, outputDir string) (*Result, error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("project name is required")
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	files, err := CopyTree(templateFS, projectRoot, outputDir, opts.tokens())
	if err != nil {
		return nil, err
	}
	result := &Result{OutputDir: outputDir, Files: files}

	for _, dir := range projectDirs {
		if err := os.MkdirAll(filepath.Join(outputDir, dir), 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	for _, f := range projectDotfiles {
		if err := os.WriteFile(filepath.Join(outputDir, f.name), []byte(f.content), 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.name, err)
		}
		result.Files = append(result.Files, f.name)
	}

	return result, nil
}

// NodeAdapterData fills the Node.js adapter template.
type NodeAdapterData struct {
	Slug        string
	RouteExport string
	Port        int
}

// NodeAdapter renders the adapter that serves a Hono module on Node.js.
func NodeAdapter(data NodeAdapterData) (string, error) {
	raw, err := fs.ReadFile(templateFS, nodeAdapterFile)
	if err != nil {
		return "", fmt.Errorf("reading node adapter template: %w", err)
	}
	port := data.Port
	if port == 0 {
		port = 3000
	}
	return ApplyTokens(string(raw), map[string]string{
		"SLUG":         data.Slug,
		"ROUTE_EXPORT": data.RouteExport,
		"PORT":         fmt.Sprint(port),
	}), nil
}
