package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/pflag"

	"github.com/aerostackdev/cli/internal/config"
)

// fakePrompter answers prompts by message. An unanswered prompt takes its
// default. An answer of type error is returned as the prompt's error.
type fakePrompter struct {
	answers map[string]any
	asked   []string
}

func (p *fakePrompter) answer(message string) (any, bool) {
	p.asked = append(p.asked, message)
	v, ok := p.answers[message]
	return v, ok
}

func (p *fakePrompter) Input(message, def string, validate func(string) error) (string, error) {
	v, ok := p.answer(message)
	if err, isErr := v.(error); isErr {
		return "", err
	}
	s := def
	if ok {
		s = v.(string)
	}
	if validate != nil {
		if err := validate(s); err != nil {
			return "", fmt.Errorf("%s rejected %q: %w", message, s, err)
		}
	}
	return s, nil
}

func (p *fakePrompter) Password(message string, validate func(string) error) (string, error) {
	return p.Input(message, "", validate)
}

func (p *fakePrompter) Confirm(message string, def bool) (bool, error) {
	v, ok := p.answer(message)
	if err, isErr := v.(error); isErr {
		return false, err
	}
	if !ok {
		return def, nil
	}
	return v.(bool), nil
}

func (p *fakePrompter) Select(message string, options []string, def string) (string, error) {
	v, ok := p.answer(message)
	if err, isErr := v.(error); isErr {
		return "", err
	}
	if ok {
		return v.(string), nil
	}
	if def != "" {
		return def, nil
	}
	return options[0], nil
}

type testEnv struct {
	dir      string
	store    *config.Store
	prompter *fakePrompter
	npmDirs  []string
}

// setup isolates a test: a fresh working directory, config file and
// dependencies, with every flag back at its default.
func setup(t *testing.T) *testEnv {
	t.Helper()
	color.NoColor = true
	for _, k := range []string{"AEROSTACK_TOKEN", "AEROSTACK_EMAIL", "AEROSTACK_REGISTRY"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	env := &testEnv{
		dir:      t.TempDir(),
		store:    config.NewStore(filepath.Join(t.TempDir(), "config.json")),
		prompter: &fakePrompter{answers: map[string]any{}},
	}
	t.Chdir(env.dir)

	old := deps
	deps = &dependencies{
		prompter:   env.prompter,
		config:     env.store,
		httpClient: http.DefaultClient,
		logger:     hclog.NewNullLogger(),
		userAgent:  "aerostack-cli/test",
		npmInstall: func(_ context.Context, dir string, _ hclog.Logger) error {
			env.npmDirs = append(env.npmDirs, dir)
			return nil
		},
	}
	t.Cleanup(func() { deps = old })
	return env
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	if err := e.store.Save(config.AuthConfig{Token: "tok", Email: "dev@example.com"}); err != nil {
		t.Fatal(err)
	}
}

func resetFlags(t *testing.T) {
	t.Helper()
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			if err := f.Value.Set(f.DefValue); err != nil {
				t.Fatalf("resetting --%s: %v", f.Name, err)
			}
			f.Changed = false
		})
	}
}

// run executes one local command and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	err := RunLocal(context.Background(), args)
	return out.String(), err
}

func newRegistry(t *testing.T, h http.HandlerFunc) string {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv.URL
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func assertContains(t *testing.T, label, s, sub string) {
	t.Helper()
	if !strings.Contains(s, sub) {
		t.Errorf("%s does not contain %q:\n%s", label, sub, s)
	}
}
