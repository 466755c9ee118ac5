package injector

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const indexTemplate = `import { Hono } from 'hono';
// aerostack:imports

const app = new Hono();

// aerostack:routes

export default app;
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func route(name string) RouteInjection {
	return RouteInjection{
		Import: "import { " + name + "Route } from './modules/" + name + "';",
		Route:  "app.route('/api/" + name + "', " + name + "Route);",
	}
}

func TestInjectRouteAtMarkers(t *testing.T) {
	path := writeFile(t, "index.ts", indexTemplate)

	res, err := InjectRoute(path, route("hello"))
	if err != nil {
		t.Fatalf("InjectRoute: %v", err)
	}
	if !res.Modified || len(res.Notes) != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}

	want := `import { Hono } from 'hono';
import { helloRoute } from './modules/hello';
// aerostack:imports

const app = new Hono();

app.route('/api/hello', helloRoute);
// aerostack:routes

export default app;
`
	if diff := cmp.Diff(want, readFile(t, path)); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
}

func TestInjectRouteIdempotent(t *testing.T) {
	fixtures := map[string]string{
		"markers":   indexTemplate,
		"fallback":  "import { Hono } from 'hono';\n\nconst app = new Hono();\n\nexport default app;\n",
		"crlf":      strings.ReplaceAll(indexTemplate, "\n", "\r\n"),
		"no final":  strings.TrimSuffix(indexTemplate, "\n"),
		"indented":  "import { Hono } from 'hono';\n  // aerostack:imports\nfunction build() {\n    // aerostack:routes\n}\nexport default app;\n",
		"no anchor": "const x = 1;\n",
		"route only": "const app = makeApp();\nexport default app;\n",
	}
	for name, content := range fixtures {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, "index.ts", content)
			if _, err := InjectRoute(path, route("fn")); err != nil {
				t.Fatal(err)
			}
			first := readFile(t, path)

			res, err := InjectRoute(path, route("fn"))
			if err != nil {
				t.Fatal(err)
			}
			if res.Modified {
				t.Errorf("second injection modified the file: %+v", res)
			}
			if second := readFile(t, path); second != first {
				t.Errorf("file changed on second call:\nfirst:\n%q\nsecond:\n%q", first, second)
			}
		})
	}
}

func TestInjectRouteOrdering(t *testing.T) {
	path := writeFile(t, "index.ts", indexTemplate)
	for _, name := range []string{"a", "b"} {
		if _, err := InjectRoute(path, route(name)); err != nil {
			t.Fatal(err)
		}
	}
	got := readFile(t, path)

	for _, pair := range [][3]string{
		{route("a").Import, route("b").Import, ImportsMarker},
		{route("a").Route, route("b").Route, RoutesMarker},
	} {
		a, b, m := strings.Index(got, pair[0]), strings.Index(got, pair[1]), strings.Index(got, pair[2])
		if !(a < b && b < m) {
			t.Errorf("want %q before %q before %q in:\n%s", pair[0], pair[1], pair[2], got)
		}
		if !strings.Contains(got, pair[1]+"\n"+pair[2]) {
			t.Errorf("last injected %q should sit directly above %q", pair[1], pair[2])
		}
	}
}

func TestInjectRouteFallbacks(t *testing.T) {
	content := "import { Hono } from 'hono';\nimport { cors } from 'hono/cors';\n\nconst app = new Hono();\n\nexport default app;\n"
	path := writeFile(t, "index.ts", content)

	res, err := InjectRoute(path, route("x"))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Modified {
		t.Fatalf("expected modification: %+v", res)
	}
	want := "import { Hono } from 'hono';\nimport { cors } from 'hono/cors';\n" + route("x").Import +
		"\n\nconst app = new Hono();\n\n" + route("x").Route + "\n\nexport default app;\n"
	if diff := cmp.Diff(want, readFile(t, path)); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
}

func TestInjectRouteNoImportLines(t *testing.T) {
	content := "const app = makeApp();\nexport default app;\n"
	path := writeFile(t, "index.ts", content)

	res, err := InjectRoute(path, route("x"))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Modified {
		t.Fatalf("route should still be placed: %+v", res)
	}
	if len(res.Notes) != 1 || !strings.Contains(res.Notes[0], route("x").Import) {
		t.Errorf("expected a note carrying the dropped import, got %v", res.Notes)
	}
	if strings.Contains(readFile(t, path), route("x").Import) {
		t.Error("import should not be written without an anchor")
	}
}

func TestInjectRouteWithoutImportAnchorSettles(t *testing.T) {
	path := writeFile(t, "index.ts", "const app = makeApp();\nexport default app;\n")
	if _, err := InjectRoute(path, route("x")); err != nil {
		t.Fatal(err)
	}

	res, err := InjectRoute(path, route("x"))
	if err != nil {
		t.Fatal(err)
	}
	if res.Modified || res.Reason != ReasonAlreadyInjected {
		t.Errorf("second call: %+v", res)
	}
	if n := strings.Count(readFile(t, path), route("x").Route); n != 1 {
		t.Errorf("route written %d times", n)
	}
}

func TestInjectRouteTrailingMarkers(t *testing.T) {
	content := "import { Hono } from 'hono'; // aerostack:imports\nconst app = new Hono();\napp.get('/', h); // aerostack:routes\nexport default app;\n"
	path := writeFile(t, "index.ts", content)

	if _, err := InjectRoute(path, route("x")); err != nil {
		t.Fatal(err)
	}
	want := route("x").Import + "\nimport { Hono } from 'hono'; // aerostack:imports\nconst app = new Hono();\n" +
		route("x").Route + "\napp.get('/', h); // aerostack:routes\nexport default app;\n"
	if diff := cmp.Diff(want, readFile(t, path)); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
}

func TestInjectRouteNothingPlaceable(t *testing.T) {
	path := writeFile(t, "index.ts", "const x = 1;\n")
	res, err := InjectRoute(path, route("x"))
	if err != nil {
		t.Fatal(err)
	}
	if res.Modified || res.Reason != ReasonNoInsertPoint || len(res.Notes) != 2 {
		t.Errorf("unexpected result: %+v", res)
	}
	if got := readFile(t, path); got != "const x = 1;\n" {
		t.Errorf("file should be unchanged, got %q", got)
	}
}

func TestInjectRouteMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.ts")
	res, err := InjectRoute(path, route("x"))
	if err != nil {
		t.Fatal(err)
	}
	if res.Modified || res.Reason != "file not found: "+path {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestInjectRouteKeyedOnImport(t *testing.T) {
	in := route("x")
	path := writeFile(t, "index.ts", in.Import+"\n"+indexTemplate)

	res, err := InjectRoute(path, RouteInjection{Import: in.Import, Route: "app.route('/other', other);"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Modified || res.Reason != ReasonAlreadyInjected {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestInjectRoutePreservesCRLF(t *testing.T) {
	path := writeFile(t, "index.ts", strings.ReplaceAll(indexTemplate, "\n", "\r\n"))
	if _, err := InjectRoute(path, route("x")); err != nil {
		t.Fatal(err)
	}
	got := readFile(t, path)
	if strings.Count(got, "\n") != strings.Count(got, "\r\n") {
		t.Errorf("mixed line endings after injection: %q", got)
	}
	if !strings.Contains(got, route("x").Import+"\r\n"+ImportsMarker+"\r\n") {
		t.Errorf("import not placed before marker: %q", got)
	}
}

func TestInjectRouteCopiesMarkerIndent(t *testing.T) {
	content := "import a from 'a';\n\t// aerostack:imports\nfunction f() {\n    // aerostack:routes trailing text\n}\n"
	path := writeFile(t, "index.ts", content)
	if _, err := InjectRoute(path, route("x")); err != nil {
		t.Fatal(err)
	}
	got := readFile(t, path)
	if !strings.Contains(got, "\t"+route("x").Import+"\n\t"+ImportsMarker) {
		t.Errorf("import indentation not copied:\n%s", got)
	}
	if !strings.Contains(got, "    "+route("x").Route+"\n    "+RoutesMarker) {
		t.Errorf("route indentation not copied:\n%s", got)
	}
}

func TestIsMarker(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"// aerostack:imports", true},
		{"   // aerostack:imports", true},
		{"// aerostack:imports keep this", true},
		{"// aerostack:imports\r", true},
		{"// aerostack:importsX", false},
		{"code(); // aerostack:imports", true},
		{"code();// aerostack:imports", false},
		{"// aerostack:importsX // aerostack:imports", true},
		{"", false},
	}
	for _, tt := range tests {
		if got := isMarker(tt.line, ImportsMarker); got != tt.want {
			t.Errorf("isMarker(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestInjectRouteRequiresStatements(t *testing.T) {
	if _, err := InjectRoute("x", RouteInjection{Import: "import a from 'a';"}); err == nil {
		t.Error("expected error for empty route")
	}
}
