package injector

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aerostackdev/cli/internal/platform"
)

// Marker comments written into generated projects by init.
const (
	ImportsMarker       = "// aerostack:imports"
	RoutesMarker        = "// aerostack:routes"
	SchemaImportsMarker = "// aerostack:schema-imports"
	SchemaExportsMarker = "// aerostack:schema-exports"
)

// Reasons reported when an injection is a no-op.
const (
	ReasonAlreadyInjected = "already injected"
	ReasonNoInsertPoint   = "no insertion point found"
)

const (
	importPrefix        = "import "
	defaultExportPrefix = "export default"
)

// Result describes the outcome of one injection. A no-op is a result, not
// an error. Notes lists statements that had nowhere to go and must be added
// by hand.
type Result struct {
	Modified bool
	Reason   string
	Notes    []string
}

// RouteInjection is an import plus the route registration that uses it.
type RouteInjection struct {
	Import string
	Route  string
}

// SchemaInjection is an import plus a re-export for the schema barrel.
type SchemaInjection struct {
	Import string
	Export string
}

// InjectRoute adds in.Import and in.Route to the entry file at path.
// The import string is the idempotency key; a route already present is
// never added twice, so a file whose import could not be placed settles too.
func InjectRoute(path string, in RouteInjection) (Result, error) {
	if in.Import == "" || in.Route == "" {
		return Result{}, errors.New("route injection needs both an import and a route statement")
	}

	content, perm, err := read(path)
	if err != nil {
		return Result{}, err
	}
	if content == nil {
		return Result{Reason: "file not found: " + path}, nil
	}
	if strings.Contains(*content, in.Import) {
		return Result{Reason: ReasonAlreadyInjected}, nil
	}

	src := parse(*content)
	var res Result
	placed := 0
	if placeImport(src, ImportsMarker, in.Import) {
		placed++
	} else {
		res.Notes = append(res.Notes, fmt.Sprintf("no %q marker or import line; add manually: %s", ImportsMarker, in.Import))
	}
	routePresent := strings.Contains(*content, in.Route)
	switch {
	case routePresent:
	case placeRoute(src, in.Route):
		placed++
	default:
		res.Notes = append(res.Notes, fmt.Sprintf("no %q marker or default export; add manually: %s", RoutesMarker, in.Route))
	}

	if placed == 0 && routePresent {
		res.Reason = ReasonAlreadyInjected
		return res, nil
	}
	return commit(path, perm, src, placed, res)
}

// InjectSchema adds in.Import and in.Export to the schema barrel at path.
// The export string is the idempotency key. A missing schema file is not an
// error since projects may not use the schema layer.
func InjectSchema(path string, in SchemaInjection) (Result, error) {
	if in.Export == "" {
		return Result{}, errors.New("schema injection needs an export statement")
	}

	content, perm, err := read(path)
	if err != nil {
		return Result{}, err
	}
	if content == nil {
		return Result{Reason: "schema file not found: " + path + " (skipping schema injection)"}, nil
	}
	if strings.Contains(*content, in.Export) {
		return Result{Reason: ReasonAlreadyInjected}, nil
	}

	src := parse(*content)
	var res Result
	placed := 0
	if in.Import != "" && !strings.Contains(*content, in.Import) {
		if placeImport(src, SchemaImportsMarker, in.Import) {
			placed++
		} else {
			res.Notes = append(res.Notes, fmt.Sprintf("no %q marker or import line; add manually: %s", SchemaImportsMarker, in.Import))
		}
	}
	if i := src.markerIndex(SchemaExportsMarker); i >= 0 {
		src.insertBefore(i, in.Export)
	} else {
		src.append(src.render(in.Export, ""))
	}
	placed++

	return commit(path, perm, src, placed, res)
}

// placeImport inserts stmt before marker, else after the last top-level
// import line. It reports false when neither exists.
func placeImport(src *source, marker, stmt string) bool {
	if i := src.markerIndex(marker); i >= 0 {
		src.insertBefore(i, stmt)
		return true
	}
	if i := src.lastWithPrefix(importPrefix); i >= 0 {
		src.insertAfter(i, stmt)
		return true
	}
	return false
}

// placeRoute inserts stmt before the routes marker, else before the first
// default export followed by a blank line.
func placeRoute(src *source, stmt string) bool {
	if i := src.markerIndex(RoutesMarker); i >= 0 {
		src.insertBefore(i, stmt)
		return true
	}
	if i := src.firstWithPrefix(defaultExportPrefix); i >= 0 {
		src.insertAt(i, src.render(stmt+"\n", ""))
		return true
	}
	return false
}

// read returns nil content when path does not exist.
func read(path string) (*string, os.FileMode, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("checking %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, 0, fmt.Errorf("%s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", path, err)
	}
	s := string(data)
	return &s, info.Mode().Perm(), nil
}

func commit(path string, perm os.FileMode, src *source, placed int, res Result) (Result, error) {
	if placed == 0 {
		res.Reason = ReasonNoInsertPoint
		return res, nil
	}
	if err := platform.WriteFileAtomic(path, []byte(src.String()), perm); err != nil {
		return Result{}, fmt.Errorf("writing %s: %w", path, err)
	}
	res.Modified = true
	return res, nil
}
