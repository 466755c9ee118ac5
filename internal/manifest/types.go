package manifest

import "encoding/json"

// File names inside a module directory.
const (
	LocalFileName   = "aerostack-manifest.json"
	GatewayFileName = "aerostack.json"
)

// Local is the content of aerostack-manifest.json. Keys are camelCase to
// stay readable by the JavaScript tooling in generated projects.
type Local struct {
	ID              string   `json:"id,omitempty"`
	Name            string   `json:"name,omitempty"`
	Slug            string   `json:"slug,omitempty"`
	Author          string   `json:"author,omitempty"`
	Version         string   `json:"version,omitempty"`
	Type            string   `json:"type,omitempty"`
	Runtime         string   `json:"runtime,omitempty"`
	RouteExport     string   `json:"routeExport,omitempty"`
	RoutePath       string   `json:"routePath,omitempty"`
	DrizzleSchema   bool     `json:"drizzleSchema,omitempty"`
	NpmDependencies []string `json:"npmDependencies,omitempty"`
	EnvVars         []string `json:"envVars,omitempty"`
}

// Gateway holds the parts of aerostack.json that are sent to the registry.
type Gateway struct {
	AIConfig     json.RawMessage
	Monetization json.RawMessage
}

type gatewayFile struct {
	AIConfigSnake json.RawMessage `json:"ai_config"`
	AIConfigCamel json.RawMessage `json:"aiConfig"`
	Monetization  json.RawMessage `json:"monetization"`
}
