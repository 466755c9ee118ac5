package registry

import "encoding/json"

// Function is a community function as served by the registry. The server
// owns the entity; fields the client does not use are dropped.
type Function struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Slug            string            `json:"slug"`
	AuthorUsername  string            `json:"author_username,omitempty"`
	Author          string            `json:"author,omitempty"`
	Description     string            `json:"description"`
	Category        string            `json:"category"`
	Tags            []string          `json:"tags,omitempty"`
	Code            string            `json:"code,omitempty"`
	SchemaCode      string            `json:"schema_code,omitempty"`
	Files           map[string]string `json:"files,omitempty"`
	Language        string            `json:"language,omitempty"`
	License         string            `json:"license,omitempty"`
	Readme          string            `json:"readme,omitempty"`
	Version         string            `json:"version,omitempty"`
	Status          string            `json:"status,omitempty"`
	RouteExport     string            `json:"route_export,omitempty"`
	RoutePath       string            `json:"route_path,omitempty"`
	NpmDependencies []string          `json:"npm_dependencies,omitempty"`
	EnvVars         []string          `json:"env_vars,omitempty"`
	ConfigSchema    json.RawMessage   `json:"config_schema,omitempty"`
	AIConfig        json.RawMessage   `json:"ai_config,omitempty"`
	Monetization    json.RawMessage   `json:"monetization,omitempty"`
	StarCount       int               `json:"star_count"`
	CloneCount      int               `json:"clone_count"`
	URL             string            `json:"url,omitempty"`
}

// Owner returns the author's username, whichever field the server filled.
func (f *Function) Owner() string {
	if f.AuthorUsername != "" {
		return f.AuthorUsername
	}
	return f.Author
}

// ListOptions filters a listing. Zero values are not sent.
type ListOptions struct {
	Category string
	Search   string
	Sort     string
	Limit    int
	Page     int
}

// ListPage is one page of a listing.
type ListPage struct {
	Functions []Function `json:"functions"`
	Total     int        `json:"total"`
	Page      int        `json:"page"`
	Limit     int        `json:"limit"`
}

// HasMore reports whether pages after this one exist.
func (p *ListPage) HasMore() bool {
	if p.Limit <= 0 || p.Total <= 0 {
		return false
	}
	return p.Page*p.Limit < p.Total
}

// FunctionInput is the body of a create or update. Update sends only the
// fields that are set.
type FunctionInput struct {
	Name            string            `json:"name,omitempty"`
	Description     string            `json:"description,omitempty"`
	Category        string            `json:"category,omitempty"`
	Code            string            `json:"code,omitempty"`
	Files           map[string]string `json:"files,omitempty"`
	Tags            []string          `json:"tags,omitempty"`
	Language        string            `json:"language,omitempty"`
	License         string            `json:"license,omitempty"`
	RouteExport     string            `json:"route_export,omitempty"`
	RoutePath       string            `json:"route_path,omitempty"`
	NpmDependencies []string          `json:"npm_dependencies,omitempty"`
	EnvVars         []string          `json:"env_vars,omitempty"`
	AIConfig        json.RawMessage   `json:"ai_config,omitempty"`
	Monetization    json.RawMessage   `json:"monetization,omitempty"`
}

// Created is the registry's answer to a create.
type Created struct {
	ID     string `json:"id"`
	Slug   string `json:"slug"`
	Author string `json:"author"`
	Status string `json:"status,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Published carries the hub path of a published function.
type Published struct {
	URL string `json:"url"`
}
