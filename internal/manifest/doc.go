// Package manifest reads and writes the per-module files of an Aerostack
// project: aerostack-manifest.json, which ties a module directory to its
// registry entry, and aerostack.json, which carries gateway settings such as
// AI and monetization config. Manifests are checked against an embedded JSON
// schema before they are published.
package manifest
