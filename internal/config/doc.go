// Package config manages the user-level credentials file at
// ~/.aerostack/config.json: the registry bearer token, the account email and
// the registry URL. Reads never fail; writes are locked read-modify-write
// cycles that replace the file atomically.
package config
