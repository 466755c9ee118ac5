// Package registry is a client for the community function registry: listing
// and fetching functions, creating, updating and publishing them, and
// exchanging account credentials for a bearer token.
package registry
