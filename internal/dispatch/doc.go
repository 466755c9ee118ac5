// Package dispatch routes one CLI invocation. The first argument selects a
// closed set of commands: help, version, the locally implemented commands,
// or passthrough of the whole argument vector to the cached core binary.
package dispatch
