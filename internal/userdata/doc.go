// Package userdata resolves the per-user paths the CLI reads and writes:
// the ~/.aerostack root, the auth config file, and the install directory of
// the cached core binary (overridable with AEROSTACK_INSTALL_DIR).
package userdata
