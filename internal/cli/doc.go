// Package cli implements the commands that run in-process: init, add, list,
// publish and login. Everything else is handed to the core binary by the
// dispatcher, which calls RunLocal for these five.
package cli
