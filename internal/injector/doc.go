// Package injector inserts import, route and schema statements into
// generated project files at sentinel marker comments. Every operation is
// idempotent: re-running it with the same statements leaves the file
// byte-identical.
package injector
