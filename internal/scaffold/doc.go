// Package scaffold generates new Aerostack projects from embedded templates.
// It powers "aerostack init" and renders the per-runtime adapters written by
// "aerostack add". Templates use {{UPPER_SNAKE_CASE}} placeholders; unmapped
// placeholders are left in the output so template bugs stay visible.
package scaffold
