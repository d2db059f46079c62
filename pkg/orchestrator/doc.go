// Package orchestrator wires the loader → parser → extractor → renderer
// pipeline behind a single entry point while keeping every stage injectable.
package orchestrator
