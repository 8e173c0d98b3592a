// Package pipeline drives the configure/probe/codegen sequence that
// regenerates the checked-in build surface for the vendored codec.
//
// Ownership boundary:
// - temporary build workspace lifecycle
// - per-platform configure, probe, and dispatch-header generation
// - config header lifting and assembly-constant derivation
// - attribution record update
package pipeline
