// Package manifest owns source-list handling for the build pipeline.
//
// Ownership boundary:
// - flat source manifest parsing
// - extension filtering and ISA-suffix partitioning
// - duplicate-basename guard
// - .gni source-list emission
package manifest
