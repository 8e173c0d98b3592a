// Package tools provides reusable runtime helpers shared by pipeline steps.
//
// Ownership boundary:
// - external command execution helpers
// - command result shape (stdout, stderr, exit code)
package tools
