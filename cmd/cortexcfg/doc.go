// Package main hosts the cortexcfg CLI.
//
// The Cobra command tree loads the Cortex client settings once per process,
// prints a redacted diagnostic report, validates credentials and scaffolds
// a settings file. Loading and validation live in internal/config; this
// package only wires flags, output formats and logging around them.
package main
