// Package logging builds the slog loggers used by the Cortex tooling.
//
// It offers a console handler for interactive use and a JSON handler for
// machine consumption. Both route through the same level plumbing, derived
// from the EMOTIV_DEBUG setting, and both mask attributes whose key names a
// secret so credentials never reach a log line.
package logging
