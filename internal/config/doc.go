// Package config loads and validates the Cortex client settings.
//
// Settings come from EMOTIV_-prefixed environment variables. An optional
// dotenv-style settings file (by default a .env beside the executable) is
// injected into the environment first, but never overrides a variable the
// shell or CI already exported. Defaults fill anything absent or empty.
//
// Load once at program start and pass the resulting Settings value to every
// consumer. Call Settings.Validate before talking to the Cortex API so missing
// credentials surface as a single ConfigurationError listing all of them.
package config
