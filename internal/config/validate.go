package config

import (
	"fmt"
	"os"
	"strings"
)

// ConfigurationError reports mandatory settings that are missing.
type ConfigurationError struct {
	// Missing holds the environment variable names that were empty.
	Missing []string
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("missing Cortex credentials: ")
	b.WriteString(strings.Join(e.Missing, ", "))
	b.WriteString("\n  Set them in the environment or in the settings file (create one with 'cortexcfg config init').")
	b.WriteString("\n  See: ")
	b.WriteString(setupInstructionsURL)
	return b.String()
}

// Validate ensures the mandatory credentials are present and the export
// folder exists. Every missing credential is reported in one
// *ConfigurationError. Errors creating the export folder are returned as-is.
func (s Settings) Validate() error {
	var missing []string
	if s.ClientID == "" {
		missing = append(missing, EnvClientID)
	}
	if s.ClientSecret == "" {
		missing = append(missing, EnvClientSecret)
	}
	if len(missing) > 0 {
		return &ConfigurationError{Missing: missing}
	}
	return s.EnsureDirectories()
}

// EnsureDirectories creates the export folder and any missing parents.
func (s Settings) EnsureDirectories() error {
	if s.ExportFolder == "" {
		return fmt.Errorf("%s is empty", EnvExportFolder)
	}
	return os.MkdirAll(s.ExportFolder, 0o755)
}
