package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed sample.env
var sampleSettings string

// SampleSettings returns the annotated settings file template.
func SampleSettings() string {
	return sampleSettings
}

// CreateSample writes the settings file template to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings directory: %w", err)
		}
	}
	// The file ends up holding credentials.
	if err := os.WriteFile(path, []byte(sampleSettings), 0o600); err != nil {
		return fmt.Errorf("write sample settings: %w", err)
	}
	return nil
}
