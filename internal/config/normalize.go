package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ParseFlag reports whether value spells an enabled flag: "1", "true" or
// "yes", case-insensitively. Everything else, including "", is false.
func ParseFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func (s *Settings) normalize(homeDir func() (string, error)) error {
	s.ExportFolder = strings.TrimSpace(s.ExportFolder)
	if s.ExportFolder == "" {
		s.ExportFolder = defaultExportFolder(homeDir)
		return nil
	}
	expanded, err := expandPath(s.ExportFolder, homeDir)
	if err != nil {
		return fmt.Errorf("%s: %w", EnvExportFolder, err)
	}
	s.ExportFolder = expanded
	return nil
}

func expandPath(pathValue string, homeDir func() (string, error)) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		if pathValue == "~" || pathValue[1] == '/' || pathValue[1] == '\\' {
			home, err := homeDir()
			if err != nil {
				return "", fmt.Errorf("resolve home directory: %w", err)
			}
			pathValue = filepath.Join(home, pathValue[1:])
		}
	}
	return filepath.Clean(pathValue), nil
}

// ExpandPath applies the loader's home-directory expansion rules.
func ExpandPath(pathValue string, homeDir func() (string, error)) (string, error) {
	return expandPath(pathValue, homeDir)
}
