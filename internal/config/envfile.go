package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
)

// FileParser reads a KEY=VALUE settings file.
type FileParser interface {
	Parse(path string) (map[string]string, error)
}

// DotenvParser parses settings files with dotenv syntax: comments, quoting
// and "export" prefixes are accepted.
type DotenvParser struct{}

// Parse reads the file at path.
func (DotenvParser) Parse(path string) (map[string]string, error) {
	return godotenv.Read(path)
}

// FileStatus describes the settings file consulted during Load.
type FileStatus struct {
	// Path is the resolved settings file location, even when it is absent.
	Path string
	// Exists reports whether a file was found at Path.
	Exists bool
	// Applied lists the keys injected into the environment, sorted.
	Applied []string
}

// DefaultSettingsFilePath returns the .env location beside the running
// executable.
func DefaultSettingsFilePath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), SettingsFileName), nil
}

func resolveSettingsFile(path string, homeDir func() (string, error)) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path, homeDir)
		if err != nil {
			return "", false, err
		}
		exists, err := fileExists(expanded)
		if err != nil {
			return "", false, err
		}
		return expanded, exists, nil
	}

	candidates := make([]string, 0, 2)
	if beside, err := DefaultSettingsFilePath(); err == nil {
		candidates = append(candidates, beside)
	}
	if projectPath, err := filepath.Abs(SettingsFileName); err == nil {
		candidates = append(candidates, projectPath)
	}
	if len(candidates) == 0 {
		return "", false, errors.New("no settings file location could be resolved")
	}

	for _, candidate := range candidates {
		exists, err := fileExists(candidate)
		if err != nil {
			return "", false, err
		}
		if exists {
			return candidate, true, nil
		}
	}
	return candidates[0], false, nil
}

func fileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat settings file: %w", err)
	}
	return !info.IsDir(), nil
}

// injectMissing copies values into env for keys env does not already define.
func injectMissing(env Environment, values map[string]string) ([]string, error) {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	applied := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, present := env.LookupEnv(key); present {
			continue
		}
		if err := env.Setenv(key, values[key]); err != nil {
			return applied, fmt.Errorf("inject %s: %w", key, err)
		}
		applied = append(applied, key)
	}
	return applied, nil
}
