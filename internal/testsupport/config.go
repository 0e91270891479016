package testsupport

import (
	"path/filepath"
	"testing"

	"cortex/internal/config"
)

// SettingsOption allows callers to customize the generated test settings.
type SettingsOption func(*settingsBuilder)

type settingsBuilder struct {
	t        testing.TB
	baseDir  string
	settings *config.Settings
}

// NewSettings produces valid settings whose export folder lives under a
// per-test temp directory. It applies any provided options.
func NewSettings(t testing.TB, opts ...SettingsOption) config.Settings {
	t.Helper()

	base := t.TempDir()
	settings := config.Default()
	settings.ClientID = "test-client"
	settings.ClientSecret = "test-secret"
	settings.ExportFolder = filepath.Join(base, "exports")

	builder := &settingsBuilder{
		t:        t,
		baseDir:  base,
		settings: &settings,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return *builder.settings
}

// WithCredentials overrides the client ID and secret.
func WithCredentials(clientID, clientSecret string) SettingsOption {
	return func(b *settingsBuilder) {
		b.settings.ClientID = clientID
		b.settings.ClientSecret = clientSecret
	}
}

// WithExportFolder places the export folder at name below the test's base
// directory.
func WithExportFolder(name string) SettingsOption {
	return func(b *settingsBuilder) {
		b.settings.ExportFolder = filepath.Join(b.baseDir, name)
	}
}

// IsolateEnvironment clears every EMOTIV_ variable for the duration of the
// test and points HOME at a fresh temp directory, which it returns.
func IsolateEnvironment(t *testing.T) string {
	t.Helper()

	for _, key := range []string{
		config.EnvClientID,
		config.EnvClientSecret,
		config.EnvHeadsetID,
		config.EnvLicense,
		config.EnvDebit,
		config.EnvDebug,
		config.EnvExportFolder,
	} {
		UnsetEnv(t, key)
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}
