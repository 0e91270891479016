package config

import (
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Settings is the loaded Cortex client configuration. It is a plain value:
// copies handed to consumers never observe later changes to the environment.
type Settings struct {
	// ClientID is the Cortex App client ID. Required.
	ClientID string `env:"CLIENT_ID"`
	// ClientSecret is the Cortex App client secret. Required.
	ClientSecret string `env:"CLIENT_SECRET"`
	// HeadsetID targets a specific headset, e.g. EPOCX-12345678. Empty
	// selects the first available headset.
	HeadsetID string `env:"HEADSET_ID"`
	// License is the enterprise license key, if any.
	License string `env:"LICENSE"`
	// Debit is the number of sessions debited per run.
	Debit int `env:"DEBIT" envDefault:"10"`
	// Debug enables verbose protocol logging.
	Debug bool `env:"DEBUG"`
	// ExportFolder receives exported CSV / EDF files.
	ExportFolder string `env:"EXPORT_FOLDER"`
}

// Loader reads Settings from an Environment, after injecting an optional
// settings file into it. The zero value reads the process environment and
// skips the settings file.
type Loader struct {
	// Parser reads the settings file. Nil disables file sourcing entirely.
	Parser FileParser
	// Env is the variable store. Nil means the process environment.
	Env Environment
	// FilePath overrides settings file discovery.
	FilePath string
	// HomeDir resolves the user's home directory. Nil means os.UserHomeDir.
	HomeDir func() (string, error)
	// Logger receives debug diagnostics. Nil discards them.
	Logger *slog.Logger
}

// Load reads settings from the process environment, injecting the settings
// file at path (or the default location when path is empty) first.
func Load(path string) (Settings, FileStatus, error) {
	loader := &Loader{
		Parser:   DotenvParser{},
		Env:      ProcessEnvironment(),
		FilePath: path,
	}
	return loader.Load()
}

// Load injects the settings file, then decodes and normalizes Settings.
// Integer coercion failures are returned unchanged from the decoder.
func (l *Loader) Load() (Settings, FileStatus, error) {
	environment := l.environment()
	logger := l.logger()

	status, err := l.applySettingsFile(environment, logger)
	if err != nil {
		return Settings{}, status, err
	}

	var settings Settings
	if err := env.ParseWithOptions(&settings, env.Options{
		Environment: env.ToMap(environment.Environ()),
		Prefix:      EnvPrefix,
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeOf(false): func(value string) (any, error) {
				return ParseFlag(value), nil
			},
			reflect.TypeOf(0): func(value string) (any, error) {
				return strconv.Atoi(strings.TrimSpace(value))
			},
		},
	}); err != nil {
		return Settings{}, status, err
	}

	if err := settings.normalize(l.homeDir()); err != nil {
		return Settings{}, status, err
	}

	logger.Debug("settings loaded",
		slog.String("settings_file", status.Path),
		slog.Bool("settings_file_found", status.Exists),
		slog.Int("settings_file_keys", len(status.Applied)),
		slog.Bool("client_id_set", settings.ClientID != ""),
		slog.Bool("client_secret_set", settings.ClientSecret != ""),
		slog.String("export_folder", settings.ExportFolder),
	)
	return settings, status, nil
}

func (l *Loader) applySettingsFile(environment Environment, logger *slog.Logger) (FileStatus, error) {
	if l.Parser == nil {
		logger.Debug("settings file parsing unavailable; using environment only")
		return FileStatus{}, nil
	}

	path, exists, err := resolveSettingsFile(strings.TrimSpace(l.FilePath), l.homeDir())
	if err != nil {
		return FileStatus{}, err
	}
	status := FileStatus{Path: path, Exists: exists}
	if !exists {
		logger.Debug("settings file not found", slog.String("path", path))
		return status, nil
	}

	values, err := l.Parser.Parse(path)
	if err != nil {
		return status, fmt.Errorf("parse settings file %s: %w", path, err)
	}
	status.Applied, err = injectMissing(environment, values)
	if err != nil {
		return status, err
	}
	logger.Debug("settings file applied",
		slog.String("path", path),
		slog.Int("keys", len(values)),
		slog.Int("injected", len(status.Applied)),
	)
	return status, nil
}

func (l *Loader) environment() Environment {
	if l.Env == nil {
		return ProcessEnvironment()
	}
	return l.Env
}

func (l *Loader) homeDir() func() (string, error) {
	if l.HomeDir == nil {
		return os.UserHomeDir
	}
	return l.HomeDir
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l.Logger
}
