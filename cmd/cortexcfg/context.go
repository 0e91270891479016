package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"cortex/internal/config"
	"cortex/internal/logging"
)

type globalFlags struct {
	envFile   string
	noEnvFile bool
	logFormat string
	logFile   string
}

type commandContext struct {
	flags *globalFlags

	// newLoader is replaced in tests to inject an environment.
	newLoader func(flags *globalFlags) *config.Loader

	once     sync.Once
	settings config.Settings
	status   config.FileStatus
	logger   *slog.Logger
	err      error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags, newLoader: defaultLoader}
}

func defaultLoader(flags *globalFlags) *config.Loader {
	loader := &config.Loader{
		Env:      config.ProcessEnvironment(),
		FilePath: strings.TrimSpace(flags.envFile),
	}
	if !flags.noEnvFile {
		loader.Parser = config.DotenvParser{}
	}
	return loader
}

// ensureSettings loads settings once per process and builds the logger from
// them.
func (c *commandContext) ensureSettings() (config.Settings, error) {
	c.once.Do(func() {
		loader := c.newLoader(c.flags)
		settings, status, err := loader.Load()
		if err != nil {
			c.err = err
			return
		}
		logger, err := logging.NewForSettings(settings, c.flags.logFormat, c.flags.logFile)
		if err != nil {
			c.err = err
			return
		}
		c.settings = settings
		c.status = status
		c.logger = logger.With("component", "cortexcfg")
		c.logger.Debug("settings ready",
			slog.String("settings_file", status.Path),
			slog.Bool("settings_file_found", status.Exists),
			slog.Any("injected", status.Applied),
		)
	})
	return c.settings, c.err
}

func (c *commandContext) settingsFile() config.FileStatus {
	return c.status
}

func (c *commandContext) log() *slog.Logger {
	if c.logger == nil {
		return logging.NewNop()
	}
	return c.logger
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
