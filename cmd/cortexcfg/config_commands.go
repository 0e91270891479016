package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cortex/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

// settingsReport is the structured form of `config show`.
type settingsReport struct {
	SettingsFile string         `json:"settings_file,omitempty" toml:"settings_file,omitempty"`
	Settings     []config.Field `json:"settings" toml:"settings"`
	Valid        bool           `json:"valid" toml:"valid"`
	Error        string         `json:"error,omitempty" toml:"error,omitempty"`
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the redacted settings and the validation result",
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			switch format {
			case "", "table", "json", "toml":
			default:
				return fmt.Errorf("unsupported format %q (use table, json or toml)", format)
			}

			settings, err := ctx.ensureSettings()
			if err != nil {
				return err
			}

			report := settingsReport{Settings: settings.Redacted()}
			if status := ctx.settingsFile(); status.Exists {
				report.SettingsFile = status.Path
			}

			validateErr := settings.Validate()
			var cfgErr *config.ConfigurationError
			switch {
			case validateErr == nil:
				report.Valid = true
			case errors.As(validateErr, &cfgErr):
				report.Error = cfgErr.Error()
				ctx.log().Debug("settings incomplete", "missing", cfgErr.Missing)
			default:
				return fmt.Errorf("ensure export folder: %w", validateErr)
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				return writeJSON(cmd, report)
			case "toml":
				return writeTOML(cmd, report)
			}

			fmt.Fprintln(out, "Cortex configuration")
			if report.SettingsFile != "" {
				fmt.Fprintf(out, "Settings file: %s\n", report.SettingsFile)
			}
			rows := make([][]string, 0, len(report.Settings))
			for _, field := range report.Settings {
				rows = append(rows, []string{field.Name, field.Value})
			}
			fmt.Fprintln(out, renderTable([]string{"Setting", "Value"}, rows))
			fmt.Fprintln(out)
			if report.Valid {
				fmt.Fprintln(out, statusLine(out, true, "Configuration looks good!"))
			} else {
				fmt.Fprintln(out, statusLine(out, false, report.Error))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json or toml")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate credentials and create the export folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.ensureSettings()
			if err != nil {
				return err
			}
			if err := settings.Validate(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			status := ctx.settingsFile()
			switch {
			case status.Exists:
				fmt.Fprintf(out, "Settings file: %s (%d keys injected)\n", status.Path, len(status.Applied))
			case status.Path != "":
				fmt.Fprintf(out, "Settings file %s not found; environment only\n", status.Path)
			default:
				fmt.Fprintln(out, "Settings file disabled; environment only")
			}
			fmt.Fprintf(out, "Export folder: %s\n", settings.ExportFolder)
			fmt.Fprintln(out, "Configuration valid")
			ctx.log().Info("configuration valid", "export_folder", settings.ExportFolder)
			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample settings file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultSettingsFilePath()
				if err != nil {
					return fmt.Errorf("determine default settings path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target, os.UserHomeDir)
				if err != nil {
					return fmt.Errorf("resolve settings path: %w", err)
				}
				target = expanded
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("settings file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check settings path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample settings to %s\n", target)
			fmt.Fprintf(out, "Fill in %s and %s before running any Cortex client.\n", config.EnvClientID, config.EnvClientSecret)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the settings file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing settings file")
	return cmd
}
