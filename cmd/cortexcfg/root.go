package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	return buildRootCommand(newCommandContext(&globalFlags{}))
}

func buildRootCommand(ctx *commandContext) *cobra.Command {
	flags := ctx.flags
	rootCmd := &cobra.Command{
		Use:           "cortexcfg",
		Short:         "Inspect and validate Cortex client settings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureSettings()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "Settings file path (default: .env beside the executable)")
	rootCmd.PersistentFlags().BoolVar(&flags.noEnvFile, "no-env-file", false, "Read settings from the environment only")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "console", "Log format: console or json")
	rootCmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "Also append log lines to this file")

	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
