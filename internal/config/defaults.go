package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvPrefix namespaces every variable the loader reads.
	EnvPrefix = "EMOTIV_"

	// SettingsFileName is the settings file looked up beside the executable.
	SettingsFileName = ".env"

	defaultDebit            = 10
	defaultExportFolderName = "cortex_exports"
	setupInstructionsURL    = "https://emotiv.gitbook.io/cortex-api#create-a-cortex-app"
)

// Environment variable names, one per setting.
const (
	EnvClientID     = EnvPrefix + "CLIENT_ID"
	EnvClientSecret = EnvPrefix + "CLIENT_SECRET"
	EnvHeadsetID    = EnvPrefix + "HEADSET_ID"
	EnvLicense      = EnvPrefix + "LICENSE"
	EnvDebit        = EnvPrefix + "DEBIT"
	EnvDebug        = EnvPrefix + "DEBUG"
	EnvExportFolder = EnvPrefix + "EXPORT_FOLDER"
)

// Default returns Settings populated with repository defaults. The export
// folder is resolved against the current user's home directory.
func Default() Settings {
	return Settings{
		Debit:        defaultDebit,
		ExportFolder: defaultExportFolder(os.UserHomeDir),
	}
}

func defaultExportFolder(homeDir func() (string, error)) string {
	home, err := homeDir()
	if err != nil || home == "" {
		return defaultExportFolderName
	}
	return filepath.Join(home, defaultExportFolderName)
}
