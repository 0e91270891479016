package config_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cortex/internal/config"
	"cortex/internal/testsupport"
)

func stubHome(dir string) func() (string, error) {
	return func() (string, error) { return dir, nil }
}

func TestLoadAppliesDefaults(t *testing.T) {
	home := t.TempDir()
	loader := &config.Loader{Env: config.MapEnvironment{}, HomeDir: stubHome(home)}

	settings, status, err := loader.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if status.Exists {
		t.Fatal("expected no settings file without a parser")
	}
	if settings.ClientID != "" || settings.ClientSecret != "" {
		t.Fatalf("expected empty credentials, got %q / %q", settings.ClientID, settings.ClientSecret)
	}
	if settings.HeadsetID != "" {
		t.Fatalf("expected headset auto-select, got %q", settings.HeadsetID)
	}
	if settings.Debit != 10 {
		t.Fatalf("expected default debit 10, got %d", settings.Debit)
	}
	if settings.Debug {
		t.Fatal("expected debug disabled by default")
	}
	want := filepath.Join(home, "cortex_exports")
	if settings.ExportFolder != want {
		t.Fatalf("unexpected export folder: got %q want %q", settings.ExportFolder, want)
	}
}

func TestLoadReadsPrefixedVariables(t *testing.T) {
	env := config.MapEnvironment{
		config.EnvClientID:     "id-123",
		config.EnvClientSecret: "s3cret",
		config.EnvHeadsetID:    "EPOCX-12345678",
		config.EnvLicense:      "lic",
		config.EnvDebit:        "25",
		config.EnvDebug:        "Yes",
		config.EnvExportFolder: "/data/exports/",
		"CLIENT_ID":            "unprefixed",
	}
	loader := &config.Loader{Env: env, HomeDir: stubHome(t.TempDir())}

	settings, _, err := loader.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := config.Settings{
		ClientID:     "id-123",
		ClientSecret: "s3cret",
		HeadsetID:    "EPOCX-12345678",
		License:      "lic",
		Debit:        25,
		Debug:        true,
		ExportFolder: "/data/exports",
	}
	if settings != want {
		t.Fatalf("unexpected settings:\n got %+v\nwant %+v", settings, want)
	}
}

func TestLoadDebitCoercion(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		set     bool
		want    int
		wantErr bool
	}{
		{name: "absent", want: 10},
		{name: "empty", value: "", set: true, want: 10},
		{name: "numeric", value: "25", set: true, want: 25},
		{name: "leading space", value: " 25", set: true, want: 25},
		{name: "trailing space", value: "25 ", set: true, want: 25},
		{name: "negative", value: "-3", set: true, want: -3},
		{name: "non-numeric", value: "ten", set: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := config.MapEnvironment{}
			if tt.set {
				env[config.EnvDebit] = tt.value
			}
			loader := &config.Loader{Env: env, HomeDir: stubHome(t.TempDir())}
			settings, _, err := loader.Load()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for debit %q", tt.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if settings.Debit != tt.want {
				t.Fatalf("debit = %d, want %d", settings.Debit, tt.want)
			}
		})
	}
}

func TestLoadDebugCoercion(t *testing.T) {
	tests := map[string]bool{
		"TRUE":   true,
		"Yes":    true,
		"1":      true,
		"false":  false,
		"":       false,
		"no":     false,
		"random": false,
	}

	for value, want := range tests {
		t.Run("value="+value, func(t *testing.T) {
			env := config.MapEnvironment{config.EnvDebug: value}
			loader := &config.Loader{Env: env, HomeDir: stubHome(t.TempDir())}
			settings, _, err := loader.Load()
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if settings.Debug != want {
				t.Fatalf("debug for %q = %v, want %v", value, settings.Debug, want)
			}
			if config.ParseFlag(value) != want {
				t.Fatalf("ParseFlag(%q) = %v, want %v", value, !want, want)
			}
		})
	}
}

func TestSettingsFileDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteSettingsFile(t, dir, ".env", map[string]string{
		config.EnvClientID:     "from-file",
		config.EnvClientSecret: "file-secret",
		config.EnvDebit:        "42",
	})
	env := config.MapEnvironment{config.EnvClientID: "from-shell"}
	loader := &config.Loader{
		Parser:   config.DotenvParser{},
		Env:      env,
		FilePath: path,
		HomeDir:  stubHome(dir),
	}

	settings, status, err := loader.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if settings.ClientID != "from-shell" {
		t.Fatalf("expected shell value to win, got %q", settings.ClientID)
	}
	if settings.ClientSecret != "file-secret" {
		t.Fatalf("expected secret from file, got %q", settings.ClientSecret)
	}
	if settings.Debit != 42 {
		t.Fatalf("expected debit from file, got %d", settings.Debit)
	}
	if !status.Exists || status.Path != path {
		t.Fatalf("unexpected status: %+v", status)
	}
	wantApplied := []string{config.EnvClientSecret, config.EnvDebit}
	if strings.Join(status.Applied, ",") != strings.Join(wantApplied, ",") {
		t.Fatalf("applied = %v, want %v", status.Applied, wantApplied)
	}
	if env[config.EnvClientID] != "from-shell" {
		t.Fatalf("environment value was overwritten: %q", env[config.EnvClientID])
	}
	if env[config.EnvClientSecret] != "file-secret" {
		t.Fatalf("expected secret injected into environment, got %q", env[config.EnvClientSecret])
	}
}

func TestEmptyEnvironmentValueStillBlocksSettingsFile(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteSettingsFile(t, dir, ".env", map[string]string{
		config.EnvHeadsetID: "EPOCX-FILE",
	})
	env := config.MapEnvironment{config.EnvHeadsetID: ""}
	loader := &config.Loader{Parser: config.DotenvParser{}, Env: env, FilePath: path, HomeDir: stubHome(dir)}

	settings, status, err := loader.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if settings.HeadsetID != "" {
		t.Fatalf("expected pre-set empty variable to be kept, got %q", settings.HeadsetID)
	}
	if len(status.Applied) != 0 {
		t.Fatalf("expected nothing injected, got %v", status.Applied)
	}
}

func TestNilParserSkipsSettingsFile(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteSettingsFile(t, dir, ".env", map[string]string{
		config.EnvClientID: "from-file",
	})
	env := config.MapEnvironment{}
	loader := &config.Loader{Env: env, FilePath: path, HomeDir: stubHome(dir)}

	settings, status, err := loader.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if settings.ClientID != "" {
		t.Fatalf("expected settings file to be ignored, got %q", settings.ClientID)
	}
	if status.Exists || len(env) != 0 {
		t.Fatalf("expected no file sourcing, status %+v env %v", status, env)
	}
}

func TestMissingSettingsFileIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "absent.env")
	loader := &config.Loader{
		Parser:   config.DotenvParser{},
		Env:      config.MapEnvironment{},
		FilePath: path,
		HomeDir:  stubHome(dir),
	}

	_, status, err := loader.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if status.Exists {
		t.Fatal("expected Exists to be false")
	}
	if status.Path != path {
		t.Fatalf("unexpected resolved path: got %q want %q", status.Path, path)
	}
}

func TestLoadDiscoversSettingsFileInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteSettingsFile(t, dir, ".env", map[string]string{
		config.EnvClientID:  "from-cwd",
		config.EnvHeadsetID: "EPOCX-CWD",
	})
	t.Chdir(dir)

	env := config.MapEnvironment{}
	loader := &config.Loader{Parser: config.DotenvParser{}, Env: env, HomeDir: stubHome(dir)}

	settings, status, err := loader.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	wantPath, err := filepath.Abs(".env")
	if err != nil {
		t.Fatalf("resolve .env: %v", err)
	}
	if !status.Exists || status.Path != wantPath {
		t.Fatalf("unexpected status: %+v, want path %q", status, wantPath)
	}
	wantApplied := []string{config.EnvClientID, config.EnvHeadsetID}
	if strings.Join(status.Applied, ",") != strings.Join(wantApplied, ",") {
		t.Fatalf("applied = %v, want %v", status.Applied, wantApplied)
	}
	if settings.ClientID != "from-cwd" || settings.HeadsetID != "EPOCX-CWD" {
		t.Fatalf("unexpected settings %+v", settings)
	}
}

func TestLoadInjectsIntoProcessEnvironment(t *testing.T) {
	testsupport.IsolateEnvironment(t)
	t.Setenv(config.EnvClientID, "from-shell")

	dir := t.TempDir()
	path := testsupport.WriteSettingsFile(t, dir, "cortex.env", map[string]string{
		config.EnvClientID:     "from-file",
		config.EnvClientSecret: "file-secret",
	})

	settings, status, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !status.Exists {
		t.Fatal("expected settings file to be found")
	}
	if settings.ClientID != "from-shell" {
		t.Fatalf("expected shell value to win, got %q", settings.ClientID)
	}
	if got := os.Getenv(config.EnvClientSecret); got != "file-secret" {
		t.Fatalf("expected secret injected into process environment, got %q", got)
	}
}

func TestExportFolderExpandsHome(t *testing.T) {
	home := t.TempDir()
	env := config.MapEnvironment{config.EnvExportFolder: "~/cortex/out"}
	loader := &config.Loader{Env: env, HomeDir: stubHome(home)}

	settings, _, err := loader.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := filepath.Join(home, "cortex", "out")
	if settings.ExportFolder != want {
		t.Fatalf("export folder = %q, want %q", settings.ExportFolder, want)
	}
}

func TestValidateReportsEveryMissingCredential(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		secret   string
		wantKeys []string
	}{
		{name: "both missing", wantKeys: []string{config.EnvClientID, config.EnvClientSecret}},
		{name: "id missing", secret: "s", wantKeys: []string{config.EnvClientID}},
		{name: "secret missing", id: "i", wantKeys: []string{config.EnvClientSecret}},
		{name: "whitespace id is present", id: "   ", wantKeys: []string{config.EnvClientSecret}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := testsupport.NewSettings(t, testsupport.WithCredentials(tt.id, tt.secret))

			err := settings.Validate()
			var cfgErr *config.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigurationError, got %v", err)
			}
			if strings.Join(cfgErr.Missing, ",") != strings.Join(tt.wantKeys, ",") {
				t.Fatalf("missing = %v, want %v", cfgErr.Missing, tt.wantKeys)
			}
			for _, key := range tt.wantKeys {
				if !strings.Contains(err.Error(), key) {
					t.Fatalf("error message %q does not name %s", err.Error(), key)
				}
			}
			if !strings.Contains(err.Error(), "https://") {
				t.Fatalf("expected setup instructions in %q", err.Error())
			}
			if _, statErr := os.Stat(settings.ExportFolder); !errors.Is(statErr, fs.ErrNotExist) {
				t.Fatalf("export folder should not be created on failure: %v", statErr)
			}
		})
	}
}

func TestValidateAcceptsWhitespaceCredentials(t *testing.T) {
	settings := testsupport.NewSettings(t, testsupport.WithCredentials("   ", " "))

	if err := settings.Validate(); err != nil {
		t.Fatalf("Validate returned error for non-empty credentials: %v", err)
	}
	if got := settings.Redacted()[0].Value; got != "   " {
		t.Fatalf("report shows client id %q, want it unchanged", got)
	}
}

func TestValidateCreatesExportFolderIdempotently(t *testing.T) {
	settings := testsupport.NewSettings(t, testsupport.WithExportFolder(filepath.Join("a", "b", "exports")))

	for i := 0; i < 2; i++ {
		if err := settings.Validate(); err != nil {
			t.Fatalf("Validate call %d returned error: %v", i+1, err)
		}
	}
	info, err := os.Stat(settings.ExportFolder)
	if err != nil {
		t.Fatalf("expected export folder to exist: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected %q to be a directory", settings.ExportFolder)
	}
}

func TestValidateReturnsFilesystemErrors(t *testing.T) {
	settings := testsupport.NewSettings(t)
	blocker := filepath.Join(filepath.Dir(settings.ExportFolder), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	settings.ExportFolder = filepath.Join(blocker, "exports")

	err := settings.Validate()
	if err == nil {
		t.Fatal("expected error when a parent is a regular file")
	}
	var cfgErr *config.ConfigurationError
	if errors.As(err, &cfgErr) {
		t.Fatalf("filesystem failure reported as configuration error: %v", err)
	}
	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) {
		t.Fatalf("expected *fs.PathError, got %T: %v", err, err)
	}
}

func TestRedactedMasksSecret(t *testing.T) {
	settings := testsupport.NewSettings(t, testsupport.WithCredentials("client", "hunter2-ü"))

	fields := settings.Redacted()
	if len(fields) != 7 {
		t.Fatalf("expected 7 fields, got %d", len(fields))
	}
	values := map[string]string{}
	for _, field := range fields {
		if strings.Contains(field.Value, "hunter2") {
			t.Fatalf("report leaked the secret in %s", field.Name)
		}
		values[field.Name] = field.Value
	}
	if values["CLIENT_SECRET"] != strings.Repeat("*", 9) {
		t.Fatalf("unexpected mask %q", values["CLIENT_SECRET"])
	}
	if values["CLIENT_ID"] != "client" {
		t.Fatalf("unexpected client id %q", values["CLIENT_ID"])
	}
	if values["HEADSET_ID"] != "(auto-detect)" || values["LICENSE"] != "(none)" {
		t.Fatalf("unexpected placeholders: %v", values)
	}
}

func TestRedactedPlaceholdersForMissingCredentials(t *testing.T) {
	fields := config.Settings{}.Redacted()
	if fields[0].Value != "(not set)" || fields[1].Value != "(not set)" {
		t.Fatalf("unexpected placeholders: %+v", fields[:2])
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ".env")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	values, err := config.DotenvParser{}.Parse(path)
	if err != nil {
		t.Fatalf("parse sample: %v", err)
	}
	for _, key := range []string{config.EnvClientID, config.EnvClientSecret, config.EnvDebit, config.EnvExportFolder} {
		if _, ok := values[key]; !ok {
			t.Fatalf("sample settings missing %s", key)
		}
	}
	if values[config.EnvDebit] != "10" {
		t.Fatalf("unexpected sample debit %q", values[config.EnvDebit])
	}
}
