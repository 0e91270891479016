package testsupport

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// WriteSettingsFile writes values as KEY=VALUE lines to dir/name and returns
// the file path.
func WriteSettingsFile(t testing.TB, dir, name string, values map[string]string) string {
	t.Helper()

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("# generated by testsupport\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(values[key])
		b.WriteByte('\n')
	}

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// UnsetEnv removes key from the process environment for the duration of the
// test, restoring any previous value afterwards. Keys the loader injects from a
// settings file can be registered here so they do not leak between tests.
func UnsetEnv(t *testing.T, key string) {
	t.Helper()

	// t.Setenv registers the restore and marks the test as environment-mutating.
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unset %s: %v", key, err)
	}
}
