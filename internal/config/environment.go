package config

import (
	"os"
	"sort"
)

// Environment is the variable store settings are read from and the settings
// file is injected into.
type Environment interface {
	LookupEnv(key string) (string, bool)
	Setenv(key, value string) error
	Environ() []string
}

// ProcessEnvironment returns the Environment backed by the running process.
func ProcessEnvironment() Environment {
	return processEnvironment{}
}

type processEnvironment struct{}

func (processEnvironment) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }
func (processEnvironment) Setenv(key, value string) error      { return os.Setenv(key, value) }
func (processEnvironment) Environ() []string                   { return os.Environ() }

// MapEnvironment is an in-memory Environment, mostly useful in tests.
type MapEnvironment map[string]string

// LookupEnv reports the value stored for key.
func (m MapEnvironment) LookupEnv(key string) (string, bool) {
	value, ok := m[key]
	return value, ok
}

// Setenv stores value under key.
func (m MapEnvironment) Setenv(key, value string) error {
	m[key] = value
	return nil
}

// Environ returns the variables in KEY=VALUE form, sorted by key.
func (m MapEnvironment) Environ() []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		out = append(out, key+"="+m[key])
	}
	return out
}
