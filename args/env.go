package args

import (
	"os"
	"strings"
)

// Environment is a read-only view of environment variables queried by name.
type Environment interface {
	Lookup(name string) (string, bool)
}

// EnvMap is an in-memory Environment.
type EnvMap map[string]string

// Lookup implements Environment.
func (m EnvMap) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// SnapshotEnvironment copies the process environment. If prefix is given only
// variables starting with it (case-sensitive) are captured.
func SnapshotEnvironment(prefix ...string) EnvMap {
	p := ""
	if len(prefix) > 0 {
		p = prefix[0]
	}

	out := EnvMap{}
	for _, kv := range os.Environ() {
		if p != "" && !strings.HasPrefix(kv, p) {
			continue
		}
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		out[parts[0]] = parts[1]
	}
	return out
}

// OSEnvironment queries the live process environment on every lookup.
func OSEnvironment() Environment {
	return osEnv{}
}

type osEnv struct{}

func (osEnv) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// lookupEnv returns the value of name when it is set and non-empty.
func lookupEnv(env Environment, name string) (string, bool) {
	if env == nil || name == "" {
		return "", false
	}
	v, ok := env.Lookup(name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
