package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader reads prefixed environment variables.
type EnvLoader struct {
	prefix string // Environment variable prefix (e.g., "CANVASTERM_")
	lookup func(string) (string, bool)
}

// NewEnvLoader creates a loader reading the process environment.
// The prefix should include the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix, lookup: os.LookupEnv}
}

// NewEnvLoaderWithLookup creates a loader with a custom lookup, for tests.
func NewEnvLoaderWithLookup(prefix string, lookup func(string) (string, bool)) *EnvLoader {
	return &EnvLoader{prefix: prefix, lookup: lookup}
}

// Load returns the value of every variable in paths that is set, keyed by
// its config path. Variable names derive from paths: "log.level" with
// prefix "CANVASTERM_" reads CANVASTERM_LOG_LEVEL.
// Note: Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load(paths []string) map[string]string {
	out := make(map[string]string)
	for _, path := range paths {
		if val, ok := l.lookup(l.VarName(path)); ok {
			out[path] = val
		}
	}
	return out
}

// VarName converts a config path to its environment variable name.
func (l *EnvLoader) VarName(path string) string {
	name := strings.NewReplacer(".", "_", "-", "_").Replace(path)
	return l.prefix + strings.ToUpper(name)
}

// ParseBool accepts the usual spellings of true and false.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return strconv.ParseBool(s)
}

// ParseInts parses a comma separated list such as "50,25,25".
func ParseInts(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
