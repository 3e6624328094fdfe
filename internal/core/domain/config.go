package domain

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"
)

// Configuration keys understood by nest.
const (
	KeyApp            = "app"
	KeyVersion        = "version"
	KeyDeps           = "deps"
	KeyDepsPath       = "deps_path"
	KeyBuildPath      = "build_path"
	KeyAppPath        = "app_path"
	KeyAppsPath       = "apps_path"
	KeySrcPaths       = "src_paths"
	KeyLockfile       = "lockfile"
	KeyDefaultTask    = "default_task"
	KeyAliases        = "aliases"
	KeyStartPermanent = "start_permanent"
	KeyEnv            = "env"
)

// PrivateKeys are derived paths that are never taken from a declared configuration.
var PrivateKeys = []string{KeyBuildPath, KeyAppPath}

// ConfigMap maps option names to values.
type ConfigMap map[string]any

// DefaultConfig returns a fresh copy of the default configuration.
func DefaultConfig() ConfigMap {
	return ConfigMap{
		KeyAliases:        map[string]any{},
		KeyDefaultTask:    "run",
		KeyDeps:           []any{},
		KeyDepsPath:       "deps",
		KeySrcPaths:       []any{"lib"},
		KeyLockfile:       "nest.lock",
		KeyStartPermanent: false,
	}
}

// IsPrivateKey reports whether key is recomputed rather than declared.
func IsPrivateKey(key string) bool {
	return slices.Contains(PrivateKeys, key)
}

// Clone returns a deep copy of the map. Nested maps and slices are copied as well.
func (c ConfigMap) Clone() ConfigMap {
	if c == nil {
		return nil
	}
	out := make(ConfigMap, len(c))
	for k, v := range c {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case ConfigMap:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return slices.Clone(val)
	default:
		return v
	}
}

// Has reports whether key is set to a non-nil value.
func (c ConfigMap) Has(key string) bool {
	v, ok := c[key]
	return ok && v != nil
}

// String returns the value under key as a string.
// The second result is false when the key is absent, nil or not a scalar.
func (c ConfigMap) String(key string) (string, bool) {
	switch v := c[key].(type) {
	case string:
		return v, true
	case ProjectID:
		return string(v), true
	case bool:
		return strconv.FormatBool(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int:
		return strconv.Itoa(v), true
	default:
		return "", false
	}
}

// Strings returns the value under key as a string slice.
// Non-string elements are formatted with fmt.
func (c ConfigMap) Strings(key string) []string {
	switch v := c[key].(type) {
	case []string:
		return slices.Clone(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		return []string{v}
	default:
		return nil
	}
}

// Map returns the value under key as a nested map.
func (c ConfigMap) Map(key string) (map[string]any, bool) {
	switch v := c[key].(type) {
	case map[string]any:
		return v, true
	case ConfigMap:
		return v, true
	default:
		return nil, false
	}
}

// Keys returns the keys of the map in sorted order.
func (c ConfigMap) Keys() []string {
	return slices.Sorted(maps.Keys(c))
}

// Digest returns a deterministic hash of the configuration.
// Two maps with the same keys and values yield the same digest regardless of insertion order.
func (c ConfigMap) Digest() string {
	data, err := yaml.Marshal(map[string]any(c))
	if err != nil {
		data = []byte(fmt.Sprint(map[string]any(c)))
	}
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}
