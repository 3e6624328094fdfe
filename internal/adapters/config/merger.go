// Package config resolves layered project configuration and loads the settings of nest itself.
package config

import (
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
	"go.trai.ch/nest/internal/core/domain"
	"go.trai.ch/zerr"
)

// Merger combines the default configuration, a declared configuration and
// environment-specific overrides into one resolved configuration.
type Merger struct{}

// NewMerger creates a new Merger.
func NewMerger() *Merger {
	return &Merger{}
}

// Resolve returns the configuration a frame stores for declared under env.
//
// Layers are applied in order: defaults, declared, declared env[env], override.
// Private keys are removed before override is applied, so override is the only
// way for derived paths to reach the result. Top-level keys are replaced, never
// deep-merged. The inputs are not modified.
func (m *Merger) Resolve(declared domain.ConfigMap, env string, override domain.ConfigMap) (domain.ConfigMap, error) {
	k := koanf.New(".")

	if err := overlay(k, domain.DefaultConfig()); err != nil {
		return nil, zerr.Wrap(err, "failed to load default configuration")
	}
	if err := overlay(k, declared); err != nil {
		return nil, zerr.Wrap(err, "failed to load declared configuration")
	}

	envOverrides, hasEnv := envSection(k.Get(domain.KeyEnv), env)
	k.Delete(domain.KeyEnv)
	if hasEnv {
		if err := overlay(k, envOverrides); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to load environment configuration"), "env", env)
		}
	}

	for _, key := range domain.PrivateKeys {
		k.Delete(key)
	}

	if err := overlay(k, override); err != nil {
		return nil, zerr.Wrap(err, "failed to load override configuration")
	}

	return domain.ConfigMap(k.Raw()), nil
}

// overlay loads layer on top of k, replacing top-level keys.
func overlay(k *koanf.Koanf, layer domain.ConfigMap) error {
	if len(layer) == 0 {
		return nil
	}
	return k.Load(confmap.Provider(layer, ""), nil, koanf.WithMergeFunc(replaceTopLevel))
}

func replaceTopLevel(src, dest map[string]any) error {
	for key, value := range src {
		dest[key] = value
	}
	return nil
}

// envSection extracts the overrides declared for env from the value of the env key.
func envSection(raw any, env string) (domain.ConfigMap, bool) {
	if env == "" {
		return nil, false
	}
	section, ok := asMap(raw)
	if !ok {
		return nil, false
	}
	overrides, ok := asMap(section[env])
	if !ok {
		return nil, false
	}
	return overrides, true
}

func asMap(v any) (domain.ConfigMap, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case domain.ConfigMap:
		return m, true
	default:
		return nil, false
	}
}
