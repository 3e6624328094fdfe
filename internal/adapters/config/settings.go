package config

import (
	"errors"
	"io/fs"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"go.trai.ch/nest/internal/core/domain"
	"go.trai.ch/zerr"
)

// EnvPrefix is the prefix of environment variables read into Settings.
const EnvPrefix = "NEST_"

// Log formats accepted by Settings.LogFormat.
const (
	LogFormatAuto   = "auto"
	LogFormatPretty = "pretty"
	LogFormatJSON   = "json"
)

// Settings holds the options of nest itself.
type Settings struct {
	// Env is the build environment name used to select env-specific overrides.
	Env string `koanf:"env" validate:"omitempty,envname"`
	// Dir is the directory the command runs in. Empty means the working directory.
	Dir       string `koanf:"dir" validate:"omitempty,dir"`
	LogFormat string `koanf:"log_format" validate:"oneof=auto pretty json"`
	Verbose   bool   `koanf:"verbose"`
}

var envNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

var settingsValidate = newSettingsValidator()

func newSettingsValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return strings.SplitN(field.Tag.Get("koanf"), ",", 2)[0]
	})
	mustRegister(v, "envname", func(fl validator.FieldLevel) bool {
		return envNamePattern.MatchString(fl.Field().String())
	})
	return v
}

// mustRegister registers a custom validation tag and panics if the tag is rejected.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("config: registering validation " + tag + ": " + err.Error())
	}
}

func settingsDefaults() map[string]any {
	return map[string]any{
		"env":        domain.DefaultEnv,
		"dir":        "",
		"log_format": LogFormatAuto,
		"verbose":    false,
	}
}

// LoadSettings reads Settings from, in increasing precedence: built-in defaults,
// NEST_* entries of the dotenv file at dotenvPath, NEST_* environment variables
// and flags explicitly set in flags. A missing dotenv file is not an error.
func LoadSettings(flags *pflag.FlagSet, dotenvPath string) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(settingsDefaults(), "."), nil); err != nil {
		return nil, zerr.Wrap(err, "failed to load default settings")
	}

	if dotenvPath != "" {
		values, err := godotenv.Read(dotenvPath)
		switch {
		case err == nil:
			if err := k.Load(confmap.Provider(dotenvSettings(values), "."), nil); err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to load dotenv settings"), "path", dotenvPath)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, zerr.With(zerr.Wrap(err, "failed to read dotenv file"), "path", dotenvPath)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envSettingKey), nil); err != nil {
		return nil, zerr.Wrap(err, "failed to load environment settings")
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, flagSettingKey(flags)), nil); err != nil {
			return nil, zerr.Wrap(err, "failed to load flag settings")
		}
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, zerr.Wrap(err, "failed to decode settings")
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the settings and reports the first invalid one.
func (s *Settings) Validate() error {
	err := settingsValidate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		wrapped := zerr.Wrap(domain.ErrInvalidSettings, "setting failed validation")
		wrapped = zerr.With(wrapped, "setting", fe.Field())
		wrapped = zerr.With(wrapped, "rule", fe.Tag())
		return zerr.With(wrapped, "value", fe.Value())
	}
	return zerr.Wrap(domain.ErrInvalidSettings, err.Error())
}

func envSettingKey(key string) string {
	return strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
}

func dotenvSettings(values map[string]string) map[string]any {
	out := make(map[string]any, len(values))
	for key, value := range values {
		if !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		out[envSettingKey(key)] = value
	}
	return out
}

// flagSettingKey maps command line flags onto setting keys.
// --json is a shorthand for --log-format=json.
func flagSettingKey(flags *pflag.FlagSet) func(f *pflag.Flag) (string, any) {
	return func(f *pflag.Flag) (string, any) {
		switch f.Name {
		case "json":
			if on, _ := flags.GetBool("json"); on {
				return "log_format", LogFormatJSON
			}
			return "", nil
		case "env", "dir", "log-format", "verbose":
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		default:
			return "", nil
		}
	}
}
