package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the CLI, e.g. ENVKEY_LENGTH.
const EnvPrefix = "ENVKEY"

// Keys shared between flags, environment variables and Configuration fields.
const (
	KeyLength     = "length"
	KeyEnvFile    = "env-file"
	KeyLogLevel   = "log-level"
	KeyCodeLength = "code-length"
)

// Configuration is the resolved CLI configuration. Each command reads only
// the keys it binds, so fields outside that scope are not validated.
type Configuration struct {
	Length     int    `validate:"gte=1"`
	EnvFile    string
	LogLevel   string `validate:"oneof=debug info warn error"`
	CodeLength int    `validate:"gte=1"`
}

var fieldNames = map[string]string{
	KeyLength:     "Length",
	KeyEnvFile:    "EnvFile",
	KeyLogLevel:   "LogLevel",
	KeyCodeLength: "CodeLength",
}

// Defaults holds the values used when neither a flag nor an environment variable is set.
type Defaults struct {
	Length     int
	LogLevel   string
	CodeLength int
}

// NewConfig resolves configuration with precedence flag > ENVKEY_* variable > default.
// bindings maps a config key to the name of the flag in flags that sets it;
// keys without a binding come from the environment or defaults only.
func NewConfig(flags *pflag.FlagSet, bindings map[string]string, defaults Defaults) (*Configuration, error) {
	v := viper.New()

	v.SetDefault(KeyLength, defaults.Length)
	v.SetDefault(KeyEnvFile, "")
	v.SetDefault(KeyLogLevel, defaults.LogLevel)
	v.SetDefault(KeyCodeLength, defaults.CodeLength)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	for key, name := range bindings {
		if flags == nil {
			break
		}
		flag := flags.Lookup(name)
		if flag == nil {
			return nil, errors.Newf("flag --%s is not defined", name)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, errors.Wrapf(err, "bind flag --%s", name)
		}
	}

	// log-level is always in scope since every command builds a logger
	keys := []string{KeyLogLevel}
	for key := range bindings {
		if key != KeyLogLevel {
			keys = append(keys, key)
		}
	}

	config := Configuration{
		Length:     v.GetInt(KeyLength),
		EnvFile:    v.GetString(KeyEnvFile),
		LogLevel:   strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		CodeLength: v.GetInt(KeyCodeLength),
	}
	if err := config.Validate(keys...); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the fields behind the given config keys, or every field
// when no key is given.
func (c Configuration) Validate(keys ...string) error {
	validate := validator.New()
	if len(keys) == 0 {
		if err := validate.Struct(c); err != nil {
			return errors.Wrap(err, "invalid configuration")
		}
		return nil
	}

	fields := make([]string, 0, len(keys))
	for _, key := range keys {
		name, ok := fieldNames[key]
		if !ok {
			return errors.Newf("unknown config key %q", key)
		}
		fields = append(fields, name)
	}
	if err := validate.StructPartial(c, fields...); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}
