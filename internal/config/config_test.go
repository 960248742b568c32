package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDefaults = Defaults{Length: 32, LogLevel: "warn", CodeLength: 40}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int(KeyLength, 32, "")
	flags.String(KeyEnvFile, "", "")
	flags.String(KeyLogLevel, "warn", "")
	require.NoError(t, flags.Parse(args))
	return flags
}

var rootBindings = map[string]string{
	KeyLength:   KeyLength,
	KeyEnvFile:  KeyEnvFile,
	KeyLogLevel: KeyLogLevel,
}

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig(newFlags(t), rootBindings, testDefaults)
	require.NoError(t, err)

	assert.Equal(t, 32, cfg.Length)
	assert.Equal(t, "", cfg.EnvFile)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 40, cfg.CodeLength)
}

func TestNewConfigFromEnvironment(t *testing.T) {
	t.Setenv("ENVKEY_LENGTH", "16")
	t.Setenv("ENVKEY_ENV_FILE", "/srv/app/.env")
	t.Setenv("ENVKEY_LOG_LEVEL", "DEBUG")
	t.Setenv("ENVKEY_CODE_LENGTH", "12")

	cfg, err := NewConfig(newFlags(t), rootBindings, testDefaults)
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Length)
	assert.Equal(t, "/srv/app/.env", cfg.EnvFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 12, cfg.CodeLength)
}

func TestNewConfigFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("ENVKEY_LENGTH", "16")
	t.Setenv("ENVKEY_ENV_FILE", "/srv/app/.env")

	cfg, err := NewConfig(newFlags(t, "--length", "64", "--env-file", "./local.env"), rootBindings, testDefaults)
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.Length)
	assert.Equal(t, "./local.env", cfg.EnvFile)
}

func TestNewConfigBindsRenamedFlag(t *testing.T) {
	flags := pflag.NewFlagSet("code", pflag.ContinueOnError)
	flags.Int("length", 40, "")
	require.NoError(t, flags.Parse([]string{"--length", "8"}))

	cfg, err := NewConfig(flags, map[string]string{KeyCodeLength: "length"}, testDefaults)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.CodeLength)
	assert.Equal(t, 32, cfg.Length)
}

func TestNewConfigUnknownFlag(t *testing.T) {
	_, err := NewConfig(pflag.NewFlagSet("empty", pflag.ContinueOnError), rootBindings, testDefaults)
	assert.Error(t, err)
}

func TestNewConfigValidation(t *testing.T) {
	_, err := NewConfig(newFlags(t, "--length", "0"), rootBindings, testDefaults)
	assert.Error(t, err)

	_, err = NewConfig(newFlags(t, "--log-level", "loud"), rootBindings, testDefaults)
	assert.Error(t, err)

	t.Setenv("ENVKEY_CODE_LENGTH", "-3")
	_, err = NewConfig(nil, map[string]string{KeyCodeLength: "length"}, testDefaults)
	assert.Error(t, err)
}

func TestNewConfigValidatesOnlyBoundKeys(t *testing.T) {
	t.Setenv("ENVKEY_CODE_LENGTH", "0")

	cfg, err := NewConfig(newFlags(t), rootBindings, testDefaults)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Length)

	t.Setenv("ENVKEY_CODE_LENGTH", "not-a-number")
	_, err = NewConfig(newFlags(t), rootBindings, testDefaults)
	require.NoError(t, err)
}

func TestNewConfigCodeScopeIgnoresKeyLength(t *testing.T) {
	t.Setenv("ENVKEY_LENGTH", "0")
	flags := pflag.NewFlagSet("code", pflag.ContinueOnError)
	flags.Int("length", 40, "")
	flags.String(KeyLogLevel, "warn", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := NewConfig(flags, map[string]string{KeyCodeLength: "length", KeyLogLevel: KeyLogLevel}, testDefaults)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.CodeLength)
}

func TestNewConfigAlwaysValidatesLogLevel(t *testing.T) {
	t.Setenv("ENVKEY_LOG_LEVEL", "loud")

	_, err := NewConfig(nil, map[string]string{KeyCodeLength: "length"}, testDefaults)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Configuration{Length: 32, LogLevel: "warn", CodeLength: 0}

	assert.Error(t, cfg.Validate())
	assert.NoError(t, cfg.Validate(KeyLength, KeyLogLevel))
	assert.Error(t, cfg.Validate(KeyCodeLength))
	assert.Error(t, cfg.Validate("colour"))
}

func TestNewConfigWithoutFlags(t *testing.T) {
	cfg, err := NewConfig(nil, rootBindings, testDefaults)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Length)
}
