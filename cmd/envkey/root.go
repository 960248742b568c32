package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goforj/envkey"
	"github.com/goforj/envkey/internal/config"
	"github.com/goforj/envkey/internal/logger"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "envkey",
		Short: "Generate an encryption key",
		Long: `Generate a cryptographically secure random key and print it as base64.

If the .env file one directory above the envkey binary (or the file given
with --env-file) contains ENCRYPTION_KEY=replace_with_generated_key, the
placeholder is replaced with the new key.

Examples:
  # Generate a 256-bit key
  envkey

  # Generate a 128-bit key and patch a specific file
  envkey --length 16 --env-file ./deploy/.env

Flags may also be set through ENVKEY_LENGTH, ENVKEY_ENV_FILE and ENVKEY_LOG_LEVEL.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runGenerate,
	}

	cmd.PersistentFlags().String(config.KeyEnvFile, "", "env file to patch (default: ../.env relative to the binary)")
	cmd.PersistentFlags().String(config.KeyLogLevel, logger.DefaultLevel, "diagnostics level: debug, info, warn or error")
	cmd.Flags().IntP(config.KeyLength, "l", envkey.DefaultKeyLength, "key length in bytes")

	cmd.AddCommand(newCodeCmd(), newVerifyCmd())
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(cmd, map[string]string{
		config.KeyLength:   config.KeyLength,
		config.KeyEnvFile:  config.KeyEnvFile,
		config.KeyLogLevel: config.KeyLogLevel,
	})
	if err != nil {
		return err
	}
	defer log.Sync()

	_, err = envkey.GenerateEncryptionKey(envkey.Options{
		Length:  cfg.Length,
		EnvPath: cfg.EnvFile,
		Out:     cmd.OutOrStdout(),
		Logger:  log.Logger,
	})
	if err != nil {
		log.Error("failed to generate encryption key", zap.Error(err))
		return err
	}
	return nil
}

func loadConfig(cmd *cobra.Command, bindings map[string]string) (*config.Configuration, *logger.Logger, error) {
	cfg, err := config.NewConfig(cmd.Flags(), bindings, config.Defaults{
		Length:     envkey.DefaultKeyLength,
		LogLevel:   logger.DefaultLevel,
		CodeLength: envkey.DefaultCodeLength,
	})
	if err != nil {
		return nil, nil, err
	}
	log := logger.NewWithWriter(cfg.LogLevel, cmd.ErrOrStderr())
	log.Debug("configuration loaded",
		zap.Int("length", cfg.Length),
		zap.String("env_file", cfg.EnvFile),
		zap.Int("code_length", cfg.CodeLength),
	)
	return cfg, log, nil
}
