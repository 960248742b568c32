package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goforj/envkey"
	"github.com/goforj/envkey/internal/config"
)

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the ENCRYPTION_KEY stored in the env file",
		Long: `Read ENCRYPTION_KEY from the env file and check it has been generated
and is base64 of the expected length.

Examples:
  envkey verify
  envkey verify --env-file ./deploy/.env --length 16`,
		Args: cobra.NoArgs,
		RunE: runVerify,
	}
	cmd.Flags().IntP(config.KeyLength, "l", envkey.DefaultKeyLength, "expected key length in bytes")
	return cmd
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(cmd, map[string]string{
		config.KeyLength:   config.KeyLength,
		config.KeyEnvFile:  config.KeyEnvFile,
		config.KeyLogLevel: config.KeyLogLevel,
	})
	if err != nil {
		return err
	}
	defer log.Sync()

	envPath := cfg.EnvFile
	if envPath == "" {
		if envPath, err = envkey.DefaultEnvPath(); err != nil {
			return err
		}
	}

	key, err := envkey.VerifyEnvKey(envPath, cfg.Length)
	if err != nil {
		log.Error("key verification failed", zap.String("env_path", envPath), zap.Error(err))
		return err
	}

	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s is valid (%d bytes)\n", envkey.EnvKeyName, len(key)); err != nil {
		return errors.Wrap(err, "write result")
	}
	return nil
}
