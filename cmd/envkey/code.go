package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/goforj/envkey"
	"github.com/goforj/envkey/internal/config"
)

func newCodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "code",
		Short: "Generate a random alphabetic code",
		Long: `Generate a random code made of the letters A-Z and a-z.

Examples:
  envkey code
  envkey code --length 12`,
		Args: cobra.NoArgs,
		RunE: runCode,
	}
	cmd.Flags().IntP("length", "l", envkey.DefaultCodeLength, "code length in characters")
	return cmd
}

func runCode(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(cmd, map[string]string{
		config.KeyCodeLength: "length",
		config.KeyLogLevel:   config.KeyLogLevel,
	})
	if err != nil {
		return err
	}
	defer log.Sync()

	code, err := envkey.GenerateCode(cfg.CodeLength)
	if err != nil {
		return errors.Wrap(err, "failed to generate code")
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), code); err != nil {
		return errors.Wrap(err, "write code")
	}
	return nil
}
