package envkey

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// DefaultKeyLength is the key size in bytes (256 bits).
const DefaultKeyLength = 32

// Options configures GenerateEncryptionKey. Zero values fall back to defaults.
type Options struct {
	// Length is the key size in bytes. Defaults to DefaultKeyLength.
	Length int
	// EnvPath is the env file to patch. Defaults to DefaultEnvPath().
	EnvPath string
	// Out receives the operator-facing lines. Defaults to os.Stdout.
	Out io.Writer
	// Logger receives diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
}

func (o Options) withDefaults() (Options, error) {
	if o.Length == 0 {
		o.Length = DefaultKeyLength
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.EnvPath == "" {
		path, err := DefaultEnvPath()
		if err != nil {
			return o, err
		}
		o.EnvPath = path
	}
	return o, nil
}

// GenerateKey returns length secure random bytes encoded as padded standard base64.
//
// Example: generate a 256-bit key
//
//	key, err := envkey.GenerateKey(32)
//	godump.Dump(err, len(key))
//
//	// #error <nil>
//	// #int 44
func GenerateKey(length int) (string, error) {
	if length < 1 {
		return "", errors.Wrapf(ErrInvalidLength, "key length %d", length)
	}
	raw := make([]byte, length)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", errors.Wrap(err, "read secure random bytes")
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// ParseKey decodes a base64 key and checks it is exactly length bytes.
func ParseKey(encoded string, length int) ([]byte, error) {
	decoded, err := base64.StdEncoding.Strict().DecodeString(encoded)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode base64 key"), ErrInvalidKey)
	}
	if len(decoded) != length {
		return nil, errors.Wrapf(ErrInvalidKey, "key must be %d bytes after decoding, got %d", length, len(decoded))
	}
	return decoded, nil
}

// GenerateEncryptionKey generates a key, prints it to opts.Out and replaces the
// ENCRYPTION_KEY placeholder in the env file when the file has one.
//
// Example: generate a key and patch a temp .env
//
//	tmp := filepath.Join(os.TempDir(), ".env")
//	_ = os.WriteFile(tmp, []byte("ENCRYPTION_KEY=replace_with_generated_key\n"), 0o644)
//	key, err := envkey.GenerateEncryptionKey(envkey.Options{EnvPath: tmp})
//	godump.Dump(err, key)
//
//	// #error <nil>
//	// #string "q3J0..."
func GenerateEncryptionKey(opts Options) (string, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return "", err
	}
	log := opts.Logger.With(zap.Int("length", opts.Length), zap.String("env_path", opts.EnvPath))

	key, err := GenerateKey(opts.Length)
	if err != nil {
		return "", err
	}
	log.Debug("generated encryption key")

	if _, err := fmt.Fprintf(opts.Out, "Generated encryption key: %s\n", key); err != nil {
		return "", errors.Wrap(err, "write key")
	}
	if _, err := fmt.Fprintf(opts.Out, "Store this key securely and add it to your .env file as %s\n", EnvKeyName); err != nil {
		return "", errors.Wrap(err, "write notice")
	}

	patched, err := PatchEnvFile(opts.EnvPath, key)
	if err != nil {
		return "", err
	}
	if !patched {
		log.Debug("env file not patched")
		return key, nil
	}

	log.Info("env file patched")
	if _, err := fmt.Fprintln(opts.Out, "Updated .env file with the new encryption key"); err != nil {
		return "", errors.Wrap(err, "write confirmation")
	}
	return key, nil
}
