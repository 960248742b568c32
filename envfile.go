package envkey

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
)

const (
	// EnvKeyName is the variable the generated key is stored under.
	EnvKeyName = "ENCRYPTION_KEY"
	// PlaceholderValue marks a key that has not been generated yet.
	PlaceholderValue = "replace_with_generated_key"
	// Placeholder is the exact text replaced in the env file.
	Placeholder = EnvKeyName + "=" + PlaceholderValue
)

// DefaultEnvPath returns the .env file one directory above the one holding
// the running executable.
func DefaultEnvPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, "locate executable")
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return envPathFor(exe), nil
}

func envPathFor(exe string) string {
	return filepath.Join(filepath.Dir(filepath.Dir(exe)), ".env")
}

// PatchEnvFile replaces every occurrence of the ENCRYPTION_KEY placeholder in
// the file with the given key. A missing file or a file without the
// placeholder is left alone and reported as not patched.
// The match is a plain substring match, so a placeholder inside a comment is
// replaced as well.
//
// Example: patch a placeholder in a temp .env
//
//	tmp := filepath.Join(os.TempDir(), ".env")
//	_ = os.WriteFile(tmp, []byte("ENCRYPTION_KEY=replace_with_generated_key\n"), 0o644)
//	patched, err := envkey.PatchEnvFile(tmp, "c2VjcmV0")
//	godump.Dump(err, patched)
//
//	// #error <nil>
//	// #bool true
func PatchEnvFile(envPath, key string) (bool, error) {
	data, err := os.ReadFile(envPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, errors.Wrapf(err, "read %s", envPath)
	}

	content := string(data)
	if !strings.Contains(content, Placeholder) {
		return false, nil
	}

	content = strings.ReplaceAll(content, Placeholder, EnvKeyName+"="+key)
	if err := os.WriteFile(envPath, []byte(content), 0o644); err != nil {
		return false, errors.Wrapf(err, "write %s", envPath)
	}
	return true, nil
}

// ReadEnvKey parses the env file and returns its ENCRYPTION_KEY value.
func ReadEnvKey(envPath string) (string, error) {
	values, err := godotenv.Read(envPath)
	if err != nil {
		return "", errors.Wrapf(err, "parse %s", envPath)
	}
	key := strings.TrimSpace(values[EnvKeyName])
	switch key {
	case "":
		return "", errors.Wrapf(ErrKeyNotFound, "in %s", envPath)
	case PlaceholderValue:
		return "", errors.Wrapf(ErrKeyNotGenerated, "in %s", envPath)
	}
	return key, nil
}

// VerifyEnvKey reads ENCRYPTION_KEY from the env file and checks it decodes
// to exactly length bytes.
//
// Example: verify a freshly generated key
//
//	tmp := filepath.Join(os.TempDir(), ".env")
//	_ = os.WriteFile(tmp, []byte("ENCRYPTION_KEY=replace_with_generated_key\n"), 0o644)
//	_, _ = envkey.GenerateEncryptionKey(envkey.Options{EnvPath: tmp, Out: io.Discard})
//	key, err := envkey.VerifyEnvKey(tmp, envkey.DefaultKeyLength)
//	godump.Dump(err, len(key))
//
//	// #error <nil>
//	// #int 32
func VerifyEnvKey(envPath string, length int) ([]byte, error) {
	encoded, err := ReadEnvKey(envPath)
	if err != nil {
		return nil, err
	}
	return ParseKey(encoded, length)
}
