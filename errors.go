package envkey

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidLength is returned when a key or code length below 1 is requested.
	ErrInvalidLength = errors.New("length must be at least 1")
	// ErrKeyNotFound is returned when ENCRYPTION_KEY is missing from an env file.
	ErrKeyNotFound = errors.New("ENCRYPTION_KEY not found")
	// ErrKeyNotGenerated is returned when ENCRYPTION_KEY still holds the placeholder value.
	ErrKeyNotGenerated = errors.New("ENCRYPTION_KEY has not been generated")
	// ErrInvalidKey is returned when a key is not valid base64 or has the wrong length.
	ErrInvalidKey = errors.New("invalid encryption key")
)
