package envkey

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/cockroachdb/errors"
)

// DefaultCodeLength is the number of characters GenerateCode produces by default.
const DefaultCodeLength = 40

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// GenerateCode returns length characters drawn uniformly from A-Z and a-z.
//
// Example: generate a 40 character code
//
//	code, err := envkey.GenerateCode(envkey.DefaultCodeLength)
//	godump.Dump(err, len(code))
//
//	// #error <nil>
//	// #int 40
func GenerateCode(length int) (string, error) {
	if length < 1 {
		return "", errors.Wrapf(ErrInvalidLength, "code length %d", length)
	}

	n := big.NewInt(int64(len(codeAlphabet)))
	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		idx, err := rand.Int(rand.Reader, n)
		if err != nil {
			return "", errors.Wrap(err, "read secure random index")
		}
		sb.WriteByte(codeAlphabet[idx.Int64()])
	}
	return sb.String(), nil
}
