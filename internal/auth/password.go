package auth

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// HashPassword produces a salted one-way hash of the plaintext. The salt is
// randomized per call, so hashing the same password twice yields different
// outputs.
func HashPassword(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// VerifyPassword reports whether candidate matches the stored hash. Any
// failure (malformed hash included) is treated as "no match" so internal
// error detail never reaches callers.
func VerifyPassword(hash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}

const (
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars   = "0123456789"
	specialChars = "!@#$%^&*()-_=+[]{}<>?"
)

// GeneratePassword returns a random credential of the given length drawn from
// lower-case letters and digits, plus upper-case and special characters when
// the corresponding flags are set. Used for auto-provisioned accounts whose
// password is mailed to the owner out-of-band.
func GeneratePassword(length int, useSpecial, useUpper bool) string {
	if length <= 0 {
		length = 16
	}
	alphabet := lowerChars + digitChars
	if useUpper {
		alphabet += upperChars
	}
	if useSpecial {
		alphabet += specialChars
	}
	out := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing means the process has no usable entropy
			// source; there is no sane fallback
			panic(err)
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out)
}
