package actcode

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
)

// New returns a uniformly distributed 4-digit activation code, "0000"–"9999".
// Codes are independent per call; collisions across concurrent tickets are
// acceptable and not deduplicated.
func New() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("generate activation code: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

// Digest returns the hex SHA-256 of a code. Tickets embed the digest rather
// than the code, so the code itself only travels through the out-of-band
// channel.
func Digest(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// Matches reports whether the submitted code matches the embedded digest.
// Exact string equality of the code — no normalization, no case folding.
func Matches(submitted, digest string) bool {
	d := Digest(submitted)
	return subtle.ConstantTimeCompare([]byte(d), []byte(digest)) == 1
}
