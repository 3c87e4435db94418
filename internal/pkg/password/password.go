package password

import (
	"crypto/rand"

	"golang.org/x/crypto/bcrypt"
)

// DummyHash is a bcrypt digest of random bytes, generated once at startup.
// Login flows compare against it when the user lookup misses, so a failed
// lookup costs the same bcrypt work as a wrong password and can never match.
var DummyHash = randomHash()

// Hash generates a bcrypt digest of the plaintext password.
func Hash(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether plaintext matches the bcrypt digest. The comparison
// runs the full bcrypt cost regardless of outcome.
func Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

func randomHash() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("read random bytes: " + err.Error())
	}
	h, err := bcrypt.GenerateFromPassword(b, bcrypt.DefaultCost)
	if err != nil {
		panic("generate dummy hash: " + err.Error())
	}
	return string(h)
}
