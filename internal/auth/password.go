package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Scheme     = "pbkdf2_sha256"
	pbkdf2Iterations = 29000
	pbkdf2SaltLen    = 16
	pbkdf2KeyLen     = 32
)

// PasswordHasher hashes and verifies administrator passwords with salted,
// iterated PBKDF2-SHA256. Chosen over bcrypt to avoid its 72-byte plaintext
// truncation; PBKDF2 has no length restriction.
type PasswordHasher struct {
	iterations int
}

// NewPasswordHasher creates a hasher with the default work factor
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{iterations: pbkdf2Iterations}
}

// Hash generates a salted hash encoded as pbkdf2_sha256$<iter>$<salt>$<key>
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, pbkdf2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, h.iterations, pbkdf2KeyLen, sha256.New)

	return fmt.Sprintf("%s$%d$%s$%s",
		pbkdf2Scheme,
		h.iterations,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether the plaintext matches the encoded hash using a
// constant-time comparison
func (h *PasswordHasher) Verify(password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 4 || parts[0] != pbkdf2Scheme {
		return false
	}

	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil {
		return false
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return false
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, len(expected), sha256.New)
	return subtle.ConstantTimeCompare(key, expected) == 1
}
