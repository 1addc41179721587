// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/crypto/pbkdf2"
)

type HashAlgorithm int

const (
	AlgorithmPBKDF2 HashAlgorithm = iota + 1
)

func (a HashAlgorithm) String() string {
	switch a {
	case AlgorithmPBKDF2:
		return "PBKDF2"
	default:
		return fmt.Sprintf("HashAlgorithm(%d)", int(a))
	}
}

const (
	derivedKeyLength  = 64
	saltSeparator     = "."
	DefaultIterations = 10000
	DefaultSaltSize   = 16
)

var ErrMalformedSalt = fmt.Errorf(
	"%w: salt must be {iterations}.{base64} with a positive iteration count",
	ErrInvalidInput,
)

// GenerateSalt returns "{iterations}.{base64(saltSize random bytes)}".
func GenerateSalt(iterations, saltSize int) (string, error) {
	if iterations < 1 {
		return "", fmt.Errorf("generate salt: iterations must be >= 1: %w", ErrInvalidInput)
	}
	if saltSize < 1 {
		return "", fmt.Errorf("generate salt: salt size must be >= 1: %w", ErrInvalidInput)
	}

	raw := make([]byte, saltSize)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	return strconv.Itoa(iterations) + saltSeparator + base64.StdEncoding.EncodeToString(raw), nil
}

// ComputeHash derives a 64 byte PBKDF2-HMAC-SHA512 key from password and
// returns base64(key || salt), where salt is the stored salt string's bytes.
// Existing credentials were written in that layout.
func ComputeHash(password, salt string, algorithm HashAlgorithm) (string, error) {
	if password == "" {
		return "", fmt.Errorf("compute hash: empty password: %w", ErrInvalidInput)
	}
	if salt == "" {
		return "", fmt.Errorf("compute hash: empty salt: %w", ErrInvalidInput)
	}
	if algorithm != AlgorithmPBKDF2 {
		return "", fmt.Errorf("compute hash: unsupported algorithm %s: %w", algorithm, ErrInvalidInput)
	}

	iterations, saltBytes, err := parseSalt(salt)
	if err != nil {
		return "", fmt.Errorf("compute hash: %w", err)
	}

	key := pbkdf2.Key([]byte(password), saltBytes, iterations, derivedKeyLength, sha512.New)

	out := make([]byte, 0, len(key)+len(salt))
	out = append(out, key...)
	out = append(out, salt...)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Verify recomputes the hash of attempted under storedSalt and compares it
// to storedHash in constant time.
func Verify(storedHash, storedSalt, attempted string) (bool, error) {
	if storedHash == "" || storedSalt == "" {
		return false, fmt.Errorf("verify password: stored hash or salt is empty: %w", ErrInvalidInput)
	}
	if attempted == "" {
		return false, fmt.Errorf("verify password: empty password: %w", ErrInvalidInput)
	}

	expected, err := base64.StdEncoding.DecodeString(storedHash)
	if err != nil {
		return false, fmt.Errorf("verify password: decode stored hash: %w", ErrInvalidInput)
	}

	computed, err := ComputeHash(attempted, storedSalt, AlgorithmPBKDF2)
	if err != nil {
		return false, fmt.Errorf("verify password: %w", err)
	}

	actual, err := base64.StdEncoding.DecodeString(computed)
	if err != nil {
		return false, fmt.Errorf("verify password: %w", err)
	}

	return subtle.ConstantTimeCompare(expected, actual) == 1, nil
}

// HashPassword generates a fresh salt and returns (hash, salt).
func HashPassword(password string, iterations, saltSize int) (string, string, error) {
	salt, err := GenerateSalt(iterations, saltSize)
	if err != nil {
		return "", "", err
	}

	hash, err := ComputeHash(password, salt, AlgorithmPBKDF2)
	if err != nil {
		return "", "", err
	}

	return hash, salt, nil
}

func parseSalt(salt string) (int, []byte, error) {
	parts := strings.Split(salt, saltSeparator)
	if len(parts) != 2 {
		return 0, nil, ErrMalformedSalt
	}

	iterations, err := strconv.Atoi(parts[0])
	if err != nil || iterations < 1 {
		return 0, nil, ErrMalformedSalt
	}

	raw, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return 0, nil, ErrMalformedSalt
	}

	return iterations, raw, nil
}

var (
	dummyOnce sync.Once
	dummyHash string
	dummySalt string
)

// VerifyDummy spends the same work as a real verification so unknown
// usernames cannot be told apart by response time.
func VerifyDummy(password string, iterations int) {
	dummyOnce.Do(func() {
		h, s, err := HashPassword("dummy_password_for_timing_attack_prevention", iterations, DefaultSaltSize)
		if err != nil {
			panic(fmt.Sprintf("security: failed to generate dummy hash: %v", err))
		}
		dummyHash, dummySalt = h, s
	})

	if password == "" {
		password = "x"
	}
	//nolint:errcheck // result intentionally discarded
	_, _ = Verify(dummyHash, dummySalt, password)
}
