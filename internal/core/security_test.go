// AngelaMos | 2026
// security_test.go

package core

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSalt(t *testing.T) {
	salt, err := GenerateSalt(1000, 16)
	require.NoError(t, err)

	parts := strings.Split(salt, ".")
	require.Len(t, parts, 2)
	assert.Equal(t, "1000", parts[0])

	raw, err := base64.StdEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	assert.Len(t, raw, 16)

	other, err := GenerateSalt(1000, 16)
	require.NoError(t, err)
	assert.NotEqual(t, salt, other)
}

func TestGenerateSaltRejectsBadParameters(t *testing.T) {
	_, err := GenerateSalt(0, 16)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = GenerateSalt(1000, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestComputeHashLayout(t *testing.T) {
	salt := "1000." + base64.StdEncoding.EncodeToString([]byte("0123456789abcdef"))

	hash, err := ComputeHash("secret", salt, AlgorithmPBKDF2)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(hash)
	require.NoError(t, err)
	require.Len(t, raw, derivedKeyLength+len(salt))
	assert.Equal(t, salt, string(raw[derivedKeyLength:]))

	again, err := ComputeHash("secret", salt, AlgorithmPBKDF2)
	require.NoError(t, err)
	assert.Equal(t, hash, again)
}

func TestComputeHashRejectsInput(t *testing.T) {
	salt, err := GenerateSalt(10, 8)
	require.NoError(t, err)

	tests := []struct {
		name      string
		password  string
		salt      string
		algorithm HashAlgorithm
	}{
		{"empty password", "", salt, AlgorithmPBKDF2},
		{"empty salt", "secret", "", AlgorithmPBKDF2},
		{"unknown algorithm", "secret", salt, HashAlgorithm(99)},
		{"salt without separator", "secret", "abc", AlgorithmPBKDF2},
		{"non numeric iterations", "secret", "x.YWJj", AlgorithmPBKDF2},
		{"zero iterations", "secret", "0.YWJj", AlgorithmPBKDF2},
		{"bad base64", "secret", "10.!!!", AlgorithmPBKDF2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeHash(tt.password, tt.salt, tt.algorithm)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestVerifyRoundTrip(t *testing.T) {
	salt, err := GenerateSalt(10000, 16)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(salt, "10000."))

	hash, err := ComputeHash("secret", salt, AlgorithmPBKDF2)
	require.NoError(t, err)

	ok, err := Verify(hash, salt, "secret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify(hash, salt, "Secret")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = Verify(hash, salt, "secret ")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyRejectsEmptyInput(t *testing.T) {
	hash, salt, err := HashPassword("secret", 10, 8)
	require.NoError(t, err)

	_, err = Verify("", salt, "secret")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Verify(hash, "", "secret")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Verify(hash, salt, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Verify("not base64!", salt, "secret")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Verify(hash, "garbage", "secret")
	assert.ErrorIs(t, err, ErrMalformedSalt)
}

func TestVerifyAcceptsWhitespacePassword(t *testing.T) {
	hash, salt, err := HashPassword("        ", 10, 8)
	require.NoError(t, err)

	ok, err := Verify(hash, salt, "        ")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify(hash, salt, "       ")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyDummyDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		VerifyDummy("", 10)
		VerifyDummy("anything", 10)
	})
}
