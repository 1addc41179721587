// AngelaMos | 2026
// cli_test.go

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amontalvo1020/rentalspro/internal/core"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)
}

func TestHashThenVerifyPassword(t *testing.T) {
	out, err := run(t, "", "hash-password", "--iterations", "1000", "s3cret!")
	require.NoError(t, err)

	var h hashOutput
	require.NoError(t, json.Unmarshal([]byte(out), &h))
	assert.True(t, strings.HasPrefix(h.Salt, "1000"))

	ok, err := core.Verify(h.Hash, h.Salt, "s3cret!")
	require.NoError(t, err)
	assert.True(t, ok)

	out, err = run(t, "s3cret!\n", "verify-password", "--hash", h.Hash, "--salt", h.Salt)
	require.NoError(t, err)
	assert.Equal(t, "match\n", out)

	_, err = run(t, "", "verify-password", "--hash", h.Hash, "--salt", h.Salt, "S3cret!")
	assert.EqualError(t, err, "password does not match")
}

func TestHashPasswordRequiresInput(t *testing.T) {
	_, err := run(t, "", "hash-password")
	assert.EqualError(t, err, "password is required")

	_, err = run(t, "", "verify-password", "pw")
	assert.Error(t, err, "hash and salt flags are required")
}

func TestKeygenWritesPEMFiles(t *testing.T) {
	dir := t.TempDir()
	private := filepath.Join(dir, "private.pem")
	public := filepath.Join(dir, "public.pem")

	out, err := run(t, "", "keygen", "--private", private, "--public", public)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+private)

	pem, err := os.ReadFile(private)
	require.NoError(t, err)
	assert.Contains(t, string(pem), "PRIVATE KEY")

	info, err := os.Stat(private)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	_, err = os.Stat(public)
	assert.NoError(t, err)
}
