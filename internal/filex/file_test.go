package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/arcaives/internal/common"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o600))
	return p
}

func TestReadLimited_ReadsWholeFile(t *testing.T) {
	p := write(t, "logo.png", []byte("0123456789"))

	got, err := ReadLimited(p, 10)
	require.NoError(t, err)
	require.Equal(t, []byte("0123456789"), got)
}

func TestReadLimited_TooLarge(t *testing.T) {
	p := write(t, "big.png", make([]byte, 11))

	_, err := ReadLimited(p, 10)
	require.ErrorIs(t, err, common.ErrPayloadTooLarge)
}

func TestReadLimited_Missing(t *testing.T) {
	_, err := ReadLimited(filepath.Join(t.TempDir(), "nope.png"), 10)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadLimited_Directory(t *testing.T) {
	_, err := ReadLimited(t.TempDir(), 10)
	require.ErrorContains(t, err, "not a regular file")
}
