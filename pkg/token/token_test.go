package token

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStatic(t *testing.T) {
	require.Equal(t, "abc", NewStatic("abc").Token())
}

func TestFileProviderReadsInitialValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("initial"), 0o600))

	fp, err := NewFileProvider(path)
	require.NoError(t, err)
	require.Equal(t, "initial", fp.Token())
}

func TestFileProviderMissingFile(t *testing.T) {
	_, err := NewFileProvider(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}

func TestFileProviderPicksUpRewrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	fp, err := NewFileProvider(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("new"), 0o600))
	require.Eventually(t, func() bool {
		return fp.Token() == "new"
	}, 2*time.Second, 10*time.Millisecond)
}
