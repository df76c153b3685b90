package fs

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSecureFolderAndFile(t *testing.T) {
	tmpPath := path.Join(t.TempDir(), "config")

	require.NoError(t, CreateSecureFolder(tmpPath))
	require.NoError(t, CreateSecureFolder(tmpPath))

	b, e := Exists(tmpPath)
	require.True(t, b)
	require.NoError(t, e)

	b, e = Exists(path.Join(tmpPath, "missing"))
	require.False(t, b)
	require.NoError(t, e)

	file := path.Join(tmpPath, "auction-bid.log")
	f, err := CreateSecureFile(file)
	require.NoError(t, err)
	_, err = f.WriteString("first run")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	// a second creation overwrites the previous content
	f, err = CreateSecureFile(file)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	info, err := os.Stat(file)
	require.NoError(t, err)
	require.Equal(t, int64(0), info.Size())
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestHomeFolder(t *testing.T) {
	require.NotEmpty(t, HomeFolder())
}
