package commitgraph

import (
	"os"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/require"
)

func TestPublishRemovesLockOnFillError(t *testing.T) {
	fs := memfs.New()
	target := "info/commit-graph"

	boom := os.ErrInvalid
	err := publish(fs, target, func(f billy.File) error { return boom })
	require.ErrorIs(t, err, boom)

	_, statErr := fs.Stat(target + lockSuffix)
	require.True(t, os.IsNotExist(statErr))
	_, statErr = fs.Stat(target)
	require.True(t, os.IsNotExist(statErr))
}

func TestPublishRenamesOnSuccess(t *testing.T) {
	fs := memfs.New()
	target := "info/commit-graph"

	err := publish(fs, target, func(f billy.File) error {
		_, err := f.Write([]byte("payload"))
		return err
	})
	require.NoError(t, err)

	content, err := readAll(fs, target)
	require.NoError(t, err)
	require.Equal(t, "payload", string(content))

	_, statErr := fs.Stat(target + lockSuffix)
	require.True(t, os.IsNotExist(statErr))
}

func TestCreateExclusiveFailsWhenLockAlreadyHeld(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("info", 0o777))

	first, err := createExclusive(fs, "info/commit-graph.lock")
	require.NoError(t, err)
	defer first.Close()

	_, err = createExclusive(fs, "info/commit-graph.lock")
	require.Error(t, err)
}

func readAll(fs billy.Filesystem, name string) ([]byte, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []byte
	buf := make([]byte, 4096)
	for {
		n, err := f.Read(buf)
		out = append(out, buf[:n]...)
		if err != nil {
			break
		}
	}
	return out, nil
}
