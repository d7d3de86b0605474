package promo

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeGzipFile writes the given lines as a gzipped file and returns its path.
func writeGzipFile(t *testing.T, name string, lines []string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	gz := gzip.NewWriter(file)
	_, err = gz.Write([]byte(strings.Join(lines, "\n")))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	return path
}

func TestFileLoader_Load(t *testing.T) {
	path := writeGzipFile(t, "codes.txt.gz", []string{
		"BULK0001",
		"BULK0002",
		"",
		"  BULK0003  ",
	})

	loader := NewFileLoader(zerolog.Nop())
	set, err := loader.Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, 3, set.Size())
	assert.True(t, set.Contains("BULK0001"))
	assert.True(t, set.Contains("BULK0003"))
	assert.False(t, set.Contains(""))
}

func TestFileLoader_Load_MissingFile(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "missing.gz"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open promo code file")
}

func TestFileLoader_Load_NotGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(path, []byte("BULK0001\n"), 0o644))

	loader := NewFileLoader(zerolog.Nop())

	_, err := loader.Load(context.Background(), path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "gzip")
}

func TestFileLoader_Load_CancelledContext(t *testing.T) {
	path := writeGzipFile(t, "codes.txt.gz", []string{"BULK0001"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := NewFileLoader(zerolog.Nop())

	_, err := loader.Load(ctx, path)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
