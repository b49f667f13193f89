package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDiskPutExistsDelete(t *testing.T) {
	ctx := context.Background()
	d := NewLocalDisk(t.TempDir(), "http://cdn.test/storage/")

	require.NoError(t, d.Put(ctx, "products/a.png", strings.NewReader("png")))

	data, err := os.ReadFile(filepath.Join(d.Root(), "products", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))

	ok, err := d.Exists(ctx, "products/a.png")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, "http://cdn.test/storage/products/a.png", d.URL("products/a.png"))

	require.NoError(t, d.Delete(ctx, "products/a.png"))
	require.NoError(t, d.Delete(ctx, "products/a.png"))
	ok, err = d.Exists(ctx, "products/a.png")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalDiskRejectsEscape(t *testing.T) {
	d := NewLocalDisk(t.TempDir(), "")
	err := d.Put(context.Background(), "../outside.txt", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestNewUnknownDisk(t *testing.T) {
	_, err := New(context.Background(), "ftp")
	assert.Error(t, err)
}
