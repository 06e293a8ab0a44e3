package fileaccess

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	mem := memfs.New()
	require.NoError(t, mem.MkdirAll("/site/content/blog", 0o755))
	require.NoError(t, util.WriteFile(mem, "/site/content/b.html", []byte("bee"), 0o644))
	require.NoError(t, util.WriteFile(mem, "/site/content/a.html", []byte("ay"), 0o644))

	fa := New(mem)
	assert.Same(t, mem, fa.Filesystem())

	data, err := fa.Read("/site/content/b.html")
	require.NoError(t, err)
	assert.Equal(t, "bee", string(data))

	entries, err := fa.ReadDir("/site/content")
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"a.html", "b.html", "blog"}, names)

	info, err := fa.Stat("/site/content/blog")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	isDir, err := fa.IsDir("/site/content/a.html")
	require.NoError(t, err)
	assert.False(t, isDir)

	_, err = fa.Read("/site/content/missing.html")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestOS(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "robots.txt")
	require.NoError(t, os.WriteFile(p, []byte("User-agent: *\n"), 0o644))

	fa := OS()
	data, err := fa.Read(p)
	require.NoError(t, err)
	assert.Equal(t, "User-agent: *\n", string(data))

	f, err := fa.Open(p)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}
