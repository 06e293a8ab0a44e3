package ignore

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitetree/modules/fileaccess"
)

func TestMatch(t *testing.T) {
	mem := memfs.New()
	require.NoError(t, util.WriteFile(mem, "/site/content/.buildignore", []byte("# drafts\n\n*.draft\n"), 0o644))
	require.NoError(t, util.WriteFile(mem, "/site/content/blog/.buildignore", []byte("notes-*\n"), 0o644))
	require.NoError(t, mem.MkdirAll("/site/content/blog/2010", 0o755))

	m := New(fileaccess.New(mem), "/site/content", []string{"*.psd"}, ".buildignore")

	tests := []struct {
		dir, name string
		want      bool
	}{
		{"", "about.html", false},
		{"", "logo.psd", true},
		{"media/img", "logo.psd", true},
		{"", "post.draft", true},
		{"blog/2010", "post.draft", true},
		{"", "notes-1.html", false},
		{"blog", "notes-1.html", true},
		{"blog/2010", "notes-1.html", true},
		{"", ".buildignore", true},
		{"blog", ".buildignore", true},
	}
	for _, tt := range tests {
		got, err := m.Match(tt.dir, tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Match(%q, %q)", tt.dir, tt.name)
	}
}

func TestMatchWithoutIgnoreFile(t *testing.T) {
	mem := memfs.New()
	require.NoError(t, util.WriteFile(mem, "/c/.buildignore", []byte("*\n"), 0o644))

	m := New(fileaccess.New(mem), "/c", nil, "")

	got, err := m.Match("", "index.html")
	require.NoError(t, err)
	assert.False(t, got)

	got, err = m.Match("", ".buildignore")
	require.NoError(t, err)
	assert.False(t, got)
}
