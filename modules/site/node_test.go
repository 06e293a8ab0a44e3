package site

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitetree/modules/config"
)

const testSite = "testdata/sites/test_site"

func newTestSite(t *testing.T, cfg *config.Config) *Site {
	t.Helper()
	s, err := New(testSite, cfg)
	require.NoError(t, err)
	return s
}

func TestNewRootNode(t *testing.T) {
	s := newTestSite(t, nil)
	root := NewRootNode(s, s.ContentPath())

	assert.Nil(t, root.Parent())
	assert.Same(t, root, root.Root())
	assert.Same(t, s, root.Site())
	assert.True(t, root.IsRoot())
	assert.Equal(t, "", root.RelativePath())
	assert.Equal(t, "/", root.URL())
	assert.Nil(t, root.Module())
}

func TestAddNode(t *testing.T) {
	s := newTestSite(t, nil)
	root := NewRootNode(s, s.ContentPath())

	blog, err := root.AddNode(filepath.Join(s.ContentPath(), "blog"))
	require.NoError(t, err)
	december, err := root.AddNode(filepath.Join(s.ContentPath(), "blog", "2010", "december"))
	require.NoError(t, err)

	assert.Equal(t, "blog", blog.RelativePath())
	assert.Equal(t, "blog/2010/december", december.RelativePath())
	assert.Equal(t, filepath.Join(s.ContentPath(), "blog", "2010", "december"), december.SourceFolder())
	assert.Equal(t, "december", december.Name())

	year, ok := root.NodeFromRelativePath("blog/2010")
	require.True(t, ok)
	assert.Same(t, year, december.Parent())
	assert.Same(t, blog, year.Parent())
	assert.Same(t, root, blog.Parent())

	for _, n := range []*Node{blog, year, december} {
		assert.Same(t, root, n.Root())
		assert.Same(t, s, n.Site())
	}

	assert.Same(t, blog, blog.Module())
	assert.Same(t, blog, year.Module())
	assert.Same(t, blog, december.Module())

	assert.Equal(t, "/blog", blog.URL())
	assert.Equal(t, "/blog/2010/december", december.URL())
}

func TestAddNodeIdempotent(t *testing.T) {
	s := newTestSite(t, nil)
	root := NewRootNode(s, s.ContentPath())
	path := filepath.Join(s.ContentPath(), "blog", "2010")

	first, err := root.AddNode(path)
	require.NoError(t, err)
	second, err := root.AddNode(path + string(filepath.Separator))
	require.NoError(t, err)
	assert.Same(t, first, second)

	// Any node of the tree resolves against the root.
	third, err := first.AddNode(path)
	require.NoError(t, err)
	assert.Same(t, first, third)

	blog, ok := root.Child("blog")
	require.True(t, ok)
	assert.Len(t, blog.Nodes(), 1)

	self, err := root.AddNode(s.ContentPath())
	require.NoError(t, err)
	assert.Same(t, root, self)
}

func TestAddNodeErrors(t *testing.T) {
	s := newTestSite(t, nil)
	root := NewRootNode(s, s.ContentPath())

	tests := []struct {
		name string
		path string
		want error
	}{
		{"outside root", filepath.Join(s.Path, "pages"), ErrOutsideRoot},
		{"sibling with shared prefix", s.ContentPath() + "2", ErrOutsideRoot},
		{"relative path", "blog", ErrOutsideRoot},
		{"missing folder", filepath.Join(s.ContentPath(), "blog", "2011"), fs.ErrNotExist},
		{"file", filepath.Join(s.ContentPath(), "about.html"), ErrNotDir},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := root.AddNode(tt.path)
			assert.Nil(t, n)
			require.ErrorIs(t, err, tt.want)

			var perr *fs.PathError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "addnode", perr.Op)
			assert.Equal(t, tt.path, perr.Path)
		})
	}

	_, ok := root.NodeFromRelativePath("blog")
	assert.False(t, ok, "failed calls create nothing")
}

func TestFullURL(t *testing.T) {
	cfg := config.Default()
	cfg.Site.BaseURL = "http://localhost"
	s := newTestSite(t, cfg)
	root := NewRootNode(s, s.ContentPath())

	blog, err := root.AddNode(filepath.Join(s.ContentPath(), "blog"))
	require.NoError(t, err)
	december, err := root.AddNode(filepath.Join(s.ContentPath(), "blog", "2010", "december"))
	require.NoError(t, err)

	full, ok := blog.FullURL()
	require.True(t, ok)
	assert.Equal(t, "http://localhost/blog", full)

	full, ok = december.FullURL()
	require.True(t, ok)
	assert.Equal(t, "http://localhost/blog/2010/december", full)

	cfg.Site.BaseURL = "http://localhost/"
	full, _ = root.FullURL()
	assert.Equal(t, "http://localhost/", full)
}

func TestFullURLWithoutBase(t *testing.T) {
	s := newTestSite(t, nil)
	root := NewRootNode(s, s.ContentPath())

	_, ok := root.FullURL()
	assert.False(t, ok)
}
