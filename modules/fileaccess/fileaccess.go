package fileaccess

import (
	"io"
	"os"
	"sort"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// FileAccess provides the file operations the content tree needs on top of a
// billy filesystem, so the same code runs against disk or memory.
type FileAccess struct {
	fs billy.Filesystem
}

// New creates a FileAccess over fs. Paths passed to its methods are absolute
// paths within fs.
func New(fs billy.Filesystem) *FileAccess {
	return &FileAccess{fs: fs}
}

// OS creates a FileAccess over the host filesystem.
func OS() *FileAccess {
	return New(osfs.New("/"))
}

// Filesystem returns the backing filesystem.
func (fa *FileAccess) Filesystem() billy.Filesystem {
	return fa.fs
}

// Read reads entire file content
func (fa *FileAccess) Read(path string) ([]byte, error) {
	stat, err := fa.fs.Stat(path)
	if err != nil {
		return nil, err
	}

	f, err := fa.fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, stat.Size())
	_, err = io.ReadFull(f, buf)
	return buf, err
}

// Open returns a billy.File for streaming operations
func (fa *FileAccess) Open(path string) (billy.File, error) {
	return fa.fs.Open(path)
}

// Stat returns file information
func (fa *FileAccess) Stat(path string) (os.FileInfo, error) {
	return fa.fs.Stat(path)
}

// ReadDir lists a folder, sorted by name.
func (fa *FileAccess) ReadDir(path string) ([]os.FileInfo, error) {
	entries, err := fa.fs.ReadDir(path)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

// IsDir reports whether path exists and is a folder.
func (fa *FileAccess) IsDir(path string) (bool, error) {
	info, err := fa.fs.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
