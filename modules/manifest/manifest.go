// Package manifest records where every resource of a loaded site is
// deployed, keyed by its source relative path, so later stages can route
// without loading the tree again.
package manifest

import (
	"bytes"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"sitetree/modules/pathutil"
	"sitetree/modules/site"
)

type Manifest struct {
	root  *RadixNode
	count int
}

func New() *Manifest {
	return &Manifest{
		root: &RadixNode{
			Children: make([]*RadixNode, 0, 8), // Pre-allocate for common case
		},
	}
}

// FromSite records every resource below root.
func FromSite(root *site.Node) *Manifest {
	m := New()
	for r := range root.WalkResources() {
		m.Insert(r.RelativePath(), FileInfo{
			Source:      r.SourceFile(),
			DeployPath:  r.RelativeDeployPath(),
			Processable: r.IsProcessable(),
			MediaType:   r.MediaType(),
		})
	}
	return m
}

func (m *Manifest) Insert(relPath string, fi FileInfo) {
	if m.root.Insert(pathutil.Split(relPath), &fi) {
		m.count++
	}
}

// Route returns the entry for a source relative path. A leading slash is
// ignored.
func (m *Manifest) Route(relPath string) (FileInfo, bool) {
	node := m.root
	for _, segment := range pathutil.Split(relPath) {
		node = node.findChild(segment)
		if node == nil {
			return FileInfo{}, false
		}
	}

	if node.FileInfo != nil {
		return *node.FileInfo, true
	}
	return FileInfo{}, false
}

func (m *Manifest) Len() int { return m.count }

// All yields every entry with its relative path in insertion order.
func (m *Manifest) All() iter.Seq2[string, FileInfo] {
	return func(yield func(string, FileInfo) bool) {
		m.root.walk("", yield)
	}
}

func (m *Manifest) Encode(w io.Writer) error {
	return msgpack.NewEncoder(w).Encode(m.root)
}

func Decode(r io.Reader) (*Manifest, error) {
	root := &RadixNode{}
	if err := msgpack.NewDecoder(r).Decode(root); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return &Manifest{root: root, count: root.count()}, nil
}

// Save writes the manifest to filename, replacing any previous one
// atomically.
func (m *Manifest) Save(filename string) error {
	var buf bytes.Buffer
	if err := m.Encode(&buf); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	return atomicWrite(filename, buf.Bytes())
}

func Load(filename string) (*Manifest, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

func atomicWrite(filename string, data []byte) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tempFile := filename + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return err
	}

	return os.Rename(tempFile, filename)
}
