package site

import (
	"errors"
	"io/fs"
	"iter"
	"path/filepath"
	"strings"

	"github.com/tidwall/btree"

	"sitetree/modules/fileaccess"
	"sitetree/modules/metaparser"
	"sitetree/modules/pathutil"
)

// Node is one source folder.
type Node struct {
	sourceFolder string
	name         string
	parent       *Node
	root         *Node
	site         *Site
	meta         *metaparser.MetaData

	children  btree.Map[string, *Node]
	resources btree.Map[string, *Resource]
}

// NewRootNode creates the root of a tree for the content folder.
func NewRootNode(s *Site, folder string) *Node {
	n := &Node{
		sourceFolder: folder,
		site:         s,
	}
	n.root = n
	return n
}

func (n *Node) SourceFolder() string { return n.sourceFolder }

// Name is the folder name, empty for the root.
func (n *Node) Name() string { return n.name }

func (n *Node) Parent() *Node { return n.parent }

func (n *Node) Root() *Node { return n.root }

func (n *Node) Site() *Site { return n.root.site }

func (n *Node) IsRoot() bool { return n.parent == nil }

// RelativePath is derived from the node's position under the root.
func (n *Node) RelativePath() string {
	if n.parent == nil {
		return ""
	}

	var segments []string
	for cur := n; cur.parent != nil; cur = cur.parent {
		segments = append(segments, cur.name)
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, pathutil.Separator)
}

// Meta returns the folder's metadata file contents, nil when it has none.
func (n *Node) Meta() *metaparser.MetaData { return n.meta }

// RelativeDeployPath is RelativePath with every folder alias applied.
func (n *Node) RelativeDeployPath() string {
	if n.parent == nil {
		return ""
	}
	name := n.name
	if n.meta != nil && n.meta.Alias != "" {
		name = n.meta.Alias
	}
	return pathutil.Join(n.parent.RelativeDeployPath(), name)
}

func (n *Node) URL() string {
	return "/" + n.RelativePath()
}

// FullURL prefixes URL with the configured base URL. ok is false when the
// site has no base URL.
func (n *Node) FullURL() (string, bool) {
	s := n.Site()
	if s == nil {
		return "", false
	}
	return s.Config.FullURL(n.URL())
}

// Module returns the ancestor-or-self directly below the root. The root has
// no module.
func (n *Node) Module() *Node {
	if n.parent == nil {
		return nil
	}
	m := n
	for m.parent != n.root {
		m = m.parent
	}
	return m
}

// AddNode returns the node for an absolute folder path under the tree's
// source folder, creating it and any missing ancestors. Repeated calls return
// the same node.
func (n *Node) AddNode(absPath string) (*Node, error) {
	root := n.root

	rel, err := pathutil.Rel(root.sourceFolder, absPath)
	if err != nil {
		return nil, &fs.PathError{Op: "addnode", Path: absPath, Err: ErrOutsideRoot}
	}

	isDir, err := root.fileAccess().IsDir(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fs.ErrNotExist
		}
		return nil, &fs.PathError{Op: "addnode", Path: absPath, Err: err}
	}
	if !isDir {
		return nil, &fs.PathError{Op: "addnode", Path: absPath, Err: ErrNotDir}
	}

	cur := root
	for _, segment := range pathutil.Split(rel) {
		child, ok := cur.children.Get(segment)
		if !ok {
			child = &Node{
				sourceFolder: filepath.Join(cur.sourceFolder, segment),
				name:         segment,
				parent:       cur,
				root:         root,
			}
			cur.children.Set(segment, child)
		}
		cur = child
	}
	return cur, nil
}

// NodeFromRelativePath descends from the root by folder name. The empty path
// and "/" resolve to the root. A ".." segment names no folder and misses. It
// never creates nodes.
func (n *Node) NodeFromRelativePath(p string) (*Node, bool) {
	return n.root.descend(pathutil.Split(p))
}

// ResourceFromRelativePath resolves a file path relative to the root.
func (n *Node) ResourceFromRelativePath(p string) (*Resource, bool) {
	segments := pathutil.Split(p)
	if len(segments) == 0 {
		return nil, false
	}
	node, ok := n.root.descend(segments[:len(segments)-1])
	if !ok {
		return nil, false
	}
	return node.GetResource(segments[len(segments)-1])
}

func (n *Node) descend(segments []string) (*Node, bool) {
	cur := n
	for _, segment := range segments {
		child, ok := cur.children.Get(segment)
		if !ok {
			return nil, false
		}
		cur = child
	}
	return cur, true
}

func (n *Node) ContainsResource(name string) bool {
	_, ok := n.resources.Get(name)
	return ok
}

func (n *Node) GetResource(name string) (*Resource, bool) {
	return n.resources.Get(name)
}

func (n *Node) Child(name string) (*Node, bool) {
	return n.children.Get(name)
}

// Nodes returns the direct children ordered by name.
func (n *Node) Nodes() []*Node {
	nodes := make([]*Node, 0, n.children.Len())
	n.children.Scan(func(_ string, c *Node) bool {
		nodes = append(nodes, c)
		return true
	})
	return nodes
}

// Resources returns the node's own resources ordered by name.
func (n *Node) Resources() []*Resource {
	resources := make([]*Resource, 0, n.resources.Len())
	n.resources.Scan(func(_ string, r *Resource) bool {
		resources = append(resources, r)
		return true
	})
	return resources
}

// WalkResources yields every resource in the subtree: the node's own
// resources first, then each child's subtree, all in name order.
func (n *Node) WalkResources() iter.Seq[*Resource] {
	return func(yield func(*Resource) bool) {
		n.walkResources(yield)
	}
}

func (n *Node) walkResources(yield func(*Resource) bool) bool {
	ok := true
	n.resources.Scan(func(_ string, r *Resource) bool {
		ok = yield(r)
		return ok
	})
	if !ok {
		return false
	}
	n.children.Scan(func(_ string, c *Node) bool {
		ok = c.walkResources(yield)
		return ok
	})
	return ok
}

// Walk yields the node and its descendants in pre-order.
func (n *Node) Walk() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.walk(yield)
	}
}

func (n *Node) walk(yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	ok := true
	n.children.Scan(func(_ string, c *Node) bool {
		ok = c.walk(yield)
		return ok
	})
	return ok
}

func (n *Node) addResource(name string, processable bool) *Resource {
	if r, ok := n.resources.Get(name); ok {
		return r
	}
	r := &Resource{
		sourceFile:  filepath.Join(n.sourceFolder, name),
		name:        name,
		node:        n,
		processable: processable,
	}
	n.resources.Set(name, r)
	return r
}

func (n *Node) fileAccess() *fileaccess.FileAccess {
	if s := n.Site(); s != nil {
		return s.fa
	}
	return fileaccess.OS()
}
