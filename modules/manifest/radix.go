package manifest

// FileInfo describes where one source file is deployed.
type FileInfo struct {
	Source      string `msgpack:"source"`
	DeployPath  string `msgpack:"deploy_path"`
	Processable bool   `msgpack:"processable"`
	MediaType   string `msgpack:"media_type,omitempty"`
}

type RadixNode struct {
	Path     string       `msgpack:"path"`
	Children []*RadixNode `msgpack:"children,omitempty"`
	FileInfo *FileInfo    `msgpack:"file,omitempty"`
}

func (n *RadixNode) findChild(segment string) *RadixNode {
	for _, child := range n.Children {
		if child.Path == segment {
			return child
		}
	}
	return nil
}

// Insert stores fileInfo at the node reached by segments, creating missing
// nodes. It reports whether the leaf was new.
func (n *RadixNode) Insert(segments []string, fileInfo *FileInfo) bool {
	if len(segments) == 0 {
		added := n.FileInfo == nil
		n.FileInfo = fileInfo
		return added
	}

	segment := segments[0]
	child := n.findChild(segment)
	if child == nil {
		child = &RadixNode{
			Path:     segment,
			Children: make([]*RadixNode, 0, 4), // Pre-allocate for common case
		}
		n.Children = append(n.Children, child)
	}

	return child.Insert(segments[1:], fileInfo)
}

func (n *RadixNode) count() int {
	c := 0
	if n.FileInfo != nil {
		c++
	}
	for _, child := range n.Children {
		c += child.count()
	}
	return c
}

func (n *RadixNode) walk(prefix string, fn func(string, FileInfo) bool) bool {
	if n.FileInfo != nil && !fn(prefix, *n.FileInfo) {
		return false
	}
	for _, child := range n.Children {
		p := child.Path
		if prefix != "" {
			p = prefix + "/" + child.Path
		}
		if !child.walk(p, fn) {
			return false
		}
	}
	return true
}
