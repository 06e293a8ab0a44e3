package site

import (
	"path"

	"sitetree/modules/pathutil"
	"sitetree/modules/utils"
)

// Resource is one source file.
type Resource struct {
	sourceFile  string
	name        string
	node        *Node
	deployPath  *string
	processable bool
}

func (r *Resource) SourceFile() string { return r.sourceFile }

func (r *Resource) Name() string { return r.name }

func (r *Resource) Node() *Node { return r.node }

func (r *Resource) Site() *Site { return r.node.Site() }

// RelativePath is the owning node's relative path joined with the file name.
func (r *Resource) RelativePath() string {
	return pathutil.Join(r.node.RelativePath(), r.name)
}

// RelativeDeployPath is where the resource's output goes, relative to the
// deploy root. Without an override it equals RelativePath.
func (r *Resource) RelativeDeployPath() string {
	if r.deployPath != nil {
		return *r.deployPath
	}
	return r.RelativePath()
}

// SetRelativeDeployPath overrides the deploy path of this resource only.
func (r *Resource) SetRelativeDeployPath(p string) {
	p = pathutil.Normalize(p)
	r.deployPath = &p
}

func (r *Resource) ResetRelativeDeployPath() {
	r.deployPath = nil
}

func (r *Resource) HasDeployOverride() bool {
	return r.deployPath != nil
}

// DeployFile is the host path the deploy stage writes the resource to.
func (r *Resource) DeployFile() string {
	s := r.Site()
	if s == nil {
		return ""
	}
	return pathutil.FromRel(s.DeployPath(), r.RelativeDeployPath())
}

func (r *Resource) IsProcessable() bool { return r.processable }

func (r *Resource) SetProcessable(processable bool) { r.processable = processable }

func (r *Resource) URL() string {
	return "/" + r.RelativeDeployPath()
}

func (r *Resource) FullURL() (string, bool) {
	s := r.Site()
	if s == nil {
		return "", false
	}
	return s.Config.FullURL(r.URL())
}

// Extension returns the file extension including the dot.
func (r *Resource) Extension() string {
	return path.Ext(r.name)
}

func (r *Resource) MediaType() string {
	return utils.GetMimeType(r.Extension())
}

// Content reads the source file through the site's file manager.
func (r *Resource) Content() ([]byte, error) {
	if s := r.Site(); s != nil {
		return s.files.GetContent(r.sourceFile)
	}
	return r.node.fileAccess().Read(r.sourceFile)
}
