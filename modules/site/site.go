package site

import (
	"fmt"
	"iter"
	"log/slog"
	"path/filepath"
	"time"

	billy "github.com/go-git/go-billy/v5"

	"sitetree/modules/cache"
	"sitetree/modules/coalescer"
	"sitetree/modules/config"
	"sitetree/modules/fileaccess"
	"sitetree/modules/filemanager"
	"sitetree/modules/ignore"
	"sitetree/modules/logger"
	"sitetree/modules/metaparser"
	"sitetree/modules/pathutil"
)

// Site loads a content folder into a tree of nodes and resources.
type Site struct {
	// Path is the absolute site base folder.
	Path   string
	Config *config.Config

	content   *Node
	fa        *fileaccess.FileAccess
	files     *filemanager.FileManager
	cacheSize int
	logger    *slog.Logger
}

type Option func(*Site)

func WithLogger(log *slog.Logger) Option {
	return func(s *Site) {
		s.logger = log
	}
}

// WithFilesystem loads content from fs instead of the host filesystem.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(s *Site) {
		s.fa = fileaccess.New(fs)
	}
}

// WithCacheSize bounds the number of resource contents kept in memory. A
// negative size disables the content cache.
func WithCacheSize(n int) Option {
	return func(s *Site) {
		s.cacheSize = n
	}
}

// New creates a site rooted at sitePath. A nil cfg uses config.Default.
func New(sitePath string, cfg *config.Config, opts ...Option) (*Site, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(sitePath)
	if err != nil {
		return nil, fmt.Errorf("site path %s: %w", sitePath, err)
	}

	s := &Site{
		Path:   abs,
		Config: cfg,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Discard()
	}
	if s.fa == nil {
		s.fa = fileaccess.OS()
	}
	if len(cfg.Unknown) > 0 {
		s.logger.Warn("ignoring unknown config keys", "keys", cfg.Unknown)
	}

	var ca *cache.Cache
	if s.cacheSize >= 0 {
		ca = cache.NewCache(s.cacheSize)
	}
	s.files = filemanager.New(s.fa, ca, coalescer.NewCoalescer(), filemanager.Config{})

	return s, nil
}

// Content returns the root node, nil before the first successful Load.
func (s *Site) Content() *Node { return s.content }

func (s *Site) ContentPath() string { return s.Config.ContentPath(s.Path) }

func (s *Site) DeployPath() string { return s.Config.DeployPath(s.Path) }

func (s *Site) Logger() *slog.Logger { return s.logger }

// Load walks the content folder depth-first in name order and replaces the
// tree. On error the previous tree is left in place.
func (s *Site) Load() error {
	start := time.Now()

	if err := s.Config.Validate(); err != nil {
		return err
	}

	contentPath := s.ContentPath()
	isDir, err := s.fa.IsDir(contentPath)
	if err != nil {
		return fmt.Errorf("content root %s: %w", contentPath, err)
	}
	if !isDir {
		return fmt.Errorf("content root %s: %w", contentPath, ErrNotDir)
	}

	root := NewRootNode(s, contentPath)
	matcher := ignore.New(s.fa, contentPath, s.Config.Build.Exclude, s.Config.Build.IgnoreFile)

	var nodes, resources int
	if err := s.loadFolder(root, matcher, &nodes, &resources); err != nil {
		return err
	}
	if err := applyAliases(root); err != nil {
		return err
	}

	s.files.Invalidate()
	s.content = root

	s.logger.Info("site loaded",
		"content", contentPath,
		"nodes", nodes,
		"resources", resources,
		"duration", time.Since(start))
	return nil
}

func (s *Site) loadFolder(node *Node, matcher *ignore.Matcher, nodes, resources *int) error {
	entries, err := s.fa.ReadDir(node.sourceFolder)
	if err != nil {
		return fmt.Errorf("read folder %s: %w", node.sourceFolder, err)
	}

	*nodes++
	rel := node.RelativePath()

	var folders []*Node
	for _, entry := range entries {
		if entry.IsDir() {
			child, err := node.AddNode(filepath.Join(node.sourceFolder, entry.Name()))
			if err != nil {
				return err
			}
			folders = append(folders, child)
			continue
		}

		excluded, err := matcher.Match(rel, entry.Name())
		if err != nil {
			return fmt.Errorf("ignore rules for %s: %w", node.sourceFolder, err)
		}
		if metaFile := s.Config.Build.MetaFile; metaFile != "" && entry.Name() == metaFile {
			if node.meta, err = s.readMeta(filepath.Join(node.sourceFolder, metaFile)); err != nil {
				return err
			}
			excluded = true
		}
		node.addResource(entry.Name(), !excluded)
		*resources++
	}

	s.logger.Debug("loaded folder",
		"path", rel,
		"folders", len(folders),
		"resources", node.resources.Len())

	for _, child := range folders {
		if err := s.loadFolder(child, matcher, nodes, resources); err != nil {
			return err
		}
	}
	return nil
}

func (s *Site) readMeta(p string) (*metaparser.MetaData, error) {
	data, err := s.fa.Read(p)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	meta, err := metaparser.ParseMetaData(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", p, err)
	}
	return meta, nil
}

// applyAliases moves the resources of aliased folders to their aliased
// deploy paths. No two folders or files may end up at the same deploy path.
func applyAliases(root *Node) error {
	used := make(map[string]string)
	claim := func(deployPath, relPath string) error {
		if existing, ok := used[deployPath]; ok {
			return fmt.Errorf("%w: %q and %q deploy to %q", ErrAliasClash, existing, relPath, deployPath)
		}
		used[deployPath] = relPath
		return nil
	}

	for n := range root.Walk() {
		deployPath := n.RelativeDeployPath()
		if err := claim(deployPath, n.RelativePath()); err != nil {
			return err
		}

		aliased := deployPath != n.RelativePath()
		for _, r := range n.Resources() {
			if aliased {
				r.SetRelativeDeployPath(pathutil.Join(deployPath, r.name))
			}
			if err := claim(r.RelativeDeployPath(), r.RelativePath()); err != nil {
				return err
			}
		}
	}
	return nil
}

// NodeFromRelativePath looks a folder up in the loaded tree.
func (s *Site) NodeFromRelativePath(p string) (*Node, bool) {
	if s.content == nil {
		return nil, false
	}
	return s.content.NodeFromRelativePath(p)
}

// ResourceFromRelativePath looks a file up in the loaded tree.
func (s *Site) ResourceFromRelativePath(p string) (*Resource, bool) {
	if s.content == nil {
		return nil, false
	}
	return s.content.ResourceFromRelativePath(p)
}

// WalkResources yields every resource of the loaded site.
func (s *Site) WalkResources() iter.Seq[*Resource] {
	if s.content == nil {
		return func(func(*Resource) bool) {}
	}
	return s.content.WalkResources()
}
