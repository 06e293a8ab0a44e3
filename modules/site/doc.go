// Package site mirrors a content folder into an in-memory tree that a build
// pipeline queries to resolve paths, derive URLs and place output files.
//
// Every folder under the content root becomes a [Node] and every file a
// [Resource]. The root of the tree is a Node without a parent; its
// [Node.Root] is itself.
//
//	s, err := site.New("path/to/site", cfg, site.WithLogger(log))
//	if err != nil { ... }
//	if err := s.Load(); err != nil { ... }
//
//	post, ok := s.Content().ResourceFromRelativePath("blog/2010/december/merry-christmas.html")
//	for r := range s.Content().WalkResources() { ... }
//
// Relative paths are always '/'-separated, without a leading or trailing
// slash, and the root's relative path is empty. Lookups report misses with a
// false ok value instead of an error.
//
// Once loaded the shape of the tree does not change. A resource's deploy path
// override and processable flag are the only mutable state, and the tree
// supports a single writer with any number of readers.
package site
