// Package ignore decides which content files are left out of processing.
//
// Patterns are shell globs matched against a file's base name. Global
// patterns apply everywhere; patterns listed in a folder's ignore file apply
// to that folder and everything below it.
package ignore

import (
	"bufio"
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"sitetree/modules/fileaccess"
	"sitetree/modules/pathutil"
)

type Matcher struct {
	fa         *fileaccess.FileAccess
	root       string
	global     []string
	ignoreFile string

	mu       sync.RWMutex
	patterns map[string][]string
}

// New creates a Matcher for the content folder root. ignoreFile names the
// per-folder pattern file; empty disables per-folder patterns.
func New(fa *fileaccess.FileAccess, root string, patterns []string, ignoreFile string) *Matcher {
	return &Matcher{
		fa:         fa,
		root:       root,
		global:     patterns,
		ignoreFile: ignoreFile,
		patterns:   make(map[string][]string),
	}
}

// Match reports whether the file name inside the folder at relative path dir
// is excluded. The ignore file itself always matches.
func (m *Matcher) Match(dir, name string) (bool, error) {
	if m.ignoreFile != "" && name == m.ignoreFile {
		return true, nil
	}
	if matchAny(m.global, name) {
		return true, nil
	}
	if m.ignoreFile == "" {
		return false, nil
	}

	// Walk from the folder up to the root.
	segments := pathutil.Split(dir)
	for i := len(segments); i >= 0; i-- {
		patterns, err := m.loadPatterns(segments[:i])
		if err != nil {
			return false, err
		}
		if matchAny(patterns, name) {
			return true, nil
		}
	}
	return false, nil
}

func (m *Matcher) loadPatterns(segments []string) ([]string, error) {
	dir := pathutil.Join(segments...)

	m.mu.RLock()
	if patterns, ok := m.patterns[dir]; ok {
		m.mu.RUnlock()
		return patterns, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double check after acquiring write lock
	if patterns, ok := m.patterns[dir]; ok {
		return patterns, nil
	}

	host := filepath.Join(append(append([]string{m.root}, segments...), m.ignoreFile)...)
	patterns, err := m.readIgnoreFile(host)
	if err != nil {
		return nil, err
	}

	m.patterns[dir] = patterns
	return patterns, nil
}

func (m *Matcher) readIgnoreFile(ignoreFile string) ([]string, error) {
	file, err := m.fa.Open(ignoreFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var patterns []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		pattern := strings.TrimSpace(scanner.Text())
		if pattern != "" && !strings.HasPrefix(pattern, "#") {
			patterns = append(patterns, pattern)
		}
	}
	return patterns, scanner.Err()
}

func matchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if matched, _ := path.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
