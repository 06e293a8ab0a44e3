// Package pathutil converts host filesystem paths into the '/'-separated
// relative paths used throughout the content tree.
//
// File and folder names are taken as they are: on hosts where '\' is a legal
// name character it stays part of the name. Only host separators become '/'.
package pathutil

import (
	"errors"
	"path"
	"path/filepath"
	"strings"
)

const Separator = "/"

var ErrOutside = errors.New("path is not under base")

// Normalize turns a host or slash path into a clean relative path: forward
// slashes, no leading or trailing separator, and "" for the base itself.
// Dot segments are resolved, so it suits paths that name an output location,
// not lookups.
func Normalize(p string) string {
	p = path.Clean(Separator + filepath.ToSlash(p))
	return strings.Trim(p, Separator)
}

// Rel returns target relative to base as a slash path. Both are host paths.
// Fails with ErrOutside when target is not base or a descendant.
func Rel(base, target string) (string, error) {
	rel, err := filepath.Rel(filepath.Clean(base), filepath.Clean(target))
	if err != nil {
		return "", ErrOutside
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") || filepath.IsAbs(rel) {
		return "", ErrOutside
	}
	if rel == "." {
		return "", nil
	}
	return rel, nil
}

// Split breaks a relative path into its segments. Empty and "." segments are
// dropped, so leading, trailing and doubled separators are tolerated; ".." is
// kept as a segment of its own.
func Split(rel string) []string {
	var segments []string
	for _, s := range strings.Split(filepath.ToSlash(rel), Separator) {
		if s == "" || s == "." {
			continue
		}
		segments = append(segments, s)
	}
	return segments
}

// Join joins relative segments with '/', skipping empty ones. Segments are
// not cleaned.
func Join(parts ...string) string {
	var sb strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(Separator)
		}
		sb.WriteString(p)
	}
	return sb.String()
}

// FromRel converts a relative slash path back into a host path under base.
func FromRel(base, rel string) string {
	return filepath.Join(append([]string{base}, Split(rel)...)...)
}
