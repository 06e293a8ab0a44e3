package site

import "errors"

var (
	ErrOutsideRoot = errors.New("path is outside the content root")
	ErrNotDir      = errors.New("not a directory")
	ErrAliasClash  = errors.New("folders deploy to the same path")
)
