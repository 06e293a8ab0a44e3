package filemanager

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	billy "github.com/go-git/go-billy/v5"

	"sitetree/modules/cache"
	"sitetree/modules/coalescer"
	"sitetree/modules/fileaccess"
)

const DefaultTTL = 24 * time.Hour

var (
	ErrNotFound = errors.New("file not found")
)

// FileManager reads source files for resources. With a cache it memoises
// content per path and coalesces concurrent reads; without one every call
// goes to the filesystem.
type FileManager struct {
	fileAccess *fileaccess.FileAccess
	cache      *cache.Cache
	coalescer  *coalescer.Coalescer
	ttl        time.Duration
	GetContent func(path string) ([]byte, error)
}

type Config struct {
	// How long cached content stays valid. Zero uses DefaultTTL, a negative
	// value never expires.
	TTL time.Duration
}

func New(fa *fileaccess.FileAccess, ca *cache.Cache, co *coalescer.Coalescer, cfg Config) *FileManager {
	fm := &FileManager{
		fileAccess: fa,
		cache:      ca,
		coalescer:  co,
		ttl:        cfg.TTL,
	}
	if fm.ttl == 0 {
		fm.ttl = DefaultTTL
	}
	if fm.coalescer == nil {
		fm.coalescer = coalescer.NewCoalescer()
	}

	if ca != nil {
		fm.GetContent = fm.getCached
	} else {
		fm.GetContent = fm.getDirect
	}

	return fm
}

func (fm *FileManager) Exists(path string) bool {
	_, err := fm.fileAccess.Stat(path)
	return err == nil
}

// Open opens a file for streaming reads.
func (fm *FileManager) Open(path string) (billy.File, error) {
	f, err := fm.fileAccess.Open(path)
	if err != nil {
		return nil, notFound(path, err)
	}
	return f, nil
}

// Invalidate drops cached content. With no paths everything is dropped.
func (fm *FileManager) Invalidate(paths ...string) {
	if fm.cache == nil {
		return
	}
	if len(paths) == 0 {
		fm.cache.Clear()
		return
	}
	for _, p := range paths {
		fm.cache.Delete(p)
	}
}

func (fm *FileManager) getDirect(path string) ([]byte, error) {
	data, err := fm.fileAccess.Read(path)
	if err != nil {
		return nil, notFound(path, err)
	}
	return data, nil
}

func (fm *FileManager) getCached(path string) ([]byte, error) {
	if data, ok := fm.cache.Get(path); ok {
		return data, nil
	}

	return fm.coalescer.Do(path, func() ([]byte, error) {
		if data, ok := fm.cache.Get(path); ok {
			return data, nil
		}

		data, err := fm.getDirect(path)
		if err != nil {
			return nil, err
		}

		var expiry time.Time
		if fm.ttl > 0 {
			expiry = time.Now().Add(fm.ttl)
		}
		fm.cache.Set(path, data, expiry)

		return data, nil
	})
}

func notFound(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return err
}
