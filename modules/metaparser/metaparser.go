package metaparser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const maxAliasLength = 100

var ErrInvalidAlias = errors.New("invalid alias")

// MetaData is the per-folder metadata file.
type MetaData struct {
	// Alias replaces the folder's name in the deploy paths of everything
	// below it.
	Alias string `toml:"alias"`
	// Variables are passed through to the render stage untouched.
	Variables map[string]interface{} `toml:"variables"`
}

// ParseMetaData parses TOML metadata into a MetaData pointer
func ParseMetaData(data []byte) (*MetaData, error) {
	meta := &MetaData{}
	if err := toml.Unmarshal(data, meta); err != nil {
		return nil, err
	}
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	return meta, nil
}

func (m *MetaData) Validate() error {
	if m.Alias == "" {
		return nil
	}
	if strings.ContainsAny(m.Alias, "<>:\"\\|?*/") || m.Alias == "." || m.Alias == ".." {
		return fmt.Errorf("%w %q: invalid characters", ErrInvalidAlias, m.Alias)
	}
	if len(m.Alias) > maxAliasLength {
		return fmt.Errorf("%w %q: longer than %d characters", ErrInvalidAlias, m.Alias, maxAliasLength)
	}
	return nil
}
