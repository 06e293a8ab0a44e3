package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"
)

const (
	DefaultContentRoot = "content"
	DefaultIgnoreFile  = ".buildignore"
	DefaultDeployRoot  = "deploy"
	DefaultManifest    = "deploy/.manifest"
)

var ErrInvalid = errors.New("invalid configuration")

// Error reports a configuration source or field that cannot be used.
type Error struct {
	Source string
	Field  string
	Err    error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString("config")
	if e.Source != "" {
		sb.WriteString(" ")
		sb.WriteString(e.Source)
	}
	if e.Field != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Field)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Err.Error())
	return sb.String()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrInvalid }

type Config struct {
	Site struct {
		// Folder holding the source content, relative to the site path
		// unless absolute.
		ContentRoot string `toml:"content_root" yaml:"content_root"`
		// Absolute URL prefix for full URLs. Empty disables them.
		BaseURL string `toml:"base_url" yaml:"base_url"`
	} `toml:"site" yaml:"site"`

	Build struct {
		// Glob patterns on file names that mark resources as not processable.
		Exclude []string `toml:"exclude" yaml:"exclude"`
		// Per-folder pattern file. Empty disables per-folder patterns.
		IgnoreFile string `toml:"ignore_file" yaml:"ignore_file"`
		// Per-folder metadata file carrying a deploy alias. Empty disables it.
		MetaFile string `toml:"meta_file" yaml:"meta_file"`
	} `toml:"build" yaml:"build"`

	Deploy struct {
		DeployRoot string `toml:"deploy_root" yaml:"deploy_root"`
		Manifest   string `toml:"manifest" yaml:"manifest"`
	} `toml:"deploy" yaml:"deploy"`

	Logging struct {
		Level  string `toml:"level" yaml:"level"`
		Format string `toml:"format" yaml:"format"`
	} `toml:"logging" yaml:"logging"`

	// Unknown lists the keys of the loaded file this package does not use,
	// as "section.key". They are skipped, not rejected.
	Unknown []string `toml:"-" yaml:"-"`
}

// knownKeys are the recognised sections and their keys. A nil key list marks
// a flat top-level key.
var knownKeys = map[string][]string{
	"site":    {"content_root", "base_url"},
	"build":   {"exclude", "ignore_file", "meta_file"},
	"deploy":  {"deploy_root", "manifest"},
	"logging": {"level", "format"},

	"content_root": nil,
	"base_url":     nil,
	"deploy_root":  nil,
}

// Default returns a Config with every option set to its documented default.
func Default() *Config {
	cfg := &Config{}
	cfg.Site.ContentRoot = DefaultContentRoot
	cfg.Build.IgnoreFile = DefaultIgnoreFile
	cfg.Deploy.DeployRoot = DefaultDeployRoot
	cfg.Deploy.Manifest = DefaultManifest
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "text"
	return cfg
}

// yamlFile also accepts the flat top-level keys used by simple site configs.
type yamlFile struct {
	Config      `yaml:",inline"`
	ContentRoot string `yaml:"content_root"`
	BaseURL     string `yaml:"base_url"`
	DeployRoot  string `yaml:"deploy_root"`
}

// LoadConfig reads a TOML or YAML file on top of the defaults and validates
// the result. Keys absent from the file keep their default values; keys this
// package does not know, such as the layout or media settings other build
// stages read from the same file, are recorded in Config.Unknown.
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, &Error{Source: configPath, Err: err}
	}

	cfg, err := Parse(data, filepath.Ext(configPath))
	if err != nil {
		var cerr *Error
		if errors.As(err, &cerr) && cerr.Source == "" {
			cerr.Source = configPath
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes data in the format named by ext (".toml", ".yaml", ".yml").
func Parse(data []byte, ext string) (*Config, error) {
	var cfg *Config

	switch strings.ToLower(ext) {
	case ".toml":
		cfg = Default()
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, &Error{Err: err}
		}
		for _, key := range md.Undecoded() {
			cfg.Unknown = append(cfg.Unknown, key.String())
		}
	case ".yaml", ".yml":
		f := yamlFile{Config: *Default()}
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, &Error{Err: err}
		}
		cfg = &f.Config

		var raw map[string]interface{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &Error{Err: err}
		}
		cfg.Unknown = unknownYAMLKeys(raw)

		if f.ContentRoot != "" {
			cfg.Site.ContentRoot = f.ContentRoot
		}
		if f.BaseURL != "" {
			cfg.Site.BaseURL = f.BaseURL
		}
		if f.DeployRoot != "" {
			cfg.Deploy.DeployRoot = f.DeployRoot
		}
	default:
		return nil, &Error{Err: fmt.Errorf("unsupported config format %q", ext)}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func unknownYAMLKeys(raw map[string]interface{}) []string {
	var unknown []string
	for key, value := range raw {
		keys, known := knownKeys[key]
		if !known {
			unknown = append(unknown, key)
			continue
		}
		section, ok := value.(map[interface{}]interface{})
		if keys == nil || !ok {
			continue
		}
		for k := range section {
			name := fmt.Sprint(k)
			if !slices.Contains(keys, name) {
				unknown = append(unknown, key+"."+name)
			}
		}
	}
	sort.Strings(unknown)
	return unknown
}

// Validate checks every recognised option.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Site.ContentRoot) == "" {
		return &Error{Field: "site.content_root", Err: errors.New("must not be empty")}
	}

	if c.Site.BaseURL != "" {
		u, err := url.Parse(c.Site.BaseURL)
		if err != nil {
			return &Error{Field: "site.base_url", Err: err}
		}
		if u.Scheme == "" || u.Host == "" {
			return &Error{Field: "site.base_url", Err: fmt.Errorf("%q is not an absolute URL", c.Site.BaseURL)}
		}
	}

	for _, pattern := range c.Build.Exclude {
		if _, err := path.Match(pattern, ""); err != nil {
			return &Error{Field: "build.exclude", Err: fmt.Errorf("%q: %w", pattern, err)}
		}
	}

	if strings.ContainsAny(c.Build.IgnoreFile, `/\`) {
		return &Error{Field: "build.ignore_file", Err: errors.New("must be a file name")}
	}
	if strings.ContainsAny(c.Build.MetaFile, `/\`) {
		return &Error{Field: "build.meta_file", Err: errors.New("must be a file name")}
	}
	if c.Build.MetaFile != "" && c.Build.MetaFile == c.Build.IgnoreFile {
		return &Error{Field: "build.meta_file", Err: errors.New("must differ from build.ignore_file")}
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return &Error{Field: "logging.level", Err: fmt.Errorf("unknown level %q", c.Logging.Level)}
	}

	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return &Error{Field: "logging.format", Err: fmt.Errorf("unknown format %q", c.Logging.Format)}
	}

	return nil
}

// ContentPath resolves the content root against the site path.
func (c *Config) ContentPath(sitePath string) string {
	return resolve(sitePath, c.Site.ContentRoot)
}

// DeployPath resolves the deploy root against the site path.
func (c *Config) DeployPath(sitePath string) string {
	return resolve(sitePath, c.Deploy.DeployRoot)
}

// ManifestPath resolves the manifest file against the site path.
func (c *Config) ManifestPath(sitePath string) string {
	return resolve(sitePath, c.Deploy.Manifest)
}

// FullURL prefixes an absolute site URL with the base URL. ok is false when
// no base URL is configured.
func (c *Config) FullURL(siteURL string) (string, bool) {
	if c == nil || c.Site.BaseURL == "" {
		return "", false
	}
	return strings.TrimRight(c.Site.BaseURL, "/") + siteURL, true
}

func resolve(sitePath, p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(sitePath, p)
}
