package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sitetree/modules/config"
	"sitetree/modules/logger"
	"sitetree/modules/site"
)

// Config files picked up from the site folder when --config is not given.
var defaultConfigFiles = []string{"site.toml", "site.yaml", "site.yml"}

type options struct {
	sitePath   string
	configPath string
	logLevel   string
	logFormat  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "sitetree",
		Short:         "Inspect the content tree of a static site",
		Long:          "sitetree loads a site's content folder into its node and resource tree and reports paths, URLs and deploy locations.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.sitePath, "site", ".", "site base folder")
	pf.StringVar(&opts.configPath, "config", "", "TOML or YAML config file (default: site.toml, site.yaml or site.yml in the site folder)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
	pf.StringVar(&opts.logFormat, "log-format", "", "log format: text|json (overrides config)")

	root.AddCommand(newTreeCmd(opts))
	root.AddCommand(newResolveCmd(opts))
	root.AddCommand(newManifestCmd(opts))
	return root
}

func (o *options) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadConfig(o.configPath)
	}

	for _, name := range defaultConfigFiles {
		p := filepath.Join(o.sitePath, name)
		if _, err := os.Stat(p); err == nil {
			return config.LoadConfig(p)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return config.Default(), nil
}

// loadSite reads the configuration and loads the site's content tree. Logs go
// to the command's error stream.
func (o *options) loadSite(cmd *cobra.Command) (*site.Site, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Logging.Format = o.logFormat
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	s, err := site.New(o.sitePath, cfg, site.WithLogger(log))
	if err != nil {
		return nil, err
	}
	if err := s.Load(); err != nil {
		return nil, fmt.Errorf("loading site: %w", err)
	}
	return s, nil
}
