package bundler

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/bosh-code/injectcss/core/config"
	"github.com/bosh-code/injectcss/core/logger"
	"github.com/bosh-code/injectcss/core/models"
)

// Build bundles the configured entry points with esbuild. Stylesheet imports
// are consumed by esbuild's css loader: the import statements disappear from
// the code chunks and sibling .css files are emitted, which is exactly the
// state Apply repairs. The metafile is returned and also written to
// cfg.Metafile for later standalone inject runs.
func Build(cfg *config.Config) (*Metafile, error) {
	if len(cfg.Entries) == 0 {
		return nil, fmt.Errorf("no entry points configured")
	}

	opts := api.BuildOptions{
		EntryPoints: cfg.Entries,
		Outdir:      cfg.Dist,
		Bundle:      true,
		Metafile:    true,
		Write:       true,
		LogLevel:    api.LogLevelSilent,
	}
	switch models.Format(cfg.Format) {
	case models.FormatCJS:
		opts.Format = api.FormatCommonJS
	default:
		opts.Format = api.FormatESModule
		// Code splitting keeps shared modules in their own chunks, the
		// case the module-to-chunk correlation exists for.
		opts.Splitting = true
	}
	if cfg.Sourcemap {
		opts.Sourcemap = api.SourceMapLinked
	}

	logger.Debug("Bundling %v into %s", cfg.Entries, cfg.Dist)
	result := api.Build(opts)
	if len(result.Errors) > 0 {
		msg := result.Errors[0]
		if msg.Location != nil {
			return nil, fmt.Errorf("esbuild: %s (%s:%d)", msg.Text, msg.Location.File, msg.Location.Line)
		}
		return nil, fmt.Errorf("esbuild: %s", msg.Text)
	}
	for _, warn := range result.Warnings {
		logger.Warn("esbuild: %s", warn.Text)
	}

	if cfg.Metafile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Metafile), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create metafile dir: %w", err)
		}
		if err := os.WriteFile(cfg.Metafile, []byte(result.Metafile), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write metafile: %w", err)
		}
	}

	return ParseMetafile([]byte(result.Metafile))
}
