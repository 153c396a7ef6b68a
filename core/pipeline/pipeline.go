// Package pipeline restores stylesheet imports stripped from bundler output.
//
// A Pipeline is the state for exactly one build: which stylesheets each
// source module imported and which chunk each module was folded into.
// Construct a fresh Pipeline per build; reusing one across watch-mode
// rebuilds leaks stale module/chunk associations.
package pipeline

import (
	"sync"

	"github.com/bosh-code/injectcss/core/extract"
	"github.com/bosh-code/injectcss/core/logger"
	"github.com/bosh-code/injectcss/core/models"
	"github.com/bosh-code/injectcss/core/parser"
)

// Options configures one build's pipeline.
type Options struct {
	// Sourcemap regenerates chunk source maps after splicing. On by default.
	Sourcemap bool
	// Format of the emitted statements. FormatNone infers per chunk file.
	Format models.Format
	// Extensions overrides the stylesheet extensions the extractor accepts.
	Extensions []string
	// Offsets is the statement-boundary capability; nil uses the JS lexer.
	Offsets parser.OffsetFinder
}

// DefaultOptions returns the options the host applies when given none.
func DefaultOptions() Options {
	return Options{Sourcemap: true}
}

// Pipeline accumulates per-build state across the host's lifecycle hooks and
// performs the final injection. Methods are safe for concurrent use so the
// host may run Transform across workers.
type Pipeline struct {
	mu        sync.Mutex
	opts      Options
	extractor *extract.Extractor
	offsets   parser.OffsetFinder

	stylesByModule map[string][]string
	moduleOrder    []string
	chunkForModule map[string]string
}

// New creates the state for one build invocation.
func New(opts Options) *Pipeline {
	offsets := opts.Offsets
	if offsets == nil {
		offsets = parser.New()
	}
	return &Pipeline{
		opts:           opts,
		extractor:      extract.New(opts.Extensions...),
		offsets:        offsets,
		stylesByModule: make(map[string][]string),
		chunkForModule: make(map[string]string),
	}
}

// OutputOptions observes the host's resolved output options and forces
// transitive-import hoisting off so chunk boundaries stay correlated with
// module membership. Everything else passes through.
func (p *Pipeline) OutputOptions(o models.OutputOptions) models.OutputOptions {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.opts.Format == models.FormatNone {
		p.opts.Format = o.Format
	}
	o.HoistTransitiveImports = false
	return o
}

// Transform observes one source module's text and records its stylesheet
// imports. Read-only with respect to the source; call once per module, in
// any order, from any goroutine.
func (p *Pipeline) Transform(source, moduleID string) {
	styles := p.extractor.Extract(source)
	if len(styles) == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, seen := p.stylesByModule[moduleID]; !seen {
		p.moduleOrder = append(p.moduleOrder, moduleID)
	}
	p.stylesByModule[moduleID] = styles
	logger.Debug("Module %s imports %d stylesheet(s): %v", moduleID, len(styles), styles)
}

// RenderChunk observes one finalized chunk and records which chunk now owns
// each of its modules. A module landing in two chunks keeps the last one;
// bundlers assign each module to exactly one chunk in a standard build.
func (p *Pipeline) RenderChunk(chunk *models.Chunk) {
	if chunk == nil || len(chunk.Modules) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, m := range chunk.Modules {
		p.chunkForModule[m] = chunk.FileName
	}
}
