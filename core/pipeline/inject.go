package pipeline

import (
	"fmt"
	"path"
	"strings"

	"github.com/bosh-code/injectcss/core/extract"
	"github.com/bosh-code/injectcss/core/logger"
	"github.com/bosh-code/injectcss/core/models"
	"github.com/bosh-code/injectcss/core/sourcemap"
)

// GenerateBundle is the final lifecycle step: it aggregates stylesheet
// dependencies per chunk, validates them against the build's emitted
// stylesheet files, and splices re-declared import (or require) statements
// into each code chunk's text. Call exactly once per build, after every
// Transform and RenderChunk.
//
// Matching policy: a declared path matches an output stylesheet by base
// name, tolerating the bundler relocating stylesheet files. When the build
// emitted exactly one stylesheet, every declared dependency resolves to it
// (the merged-sheet library case). Unresolved dependencies are skipped, not
// errors; the symptom is a missing import in the output.
func (p *Pipeline) GenerateBundle(chunks []*models.Chunk, outputFiles []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	sheets := stylesheetFiles(outputFiles)
	stylesByChunk := p.aggregate(sheets)
	if len(stylesByChunk) == 0 {
		logger.Debug("No chunk has stylesheet dependencies, nothing to inject")
		return nil
	}

	for _, chunk := range chunks {
		if chunk.Kind != models.ChunkKindCode || !models.IsScriptFile(chunk.FileName) {
			continue
		}
		styles := stylesByChunk[chunk.FileName]
		if len(styles) == 0 {
			continue
		}
		if err := p.splice(chunk, styles); err != nil {
			return err
		}
		logger.Info("Injected %d stylesheet import(s) into %s", len(styles), chunk.FileName)
	}
	return nil
}

// aggregate resolves every recorded module to its chunk and unions the
// module's stylesheet paths into that chunk's set, deduplicated, in
// first-seen module order. Modules without a chunk were tree-shaken out.
func (p *Pipeline) aggregate(sheets []string) map[string][]string {
	stylesByChunk := make(map[string][]string)
	seen := make(map[string]map[string]bool)

	for _, moduleID := range p.moduleOrder {
		chunkID, ok := p.chunkForModule[moduleID]
		if !ok {
			logger.Debug("Module %s not present in any chunk, skipping", moduleID)
			continue
		}
		for _, declared := range p.stylesByModule[moduleID] {
			target, ok := resolveSheet(declared, sheets)
			if !ok {
				logger.Debug("No output stylesheet matches %q (module %s)", declared, moduleID)
				continue
			}
			if seen[chunkID] == nil {
				seen[chunkID] = make(map[string]bool)
			}
			if seen[chunkID][target] {
				continue
			}
			seen[chunkID][target] = true
			stylesByChunk[chunkID] = append(stylesByChunk[chunkID], target)
		}
	}
	return stylesByChunk
}

// resolveSheet maps a source-declared stylesheet path to an emitted
// stylesheet file, by base name, with a single-file fallback.
func resolveSheet(declared string, sheets []string) (string, bool) {
	base := path.Base(extract.StripQuery(declared))
	for _, sheet := range sheets {
		if path.Base(sheet) == base {
			return sheet, true
		}
	}
	if len(sheets) == 1 {
		return sheets[0], true
	}
	return "", false
}

func (p *Pipeline) splice(chunk *models.Chunk, styles []string) error {
	offset := p.offsets.FirstStatementOffset(chunk.Code)
	if offset < 0 || offset > len(chunk.Code) {
		offset = 0
	}

	block := renderStatements(styles, models.FormatForFile(chunk.FileName, p.opts.Format))
	line := strings.Count(chunk.Code[:offset], "\n")
	chunk.Code = chunk.Code[:offset] + block + chunk.Code[offset:]

	if p.opts.Sourcemap && len(chunk.Map) > 0 {
		shifted, err := sourcemap.ShiftLines(chunk.Map, line, len(styles))
		if err != nil {
			return fmt.Errorf("failed to adjust source map for %s: %w", chunk.FileName, err)
		}
		chunk.Map = shifted
	}
	return nil
}

// renderStatements emits one re-declared import per stylesheet, each on its
// own line. Targets sit alongside the chunk, so paths are forced relative.
func renderStatements(styles []string, format models.Format) string {
	var b strings.Builder
	for _, sheet := range styles {
		target := relativize(path.Base(sheet))
		if format == models.FormatCJS {
			fmt.Fprintf(&b, "require('%s');\n", target)
		} else {
			fmt.Fprintf(&b, "import '%s';\n", target)
		}
	}
	return b.String()
}

func relativize(p string) string {
	if strings.HasPrefix(p, "./") || strings.HasPrefix(p, "../") {
		return p
	}
	return "./" + p
}

// stylesheetFiles filters the build's final output file names down to
// stylesheet assets. The default extension set applies here regardless of
// any extractor override: bundlers compile preprocessor sources down to
// plain stylesheet outputs.
func stylesheetFiles(outputFiles []string) []string {
	defaults := extract.New()
	var sheets []string
	for _, name := range outputFiles {
		if defaults.IsStylesheetPath(name) {
			sheets = append(sheets, name)
		}
	}
	return sheets
}
