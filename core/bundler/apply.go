package bundler

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bosh-code/injectcss/core/logger"
	"github.com/bosh-code/injectcss/core/models"
	"github.com/bosh-code/injectcss/core/pipeline"
	"github.com/bosh-code/injectcss/core/sourcemap"
)

// Apply replays the injection lifecycle over a finished build rooted at dir.
// Metafile paths are relative to dir. A fresh pipeline is built per call, so
// Apply is safe to run once per rebuild in watch mode.
func Apply(dir string, meta *Metafile, opts pipeline.Options) error {
	p := pipeline.New(opts)

	// Transform phase: feed every source module to the extractor. Sorted for
	// reproducible injection order; unreadable inputs (virtual modules) are
	// fine, they just contribute nothing.
	for _, input := range sortedKeys(meta.Inputs) {
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(input)))
		if err != nil {
			logger.Debug("Skipping unreadable input %s: %v", input, err)
			continue
		}
		p.Transform(string(data), input)
	}

	// Render phase: the metafile's outputs record which inputs were folded
	// into each emitted file.
	chunks := make([]*models.Chunk, 0, len(meta.Outputs))
	outputFiles := make([]string, 0, len(meta.Outputs))
	mapPaths := make(map[string]string)
	for _, name := range sortedKeys(meta.Outputs) {
		out := meta.Outputs[name]
		outputFiles = append(outputFiles, name)

		chunk := &models.Chunk{
			FileName: name,
			Kind:     models.ChunkKindAsset,
			Modules:  sortedKeys(out.Inputs),
		}
		if models.IsScriptFile(name) {
			chunk.Kind = models.ChunkKindCode
			target := filepath.Join(dir, filepath.FromSlash(name))
			code, err := os.ReadFile(target)
			if err != nil {
				return fmt.Errorf("failed to read chunk %s: %w", name, err)
			}
			chunk.Code = string(code)

			// Prefer the map the chunk itself points at.
			mapName := sourcemap.URL(chunk.Code)
			if mapName == "" {
				mapName = filepath.Base(target) + ".map"
			}
			mapPath := filepath.Join(filepath.Dir(target), mapName)
			if m, err := os.ReadFile(mapPath); err == nil {
				chunk.Map = m
				mapPaths[name] = mapPath
			}
		}
		chunks = append(chunks, chunk)
		p.RenderChunk(chunk)
	}

	originals := make(map[string]string, len(chunks))
	for _, chunk := range chunks {
		originals[chunk.FileName] = chunk.Code
	}

	if err := p.GenerateBundle(chunks, outputFiles); err != nil {
		return err
	}

	// Write back only the chunks the injector touched.
	for _, chunk := range chunks {
		if chunk.Kind != models.ChunkKindCode || chunk.Code == originals[chunk.FileName] {
			continue
		}
		target := filepath.Join(dir, filepath.FromSlash(chunk.FileName))
		if err := os.WriteFile(target, []byte(chunk.Code), 0o644); err != nil {
			return fmt.Errorf("failed to write chunk %s: %w", chunk.FileName, err)
		}
		if opts.Sourcemap && len(chunk.Map) > 0 {
			mapPath, ok := mapPaths[chunk.FileName]
			if !ok {
				mapPath = target + ".map"
			}
			if err := os.WriteFile(mapPath, chunk.Map, 0o644); err != nil {
				return fmt.Errorf("failed to write source map for %s: %w", chunk.FileName, err)
			}
		}
	}
	return nil
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
