// Package bundler adapts esbuild as the host build pipeline: it runs a
// bundle, then replays the injection lifecycle over the finished output
// using the build metafile as the module-to-chunk record.
package bundler

import (
	"encoding/json"
	"fmt"
	"os"
)

// Metafile is the subset of esbuild's metafile JSON the adapter consumes.
type Metafile struct {
	Inputs  map[string]MetafileInput  `json:"inputs"`
	Outputs map[string]MetafileOutput `json:"outputs"`
}

// MetafileInput is one source module fed into the build.
type MetafileInput struct {
	Bytes   int              `json:"bytes"`
	Imports []MetafileImport `json:"imports"`
	Format  string           `json:"format,omitempty"`
}

// MetafileImport is one import edge recorded by the bundler.
type MetafileImport struct {
	Path     string `json:"path"`
	Kind     string `json:"kind"`
	External bool   `json:"external,omitempty"`
	Original string `json:"original,omitempty"`
}

// MetafileOutput is one emitted file: its contributing inputs and, for code
// chunks, the sibling stylesheet bundle esbuild produced for it.
type MetafileOutput struct {
	Bytes      int                     `json:"bytes"`
	Inputs     map[string]InputContrib `json:"inputs"`
	Imports    []MetafileImport        `json:"imports"`
	Exports    []string                `json:"exports"`
	EntryPoint string                  `json:"entryPoint,omitempty"`
	CSSBundle  string                  `json:"cssBundle,omitempty"`
}

// InputContrib is an input's contribution to one output.
type InputContrib struct {
	BytesInOutput int `json:"bytesInOutput"`
}

// ParseMetafile decodes a metafile document.
func ParseMetafile(data []byte) (*Metafile, error) {
	var m Metafile
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse metafile: %w", err)
	}
	return &m, nil
}

// ReadMetafile loads and decodes a metafile from disk.
func ReadMetafile(path string) (*Metafile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metafile %s: %w", path, err)
	}
	return ParseMetafile(data)
}
