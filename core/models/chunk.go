package models

import (
	"path"
	"strings"
)

// ChunkKind discriminates compiled code chunks from raw emitted assets.
type ChunkKind int

const (
	ChunkKindCode ChunkKind = iota
	ChunkKindAsset
)

func (k ChunkKind) String() string {
	switch k {
	case ChunkKindCode:
		return "code"
	case ChunkKindAsset:
		return "asset"
	default:
		return "unknown"
	}
}

// Chunk is one output file of a code-split build: its name, compiled body,
// the source modules folded into it, and an optional raw source map.
type Chunk struct {
	FileName string
	Code     string
	Kind     ChunkKind
	Modules  []string
	Map      []byte
}

// Format is the module format of the emitted chunks.
type Format string

const (
	FormatNone Format = ""
	FormatESM  Format = "esm"
	FormatCJS  Format = "cjs"
)

// OutputOptions is the subset of the host bundler's output configuration
// the pipeline observes.
type OutputOptions struct {
	Format    Format
	Sourcemap bool

	// HoistTransitiveImports collapses chunk boundaries when left on,
	// which breaks module-to-chunk correlation. The pipeline forces it off.
	HoistTransitiveImports bool
}

var scriptExts = map[string]bool{
	".js":  true,
	".mjs": true,
	".cjs": true,
}

// IsScriptFile reports whether name has a recognized script extension.
func IsScriptFile(name string) bool {
	return scriptExts[strings.ToLower(path.Ext(name))]
}

// FormatForFile infers the module format from the file extension, falling
// back to the given format (or ESM when none is set).
func FormatForFile(name string, fallback Format) Format {
	switch strings.ToLower(path.Ext(name)) {
	case ".mjs":
		return FormatESM
	case ".cjs":
		return FormatCJS
	}
	if fallback != FormatNone {
		return fallback
	}
	return FormatESM
}
