package extract

import (
	"path"
	"regexp"
	"strings"
)

// DefaultExtensions is the set of import targets treated as stylesheets.
var DefaultExtensions = []string{".css", ".scss", ".sass", ".less", ".styl"}

// importRe matches static import declarations and captures the target path.
// The optional clause ([^'"();]*?from) covers default, namespace and named
// forms; excluding parens keeps dynamic import(...) out, and requiring a
// statement boundary before the keyword keeps import expressions inside
// larger statements out while still catching minified ;import"..." runs.
// This is a lexical scan, not a parse: matches inside string literals or
// comments are an accepted limitation.
var importRe = regexp.MustCompile(`(?m)(?:^|[;})])[ \t]*import\s*(?:[^'"();]*?from\s*)?(['"])([^'"]+)['"]`)

// Extractor scans module source text for stylesheet import declarations.
type Extractor struct {
	exts map[string]bool
}

// New creates an Extractor recognizing the given stylesheet extensions,
// or DefaultExtensions when none are given.
func New(exts ...string) *Extractor {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[strings.ToLower(ext)] = true
	}
	return &Extractor{exts: set}
}

// Extract returns every stylesheet path imported by the source text, in
// order of appearance, duplicates preserved. Paths keep any query suffix
// (e.g. "./a.css?inline"). Never errors; no matches yields nil.
func (e *Extractor) Extract(source string) []string {
	var paths []string
	for _, m := range importRe.FindAllStringSubmatch(source, -1) {
		p := m[2]
		if e.IsStylesheetPath(p) {
			paths = append(paths, p)
		}
	}
	return paths
}

// IsStylesheetPath reports whether p, ignoring any query suffix, has one of
// the extractor's stylesheet extensions.
func (e *Extractor) IsStylesheetPath(p string) bool {
	return e.exts[strings.ToLower(path.Ext(StripQuery(p)))]
}

// StripQuery removes a trailing ?query suffix from an import path.
func StripQuery(p string) string {
	if i := strings.IndexByte(p, '?'); i >= 0 {
		return p[:i]
	}
	return p
}
