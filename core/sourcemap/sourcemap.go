// Package sourcemap adjusts source map v3 files after lines are spliced
// into the generated output they describe.
package sourcemap

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Map is a source map v3 document. Fields not understood are dropped on
// rewrite; sourcesContent entries may be null.
type Map struct {
	Version        int       `json:"version"`
	File           string    `json:"file,omitempty"`
	SourceRoot     string    `json:"sourceRoot,omitempty"`
	Sources        []string  `json:"sources"`
	SourcesContent []*string `json:"sourcesContent,omitempty"`
	Names          []string  `json:"names"`
	Mappings       string    `json:"mappings"`
}

// urlRe matches a sourceMappingURL comment line.
var urlRe = regexp.MustCompile(`(?m)^//[#@]\s*sourceMappingURL=(.*)$`)

// URL returns the sourceMappingURL referenced by the chunk body, or "".
func URL(code string) string {
	m := urlRe.FindStringSubmatch(code)
	if len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// ShiftLines rewrites the map so that count synthetic (unmapped) lines exist
// at generated line index line. Groups in the mappings string are positional
// per generated line, so inserting empty groups shifts every following line
// without decoding any VLQ segment.
func ShiftLines(data []byte, line, count int) ([]byte, error) {
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	m.Mappings = insertEmptyGroups(m.Mappings, line, count)
	return json.Marshal(&m)
}

func insertEmptyGroups(mappings string, line, count int) string {
	if count <= 0 {
		return mappings
	}
	pad := strings.Repeat(";", count)
	if line <= 0 {
		return pad + mappings
	}
	idx := 0
	for i := 0; i < line; i++ {
		j := strings.IndexByte(mappings[idx:], ';')
		if j < 0 {
			// The map ends before the insertion line; later lines were
			// already unmapped and stay that way.
			return mappings
		}
		idx += j + 1
	}
	return mappings[:idx] + pad + mappings[idx:]
}
