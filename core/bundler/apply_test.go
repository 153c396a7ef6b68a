package bundler

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bosh-code/injectcss/core/pipeline"
)

// writeTree lays out a fake finished build under dir.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestApply_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/index.js": `import './index.css';
import { Button } from './button.js';
export { Button };
`,
		"src/button.js": `import './button.css';
export function Button() {}
`,
		"src/index.css":  ":root { --x: 1; }\n",
		"src/button.css": ".btn {}\n",
		"dist/index.js": `import "./chunk-ABC.js";
const boot = true;
export { boot };
`,
		"dist/chunk-ABC.js": "const shared = 1;\nexport { shared };\n",
		"dist/index.css":    ":root { --x: 1; }\n.btn {}\n",
	})

	meta := &Metafile{
		Inputs: map[string]MetafileInput{
			"src/index.js":   {},
			"src/button.js":  {},
			"src/index.css":  {},
			"src/button.css": {},
		},
		Outputs: map[string]MetafileOutput{
			"dist/index.js": {
				Inputs:     map[string]InputContrib{"src/index.js": {}},
				EntryPoint: "src/index.js",
				CSSBundle:  "dist/index.css",
			},
			"dist/chunk-ABC.js": {
				Inputs: map[string]InputContrib{"src/button.js": {}},
			},
			"dist/index.css": {
				Inputs: map[string]InputContrib{"src/index.css": {}, "src/button.css": {}},
			},
		},
	}

	require.NoError(t, Apply(dir, meta, pipeline.DefaultOptions()))

	// Both modules' sheets were merged into one output stylesheet; the
	// single-file fallback binds each chunk to it.
	entry, err := os.ReadFile(filepath.Join(dir, "dist", "index.js"))
	require.NoError(t, err)
	assert.Equal(t, `import "./chunk-ABC.js";
import './index.css';
const boot = true;
export { boot };
`, string(entry))

	shared, err := os.ReadFile(filepath.Join(dir, "dist", "chunk-ABC.js"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(shared), "import './index.css';\n"))

	// The stylesheet itself is never rewritten.
	sheet, err := os.ReadFile(filepath.Join(dir, "dist", "index.css"))
	require.NoError(t, err)
	assert.Equal(t, ":root { --x: 1; }\n.btn {}\n", string(sheet))
}

func TestApply_SourcemapRewritten(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/index.js":  "import './index.css';\nexport const a = 1;\n",
		"src/index.css": ":root {}\n",
		"dist/index.js": "const a = 1;\nexport { a };\n//# sourceMappingURL=index.js.map\n",
		"dist/index.js.map": `{"version":3,"sources":["../src/index.js"],"names":[],"mappings":"AAAA;AACA"}`,
		"dist/index.css": ":root {}\n",
	})

	meta := &Metafile{
		Inputs: map[string]MetafileInput{"src/index.js": {}, "src/index.css": {}},
		Outputs: map[string]MetafileOutput{
			"dist/index.js": {
				Inputs:     map[string]InputContrib{"src/index.js": {}},
				EntryPoint: "src/index.js",
				CSSBundle:  "dist/index.css",
			},
			"dist/index.css": {
				Inputs: map[string]InputContrib{"src/index.css": {}},
			},
		},
	}

	require.NoError(t, Apply(dir, meta, pipeline.DefaultOptions()))

	data, err := os.ReadFile(filepath.Join(dir, "dist", "index.js.map"))
	require.NoError(t, err)
	var m struct {
		Mappings string `json:"mappings"`
	}
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, ";AAAA;AACA", m.Mappings)
}

func TestApply_NoStylesheetImports(t *testing.T) {
	dir := t.TempDir()
	original := "export const a = 1;\n"
	writeTree(t, dir, map[string]string{
		"src/index.js":  original,
		"dist/index.js": original,
	})

	meta := &Metafile{
		Inputs: map[string]MetafileInput{"src/index.js": {}},
		Outputs: map[string]MetafileOutput{
			"dist/index.js": {
				Inputs:     map[string]InputContrib{"src/index.js": {}},
				EntryPoint: "src/index.js",
			},
		},
	}

	require.NoError(t, Apply(dir, meta, pipeline.DefaultOptions()))

	data, err := os.ReadFile(filepath.Join(dir, "dist", "index.js"))
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestApply_MissingChunkFile(t *testing.T) {
	dir := t.TempDir()
	meta := &Metafile{
		Outputs: map[string]MetafileOutput{
			"dist/ghost.js": {Inputs: map[string]InputContrib{}},
		},
	}
	assert.Error(t, Apply(dir, meta, pipeline.DefaultOptions()))
}
