package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstStatementOffset(t *testing.T) {
	f := New()

	t.Run("imports then declaration", func(t *testing.T) {
		code := `import { a } from "./a.js";
import "./b.js";
const x = a + 1;
`
		offset := f.FirstStatementOffset(code)
		assert.Equal(t, strings.Index(code, "const"), offset)
	})

	t.Run("use strict banner skipped", func(t *testing.T) {
		code := `"use strict";
var x = 1;
`
		offset := f.FirstStatementOffset(code)
		assert.Equal(t, strings.Index(code, "var"), offset)
	})

	t.Run("license banner expression skipped", func(t *testing.T) {
		code := `/*! my-lib v1.0 | MIT */
console.log("banner");
function setup() {
  return 1;
}
`
		offset := f.FirstStatementOffset(code)
		assert.Equal(t, strings.Index(code, "function"), offset)
	})

	t.Run("export statement qualifies", func(t *testing.T) {
		code := `import "./dep.js";
export const a = 1;
`
		offset := f.FirstStatementOffset(code)
		assert.Equal(t, strings.Index(code, "export"), offset)
	})

	t.Run("re-exports skipped", func(t *testing.T) {
		code := `import "./a.js";
export { a } from "./b.js";
export * from "./c.js";
const x = 1;
`
		offset := f.FirstStatementOffset(code)
		assert.Equal(t, strings.Index(code, "const"), offset)
	})

	t.Run("plain export without from qualifies", func(t *testing.T) {
		code := `import "./a.js";
export { a };
`
		offset := f.FirstStatementOffset(code)
		assert.Equal(t, strings.Index(code, "export"), offset)
	})

	t.Run("only imports", func(t *testing.T) {
		code := `import "./a.js";
import "./b.js";
`
		assert.Equal(t, 0, f.FirstStatementOffset(code))
	})

	t.Run("only expressions", func(t *testing.T) {
		code := `(function () {
  run();
})();
`
		assert.Equal(t, 0, f.FirstStatementOffset(code))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, 0, f.FirstStatementOffset(""))
	})

	t.Run("declaration at start", func(t *testing.T) {
		code := `const x = 1;`
		assert.Equal(t, 0, f.FirstStatementOffset(code))
	})

	t.Run("keywords inside braces ignored", func(t *testing.T) {
		code := `register({ load: function () { var y = 2; } });
let z = 3;
`
		offset := f.FirstStatementOffset(code)
		assert.Equal(t, strings.Index(code, "let"), offset)
	})

	t.Run("asi boundary without semicolons", func(t *testing.T) {
		code := "\"use strict\"\nconst x = 1\n"
		offset := f.FirstStatementOffset(code)
		assert.Equal(t, strings.Index(code, "const"), offset)
	})

	t.Run("minified single line", func(t *testing.T) {
		code := `import{a}from"./a.js";var b=a;`
		offset := f.FirstStatementOffset(code)
		assert.Equal(t, strings.Index(code, "var"), offset)
	})
}
