// Package parser locates statement boundaries in compiled chunk text.
//
// The pipeline needs one capability: the byte offset of the first top-level
// statement that is neither an import declaration nor a bare expression
// statement. Everything before that point (license banners, "use strict",
// hoisted imports and re-exports the bundler emitted) is skipped over.
package parser

import (
	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

// OffsetFinder is the statement-boundary capability. Implementations return
// 0 when no qualifying statement exists, never an error.
type OffsetFinder interface {
	FirstStatementOffset(code string) int
}

// JSOffsetFinder finds statement boundaries with a token scan. It tracks
// bracket depth and statement starts; a full parse is not needed because
// only top-level statement classification matters.
type JSOffsetFinder struct{}

func New() *JSOffsetFinder {
	return &JSOffsetFinder{}
}

// statementKeywords are tokens that open a top-level statement which is
// neither an import nor an expression. Export is handled separately: a
// re-export (export ... from "...") is one of the bundler's own hoisted
// imports and does not qualify.
var statementKeywords = map[js.TokenType]bool{
	js.VarToken:      true,
	js.LetToken:      true,
	js.ConstToken:    true,
	js.FunctionToken: true,
	js.ClassToken:    true,
	js.AsyncToken:    true,
	js.IfToken:       true,
	js.ForToken:      true,
	js.WhileToken:    true,
	js.DoToken:       true,
	js.SwitchToken:   true,
	js.TryToken:      true,
	js.ReturnToken:   true,
	js.ThrowToken:    true,
	js.BreakToken:    true,
	js.ContinueToken: true,
	js.DebuggerToken: true,
	js.WithToken:     true,
}

func (f *JSOffsetFinder) FirstStatementOffset(code string) int {
	lexer := js.NewLexer(parse.NewInputString(code))

	pos := 0
	depth := 0
	atStart := true
	pendingExport := -1
	var prev js.TokenType

	for {
		tt, text := lexer.Next()
		if tt == js.ErrorToken {
			if pendingExport >= 0 {
				return pendingExport
			}
			return 0
		}

		switch tt {
		case js.WhitespaceToken, js.CommentToken, js.CommentLineTerminatorToken:
			// no statement state change
		case js.LineTerminatorToken:
			// Approximate ASI: a newline ends the statement only when the
			// previous significant token could terminate one.
			if depth == 0 && canEndStatement(prev) {
				if pendingExport >= 0 {
					return pendingExport
				}
				atStart = true
			}
		case js.OpenBraceToken, js.OpenParenToken, js.OpenBracketToken:
			depth++
			atStart = false
			prev = tt
		case js.CloseBraceToken, js.CloseParenToken, js.CloseBracketToken:
			if depth > 0 {
				depth--
			}
			// A closing brace at the top level ends a block statement.
			// An undecided export stays pending: "export { a }" may still
			// be followed by a from clause.
			if depth == 0 && tt == js.CloseBraceToken {
				atStart = true
			}
			prev = tt
		case js.SemicolonToken:
			if depth == 0 {
				if pendingExport >= 0 {
					return pendingExport
				}
				atStart = true
			}
			prev = tt
		default:
			switch {
			case depth == 0 && pendingExport >= 0 && tt == js.FromToken:
				// Re-export; not an insertion point after all.
				pendingExport = -1
			case depth == 0 && atStart && tt == js.ExportToken:
				pendingExport = pos
			case depth == 0 && atStart && statementKeywords[tt]:
				if pendingExport >= 0 {
					return pendingExport
				}
				return pos
			}
			atStart = false
			prev = tt
		}

		pos += len(text)
	}
}

func canEndStatement(tt js.TokenType) bool {
	switch tt {
	case js.IdentifierToken, js.StringToken, js.DecimalToken, js.RegExpToken,
		js.TemplateToken, js.TemplateEndToken,
		js.CloseBraceToken, js.CloseParenToken, js.CloseBracketToken,
		js.ThisToken, js.TrueToken, js.FalseToken, js.NullToken,
		js.IncrToken, js.DecrToken:
		return true
	}
	return false
}
