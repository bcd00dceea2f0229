package parse

import (
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	gast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var astParser = goldmark.New(goldmark.WithExtensions(extension.Table)).Parser()

// ValidateAgainstAST cross-checks the hand-rolled structural detection
// against goldmark's own Markdown AST (the teacher's Markdown engine,
// handler/markdown.go's ASTChunker). The hand-rolled scanners exist
// because the spec's fence-nesting and table/list field requirements
// (alignment, data-row counts, fence-length nesting) aren't exposed by any
// off-the-shelf AST; this pass is a second opinion, not a replacement,
// and only ever produces warnings.
func ValidateAgainstAST(source []byte, headerCount, tableCount int) []string {
	var warnings []string

	doc := astParser.Parse(text.NewReader(source))

	var astHeaders, astTables int
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.Heading:
			astHeaders++
		case *gast.Table:
			astTables++
		}
		return ast.WalkContinue, nil
	})

	if astHeaders != headerCount {
		warnings = append(warnings, fmt.Sprintf("ast_header_count_mismatch: detector=%d ast=%d", headerCount, astHeaders))
	}
	if astTables != tableCount {
		warnings = append(warnings, fmt.Sprintf("ast_table_count_mismatch: detector=%d ast=%d", tableCount, astTables))
	}

	return warnings
}
