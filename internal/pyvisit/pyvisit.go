// Package pyvisit parses Python sources with tree-sitter and extracts the
// per-file complexity blocks and Halstead token counts that the metric
// aggregators consume. Non-Python files and files with syntax errors report a
// parse failure so callers can tally and exclude them.
package pyvisit

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/issueminer/issueminer/internal/contract"
)

const pythonExt = ".py"

// decisionKinds are the node types that add one decision point to the
// enclosing function's cyclomatic complexity.
var decisionKinds = map[string]struct{}{
	"if_statement":           {},
	"elif_clause":            {},
	"for_statement":          {},
	"while_statement":        {},
	"except_clause":          {},
	"conditional_expression": {},
	"boolean_operator":       {},
	"case_clause":            {},
	"for_in_clause":          {},
	"if_clause":              {},
	"assert_statement":       {},
}

// Visitor implements source visiting for Python files.
type Visitor struct{}

var _ contract.SourceVisitor = &Visitor{} // Compile-time check

// NewVisitor creates a new Python source visitor.
func NewVisitor() *Visitor {
	return &Visitor{}
}

// ComplexityBlocks returns one cyclomatic complexity value per function
// defined in the file, methods and nested functions included. Each block
// starts at one and gains a point per decision node in its own body; nested
// functions are measured as their own blocks, not folded into the parent.
func (v *Visitor) ComplexityBlocks(path, source string) ([]float64, error) {
	root, _, err := parsePython(path, source)
	if err != nil {
		return nil, err
	}
	var functions []*sitter.Node
	collectFunctions(root, &functions)

	blocks := make([]float64, 0, len(functions))
	for _, fn := range functions {
		blocks = append(blocks, blockComplexity(fn))
	}
	return blocks, nil
}

// parsePython parses one Python file and returns the tree root. Files with a
// different extension fail fast; trees containing ERROR nodes are rejected so
// half-parsed files never contribute skewed counts.
func parsePython(path, source string) (*sitter.Node, []byte, error) {
	if strings.ToLower(filepath.Ext(path)) != pythonExt {
		return nil, nil, fmt.Errorf("%s: not a Python source file", path)
	}
	content := []byte(source)
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	root := tree.RootNode()
	if root.HasError() {
		return nil, nil, fmt.Errorf("%s: source contains syntax errors", path)
	}
	return root, content, nil
}

// collectFunctions gathers every function_definition in the tree in document
// order.
func collectFunctions(node *sitter.Node, out *[]*sitter.Node) {
	if node.Type() == "function_definition" {
		*out = append(*out, node)
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		collectFunctions(node.NamedChild(i), out)
	}
}

// blockComplexity counts decision points within one function, stopping at
// nested function boundaries.
func blockComplexity(fn *sitter.Node) float64 {
	count := 1.0
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			if child.Type() == "function_definition" {
				continue
			}
			if _, ok := decisionKinds[child.Type()]; ok {
				count++
			}
			walk(child)
		}
	}
	walk(fn)
	return count
}
