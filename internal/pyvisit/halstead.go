package pyvisit

import (
	"math"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/issueminer/issueminer/schema"
)

// operatorTokens are leaf tokens classified as Halstead operators: arithmetic,
// comparison, assignment and logical symbols plus the keyword operators.
var operatorTokens = map[string]struct{}{
	"+": {}, "-": {}, "*": {}, "/": {}, "//": {}, "%": {}, "**": {}, "@": {},
	"=": {}, ":=": {},
	"==": {}, "!=": {}, "<": {}, ">": {}, "<=": {}, ">=": {},
	"+=": {}, "-=": {}, "*=": {}, "/=": {}, "//=": {}, "%=": {}, "**=": {},
	"&": {}, "|": {}, "^": {}, "~": {}, "<<": {}, ">>": {},
	"&=": {}, "|=": {}, "^=": {}, "<<=": {}, ">>=": {},
	"and": {}, "or": {}, "not": {}, "in": {}, "is": {},
}

// operandKinds are named node types classified as Halstead operands.
var operandKinds = map[string]struct{}{
	"identifier": {},
	"integer":    {},
	"float":      {},
	"string":     {},
	"true":       {},
	"false":      {},
	"none":       {},
}

// HalsteadVisit tokenizes one Python file into operators and operands and
// derives the classic Halstead measures from the distinct and total counts.
// Structural punctuation and plain keywords are counted as neither.
func (v *Visitor) HalsteadVisit(path, source string) (schema.HalsteadVisit, error) {
	root, content, err := parsePython(path, source)
	if err != nil {
		return schema.HalsteadVisit{}, err
	}

	operators := map[string]int{}
	operands := map[string]int{}
	classifyTokens(root, content, operators, operands)

	distinctOperators := len(operators)
	distinctOperands := len(operands)
	totalOperators := 0
	for _, n := range operators {
		totalOperators += n
	}
	totalOperands := 0
	for _, n := range operands {
		totalOperands += n
	}

	length := totalOperators + totalOperands
	vocabulary := distinctOperators + distinctOperands
	volume := 0.0
	if vocabulary > 0 {
		volume = float64(length) * math.Log2(float64(vocabulary))
	}
	difficulty := 0.0
	if distinctOperands > 0 {
		difficulty = float64(distinctOperators) / 2 * float64(totalOperands) / float64(distinctOperands)
	}

	return schema.HalsteadVisit{
		Length:     length,
		Vocabulary: vocabulary,
		Volume:     volume,
		Difficulty: difficulty,
		Effort:     difficulty * volume,
	}, nil
}

// classifyTokens walks the tree and tallies operator and operand occurrences.
// String nodes count as one operand and are not descended into, so grammar
// versions that split strings into start/content/end parts tally identically.
func classifyTokens(node *sitter.Node, content []byte, operators, operands map[string]int) {
	if node.Type() == "string" {
		operands[node.Content(content)]++
		return
	}
	if node.ChildCount() == 0 {
		text := node.Content(content)
		if node.IsNamed() {
			if _, ok := operandKinds[node.Type()]; ok {
				operands[text]++
			}
		} else if _, ok := operatorTokens[text]; ok {
			operators[text]++
		}
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		classifyTokens(node.Child(i), content, operators, operands)
	}
}
