package pycode

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Result is the outcome of validating a compacted candidate text.
// Valid == true implies Diagnostic is empty; Valid == false implies
// Diagnostic carries a human-readable parse error, with Line/Column set
// when the parser reported a location (1-based).
type Result struct {
	Text       string `json:"text"`
	Valid      bool   `json:"valid"`
	Diagnostic string `json:"diagnostic,omitempty"`
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
}

// Gate validates candidate text against the Python grammar using a full
// Tree-sitter parse, not a heuristic. A parse failure is a normal
// outcome, never a panic.
//
// A Gate is not safe for concurrent use; the Optimizer serializes
// access to it.
type Gate struct {
	parser *sitter.Parser
}

// NewGate creates a Gate with the Python grammar loaded.
func NewGate() *Gate {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	return &Gate{parser: parser}
}

// Validate parses text and returns the accept/reject decision.
func (g *Gate) Validate(ctx context.Context, text string) Result {
	tree, err := g.parser.ParseCtx(ctx, nil, []byte(text))
	if err != nil {
		return Result{Text: text, Diagnostic: fmt.Sprintf("parse aborted: %v", err)}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		node := firstErrorNode(root)
		if node == nil {
			node = root
		}
		point := node.StartPoint()
		line := int(point.Row) + 1
		column := int(point.Column) + 1

		var diag string
		if node.IsMissing() {
			diag = fmt.Sprintf("missing %s at line %d, column %d", node.Type(), line, column)
		} else {
			diag = fmt.Sprintf("invalid syntax at line %d, column %d", line, column)
		}
		return Result{Text: text, Diagnostic: diag, Line: line, Column: column}
	}

	// The grammar tolerates a suite with no statements: "def f():" parses
	// as a function_definition whose block is empty, with no error flag.
	// CPython requires at least one statement in every suite, so an empty
	// block is a rejection here even though the tree is clean.
	if blk := firstEmptyBlock(root); blk != nil {
		point := blk.StartPoint()
		line := int(point.Row) + 1
		column := int(point.Column) + 1
		diag := fmt.Sprintf("expected an indented block at line %d, column %d", line, column)
		return Result{Text: text, Diagnostic: diag, Line: line, Column: column}
	}

	return Result{Text: text, Valid: true}
}

// firstEmptyBlock finds a block node with no named children, which the
// grammar accepts but CPython does not.
func firstEmptyBlock(n *sitter.Node) *sitter.Node {
	if n.Type() == "block" && n.NamedChildCount() == 0 {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if found := firstEmptyBlock(n.Child(i)); found != nil {
			return found
		}
	}
	return nil
}

// firstErrorNode walks the tree toward the first ERROR or MISSING node.
func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if found := firstErrorNode(n.Child(i)); found != nil {
			return found
		}
	}
	// HasError was set but no child claims it (e.g. the error is an
	// anonymous token directly under this node).
	return n
}
