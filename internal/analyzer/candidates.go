package analyzer

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Candidate node types, mirroring the expression kinds that can plausibly be
// a forgotten tuple element: literals, names, attribute/subscript access, and
// calls.
var candidateNodeTypes = map[string]bool{
	"identifier":          true,
	"attribute":           true,
	"subscript":           true,
	"call":                true,
	"string":              true,
	"concatenated_string": true,
	"integer":             true,
	"float":               true,
	"true":                true,
	"false":               true,
	"none":                true,
}

// Candidate pairs a scanner descriptor with the node's reporting position.
type Candidate struct {
	Coords NodeCoords
	Line   int // 1-based start line
	Col    int // 0-based start column
}

// CollectorOptions toggles which syntactic contexts produce candidates.
type CollectorOptions struct {
	CheckCallArgs       bool
	CheckAssignments    bool
	CheckComparisons    bool
	CheckComprehensions bool
}

// DefaultCollectorOptions enables every context.
func DefaultCollectorOptions() CollectorOptions {
	return CollectorOptions{
		CheckCallArgs:       true,
		CheckAssignments:    true,
		CheckComparisons:    true,
		CheckComprehensions: true,
	}
}

// Collector walks a tree-sitter Python parse tree and extracts the candidate
// nodes the Scanner should evaluate. It computes each node's span and the two
// context classifiers by looking through any parenthesized_expression
// wrappers to the node's effective parent, the same way an AST with invisible
// grouping parens would expose it.
type Collector struct {
	opts CollectorOptions
}

// NewCollector creates a Collector with the given options.
func NewCollector(opts CollectorOptions) *Collector {
	return &Collector{opts: opts}
}

// Collect returns one Candidate per matching node under root, in document
// order. IDs are assigned sequentially from 0 and index into the returned
// slice, so the Scanner's violation IDs map straight back to candidates.
func (c *Collector) Collect(root *sitter.Node) []Candidate {
	var candidates []Candidate
	c.walk(root, &candidates)
	return candidates
}

func (c *Collector) walk(node *sitter.Node, out *[]Candidate) {
	if candidateNodeTypes[node.Type()] {
		isCallArg, isCompOrAssign := c.classify(node)
		start := node.StartPoint()
		end := node.EndPoint()
		*out = append(*out, Candidate{
			Coords: NodeCoords{
				ID:             len(*out),
				StartLine:      int(start.Row) + 1,
				StartCol:       int(start.Column),
				EndLine:        int(end.Row) + 1,
				EndCol:         int(end.Column),
				IsCallArg:      isCallArg,
				IsCompOrAssign: isCompOrAssign,
			},
			Line: int(start.Row) + 1,
			Col:  int(start.Column),
		})
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		c.walk(node.NamedChild(i), out)
	}
}

// classify determines the node's context classifiers. Grouping parentheses
// are explicit nodes in tree-sitter's grammar, so the chain of
// parenthesized_expression ancestors is skipped first; the node's context is
// whatever encloses the outermost paren wrapper.
func (c *Collector) classify(node *sitter.Node) (isCallArg, isCompOrAssign bool) {
	effective := node
	parent := node.Parent()
	for parent != nil && parent.Type() == "parenthesized_expression" {
		effective = parent
		parent = parent.Parent()
	}
	if parent == nil {
		return false, false
	}

	switch parent.Type() {
	case "argument_list":
		// Direct positional argument: keyword arguments hang off a
		// keyword_argument node instead and are not candidates.
		if c.opts.CheckCallArgs {
			if call := parent.Parent(); call != nil && call.Type() == "call" {
				return true, false
			}
		}
	case "assignment":
		// Target or value only; the type slot of `x: (int) = 5` is not
		// a tuple position.
		if c.opts.CheckAssignments &&
			(sameNode(parent.ChildByFieldName("left"), effective) ||
				sameNode(parent.ChildByFieldName("right"), effective)) {
			return false, true
		}
	case "comparison_operator":
		// Right-hand operands only: `x in ("A")` is a likely forgotten
		// tuple, `("A") in x` is plain grouping.
		if c.opts.CheckComparisons && !sameNode(parent.NamedChild(0), effective) {
			return false, true
		}
	case "list_comprehension", "set_comprehension", "generator_expression":
		if c.opts.CheckComprehensions && sameNode(parent.ChildByFieldName("body"), effective) {
			return false, true
		}
	}

	return false, false
}

// sameNode compares two nodes by their byte spans, which is sufficient to
// test field membership within a single tree.
func sameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte()
}
