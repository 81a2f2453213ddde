package parser

import (
	"context"
	"fmt"
	"io"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Parser wraps a tree-sitter parser configured for the Python grammar.
type Parser struct {
	parser *sitter.Parser
}

// New creates a Parser with the Python grammar loaded.
func New() *Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	return &Parser{
		parser: parser,
	}
}

// ParseResult holds the parse tree together with the source it was built
// from. Node positions are only meaningful against this exact source.
type ParseResult struct {
	Tree       *sitter.Tree
	RootNode   *sitter.Node
	SourceCode []byte
}

// Parse parses Python source and returns the parse tree. Sources with syntax
// errors are rejected so that downstream byte-offset inspection never runs
// against positions the grammar could not pin down.
func (p *Parser) Parse(ctx context.Context, source []byte) (*ParseResult, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("syntax errors found in source code")
	}

	return &ParseResult{
		Tree:       tree,
		RootNode:   root,
		SourceCode: source,
	}, nil
}

// ParseFile reads all of reader and parses it as Python source.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) (*ParseResult, error) {
	source, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	return p.Parse(ctx, source)
}

// NodeText returns the source text covered by a node.
func (r *ParseResult) NodeText(node *sitter.Node) string {
	return node.Content(r.SourceCode)
}

// FindNodes returns all nodes of the given type under root, in document
// order.
func FindNodes(root *sitter.Node, nodeType string) []*sitter.Node {
	var nodes []*sitter.Node
	Walk(root, func(n *sitter.Node) {
		if n.Type() == nodeType {
			nodes = append(nodes, n)
		}
	})
	return nodes
}

// Walk traverses the tree depth-first, visiting every node including
// anonymous ones.
func Walk(node *sitter.Node, visit func(*sitter.Node)) {
	visit(node)

	childCount := int(node.ChildCount())
	for i := 0; i < childCount; i++ {
		Walk(node.Child(i), visit)
	}
}
