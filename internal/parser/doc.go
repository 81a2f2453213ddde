// Package parser provides Python code parsing capabilities using tree-sitter.
//
// This package wraps the tree-sitter Go bindings to parse Python source code
// into concrete syntax trees whose node positions carry exact byte offsets,
// which the analyzer relies on for its text inspection.
//
// Basic usage:
//
//	p := parser.New()
//	result, err := p.Parse(ctx, []byte("x = (1,)"))
//	if err != nil {
//	    // Handle parsing error
//	}
//	// Use result.RootNode to traverse the tree
package parser
