package analyzer

import "bytes"

// NodeCoords describes one candidate syntax node by its textual span and the
// two context classifiers the scanner's rules depend on. The span covers the
// node itself, not any enclosing parentheses. Lines are 1-based, columns are
// 0-based byte offsets within the line.
type NodeCoords struct {
	ID             int
	StartLine      int
	StartCol       int
	EndLine        int
	EndCol         int
	IsCallArg      bool
	IsCompOrAssign bool
}

// Scanner inspects the raw bytes around candidate nodes to decide whether
// each node is wrapped in a redundant parenthesis pair, i.e. parentheses that
// do not form a tuple and would silently collapse into plain grouping.
//
// A Scanner is immutable after construction and safe for concurrent use.
type Scanner struct {
	source []byte
	index  *SourceIndex
}

// NewScanner creates a Scanner over the given source bytes.
func NewScanner(source []byte) *Scanner {
	return &Scanner{
		source: source,
		index:  NewSourceIndex(source),
	}
}

// Index returns the line offset table built from the source.
func (s *Scanner) Index() *SourceIndex {
	return s.index
}

// CheckNodes evaluates all candidate nodes and returns the IDs of the ones
// wrapped in a redundant parenthesis pair, preserving input order. It is a
// total function: malformed coordinates degrade to "not flagged" and never
// cause an error.
func (s *Scanner) CheckNodes(nodes []NodeCoords) []int {
	var violations []int
	for _, node := range nodes {
		start := s.index.Offset(node.StartLine, node.StartCol)
		end := s.index.Offset(node.EndLine, node.EndCol)
		if s.isViolation(start, end, node.IsCallArg, node.IsCompOrAssign) {
			violations = append(violations, node.ID)
		}
	}
	return violations
}

// isViolation applies the redundancy rules to the span [start, end).
//
// The node is enclosed when its nearest non-whitespace neighbors are '(' and
// ')'. For assignment/comparison/comprehension contexts the pair is redundant
// unless the span from '(' through ')' contains a comma (a comma means the
// parentheses form a real tuple). For call arguments a single pair is normal
// grouping; only a second pair immediately outside it, the call's own
// argument list, makes the inner pair redundant, under the same comma rule.
func (s *Scanner) isViolation(start, end int, isCallArg, isCompOrAssign bool) bool {
	left := s.scanLeft(start - 1)
	right := s.scanRight(end)

	if left < 0 || right >= len(s.source) {
		return false
	}
	if s.source[left] != '(' || s.source[right] != ')' {
		return false
	}

	if isCompOrAssign {
		return !s.hasCommaInSpan(left, right+1)
	}

	if isCallArg {
		outerLeft := s.scanLeft(left - 1)
		outerRight := s.scanRight(right + 1)
		if outerLeft >= 0 && outerRight < len(s.source) &&
			s.source[outerLeft] == '(' && s.source[outerRight] == ')' {
			return !s.hasCommaInSpan(left, right+1)
		}
	}

	return false
}

// scanLeft walks left from i, skipping whitespace, and returns the index of
// the first non-whitespace byte, or -1 when the scan runs off the start.
func (s *Scanner) scanLeft(i int) int {
	if i >= len(s.source) {
		i = len(s.source) - 1
	}
	for i >= 0 && isSpaceByte(s.source[i]) {
		i--
	}
	return i
}

// scanRight walks right from i, skipping whitespace, and returns the index of
// the first non-whitespace byte, or len(source) when the scan hits the end.
func (s *Scanner) scanRight(i int) int {
	if i < 0 {
		i = 0
	}
	for i < len(s.source) && isSpaceByte(s.source[i]) {
		i++
	}
	return i
}

// hasCommaInSpan reports whether [start, end) contains a comma. Out-of-range
// spans are clamped; an empty or inverted span has no comma.
func (s *Scanner) hasCommaInSpan(start, end int) bool {
	if start < 0 {
		start = 0
	}
	if end > len(s.source) {
		end = len(s.source)
	}
	if start >= end {
		return false
	}
	return bytes.IndexByte(s.source[start:end], ',') >= 0
}

// isSpaceByte matches the ASCII whitespace bytes that can separate Python
// tokens from their surrounding parentheses.
func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}
