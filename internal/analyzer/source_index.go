package analyzer

import "bytes"

// SourceIndex maps 1-based line numbers to the byte offset of each line start,
// allowing O(1) conversion of (line, column) positions into absolute offsets.
// Columns are 0-based byte offsets within their line, matching the positions
// tree-sitter reports for Python source.
type SourceIndex struct {
	offsets []int
}

// NewSourceIndex builds the line offset table for the given source.
// Line terminators belong to the line they end, so the table always starts
// with 0 (start of line 1) and has one entry per line plus one.
func NewSourceIndex(source []byte) *SourceIndex {
	offsets := []int{0}
	offset := 0
	for {
		i := bytes.IndexByte(source[offset:], '\n')
		if i < 0 {
			break
		}
		offset += i + 1
		offsets = append(offsets, offset)
	}
	if offset < len(source) {
		offsets = append(offsets, len(source))
	}
	return &SourceIndex{offsets: offsets}
}

// Offset converts a (line, column) position into an absolute byte offset.
// Out-of-range lines fall back to offset 0 so that callers supplying
// positions computed against different text degrade instead of failing.
func (si *SourceIndex) Offset(line, col int) int {
	if line < 1 || line > len(si.offsets) {
		return col
	}
	return si.offsets[line-1] + col
}

// LineCount returns the number of entries in the offset table minus one,
// i.e. the number of lines the source was split into.
func (si *SourceIndex) LineCount() int {
	return len(si.offsets) - 1
}

// LineStart returns the byte offset of the first byte of the given 1-based
// line, or 0 if the line is out of range.
func (si *SourceIndex) LineStart(line int) int {
	if line < 1 || line > len(si.offsets) {
		return 0
	}
	return si.offsets[line-1]
}
