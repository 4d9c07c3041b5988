package diag

// Position information is derived, never stored: tokens and diagnostics
// carry byte offsets only, and line/column data is recomputed here by
// scanning the buffer from the start up to the offset. Queries cost
// O(offset), paid only when a diagnostic is rendered, which keeps
// tokens at eight bytes and makes spans trivially relocatable.

// Position holds 1-based line and column numbers for a byte offset,
// together with the byte bounds of the line containing it.
type Position struct {
	Line      int // 1-based line number
	Column    int // 1-based byte column within the line
	LineStart int // byte offset of the first byte of the line
	LineEnd   int // byte offset one past the last byte before the newline
}

// PositionOf computes the position of the byte at offset in src.
// Offsets at or past the end of the buffer resolve to the last line.
func PositionOf(src string, offset int) Position {
	if offset > len(src) {
		offset = len(src)
	}

	line := 1
	lineStart := 0
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}

	lineEnd := lineStart
	for lineEnd < len(src) && src[lineEnd] != '\n' {
		lineEnd++
	}

	return Position{
		Line:      line,
		Column:    offset - lineStart + 1,
		LineStart: lineStart,
		LineEnd:   lineEnd,
	}
}

// LineText returns the full source line containing offset, without the
// trailing newline.
func LineText(src string, offset int) string {
	pos := PositionOf(src, offset)
	return src[pos.LineStart:pos.LineEnd]
}
