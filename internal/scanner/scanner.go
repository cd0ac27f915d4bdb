// scanner finds the word that ends at a cursor offset within a line.
package scanner

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrOffsetOutOfLine is returned when the target offset does not fall within the line.
var ErrOffsetOutOfLine = errors.New("offset outside of line")

// Word is the span of a line that ends at a given offset. Start is an
// absolute document offset.
type Word struct {
	Start int
	Text  string
}

// End returns the absolute offset just past the word.
func (w Word) End() int {
	return w.Start + len(w.Text)
}

// WordAt returns the word ending at offset on a line that starts at
// lineStart. Only whitespace separates words; punctuation stays part of the
// word. Offsets are byte offsets so they line up with document positions.
func WordAt(line string, lineStart, offset int) (Word, error) {
	target := offset - lineStart
	if target < 0 || target > len(line) {
		return Word{}, fmt.Errorf("%w: offset %d, line [%d, %d)", ErrOffsetOutOfLine, offset, lineStart, lineStart+len(line))
	}

	wordStart := 0
	consumed := 0
	for consumed < target {
		r, size := utf8.DecodeRuneInString(line[consumed:])
		consumed += size
		if unicode.IsSpace(r) {
			wordStart = consumed
		}
	}
	// target split a multi-byte rune
	if consumed != target {
		return Word{}, fmt.Errorf("%w: offset %d is inside a character", ErrOffsetOutOfLine, offset)
	}

	return Word{
		Start: lineStart + wordStart,
		Text:  strings.TrimSpace(line[wordStart:target]),
	}, nil
}
