package manager

import (
	"fmt"
	"sort"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"wordcomplete/internal/delta"
)

// Document is the text of one open document together with its line index.
// Offsets are UTF-8 byte offsets.
type Document struct {
	URI        string
	Text       string
	lineStarts []int
}

// NewDocument creates a document and indexes its lines.
func NewDocument(uri string, text string) *Document {
	doc := &Document{URI: uri}
	doc.setText(text)
	return doc
}

func (d *Document) setText(text string) {
	d.Text = text
	d.lineStarts = d.lineStarts[:0]
	d.lineStarts = append(d.lineStarts, 0)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			d.lineStarts = append(d.lineStarts, i+1)
		}
	}
}

// Len returns the document length in bytes.
func (d *Document) Len() int {
	return len(d.Text)
}

// LineCount returns the number of lines. A trailing newline starts a new, empty line.
func (d *Document) LineCount() int {
	return len(d.lineStarts)
}

// LineOfOffset returns the zero-based line containing offset.
func (d *Document) LineOfOffset(offset int) (int, error) {
	if offset < 0 || offset > len(d.Text) {
		return 0, fmt.Errorf("offset %d outside document of length %d", offset, len(d.Text))
	}
	return sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	}) - 1, nil
}

// OffsetOfLine returns the offset at which line starts.
func (d *Document) OffsetOfLine(line int) (int, error) {
	if line < 0 || line >= d.LineCount() {
		return 0, fmt.Errorf("line %d outside document of %d lines", line, d.LineCount())
	}
	return d.lineStarts[line], nil
}

// Line returns the text of line including its trailing newline, if any.
func (d *Document) Line(line int) (string, error) {
	start, err := d.OffsetOfLine(line)
	if err != nil {
		return "", err
	}
	end := len(d.Text)
	if line+1 < len(d.lineStarts) {
		end = d.lineStarts[line+1]
	}
	return d.Text[start:end], nil
}

// Apply applies a delta built against the current text.
func (d *Document) Apply(dl *delta.Delta) error {
	text, err := dl.Apply(d.Text)
	if err != nil {
		return fmt.Errorf("failed to apply delta to %s: %w", d.URI, err)
	}
	d.setText(text)
	return nil
}

// OffsetOf converts an LSP position, counted in UTF-16 code units, to a byte offset.
func (d *Document) OffsetOf(pos protocol.Position) int {
	return pos.IndexIn(d.Text)
}

// PositionOf converts a byte offset to an LSP position.
func (d *Document) PositionOf(offset int) protocol.Position {
	if offset > len(d.Text) {
		offset = len(d.Text)
	}
	line, _ := d.LineOfOffset(offset)
	prefix := d.Text[d.lineStarts[line]:offset]

	// Count UTF-16 code units in prefix
	var character uint32
	for _, r := range prefix {
		if r > 0xFFFF {
			character += 2
		} else {
			character += 1
		}
	}
	return protocol.Position{Line: uint32(line), Character: character}
}

// RangeOf converts an interval to an LSP range.
func (d *Document) RangeOf(iv delta.Interval) protocol.Range {
	return protocol.Range{Start: d.PositionOf(iv.Start), End: d.PositionOf(iv.End)}
}

// Change applies one LSP content change and returns it as a delta against
// the text it replaced.
func (d *Document) Change(change any) (*delta.Delta, error) {
	var iv delta.Interval
	var text string

	switch c := change.(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		iv = delta.NewInterval(0, len(d.Text))
		text = c.Text
	case protocol.TextDocumentContentChangeEvent:
		if c.Range == nil {
			iv = delta.NewInterval(0, len(d.Text))
		} else {
			start, end := c.Range.IndexesIn(d.Text)
			iv = delta.NewInterval(start, end)
		}
		text = c.Text
	default:
		return nil, fmt.Errorf("unexpected change event type %T", change)
	}

	dl, err := delta.SimpleEdit(iv, text, len(d.Text))
	if err != nil {
		return nil, fmt.Errorf("failed to convert change on %s: %w", d.URI, err)
	}
	if err := d.Apply(dl); err != nil {
		return nil, err
	}
	return dl, nil
}

// TextEdits converts a delta against the current text into LSP text edits.
func (d *Document) TextEdits(dl *delta.Delta) ([]protocol.TextEdit, error) {
	if dl.BaseLen != len(d.Text) {
		return nil, fmt.Errorf("%w: have %d, want %d", delta.ErrBaseMismatch, len(d.Text), dl.BaseLen)
	}
	replacements := dl.Replacements()
	edits := make([]protocol.TextEdit, 0, len(replacements))
	for _, r := range replacements {
		edits = append(edits, protocol.TextEdit{
			Range:   d.RangeOf(r.Interval),
			NewText: r.Text,
		})
	}
	return edits, nil
}
