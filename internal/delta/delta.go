// Package delta describes document mutations as sequences of copy and insert
// elements relative to a known base length, and builds them from interval
// replacements.
package delta

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInterval is returned when an interval falls outside the base document.
	ErrInvalidInterval = errors.New("interval out of bounds")

	// ErrOverlap is returned when replacements are unsorted or overlap.
	ErrOverlap = errors.New("intervals not sorted or overlapping")

	// ErrBaseMismatch is returned when a delta is applied to text of the wrong length.
	ErrBaseMismatch = errors.New("text length does not match delta base length")
)

// Element is one step of a Delta: either copy a range of the base document
// or insert new text.
type Element struct {
	IsCopy bool
	Copy   Interval
	Insert string
}

// CopyElement returns an element copying [start, end) of the base document.
func CopyElement(start, end int) Element {
	return Element{IsCopy: true, Copy: Interval{Start: start, End: end}}
}

// InsertElement returns an element inserting text.
func InsertElement(text string) Element {
	return Element{Insert: text}
}

// Len returns the number of bytes this element contributes to the new document.
func (el Element) Len() int {
	if el.IsCopy {
		return el.Copy.Len()
	}
	return len(el.Insert)
}

func (el Element) MarshalJSON() ([]byte, error) {
	if el.IsCopy {
		return json.Marshal(struct {
			Copy [2]int `json:"copy"`
		}{[2]int{el.Copy.Start, el.Copy.End}})
	}
	return json.Marshal(struct {
		Insert string `json:"insert"`
	}{el.Insert})
}

func (el *Element) UnmarshalJSON(data []byte) error {
	var raw struct {
		Copy   *[2]int `json:"copy"`
		Insert *string `json:"insert"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Copy != nil && raw.Insert == nil:
		*el = CopyElement(raw.Copy[0], raw.Copy[1])
	case raw.Insert != nil && raw.Copy == nil:
		*el = InsertElement(*raw.Insert)
	default:
		return fmt.Errorf("delta element must have exactly one of copy or insert: %s", data)
	}
	return nil
}

// Delta is an ordered list of elements describing how to produce a new
// document from a base document of BaseLen bytes.
type Delta struct {
	BaseLen int       `json:"base_len"`
	Els     []Element `json:"els"`
}

// Replacement pairs an interval of the base document with the text that
// replaces it.
type Replacement struct {
	Interval Interval
	Text     string
}

// SimpleEdit returns a delta replacing iv with text in a document of baseLen bytes.
func SimpleEdit(iv Interval, text string, baseLen int) (*Delta, error) {
	b := NewBuilder(baseLen)
	if err := b.Replace(iv, text); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// NewLen returns the length of the document after applying the delta.
func (d *Delta) NewLen() int {
	n := 0
	for _, el := range d.Els {
		n += el.Len()
	}
	return n
}

// Summary returns the interval of the base document that changed and the
// length of the text now occupying it. Everything outside the interval is
// unchanged.
func (d *Delta) Summary() (Interval, int) {
	els := d.Els
	start := 0
	if len(els) > 0 && els[0].IsCopy && els[0].Copy.Start == 0 {
		start = els[0].Copy.End
		els = els[1:]
	}
	end := d.BaseLen
	if n := len(els); n > 0 && els[n-1].IsCopy && els[n-1].Copy.End == end {
		end = els[n-1].Copy.Start
		els = els[:n-1]
	}
	newLen := 0
	for _, el := range els {
		newLen += el.Len()
	}
	return Interval{Start: start, End: end}, newLen
}

// AsSimpleInsert returns the inserted text when the delta inserts text at a
// single point and deletes nothing.
func (d *Delta) AsSimpleInsert() (string, bool) {
	els := d.Els
	pos := 0
	if len(els) > 0 && els[0].IsCopy {
		if els[0].Copy.Start != 0 {
			return "", false
		}
		pos = els[0].Copy.End
		els = els[1:]
	}
	if len(els) == 0 || els[0].IsCopy {
		return "", false
	}
	text := els[0].Insert
	els = els[1:]
	switch len(els) {
	case 0:
		if pos == d.BaseLen {
			return text, true
		}
	case 1:
		if els[0].IsCopy && els[0].Copy.Start == pos && els[0].Copy.End == d.BaseLen {
			return text, true
		}
	}
	return "", false
}

// Replacements lists the changed regions of the base document in ascending
// order, each with its replacement text.
func (d *Delta) Replacements() []Replacement {
	var out []Replacement
	var text strings.Builder
	pos, pending := 0, false
	for _, el := range d.Els {
		if !el.IsCopy {
			text.WriteString(el.Insert)
			pending = true
			continue
		}
		if el.Copy.Start > pos || pending {
			out = append(out, Replacement{Interval{pos, el.Copy.Start}, text.String()})
		}
		text.Reset()
		pending = false
		pos = el.Copy.End
	}
	if pos < d.BaseLen || pending {
		out = append(out, Replacement{Interval{pos, d.BaseLen}, text.String()})
	}
	return out
}

// Apply produces the new document from base.
func (d *Delta) Apply(base string) (string, error) {
	if len(base) != d.BaseLen {
		return "", fmt.Errorf("%w: have %d, want %d", ErrBaseMismatch, len(base), d.BaseLen)
	}
	var sb strings.Builder
	sb.Grow(d.NewLen())
	for _, el := range d.Els {
		if !el.IsCopy {
			sb.WriteString(el.Insert)
			continue
		}
		if !el.Copy.IsValid(d.BaseLen) {
			return "", fmt.Errorf("%w: copy %s of %d", ErrInvalidInterval, el.Copy, d.BaseLen)
		}
		sb.WriteString(base[el.Copy.Start:el.Copy.End])
	}
	return sb.String(), nil
}

// Builder accumulates sorted, non-overlapping replacements into a Delta.
type Builder struct {
	delta Delta
	last  int
}

// NewBuilder creates a builder for a base document of baseLen bytes.
func NewBuilder(baseLen int) *Builder {
	return &Builder{delta: Delta{BaseLen: baseLen}}
}

// Delete removes iv from the base document.
func (b *Builder) Delete(iv Interval) error {
	if !iv.IsValid(b.delta.BaseLen) {
		return fmt.Errorf("%w: %s of %d", ErrInvalidInterval, iv, b.delta.BaseLen)
	}
	if iv.Start < b.last {
		return fmt.Errorf("%w: %s starts before %d", ErrOverlap, iv, b.last)
	}
	if iv.Start > b.last {
		b.delta.Els = append(b.delta.Els, CopyElement(b.last, iv.Start))
	}
	b.last = iv.End
	return nil
}

// Replace replaces iv with text. Intervals must be given in ascending order.
func (b *Builder) Replace(iv Interval, text string) error {
	if err := b.Delete(iv); err != nil {
		return err
	}
	if text != "" {
		b.delta.Els = append(b.delta.Els, InsertElement(text))
	}
	return nil
}

// Build finishes the delta, copying whatever follows the last replacement.
func (b *Builder) Build() *Delta {
	d := b.delta
	d.Els = append([]Element(nil), b.delta.Els...)
	if b.last < d.BaseLen {
		d.Els = append(d.Els, CopyElement(b.last, d.BaseLen))
	}
	if d.Els == nil {
		d.Els = []Element{}
	}
	return &d
}
