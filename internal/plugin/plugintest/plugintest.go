// Package plugintest provides an in-memory plugin.View for tests.
package plugintest

import (
	"errors"

	"wordcomplete/internal/manager"
	"wordcomplete/internal/plugin"
)

// ErrInjected is returned by queries listed in FakeView.Fail.
var ErrInjected = errors.New("injected host failure")

// FakeView answers host queries from a local document and records the
// edits submitted to it without applying them.
type FakeView struct {
	ViewID   plugin.ViewID
	FilePath string
	Doc      *manager.Document

	// Fail names the queries that should fail, e.g. "get_line".
	Fail map[string]bool

	Edits   []plugin.Edit
	Queries []string
}

// NewFakeView creates a view over text.
func NewFakeView(id plugin.ViewID, text string) *FakeView {
	return &FakeView{
		ViewID: id,
		Doc:    manager.NewDocument("file:///"+string(id), text),
		Fail:   map[string]bool{},
	}
}

// View satisfies plugin.Host, so a FakeView can be handed to a Dispatcher.
// It ignores info and always returns itself.
func (f *FakeView) View(plugin.ViewInfo) plugin.View { return f }

func (f *FakeView) ID() plugin.ViewID { return f.ViewID }

func (f *FakeView) Path() string { return f.FilePath }

func (f *FakeView) query(method string) error {
	f.Queries = append(f.Queries, method)
	if f.Fail[method] {
		return &plugin.HostError{Method: method, Err: ErrInjected}
	}
	return nil
}

func (f *FakeView) LineOfOffset(offset int) (int, error) {
	if err := f.query("line_of_offset"); err != nil {
		return 0, err
	}
	return f.Doc.LineOfOffset(offset)
}

func (f *FakeView) OffsetOfLine(line int) (int, error) {
	if err := f.query("offset_of_line"); err != nil {
		return 0, err
	}
	return f.Doc.OffsetOfLine(line)
}

func (f *FakeView) GetLine(line int) (string, error) {
	if err := f.query("get_line"); err != nil {
		return "", err
	}
	return f.Doc.Line(line)
}

func (f *FakeView) GetDocument() (string, error) {
	if err := f.query("get_document"); err != nil {
		return "", err
	}
	return f.Doc.Text, nil
}

func (f *FakeView) GetBufferSize() (int, error) {
	if err := f.query("get_buffer_size"); err != nil {
		return 0, err
	}
	return f.Doc.Len(), nil
}

func (f *FakeView) SubmitEdit(edit plugin.Edit) error {
	if err := f.query("edit"); err != nil {
		return err
	}
	f.Edits = append(f.Edits, edit)
	return nil
}

// ApplyEdits applies the recorded edits to the document in order.
func (f *FakeView) ApplyEdits() error {
	for _, e := range f.Edits {
		if err := f.Doc.Apply(e.Delta); err != nil {
			return err
		}
	}
	f.Edits = nil
	return nil
}
