package manager_test

import (
	"errors"
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"wordcomplete/internal/delta"
	"wordcomplete/internal/manager"
)

const sample = "first line\nsecond\n\nlast"

func TestLineIndex(t *testing.T) {
	doc := manager.NewDocument("file:///tmp/a.txt", sample)

	if got := doc.LineCount(); got != 4 {
		t.Fatalf("LineCount() = %d, want 4", got)
	}

	offsets := []struct {
		offset int
		line   int
	}{
		{0, 0},
		{10, 0},
		{11, 1},
		{17, 1},
		{18, 2},
		{19, 3},
		{len(sample), 3},
	}
	for _, tt := range offsets {
		got, err := doc.LineOfOffset(tt.offset)
		if err != nil {
			t.Fatalf("LineOfOffset(%d) error = %v", tt.offset, err)
		}
		if got != tt.line {
			t.Errorf("LineOfOffset(%d) = %d, want %d", tt.offset, got, tt.line)
		}
	}

	lines := []struct {
		line  int
		start int
		text  string
	}{
		{0, 0, "first line\n"},
		{1, 11, "second\n"},
		{2, 18, "\n"},
		{3, 19, "last"},
	}
	for _, tt := range lines {
		start, err := doc.OffsetOfLine(tt.line)
		if err != nil {
			t.Fatalf("OffsetOfLine(%d) error = %v", tt.line, err)
		}
		if start != tt.start {
			t.Errorf("OffsetOfLine(%d) = %d, want %d", tt.line, start, tt.start)
		}
		text, err := doc.Line(tt.line)
		if err != nil {
			t.Fatalf("Line(%d) error = %v", tt.line, err)
		}
		if text != tt.text {
			t.Errorf("Line(%d) = %q, want %q", tt.line, text, tt.text)
		}
	}

	if _, err := doc.LineOfOffset(len(sample) + 1); err == nil {
		t.Error("LineOfOffset past end should fail")
	}
	if _, err := doc.OffsetOfLine(4); err == nil {
		t.Error("OffsetOfLine past last line should fail")
	}
}

func TestPositions(t *testing.T) {
	// "é" is two bytes and one UTF-16 unit, "𝄞" is four bytes and two units.
	doc := manager.NewDocument("file:///tmp/b.txt", "ab\né𝄞x\n")

	tests := []struct {
		offset int
		pos    protocol.Position
	}{
		{0, protocol.Position{Line: 0, Character: 0}},
		{2, protocol.Position{Line: 0, Character: 2}},
		{3, protocol.Position{Line: 1, Character: 0}},
		{5, protocol.Position{Line: 1, Character: 1}},
		{9, protocol.Position{Line: 1, Character: 3}},
		{10, protocol.Position{Line: 1, Character: 4}},
	}
	for _, tt := range tests {
		if got := doc.PositionOf(tt.offset); got != tt.pos {
			t.Errorf("PositionOf(%d) = %+v, want %+v", tt.offset, got, tt.pos)
		}
		if got := doc.OffsetOf(tt.pos); got != tt.offset {
			t.Errorf("OffsetOf(%+v) = %d, want %d", tt.pos, got, tt.offset)
		}
	}
}

func TestChange(t *testing.T) {
	doc := manager.NewDocument("file:///tmp/c.txt", "hello world\nbye")

	dl, err := doc.Change(protocol.TextDocumentContentChangeEvent{
		Range: &protocol.Range{
			Start: protocol.Position{Line: 0, Character: 11},
			End:   protocol.Position{Line: 0, Character: 11},
		},
		Text: "!",
	})
	if err != nil {
		t.Fatalf("Change() error = %v", err)
	}
	if doc.Text != "hello world!\nbye" {
		t.Errorf("Text = %q", doc.Text)
	}
	if s, ok := dl.AsSimpleInsert(); !ok || s != "!" {
		t.Errorf("AsSimpleInsert() = %q, %v, want \"!\", true", s, ok)
	}
	if iv, newLen := dl.Summary(); iv != delta.NewInterval(11, 11) || newLen != 1 {
		t.Errorf("Summary() = %v, %d", iv, newLen)
	}

	if _, err := doc.Change(protocol.TextDocumentContentChangeEventWhole{Text: "replaced"}); err != nil {
		t.Fatalf("Change(whole) error = %v", err)
	}
	if doc.Text != "replaced" || doc.LineCount() != 1 {
		t.Errorf("after whole change Text = %q, LineCount = %d", doc.Text, doc.LineCount())
	}

	if _, err := doc.Change("bogus"); err == nil {
		t.Error("Change(bogus) should fail")
	}
}

func TestTextEdits(t *testing.T) {
	doc := manager.NewDocument("file:///tmp/d.txt", "one\ntwo three")

	dl, err := delta.SimpleEdit(delta.NewInterval(8, 13), "THREE", doc.Len())
	if err != nil {
		t.Fatal(err)
	}
	edits, err := doc.TextEdits(dl)
	if err != nil {
		t.Fatalf("TextEdits() error = %v", err)
	}
	if len(edits) != 1 {
		t.Fatalf("got %d edits, want 1", len(edits))
	}
	want := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 4},
		End:   protocol.Position{Line: 1, Character: 9},
	}
	if edits[0].Range != want || edits[0].NewText != "THREE" {
		t.Errorf("edit = %+v, want range %+v text THREE", edits[0], want)
	}

	stale, _ := delta.SimpleEdit(delta.NewInterval(0, 1), "x", 3)
	if _, err := doc.TextEdits(stale); !errors.Is(err, delta.ErrBaseMismatch) {
		t.Errorf("TextEdits(stale) error = %v, want ErrBaseMismatch", err)
	}
}

func TestDocumentManager(t *testing.T) {
	dm := manager.NewDocumentManager()
	uri := "file:///tmp/e.txt"

	if _, err := dm.Open(uri, "abc"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := dm.Open(uri, "abc"); !errors.Is(err, manager.ErrDocumentOpen) {
		t.Errorf("second Open() error = %v, want ErrDocumentOpen", err)
	}

	deltas, err := dm.ApplyChanges(uri, []any{
		protocol.TextDocumentContentChangeEvent{
			Range: &protocol.Range{
				Start: protocol.Position{Line: 0, Character: 3},
				End:   protocol.Position{Line: 0, Character: 3},
			},
			Text: "d",
		},
		protocol.TextDocumentContentChangeEvent{
			Range: &protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   protocol.Position{Line: 0, Character: 1},
			},
			Text: "A",
		},
	})
	if err != nil {
		t.Fatalf("ApplyChanges() error = %v", err)
	}
	if len(deltas) != 2 || deltas[0].BaseLen != 3 || deltas[1].BaseLen != 4 {
		t.Errorf("unexpected deltas %+v", deltas)
	}

	doc, err := dm.Get(uri)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if doc.Text != "Abcd" {
		t.Errorf("Text = %q, want Abcd", doc.Text)
	}

	if got := dm.URIs(); len(got) != 1 || got[0] != uri {
		t.Errorf("URIs() = %v", got)
	}

	dm.Release(uri)
	if _, err := dm.Get(uri); !errors.Is(err, manager.ErrDocumentNotFound) {
		t.Errorf("Get() after Release error = %v, want ErrDocumentNotFound", err)
	}
	if _, err := dm.ApplyChanges(uri, nil); !errors.Is(err, manager.ErrDocumentNotFound) {
		t.Errorf("ApplyChanges() after Release error = %v", err)
	}

	dm.Open("file:///tmp/f.txt", "")
	dm.CloseAll()
	if got := dm.URIs(); len(got) != 0 {
		t.Errorf("URIs() after CloseAll = %v", got)
	}
}
