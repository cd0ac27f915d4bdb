package wordcomplete_test

import (
	"slices"
	"testing"

	"wordcomplete/internal/delta"
	"wordcomplete/internal/plugin"
	"wordcomplete/internal/plugin/plugintest"
	"wordcomplete/internal/wordcomplete"
)

// typed inserts text at offset in the view's document and returns the delta
// the host would report for it.
func typed(t *testing.T, view *plugintest.FakeView, offset int, text string) *delta.Delta {
	t.Helper()
	d, err := delta.SimpleEdit(delta.NewInterval(offset, offset), text, view.Doc.Len())
	if err != nil {
		t.Fatal(err)
	}
	if err := view.Doc.Apply(d); err != nil {
		t.Fatal(err)
	}
	return d
}

func TestUpdateCapitalizes(t *testing.T) {
	tests := []struct {
		name   string
		before string
		offset int
		want   string
	}{
		{"second word", "hello world", 11, "hello WORLD!"},
		{"only word", "hey", 3, "HEY!"},
		{"second line", "one\ntwo three", 13, "one\ntwo THREE!"},
		{"mid line", "abc def ghi", 7, "abc DEF! ghi"},
		{"sharp s grows", "groß", 5, "GROSS!"},
		{"empty word", "abc ", 4, "abc !"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := plugintest.NewFakeView("view-id-1", tt.before)
			p := wordcomplete.New("")

			p.Update(view, typed(t, view, tt.offset, "!"), "insert", "test")

			if len(view.Edits) != 1 {
				t.Fatalf("got %d edits, want 1", len(view.Edits))
			}
			e := view.Edits[0]
			if e.Priority != 0 || e.AfterCursor || !e.Validate {
				t.Errorf("edit flags = %+v", e)
			}
			if e.Author != wordcomplete.DefaultAuthor || e.EditType != wordcomplete.EditType {
				t.Errorf("edit author/type = %q/%q", e.Author, e.EditType)
			}
			if err := view.ApplyEdits(); err != nil {
				t.Fatalf("ApplyEdits() error = %v", err)
			}
			if view.Doc.Text != tt.want {
				t.Errorf("document = %q, want %q", view.Doc.Text, tt.want)
			}
		})
	}
}

func TestUpdateIgnoresOtherChanges(t *testing.T) {
	tests := []struct {
		name  string
		delta func(view *plugintest.FakeView) *delta.Delta
	}{
		{"no delta", func(*plugintest.FakeView) *delta.Delta { return nil }},
		{"other character", func(v *plugintest.FakeView) *delta.Delta {
			d, _ := delta.SimpleEdit(delta.NewInterval(5, 5), "?", v.Doc.Len())
			return d
		}},
		{"bang in longer insert", func(v *plugintest.FakeView) *delta.Delta {
			d, _ := delta.SimpleEdit(delta.NewInterval(5, 5), "!!", v.Doc.Len())
			return d
		}},
		{"bang replacing text", func(v *plugintest.FakeView) *delta.Delta {
			d, _ := delta.SimpleEdit(delta.NewInterval(4, 5), "!", v.Doc.Len())
			return d
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := plugintest.NewFakeView("view-id-1", "hello")
			wordcomplete.New("me").Update(view, tt.delta(view), "insert", "test")

			if len(view.Edits) != 0 {
				t.Errorf("got %d edits, want none", len(view.Edits))
			}
			if len(view.Queries) != 0 {
				t.Errorf("unexpected host queries %v", view.Queries)
			}
		})
	}
}

func TestUpdateHostFailure(t *testing.T) {
	for _, method := range []string{"line_of_offset", "offset_of_line", "get_line", "get_buffer_size", "edit"} {
		t.Run(method, func(t *testing.T) {
			view := plugintest.NewFakeView("view-id-1", "hello")
			view.Fail[method] = true

			wordcomplete.New("").Update(view, typed(t, view, 5, "!"), "insert", "test")

			if len(view.Edits) != 0 {
				t.Errorf("got %d edits after %s failure", len(view.Edits), method)
			}
			if view.Doc.Text != "hello!" {
				t.Errorf("document changed to %q", view.Doc.Text)
			}
		})
	}
}

func TestUpdateUsesConfiguredAuthor(t *testing.T) {
	view := plugintest.NewFakeView("view-id-1", "hi")
	wordcomplete.New("someone").Update(view, typed(t, view, 2, "!"), "insert", "test")

	if len(view.Edits) != 1 || view.Edits[0].Author != "someone" {
		t.Errorf("edits = %+v, want one by someone", view.Edits)
	}
}

func TestCompleteWord(t *testing.T) {
	tests := []struct {
		name string
		word string
		text string
		want []string
	}{
		{"example", "foo", "foo foobar foo bar", []string{"foobar"}},
		{"empty word", "", "foo foobar", []string{}},
		{"no match", "zap", "foo foobar", []string{}},
		{"sorted and distinct", "ba", "bat, bar. bat; baz bar", []string{"bar", "bat", "baz"}},
		{"punctuation splits", "ab", "ab-cd abc_d abcd", []string{"abc", "abcd"}},
		{"digits count", "v", "v1 v22 v", []string{"v1", "v22"}},
		{"case sensitive", "Fo", "foo Foo FOO", []string{"Foo"}},
		{"unicode letters", "stra", "straße strasse", []string{"strasse", "straße"}},
		{"other numerals", "x", "x² x2 xⅫ", []string{"x2", "x²", "xⅫ"}},
		{"combining vowel signs", "क", "कि कम", []string{"कम", "कि"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wordcomplete.CompleteWord(tt.word, tt.text)
			if got == nil {
				t.Fatal("CompleteWord() returned nil")
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("CompleteWord(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestCompletions(t *testing.T) {
	view := plugintest.NewFakeView("view-id-1", "foo foobar foo bar\nfoo")
	p := wordcomplete.New("")

	resp := p.Completions(view, 1, view.Doc.Len())
	if resp.IsIncomplete || resp.CanResolve {
		t.Errorf("flags = %+v", resp)
	}
	if len(resp.Items) != 1 || resp.Items[0].Label != "foobar" {
		t.Fatalf("items = %+v, want [foobar]", resp.Items)
	}

	text, err := resp.Items[0].Edit.Apply(view.Doc.Text)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if text != "foo foobar foo bar\nfoobar" {
		t.Errorf("applied completion = %q", text)
	}
}

func TestCompletionsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		offset int
		fail   string
	}{
		{"start of line", "foo foobar\n", 11, ""},
		{"after space", "foo foobar ", 11, ""},
		{"scanner query fails", "foo foobar\nfoo", 14, "get_line"},
		{"document fetch fails", "foo foobar\nfoo", 14, "get_document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := plugintest.NewFakeView("view-id-1", tt.text)
			if tt.fail != "" {
				view.Fail[tt.fail] = true
			}
			resp := wordcomplete.New("").Completions(view, 2, tt.offset)
			if resp.Items == nil || len(resp.Items) != 0 {
				t.Errorf("items = %#v, want empty", resp.Items)
			}
		})
	}
}

func TestCompletionsThroughDispatcher(t *testing.T) {
	d := plugin.NewDispatcher(wordcomplete.New(""))
	view := plugintest.NewFakeView("view-id-1", "alpha alphabet al")
	if err := d.Open(view, plugin.ViewInfo{ID: "view-id-1"}); err != nil {
		t.Fatal(err)
	}

	resp, err := d.Completions(view, "view-id-1", 3, view.Doc.Len())
	if err != nil {
		t.Fatalf("Completions() error = %v", err)
	}
	var labels []string
	for _, item := range resp.Items {
		labels = append(labels, item.Label)
	}
	if !slices.Equal(labels, []string{"alpha", "alphabet"}) {
		t.Errorf("labels = %v", labels)
	}
}
