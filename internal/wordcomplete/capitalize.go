package wordcomplete

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"wordcomplete/internal/delta"
	"wordcomplete/internal/plugin"
	"wordcomplete/internal/scanner"
)

// wordBefore asks the host for the line holding offset and returns the word
// that ends there.
func wordBefore(view plugin.View, offset int) (scanner.Word, error) {
	line, err := view.LineOfOffset(offset)
	if err != nil {
		return scanner.Word{}, err
	}
	lineStart, err := view.OffsetOfLine(line)
	if err != nil {
		return scanner.Word{}, err
	}
	text, err := view.GetLine(line)
	if err != nil {
		return scanner.Word{}, err
	}
	return scanner.WordAt(text, lineStart, offset)
}

// capitalizeWord replaces the word ending at end with its upper-case form.
func (p *Plugin) capitalizeWord(view plugin.View, end int) error {
	word, err := wordBefore(view, end)
	if err != nil {
		return fmt.Errorf("failed to find word before %d: %w", end, err)
	}

	size, err := view.GetBufferSize()
	if err != nil {
		return err
	}

	// A Caser keeps state, so each call gets its own.
	upper := cases.Upper(language.Und).String(word.Text)
	d, err := delta.SimpleEdit(delta.NewInterval(word.Start, word.End()), upper, size)
	if err != nil {
		return fmt.Errorf("failed to build edit for %q: %w", word.Text, err)
	}

	return view.SubmitEdit(plugin.Edit{
		Delta:       d,
		Priority:    0,
		AfterCursor: false,
		Validate:    true,
		Author:      p.author,
		EditType:    EditType,
	})
}
