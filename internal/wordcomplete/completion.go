package wordcomplete

import (
	"slices"
	"sort"
	"strings"
	"unicode"

	"wordcomplete/internal/delta"
	"wordcomplete/internal/plugin"
)

// CompleteWord returns the distinct words of text that start with word and
// are longer than it, sorted. Words are runs of alphabetic and numeric
// characters, including numerals such as ² and combining vowel signs.
func CompleteWord(word string, text string) []string {
	if word == "" {
		return []string{}
	}

	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !isWordRune(r)
	})

	matches := []string{}
	for _, tok := range tokens {
		if len(tok) > len(word) && strings.HasPrefix(tok, word) {
			matches = append(matches, tok)
		}
	}
	sort.Strings(matches)
	return slices.Compact(matches)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Other_Alphabetic, r)
}

func (p *Plugin) wordCompletions(view plugin.View, offset int) []plugin.CompletionItem {
	word, err := wordBefore(view, offset)
	if err != nil {
		p.log.Debugf("no word at %d in view %s: %s", offset, view.ID(), err.Error())
		return []plugin.CompletionItem{}
	}
	if word.Text == "" {
		return []plugin.CompletionItem{}
	}

	text, err := view.GetDocument()
	if err != nil {
		p.log.Warningf("failed to fetch document for view %s: %s", view.ID(), err.Error())
		text = ""
	}

	return p.makeCompletions(view, word.Start, word.Text, CompleteWord(word.Text, text))
}

func (p *Plugin) makeCompletions(view plugin.View, start int, word string, words []string) []plugin.CompletionItem {
	items := make([]plugin.CompletionItem, 0, len(words))
	if len(words) == 0 {
		return items
	}

	size, err := view.GetBufferSize()
	if err != nil {
		p.log.Debugf("failed to fetch buffer size for view %s: %s", view.ID(), err.Error())
		return items
	}

	iv := delta.NewInterval(start, start+len(word))
	for _, w := range words {
		d, err := delta.SimpleEdit(iv, w, size)
		if err != nil {
			p.log.Debugf("skipping completion %q: %s", w, err.Error())
			continue
		}
		items = append(items, plugin.CompletionItem{Label: w, Edit: d})
	}
	return items
}
