// Package wordcomplete is a plugin that upper-cases the word in front of a
// typed "!" and offers completions from the words already in the document.
package wordcomplete

import (
	"github.com/tliron/commonlog"

	"wordcomplete/internal/delta"
	"wordcomplete/internal/plugin"
)

// DefaultAuthor is the author recorded on edits when none is configured.
const DefaultAuthor = "wordcomplete"

// EditType labels the edits this plugin submits.
const EditType = "capitalize"

// Plugin implements plugin.Plugin.
type Plugin struct {
	plugin.NopPlugin

	author string
	log    commonlog.Logger
}

// New creates the plugin. author is recorded on every submitted edit.
func New(author string) *Plugin {
	if author == "" {
		author = DefaultAuthor
	}
	return &Plugin{
		author: author,
		log:    commonlog.GetLogger("wordcomplete.plugin"),
	}
}

func (p *Plugin) NewView(view plugin.View) {
	p.log.Infof("new view %s: %s", view.ID(), view.Path())
}

func (p *Plugin) DidClose(view plugin.View) {
	p.log.Infof("closed view %s", view.ID())
}

func (p *Plugin) DidSave(view plugin.View, previousPath string) {
	p.log.Infof("saved view %s: %q -> %q", view.ID(), previousPath, view.Path())
}

// Update capitalizes the word before the cursor when the change was a
// single typed "!".
func (p *Plugin) Update(view plugin.View, d *delta.Delta, editType, author string) {
	if d == nil {
		return
	}
	iv, _ := d.Summary()
	text, ok := d.AsSimpleInsert()
	if !ok || text != "!" {
		return
	}

	p.log.Debugf("capitalizing before %d in view %s", iv.End, view.ID())
	if err := p.capitalizeWord(view, iv.End); err != nil {
		p.log.Debugf("capitalize on view %s: %s", view.ID(), err.Error())
	}
}

// Completions offers every longer document word that starts with the word
// ending at offset.
func (p *Plugin) Completions(view plugin.View, requestID int, offset int) plugin.CompletionResponse {
	p.log.Debugf("completions request %d at %d in view %s", requestID, offset, view.ID())
	return plugin.CompletionResponse{
		IsIncomplete: false,
		CanResolve:   false,
		Items:        p.wordCompletions(view, offset),
	}
}
