// Package plugin defines the callback contract between an editor host and a
// plugin, the view handle the host lends to each callback, and the
// dispatcher that routes host notifications to a Plugin.
package plugin

import (
	"wordcomplete/internal/delta"
)

// ViewID identifies one open document session on the host.
type ViewID string

// View is the host's handle for one document session. A View is only valid
// for the duration of the callback it was passed to and must not be retained;
// calls made after the callback returns fail with ErrViewReleased.
type View interface {
	ID() ViewID
	Path() string

	LineOfOffset(offset int) (int, error)
	OffsetOfLine(line int) (int, error)
	GetLine(line int) (string, error)
	GetDocument() (string, error)
	GetBufferSize() (int, error)

	SubmitEdit(edit Edit) error
}

// Edit is a mutation submitted to the host.
type Edit struct {
	Delta *delta.Delta `json:"delta"`
	// Priority orders concurrent plugin edits on the host.
	Priority uint64 `json:"priority"`
	// AfterCursor places inserted text after the cursor when both start at
	// the same offset.
	AfterCursor bool `json:"after_cursor"`
	// Validate asks the host to check the delta against its current revision
	// and open a new undo group for it.
	Validate bool   `json:"validate"`
	Author   string `json:"author"`
	EditType string `json:"edit_type"`
}

// CompletionItem is a completion candidate with the edit that applies it.
type CompletionItem struct {
	Label string       `json:"label"`
	Edit  *delta.Delta `json:"edit,omitempty"`
}

// CompletionResponse answers a completions request.
type CompletionResponse struct {
	IsIncomplete bool             `json:"is_incomplete"`
	CanResolve   bool             `json:"can_resolve"`
	Items        []CompletionItem `json:"items"`
}

// Plugin is the set of callbacks a host drives. Embed NopPlugin to get
// no-op defaults and override only what is needed.
type Plugin interface {
	NewView(view View)
	DidClose(view View)
	// DidSave receives the path the view had before the save, or "" if none.
	DidSave(view View, previousPath string)
	ConfigChanged(view View, changes map[string]any)
	// Update is called after the document changed. d is nil when the host
	// did not send the change.
	Update(view View, d *delta.Delta, editType, author string)
	Completions(view View, requestID int, offset int) CompletionResponse
}

// NopPlugin implements Plugin with callbacks that do nothing.
type NopPlugin struct{}

func (NopPlugin) NewView(View) {}

func (NopPlugin) DidClose(View) {}

func (NopPlugin) DidSave(View, string) {}

func (NopPlugin) ConfigChanged(View, map[string]any) {}

func (NopPlugin) Update(View, *delta.Delta, string, string) {}

func (NopPlugin) Completions(View, int, int) CompletionResponse {
	return CompletionResponse{Items: []CompletionItem{}}
}
