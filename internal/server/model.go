package server

import (
	"wordcomplete/internal/delta"
	"wordcomplete/internal/plugin"
)

// BufferInfo describes one buffer and the views showing it.
type BufferInfo struct {
	Views   []plugin.ViewID `json:"views"`
	Path    string          `json:"path"`
	Rev     uint64          `json:"rev"`
	BufSize int             `json:"buf_size"`
	Syntax  string          `json:"syntax"`
	Config  map[string]any  `json:"config"`
}

type InitializeParams struct {
	PluginID   int          `json:"plugin_id"`
	BufferInfo []BufferInfo `json:"buffer_info"`
}

type NewBufferParams struct {
	BufferInfo []BufferInfo `json:"buffer_info"`
}

type ViewParams struct {
	ViewID plugin.ViewID `json:"view_id"`
}

type DidSaveParams struct {
	ViewID plugin.ViewID `json:"view_id"`
	Path   string        `json:"path"`
}

type ConfigChangedParams struct {
	ViewID  plugin.ViewID  `json:"view_id"`
	Changes map[string]any `json:"changes"`
}

type UpdateParams struct {
	ViewID   plugin.ViewID `json:"view_id"`
	Delta    *delta.Delta  `json:"delta"`
	NewLen   int           `json:"new_len"`
	Rev      uint64        `json:"rev"`
	EditType string        `json:"edit_type"`
	Author   string        `json:"author"`
}

type CompletionsParams struct {
	ViewID    plugin.ViewID `json:"view_id"`
	RequestID int           `json:"request_id"`
	Pos       int           `json:"pos"`
}

// CompletionsResult is sent back as a "completions" notification.
type CompletionsResult struct {
	ViewID    plugin.ViewID             `json:"view_id"`
	RequestID int                       `json:"request_id"`
	Result    plugin.CompletionResponse `json:"result"`
}

// Host queries.

type OffsetQuery struct {
	ViewID plugin.ViewID `json:"view_id"`
	Offset int           `json:"offset"`
}

type LineQuery struct {
	ViewID plugin.ViewID `json:"view_id"`
	Line   int           `json:"line"`
}

type ViewQuery struct {
	ViewID plugin.ViewID `json:"view_id"`
}

// EditNotification asks the host to apply an edit to the revision it was
// computed against.
type EditNotification struct {
	ViewID plugin.ViewID `json:"view_id"`
	Edit   RevEdit       `json:"edit"`
}

type RevEdit struct {
	Rev uint64 `json:"rev"`
	plugin.Edit
}

const (
	MethodInitialize    = "initialize"
	MethodNewBuffer     = "new_buffer"
	MethodDidClose      = "did_close"
	MethodDidSave       = "did_save"
	MethodConfigChanged = "config_changed"
	MethodUpdate        = "update"
	MethodCompletions   = "completions"
	MethodShutdown      = "shutdown"

	MethodLineOfOffset  = "line_of_offset"
	MethodOffsetOfLine  = "offset_of_line"
	MethodGetLine       = "get_line"
	MethodGetDocument   = "get_document"
	MethodGetBufferSize = "get_buffer_size"
	MethodEdit          = "edit"
)
