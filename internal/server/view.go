package server

import (
	"context"

	"github.com/sourcegraph/jsonrpc2"

	"wordcomplete/internal/plugin"
)

// rpcHost builds views that query the host over the connection the current
// message arrived on.
type rpcHost struct {
	ctx  context.Context
	conn *jsonrpc2.Conn
}

func (h *rpcHost) View(info plugin.ViewInfo) plugin.View {
	return &rpcView{host: h, info: info}
}

type rpcView struct {
	host *rpcHost
	info plugin.ViewInfo
}

func (v *rpcView) ID() plugin.ViewID { return v.info.ID }

func (v *rpcView) Path() string { return v.info.Path }

func (v *rpcView) call(method string, params any, result any) error {
	if err := v.host.conn.Call(v.host.ctx, method, params, result); err != nil {
		return &plugin.HostError{Method: method, Err: err}
	}
	return nil
}

func (v *rpcView) LineOfOffset(offset int) (int, error) {
	var line int
	err := v.call(MethodLineOfOffset, OffsetQuery{ViewID: v.info.ID, Offset: offset}, &line)
	return line, err
}

func (v *rpcView) OffsetOfLine(line int) (int, error) {
	var offset int
	err := v.call(MethodOffsetOfLine, LineQuery{ViewID: v.info.ID, Line: line}, &offset)
	return offset, err
}

func (v *rpcView) GetLine(line int) (string, error) {
	var text string
	err := v.call(MethodGetLine, LineQuery{ViewID: v.info.ID, Line: line}, &text)
	return text, err
}

func (v *rpcView) GetDocument() (string, error) {
	var text string
	err := v.call(MethodGetDocument, ViewQuery{ViewID: v.info.ID}, &text)
	return text, err
}

func (v *rpcView) GetBufferSize() (int, error) {
	var size int
	err := v.call(MethodGetBufferSize, ViewQuery{ViewID: v.info.ID}, &size)
	return size, err
}

// SubmitEdit sends the edit tagged with the revision the plugin last saw.
func (v *rpcView) SubmitEdit(edit plugin.Edit) error {
	err := v.host.conn.Notify(v.host.ctx, MethodEdit, EditNotification{
		ViewID: v.info.ID,
		Edit:   RevEdit{Rev: v.info.Rev, Edit: edit},
	})
	if err != nil {
		return &plugin.HostError{Method: MethodEdit, Err: err}
	}
	return nil
}
