package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"wordcomplete/internal/manager"
	"wordcomplete/internal/plugin"
)

// docHost answers plugin queries from the server's own copy of each document.
type docHost struct {
	server  *Server
	context *glsp.Context
}

func (s *Server) host(context *glsp.Context) *docHost {
	return &docHost{server: s, context: context}
}

func (h *docHost) View(info plugin.ViewInfo) plugin.View {
	doc, err := h.server.manager.Get(string(info.ID))
	return &docView{host: h, info: info, doc: doc, err: err}
}

type docView struct {
	host *docHost
	info plugin.ViewInfo
	doc  *manager.Document
	err  error
}

func (v *docView) ID() plugin.ViewID { return v.info.ID }

func (v *docView) Path() string { return v.info.Path }

func (v *docView) LineOfOffset(offset int) (int, error) {
	if v.err != nil {
		return 0, v.err
	}
	return v.doc.LineOfOffset(offset)
}

func (v *docView) OffsetOfLine(line int) (int, error) {
	if v.err != nil {
		return 0, v.err
	}
	return v.doc.OffsetOfLine(line)
}

func (v *docView) GetLine(line int) (string, error) {
	if v.err != nil {
		return "", v.err
	}
	return v.doc.Line(line)
}

func (v *docView) GetDocument() (string, error) {
	if v.err != nil {
		return "", v.err
	}
	return v.doc.Text, nil
}

func (v *docView) GetBufferSize() (int, error) {
	if v.err != nil {
		return 0, v.err
	}
	return v.doc.Len(), nil
}

// SubmitEdit asks the client to apply the edit. The request is sent from its
// own goroutine: the handler that triggered it runs on the connection's read
// loop, which has to keep running to receive the client's answer.
func (v *docView) SubmitEdit(edit plugin.Edit) error {
	if v.err != nil {
		return v.err
	}
	edits, err := v.doc.TextEdits(edit.Delta)
	if err != nil {
		return err
	}

	label := edit.EditType
	params := protocol.ApplyWorkspaceEditParams{
		Label: &label,
		Edit: protocol.WorkspaceEdit{
			Changes: map[protocol.DocumentUri][]protocol.TextEdit{
				v.doc.URI: edits,
			},
		},
	}

	log := v.host.server.log
	call := v.host.context.Call
	go func() {
		var result protocol.ApplyWorkspaceEditResponse
		call(protocol.ServerWorkspaceApplyEdit, params, &result)
		if !result.Applied {
			reason := "no reason given"
			if result.FailureReason != nil {
				reason = *result.FailureReason
			}
			log.Warningf("client did not apply %s edit: %s", label, reason)
		}
	}()
	return nil
}
