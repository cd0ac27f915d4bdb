package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"wordcomplete/internal/plugin"
	"wordcomplete/internal/utils"
)

// Changes arriving from the client carry this edit type.
const clientEditType = "insert"

func (s *Server) textDocumentDidOpen(
	context *glsp.Context,
	params *protocol.DidOpenTextDocumentParams,
) error {
	uri := params.TextDocument.URI
	doc, err := s.manager.Open(uri, params.TextDocument.Text)
	if err != nil {
		return err
	}

	return s.dispatcher.Open(s.host(context), plugin.ViewInfo{
		ID:      plugin.ViewID(uri),
		Path:    utils.URIToPath(uri),
		Rev:     uint64(params.TextDocument.Version),
		BufSize: doc.Len(),
		Syntax:  params.TextDocument.LanguageID,
	})
}

// textDocumentDidChange hands every content change to the plugin as its own
// update, so the plugin always sees the document as of that change.
func (s *Server) textDocumentDidChange(
	context *glsp.Context,
	params *protocol.DidChangeTextDocumentParams,
) error {
	uri := params.TextDocument.URI
	host := s.host(context)

	for _, change := range params.ContentChanges {
		deltas, err := s.manager.ApplyChanges(uri, []any{change})
		if err != nil {
			return err
		}
		doc, err := s.manager.Get(uri)
		if err != nil {
			return err
		}

		err = s.dispatcher.Update(host, plugin.ViewID(uri), plugin.UpdateParams{
			Delta:    deltas[0],
			NewLen:   doc.Len(),
			Rev:      uint64(params.TextDocument.Version),
			EditType: clientEditType,
			Author:   "client",
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) textDocumentDidSave(
	context *glsp.Context,
	params *protocol.DidSaveTextDocumentParams,
) error {
	uri := params.TextDocument.URI
	return s.dispatcher.Save(s.host(context), plugin.ViewID(uri), utils.URIToPath(uri))
}

func (s *Server) textDocumentDidClose(
	context *glsp.Context,
	params *protocol.DidCloseTextDocumentParams,
) error {
	uri := params.TextDocument.URI
	err := s.dispatcher.Close(s.host(context), plugin.ViewID(uri))

	// Free resources
	s.manager.Release(uri)
	return err
}

func (s *Server) textDocumentCompletion(
	context *glsp.Context,
	params *protocol.CompletionParams,
) (any, error) {
	uri := params.TextDocument.URI
	doc, err := s.manager.Get(uri)
	if err != nil {
		return nil, err
	}

	s.requests++
	offset := doc.OffsetOf(params.Position)
	resp, err := s.dispatcher.Completions(s.host(context), plugin.ViewID(uri), s.requests, offset)
	if err != nil {
		s.log.Warningf("%s", err.Error())
	}

	kind := protocol.CompletionItemKindText
	items := make([]protocol.CompletionItem, 0, len(resp.Items))
	for _, item := range resp.Items {
		ci := protocol.CompletionItem{Label: item.Label, Kind: &kind}
		if item.Edit != nil {
			edits, err := doc.TextEdits(item.Edit)
			if err != nil {
				s.log.Debugf("dropping edit for %q: %s", item.Label, err.Error())
			} else if len(edits) == 1 {
				ci.TextEdit = edits[0]
			}
		}
		items = append(items, ci)
	}

	return protocol.CompletionList{
		IsIncomplete: resp.IsIncomplete,
		Items:        items,
	}, nil
}
