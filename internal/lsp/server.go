// Package lsp lets a Language Server Protocol client drive a plugin.Plugin.
// The server keeps its own copy of every open document and answers the
// plugin's host queries from it; edits go back to the client as
// workspace/applyEdit requests.
package lsp

import (
	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"wordcomplete/internal/config"
	"wordcomplete/internal/manager"
	"wordcomplete/internal/plugin"
)

const serverName = "wordcomplete"

type Server struct {
	handler    *protocol.Handler
	newPlugin  func(config.Config) plugin.Plugin
	dispatcher *plugin.Dispatcher
	manager    *manager.DocumentManager
	config     config.Config
	version    string
	requests   int
	log        commonlog.Logger
}

// NewServer creates the server. newPlugin is called once the client has
// sent its initialization options.
func NewServer(newPlugin func(config.Config) plugin.Plugin, cfg config.Config, version string) *Server {
	ls := &Server{
		newPlugin: newPlugin,
		manager:   manager.NewDocumentManager(),
		config:    cfg,
		version:   version,
		log:       commonlog.GetLogger("wordcomplete.lsp"),
	}
	ls.handler = &protocol.Handler{
		Initialize:                      ls.initialize,
		Initialized:                     ls.initialized,
		TextDocumentDidOpen:             ls.textDocumentDidOpen,
		TextDocumentDidChange:           ls.textDocumentDidChange,
		TextDocumentDidSave:             ls.textDocumentDidSave,
		TextDocumentDidClose:            ls.textDocumentDidClose,
		TextDocumentCompletion:          ls.textDocumentCompletion,
		WorkspaceDidChangeConfiguration: ls.workspaceDidChangeConfiguration,
		Shutdown:                        ls.shutdown,
	}
	return ls
}

// Handler exposes the protocol handler.
func (s *Server) Handler() *protocol.Handler {
	return s.handler
}

func (s *Server) glspServer() *server.Server {
	return server.NewServer(s.handler, serverName, s.config.Debug)
}

func (s *Server) RunStdio() error {
	return s.glspServer().RunStdio()
}

func (s *Server) RunTCP(addr string) error {
	return s.glspServer().RunTCP(addr)
}

func (s *Server) RunWebSocket(addr string) error {
	return s.glspServer().RunWebSocket(addr)
}
