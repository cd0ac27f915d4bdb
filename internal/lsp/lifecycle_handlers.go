package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"wordcomplete/internal/plugin"
)

func (s *Server) initialize(
	context *glsp.Context,
	params *protocol.InitializeParams,
) (any, error) {
	// Config
	if params.InitializationOptions != nil {
		cfg, err := s.config.Merge(params.InitializationOptions)
		if err != nil {
			return nil, err
		}
		s.config = cfg
	}
	s.log.Infof("config: %+v", s.config)

	s.dispatcher = plugin.NewDispatcher(s.newPlugin(s.config))

	syncKind := protocol.TextDocumentSyncKindIncremental

	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
		Save:      true,
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(
	context *glsp.Context,
	params *protocol.InitializedParams,
) error {
	s.log.Info("client initialized")
	return nil
}

func (s *Server) workspaceDidChangeConfiguration(
	context *glsp.Context,
	params *protocol.DidChangeConfigurationParams,
) error {
	changes, ok := params.Settings.(map[string]any)
	if !ok {
		s.log.Debugf("ignoring settings of type %T", params.Settings)
		return nil
	}

	host := s.host(context)
	for _, id := range s.dispatcher.Views() {
		if err := s.dispatcher.ConfigChanged(host, id, changes); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) shutdown(context *glsp.Context) error {
	host := s.host(context)
	for _, uri := range s.manager.URIs() {
		if err := s.dispatcher.Close(host, plugin.ViewID(uri)); err != nil {
			s.log.Warningf("%s", err.Error())
		}
	}
	s.manager.CloseAll()
	return nil
}
