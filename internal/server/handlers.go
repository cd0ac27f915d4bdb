package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sourcegraph/jsonrpc2"

	"wordcomplete/internal/plugin"
)

// handle runs one inbound message on the scheduler worker and replies to it
// when it is a request.
func (s *Server) handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) error {
	host := &rpcHost{ctx: ctx, conn: conn}

	if req.Method == MethodShutdown {
		s.log.Info("shutdown requested")
		if !req.Notif {
			if err := conn.Reply(ctx, req.ID, nil); err != nil {
				s.log.Warningf("failed to reply to shutdown: %s", err.Error())
			}
		}
		return conn.Close()
	}

	result, err := s.dispatch(host, req)
	if err != nil {
		var fault *plugin.FaultError
		if errors.As(err, &fault) {
			s.log.Errorf("%s", err.Error())
		} else {
			s.log.Warningf("%s", err.Error())
		}
	}

	if req.Notif {
		return nil
	}
	if err != nil {
		return conn.ReplyWithError(ctx, req.ID, remoteError(err))
	}
	return conn.Reply(ctx, req.ID, result)
}

func (s *Server) dispatch(host *rpcHost, req *jsonrpc2.Request) (any, error) {
	switch req.Method {
	case MethodInitialize:
		var params InitializeParams
		if err := decode(req, &params); err != nil {
			return nil, err
		}
		s.log.Infof("initialized as plugin %d", params.PluginID)
		return nil, s.openBuffers(host, params.BufferInfo)

	case MethodNewBuffer:
		var params NewBufferParams
		if err := decode(req, &params); err != nil {
			return nil, err
		}
		return nil, s.openBuffers(host, params.BufferInfo)

	case MethodDidClose:
		var params ViewParams
		if err := decode(req, &params); err != nil {
			return nil, err
		}
		return nil, s.dispatcher.Close(host, params.ViewID)

	case MethodDidSave:
		var params DidSaveParams
		if err := decode(req, &params); err != nil {
			return nil, err
		}
		return nil, s.dispatcher.Save(host, params.ViewID, params.Path)

	case MethodConfigChanged:
		var params ConfigChangedParams
		if err := decode(req, &params); err != nil {
			return nil, err
		}
		return nil, s.dispatcher.ConfigChanged(host, params.ViewID, params.Changes)

	case MethodUpdate:
		var params UpdateParams
		if err := decode(req, &params); err != nil {
			return nil, err
		}
		err := s.dispatcher.Update(host, params.ViewID, plugin.UpdateParams{
			Delta:    params.Delta,
			NewLen:   params.NewLen,
			Rev:      params.Rev,
			EditType: params.EditType,
			Author:   params.Author,
		})
		return 0, err

	case MethodCompletions:
		var params CompletionsParams
		if err := decode(req, &params); err != nil {
			return nil, err
		}
		return s.completions(host, params)

	default:
		return nil, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeMethodNotFound,
			Message: fmt.Sprintf("method not supported: %s", req.Method),
		}
	}
}

func (s *Server) openBuffers(host *rpcHost, buffers []BufferInfo) error {
	var errs []error
	for _, buf := range buffers {
		for _, id := range buf.Views {
			err := s.dispatcher.Open(host, plugin.ViewInfo{
				ID:      id,
				Path:    buf.Path,
				Rev:     buf.Rev,
				BufSize: buf.BufSize,
				Syntax:  buf.Syntax,
				Config:  buf.Config,
			})
			if err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// completions always answers with a completions notification. A plugin
// fault still yields a well-formed, possibly empty, response; only a request
// naming an unknown view is answered with an error.
func (s *Server) completions(host *rpcHost, params CompletionsParams) (any, error) {
	resp, err := s.dispatcher.Completions(host, params.ViewID, params.RequestID, params.Pos)

	var reqErr *plugin.RequestError
	if errors.As(err, &reqErr) {
		return nil, err
	}
	if err != nil {
		s.log.Errorf("%s", err.Error())
	}

	if err := host.conn.Notify(host.ctx, MethodCompletions, CompletionsResult{
		ViewID:    params.ViewID,
		RequestID: params.RequestID,
		Result:    resp,
	}); err != nil {
		s.log.Errorf("failed to send completions: %s", err.Error())
	}
	return resp, nil
}

func decode(req *jsonrpc2.Request, v any) error {
	if req.Params == nil {
		return &plugin.RequestError{Method: req.Method, Err: errors.New("missing params")}
	}
	if err := json.Unmarshal(*req.Params, v); err != nil {
		return &plugin.RequestError{Method: req.Method, Err: err}
	}
	return nil
}

// remoteError maps an error onto the JSON-RPC error sent to the host.
func remoteError(err error) *jsonrpc2.Error {
	var rpcErr *jsonrpc2.Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}

	var reqErr *plugin.RequestError
	if errors.As(err, &reqErr) {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
	}
	return &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: err.Error()}
}
