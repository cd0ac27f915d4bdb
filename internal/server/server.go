// Package server binds a plugin.Plugin to an editor core speaking
// newline-delimited JSON-RPC over stdio or a websocket.
package server

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/tliron/commonlog"

	"wordcomplete/internal/config"
	"wordcomplete/internal/plugin"
	"wordcomplete/internal/scheduler"
)

// Server serves one host connection.
type Server struct {
	dispatcher *plugin.Dispatcher
	scheduler  *scheduler.Scheduler
	config     config.Config
	log        commonlog.Logger
}

func NewServer(p plugin.Plugin, cfg config.Config) *Server {
	return &Server{
		dispatcher: plugin.NewDispatcher(p),
		scheduler:  scheduler.NewScheduler(cfg.QueueSize),
		config:     cfg,
		log:        commonlog.GetLogger("wordcomplete.server"),
	}
}

// RunStdio serves the host on stdin and stdout.
func (s *Server) RunStdio() error {
	s.log.Info("serving on stdio")
	return s.Serve(context.Background(), stdio{})
}

// Serve reads newline-delimited JSON-RPC objects from rwc until the host
// disconnects, sends shutdown or ctx is done.
func (s *Server) Serve(ctx context.Context, rwc io.ReadWriteCloser) error {
	return s.ServeStream(ctx, jsonrpc2.NewPlainObjectStream(rwc))
}

// ServeStream serves the host on an arbitrary object stream.
func (s *Server) ServeStream(ctx context.Context, stream jsonrpc2.ObjectStream) error {
	s.scheduler.Run()
	defer s.scheduler.Stop()

	conn := jsonrpc2.NewConn(ctx, stream, s, s.connectionOptions()...)
	select {
	case <-conn.DisconnectNotify():
		s.log.Info("host disconnected")
	case <-ctx.Done():
		s.log.Info("context done, closing connection")
		conn.Close()
		return ctx.Err()
	}
	return nil
}

func (s *Server) connectionOptions() []jsonrpc2.ConnOpt {
	logger := &rpcLogger{commonlog.GetLogger("wordcomplete.rpc")}
	if s.config.Debug {
		return []jsonrpc2.ConnOpt{jsonrpc2.LogMessages(logger)}
	}
	return []jsonrpc2.ConnOpt{jsonrpc2.SetLogger(logger)}
}

// Handle implements jsonrpc2.Handler. It runs on the connection's read loop,
// so work is queued on the scheduler; the read loop must stay free to
// deliver the host's answers to the plugin's queries.
func (s *Server) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	err := s.scheduler.Schedule(scheduler.Task{
		Name: req.Method,
		Execute: func() error {
			return s.handle(ctx, conn, req)
		},
	})
	if err != nil {
		s.log.Errorf("dropping %s: %s", req.Method, err.Error())
		if !req.Notif {
			if err := conn.ReplyWithError(ctx, req.ID, &jsonrpc2.Error{
				Code:    jsonrpc2.CodeInternalError,
				Message: err.Error(),
			}); err != nil {
				s.log.Errorf("%s", err.Error())
			}
		}
	}
}

// rpcLogger routes jsonrpc2 connection logging into commonlog.
type rpcLogger struct {
	log commonlog.Logger
}

func (l *rpcLogger) Printf(format string, v ...any) {
	l.log.Debugf(strings.TrimSuffix(format, "\n"), v...)
}

type stdio struct{}

func (stdio) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdio) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdio) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}
