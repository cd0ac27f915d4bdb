package main

import (
	"io"
	"log"
	"os"

	"github.com/tliron/commonlog"
	"github.com/tliron/commonlog/simple"

	"wordcomplete/internal/config"
)

// setupLogging sends commonlog and the standard logger to stderr and to the
// plugin's log file. Without a usable log file it logs to stderr only.
func setupLogging(cfg config.Config) {
	backend := simple.NewBackend()
	backend.Buffered = false

	path, err := cfg.LogPath()
	if err == nil {
		// Fail here rather than inside Configure, which exits on error
		var file *os.File
		if file, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600); err == nil {
			file.Close()
		}
	}

	if err != nil {
		backend.Configure(cfg.Verbosity(), nil)
		commonlog.SetBackend(backend)
		log.SetOutput(os.Stderr)
		commonlog.GetLogger("wordcomplete").Warningf("logging to stderr only: %s", err.Error())
		return
	}

	backend.Configure(cfg.Verbosity(), &path)
	backend.Writer = io.MultiWriter(os.Stderr, backend.Writer)
	commonlog.SetBackend(backend)

	log.SetOutput(backend.Writer)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
}
