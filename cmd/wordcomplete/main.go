package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tliron/commonlog"

	"wordcomplete/internal/config"
	"wordcomplete/internal/lsp"
	"wordcomplete/internal/plugin"
	"wordcomplete/internal/server"
	"wordcomplete/internal/wordcomplete"
)

// Version will be set during the build process using ldflags
var Version = "(dev) v0.0.0"

func main() {
	versionFlag := flag.Bool("version", false, "Print the version of the program")
	configPath := flag.String("config", "", "JSON config file")
	logFile := flag.String("logfile", "", "Log file (default <data-local-dir>/xi-core/wordcomplete.log)")
	debug := flag.Bool("debug", false, "Log every RPC message")
	lspMode := flag.Bool("lsp", false, "Speak the Language Server Protocol instead of the xi plugin protocol")
	listen := flag.String("listen", "", "Serve LSP clients over TCP on this address")
	wsAddr := flag.String("ws", "", "Serve over websocket on this address")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("wordcomplete plugin version %s\n", Version)
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFile(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	cfg.ApplyEnv(os.Getenv)
	if *logFile != "" {
		cfg.LogFile = *logFile
	}
	if *debug {
		cfg.Debug = true
	}

	setupLogging(cfg)
	logger := commonlog.GetLogger("wordcomplete")
	logger.Infof("starting wordcomplete %s", Version)

	if err := run(cfg, *lspMode, *listen, *wsAddr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	logger.Info("exiting")
}

func run(cfg config.Config, lspMode bool, listen string, wsAddr string) error {
	if lspMode {
		ls := lsp.NewServer(func(cfg config.Config) plugin.Plugin {
			return wordcomplete.New(cfg.Author)
		}, cfg, Version)

		switch {
		case wsAddr != "":
			return ls.RunWebSocket(wsAddr)
		case listen != "":
			return ls.RunTCP(listen)
		default:
			return ls.RunStdio()
		}
	}

	newPlugin := func() plugin.Plugin {
		return wordcomplete.New(cfg.Author)
	}
	if wsAddr != "" {
		return server.ListenWebSocket(wsAddr, newPlugin, cfg, nil)
	}
	if listen != "" {
		return fmt.Errorf("-listen requires -lsp")
	}
	return server.NewServer(newPlugin(), cfg).RunStdio()
}
