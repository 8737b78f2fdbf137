package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/raanman3d/internal/platform/web"
)

var flagBridgeAddr string

var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Serve simulation frames to a browser renderer",
	Long: `Start the websocket frame bridge. A browser renderer connects to /ws,
sends a hello with its capabilities, then one frame request per
animation callback, and draws the snapshot it gets back.

Protocol (JSON text messages):
  -> {"type":"hello","capabilities":{"maxTouchPoints":5,"coarsePointer":true},"level":"level-1","seed":42}
  <- {"type":"welcome","profile":{...},"platforms":[...],"hazards":[...]}
  -> {"type":"frame","deltaMs":16.7,"input":{"forward":true}}
  <- {"type":"frame","frame":1,"player":{...},"camera":{...},"entities":[...]}
  -> {"type":"restart"}

Examples:
  raanman bridge
  raanman bridge --addr 127.0.0.1:9000 --log-level debug`,
	Run: runBridge,
}

func init() {
	bridgeCmd.Flags().StringVar(&flagBridgeAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runBridge(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger("raanman-web", false)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	tuning, err := loadTuning()
	if err != nil {
		fail("%v", err)
	}

	cfg := web.DefaultConfig()
	cfg.Address = flagBridgeAddr
	cfg.Tuning = tuning
	cfg.Device = flagDevice
	cfg.Logger = logger

	server, err := web.NewServer(cfg)
	if err != nil {
		fail("creating bridge: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Frame bridge listening on %s (websocket endpoint: /ws)\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		stop()
		closeLog()
		fail("bridge: %v", err)
	}
}
