// Package web bridges the simulation to a browser renderer over a
// websocket. The browser's animation callback sends one frame request per
// repaint and draws the snapshot it gets back. Every connection owns its
// own simulation.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/raanman3d/internal/config"
	"github.com/vovakirdan/raanman3d/internal/device"
	"github.com/vovakirdan/raanman3d/internal/sim"
)

const (
	readLimit    = 64 << 10
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second
)

// Config holds the bridge settings.
type Config struct {
	// Address is the host:port to listen on.
	Address string

	// Tuning is copied into every session.
	Tuning config.Tuning

	// Device forces a tier; "" or "auto" trusts the client's capabilities.
	Device string

	// Logger receives connection events; nil discards.
	Logger *log.Logger
}

// DefaultConfig returns a bridge config listening on :8080.
func DefaultConfig() Config {
	return Config{
		Address: ":8080",
		Tuning:  config.DefaultTuning(),
	}
}

// Server is the websocket frame bridge.
type Server struct {
	cfg      Config
	logger   *log.Logger
	upgrader websocket.Upgrader
	mux      *http.ServeMux
}

// NewServer validates cfg and builds the bridge.
func NewServer(cfg Config) (*Server, error) {
	if _, _, err := device.ParseTier(cfg.Device); err != nil {
		return nil, err
	}
	if err := cfg.Tuning.Validate(); err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The bridge serves local renderers; origin checks are left to a proxy.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		mux: http.NewServeMux(),
	}
	s.mux.HandleFunc("/ws", s.handleWS)
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return s, nil
}

// Handler returns the HTTP handler serving /ws and /healthz.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting frame bridge", "address", s.cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("web: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	logger := s.logger.With("remote", r.RemoteAddr)
	logger.Info("bridge connected")
	defer logger.Info("bridge disconnected")

	conn.SetReadLimit(readLimit)
	//nolint:errcheck // A failed deadline surfaces on the next read
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go pingLoop(conn, done)

	sess := &session{cfg: s.cfg, logger: logger, userAgent: r.UserAgent()}
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("read failed", "err", err)
			}
			return
		}
		//nolint:errcheck // Any traffic proves the peer is alive
		conn.SetReadDeadline(time.Now().Add(pongWait))

		var msg ClientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			logger.Warn("discarding malformed message", "err", err)
			continue
		}

		reply := sess.handle(msg)
		if reply == nil {
			continue
		}
		if err := writeJSON(conn, reply); err != nil {
			logger.Warn("write failed", "err", err)
			return
		}
	}
}

// pingLoop keeps idle connections alive. WriteControl is safe to call
// alongside the reader's writes.
func pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func writeJSON(conn *websocket.Conn, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("web: marshal: %w", err)
	}
	//nolint:errcheck // Surfaces on the write
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}

// session is the per-connection state.
type session struct {
	cfg       Config
	logger    *log.Logger
	userAgent string
	sim       *sim.Simulation
}

// handle answers one client message; nil means no reply.
func (s *session) handle(msg ClientMessage) any {
	switch msg.Type {
	case TypeHello:
		return s.hello(msg)

	case TypeFrame:
		if s.sim == nil {
			return ErrorMessage{Type: TypeError, Message: "frame before hello"}
		}
		return FrameMessage{Type: TypeFrame, FrameOutput: s.sim.Step(msg.DeltaMS, msg.Input)}

	case TypeRestart:
		if s.sim == nil {
			return ErrorMessage{Type: TypeError, Message: "restart before hello"}
		}
		s.sim.Restart()
		s.logger.Info("run restarted")
		return FrameMessage{Type: TypeFrame, FrameOutput: s.sim.Step(0, sim.Input{})}
	}

	s.logger.Warn("discarding message of unknown type", "type", msg.Type)
	return nil
}

func (s *session) hello(msg ClientMessage) any {
	if s.sim != nil {
		s.logger.Warn("ignoring repeated hello")
		return ErrorMessage{Type: TypeError, Message: "session already started"}
	}

	caps := device.Capabilities{UserAgent: s.userAgent}
	if msg.Capabilities != nil {
		caps = *msg.Capabilities
		if caps.UserAgent == "" {
			caps.UserAgent = s.userAgent
		}
	}
	profile, err := device.ResolveProfile(s.cfg.Device, caps)
	if err != nil {
		// Validated in NewServer.
		profile = device.ProfileFor(device.Desktop)
	}

	tuning := s.cfg.Tuning
	if msg.Level != "" {
		tuning.Level.ID = msg.Level
		tuning.Level.File = ""
	}

	built, err := sim.New(sim.Options{
		Tuning:  tuning,
		Profile: profile,
		Seed:    msg.Seed,
		Flat:    msg.Flat,
		Logger:  s.logger,
	})
	if err != nil {
		s.logger.Warn("cannot build level", "level", tuning.Level.ID, "err", err)
		return ErrorMessage{Type: TypeError, Message: err.Error()}
	}

	s.sim = built
	s.logger.Info("session started",
		"level", tuning.Level.ID,
		"seed", msg.Seed,
		"flat", msg.Flat,
		"tier", profile.TierName,
	)
	return newWelcome(profile, built.Layout())
}
