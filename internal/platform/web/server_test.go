package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/raanman3d/internal/config"
	"github.com/vovakirdan/raanman3d/internal/device"
	"github.com/vovakirdan/raanman3d/internal/sim"
)

func dial(t *testing.T) *websocket.Conn {
	t.Helper()

	srv, err := NewServer(DefaultConfig())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	hs := httptest.NewServer(srv.Handler())
	t.Cleanup(hs.Close)

	wsURL := "ws" + strings.TrimPrefix(hs.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
		if resp != nil {
			resp.Body.Close()
		}
	})
	return conn
}

func send(t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()
	if err := conn.WriteJSON(v); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func receive[T any](t *testing.T, conn *websocket.Conn) T {
	t.Helper()
	var out T
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		t.Fatalf("decode %s: %v", payload, err)
	}
	return out
}

func TestHelloAndFrames(t *testing.T) {
	conn := dial(t)

	send(t, conn, ClientMessage{Type: TypeHello, Seed: 7})
	welcome := receive[WelcomeMessage](t, conn)
	if welcome.Type != TypeWelcome {
		t.Fatalf("got %q, want welcome", welcome.Type)
	}
	if welcome.Level != config.DefaultTuning().Level.ID {
		t.Errorf("level = %q", welcome.Level)
	}
	if len(welcome.Platforms) < 40 {
		t.Errorf("got %d platforms, want at least 40", len(welcome.Platforms))
	}
	if welcome.Profile.TierName != device.Desktop.String() {
		t.Errorf("tier = %q, want desktop", welcome.Profile.TierName)
	}

	for i := 1; i <= 3; i++ {
		send(t, conn, ClientMessage{Type: TypeFrame, DeltaMS: 16.7, Input: sim.Input{Forward: true}})
		frame := receive[FrameMessage](t, conn)
		if frame.Type != TypeFrame || frame.Frame != i {
			t.Fatalf("step %d: got type %q frame %d", i, frame.Type, frame.Frame)
		}
		if len(frame.Entities) == 0 {
			t.Fatal("frame has no entities")
		}
	}
}

func TestHelloResolvesMobileCapabilities(t *testing.T) {
	conn := dial(t)

	send(t, conn, ClientMessage{
		Type:         TypeHello,
		Capabilities: &device.Capabilities{MaxTouchPoints: 5, CoarsePointer: true},
	})
	welcome := receive[WelcomeMessage](t, conn)

	// Tier itself is not serialized; compare the budgets.
	want := device.ProfileFor(device.Mobile)
	got := welcome.Profile
	if got.TierName != want.TierName || got.MaxParticles != want.MaxParticles || !got.TouchControls {
		t.Errorf("profile = %+v, want mobile budgets", got)
	}
}

func TestRepeatedHelloKeepsSession(t *testing.T) {
	conn := dial(t)

	send(t, conn, ClientMessage{Type: TypeHello, Seed: 3})
	welcome := receive[WelcomeMessage](t, conn)
	if welcome.Profile.TierName != device.Desktop.String() {
		t.Fatalf("tier = %q, want desktop", welcome.Profile.TierName)
	}
	send(t, conn, ClientMessage{Type: TypeFrame, DeltaMS: 16.7})
	if frame := receive[FrameMessage](t, conn); frame.Frame != 1 {
		t.Fatalf("first frame = %d", frame.Frame)
	}

	send(t, conn, ClientMessage{
		Type:         TypeHello,
		Capabilities: &device.Capabilities{MaxTouchPoints: 5, CoarsePointer: true},
	})
	if msg := receive[ErrorMessage](t, conn); msg.Type != TypeError {
		t.Fatalf("got %q, want error", msg.Type)
	}

	// The run carries on with the original profile.
	send(t, conn, ClientMessage{Type: TypeFrame, DeltaMS: 16.7})
	if frame := receive[FrameMessage](t, conn); frame.Type != TypeFrame || frame.Frame != 2 {
		t.Errorf("got type %q frame %d, want frame 2", frame.Type, frame.Frame)
	}
}

func TestFrameBeforeHello(t *testing.T) {
	conn := dial(t)

	send(t, conn, ClientMessage{Type: TypeFrame, DeltaMS: 16})
	msg := receive[ErrorMessage](t, conn)
	if msg.Type != TypeError {
		t.Errorf("got %q, want error", msg.Type)
	}
}

func TestUnknownLevel(t *testing.T) {
	conn := dial(t)

	send(t, conn, ClientMessage{Type: TypeHello, Level: "no-such-level"})
	msg := receive[ErrorMessage](t, conn)
	if msg.Type != TypeError || msg.Message == "" {
		t.Errorf("got %+v, want an error", msg)
	}

	// The connection survives and accepts a valid hello.
	send(t, conn, ClientMessage{Type: TypeHello, Level: "level-2", Flat: true})
	welcome := receive[WelcomeMessage](t, conn)
	if welcome.Level != "level-2" || !welcome.Flat {
		t.Errorf("got level %q flat %v", welcome.Level, welcome.Flat)
	}
}

func TestMalformedMessagesAreSkipped(t *testing.T) {
	conn := dial(t)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	send(t, conn, ClientMessage{Type: "bogus"})
	send(t, conn, ClientMessage{Type: TypeHello})

	// The first reply is the welcome; nothing was sent for the bad messages.
	welcome := receive[WelcomeMessage](t, conn)
	if welcome.Type != TypeWelcome {
		t.Errorf("got %q, want welcome", welcome.Type)
	}
}

func TestRestart(t *testing.T) {
	conn := dial(t)

	send(t, conn, ClientMessage{Type: TypeHello})
	receive[WelcomeMessage](t, conn)

	for range 5 {
		send(t, conn, ClientMessage{Type: TypeFrame, DeltaMS: 16})
		receive[FrameMessage](t, conn)
	}

	send(t, conn, ClientMessage{Type: TypeRestart})
	frame := receive[FrameMessage](t, conn)
	// Restart answers with the first frame of the new run.
	if frame.Frame != 1 {
		t.Errorf("frame after restart = %d, want 1", frame.Frame)
	}
	if frame.HUD.Score != 0 || frame.HUD.Lives != config.DefaultTuning().Player.Lives {
		t.Errorf("HUD not reset: %+v", frame.HUD)
	}
}

func TestHealthz(t *testing.T) {
	srv, err := NewServer(DefaultConfig())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}

func TestNewServerRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Device = "toaster"
	if _, err := NewServer(cfg); err == nil {
		t.Error("expected error for unknown device tier")
	}

	cfg = DefaultConfig()
	cfg.Tuning.Physics.Gravity = 5
	if _, err := NewServer(cfg); err == nil {
		t.Error("expected error for invalid tuning")
	}
}
