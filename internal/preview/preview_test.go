package preview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/skylineapps/paywallkit/internal/elements"
	"github.com/skylineapps/paywallkit/internal/templates"
	"github.com/skylineapps/paywallkit/internal/texts"
	"github.com/skylineapps/paywallkit/internal/viewmodel"
)

func TestDecodeCommand(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    command
		wantErr bool
	}{
		{
			name:  "tap",
			input: `{"type":"tap","hotspot":2}`,
			want:  command{Type: typeTap, Hotspot: 2},
		},
		{
			name:  "scroll down",
			input: `{"type":"scroll","delta":3}`,
			want:  command{Type: typeScroll, Delta: 3},
		},
		{
			name:  "back",
			input: `{"type":"back"}`,
			want:  command{Type: typeBack},
		},
		{
			name:    "unknown type",
			input:   `{"type":"reboot"}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			input:   `{"type":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeCommand([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected decode error")
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeCommand: %v", err)
			}
			if got != tt.want {
				t.Errorf("decodeCommand = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEncodeEvent(t *testing.T) {
	msg := encodeEvent(viewmodel.Event{
		Kind:        viewmodel.EventPurchaseFailed,
		SessionID:   "sess-1",
		PlacementID: "onboarding",
		ProductID:   "prod_month",
		Err:         errors.New("declined"),
	})

	if msg.Type != typeEvent {
		t.Errorf("Type = %q", msg.Type)
	}
	if msg.Kind != viewmodel.EventPurchaseFailed.String() {
		t.Errorf("Kind = %q", msg.Kind)
	}
	if msg.Error != "declined" {
		t.Errorf("Error = %q", msg.Error)
	}
	if msg.ProductID != "prod_month" {
		t.Errorf("ProductID = %q", msg.ProductID)
	}
}

func previewConfig() *viewmodel.Configuration {
	content := &elements.VStack{
		Props: elements.NewBaseProps(),
		Children: []elements.Element{
			&elements.Text{Props: elements.NewBaseProps(), StringID: texts.StrID{Key: "headline"}},
			&elements.Button{
				Props:   elements.NewBaseProps(),
				ID:      "cta",
				Normal:  &elements.Text{Props: elements.NewBaseProps(), StringID: texts.StrID{Key: "cta"}},
				Actions: []elements.Action{{Type: elements.ActionCustom, CustomID: "tapped"}},
			},
		},
	}
	return &viewmodel.Configuration{
		PlacementID: "preview_test",
		Screen:      &templates.Screen{Kind: templates.Basic, Content: content},
		Texts: map[string]*texts.Item{
			"headline": {Value: "Go further"},
			"cta":      {Value: "Continue"},
		},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	vm := viewmodel.New()
	srv, listener := New(Config{Width: 24, Height: 8}, vm, nil)
	_ = listener
	vm.SetConfiguration(context.Background(), previewConfig(), nil, nil)
	return srv
}

func TestRenderFrame_CarriesHotspots(t *testing.T) {
	srv := newTestServer(t)

	data := srv.renderFrame(time.Now())
	if data == nil {
		t.Fatal("renderFrame returned nil")
	}

	var msg frameMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("frame message does not decode: %v", err)
	}
	if msg.Type != typeFrame {
		t.Errorf("Type = %q", msg.Type)
	}
	if msg.Seq != 1 {
		t.Errorf("Seq = %d, want 1", msg.Seq)
	}
	if !strings.Contains(msg.Frame, "Go further") {
		t.Errorf("frame missing headline:\n%s", msg.Frame)
	}
	if len(msg.Hotspots) != 1 || msg.Hotspots[0].ID != "cta" || msg.Hotspots[0].Index != 1 {
		t.Errorf("hotspots = %+v", msg.Hotspots)
	}
}

func TestDispatch_TapRunsHotspotActions(t *testing.T) {
	got := make(chan viewmodel.Event, 4)
	vm := viewmodel.New(viewmodel.WithListener(viewmodel.ListenerFunc(func(e viewmodel.Event) {
		got <- e
	})))
	srv, _ := New(Config{Width: 24, Height: 8}, vm, nil)
	vm.SetConfiguration(context.Background(), previewConfig(), nil, nil)
	srv.renderFrame(time.Now())

	srv.dispatch(command{Type: typeTap, Hotspot: 1})

	deadline := time.After(time.Second)
	for {
		select {
		case e := <-got:
			if e.Kind == viewmodel.EventCustomAction && e.CustomID == "tapped" {
				return
			}
		case <-deadline:
			t.Fatal("custom action event never arrived")
		}
	}
}

func TestDispatch_ScrollClampsToExtent(t *testing.T) {
	srv := newTestServer(t)
	srv.renderFrame(time.Now())

	srv.dispatch(command{Type: typeScroll, Delta: -5})
	if srv.scroll != 0 {
		t.Errorf("scroll = %d, want clamp at 0", srv.scroll)
	}
	srv.dispatch(command{Type: typeScroll, Delta: 100})
	if srv.scroll != srv.maxScroll {
		t.Errorf("scroll = %d, want clamp at %d", srv.scroll, srv.maxScroll)
	}
}

func TestWebSocket_FrameRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	ts := httptest.NewServer(http.HandlerFunc(srv.handleWS))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	if resp != nil {
		defer func() { _ = resp.Body.Close() }()
	}
	defer func() { _ = conn.Close() }()

	// Wait until the client registers, then push one frame
	deadline := time.Now().Add(time.Second)
	for {
		srv.mu.Lock()
		n := len(srv.clients)
		srv.mu.Unlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	srv.broadcast(srv.renderFrame(time.Now()))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	var msg frameMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if msg.Type != typeFrame || msg.Frame == "" {
		t.Errorf("unexpected frame message: %+v", msg)
	}

	// Send a scroll command and give the read pump a moment to apply it
	if err := conn.WriteJSON(command{Type: typeScroll, Delta: 1}); err != nil {
		t.Fatalf("write command: %v", err)
	}
	deadline = time.Now().Add(time.Second)
	for {
		srv.mu.Lock()
		scroll := srv.scroll
		max := srv.maxScroll
		srv.mu.Unlock()
		if scroll == min(1, max) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("scroll never applied: scroll=%d max=%d", scroll, max)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
