package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/skylineapps/paywallkit/internal/elements"
	"github.com/skylineapps/paywallkit/internal/viewmodel"
)

const (
	// ServiceType is the mDNS service type announced for running previews.
	ServiceType = "_paywallkit._tcp"

	// ServiceDomain is the mDNS domain (typically "local.").
	ServiceDomain = "local."

	// frameRate matches the interactive player so sub-second timer formats
	// tick at the same cadence over the wire.
	frameRate = 8
)

// Config holds the preview server configuration.
type Config struct {
	Host string
	Port int
	// Width and Height are the cell dimensions frames are rendered at.
	Width  int
	Height int
	// Announce registers the server over mDNS when true.
	Announce bool
	// Instance is the mDNS instance name; defaults to the placement id.
	Instance string
}

// Server mirrors one mounted paywall to connected design tools.
type Server struct {
	cfg    Config
	vm     *viewmodel.ViewModel
	logger *zap.Logger

	upgrader websocket.Upgrader

	mu         sync.Mutex
	clients    map[*client]struct{}
	scroll     int
	maxScroll  int
	pages      map[string]int
	pageCounts map[string]int
	lastFrame  string
	hotspots   []elements.Hotspot
	seq        uint64

	mounted time.Time
	events  chan viewmodel.Event
	wg      sync.WaitGroup
}

// New creates a preview server around a mounted view model. The returned
// listener must be installed on the view model (viewmodel.WithListener) so
// lifecycle events reach connected tools.
func New(cfg Config, vm *viewmodel.ViewModel, logger *zap.Logger) (*Server, viewmodel.Listener) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Width < 1 {
		cfg.Width = 60
	}
	if cfg.Height < 1 {
		cfg.Height = 24
	}
	s := &Server{
		cfg:        cfg,
		vm:         vm,
		logger:     logger,
		clients:    make(map[*client]struct{}),
		pages:      make(map[string]int),
		pageCounts: make(map[string]int),
		mounted:    time.Now(),
		events:     make(chan viewmodel.Event, 32),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Design tools connect from arbitrary local origins
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	listener := viewmodel.ListenerFunc(func(e viewmodel.Event) {
		select {
		case s.events <- e:
		default:
			logger.Debug("Dropping preview event", zap.String("kind", e.Kind.String()))
		}
	})
	return s, listener
}

// Run starts the server and blocks until the context is cancelled or the
// listener fails.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	port := ln.Addr().(*net.TCPAddr).Port

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/", s.handleSnapshot)
	httpSrv := &http.Server{Handler: mux}

	s.logger.Info("Preview server listening",
		zap.String("addr", ln.Addr().String()),
		zap.Int("width", s.cfg.Width),
		zap.Int("height", s.cfg.Height),
	)

	var announce *zeroconf.Server
	if s.cfg.Announce {
		announce, err = s.register(port)
		if err != nil {
			// Discovery is a convenience; keep serving without it
			s.logger.Warn("mDNS registration failed", zap.Error(err))
		}
	}

	loopCtx, cancelLoops := context.WithCancel(ctx)
	s.wg.Add(2)
	go s.renderLoop(loopCtx)
	go s.eventLoop(loopCtx)

	errChan := make(chan error, 1)
	go func() {
		errChan <- httpSrv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down preview server")
	case err = <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			cancelLoops()
			s.wg.Wait()
			return err
		}
	}

	if announce != nil {
		announce.Shutdown()
	}
	cancelLoops()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("Preview shutdown timed out", zap.Error(err))
	}
	s.closeClients()
	s.wg.Wait()
	return nil
}

// register announces the preview over mDNS so tools on the network find it.
func (s *Server) register(port int) (*zeroconf.Server, error) {
	instance := s.cfg.Instance
	if instance == "" {
		instance = "paywall-preview"
	}
	txt := []string{
		"session=" + s.vm.SessionID(),
	}
	srv, err := zeroconf.Register(instance, ServiceType, ServiceDomain, port, txt, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}
	s.logger.Info("Announced preview over mDNS",
		zap.String("instance", instance),
		zap.String("service", ServiceType),
		zap.Int("port", port),
	)
	return srv, nil
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	c := &client{
		srv:    s,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		logger: s.logger.With(zap.String("remote_addr", r.RemoteAddr)),
	}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	s.logger.Info("Preview tool connected", zap.String("remote_addr", r.RemoteAddr))

	go c.writePump()
	go c.readPump()
}

// handleSnapshot serves the last rendered frame as plain text, handy for
// curl and health checks.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.mu.Lock()
	frame := s.lastFrame
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(frame))
}

func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
	s.mu.Unlock()
	s.logger.Info("Preview tool disconnected")
}

func (s *Server) closeClients() {
	s.mu.Lock()
	for c := range s.clients {
		delete(s.clients, c)
		close(c.send)
	}
	s.mu.Unlock()
}

// renderLoop renders the active screen once per frame tick and broadcasts
// the result to all connected tools.
func (s *Server) renderLoop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.broadcast(s.renderFrame(now))
		}
	}
}

// eventLoop forwards paywall lifecycle events to connected tools.
func (s *Server) eventLoop(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-s.events:
			data, err := json.Marshal(encodeEvent(ev))
			if err != nil {
				s.logger.Error("Failed to encode preview event", zap.Error(err))
				continue
			}
			s.broadcast(data)
		}
	}
}

// renderFrame runs one render pass and returns the encoded frame message.
func (s *Server) renderFrame(now time.Time) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := frameMessage{
		Type:    typeFrame,
		Width:   s.cfg.Width,
		Height:  s.cfg.Height,
		Loading: s.vm.Loading(),
	}

	if screen := s.vm.ActiveScreen(); screen != nil {
		ctx := s.vm.BuildContext()
		ctx.Now = now
		ctx.Elapsed = now.Sub(s.mounted)
		ctx.PagerIndex = s.pagerIndex(ctx)

		frame, maxScroll := screen.Render(
			ctx.WithConstraints(s.cfg.Width, s.cfg.Height),
			s.cfg.Width, s.cfg.Height, s.scroll,
		)
		s.lastFrame = frame
		s.maxScroll = maxScroll
		if s.scroll > maxScroll {
			s.scroll = maxScroll
		}
		s.hotspots = ctx.Hotspots()

		msg.Frame = frame
		msg.Scroll = s.scroll
		msg.MaxScroll = maxScroll
		for i, spot := range s.hotspots {
			msg.Hotspots = append(msg.Hotspots, hotspotInfo{
				Index: i + 1,
				ID:    spot.ID,
				Label: spot.Label,
			})
		}
	}

	s.seq++
	msg.Seq = s.seq

	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("Failed to encode preview frame", zap.Error(err))
		return nil
	}
	return data
}

// pagerIndex serves pager positions from the shared page map, learning page
// counts as the renderer asks for them.
func (s *Server) pagerIndex(ctx *elements.Context) func(string) int {
	return func(pagerID string) int {
		if _, ok := s.pageCounts[pagerID]; !ok {
			if p, found := findPager(ctx.Elements, pagerID); found {
				s.pageCounts[pagerID] = p.PageCount()
			}
		}
		return s.pages[pagerID]
	}
}

func findPager(defs map[string]elements.Element, id string) (*elements.Pager, bool) {
	for _, el := range defs {
		if p, ok := el.(*elements.Pager); ok && p.ID == id {
			return p, true
		}
	}
	return nil, false
}

func (s *Server) broadcast(msg []byte) {
	if msg == nil {
		return
	}
	s.mu.Lock()
	var slow []*client
	for c := range s.clients {
		if !c.deliver(msg) {
			slow = append(slow, c)
		}
	}
	for _, c := range slow {
		delete(s.clients, c)
		close(c.send)
	}
	s.mu.Unlock()

	for range slow {
		s.logger.Warn("Dropping slow preview client")
	}
}

// dispatch applies one inbound command to the mounted paywall.
func (s *Server) dispatch(cmd command) {
	switch cmd.Type {
	case typeTap:
		s.mu.Lock()
		var spot elements.Hotspot
		ok := cmd.Hotspot >= 1 && cmd.Hotspot <= len(s.hotspots)
		if ok {
			spot = s.hotspots[cmd.Hotspot-1]
		}
		s.mu.Unlock()
		if !ok {
			s.logger.Warn("Tap outside hotspot range", zap.Int("hotspot", cmd.Hotspot))
			return
		}
		s.logger.Debug("Preview tap", zap.String("id", spot.ID))
		s.vm.OnActions(spot.Actions)

	case typeScroll:
		s.mu.Lock()
		s.scroll += cmd.Delta
		if s.scroll < 0 {
			s.scroll = 0
		}
		if s.scroll > s.maxScroll {
			s.scroll = s.maxScroll
		}
		s.mu.Unlock()

	case typePage:
		s.mu.Lock()
		for id, count := range s.pageCounts {
			next := s.pages[id] + cmd.Delta
			if next < 0 {
				next = 0
			}
			if next > count-1 {
				next = count - 1
			}
			s.pages[id] = next
		}
		s.mu.Unlock()

	case typeBack:
		s.vm.OnActions([]elements.Action{{Type: elements.ActionCloseScreen}})
	}
}
