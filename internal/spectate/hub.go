// Package spectate serves a read-only live feed of a running game over HTTP.
//
// GET /snapshot returns the latest published state as JSON.
// GET /watch upgrades to a websocket that receives every published state.
// Slow watchers skip frames instead of stalling the game loop.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/matryer/way"
)

const (
	// URIWatch streams snapshots over a websocket.
	URIWatch = "/watch"
	// URISnapshot returns the latest snapshot.
	URISnapshot = "/snapshot"

	writeWait = time.Second
)

// watcher is one websocket client. frames holds at most the newest
// undelivered payload.
type watcher struct {
	conn   *websocket.Conn
	frames chan []byte
	done   chan struct{}
}

// Hub fans published snapshots out to HTTP and websocket clients.
type Hub struct {
	logger   *log.Logger
	upgrader websocket.Upgrader
	router   *way.Router

	mu       sync.RWMutex
	latest   []byte
	watchers map[*watcher]struct{}
	closed   bool
}

// NewHub creates a hub with its routes installed.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	h := &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		watchers: make(map[*watcher]struct{}),
	}
	h.routes()
	return h
}

func (h *Hub) routes() {
	h.router = way.NewRouter()
	h.router.HandleFunc("GET", URISnapshot, h.handleSnapshot)
	h.router.HandleFunc("GET", URIWatch, h.handleWatch)
}

// Handler returns the HTTP handler serving the feed.
func (h *Hub) Handler() http.Handler {
	return h.router
}

// Publish encodes v and hands it to every watcher. It never blocks on
// network I/O.
func (h *Hub) Publish(v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("spectate: encode snapshot: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.latest = payload
	for w := range h.watchers {
		offer(w.frames, payload)
	}
	return nil
}

// offer replaces any undelivered frame with payload.
func offer(frames chan []byte, payload []byte) {
	select {
	case frames <- payload:
		return
	default:
	}
	select {
	case <-frames:
	default:
	}
	select {
	case frames <- payload:
	default:
	}
}

// Latest returns the last published payload, or nil.
func (h *Hub) Latest() []byte {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest
}

// Watchers returns the number of connected websocket clients.
func (h *Hub) Watchers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.watchers)
}

func (h *Hub) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	payload := h.Latest()
	if payload == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck // Client may have gone away
	w.Write(payload)
}

func (h *Hub) handleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	wt := &watcher{
		conn:   conn,
		frames: make(chan []byte, 1),
		done:   make(chan struct{}),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.watchers[wt] = struct{}{}
	if h.latest != nil {
		wt.frames <- h.latest
	}
	h.mu.Unlock()

	h.logger.Info("spectator joined", "remote", r.RemoteAddr)
	go h.readLoop(wt)
	h.writeLoop(wt)
	h.remove(wt)
	h.logger.Info("spectator left", "remote", r.RemoteAddr)
}

// readLoop discards client messages and notices disconnects.
func (h *Hub) readLoop(wt *watcher) {
	defer close(wt.done)
	for {
		if _, _, err := wt.conn.NextReader(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(wt *watcher) {
	for {
		select {
		case <-wt.done:
			return
		case payload, ok := <-wt.frames:
			if !ok {
				//nolint:errcheck // Closing anyway
				wt.conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
					time.Now().Add(writeWait))
				return
			}
			//nolint:errcheck // A failed deadline surfaces on the write below
			wt.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wt.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					h.logger.Debug("spectator write failed", "error", err)
				}
				return
			}
		}
	}
}

func (h *Hub) remove(wt *watcher) {
	h.mu.Lock()
	delete(h.watchers, wt)
	h.mu.Unlock()
	wt.conn.Close()
}

// Close disconnects every watcher and stops accepting new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for w := range h.watchers {
		close(w.frames)
		delete(h.watchers, w)
	}
}

// ListenAndServe serves the feed on addr until ctx is cancelled.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("spectate: listen %s: %w", addr, err)
	}
	return h.Serve(ctx, ln)
}

// Serve serves the feed on ln until ctx is cancelled.
func (h *Hub) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           h.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	h.logger.Info("spectator feed listening", "address", ln.Addr().String())

	select {
	case err := <-errCh:
		h.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("spectate: serve: %w", err)
	case <-ctx.Done():
	}

	h.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("spectate: shutdown: %w", err)
	}
	return nil
}
