// Package watch streams projected table state to read-only websocket
// watchers. It is a display sink; actions never enter through it.
package watch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/handtracker/internal/display"
)

// Hub fans reports out to every connected watcher. New watchers receive
// the latest snapshot on connect.
type Hub struct {
	upgrader websocket.Upgrader
	clock    quartz.Clock
	logger   *log.Logger

	mu      sync.RWMutex
	clients map[*client]bool
	latest  *Message
}

// NewHub creates a hub
func NewHub(logger *log.Logger, clock quartz.Clock) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clock:   clock,
		logger:  logger.WithPrefix("watch"),
		clients: make(map[*client]bool),
	}
}

// Handler returns the hub's HTTP routes
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handleWebSocket)
	mux.HandleFunc("/snapshot", h.handleSnapshot)
	mux.HandleFunc("/health", h.handleHealth)
	return mux
}

// Serve listens on addr until ctx is cancelled
func (h *Hub) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("Starting watch server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("watch server: %w", err)
	case <-ctx.Done():
	}

	h.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("watch server shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("watch server: %w", err)
	}
	return nil
}

// Render implements display.Sink. Passes that processed nothing are not
// broadcast.
func (h *Hub) Render(r display.Report) error {
	if len(r.Pass.Outcomes) == 0 {
		return nil
	}
	msgs, err := reportMessages(r, h.clock.Now())
	if err != nil {
		return fmt.Errorf("watch: encode report: %w", err)
	}

	h.mu.Lock()
	h.latest = msgs[len(msgs)-1]
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		for _, m := range msgs {
			if !c.enqueue(m) {
				h.unregister(c)
				break
			}
		}
	}
	return nil
}

// Clients returns the number of connected watchers
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every watcher
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*client]bool)
	h.mu.Unlock()

	for c := range clients {
		c.close()
	}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	total := len(h.clients)
	h.mu.Unlock()

	if ok {
		c.close()
		h.logger.Info("Watcher disconnected", "watcher", c.id, "total", total)
	}
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	c := newClient(conn, h.logger, h.clock)
	h.mu.Lock()
	h.clients[c] = true
	if h.latest != nil {
		c.send <- h.latest
	}
	total := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("Watcher connected", "watcher", c.id, "total", total)

	c.start()
	go func() {
		<-c.ctx.Done()
		h.unregister(c)
	}()
}

func (h *Hub) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	latest := h.latest
	h.mu.RUnlock()

	if latest == nil {
		http.Error(w, "no snapshot yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(latest)
}

func (h *Hub) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}
