// Package server streams table events to websocket observers.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/pokertable/internal/game"
)

// Server broadcasts public snapshots of every table it is subscribed to.
// It implements game.EventSubscriber.
type Server struct {
	addr     string
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu          sync.RWMutex
	connections map[*Connection]bool
	latest      map[string]Message
}

// NewServer creates an observer server listening on addr.
func NewServer(addr string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			// Observers are read-only, any origin may watch.
			CheckOrigin:     func(*http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:      logger.WithPrefix("server"),
		connections: make(map[*Connection]bool),
		latest:      make(map[string]Message),
	}
}

// Handler returns the HTTP routes: /ws, /tables and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/tables", s.handleTables)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting observer server", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("observer server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.closeAll()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// OnEvent broadcasts an event to observers of its table.
func (s *Server) OnEvent(e game.Event) {
	msg := NewMessage(e)
	data, err := msg.encode()
	if err != nil {
		s.logger.Error("Failed to encode event", "type", e.Type, "error", err)
		return
	}

	// New observers replay latest under the same lock, so each one sees
	// an event either as the replay or as the broadcast, never both.
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.Type == game.EventTableClosed {
		delete(s.latest, msg.TableID)
	} else {
		s.latest[msg.TableID] = msg
	}
	count := 0
	for conn := range s.connections {
		if conn.Wants(msg.TableID) && conn.Send(data) {
			count++
		}
	}
	s.logger.Debug("Broadcast event", "table", msg.TableID, "type", e.Type, "recipients", count)
}

// Observers returns the number of connected observers.
func (s *Server) Observers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	table := r.URL.Query().Get("table")
	conn := NewConnection(ws, table, s.logger)

	s.mu.Lock()
	s.connections[conn] = true
	total := len(s.connections)
	for id, msg := range s.latest {
		if !conn.Wants(id) {
			continue
		}
		if data, err := msg.encode(); err == nil {
			conn.Send(data)
		}
	}
	s.mu.Unlock()
	s.logger.Info("Observer connected", "id", conn.ID, "table", table, "total", total)

	conn.Start()
	go func() {
		<-conn.Done()
		s.mu.Lock()
		delete(s.connections, conn)
		total := len(s.connections)
		s.mu.Unlock()
		s.logger.Info("Observer disconnected", "id", conn.ID, "total", total)
	}()
}

// handleTables lists the latest public snapshot of every open table.
func (s *Server) handleTables(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	snaps := make([]game.Snapshot, 0, len(s.latest))
	for _, msg := range s.latest {
		snaps = append(snaps, msg.Snapshot)
	}
	s.mu.RUnlock()
	slices.SortFunc(snaps, func(a, b game.Snapshot) int {
		switch {
		case a.TableID < b.TableID:
			return -1
		case a.TableID > b.TableID:
			return 1
		}
		return 0
	})

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snaps); err != nil {
		s.logger.Error("Failed to write tables", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "OK")
}

func (s *Server) closeAll() {
	s.mu.RLock()
	conns := make([]*Connection, 0, len(s.connections))
	for conn := range s.connections {
		conns = append(conns, conn)
	}
	s.mu.RUnlock()
	for _, conn := range conns {
		_ = conn.Close()
	}
}
