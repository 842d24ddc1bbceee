package phh

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/pokertable/internal/fileutil"
	"github.com/lox/pokertable/internal/game"
)

// Recorder writes every finished hand to <dir>/<table>/<hand>.phh. It is
// a game.EventSubscriber.
type Recorder struct {
	dir    string
	logger *log.Logger

	mu      sync.Mutex
	written int
	failed  int
}

// NewRecorder creates a recorder writing under dir.
func NewRecorder(dir string, logger *log.Logger) (*Recorder, error) {
	if dir == "" {
		return nil, fmt.Errorf("phh: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("phh: create dir: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{dir: dir, logger: logger.WithPrefix("phh")}, nil
}

// OnEvent records hand end events.
func (r *Recorder) OnEvent(e game.Event) {
	if e.Type != game.EventHandEnd || e.Result == nil {
		return
	}
	path, err := r.Write(e.Result, e.Snapshot.BigBlind)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.failed++
		r.logger.Error("Failed to write hand history", "hand", e.Result.HandID, "error", err)
		return
	}
	r.written++
	r.logger.Debug("Wrote hand history", "path", path)
}

// Write converts and writes one hand, returning the file path.
func (r *Recorder) Write(result *game.HandResult, bigBlind int) (string, error) {
	data, err := EncodeToBytes(FromResult(result, bigBlind))
	if err != nil {
		return "", err
	}

	table := result.TableID
	if table == "" {
		table = "table"
	}
	dir := filepath.Join(r.dir, table)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("phh: create dir: %w", err)
	}
	path := filepath.Join(dir, result.HandID+".phh")
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Written returns how many hands were recorded and how many failed.
func (r *Recorder) Written() (ok, failed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.written, r.failed
}
