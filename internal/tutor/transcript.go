package tutor

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/savvy-app/archie-server/internal/config"
)

// TranscriptEvent is one NDJSON line of the exchange transcript.
type TranscriptEvent struct {
	Timestamp string `json:"ts"`
	RequestID string `json:"request_id,omitempty"`
	Action    string `json:"action"`
	Direction string `json:"direction"`
	Content   string `json:"content,omitempty"`
	Error     string `json:"error,omitempty"`
}

// TranscriptLogger records tutor exchanges as NDJSON, one file per UTC
// day. Logging is asynchronous behind a bounded queue and never blocks
// or fails a request; when the queue is full events are dropped and
// counted.
type TranscriptLogger interface {
	Log(TranscriptEvent)
	Close() error
}

type noopTranscript struct{}

func (noopTranscript) Log(TranscriptEvent) {}
func (noopTranscript) Close() error        { return nil }

// NewTranscriptLogger creates a transcript logger, or a no-op one when
// transcript logging is disabled.
func NewTranscriptLogger(cfg config.TranscriptConfig, logger *slog.Logger) (TranscriptLogger, error) {
	if !cfg.Enabled {
		return noopTranscript{}, nil
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create transcript dir: %w", err)
	}
	t := &fileTranscript{
		dir:    cfg.Dir,
		queue:  make(chan TranscriptEvent, cfg.QueueSize),
		done:   make(chan struct{}),
		logger: logger,
	}
	go t.run()
	return t, nil
}

type fileTranscript struct {
	dir       string
	queue     chan TranscriptEvent
	done      chan struct{}
	logger    *slog.Logger
	dropped   atomic.Int64
	closeOnce sync.Once
}

// Log enqueues an event without blocking the request path.
func (t *fileTranscript) Log(ev TranscriptEvent) {
	if ev.Timestamp == "" {
		ev.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	}
	select {
	case t.queue <- ev:
	default:
		if n := t.dropped.Add(1); n == 1 || n%100 == 0 {
			t.logger.Warn("transcript queue full, dropping events", "dropped", n)
		}
	}
}

// Close drains the queue and stops the writer goroutine.
func (t *fileTranscript) Close() error {
	t.closeOnce.Do(func() { close(t.queue) })
	<-t.done
	return nil
}

func (t *fileTranscript) run() {
	defer close(t.done)
	for ev := range t.queue {
		t.write(ev)
	}
}

func (t *fileTranscript) write(ev TranscriptEvent) {
	line, err := json.Marshal(ev)
	if err != nil {
		t.logger.Warn("failed to marshal transcript event", "error", err)
		return
	}

	path := filepath.Join(t.dir, time.Now().UTC().Format("2006-01-02")+".ndjson")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.logger.Warn("failed to open transcript file", "error", err, "path", path)
		return
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(append(line, '\n')); err != nil {
		t.logger.Warn("failed to write transcript event", "error", err, "path", path)
	}
}
