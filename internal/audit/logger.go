// This file implements the stdout, file, and no-op audit log backends.
package audit

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"domsetbench/internal/logger"
)

// StdoutLogger writes audit entries to standard output as JSON lines.
type StdoutLogger struct {
	cfg *Config
	mu  sync.Mutex
}

func NewStdoutLogger(cfg *Config) *StdoutLogger {
	return &StdoutLogger{cfg: cfg}
}

func (l *StdoutLogger) Log(_ context.Context, entry *Entry) error {
	if !l.cfg.Enabled {
		return nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Println("[AUDIT]", string(data))
	return nil
}

func (l *StdoutLogger) Close() error { return nil }

// FileLogger writes audit entries to a file, buffering asynchronously
// and flushing on a timer.
type FileLogger struct {
	cfg    *Config
	file   *os.File
	writer *bufio.Writer
	mu     sync.Mutex
	buffer chan *Entry
	done   chan struct{}
}

func NewFileLogger(cfg *Config) (*FileLogger, error) {
	path := cfg.FilePath
	if path == "" {
		path = "audit.log"
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open audit log file: %w", err)
	}

	bufferSize := cfg.BufferSize
	if bufferSize <= 0 {
		bufferSize = 1000
	}

	l := &FileLogger{
		cfg:    cfg,
		file:   file,
		writer: bufio.NewWriter(file),
		buffer: make(chan *Entry, bufferSize),
		done:   make(chan struct{}),
	}
	go l.run()
	return l, nil
}

func (l *FileLogger) Log(_ context.Context, entry *Entry) error {
	if !l.cfg.Enabled {
		return nil
	}

	select {
	case l.buffer <- entry:
		return nil
	default:
		// Buffer is full: write synchronously rather than drop the entry.
		return l.writeEntry(entry)
	}
}

func (l *FileLogger) Close() error {
	close(l.done)

	l.mu.Lock()
	defer l.mu.Unlock()

drain:
	for {
		select {
		case entry := <-l.buffer:
			if err := l.writeEntryLocked(entry); err != nil {
				logger.Log.Warn("failed to write audit entry during shutdown", "error", err)
			}
		default:
			break drain
		}
	}

	if err := l.writer.Flush(); err != nil {
		logger.Log.Warn("failed to flush audit writer", "error", err)
	}
	return l.file.Close()
}

func (l *FileLogger) run() {
	flushPeriod := l.cfg.FlushPeriod
	if flushPeriod <= 0 {
		flushPeriod = 5 * time.Second
	}

	ticker := time.NewTicker(flushPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case entry := <-l.buffer:
			if err := l.writeEntry(entry); err != nil {
				logger.Log.Warn("failed to write audit entry", "error", err)
			}
		case <-ticker.C:
			l.mu.Lock()
			if err := l.writer.Flush(); err != nil {
				logger.Log.Warn("failed to flush audit writer", "error", err)
			}
			l.mu.Unlock()
		}
	}
}

func (l *FileLogger) writeEntry(entry *Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.writeEntryLocked(entry)
}

func (l *FileLogger) writeEntryLocked(entry *Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	_, err = l.writer.Write(append(data, '\n'))
	return err
}

// New builds the Logger backend named by cfg.Backend. The teacher's
// remote gRPC audit-service client has no place here — this service
// has no sibling audit-svc to forward to — so only the local
// stdout/file backends survive.
func New(cfg *Config) (Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if !cfg.Enabled {
		return &NoopLogger{}, nil
	}

	switch cfg.Backend {
	case "file":
		return NewFileLogger(cfg)
	case "stdout", "":
		return NewStdoutLogger(cfg), nil
	default:
		logger.Log.Warn("unknown audit backend, using stdout", "backend", cfg.Backend)
		return NewStdoutLogger(cfg), nil
	}
}

// NoopLogger discards every entry; used when auditing is disabled.
type NoopLogger struct{}

func (l *NoopLogger) Log(_ context.Context, _ *Entry) error { return nil }
func (l *NoopLogger) Close() error                          { return nil }
