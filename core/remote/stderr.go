package remote

import (
	"bytes"
	"log/slog"
	"sync"

	"github.com/lakospeter91/appleremote/core/logger"
)

const maxStderrLine = 4096

// stderrLog turns the helper's standard error into debug records, one per line.
type stderrLog struct {
	logger *slog.Logger
	mu     sync.Mutex
	buf    []byte
}

func newStderrLog(l *slog.Logger) *stderrLog {
	return &stderrLog{logger: l}
}

func (w *stderrLog) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	if len(w.buf) >= maxStderrLine {
		w.emit(w.buf)
		w.buf = nil
	}
	return len(p), nil
}

// flush logs a trailing line that had no newline.
func (w *stderrLog) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.buf) > 0 {
		w.emit(w.buf)
		w.buf = nil
	}
}

func (w *stderrLog) emit(line []byte) {
	line = bytes.TrimRight(line, "\r")
	if len(line) == 0 {
		return
	}
	w.logger.Debug("helper stderr", logger.Line(string(line)))
}
