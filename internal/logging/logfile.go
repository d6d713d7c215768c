package logging

import (
	"os"
	"sync"
)

// logFileWriter appends to a single log file and starts the file over when
// the next write would push it past the byte cap. Retention beyond the cap
// is left to external rotation.
type logFileWriter struct {
	path  string
	limit int64

	mu      sync.Mutex
	f       *os.File
	written int64
}

func newLogFileWriter(path string, maxMB int) (*logFileWriter, error) {
	if maxMB <= 0 {
		maxMB = 10
	}
	w := &logFileWriter{path: path, limit: int64(maxMB) << 20}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.open(os.O_APPEND); err != nil {
		return nil, err
	}
	return w, nil
}

// open (re)opens the file with the given disposition flag and records the
// resulting size. Caller holds w.mu.
func (w *logFileWriter) open(disposition int) error {
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|disposition, 0o644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	w.f = f
	w.written = info.Size()
	return nil
}

func (w *logFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f == nil {
		if err := w.open(os.O_APPEND); err != nil {
			return 0, err
		}
	}
	if w.written+int64(len(p)) > w.limit {
		w.f.Close()
		w.f = nil
		if err := w.open(os.O_TRUNC); err != nil {
			return 0, err
		}
	}
	n, err := w.f.Write(p)
	w.written += int64(n)
	return n, err
}

// Close releases the file handle. A later Write reopens it in append mode.
func (w *logFileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}
