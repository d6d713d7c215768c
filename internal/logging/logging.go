package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Ololadestephen/EncryptedPoker/internal/config"
)

var (
	writerMu sync.RWMutex
	output   io.Writer = os.Stdout
)

// Init configures the global zerolog logger and the shared writer that the
// HTTP request logger reuses. When a log file is configured, writes go
// through a capped file writer instead of growing without bound.
func Init(cfg config.LogConfig) {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level))); err == nil && cfg.Level != "" {
		level = parsed
	}

	var out io.Writer = os.Stdout
	if cfg.File != "" {
		if w, err := newLogFileWriter(cfg.File, cfg.MaxMB); err == nil {
			out = w
		}
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out}
	}

	writerMu.Lock()
	output = out
	writerMu.Unlock()

	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(out).With().Timestamp().Logger()
	if cfg.SampleEvery > 1 {
		logger = logger.Sample(&zerolog.BasicSampler{N: uint32(cfg.SampleEvery)})
	}
	log.Logger = logger
}

// Writer returns the destination Init configured, so request logs land in
// the same place as application logs.
func Writer() io.Writer {
	writerMu.RLock()
	defer writerMu.RUnlock()
	return output
}
