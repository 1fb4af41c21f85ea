package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	BackendSlog     = "slog"
	BackendSlogJSON = "json"
	BackendZap      = "zap"
)

var ErrUnknownBackend = errors.New("unknown log backend")

// New builds a Logger for the given backend and level ("debug", "info",
// "warn", "error"). Slog backends write to w; zap uses its production
// config and writes to stderr.
func New(backend, level string, w io.Writer) (Logger, error) {
	switch strings.ToLower(backend) {
	case "", BackendSlog, BackendSlogJSON:
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		opts := &slog.HandlerOptions{Level: lvl}
		if strings.EqualFold(backend, BackendSlogJSON) {
			return NewSlogLogger(slog.New(slog.NewJSONHandler(w, opts))), nil
		}
		return NewSlogLogger(slog.New(slog.NewTextHandler(w, opts))), nil

	case BackendZap:
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(lvl)
		l, err := config.Build()
		if err != nil {
			return nil, fmt.Errorf("build zap logger: %w", err)
		}
		return NewZapLogger(l), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}
