// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-critic/pkg/types"
)

// New returns a logger writing to w at cfg.Level. Format "json" writes
// JSON lines; anything else writes the human-readable console format. An
// unknown level logs at info and is reported as an error alongside the
// usable logger.
func New(cfg types.LogConfig, w io.Writer) (zerolog.Logger, error) {
	var out io.Writer = w
	if !strings.EqualFold(cfg.Format, "json") {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}

	var levelErr error
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			levelErr = fmt.Errorf("log level %q: %w", cfg.Level, err)
		} else {
			level = parsed
		}
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return logger, levelErr
}
