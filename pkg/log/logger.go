package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
)

// NewContextWithLogger builds the process logger and stores it in ctx.
// Output goes to w (stderr when nil) so that a stdio MCP session keeps
// stdout for JSON-RPC frames only. The returned func flushes the diode.
func NewContextWithLogger(ctx context.Context, debug bool, w io.Writer) (context.Context, func()) {
	if w == nil {
		w = os.Stderr
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	// Use a diode (ring buffer) for non-blocking logging
	// Size: 1000, Poll interval: 5ms
	wr := diode.NewWriter(w, 1000, 5*time.Millisecond, func(missed int) {
		fmt.Fprintf(os.Stderr, "Logger Dropped %d messages\n", missed)
	})

	output := zerolog.ConsoleWriter{
		Out:        wr,
		NoColor:    true,
		TimeFormat: time.DateTime,
		PartsOrder: []string{
			zerolog.LevelFieldName,
			zerolog.TimestampFieldName,
			zerolog.MessageFieldName,
		},
	}

	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	return logger.WithContext(ctx), func() {
		wr.Close()
	}
}

// NewNopContext returns ctx carrying a disabled logger.
func NewNopContext(ctx context.Context) context.Context {
	nop := zerolog.Nop()
	return nop.WithContext(ctx)
}

func FromCtx(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
