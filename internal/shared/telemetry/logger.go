package telemetry

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config controls the process-wide logger.
type Config struct {
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string
	// Format is json or console. Defaults to json.
	Format string
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	mu     sync.RWMutex
	logger zerolog.Logger
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "ts"
	zerolog.MessageFieldName = "msg"
	zerolog.LevelFieldName = "level"
	zerolog.ErrorFieldName = "err"
	Init(Config{})
}

// Init (re)configures the process-wide logger.
func Init(cfg Config) {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	l := zerolog.New(out).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()

	mu.Lock()
	logger = l
	mu.Unlock()
}

// Logger returns the current logger for callers that want the zerolog API directly.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug writes a debug-level log line with the given fields.
func Debug(msg string, fields map[string]any) {
	l := Logger()
	write(l.Debug(), msg, fields)
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	l := Logger()
	write(l.Info(), msg, fields)
}

// Warn writes a warn-level log line with the given fields.
func Warn(msg string, fields map[string]any) {
	l := Logger()
	write(l.Warn(), msg, fields)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	l := Logger()
	write(l.Error(), msg, fields)
}

func write(ev *zerolog.Event, msg string, fields map[string]any) {
	if ev == nil {
		return
	}
	for k, v := range fields {
		if err, ok := v.(error); ok {
			ev = ev.AnErr(k, err)
			continue
		}
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func parseLevel(raw string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
