// Package logger is the process-wide structured logger, backed by zap.
package logger

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/seenimoa/trademetriks/pkg/utils"
)

var (
	log   *zap.Logger
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// Fields are structured key/value pairs attached to a log entry.
type Fields map[string]interface{}

func init() {
	log = build(os.Stderr, "console")
}

// Init (re)configures the logger. format is "console" or "json"; any other
// value falls back to console. Logs go to w, or stderr when w is nil, so
// that rendered reports on stdout stay clean.
func Init(lvl, format string, w io.Writer) error {
	if w == nil {
		w = os.Stderr
	}
	if err := SetLogLevel(lvl); err != nil {
		return err
	}
	log = build(w, format)
	return nil
}

func build(w io.Writer, format string) *zap.Logger {
	encCfg := zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "level",
		TimeKey:        "timestamp",
		CallerKey:      "caller",
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     istTimeEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	var enc zapcore.Encoder
	if strings.EqualFold(format, "json") {
		encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
}

func istTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.In(utils.IST).Format("2006-01-02T15:04:05.000-0700"))
}

// SetLogLevel sets the minimum level: "debug", "info", "warn" or "error".
func SetLogLevel(lvl string) error {
	if lvl == "" {
		lvl = "info"
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(lvl))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", lvl, err)
	}
	level.SetLevel(l)
	return nil
}

// Use replaces the underlying zap logger. Intended for tests.
func Use(l *zap.Logger) {
	log = l.WithOptions(zap.AddCallerSkip(1))
}

// L returns the underlying zap logger.
func L() *zap.Logger {
	return log.WithOptions(zap.AddCallerSkip(-1))
}

// Info logs an info message
func Info(msg string, fields ...Fields) {
	log.Info(msg, zapFields(fields)...)
}

// Debug logs a debug message
func Debug(msg string, fields ...Fields) {
	log.Debug(msg, zapFields(fields)...)
}

// Warn logs a warning message
func Warn(msg string, fields ...Fields) {
	log.Warn(msg, zapFields(fields)...)
}

// Error logs an error message
func Error(msg string, fields ...Fields) {
	log.Error(msg, zapFields(fields)...)
}

// TimeTrack logs the time taken since start. Use with defer.
func TimeTrack(start time.Time, name string) {
	log.Debug(name+" finished", zap.Duration("duration", time.Since(start)))
}

// zapFields flattens Fields into zap fields in key order.
func zapFields(fields []Fields) []zap.Field {
	var out []zap.Field
	for _, f := range fields {
		for _, k := range slices.Sorted(maps.Keys(f)) {
			if err, ok := f[k].(error); ok {
				out = append(out, zap.NamedError(k, err))
				continue
			}
			out = append(out, zap.Any(k, f[k]))
		}
	}
	return out
}

// Sync flushes any buffered log entries
func Sync() error {
	return log.Sync()
}
