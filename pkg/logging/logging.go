// Package logging provides the zap-based logging backend shared by the spotify
// client, its adapters and the spotifyctl command.
//
// The backend is installed process-wide with Bootstrap, which may be called any
// number of times from any goroutine; only the first call has an effect.
package logging

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLabel names the logger installed by Bootstrap.
const DefaultLabel = "spotify"

// Level is a logging level.
type Level = zapcore.Level

const (
	LevelDebug Level = zapcore.DebugLevel
	LevelInfo  Level = zapcore.InfoLevel
	LevelWarn  Level = zapcore.WarnLevel
	LevelError Level = zapcore.ErrorLevel
	// LevelCritical is logged with zap's DPanic.
	LevelCritical Level = zapcore.DPanicLevel
)

// Options configures a logger built by NewLogger.
type Options struct {
	// Label names the logger, usually the component that owns it.
	Label string
	Level Level
	// Metadata is attached to every entry as string fields.
	Metadata map[string]string
	// AssertOnCritical panics after a critical entry is written.
	AssertOnCritical bool
	// Output defaults to stdout.
	Output zapcore.WriteSyncer
}

var allLoggersAssertOnCritical atomic.Bool

// SetAllLoggersAssertOnCritical makes every logger built by this package panic
// on critical entries, regardless of its own AssertOnCritical option.
func SetAllLoggersAssertOnCritical(on bool) {
	allLoggersAssertOnCritical.Store(on)
}

// NewLogger builds a console logger writing lines of the form
// "level: label: caller: message {fields}".
func NewLogger(opts Options) *zap.Logger {
	out := opts.Output
	if out == nil {
		out = zapcore.Lock(os.Stdout)
	}

	core := zapcore.NewCore(newEncoder(), out, zap.NewAtomicLevelAt(opts.Level))

	assert := opts.AssertOnCritical
	logger := zap.New(core,
		zap.AddCaller(),
		zap.Hooks(func(e zapcore.Entry) error {
			if e.Level == LevelCritical && (assert || allLoggersAssertOnCritical.Load()) {
				panic(fmt.Sprintf("[%s: critical: %s] %s", e.LoggerName, e.Caller.TrimmedPath(), e.Message))
			}
			return nil
		}),
	)
	if opts.Label != "" {
		logger = logger.Named(opts.Label)
	}
	if len(opts.Metadata) > 0 {
		logger = logger.With(metadataFields(opts.Metadata)...)
	}
	return logger
}

func newEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		LevelKey:         "level",
		NameKey:          "logger",
		CallerKey:        "caller",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.LowercaseLevelEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: ": ",
	})
}

func metadataFields(metadata map[string]string) []zap.Field {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, zap.String(k, metadata[k]))
	}
	return fields
}

// ParseLevel accepts zap level names plus "critical".
func ParseLevel(text string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "":
		return LevelInfo, nil
	case "critical":
		return LevelCritical, nil
	}
	lvl, err := zapcore.ParseLevel(text)
	if err != nil {
		return LevelInfo, fmt.Errorf("logging: %w", err)
	}
	return lvl, nil
}

type bootstrapper struct {
	once    sync.Once
	install func(*zap.Logger)
}

func (b *bootstrapper) run(opts Options) bool {
	installed := false
	b.once.Do(func() {
		b.install(NewLogger(opts))
		installed = true
	})
	return installed
}

var global = &bootstrapper{
	install: func(l *zap.Logger) { zap.ReplaceGlobals(l) },
}

// Bootstrap installs the default backend (label "spotify", level info) as the
// global zap logger. It reports whether this call performed the installation.
func Bootstrap() bool {
	return BootstrapWith(Options{Label: DefaultLabel, Level: LevelInfo})
}

// BootstrapWith is Bootstrap with explicit options. Options passed after the
// backend has been installed are ignored.
func BootstrapWith(opts Options) bool {
	return global.run(opts)
}

// Named bootstraps the backend if needed and returns a child of the global
// logger with the given label.
func Named(label string) *zap.Logger {
	Bootstrap()
	return zap.L().Named(label)
}
