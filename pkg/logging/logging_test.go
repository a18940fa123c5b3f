package logging

import (
	"bytes"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestBootstrapperInstallsExactlyOnce(t *testing.T) {
	var installs atomic.Int32
	b := &bootstrapper{install: func(*zap.Logger) { installs.Add(1) }}

	const callers = 64
	var (
		wg      sync.WaitGroup
		winners atomic.Int32
	)
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if b.run(Options{Label: "test", Level: LevelInfo}) {
				winners.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	require.Equal(t, int32(1), installs.Load())
	require.Equal(t, int32(1), winners.Load())
}

func TestBootstrapIsIdempotent(t *testing.T) {
	Bootstrap()
	require.False(t, Bootstrap())
	require.False(t, BootstrapWith(Options{Label: "other", Level: LevelDebug}))
	require.NotNil(t, Named("SpotifyAPI"))
}

func TestNewLoggerWritesLabelLevelAndMetadata(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Options{
		Label:    "SpotifyAPI",
		Level:    LevelInfo,
		Metadata: map[string]string{"b": "2", "a": "1"},
		Output:   zapcore.AddSync(&buf),
	})

	logger.Debug("hidden")
	logger.Info("request sent", zap.String("path", "/me/player"))
	require.NoError(t, logger.Sync())

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "info: SpotifyAPI: ")
	require.Contains(t, out, "request sent")
	require.Contains(t, out, `"a": "1", "b": "2"`)
	require.Contains(t, out, `"path": "/me/player"`)
}

func TestCriticalAssertion(t *testing.T) {
	tests := []struct {
		name      string
		assert    bool
		global    bool
		wantPanic bool
	}{
		{name: "off", wantPanic: false},
		{name: "per logger", assert: true, wantPanic: true},
		{name: "all loggers", global: true, wantPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetAllLoggersAssertOnCritical(tt.global)
			defer SetAllLoggersAssertOnCritical(false)

			var buf bytes.Buffer
			logger := NewLogger(Options{
				Label:            "test",
				Level:            LevelInfo,
				AssertOnCritical: tt.assert,
				Output:           zapcore.AddSync(&buf),
			})

			log := func() { logger.DPanic("boom") }
			if tt.wantPanic {
				require.Panics(t, log)
			} else {
				require.NotPanics(t, log)
			}
			require.Contains(t, buf.String(), "boom")
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "", want: LevelInfo},
		{in: "debug", want: LevelDebug},
		{in: "WARN", want: LevelWarn},
		{in: "critical", want: LevelCritical},
		{in: "loud", want: LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.want, got)
		})
	}
}
