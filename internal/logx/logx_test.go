package logx

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFields_Constructors(t *testing.T) {
	now := time.Now()

	require.Equal(t, Field{Key: "k", Value: "v"}, String("k", "v"))
	require.Equal(t, Field{Key: "k", Value: int64(2)}, Int64("k", int64(2)))
	require.Equal(t, Field{Key: "k", Value: 4.5}, Float64("k", 4.5))
	require.Equal(t, Field{Key: "k", Value: now}, Time("k", now))
	require.Equal(t, Field{Key: "err", Value: "boom"}, Err(errors.New("boom")))
	require.Equal(t, Field{Key: "err", Value: ""}, Err(nil))
}

func TestNopLogger_NoPanic(t *testing.T) {
	l := Nop()
	l.Debug("d", String("k", "v"))
	l.Info("i", Int("n", 1))
	l.Warn("w")
	l.Error("e")

	require.NotNil(t, l.With(String("x", "y")))
	require.NoError(t, l.Sync())
}

func TestNewJSON_RespectsLevelAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSON(&buf, LevelWarn).With(String("component", "dispatch"))

	l.Info("dropped")
	l.Warn("kept", Int64("delivery_id", 701))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "kept", entry["msg"])
	require.Equal(t, "dispatch", entry["component"])
	require.EqualValues(t, 701, entry["delivery_id"])
}

func TestSlogAdapter_AllLevels(t *testing.T) {
	l := NewSlogAdapter(slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})))
	l.Debug("msg", String("k", "v"))
	l.Error("msg", String("k", "v"))
	require.Len(t, toSlogArgs([]Field{String("a", "b"), Int("n", 1)}), 2)
	require.NoError(t, l.Sync())
}

func TestZapAdapter_WritesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapAdapter(zap.New(core)).With(String("component", "poller"))

	l.Info("alert", Int64("delivery_id", 7))

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "alert", entries[0].Message)
	ctx := entries[0].ContextMap()
	require.Equal(t, "poller", ctx["component"])
	require.EqualValues(t, 7, ctx["delivery_id"])
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"": LevelInfo, "DEBUG": LevelDebug, "warning": LevelWarn, "error": LevelError} {
		got, err := ParseLevel(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseLevel("loud")
	require.Error(t, err)
}
