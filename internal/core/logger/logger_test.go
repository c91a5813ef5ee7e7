package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type buf struct{ bytes.Buffer }

func (b *buf) Sync() error { return nil }

func TestBuildLogger_JSONLevelFilter(t *testing.T) {
	out := &buf{}
	l, cleanup := buildLogger(Options{Level: "warn", JSON: true, Out: out})
	defer cleanup()

	l.Info("dropped")
	l.Warn("kept", zap.Int("id", 7))

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	var m map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &m))
	assert.Equal(t, "kept", m["msg"])
	assert.Equal(t, float64(7), m["id"])
	assert.Contains(t, m, "ts")
}

func TestBuildLogger_BadLevelFallsBackToInfo(t *testing.T) {
	out := &buf{}
	l, _ := buildLogger(Options{Level: "loud", JSON: true, Out: out})
	l.Debug("no")
	l.Info("yes")
	assert.NotContains(t, out.String(), `"no"`)
	assert.Contains(t, out.String(), `"yes"`)
}

func TestBuildLogger_RotateWritesFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "api.log")
	l, cleanup := buildLogger(Options{
		Level: "info", JSON: true, Out: &buf{},
		Rotate: FileRotate{Enable: true, Filename: fn, MaxSizeMB: 1},
	})
	l.Info("to file")
	cleanup()

	b, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.Contains(t, string(b), "to file")
}

func TestToWriter(t *testing.T) {
	out := &buf{}
	l, _ := buildLogger(Options{Level: "debug", JSON: true, Out: out})
	w := ToWriter(l, zapcore.DebugLevel)

	n, err := w.Write([]byte("[GIN-debug] GET /users\n"))
	require.NoError(t, err)
	assert.Equal(t, 23, n)
	assert.Contains(t, out.String(), `"msg":"[GIN-debug] GET /users"`)
}
