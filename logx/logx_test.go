package logx

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestGetLoggerLevelByString(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, GetLoggerLevelByString("info"))
	assert.Equal(t, zapcore.WarnLevel, GetLoggerLevelByString("warn"))
	assert.Equal(t, zapcore.DebugLevel, GetLoggerLevelByString("nonsense"))
}

func TestInitLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogx(zapcore.InfoLevel, false, false)
	l.InitLogger(&buf)

	l.Debugf("hidden %d", 1)
	l.Infof("placed %s", "A1")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "placed A1", entry["MESSAGE"])
	assert.Equal(t, "info", entry["LEVEL"])
}

func TestNopDiscards(t *testing.T) {
	l := NewNop()
	assert.NotPanics(t, func() {
		l.Info("x")
		l.Warnf("y %d", 2)
	})
}
