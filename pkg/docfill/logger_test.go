package docfill

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", LogDebug.String())
	assert.Equal(t, "WARN", LogWarn.String())
	assert.Equal(t, "OFF", LogOff.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogDebug, parseLogLevel("debug"))
	assert.Equal(t, LogError, parseLogLevel("error"))
	assert.Equal(t, LogOff, parseLogLevel("off"))
	assert.Equal(t, LogInfo, parseLogLevel("chatty"))
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogWarn)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown %d", 1)
	logger.Error("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "warn", first["level"])
	assert.Equal(t, "shown 1", first["message"])
	assert.Contains(t, first, "time")
}

func TestLogger_Off(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogOff)
	logger.Error("nothing")
	assert.Empty(t, buf.String())
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogDebug)

	logger.WithField("token", "{{Name}}").WithFields(Fields{"part": "word/document.xml", "count": 2}).Debug("replaced")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "{{Name}}", entry["token"])
	assert.Equal(t, "word/document.xml", entry["part"])
	assert.Equal(t, float64(2), entry["count"])
	assert.Equal(t, "replaced", entry["message"])
}

func TestLogger_MessageWithoutArgsIsNotFormatted(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, LogInfo).Info("100% done")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "100% done", entry["message"])
}

func TestLogger_ChildKeepsParentLevel(t *testing.T) {
	logger := NewLogger(nil, LogError)
	child := logger.WithField("k", "v")
	assert.Equal(t, LogError, child.Level())

	// changing the parent afterwards does not touch the child
	logger.SetLevel(LogDebug)
	assert.True(t, logger.IsDebugMode())
	assert.False(t, child.IsDebugMode())
}

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, LogInfo)
	logger.WithField("part", "word/header1.xml").Info("loaded")

	out := buf.String()
	assert.Contains(t, out, "INF")
	assert.Contains(t, out, "loaded")
	assert.Contains(t, out, "part=word/header1.xml")
}

func TestGlobalLogger(t *testing.T) {
	original := GetLogger()
	t.Cleanup(func() { SetLogger(original) })

	var buf bytes.Buffer
	SetLogger(NewLogger(&buf, LogInfo))
	Info("global %s", "message")
	WithField("k", "v").Warn("with field")

	out := buf.String()
	assert.Contains(t, out, `"message":"global message"`)
	assert.Contains(t, out, `"k":"v"`)
}
