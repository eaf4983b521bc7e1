package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// stripANSI removes ANSI color codes from a string for testing
func stripANSI(str string) string {
	return regexp.MustCompile(`\x1b\[[0-9;]*m`).ReplaceAllString(str, "")
}

func TestInitializeWriter(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
		logInfo    bool
	}{
		{name: "console quiet", jsonOutput: false, verbosity: 0, logInfo: false},
		{name: "console verbose", jsonOutput: false, verbosity: 1, logInfo: true},
		{name: "json verbose", jsonOutput: true, verbosity: 2, logInfo: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, InitializeWriter(&buf, tt.jsonOutput, tt.verbosity))
			t.Cleanup(func() { Logger = zap.NewNop().Sugar() })

			assert.Equal(t, tt.jsonOutput, JSONOutput)

			Infow("pass complete", FieldUnits, 3)
			Cleanup()

			if !tt.logInfo {
				assert.Empty(t, buf.String())
				return
			}
			if tt.jsonOutput {
				var entry map[string]interface{}
				require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
				assert.Equal(t, "pass complete", entry["msg"])
				assert.EqualValues(t, 3, entry[FieldUnits])
				return
			}
			assert.Contains(t, stripANSI(buf.String()), "pass complete  units=3")
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(0))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(1))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(2))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(7))
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(-1))
}

func TestMinimalEncoderKeepsAllFields(t *testing.T) {
	enc := newMinimalEncoder()
	enc.AddString(FieldComponent, "cache")

	entry := zapcore.Entry{
		Level:      zapcore.WarnLevel,
		Time:       time.Date(2024, 1, 2, 13, 4, 35, 0, time.UTC),
		LoggerName: "generator",
		Message:    "emission skipped",
	}
	buf, err := enc.EncodeEntry(entry, []zapcore.Field{
		zap.String(FieldType, "shop.Order"),
		zap.Int(FieldCount, 2),
		zap.Bool("cached", true),
		zap.Error(nil),
	})
	require.NoError(t, err)

	out := stripANSI(buf.String())
	assert.True(t, strings.HasPrefix(out, "13:04:35  WARN  generator  emission skipped"))
	for _, want := range []string{"component=cache", "type=shop.Order", "count=2", "cached=true"} {
		assert.Contains(t, out, want)
	}
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestLoggerFromContext(t *testing.T) {
	ctx := WithComponent(WithPass(context.Background(), 4), "watch")
	assert.Equal(t, []interface{}{FieldPass, 4, FieldComponent, "watch"}, FieldsFromContext(ctx))
	assert.Empty(t, FieldsFromContext(context.Background()))
	assert.NotNil(t, LoggerFromContext(ctx))
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("everforest") })

	SetTheme("none")
	assert.Equal(t, "none", currentTheme)
	assert.Equal(t, "x", paint(colorComponent("generator"), "x"))

	SetTheme("does-not-exist")
	assert.Equal(t, "none", currentTheme)
}
