package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// palette holds the ANSI colours for one theme
type palette struct {
	fg       string
	time     string
	accent   []string // rotated per component name
	number   string
	key      string
	yellow   string
	red      string
	redBg    string
	yellowBg string
}

var themes = map[string]palette{
	// Gruvbox Dark (warm, muted)
	"gruvbox": {
		fg:       "\x1b[38;5;223m",
		time:     "\x1b[38;5;108m",
		accent:   []string{"\x1b[38;5;208m", "\x1b[38;5;214m"},
		number:   "\x1b[38;5;175m",
		key:      "\x1b[38;5;109m",
		yellow:   "\x1b[38;5;214m",
		red:      "\x1b[38;5;167m",
		redBg:    "\x1b[48;5;88m",
		yellowBg: "\x1b[48;5;58m",
	},
	// Everforest Dark (forest greens)
	"everforest": {
		fg:       "\x1b[38;5;223m",
		time:     "\x1b[38;5;107m",
		accent:   []string{"\x1b[38;5;108m", "\x1b[38;5;65m", "\x1b[38;5;208m"},
		number:   "\x1b[38;5;108m",
		key:      "\x1b[38;5;109m",
		yellow:   "\x1b[38;5;179m",
		red:      "\x1b[38;5;167m",
		redBg:    "\x1b[48;5;52m",
		yellowBg: "\x1b[48;5;58m",
	},
	// Plain output for pipes and CI logs
	"none": {accent: []string{""}},
}

// Current active theme (set from env or config)
var currentTheme = "everforest"

// SetTheme configures the color scheme for log output
func SetTheme(theme string) {
	if _, ok := themes[theme]; ok {
		currentTheme = theme
	}
}

func colors() palette {
	return themes[currentTheme]
}

func colorComponent(name string) string {
	hash := 0
	for _, c := range name {
		hash += int(c)
	}
	accent := colors().accent
	return accent[hash%len(accent)]
}

func paint(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + colorReset
}

// minimalEncoder implements a calm, compact console encoder with theme support
// Format: "13:04:35  generator  pass complete  units=3 duration_ms=12"
type minimalEncoder struct {
	*zapcore.MapObjectEncoder // context fields added via With()
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder()}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := zapcore.NewMapObjectEncoder()
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return &minimalEncoder{MapObjectEncoder: clone}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	c := colors()
	final := buffer.NewPool().Get()

	final.AppendString(paint(c.time, ent.Time.Format("15:04:05")))

	// Level: only show for WARN/ERROR/DEBUG
	if ent.Level != zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(paint(colorComponent(ent.LoggerName), ent.LoggerName))
	}

	final.AppendString("  ")
	final.AppendString(paint(c.fg, ent.Message))

	if pairs := enc.fieldPairs(fields); len(pairs) > 0 {
		final.AppendString("  ")
		final.AppendString(strings.Join(pairs, " "))
	}

	final.AppendString("\n")
	return final, nil
}

// fieldPairs renders context fields (sorted) followed by entry fields (in call
// order) as key=value. No field is ever dropped.
func (enc *minimalEncoder) fieldPairs(fields []zapcore.Field) []string {
	var pairs []string

	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		pairs = append(pairs, formatPair(k, enc.Fields[k]))
	}

	for _, f := range fields {
		m := zapcore.NewMapObjectEncoder()
		f.AddTo(m)
		for k, v := range m.Fields {
			pairs = append(pairs, formatPair(k, v))
		}
	}
	return pairs
}

func formatPair(key string, value interface{}) string {
	c := colors()
	rendered := fmt.Sprintf("%v", value)
	switch value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		rendered = paint(c.number, rendered)
	}
	return paint(c.key, key) + "=" + rendered
}

// levelColorString returns bold + colored + background for WARN/ERROR
func levelColorString(level zapcore.Level) string {
	c := colors()
	switch level {
	case zapcore.DebugLevel:
		return paint(c.key, "DEBUG")
	case zapcore.WarnLevel:
		if c.yellow == "" {
			return "WARN"
		}
		return colorBold + c.yellowBg + c.yellow + "WARN" + colorReset
	default:
		if c.red == "" {
			return level.CapitalString()
		}
		return colorBold + c.redBg + c.red + level.CapitalString() + colorReset
	}
}
