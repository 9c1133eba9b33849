package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// Everforest-derived palette, used only when the output is a terminal
const (
	colorReset  = "\x1b[0m"
	colorBold   = "\x1b[1m"
	colorTime   = "\x1b[38;5;107m"
	colorName   = "\x1b[38;5;208m"
	colorKey    = "\x1b[38;5;65m"
	colorWarn   = "\x1b[38;5;179m"
	colorWarnBg = "\x1b[48;5;58m"
	colorErr    = "\x1b[38;5;167m"
	colorErrBg  = "\x1b[48;5;52m"
	colorDebug  = "\x1b[38;5;109m"
)

var bufferPool = buffer.NewPool()

// minimalEncoder implements a calm, compact console encoder.
// Format: "13:04:35  driver  class generated  class=io.vertx.core.Vertx duration_ms=3"
//
// Context fields (logger.With) are captured in the embedded map encoder and
// rendered after the entry's own fields, sorted by key. No field is ever dropped.
type minimalEncoder struct {
	*zapcore.MapObjectEncoder
	color bool
}

func newMinimalEncoder(color bool) *minimalEncoder {
	return &minimalEncoder{
		MapObjectEncoder: zapcore.NewMapObjectEncoder(),
		color:            color,
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := newMinimalEncoder(enc.color)
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return clone
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := bufferPool.Get()

	enc.paint(final, colorTime, ent.Time.Format("15:04:05"))

	if ent.Level != zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(enc.levelString(ent.Level))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		enc.paint(final, colorName, ent.LoggerName)
	}

	final.AppendString("  ")
	final.AppendString(ent.Message)

	pairs := make([]string, 0, len(fields)+len(enc.Fields))
	for _, f := range fields {
		pairs = append(pairs, enc.pair(f.Key, fieldValue(f)))
	}
	for _, k := range sortedKeys(enc.Fields) {
		pairs = append(pairs, enc.pair(k, enc.Fields[k]))
	}
	if len(pairs) > 0 {
		final.AppendString("  ")
		final.AppendString(strings.Join(pairs, " "))
	}

	final.AppendString("\n")
	return final, nil
}

func (enc *minimalEncoder) paint(buf *buffer.Buffer, color, s string) {
	if enc.color {
		buf.AppendString(color)
		buf.AppendString(s)
		buf.AppendString(colorReset)
		return
	}
	buf.AppendString(s)
}

func (enc *minimalEncoder) pair(key string, value interface{}) string {
	if enc.color {
		return colorKey + key + "=" + colorReset + fmt.Sprint(value)
	}
	return key + "=" + fmt.Sprint(value)
}

// levelString returns the level label, bold with background for WARN/ERROR when colored
func (enc *minimalEncoder) levelString(level zapcore.Level) string {
	label := level.CapitalString()
	if !enc.color {
		return label
	}
	switch level {
	case zapcore.DebugLevel:
		return colorDebug + label + colorReset
	case zapcore.WarnLevel:
		return colorBold + colorWarnBg + colorWarn + label + colorReset
	default:
		return colorBold + colorErrBg + colorErr + label + colorReset
	}
}

// fieldValue extracts the value of any zap field type by encoding it into a map
func fieldValue(f zapcore.Field) interface{} {
	m := zapcore.NewMapObjectEncoder()
	f.AddTo(m)
	if v, ok := m.Fields[f.Key]; ok {
		return v
	}
	return ""
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
