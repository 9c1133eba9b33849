package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
	}{
		{name: "JSON output mode", jsonOutput: true, verbosity: 0},
		{name: "Console output mode", jsonOutput: false, verbosity: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			require.NoError(t, Initialize(tt.jsonOutput, tt.verbosity))
			require.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)

			Cleanup()
		})
	}
}

func TestHelpersWithNilLogger(t *testing.T) {
	Logger = nil
	// Must not panic
	Infow("info")
	Warnw("warn")
	Errorw("error")
	Debugw("debug")
	Cleanup()
}

func TestNewConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsole(&buf, zapcore.WarnLevel, false)

	log.Infow("hidden message")
	log.Warnw("visible message", FieldClass, "io.vertx.core.Vertx")

	out := buf.String()
	assert.NotContains(t, out, "hidden message")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "visible message")
	assert.Contains(t, out, "class=io.vertx.core.Vertx")
}

func TestComponentAndChildLogger(t *testing.T) {
	var buf bytes.Buffer
	Logger = NewConsole(&buf, zapcore.DebugLevel, false)
	defer func() { Logger = nil }()

	log := ChildLogger(ComponentLogger("driver"), FieldRunID, "r-1")
	log.Debugw("class generated", FieldDurationMS, 3)

	out := buf.String()
	assert.Contains(t, out, "driver")
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "duration_ms=3")
	assert.Contains(t, out, "run_id=r-1")
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{0, zapcore.WarnLevel},
		{1, zapcore.InfoLevel},
		{2, zapcore.DebugLevel},
		{3, zapcore.DebugLevel},
		{9, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VerbosityToLevel(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "User", LevelName(0))
	assert.Equal(t, "Info (-v)", LevelName(1))
	assert.Equal(t, "Trace (-vvv+)", LevelName(7))
	assert.Equal(t, "Unknown", LevelName(-1))
	assert.True(t, ShouldLogTrace(3))
	assert.False(t, ShouldLogTrace(2))
}

func TestShouldOutput(t *testing.T) {
	tests := []struct {
		category  OutputCategory
		verbosity int
		want      bool
	}{
		{OutputErrors, VerbosityUser, true},
		{OutputWarnings, VerbosityUser, true},
		{OutputUnits, VerbosityUser, false},
		{OutputUnits, VerbosityInfo, true},
		{OutputTiming, VerbosityInfo, false},
		{OutputTiming, VerbosityDebug, true},
		{OutputShapes, VerbosityDebug, false},
		{OutputShapes, VerbosityTrace, true},
		{OutputCategory(99), VerbosityDebug, false},
	}
	for _, tt := range tests {
		t.Run(CategoryName(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldOutput(tt.verbosity, tt.category))
		})
	}
	assert.Equal(t, "unknown", CategoryName(OutputCategory(99)))
	assert.Contains(t, VerbosityDescription(VerbosityTrace), "shape")
}
