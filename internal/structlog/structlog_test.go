package structlog

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaultsToNoOp(t *testing.T) {
	Set(nil)
	assert.IsType(t, &NoOpLogger{}, Get())
}

func TestSetAndGetRoundTrip(t *testing.T) {
	l := NewTextLogger(LevelWarn)
	Set(l)
	defer Set(nil)
	assert.Same(t, l, Get())
}

func TestTextLoggerRespectsLevel(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "structlog")
	require.NoError(t, err)
	defer f.Close()

	l := NewTextLogger(LevelWarn)
	l.Out = f
	l.Log(Entry{Level: LevelInfo, Category: "registry", Message: "should be dropped"})
	l.Log(Entry{Level: LevelError, Category: "pool", Message: "should be written", Err: errors.New("boom")})

	buf, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	s := string(buf)
	assert.Contains(t, s, "should be written")
	assert.NotContains(t, s, "should be dropped")
}

func TestLevelString(t *testing.T) {
	cases := map[Level]string{
		LevelDebug: "DEBUG",
		LevelInfo:  "INFO",
		LevelWarn:  "WARN",
		LevelError: "ERROR",
		Level(99):  "UNKNOWN(99)",
	}
	for level, want := range cases {
		assert.Equal(t, want, level.String())
	}
}
