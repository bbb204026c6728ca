package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalLog(t *testing.T) {
	color.Enable = false
	defer func() { color.Enable = true }()

	var out, errOut bytes.Buffer
	l := NewTerminal(&out, &errOut)
	l.Info("Generated %s", "index.html")
	l.Warning("skip %d", 1)
	l.Error("failed: %v", "boom")

	assert.Equal(t, "Generated index.html\n", out.String())
	assert.Equal(t, "WARN skip 1\nERROR failed: boom\n", errOut.String())
	assert.NoError(t, l.Close())
}

func TestFileLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.log")
	l, err := New(path)
	require.NoError(t, err)
	l.Error("page %s", "a.md")
	l.Info("done")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ERROR ")
	assert.Contains(t, string(data), "page a.md")
	assert.Contains(t, string(data), "INFO ")
}

func TestFileLogBadPath(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "build.log"))
	assert.Error(t, err)
}

func TestChanLog(t *testing.T) {
	records := make(chan Record, 3)
	l := NewChanLog(records)
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Info("a %d", 1)
	l.Warning("b")
	l.Error("c")

	assert.Equal(t, Record{Level: LevelInfo, Time: now, Message: "a 1"}, <-records)
	assert.Equal(t, LevelWarning, (<-records).Level)
	assert.Equal(t, LevelError, (<-records).Level)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarning.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "?", Level(42).String())
}

func TestMultiLog(t *testing.T) {
	records := make(chan Record, 4)
	var out, errOut bytes.Buffer
	color.Enable = false
	defer func() { color.Enable = true }()

	m := MultiLog{NewChanLog(records), NewTerminal(&out, &errOut), NewEmptyLog()}
	m.Info("built %d pages", 2)
	m.Error("oops")

	assert.Equal(t, "built 2 pages", (<-records).Message)
	assert.Equal(t, "oops", (<-records).Message)
	assert.Equal(t, "built 2 pages\n", out.String())
	assert.Equal(t, "ERROR oops\n", errOut.String())
	assert.NoError(t, m.Close())
}
