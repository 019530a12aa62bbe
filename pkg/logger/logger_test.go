package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogLevel is a valid zapcore.Level value for testing.
const mockLogLevel int8 = 0 // zapcore.InfoLevel

func TestGetReturnsSameInstanceOnSubsequentCalls(t *testing.T) {
	logger1 := Get(mockLogLevel, &bytes.Buffer{})
	logger2 := Get(mockLogLevel, nil)
	require.NotNil(t, logger1)
	assert.Same(t, logger1, logger2)
}

func TestGetReturnsNoopLoggerIfGlobalLoggerNil(t *testing.T) {
	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()

	assert.Same(t, &defaultNoopLogger, Get(mockLogLevel, nil))
}

func TestNewWritesJSONWithBuildFields(t *testing.T) {
	var buf bytes.Buffer
	zl := New(-1, &buf)
	log := zapr.NewLogger(zl)
	log.V(1).Info("contact selected", "contact", "contact-3")
	log.V(2).Info("too verbose")
	require.NoError(t, zl.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "contact selected", entry[MessageKey])
	assert.Equal(t, "contact-3", entry["contact"])
	assert.Contains(t, entry, TimeStampKey)
	assert.Contains(t, entry, CommitKey)
	assert.Contains(t, entry, VersionKey)
	assert.Contains(t, entry, GoVersionKey)
}

func TestOpenFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "app.log")
	f, err := OpenFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("line\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f, err = OpenFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("again\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line\nagain\n", string(data), "file is appended to")
}

func TestDefaultFilePathUsesXDGStateHome(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	path, err := DefaultFilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/state", "contactpick", "contactpick.log"), path)
}

func TestWithLoggerAndFromContext(t *testing.T) {
	ctx := context.Background()
	l := logr.Discard()

	ctx1 := WithLogger(ctx, &l)
	assert.Same(t, &l, FromContext(ctx1))
	assert.Equal(t, ctx1, WithLogger(ctx1, &l), "same logger keeps the context")

	other := logr.Discard()
	ctx2 := WithLogger(ctx1, &other)
	assert.Same(t, &other, FromContext(ctx2))
}

func TestFromContextFallbacks(t *testing.T) {
	orig := globalLogrLogger
	defer func() { globalLogrLogger = orig }()

	globalLogrLogger = nil
	assert.Same(t, &defaultNoopLogger, FromContext(context.Background()))
	assert.Same(t, &defaultNoopLogger, GetGlobalLogger())

	g := logr.Discard()
	globalLogrLogger = &g
	assert.Same(t, &g, FromContext(context.Background()))
	assert.Same(t, &g, GetGlobalLogger())
}

func TestSyncDoesNotPanicWhenGlobalZapLoggerIsNil(t *testing.T) {
	orig := globalZapLogger
	globalZapLogger = nil
	defer func() { globalZapLogger = orig }()

	assert.NotPanics(t, Sync)
}

func TestIsIgnorableSyncError(t *testing.T) {
	assert.True(t, isIgnorableSyncError(&os.PathError{Op: "sync", Path: "/dev/stderr", Err: syscall.EINVAL}))
	assert.True(t, isIgnorableSyncError(errors.New("sync: The handle is invalid.")))
	assert.False(t, isIgnorableSyncError(errors.New("disk full")))
}

func TestWithValuesReturnsNewLogger(t *testing.T) {
	base := GetNoopLogger()
	derived := WithValues(base, "key", "value")
	require.NotNil(t, derived)
	assert.NotSame(t, base, derived)
}
