package observe

import (
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestSentryHook_DisabledWithoutDSN(t *testing.T) {
	hook := NewSentryHook("prod", "test-app", 0, false, "")
	assert.False(t, hook.Enabled())

	payload := []byte(`{"level":"error","msg":"boom","error":"boom"}`)
	n, err := hook.Write(payload)
	assert.NoError(t, err)
	assert.Equal(t, len(payload), n)

	hook.Flush()
}

func TestSentryHook_IgnoresGarbage(t *testing.T) {
	hook := &SentryHook{appZone: "prod", appName: "test-app", enabled: true}

	payload := []byte("not json")
	n, err := hook.Write(payload)
	assert.NoError(t, err)
	assert.Equal(t, len(payload), n)
}

func TestSentryHook_MapLevel(t *testing.T) {
	hook := &SentryHook{}

	assert.Equal(t, sentry.LevelDebug, hook.mapLevel(zapcore.DebugLevel))
	assert.Equal(t, sentry.LevelInfo, hook.mapLevel(zapcore.InfoLevel))
	assert.Equal(t, sentry.LevelWarning, hook.mapLevel(zapcore.WarnLevel))
	assert.Equal(t, sentry.LevelError, hook.mapLevel(zapcore.ErrorLevel))
	assert.Equal(t, sentry.LevelFatal, hook.mapLevel(zapcore.FatalLevel))
}
