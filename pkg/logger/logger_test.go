package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestErrorAttachesCause(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core)).With(zap.String("component", "test"))

	l.Error("save failed", errors.New("boom"), zap.Int("attempt", 2))

	entries := logs.All()
	assert.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "boom", ctx["error"])
	assert.Equal(t, "test", ctx["component"])
	assert.EqualValues(t, 2, ctx["attempt"])
}

func TestErrorWithoutCause(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	FromZap(zap.New(core)).Error("nothing wrapped", nil)

	assert.NotContains(t, logs.All()[0].ContextMap(), "error")
}
