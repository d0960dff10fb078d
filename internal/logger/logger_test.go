package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitAndSetLevel(t *testing.T) {
	require.NoError(t, Init("production"))
	assert.True(t, zap.L().Core().Enabled(zapcore.InfoLevel))

	require.NoError(t, SetLevel("warn"))
	assert.False(t, zap.L().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, zap.L().Core().Enabled(zapcore.WarnLevel))

	assert.Error(t, SetLevel("chatty"))
	assert.Equal(t, zapcore.WarnLevel, level.Level())
}
