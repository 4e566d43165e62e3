package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger("debug"))
	assert.Equal(t, LevelDebug, CurrentLevel)

	require.NoError(t, InitLogger("warn"))
	assert.Equal(t, LevelWarn, CurrentLevel)

	err := InitLogger("not-a-level")
	require.Error(t, err)
}

func TestAcceptLogLevel(t *testing.T) {
	assert.True(t, accepts(LevelDebug, LevelError))
	assert.True(t, accepts(LevelError, LevelError))
	assert.False(t, accepts(LevelError, LevelDebug))
	assert.True(t, accepts(LevelWarn, LevelError))
	assert.False(t, accepts(LevelWarn, LevelInfo))
}
