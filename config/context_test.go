package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextRoundTrip(t *testing.T) {
	opts := NewDefaultOptions()
	ctx := NewContext(context.Background(), opts)

	got, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Same(t, opts, got)
}

func TestFromContext_Missing(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
}
