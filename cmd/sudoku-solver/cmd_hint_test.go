package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHintCommand(t *testing.T) {
	out, err := execute(t, "hint", oneEmptyText())
	require.NoError(t, err)
	assert.Contains(t, out, "r5c5=5 (naked single)")
}

func TestHintCommandNoForcedMove(t *testing.T) {
	_, err := execute(t, "hint", strings.Repeat(".", 81))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no forced move")
}
