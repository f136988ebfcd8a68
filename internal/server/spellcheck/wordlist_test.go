package spellcheck

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordlistChecker(t *testing.T) {
	c, err := LoadWordlist(strings.NewReader("my\nis\nthe\ncat\ndon't\n"))
	require.NoError(t, err)

	tests := []struct {
		in   string
		want []string
	}{
		{"my dawg is kewl.", []string{"dawg", "kewl"}},
		{"The cat", []string{}},
		{"dawg dawg, kewl dawg", []string{"dawg", "kewl"}},
		{"don't 'cat'", []string{}},
		{"", []string{}},
	}
	for _, tt := range tests {
		got, err := c.Check(context.Background(), tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestWordlistChecker_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewWordlistChecker(nil).Check(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}
