package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewf(t *testing.T) {
	err := Newf("error: %s %d", "test", 42)
	require.NotNil(t, err)
	assert.Equal(t, "error: test 42", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWithHint(t *testing.T) {
	err := WithHint(New("error"), "try this fix")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "try this fix", hints[0])
}

func TestInvalidMarker(t *testing.T) {
	err := NewInvalidMarkerError("unknown directive %q", "+notify:bogus")

	assert.True(t, IsInvalidMarker(err))
	assert.True(t, IsInvalidMarker(Wrap(err, "field _age")))
	assert.Contains(t, err.Error(), `unknown directive "+notify:bogus"`)
	assert.False(t, IsInvalidMarker(nil))
	assert.False(t, IsInvalidMarker(fmt.Errorf("plain")))
}

func TestIsOutOfDate(t *testing.T) {
	assert.True(t, IsOutOfDate(Wrapf(ErrOutOfDate, "%d files", 2)))
	assert.False(t, IsOutOfDate(ErrLoad))
	assert.False(t, IsOutOfDate(nil))
}
