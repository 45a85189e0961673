package minifier

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorPeek(t *testing.T) {
	t.Parallel()

	c := newCursor(strings.NewReader("ab"))

	b, err := c.peek()
	require.NoError(t, err)
	assert.Equal(t, byte('a'), b)

	b, err = c.peek()
	require.NoError(t, err)
	assert.Equal(t, byte('a'), b, "second peek returns the same byte")

	b, err = c.next()
	require.NoError(t, err)
	assert.Equal(t, byte('a'), b)

	ok, err := c.peekIs('b')
	require.NoError(t, err)
	assert.True(t, ok)

	b, err = c.next()
	require.NoError(t, err)
	assert.Equal(t, byte('b'), b)

	_, err = c.next()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, int64(2), c.read)
}

func TestCursorPeekIsAtEOF(t *testing.T) {
	t.Parallel()

	c := newCursor(strings.NewReader(""))
	ok, err := c.peekIs('x')
	require.NoError(t, err)
	assert.False(t, ok)
}
