package minifier

import (
	"bufio"
	"fmt"
	"io"
)

// cursor is a forward-only byte source with one byte of pushback.
type cursor struct {
	r      *bufio.Reader
	ahead  byte
	peeked bool
	read   int64
}

func newCursor(r io.Reader) *cursor {
	return &cursor{r: bufio.NewReader(r)}
}

// next consumes one byte. At end of input it returns io.EOF unwrapped.
func (c *cursor) next() (byte, error) {
	if c.peeked {
		c.peeked = false
		return c.ahead, nil
	}

	b, err := c.r.ReadByte()
	if err == io.EOF {
		return 0, io.EOF
	}
	if err != nil {
		return 0, fmt.Errorf("read input: %w", err)
	}
	c.read++
	return b, nil
}

// peek returns the next byte without consuming it. Peeking twice returns
// the same byte.
func (c *cursor) peek() (byte, error) {
	if c.peeked {
		return c.ahead, nil
	}

	b, err := c.next()
	if err != nil {
		return 0, err
	}
	c.ahead = b
	c.peeked = true
	return b, nil
}

// peekIs reports whether the next byte is want. End of input is not an error
// here: there is simply nothing to match.
func (c *cursor) peekIs(want byte) (bool, error) {
	b, err := c.peek()
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return b == want, nil
}
