package minifier

import (
	"bufio"
	"fmt"
	"io"
)

// sink is the write side of a run. It keeps the first write error so every
// later write is a no-op that reports the same failure.
type sink struct {
	w       *bufio.Writer
	written int64
	err     error
}

func newSink(w io.Writer) *sink {
	return &sink{w: bufio.NewWriter(w)}
}

func (s *sink) writeByte(b byte) error {
	if s.err != nil {
		return s.err
	}
	if err := s.w.WriteByte(b); err != nil {
		s.err = fmt.Errorf("write output: %w", err)
		return s.err
	}
	s.written++
	return nil
}

func (s *sink) flush() error {
	if s.err != nil {
		return s.err
	}
	if err := s.w.Flush(); err != nil {
		s.err = fmt.Errorf("write output: %w", err)
	}
	return s.err
}
