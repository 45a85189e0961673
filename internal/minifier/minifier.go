// Package minifier strips comments and insignificant whitespace from C-like
// and SQL-like source text in a single streaming pass.
//
// Input is treated as bytes, not runes. Every byte outside the recognized
// whitespace, punctuation and delimiter sets is a word byte, so multi-byte
// UTF-8 sequences pass through untouched and are spaced like identifiers.
//
// Quoted strings have no escape handling: the closing delimiter always ends
// the string.
package minifier

import (
	"bytes"
	"errors"
	"io"
	"strings"
)

const (
	separator  = ' '
	terminator = '\n'
)

// Result reports how many bytes a run consumed and produced.
type Result struct {
	Read    int64
	Written int64
}

// Saved returns the number of bytes removed by the run.
func (r Result) Saved() int64 {
	return r.Read - r.Written
}

// Run minifies everything readable from in into out. When trailingNewline is
// set a single '\n' is appended after the minified content. The only errors
// are read and write failures, which stop the run at once.
func Run(in io.Reader, out io.Writer, trailingNewline bool) (Result, error) {
	m := newMachine(in, out)

	err := m.run()
	if err == nil && trailingNewline {
		err = m.emit(terminator)
	}
	if ferr := m.out.flush(); err == nil {
		err = ferr
	}

	return Result{Read: m.in.read, Written: m.out.written}, err
}

// String minifies an in-memory source.
func String(src string) string {
	var b strings.Builder
	// strings.Reader and strings.Builder never fail.
	_, _ = Run(strings.NewReader(src), &b, false)
	return b.String()
}

// Bytes minifies an in-memory source.
func Bytes(src []byte) []byte {
	var b bytes.Buffer
	_, _ = Run(bytes.NewReader(src), &b, false)
	return b.Bytes()
}

// machine is one minification run. Each state handler consumes input until
// its state is complete and returns the state to continue in.
type machine struct {
	in  *cursor
	out *sink
	lexState

	// opener and closer delimit the quoted string being copied.
	opener byte
	closer byte
}

func newMachine(in io.Reader, out io.Writer) *machine {
	return &machine{
		in:       newCursor(in),
		out:      newSink(out),
		lexState: newLexState(),
	}
}

func (m *machine) run() error {
	state := Code
	for {
		next, err := m.step(state)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		state = next
	}
}

// step runs the handler for s and returns the next state. io.EOF means the
// input ended; whatever s was simply stops there.
func (m *machine) step(s State) (State, error) {
	switch s {
	case QuotedString:
		return m.quotedString()
	case LineComment:
		return m.lineComment()
	case BlockComment:
		return m.blockComment()
	case DotCommand:
		return m.dotCommand()
	default:
		return m.code()
	}
}

func (m *machine) code() (State, error) {
	ch, err := m.in.next()
	if err != nil {
		return Code, err
	}

	switch ch {
	case '\n', '\v', '\f', '\r':
		m.atLineStart = true
		m.pendingSeparator = true
	case ' ', '\t':
		m.pendingSeparator = true
	case '"', '\'', '`', '[':
		m.opener, m.closer = ch, closerFor(ch)
		return QuotedString, nil
	case '.':
		if m.atLineStart {
			return DotCommand, nil
		}
		return Code, m.punct(ch)
	case '-':
		dash, err := m.in.peekIs('-')
		if err != nil {
			return Code, err
		}
		if dash {
			_, _ = m.in.next()
			return LineComment, nil
		}
		return Code, m.punct(ch)
	case '/':
		star, err := m.in.peekIs('*')
		if err != nil {
			return Code, err
		}
		if star {
			_, _ = m.in.next()
			return BlockComment, nil
		}
		return Code, m.punct(ch)
	case '!', '%', '&', '(', ')', '*', '+', ',', ';', '<', '=', '>', '|':
		return Code, m.punct(ch)
	default:
		return Code, m.word(ch)
	}
	return Code, nil
}

func (m *machine) quotedString() (State, error) {
	if err := m.separate(); err != nil {
		return Code, err
	}
	if err := m.emit(m.opener); err != nil {
		return Code, err
	}

	for {
		ch, err := m.in.next()
		if err != nil {
			return Code, err
		}
		if err := m.emit(ch); err != nil {
			return Code, err
		}
		if ch == m.closer {
			m.pendingSeparator = false
			m.atLineStart = false
			return Code, nil
		}
	}
}

func (m *machine) lineComment() (State, error) {
	for {
		ch, err := m.in.next()
		if err != nil {
			return Code, err
		}
		if isLineTerminator(ch) {
			m.pendingSeparator = true
			m.atLineStart = true
			return Code, nil
		}
	}
}

func (m *machine) blockComment() (State, error) {
	for {
		ch, err := m.in.next()
		if err != nil {
			return Code, err
		}
		if ch != '*' {
			continue
		}

		end, err := m.in.peekIs('/')
		if err != nil {
			return Code, err
		}
		if end {
			_, _ = m.in.next()
			m.pendingSeparator = true
			m.atLineStart = false
			return Code, nil
		}
	}
}

// dotCommand copies a directive line verbatim. The leading '.' was consumed
// by code and is written again after a fresh line terminator.
func (m *machine) dotCommand() (State, error) {
	if err := m.emit(terminator); err != nil {
		return Code, err
	}
	if err := m.emit('.'); err != nil {
		return Code, err
	}

	for {
		ch, err := m.in.next()
		if err != nil {
			return Code, err
		}
		if isLineTerminator(ch) {
			if err := m.emit(terminator); err != nil {
				return Code, err
			}
			m.lastWasSeparator = true
			m.pendingSeparator = true
			m.atLineStart = true
			return Code, nil
		}
		if err := m.emit(ch); err != nil {
			return Code, err
		}
	}
}

func (m *machine) emit(b byte) error {
	m.lastWasSeparator = false
	return m.out.writeByte(b)
}

// separate writes the one space owed for a whitespace run, unless output is
// already at a token boundary.
func (m *machine) separate() error {
	if m.pendingSeparator && !m.lastWasSeparator {
		if err := m.emit(separator); err != nil {
			return err
		}
	}
	m.lastWasSeparator = true
	return nil
}

// punct writes a self-delimiting byte. No space is needed on either side.
func (m *machine) punct(b byte) error {
	if err := m.emit(b); err != nil {
		return err
	}
	m.atLineStart = false
	m.pendingSeparator = true
	m.lastWasSeparator = true
	return nil
}

func (m *machine) word(b byte) error {
	if err := m.separate(); err != nil {
		return err
	}
	if err := m.emit(b); err != nil {
		return err
	}
	m.atLineStart = false
	m.pendingSeparator = false
	return nil
}
