package minifier

import "fmt"

// State names the lexical context the minifier is in.
type State int

const (
	// Code is the initial state and the one every other state returns to.
	Code State = iota
	QuotedString
	LineComment
	BlockComment
	DotCommand
)

func (s State) String() string {
	switch s {
	case Code:
		return "code"
	case QuotedString:
		return "quoted-string"
	case LineComment:
		return "line-comment"
	case BlockComment:
		return "block-comment"
	case DotCommand:
		return "dot-command"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// lexState is all the memory the minifier keeps between bytes.
type lexState struct {
	// atLineStart is set while nothing but whitespace has been seen since the
	// last line terminator. A '.' in this position starts a dot-command.
	atLineStart bool

	// pendingSeparator is set when whitespace (or something equivalent to it)
	// was consumed and a single space may be owed before the next word byte.
	pendingSeparator bool

	// lastWasSeparator is set right after a space or punctuation was written,
	// and at the start of output. It suppresses duplicate and leading spaces.
	lastWasSeparator bool
}

func newLexState() lexState {
	return lexState{
		atLineStart:      true,
		pendingSeparator: true,
		lastWasSeparator: true,
	}
}

func isLineTerminator(b byte) bool {
	switch b {
	case '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// closerFor returns the byte that ends a quoted string opened by b.
func closerFor(b byte) byte {
	if b == '[' {
		return ']'
	}
	return b
}
