package lexer

import "fmt"

// ErrorKind classifies a lexical error.
type ErrorKind int

const (
	UnterminatedString ErrorKind = iota
	UnterminatedChar
	UnterminatedComment
	InvalidEscape
	InvalidCharLiteral
	InvalidNumber
	UnexpectedCharacter
)

func (k ErrorKind) String() string {
	names := []string{
		"UnterminatedString",
		"UnterminatedChar",
		"UnterminatedComment",
		"InvalidEscape",
		"InvalidCharLiteral",
		"InvalidNumber",
		"UnexpectedCharacter",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "?"
}

// Error is a malformed-token error. It aborts the parse that hit it.
type Error struct {
	Kind ErrorKind
	Msg  string
	Pos  Pos
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d, col %d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// Position returns where the malformed token starts.
func (e *Error) Position() Pos {
	return e.Pos
}

func errorf(kind ErrorKind, pos Pos, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
