package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/raymyers/charlang/pkg/lexer"
)

// ErrorKind classifies a structural error.
type ErrorKind int

const (
	ExpectedExpression ErrorKind = iota
	ExpectedToken
	UnmatchedBracket
	UnsupportedConstruct
	UnexpectedTopLevelConstruct
)

func (k ErrorKind) String() string {
	names := []string{
		"ExpectedExpression",
		"ExpectedToken",
		"UnmatchedBracket",
		"UnsupportedConstruct",
		"UnexpectedTopLevelConstruct",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "?"
}

// Error is a malformed-structure error. Expected is meaningful for
// ExpectedToken and UnmatchedBracket.
type Error struct {
	Kind     ErrorKind
	Msg      string
	Pos      lexer.Pos
	Expected lexer.TokenType
	Found    lexer.Token
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d, col %d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// Position returns where the offending token starts.
func (e *Error) Position() lexer.Pos {
	return e.Pos
}

// Positioner is implemented by both error tiers.
type Positioner interface {
	error
	Position() lexer.Pos
}

// ErrorPos returns the source position carried by err, if any.
func ErrorPos(err error) (lexer.Pos, bool) {
	var pe Positioner
	if errors.As(err, &pe) {
		return pe.Position(), true
	}
	return lexer.Pos{}, false
}

// ErrorKindName returns the kind tag of a lexer or parser error.
func ErrorKindName(err error) string {
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return lexErr.Kind.String()
	}
	var parseErr *Error
	if errors.As(err, &parseErr) {
		return parseErr.Kind.String()
	}
	return ""
}

func isLexError(err error) bool {
	var lexErr *lexer.Error
	return errors.As(err, &lexErr)
}

// describe renders a token for error messages.
func describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.TokenEOF:
		return "end of input"
	case lexer.TokenIdent:
		return fmt.Sprintf("identifier %q", tok.Literal)
	case lexer.TokenNumber, lexer.TokenString, lexer.TokenChar:
		return fmt.Sprintf("%s %s", strings.ToLower(tok.Type.Class().String()), tok.Literal)
	}
	return fmt.Sprintf("'%s'", tok.Literal)
}

func (p *Parser) errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{
		Kind:  kind,
		Msg:   fmt.Sprintf(format, args...),
		Pos:   p.curToken.Pos,
		Found: p.curToken,
	}
}

func (p *Parser) expectedToken(t lexer.TokenType) *Error {
	err := p.errorf(ExpectedToken, "expected '%s', got %s", t, describe(p.curToken))
	if t == lexer.TokenIdent {
		err.Msg = fmt.Sprintf("expected identifier, got %s", describe(p.curToken))
	}
	err.Expected = t
	return err
}

func (p *Parser) expectedExpression() *Error {
	return p.errorf(ExpectedExpression, "expected expression, got %s", describe(p.curToken))
}

func (p *Parser) unsupported() *Error {
	return p.errorf(UnsupportedConstruct, "'%s' is reserved but not supported", p.curToken.Literal)
}
