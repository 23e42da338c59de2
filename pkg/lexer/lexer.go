// Package lexer turns charlang source text into tokens and decodes the
// numeric, string and character literals it finds along the way.
package lexer

import (
	"errors"
	"unicode/utf8"
)

// Lexer tokenizes charlang source code
type Lexer struct {
	input  string
	pos    int  // offset of ch
	ch     byte // current character, 0 at end of input
	line   int
	column int
}

// Mark is a saved cursor position. Restoring it with Reset makes the lexer
// produce the same tokens again.
type Mark struct {
	pos    int
	line   int
	column int
}

// New creates a new Lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 1}
	if len(input) > 0 {
		l.ch = input[0]
	}
	return l
}

// Mark returns the current cursor position.
func (l *Lexer) Mark() Mark {
	return Mark{pos: l.pos, line: l.line, column: l.column}
}

// Reset moves the cursor back to m.
func (l *Lexer) Reset(m Mark) {
	l.pos, l.line, l.column = m.pos, m.line, m.column
	l.ch = 0
	if l.pos < len(l.input) {
		l.ch = l.input[l.pos]
	}
}

// Tokenize scans all of src. The returned slice ends with the EOF token.
func Tokenize(src string) ([]Token, error) {
	l := New(src)
	var toks []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == TokenEOF {
			return toks, nil
		}
	}
}

func (l *Lexer) readChar() {
	if l.pos >= len(l.input) {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
	l.ch = 0
	if l.pos < len(l.input) {
		l.ch = l.input[l.pos]
	}
}

func (l *Lexer) peekChar() byte {
	return l.peekN(1)
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) position() Pos {
	return Pos{Offset: l.pos, Line: l.line, Column: l.column}
}

// NextToken returns the next token from the input. After the input is
// exhausted every call returns an EOF token.
func (l *Lexer) NextToken() (Token, error) {
	if err := l.skipWhitespace(); err != nil {
		return Token{}, err
	}

	start := l.position()
	if l.atEOF() {
		return Token{Type: TokenEOF, Pos: start}, nil
	}

	switch {
	case isLetter(l.ch):
		lit := l.readIdentifier()
		return Token{Type: LookupIdent(lit), Literal: lit, Pos: start}, nil
	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
		return l.readNumber(start)
	case l.ch == '"':
		return l.readString(start)
	case l.ch == '\'':
		return l.readCharLiteral(start)
	}

	typ, ok := l.readOperator()
	if !ok {
		r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
		return Token{}, errorf(UnexpectedCharacter, start, "unexpected character %q", r)
	}
	return Token{Type: typ, Literal: l.input[start.Offset:l.pos], Pos: start}, nil
}

var twoCharOps = map[string]TokenType{
	"==": TokenEq,
	"!=": TokenNe,
	"<=": TokenLe,
	">=": TokenGe,
	"&&": TokenAnd,
	"||": TokenOr,
	"+=": TokenPlusAssign,
	"-=": TokenMinusAssign,
	"*=": TokenStarAssign,
	"/=": TokenSlashAssign,
	"%=": TokenPercentAssign,
	"&=": TokenAndAssign,
	"|=": TokenOrAssign,
	"^=": TokenXorAssign,
	"++": TokenIncrement,
	"--": TokenDecrement,
}

var oneCharOps = map[byte]TokenType{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'/': TokenSlash,
	'%': TokenPercent,
	'=': TokenAssign,
	'<': TokenLt,
	'>': TokenGt,
	'!': TokenNot,
	'~': TokenTilde,
	'&': TokenAmpersand,
	'|': TokenPipe,
	'^': TokenCaret,
	'?': TokenQuestion,
	':': TokenColon,
	'(': TokenLParen,
	')': TokenRParen,
	'{': TokenLBrace,
	'}': TokenRBrace,
	'[': TokenLBracket,
	']': TokenRBracket,
	';': TokenSemicolon,
	',': TokenComma,
	'.': TokenDot,
}

// readOperator consumes the longest operator or delimiter at the cursor.
func (l *Lexer) readOperator() (TokenType, bool) {
	if l.pos+2 <= len(l.input) {
		if typ, ok := twoCharOps[l.input[l.pos:l.pos+2]]; ok {
			l.readChar()
			l.readChar()
			return typ, true
		}
	}
	if typ, ok := oneCharOps[l.ch]; ok {
		l.readChar()
		return typ, true
	}
	return TokenEOF, false
}

// skipWhitespace skips blanks and comments.
func (l *Lexer) skipWhitespace() error {
	for !l.atEOF() {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for !l.atEOF() && l.ch != '\n' {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			start := l.position()
			l.readChar() // consume /
			l.readChar() // consume *
			for {
				if l.atEOF() {
					return errorf(UnterminatedComment, start, "unterminated block comment")
				}
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar() // consume *
					l.readChar() // consume /
					break
				}
				l.readChar()
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *Lexer) readIdentifier() string {
	pos := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[pos:l.pos]
}

// readNumber consumes the longest numeric run, including any suffix
// letters, and decodes it.
func (l *Lexer) readNumber(start Pos) (Token, error) {
	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar()
		l.readChar()
	} else {
		l.readDigits()
		if l.ch == '.' && isDigit(l.peekChar()) {
			l.readChar()
			l.readDigits()
		}
		if (l.ch == 'e' || l.ch == 'E') && l.exponentFollows() {
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			l.readDigits()
		}
	}
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}

	lit := l.input[start.Offset:l.pos]
	num, err := DecodeNumber(lit)
	if err != nil {
		return Token{}, rebase(err, start)
	}
	return Token{Type: TokenNumber, Literal: lit, Pos: start, Num: num}, nil
}

func (l *Lexer) readDigits() {
	for isDigit(l.ch) {
		l.readChar()
	}
}

func (l *Lexer) exponentFollows() bool {
	next := l.peekN(1)
	if next == '+' || next == '-' {
		next = l.peekN(2)
	}
	return isDigit(next)
}

// readQuoted consumes a quoted literal and returns its body. A newline or
// the end of input before the closing quote leaves it unterminated.
func (l *Lexer) readQuoted(quote byte) (string, bool) {
	l.readChar() // consume opening quote
	pos := l.pos
	for l.ch != quote {
		if l.atEOF() || l.ch == '\n' {
			return "", false
		}
		if l.ch == '\\' {
			l.readChar()
			if l.atEOF() || l.ch == '\n' {
				return "", false
			}
		}
		l.readChar()
	}
	body := l.input[pos:l.pos]
	l.readChar() // consume closing quote
	return body, true
}

func (l *Lexer) readString(start Pos) (Token, error) {
	body, ok := l.readQuoted('"')
	if !ok {
		return Token{}, errorf(UnterminatedString, start, "unterminated string literal")
	}
	text, err := DecodeString(body)
	if err != nil {
		return Token{}, rebase(err, bodyStart(start))
	}
	return Token{Type: TokenString, Literal: l.input[start.Offset:l.pos], Pos: start, Text: text}, nil
}

func (l *Lexer) readCharLiteral(start Pos) (Token, error) {
	body, ok := l.readQuoted('\'')
	if !ok {
		return Token{}, errorf(UnterminatedChar, start, "unterminated character literal")
	}
	r, err := DecodeChar(body)
	if err != nil {
		var lexErr *Error
		if errors.As(err, &lexErr) && lexErr.Kind == InvalidCharLiteral {
			return Token{}, rebase(err, start)
		}
		return Token{}, rebase(err, bodyStart(start))
	}
	return Token{Type: TokenChar, Literal: l.input[start.Offset:l.pos], Pos: start, Text: string(r)}, nil
}

func bodyStart(quote Pos) Pos {
	return Pos{Offset: quote.Offset + 1, Line: quote.Line, Column: quote.Column + 1}
}

// rebase turns a decoder error, positioned relative to the decoded text,
// into one positioned in the source. Literals never span lines.
func rebase(err error, base Pos) error {
	var lexErr *Error
	if !errors.As(err, &lexErr) {
		return err
	}
	off := lexErr.Pos.Offset
	lexErr.Pos = Pos{Offset: base.Offset + off, Line: base.Line, Column: base.Column + off}
	return lexErr
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
