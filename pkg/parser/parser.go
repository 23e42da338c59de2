// Package parser implements a recursive descent parser for charlang.
//
// Parsing is fail-fast: the first lexical or structural error aborts the
// parse and is returned to the caller; no partial tree is produced.
package parser

import (
	"github.com/raymyers/charlang/pkg/ast"
	"github.com/raymyers/charlang/pkg/lexer"
)

// Parser parses charlang source into an AST. A Parser is single-use and
// must not be shared between goroutines.
type Parser struct {
	l         *lexer.Lexer
	curToken  lexer.Token
	peekToken lexer.Token
	hasPeek   bool
	prevEnd   lexer.Pos // end of the last consumed token
	err       error     // error reading the first token

	// lastUnary is the node most recently returned by parseUnary; an
	// assignment target must be exactly that node.
	lastUnary ast.Expr
}

// Parse parses a complete program.
func Parse(src string) (*ast.Program, error) {
	return New(lexer.New(src)).ParseProgram()
}

// ParseExpression parses src as a single expression.
func ParseExpression(src string) (ast.Expr, error) {
	p := New(lexer.New(src))
	if p.err != nil {
		return nil, p.err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.curTokenIs(lexer.TokenEOF) {
		return nil, p.expectedToken(lexer.TokenEOF)
	}
	return expr, nil
}

// New creates a new Parser for the given lexer
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.curToken, p.err = l.NextToken()
	return p
}

// state is a backtracking save point. It is a plain value: the lexer
// cursor plus the buffered tokens.
type state struct {
	mark      lexer.Mark
	curToken  lexer.Token
	peekToken lexer.Token
	hasPeek   bool
	prevEnd   lexer.Pos
}

func (p *Parser) save() state {
	return state{
		mark:      p.l.Mark(),
		curToken:  p.curToken,
		peekToken: p.peekToken,
		hasPeek:   p.hasPeek,
		prevEnd:   p.prevEnd,
	}
}

func (p *Parser) restore(s state) {
	p.l.Reset(s.mark)
	p.curToken = s.curToken
	p.peekToken = s.peekToken
	p.hasPeek = s.hasPeek
	p.prevEnd = s.prevEnd
}

func (p *Parser) nextToken() error {
	p.prevEnd = p.curToken.End()
	if p.hasPeek {
		p.curToken = p.peekToken
		p.hasPeek = false
		return nil
	}
	tok, err := p.l.NextToken()
	if err != nil {
		return err
	}
	p.curToken = tok
	return nil
}

// peek returns the token after curToken without consuming anything.
func (p *Parser) peek() (lexer.Token, error) {
	if !p.hasPeek {
		tok, err := p.l.NextToken()
		if err != nil {
			return lexer.Token{}, err
		}
		p.peekToken = tok
		p.hasPeek = true
	}
	return p.peekToken, nil
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) expect(t lexer.TokenType) error {
	if p.curTokenIs(t) {
		return p.nextToken()
	}
	return p.expectedToken(t)
}

// expectIdent consumes an identifier and returns its name.
func (p *Parser) expectIdent() (string, error) {
	if !p.curTokenIs(lexer.TokenIdent) {
		return "", p.expectedToken(lexer.TokenIdent)
	}
	name := p.curToken.Literal
	return name, p.nextToken()
}

func isCloser(t lexer.TokenType) bool {
	return t == lexer.TokenRParen || t == lexer.TokenRBracket || t == lexer.TokenRBrace
}

// expectClose consumes the closer matching open. Running into the end of
// input or a different closer reports an unmatched bracket.
func (p *Parser) expectClose(closer lexer.TokenType, open lexer.Token) error {
	if p.curTokenIs(closer) {
		return p.nextToken()
	}
	if p.curTokenIs(lexer.TokenEOF) || isCloser(p.curToken.Type) {
		err := p.errorf(UnmatchedBracket, "unmatched '%s' opened at %s: expected '%s', got %s",
			open.Literal, open.Pos, closer, describe(p.curToken))
		err.Expected = closer
		return err
	}
	return p.expectedToken(closer)
}

// span returns the span from start to the end of the last consumed token.
func (p *Parser) span(start lexer.Pos) ast.Span {
	return ast.Span{Start: start, End: p.prevEnd}
}

// alternative is one ordered-choice branch.
type alternative func() (ast.Node, error)

// firstOf tries each alternative from the same save point and returns the
// first success. When all fail it returns the error that got furthest into
// the input, preferring later alternatives on ties. Lexical errors are
// returned immediately since no alternative can get past them.
func (p *Parser) firstOf(alts ...alternative) (ast.Node, error) {
	s := p.save()
	var best error
	var bestPos lexer.Pos
	for _, alt := range alts {
		node, err := alt()
		if err == nil {
			return node, nil
		}
		if isLexError(err) {
			return nil, err
		}
		pos, _ := ErrorPos(err)
		if best == nil || pos.Offset >= bestPos.Offset {
			best, bestPos = err, pos
		}
		p.restore(s)
	}
	return nil, best
}
