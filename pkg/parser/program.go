package parser

import (
	"github.com/raymyers/charlang/pkg/ast"
	"github.com/raymyers/charlang/pkg/lexer"
)

// ParseProgram parses top-level items until the end of input.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	if p.err != nil {
		return nil, p.err
	}
	prog := &ast.Program{}
	for !p.curTokenIs(lexer.TokenEOF) {
		item, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}
		prog.Items = append(prog.Items, item)
	}
	prog.Loc = ast.Span{
		Start: lexer.Pos{Offset: 0, Line: 1, Column: 1},
		End:   p.curToken.Pos,
	}
	return prog, nil
}

// parseTopLevel parses one top-level item. Items that start with a
// keyword are dispatched directly; everything else is tried as a
// function, then a declaration, then an expression statement.
func (p *Parser) parseTopLevel() (ast.Node, error) {
	start := p.curToken
	switch start.Type {
	case lexer.TokenStruct:
		return p.parseStructDecl()
	case lexer.TokenFor, lexer.TokenIf, lexer.TokenWhile, lexer.TokenDo,
		lexer.TokenSwitch:
		return p.parseStatement()
	case lexer.TokenLBrace:
		// A block, or an array literal starting an expression statement.
		return p.firstOf(
			func() (ast.Node, error) { return p.parseBlock() },
			func() (ast.Node, error) { return p.parseExprStmt() },
		)
	case lexer.TokenEnum, lexer.TokenUnion, lexer.TokenTypedef, lexer.TokenSizeof:
		return nil, p.unsupported()
	case lexer.TokenReturn, lexer.TokenBreak, lexer.TokenContinue, lexer.TokenCase,
		lexer.TokenDefault, lexer.TokenElse, lexer.TokenSemicolon:
		return nil, p.unexpectedTopLevel()
	}

	node, err := p.firstOf(
		func() (ast.Node, error) { return p.parseFuncDecl() },
		func() (ast.Node, error) { return p.parseDeclStmt() },
		func() (ast.Node, error) { return p.parseExprStmt() },
	)
	if err != nil {
		// Nothing got past the first token.
		if pos, ok := ErrorPos(err); ok && !isLexError(err) && pos.Offset == start.Pos.Offset {
			return nil, p.unexpectedTopLevel()
		}
		return nil, err
	}
	return node, nil
}

func (p *Parser) unexpectedTopLevel() *Error {
	return p.errorf(UnexpectedTopLevelConstruct, "unexpected %s at top level", describe(p.curToken))
}
