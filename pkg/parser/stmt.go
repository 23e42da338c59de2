package parser

import (
	"github.com/raymyers/charlang/pkg/ast"
	"github.com/raymyers/charlang/pkg/lexer"
)

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.curToken.Type {
	case lexer.TokenLBrace:
		return p.parseBlock()
	case lexer.TokenStruct:
		return p.parseStructDecl()
	case lexer.TokenIf:
		return p.parseIf()
	case lexer.TokenWhile:
		return p.parseWhile()
	case lexer.TokenFor:
		return p.parseFor()
	case lexer.TokenDo:
		return p.parseDoWhile()
	case lexer.TokenSwitch:
		return p.parseSwitch()
	case lexer.TokenReturn:
		return p.parseReturn()
	case lexer.TokenBreak:
		start := p.curToken.Pos
		if err := p.keywordStmt(); err != nil {
			return nil, err
		}
		return &ast.BreakStmt{Loc: p.span(start)}, nil
	case lexer.TokenContinue:
		start := p.curToken.Pos
		if err := p.keywordStmt(); err != nil {
			return nil, err
		}
		return &ast.ContinueStmt{Loc: p.span(start)}, nil
	case lexer.TokenSemicolon:
		return p.parseEmptyStmt()
	case lexer.TokenEnum, lexer.TokenUnion, lexer.TokenTypedef, lexer.TokenSizeof:
		return nil, p.unsupported()
	}
	return p.parseDeclOrExprStmt()
}

// parseDeclOrExprStmt tries a declaration first and falls back to an
// expression statement; both start with an identifier. A declaration
// needs an identifier or '[' after its type name, so one token of
// lookahead settles most statements without backtracking.
func (p *Parser) parseDeclOrExprStmt() (ast.Stmt, error) {
	if !p.curTokenIs(lexer.TokenIdent) {
		return p.parseExprStmt()
	}
	next, err := p.peek()
	if err != nil {
		return nil, err
	}
	if next.Type != lexer.TokenIdent && next.Type != lexer.TokenLBracket {
		return p.parseExprStmt()
	}

	node, err := p.firstOf(
		func() (ast.Node, error) { return p.parseDeclStmt() },
		func() (ast.Node, error) { return p.parseExprStmt() },
	)
	if err != nil {
		return nil, err
	}
	return node.(ast.Stmt), nil
}

func (p *Parser) parseExprStmt() (*ast.ExprStmt, error) {
	start := p.curToken.Pos
	x, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{X: x, Loc: p.span(start)}, nil
}

func (p *Parser) parseEmptyStmt() (*ast.ExprStmt, error) {
	start := p.curToken.Pos
	if err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Loc: p.span(start)}, nil
}

// keywordStmt consumes `keyword ;`.
func (p *Parser) keywordStmt() error {
	if err := p.nextToken(); err != nil {
		return err
	}
	return p.expect(lexer.TokenSemicolon)
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	open := p.curToken
	if err := p.expect(lexer.TokenLBrace); err != nil {
		return nil, err
	}
	block := &ast.Block{}
	for !p.curTokenIs(lexer.TokenRBrace) {
		if p.curTokenIs(lexer.TokenEOF) {
			return nil, p.expectClose(lexer.TokenRBrace, open)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Items = append(block.Items, stmt)
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	block.Loc = p.span(open.Pos)
	return block, nil
}

// parseCondition parses `( expression )`.
func (p *Parser) parseCondition() (ast.Expr, error) {
	open := p.curToken
	if err := p.expect(lexer.TokenLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectClose(lexer.TokenRParen, open); err != nil {
		return nil, err
	}
	return cond, nil
}

func (p *Parser) parseIf() (*ast.IfStmt, error) {
	start := p.curToken.Pos
	if err := p.expect(lexer.TokenIf); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStmt{Cond: cond, Then: then}
	if p.curTokenIs(lexer.TokenElse) {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		if stmt.Else, err = p.parseStatement(); err != nil {
			return nil, err
		}
	}
	stmt.Loc = p.span(start)
	return stmt, nil
}

func (p *Parser) parseWhile() (*ast.WhileStmt, error) {
	start := p.curToken.Pos
	if err := p.expect(lexer.TokenWhile); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body, Loc: p.span(start)}, nil
}

func (p *Parser) parseDoWhile() (*ast.DoWhileStmt, error) {
	start := p.curToken.Pos
	if err := p.expect(lexer.TokenDo); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenWhile); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.DoWhileStmt{Body: body, Cond: cond, Loc: p.span(start)}, nil
}

// parseFor parses `for ( init cond? ; post? ) body`. The init clause is
// a full statement and consumes its own semicolon.
func (p *Parser) parseFor() (*ast.ForStmt, error) {
	start := p.curToken.Pos
	if err := p.expect(lexer.TokenFor); err != nil {
		return nil, err
	}
	open := p.curToken
	if err := p.expect(lexer.TokenLParen); err != nil {
		return nil, err
	}

	stmt := &ast.ForStmt{}
	var err error
	if p.curTokenIs(lexer.TokenSemicolon) {
		stmt.Init, err = p.parseEmptyStmt()
	} else {
		stmt.Init, err = p.parseDeclOrExprStmt()
	}
	if err != nil {
		return nil, err
	}

	if !p.curTokenIs(lexer.TokenSemicolon) {
		if stmt.Cond, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}

	if !p.curTokenIs(lexer.TokenRParen) {
		if stmt.Post, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if err := p.expectClose(lexer.TokenRParen, open); err != nil {
		return nil, err
	}

	if stmt.Body, err = p.parseStatement(); err != nil {
		return nil, err
	}
	stmt.Loc = p.span(start)
	return stmt, nil
}

// parseSwitch parses the case clauses in order followed by at most one
// default clause, which must come last.
func (p *Parser) parseSwitch() (*ast.SwitchStmt, error) {
	start := p.curToken.Pos
	if err := p.expect(lexer.TokenSwitch); err != nil {
		return nil, err
	}
	tag, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	open := p.curToken
	if err := p.expect(lexer.TokenLBrace); err != nil {
		return nil, err
	}

	stmt := &ast.SwitchStmt{Tag: tag}
	for p.curTokenIs(lexer.TokenCase) {
		c, err := p.parseCase()
		if err != nil {
			return nil, err
		}
		stmt.Cases = append(stmt.Cases, c)
	}
	if p.curTokenIs(lexer.TokenDefault) {
		if stmt.Default, err = p.parseDefault(); err != nil {
			return nil, err
		}
	}

	if len(stmt.Cases) == 0 && stmt.Default == nil &&
		!p.curTokenIs(lexer.TokenRBrace) && !p.curTokenIs(lexer.TokenEOF) {
		return nil, p.expectedToken(lexer.TokenCase)
	}
	if err := p.expectClose(lexer.TokenRBrace, open); err != nil {
		return nil, err
	}
	stmt.Loc = p.span(start)
	return stmt, nil
}

func (p *Parser) parseCase() (*ast.CaseClause, error) {
	start := p.curToken.Pos
	if err := p.expect(lexer.TokenCase); err != nil {
		return nil, err
	}
	value, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenColon); err != nil {
		return nil, err
	}
	body, err := p.parseClauseBody()
	if err != nil {
		return nil, err
	}
	return &ast.CaseClause{Value: value, Body: body, Loc: p.span(start)}, nil
}

func (p *Parser) parseDefault() (*ast.DefaultClause, error) {
	start := p.curToken.Pos
	if err := p.expect(lexer.TokenDefault); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenColon); err != nil {
		return nil, err
	}
	body, err := p.parseClauseBody()
	if err != nil {
		return nil, err
	}
	return &ast.DefaultClause{Body: body, Loc: p.span(start)}, nil
}

// parseClauseBody parses statements up to the next label or the end of
// the switch.
func (p *Parser) parseClauseBody() ([]ast.Stmt, error) {
	var body []ast.Stmt
	for {
		switch p.curToken.Type {
		case lexer.TokenCase, lexer.TokenDefault, lexer.TokenRBrace, lexer.TokenEOF:
			return body, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
}

func (p *Parser) parseReturn() (*ast.ReturnStmt, error) {
	start := p.curToken.Pos
	if err := p.expect(lexer.TokenReturn); err != nil {
		return nil, err
	}
	stmt := &ast.ReturnStmt{}
	if !p.curTokenIs(lexer.TokenSemicolon) {
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}
	if err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}
	stmt.Loc = p.span(start)
	return stmt, nil
}
