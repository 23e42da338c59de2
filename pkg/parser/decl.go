package parser

import (
	"github.com/raymyers/charlang/pkg/ast"
	"github.com/raymyers/charlang/pkg/lexer"
)

// parseTypeRef parses `identifier ('[' expression? ']')*`.
func (p *Parser) parseTypeRef() (*ast.TypeRef, error) {
	start := p.curToken.Pos
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	dims, err := p.parseDims()
	if err != nil {
		return nil, err
	}
	return &ast.TypeRef{Name: name, Dims: dims, Loc: p.span(start)}, nil
}

// parseDims parses array suffixes; an empty suffix yields a nil entry.
func (p *Parser) parseDims() ([]ast.Expr, error) {
	var dims []ast.Expr
	for p.curTokenIs(lexer.TokenLBracket) {
		open := p.curToken
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		var dim ast.Expr
		if !p.curTokenIs(lexer.TokenRBracket) {
			var err error
			if dim, err = p.parseExpression(); err != nil {
				return nil, err
			}
		}
		if err := p.expectClose(lexer.TokenRBracket, open); err != nil {
			return nil, err
		}
		dims = append(dims, dim)
	}
	return dims, nil
}

func (p *Parser) parseVarDecl() (*ast.VarDecl, error) {
	start := p.curToken.Pos
	typ, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}
	decl := &ast.VarDecl{Type: typ}
	for {
		d, err := p.parseDeclarator()
		if err != nil {
			return nil, err
		}
		decl.Declarators = append(decl.Declarators, d)
		if !p.curTokenIs(lexer.TokenComma) {
			break
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
	}
	decl.Loc = p.span(start)
	return decl, nil
}

func (p *Parser) parseDeclarator() (*ast.Declarator, error) {
	start := p.curToken.Pos
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	dims, err := p.parseDims()
	if err != nil {
		return nil, err
	}
	d := &ast.Declarator{Name: name, Dims: dims}
	if p.curTokenIs(lexer.TokenAssign) {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		if p.curTokenIs(lexer.TokenLBrace) {
			d.Init, err = p.parseArrayLit()
		} else {
			d.Init, err = p.parseAssignment()
		}
		if err != nil {
			return nil, err
		}
	}
	d.Loc = p.span(start)
	return d, nil
}

func (p *Parser) parseDeclStmt() (*ast.DeclStmt, error) {
	start := p.curToken.Pos
	decl, err := p.parseVarDecl()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.DeclStmt{Decl: decl, Loc: p.span(start)}, nil
}

// parseStructDecl parses `struct Name { (typing identifier ;)* } ;?`.
func (p *Parser) parseStructDecl() (*ast.StructDecl, error) {
	start := p.curToken.Pos
	if err := p.expect(lexer.TokenStruct); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	open := p.curToken
	if err := p.expect(lexer.TokenLBrace); err != nil {
		return nil, err
	}

	decl := &ast.StructDecl{Name: name}
	for !p.curTokenIs(lexer.TokenRBrace) {
		if p.curTokenIs(lexer.TokenEOF) {
			return nil, p.expectClose(lexer.TokenRBrace, open)
		}
		field, err := p.parseField()
		if err != nil {
			return nil, err
		}
		decl.Fields = append(decl.Fields, field)
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	if p.curTokenIs(lexer.TokenSemicolon) {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
	}
	decl.Loc = p.span(start)
	return decl, nil
}

func (p *Parser) parseField() (*ast.Field, error) {
	start := p.curToken.Pos
	typ, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.Field{Type: typ, Name: name, Loc: p.span(start)}, nil
}

// parseFuncDecl parses `typing identifier ( params? ) block ;?`.
func (p *Parser) parseFuncDecl() (*ast.FuncDecl, error) {
	start := p.curToken.Pos
	ret, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	open := p.curToken
	if err := p.expect(lexer.TokenLParen); err != nil {
		return nil, err
	}

	fn := &ast.FuncDecl{ReturnType: ret, Name: name}
	if !p.curTokenIs(lexer.TokenRParen) {
		for {
			param, err := p.parseParam()
			if err != nil {
				return nil, err
			}
			fn.Params = append(fn.Params, param)
			if !p.curTokenIs(lexer.TokenComma) {
				break
			}
			if err := p.nextToken(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.expectClose(lexer.TokenRParen, open); err != nil {
		return nil, err
	}

	if fn.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	if p.curTokenIs(lexer.TokenSemicolon) {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
	}
	fn.Loc = p.span(start)
	return fn, nil
}

func (p *Parser) parseParam() (*ast.Param, error) {
	start := p.curToken.Pos
	typ, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}
	param := &ast.Param{Type: typ}
	if p.curTokenIs(lexer.TokenIdent) {
		param.Name = p.curToken.Literal
		if err := p.nextToken(); err != nil {
			return nil, err
		}
	}
	param.Loc = p.span(start)
	return param, nil
}
