package parser

import (
	"unicode/utf8"

	"github.com/raymyers/charlang/pkg/ast"
	"github.com/raymyers/charlang/pkg/lexer"
)

// binaryLevels lists the left-associative binary operators from loosest
// to tightest. == and != share the relational level; - shares the
// additive level with +.
var binaryLevels = []map[lexer.TokenType]ast.BinaryOp{
	{lexer.TokenOr: ast.OpOr},
	{lexer.TokenAnd: ast.OpAnd},
	{
		lexer.TokenLt: ast.OpLt,
		lexer.TokenGt: ast.OpGt,
		lexer.TokenLe: ast.OpLe,
		lexer.TokenGe: ast.OpGe,
		lexer.TokenEq: ast.OpEq,
		lexer.TokenNe: ast.OpNe,
	},
	{lexer.TokenPlus: ast.OpAdd, lexer.TokenMinus: ast.OpSub},
	{lexer.TokenStar: ast.OpMul, lexer.TokenSlash: ast.OpDiv, lexer.TokenPercent: ast.OpMod},
}

var assignOps = map[lexer.TokenType]ast.AssignOp{
	lexer.TokenAssign:        ast.AssignSet,
	lexer.TokenPlusAssign:    ast.AssignAdd,
	lexer.TokenMinusAssign:   ast.AssignSub,
	lexer.TokenStarAssign:    ast.AssignMul,
	lexer.TokenSlashAssign:   ast.AssignDiv,
	lexer.TokenPercentAssign: ast.AssignMod,
	lexer.TokenAndAssign:     ast.AssignAnd,
	lexer.TokenOrAssign:      ast.AssignOr,
	lexer.TokenXorAssign:     ast.AssignXor,
}

var unaryOps = map[lexer.TokenType]ast.UnaryOp{
	lexer.TokenMinus: ast.OpNeg,
	lexer.TokenPlus:  ast.OpPlus,
	lexer.TokenNot:   ast.OpNot,
	lexer.TokenTilde: ast.OpBitNot,
}

// parseExpression parses a comma-separated sequence of assignments.
func (p *Parser) parseExpression() (ast.Expr, error) {
	start := p.curToken.Pos
	left, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	for p.curTokenIs(lexer.TokenComma) {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		right, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: ast.OpComma, Left: left, Right: right, Loc: p.span(start)}
	}
	return left, nil
}

// parseAssignment parses `unary op assignment` or a ternary. The target
// must be a unary-level expression: in `a + b = c` the `=` is not
// consumed here.
func (p *Parser) parseAssignment() (ast.Expr, error) {
	start := p.curToken.Pos
	left, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if !p.curToken.Type.IsAssignOp() || left != p.lastUnary {
		return left, nil
	}
	op := assignOps[p.curToken.Type]
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	value, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return &ast.Assign{Op: op, Target: left, Value: value, Loc: p.span(start)}, nil
}

func (p *Parser) parseTernary() (ast.Expr, error) {
	start := p.curToken.Pos
	cond, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}
	if !p.curTokenIs(lexer.TokenQuestion) {
		return cond, nil
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	then, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenColon); err != nil {
		return nil, err
	}
	els, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	return &ast.Ternary{Cond: cond, Then: then, Else: els, Loc: p.span(start)}, nil
}

func (p *Parser) parseBinary(level int) (ast.Expr, error) {
	if level == len(binaryLevels) {
		return p.parseUnary()
	}
	start := p.curToken.Pos
	left, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := binaryLevels[level][p.curToken.Type]
		if !ok {
			return left, nil
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		right, err := p.parseBinary(level + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right, Loc: p.span(start)}
	}
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	start := p.curToken.Pos
	var expr ast.Expr
	switch tt := p.curToken.Type; {
	case tt == lexer.TokenIncrement || tt == lexer.TokenDecrement:
		op := ast.Inc
		if tt == lexer.TokenDecrement {
			op = ast.Dec
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		expr = &ast.PreIncDec{Op: op, X: x, Loc: p.span(start)}
	case tt == lexer.TokenSizeof:
		return nil, p.unsupported()
	default:
		op, ok := unaryOps[tt]
		if !ok {
			x, err := p.parsePostfix()
			if err != nil {
				return nil, err
			}
			expr = x
			break
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		expr = &ast.Unary{Op: op, X: x, Loc: p.span(start)}
	}
	p.lastUnary = expr
	return expr, nil
}

func (p *Parser) parsePostfix() (ast.Expr, error) {
	start := p.curToken.Pos
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		open := p.curToken
		switch open.Type {
		case lexer.TokenLBracket:
			if err := p.nextToken(); err != nil {
				return nil, err
			}
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expectClose(lexer.TokenRBracket, open); err != nil {
				return nil, err
			}
			expr = &ast.Index{Array: expr, Index: index, Loc: p.span(start)}
		case lexer.TokenLParen:
			if err := p.nextToken(); err != nil {
				return nil, err
			}
			args, err := p.parseExprList(lexer.TokenRParen, open)
			if err != nil {
				return nil, err
			}
			expr = &ast.Call{Func: expr, Args: args, Loc: p.span(start)}
		case lexer.TokenDot:
			if err := p.nextToken(); err != nil {
				return nil, err
			}
			name, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			expr = &ast.Member{X: expr, Name: name, Loc: p.span(start)}
		case lexer.TokenIncrement, lexer.TokenDecrement:
			op := ast.Inc
			if open.Type == lexer.TokenDecrement {
				op = ast.Dec
			}
			if err := p.nextToken(); err != nil {
				return nil, err
			}
			expr = &ast.PostIncDec{Op: op, X: expr, Loc: p.span(start)}
		default:
			return expr, nil
		}
	}
}

// parseExprList parses comma-separated assignment expressions up to and
// including closer. The opening token has already been consumed.
func (p *Parser) parseExprList(closer lexer.TokenType, open lexer.Token) ([]ast.Expr, error) {
	var list []ast.Expr
	if p.curTokenIs(closer) {
		return list, p.nextToken()
	}
	for {
		e, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		list = append(list, e)
		if !p.curTokenIs(lexer.TokenComma) {
			break
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
	}
	if err := p.expectClose(closer, open); err != nil {
		return nil, err
	}
	return list, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.curToken
	switch tok.Type {
	case lexer.TokenIdent:
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		return &ast.Ident{Name: tok.Literal, Loc: p.span(tok.Pos)}, nil

	case lexer.TokenNumber, lexer.TokenString, lexer.TokenChar:
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		return literal(tok, p.span(tok.Pos)), nil

	case lexer.TokenLBrace:
		return p.parseArrayLit()

	case lexer.TokenLParen:
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectClose(lexer.TokenRParen, tok); err != nil {
			return nil, err
		}
		return inner, nil

	case lexer.TokenSizeof:
		return nil, p.unsupported()
	}
	return nil, p.expectedExpression()
}

func (p *Parser) parseArrayLit() (*ast.ArrayLit, error) {
	open := p.curToken
	if err := p.expect(lexer.TokenLBrace); err != nil {
		return nil, err
	}
	elems, err := p.parseExprList(lexer.TokenRBrace, open)
	if err != nil {
		return nil, err
	}
	return &ast.ArrayLit{Elems: elems, Loc: p.span(open.Pos)}, nil
}

func literal(tok lexer.Token, loc ast.Span) *ast.Literal {
	lit := &ast.Literal{Raw: tok.Literal, Loc: loc}
	switch tok.Type {
	case lexer.TokenNumber:
		lit.Kind = ast.LitInt
		if tok.Num.Kind.IsFloat() {
			lit.Kind = ast.LitFloat
		}
		lit.Num = tok.Num
	case lexer.TokenString:
		lit.Kind = ast.LitString
		lit.Str = tok.Text
	case lexer.TokenChar:
		lit.Kind = ast.LitChar
		lit.Char, _ = utf8.DecodeRuneInString(tok.Text)
	}
	return lit
}
