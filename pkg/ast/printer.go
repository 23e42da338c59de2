package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer outputs the AST as charlang source.
//
// Binary, ternary and assignment expressions are printed fully
// parenthesized, so parsing the output reproduces the same tree.
type Printer struct {
	w      io.Writer
	indent int
}

// NewPrinter creates a new AST printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, indent: 0}
}

// Fprint prints node to w.
func Fprint(w io.Writer, node Node) {
	p := NewPrinter(w)
	switch n := node.(type) {
	case *Program:
		p.PrintProgram(n)
	case Stmt:
		p.printStmt(n)
	case Expr:
		p.printExpr(n)
	case *FuncDecl:
		p.printFuncDecl(n)
	default:
		p.printNode(n)
	}
}

// String returns the printed form of node.
func String(node Node) string {
	var sb strings.Builder
	Fprint(&sb, node)
	return sb.String()
}

// PrintProgram prints a complete program
func (p *Printer) PrintProgram(prog *Program) {
	for _, item := range prog.Items {
		switch n := item.(type) {
		case *FuncDecl:
			p.printFuncDecl(n)
		case Stmt:
			p.printStmt(n)
		default:
			fmt.Fprintf(p.w, "/* unknown item %T */\n", item)
		}
	}
}

func (p *Printer) writeIndent() {
	fmt.Fprint(p.w, strings.Repeat("  ", p.indent))
}

func (p *Printer) printNode(n Node) {
	switch n := n.(type) {
	case *TypeRef:
		p.printTypeRef(n)
	case *Param:
		p.printParam(n)
	case *Field:
		p.printTypeRef(n.Type)
		fmt.Fprintf(p.w, " %s;", n.Name)
	case *Declarator:
		p.printDeclarator(n)
	case *VarDecl:
		p.printVarDecl(n)
	case *CaseClause:
		p.printCase(n)
	case *DefaultClause:
		p.printDefault(n)
	default:
		fmt.Fprintf(p.w, "/* unknown node %T */", n)
	}
}

func (p *Printer) printFuncDecl(f *FuncDecl) {
	p.writeIndent()
	p.printTypeRef(f.ReturnType)
	fmt.Fprintf(p.w, " %s(", f.Name)
	for i, param := range f.Params {
		if i > 0 {
			fmt.Fprint(p.w, ", ")
		}
		p.printParam(param)
	}
	fmt.Fprint(p.w, ") ")
	p.printBlock(f.Body)
	fmt.Fprintln(p.w)
}

func (p *Printer) printParam(param *Param) {
	p.printTypeRef(param.Type)
	if param.Name != "" {
		fmt.Fprintf(p.w, " %s", param.Name)
	}
}

func (p *Printer) printTypeRef(t *TypeRef) {
	fmt.Fprint(p.w, t.Name)
	p.printDims(t.Dims)
}

func (p *Printer) printDims(dims []Expr) {
	for _, d := range dims {
		fmt.Fprint(p.w, "[")
		if d != nil {
			p.printExpr(d)
		}
		fmt.Fprint(p.w, "]")
	}
}

func (p *Printer) printDeclarator(d *Declarator) {
	fmt.Fprint(p.w, d.Name)
	p.printDims(d.Dims)
	if d.Init != nil {
		fmt.Fprint(p.w, " = ")
		p.printExpr(d.Init)
	}
}

func (p *Printer) printVarDecl(v *VarDecl) {
	p.printTypeRef(v.Type)
	fmt.Fprint(p.w, " ")
	for i, d := range v.Declarators {
		if i > 0 {
			fmt.Fprint(p.w, ", ")
		}
		p.printDeclarator(d)
	}
	fmt.Fprint(p.w, ";")
}

func (p *Printer) printBlock(b *Block) {
	fmt.Fprintln(p.w, "{")
	p.indent++
	for _, stmt := range b.Items {
		p.printStmt(stmt)
	}
	p.indent--
	p.writeIndent()
	fmt.Fprint(p.w, "}")
}

// printStmt prints an indented statement followed by a newline.
func (p *Printer) printStmt(stmt Stmt) {
	p.writeIndent()
	p.printStmtInline(stmt)
	fmt.Fprintln(p.w)
}

// printBody prints the body of a control statement: blocks stay on the
// same line, anything else goes on its own indented line.
func (p *Printer) printBody(body Stmt) {
	if b, ok := body.(*Block); ok {
		fmt.Fprint(p.w, " ")
		p.printBlock(b)
		return
	}
	fmt.Fprintln(p.w)
	p.indent++
	p.writeIndent()
	p.printStmtInline(body)
	p.indent--
}

func (p *Printer) printStmtInline(stmt Stmt) {
	switch s := stmt.(type) {
	case *Block:
		p.printBlock(s)
	case *ExprStmt:
		switch {
		case s.X == nil:
		case startsWithArrayLit(s.X, true):
			// A leading '{' would reparse as a block.
			fmt.Fprint(p.w, "(")
			p.printTopExpr(s.X)
			fmt.Fprint(p.w, ")")
		default:
			p.printTopExpr(s.X)
		}
		fmt.Fprint(p.w, ";")
	case *DeclStmt:
		p.printVarDecl(s.Decl)
	case *ReturnStmt:
		fmt.Fprint(p.w, "return")
		if s.Value != nil {
			fmt.Fprint(p.w, " ")
			p.printTopExpr(s.Value)
		}
		fmt.Fprint(p.w, ";")
	case *BreakStmt:
		fmt.Fprint(p.w, "break;")
	case *ContinueStmt:
		fmt.Fprint(p.w, "continue;")
	case *IfStmt:
		fmt.Fprint(p.w, "if (")
		p.printTopExpr(s.Cond)
		fmt.Fprint(p.w, ")")
		p.printBody(s.Then)
		if s.Else != nil {
			if _, ok := s.Then.(*Block); ok {
				fmt.Fprint(p.w, " else")
			} else {
				fmt.Fprintln(p.w)
				p.writeIndent()
				fmt.Fprint(p.w, "else")
			}
			p.printBody(s.Else)
		}
	case *WhileStmt:
		fmt.Fprint(p.w, "while (")
		p.printTopExpr(s.Cond)
		fmt.Fprint(p.w, ")")
		p.printBody(s.Body)
	case *DoWhileStmt:
		fmt.Fprint(p.w, "do")
		p.printBody(s.Body)
		if _, ok := s.Body.(*Block); ok {
			fmt.Fprint(p.w, " ")
		} else {
			fmt.Fprintln(p.w)
			p.writeIndent()
		}
		fmt.Fprint(p.w, "while (")
		p.printTopExpr(s.Cond)
		fmt.Fprint(p.w, ");")
	case *ForStmt:
		fmt.Fprint(p.w, "for (")
		p.printStmtInline(s.Init)
		if s.Cond != nil {
			fmt.Fprint(p.w, " ")
			p.printTopExpr(s.Cond)
		}
		fmt.Fprint(p.w, ";")
		if s.Post != nil {
			fmt.Fprint(p.w, " ")
			p.printTopExpr(s.Post)
		}
		fmt.Fprint(p.w, ")")
		p.printBody(s.Body)
	case *SwitchStmt:
		fmt.Fprint(p.w, "switch (")
		p.printTopExpr(s.Tag)
		fmt.Fprintln(p.w, ") {")
		for _, c := range s.Cases {
			p.printCase(c)
		}
		if s.Default != nil {
			p.printDefault(s.Default)
		}
		p.writeIndent()
		fmt.Fprint(p.w, "}")
	case *StructDecl:
		fmt.Fprintf(p.w, "struct %s {\n", s.Name)
		p.indent++
		for _, field := range s.Fields {
			p.writeIndent()
			p.printTypeRef(field.Type)
			fmt.Fprintf(p.w, " %s;\n", field.Name)
		}
		p.indent--
		p.writeIndent()
		fmt.Fprint(p.w, "}")
	default:
		fmt.Fprintf(p.w, "/* unknown stmt %T */", stmt)
	}
}

func (p *Printer) printCase(c *CaseClause) {
	p.writeIndent()
	fmt.Fprint(p.w, "case ")
	p.printExpr(c.Value)
	fmt.Fprintln(p.w, ":")
	p.indent++
	for _, stmt := range c.Body {
		p.printStmt(stmt)
	}
	p.indent--
}

func (p *Printer) printDefault(d *DefaultClause) {
	p.writeIndent()
	fmt.Fprintln(p.w, "default:")
	p.indent++
	for _, stmt := range d.Body {
		p.printStmt(stmt)
	}
	p.indent--
}

// startsWithArrayLit reports whether the printed form of e begins with
// an array literal. top is true when e is printed without its own
// parentheses.
func startsWithArrayLit(e Expr, top bool) bool {
	switch e := e.(type) {
	case *ArrayLit:
		return true
	case *Binary:
		return top && startsWithArrayLit(e.Left, false)
	case *Ternary:
		return top && startsWithArrayLit(e.Cond, false)
	case *Assign:
		return top && startsWithArrayLit(e.Target, false)
	case *Call:
		return startsWithArrayLit(e.Func, false)
	case *Index:
		return startsWithArrayLit(e.Array, false)
	case *Member:
		return startsWithArrayLit(e.X, false)
	case *PostIncDec:
		return startsWithArrayLit(e.X, false)
	}
	return false
}

// printTopExpr prints an expression in a position that is already
// delimited, dropping the outermost parentheses.
func (p *Printer) printTopExpr(e Expr) {
	switch e := e.(type) {
	case *Binary:
		p.printExpr(e.Left)
		if e.Op == OpComma {
			fmt.Fprint(p.w, ", ")
		} else {
			fmt.Fprintf(p.w, " %s ", e.Op)
		}
		p.printExpr(e.Right)
	case *Ternary:
		p.printExpr(e.Cond)
		fmt.Fprint(p.w, " ? ")
		p.printExpr(e.Then)
		fmt.Fprint(p.w, " : ")
		p.printExpr(e.Else)
	case *Assign:
		p.printExpr(e.Target)
		fmt.Fprintf(p.w, " %s ", e.Op)
		p.printExpr(e.Value)
	default:
		p.printExpr(e)
	}
}

func (p *Printer) printExpr(e Expr) {
	switch e := e.(type) {
	case *Literal:
		fmt.Fprint(p.w, e.Raw)
	case *Ident:
		fmt.Fprint(p.w, e.Name)
	case *Binary, *Ternary, *Assign:
		fmt.Fprint(p.w, "(")
		p.printTopExpr(e)
		fmt.Fprint(p.w, ")")
	case *Unary:
		fmt.Fprint(p.w, e.Op)
		p.printOperand(e.X)
	case *PreIncDec:
		fmt.Fprint(p.w, e.Op)
		p.printOperand(e.X)
	case *PostIncDec:
		p.printOperand(e.X)
		fmt.Fprint(p.w, e.Op)
	case *Call:
		p.printOperand(e.Func)
		fmt.Fprint(p.w, "(")
		p.printExprList(e.Args)
		fmt.Fprint(p.w, ")")
	case *Index:
		p.printOperand(e.Array)
		fmt.Fprint(p.w, "[")
		p.printTopExpr(e.Index)
		fmt.Fprint(p.w, "]")
	case *Member:
		p.printOperand(e.X)
		fmt.Fprintf(p.w, ".%s", e.Name)
	case *ArrayLit:
		fmt.Fprint(p.w, "{")
		p.printExprList(e.Elems)
		fmt.Fprint(p.w, "}")
	default:
		fmt.Fprintf(p.w, "/* unknown expr %T */", e)
	}
}

// printOperand prints the operand of a prefix or postfix operator,
// parenthesizing prefix forms so that e.g. -(-x) does not print as --x.
func (p *Printer) printOperand(e Expr) {
	switch e.(type) {
	case *Unary, *PreIncDec:
		fmt.Fprint(p.w, "(")
		p.printExpr(e)
		fmt.Fprint(p.w, ")")
	default:
		p.printExpr(e)
	}
}

func (p *Printer) printExprList(list []Expr) {
	for i, e := range list {
		if i > 0 {
			fmt.Fprint(p.w, ", ")
		}
		p.printExpr(e)
	}
}
