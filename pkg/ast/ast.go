// Package ast defines the syntax tree produced by the charlang parser.
//
// Every node owns its children exclusively; the tree has no sharing and no
// cycles. Each node records the source span of the tokens it was built from.
package ast

import "github.com/raymyers/charlang/pkg/lexer"

// Span is the half-open source range [Start, End) covered by a node.
type Span struct {
	Start lexer.Pos
	End   lexer.Pos
}

// Node is the base interface for all AST nodes
type Node interface {
	Span() Span
}

// Expr is the interface for all expression nodes
type Expr interface {
	Node
	implExpr()
}

// Stmt is the interface for all statement nodes
type Stmt interface {
	Node
	implStmt()
}

// BinaryOp represents binary operators
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
	OpAnd   // &&
	OpOr    // ||
	OpComma // ,
)

func (op BinaryOp) String() string {
	names := []string{"+", "-", "*", "/", "%", "<", "<=", ">", ">=", "==", "!=", "&&", "||", ","}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// UnaryOp represents prefix operators other than ++ and --
type UnaryOp int

const (
	OpNeg    UnaryOp = iota // -
	OpPlus                  // +
	OpNot                   // !
	OpBitNot                // ~
)

func (op UnaryOp) String() string {
	names := []string{"-", "+", "!", "~"}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// AssignOp represents = and the compound assignments
type AssignOp int

const (
	AssignSet AssignOp = iota // =
	AssignAdd                 // +=
	AssignSub                 // -=
	AssignMul                 // *=
	AssignDiv                 // /=
	AssignMod                 // %=
	AssignAnd                 // &=
	AssignOr                  // |=
	AssignXor                 // ^=
)

func (op AssignOp) String() string {
	names := []string{"=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^="}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// IncDecOp is ++ or --
type IncDecOp int

const (
	Inc IncDecOp = iota
	Dec
)

func (op IncDecOp) String() string {
	if op == Dec {
		return "--"
	}
	return "++"
}

// LitKind tags a Literal
type LitKind int

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitChar
)

func (k LitKind) String() string {
	names := []string{"int", "float", "string", "char"}
	if int(k) < len(names) {
		return names[k]
	}
	return "?"
}

// Literal is a numeric, string or character constant.
// Raw is the source lexeme; Num, Str and Char hold the decoded value
// for the matching Kind.
type Literal struct {
	Kind LitKind
	Raw  string
	Num  lexer.Number
	Str  string
	Char rune
	Loc  Span
}

// Ident represents an identifier expression
type Ident struct {
	Name string
	Loc  Span
}

// Unary represents a prefix -, +, ! or ~
type Unary struct {
	Op  UnaryOp
	X   Expr
	Loc Span
}

// Binary represents a binary expression, including the comma operator
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	Loc   Span
}

// Ternary represents cond ? then : else
type Ternary struct {
	Cond Expr
	Then Expr
	Else Expr
	Loc  Span
}

// Assign represents simple and compound assignment
type Assign struct {
	Op     AssignOp
	Target Expr
	Value  Expr
	Loc    Span
}

// Call represents a function call
type Call struct {
	Func Expr
	Args []Expr
	Loc  Span
}

// Index represents array subscript access: arr[idx]
type Index struct {
	Array Expr
	Index Expr
	Loc   Span
}

// Member represents field access: x.name
type Member struct {
	X    Expr
	Name string
	Loc  Span
}

// PreIncDec represents ++x and --x
type PreIncDec struct {
	Op  IncDecOp
	X   Expr
	Loc Span
}

// PostIncDec represents x++ and x--
type PostIncDec struct {
	Op  IncDecOp
	X   Expr
	Loc Span
}

// ArrayLit represents a brace-enclosed element list: {1, 2, 3}
type ArrayLit struct {
	Elems []Expr
	Loc   Span
}

// TypeRef is a base type name followed by array dimensions.
// A nil entry in Dims is an unsized dimension ([]).
type TypeRef struct {
	Name string
	Dims []Expr
	Loc  Span
}

// Param is a function parameter; Name is empty for unnamed parameters.
type Param struct {
	Type *TypeRef
	Name string
	Loc  Span
}

// Field is a struct member
type Field struct {
	Type *TypeRef
	Name string
	Loc  Span
}

// Declarator is one name in a declaration, with its own array
// dimensions and optional initializer.
type Declarator struct {
	Name string
	Dims []Expr
	Init Expr // nil if absent
	Loc  Span
}

// VarDecl is a type followed by an init-declarator list
type VarDecl struct {
	Type        *TypeRef
	Declarators []*Declarator
	Loc         Span
}

// Block represents a compound statement (block)
type Block struct {
	Items []Stmt
	Loc   Span
}

// IfStmt represents if/else
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil if absent
	Loc  Span
}

// WhileStmt represents a while loop
type WhileStmt struct {
	Cond Expr
	Body Stmt
	Loc  Span
}

// ForStmt represents a for loop. Init is a DeclStmt or ExprStmt;
// Cond and Post are nil when omitted.
type ForStmt struct {
	Init Stmt
	Cond Expr
	Post Expr
	Body Stmt
	Loc  Span
}

// DoWhileStmt represents do body while (cond);
type DoWhileStmt struct {
	Body Stmt
	Cond Expr
	Loc  Span
}

// CaseClause is one case label with the statements that follow it
type CaseClause struct {
	Value Expr
	Body  []Stmt
	Loc   Span
}

// DefaultClause is the default label with the statements that follow it
type DefaultClause struct {
	Body []Stmt
	Loc  Span
}

// SwitchStmt represents a switch statement
type SwitchStmt struct {
	Tag     Expr
	Cases   []*CaseClause
	Default *DefaultClause // nil if absent
	Loc     Span
}

// ReturnStmt represents a return statement
type ReturnStmt struct {
	Value Expr // nil for bare return
	Loc   Span
}

// BreakStmt represents break;
type BreakStmt struct {
	Loc Span
}

// ContinueStmt represents continue;
type ContinueStmt struct {
	Loc Span
}

// ExprStmt is an expression followed by ';'. X is nil for the empty
// statement.
type ExprStmt struct {
	X   Expr
	Loc Span
}

// DeclStmt wraps a variable declaration used as a statement
type DeclStmt struct {
	Decl *VarDecl
	Loc  Span
}

// StructDecl represents struct Name { fields }
type StructDecl struct {
	Name   string
	Fields []*Field
	Loc    Span
}

// FuncDecl represents a function definition
type FuncDecl struct {
	ReturnType *TypeRef
	Name       string
	Params     []*Param
	Body       *Block
	Loc        Span
}

// Program is the root of the tree. Items holds *FuncDecl, *StructDecl
// and statements, in source order.
type Program struct {
	Items []Node
	Loc   Span
}

func (n *Literal) Span() Span       { return n.Loc }
func (n *Ident) Span() Span         { return n.Loc }
func (n *Unary) Span() Span         { return n.Loc }
func (n *Binary) Span() Span        { return n.Loc }
func (n *Ternary) Span() Span       { return n.Loc }
func (n *Assign) Span() Span        { return n.Loc }
func (n *Call) Span() Span          { return n.Loc }
func (n *Index) Span() Span         { return n.Loc }
func (n *Member) Span() Span        { return n.Loc }
func (n *PreIncDec) Span() Span     { return n.Loc }
func (n *PostIncDec) Span() Span    { return n.Loc }
func (n *ArrayLit) Span() Span      { return n.Loc }
func (n *TypeRef) Span() Span       { return n.Loc }
func (n *Param) Span() Span         { return n.Loc }
func (n *Field) Span() Span         { return n.Loc }
func (n *Declarator) Span() Span    { return n.Loc }
func (n *VarDecl) Span() Span       { return n.Loc }
func (n *Block) Span() Span         { return n.Loc }
func (n *IfStmt) Span() Span        { return n.Loc }
func (n *WhileStmt) Span() Span     { return n.Loc }
func (n *ForStmt) Span() Span       { return n.Loc }
func (n *DoWhileStmt) Span() Span   { return n.Loc }
func (n *CaseClause) Span() Span    { return n.Loc }
func (n *DefaultClause) Span() Span { return n.Loc }
func (n *SwitchStmt) Span() Span    { return n.Loc }
func (n *ReturnStmt) Span() Span    { return n.Loc }
func (n *BreakStmt) Span() Span     { return n.Loc }
func (n *ContinueStmt) Span() Span  { return n.Loc }
func (n *ExprStmt) Span() Span      { return n.Loc }
func (n *DeclStmt) Span() Span      { return n.Loc }
func (n *StructDecl) Span() Span    { return n.Loc }
func (n *FuncDecl) Span() Span      { return n.Loc }
func (n *Program) Span() Span       { return n.Loc }

// Marker methods for interface implementation
func (*Literal) implExpr()    {}
func (*Ident) implExpr()      {}
func (*Unary) implExpr()      {}
func (*Binary) implExpr()     {}
func (*Ternary) implExpr()    {}
func (*Assign) implExpr()     {}
func (*Call) implExpr()       {}
func (*Index) implExpr()      {}
func (*Member) implExpr()     {}
func (*PreIncDec) implExpr()  {}
func (*PostIncDec) implExpr() {}
func (*ArrayLit) implExpr()   {}

func (*Block) implStmt()        {}
func (*IfStmt) implStmt()       {}
func (*WhileStmt) implStmt()    {}
func (*ForStmt) implStmt()      {}
func (*DoWhileStmt) implStmt()  {}
func (*SwitchStmt) implStmt()   {}
func (*ReturnStmt) implStmt()   {}
func (*BreakStmt) implStmt()    {}
func (*ContinueStmt) implStmt() {}
func (*ExprStmt) implStmt()     {}
func (*DeclStmt) implStmt()     {}
func (*StructDecl) implStmt()   {}
