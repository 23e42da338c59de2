package ast

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order, visiting children in
// source order. Absent optional children are skipped.
func Walk(node Node, v Visitor) {
	if isNil(node) || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, item := range n.Items {
			Walk(item, v)
		}

	case *FuncDecl:
		Walk(n.ReturnType, v)
		for _, p := range n.Params {
			Walk(p, v)
		}
		Walk(n.Body, v)

	case *Param:
		Walk(n.Type, v)

	case *Field:
		Walk(n.Type, v)

	case *TypeRef:
		walkExprs(n.Dims, v)

	case *StructDecl:
		for _, f := range n.Fields {
			Walk(f, v)
		}

	case *VarDecl:
		Walk(n.Type, v)
		for _, d := range n.Declarators {
			Walk(d, v)
		}

	case *Declarator:
		walkExprs(n.Dims, v)
		Walk(n.Init, v)

	case *DeclStmt:
		Walk(n.Decl, v)

	case *Block:
		for _, s := range n.Items {
			Walk(s, v)
		}

	case *IfStmt:
		Walk(n.Cond, v)
		Walk(n.Then, v)
		Walk(n.Else, v)

	case *WhileStmt:
		Walk(n.Cond, v)
		Walk(n.Body, v)

	case *DoWhileStmt:
		Walk(n.Body, v)
		Walk(n.Cond, v)

	case *ForStmt:
		Walk(n.Init, v)
		Walk(n.Cond, v)
		Walk(n.Post, v)
		Walk(n.Body, v)

	case *SwitchStmt:
		Walk(n.Tag, v)
		for _, c := range n.Cases {
			Walk(c, v)
		}
		Walk(n.Default, v)

	case *CaseClause:
		Walk(n.Value, v)
		for _, s := range n.Body {
			Walk(s, v)
		}

	case *DefaultClause:
		for _, s := range n.Body {
			Walk(s, v)
		}

	case *ReturnStmt:
		Walk(n.Value, v)

	case *ExprStmt:
		Walk(n.X, v)

	case *Unary:
		Walk(n.X, v)

	case *Binary:
		Walk(n.Left, v)
		Walk(n.Right, v)

	case *Ternary:
		Walk(n.Cond, v)
		Walk(n.Then, v)
		Walk(n.Else, v)

	case *Assign:
		Walk(n.Target, v)
		Walk(n.Value, v)

	case *Call:
		Walk(n.Func, v)
		walkExprs(n.Args, v)

	case *Index:
		Walk(n.Array, v)
		Walk(n.Index, v)

	case *Member:
		Walk(n.X, v)

	case *PreIncDec:
		Walk(n.X, v)

	case *PostIncDec:
		Walk(n.X, v)

	case *ArrayLit:
		walkExprs(n.Elems, v)
	}
}

func walkExprs(list []Expr, v Visitor) {
	for _, e := range list {
		Walk(e, v)
	}
}

// isNil reports whether node is nil or a typed nil pointer.
func isNil(node Node) bool {
	if node == nil {
		return true
	}
	switch n := node.(type) {
	case *Block:
		return n == nil
	case *TypeRef:
		return n == nil
	case *VarDecl:
		return n == nil
	case *DefaultClause:
		return n == nil
	}
	return false
}
