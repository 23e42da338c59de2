package ast

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// DumpYAML writes a YAML representation of the tree rooted at node to w.
// Spans are omitted; every mapping starts with a "kind" key.
// Nothing is written to w if encoding fails.
func DumpYAML(w io.Writer, node Node) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toYAML(node)); err != nil {
		return fmt.Errorf("encoding AST: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding AST: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Equal reports whether a and b are structurally identical, ignoring
// source spans.
func Equal(a, b Node) bool {
	return reflect.DeepEqual(toYAML(a), toYAML(b))
}

// mapping builds an ordered YAML mapping node.
type mapping struct {
	node *yaml.Node
}

func newMapping(kind string) mapping {
	m := mapping{node: &yaml.Node{Kind: yaml.MappingNode}}
	m.str("kind", kind)
	return m
}

func (m mapping) add(key string, value *yaml.Node) {
	if value == nil {
		return
	}
	m.node.Content = append(m.node.Content, scalar(key), value)
}

func (m mapping) str(key, value string) {
	m.add(key, scalar(value))
}

// scalar returns a string node, or a !!binary node when value is not
// valid UTF-8 (raw bytes inside a string literal).
func scalar(value string) *yaml.Node {
	if !utf8.ValidString(value) {
		return typedScalar("!!binary", base64.StdEncoding.EncodeToString([]byte(value)))
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func typedScalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func sequence(nodes []*yaml.Node) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	if len(nodes) > 0 {
		seq.Style = 0
	}
	seq.Content = nodes
	return seq
}

func exprList(list []Expr) *yaml.Node {
	nodes := make([]*yaml.Node, 0, len(list))
	for _, e := range list {
		nodes = append(nodes, toYAML(e))
	}
	return sequence(nodes)
}

func stmtList(list []Stmt) *yaml.Node {
	nodes := make([]*yaml.Node, 0, len(list))
	for _, s := range list {
		nodes = append(nodes, toYAML(s))
	}
	return sequence(nodes)
}

// dims renders array dimensions; an unsized dimension is null.
func dims(list []Expr) *yaml.Node {
	if len(list) == 0 {
		return nil
	}
	nodes := make([]*yaml.Node, 0, len(list))
	for _, e := range list {
		if e == nil {
			nodes = append(nodes, typedScalar("!!null", "null"))
			continue
		}
		nodes = append(nodes, toYAML(e))
	}
	return sequence(nodes)
}

func toYAML(node Node) *yaml.Node {
	if node == nil || reflect.ValueOf(node).IsNil() {
		return nil
	}

	switch n := node.(type) {
	case *Program:
		m := newMapping("Program")
		nodes := make([]*yaml.Node, 0, len(n.Items))
		for _, item := range n.Items {
			nodes = append(nodes, toYAML(item))
		}
		m.add("items", sequence(nodes))
		return m.node

	case *FuncDecl:
		m := newMapping("FuncDecl")
		m.str("name", n.Name)
		m.add("return_type", toYAML(n.ReturnType))
		params := make([]*yaml.Node, 0, len(n.Params))
		for _, p := range n.Params {
			params = append(params, toYAML(p))
		}
		m.add("params", sequence(params))
		m.add("body", toYAML(n.Body))
		return m.node

	case *Param:
		m := newMapping("Param")
		if n.Name != "" {
			m.str("name", n.Name)
		}
		m.add("type", toYAML(n.Type))
		return m.node

	case *Field:
		m := newMapping("Field")
		m.str("name", n.Name)
		m.add("type", toYAML(n.Type))
		return m.node

	case *TypeRef:
		m := newMapping("TypeRef")
		m.str("name", n.Name)
		m.add("dims", dims(n.Dims))
		return m.node

	case *StructDecl:
		m := newMapping("StructDecl")
		m.str("name", n.Name)
		fields := make([]*yaml.Node, 0, len(n.Fields))
		for _, f := range n.Fields {
			fields = append(fields, toYAML(f))
		}
		m.add("fields", sequence(fields))
		return m.node

	case *VarDecl:
		m := newMapping("VarDecl")
		m.add("type", toYAML(n.Type))
		decls := make([]*yaml.Node, 0, len(n.Declarators))
		for _, d := range n.Declarators {
			decls = append(decls, toYAML(d))
		}
		m.add("declarators", sequence(decls))
		return m.node

	case *Declarator:
		m := newMapping("Declarator")
		m.str("name", n.Name)
		m.add("dims", dims(n.Dims))
		m.add("init", toYAML(n.Init))
		return m.node

	case *DeclStmt:
		m := newMapping("DeclStmt")
		m.add("decl", toYAML(n.Decl))
		return m.node

	case *Block:
		m := newMapping("Block")
		m.add("items", stmtList(n.Items))
		return m.node

	case *IfStmt:
		m := newMapping("If")
		m.add("cond", toYAML(n.Cond))
		m.add("then", toYAML(n.Then))
		m.add("else", toYAML(n.Else))
		return m.node

	case *WhileStmt:
		m := newMapping("While")
		m.add("cond", toYAML(n.Cond))
		m.add("body", toYAML(n.Body))
		return m.node

	case *DoWhileStmt:
		m := newMapping("DoWhile")
		m.add("body", toYAML(n.Body))
		m.add("cond", toYAML(n.Cond))
		return m.node

	case *ForStmt:
		m := newMapping("For")
		m.add("init", toYAML(n.Init))
		m.add("cond", toYAML(n.Cond))
		m.add("post", toYAML(n.Post))
		m.add("body", toYAML(n.Body))
		return m.node

	case *SwitchStmt:
		m := newMapping("Switch")
		m.add("tag", toYAML(n.Tag))
		cases := make([]*yaml.Node, 0, len(n.Cases))
		for _, c := range n.Cases {
			cases = append(cases, toYAML(c))
		}
		m.add("cases", sequence(cases))
		m.add("default", toYAML(n.Default))
		return m.node

	case *CaseClause:
		m := newMapping("Case")
		m.add("value", toYAML(n.Value))
		m.add("body", stmtList(n.Body))
		return m.node

	case *DefaultClause:
		m := newMapping("Default")
		m.add("body", stmtList(n.Body))
		return m.node

	case *ReturnStmt:
		m := newMapping("Return")
		m.add("expr", toYAML(n.Value))
		return m.node

	case *BreakStmt:
		return newMapping("Break").node

	case *ContinueStmt:
		return newMapping("Continue").node

	case *ExprStmt:
		m := newMapping("ExprStmt")
		m.add("expr", toYAML(n.X))
		return m.node

	case *Literal:
		m := newMapping("Literal")
		m.str("lit", n.Kind.String())
		m.str("raw", n.Raw)
		switch n.Kind {
		case LitInt:
			m.str("type", n.Num.Kind.String())
			m.add("value", typedScalar("!!int", strconv.FormatUint(n.Num.Int, 10)))
		case LitFloat:
			m.str("type", n.Num.Kind.String())
			m.add("value", typedScalar("!!float", strconv.FormatFloat(n.Num.Float, 'g', -1, 64)))
		case LitString:
			m.str("value", n.Str)
		case LitChar:
			m.str("value", string(n.Char))
		}
		return m.node

	case *Ident:
		m := newMapping("Ident")
		m.str("name", n.Name)
		return m.node

	case *Unary:
		m := newMapping("Unary")
		m.str("op", n.Op.String())
		m.add("expr", toYAML(n.X))
		return m.node

	case *Binary:
		m := newMapping("Binary")
		m.str("op", n.Op.String())
		m.add("left", toYAML(n.Left))
		m.add("right", toYAML(n.Right))
		return m.node

	case *Ternary:
		m := newMapping("Ternary")
		m.add("cond", toYAML(n.Cond))
		m.add("then", toYAML(n.Then))
		m.add("else", toYAML(n.Else))
		return m.node

	case *Assign:
		m := newMapping("Assign")
		m.str("op", n.Op.String())
		m.add("left", toYAML(n.Target))
		m.add("right", toYAML(n.Value))
		return m.node

	case *Call:
		m := newMapping("Call")
		m.add("func", toYAML(n.Func))
		m.add("args", exprList(n.Args))
		return m.node

	case *Index:
		m := newMapping("Index")
		m.add("array", toYAML(n.Array))
		m.add("index", toYAML(n.Index))
		return m.node

	case *Member:
		m := newMapping("Member")
		m.add("expr", toYAML(n.X))
		m.str("name", n.Name)
		return m.node

	case *PreIncDec:
		m := newMapping("PreIncDec")
		m.str("op", n.Op.String())
		m.add("expr", toYAML(n.X))
		return m.node

	case *PostIncDec:
		m := newMapping("PostIncDec")
		m.str("op", n.Op.String())
		m.add("expr", toYAML(n.X))
		return m.node

	case *ArrayLit:
		m := newMapping("ArrayLit")
		m.add("elems", exprList(n.Elems))
		return m.node
	}

	return typedScalar("!!str", fmt.Sprintf("<unknown %T>", node))
}
