package parser

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/raymyers/charlang/pkg/ast"
	"github.com/raymyers/charlang/pkg/lexer"
	"gopkg.in/yaml.v3"
)

// TestSpec represents a successful parse case from parse.yaml
type TestSpec struct {
	Name  string `yaml:"name"`
	Input string `yaml:"input"`
	AST   any    `yaml:"ast"`
}

// ErrorSpec represents a failing parse case from parse.yaml
type ErrorSpec struct {
	Name   string `yaml:"name"`
	Input  string `yaml:"input"`
	Kind   string `yaml:"kind"`
	Line   int    `yaml:"line"`
	Column int    `yaml:"column"`
}

// TestFile represents the parse.yaml file structure
type TestFile struct {
	Tests  []TestSpec  `yaml:"tests"`
	Errors []ErrorSpec `yaml:"errors"`
}

func loadTestFile(t *testing.T) TestFile {
	t.Helper()
	data, err := os.ReadFile("../../testdata/parse.yaml")
	if err != nil {
		t.Fatalf("failed to read parse.yaml: %v", err)
	}
	var testFile TestFile
	if err := yaml.Unmarshal(data, &testFile); err != nil {
		t.Fatalf("failed to parse parse.yaml: %v", err)
	}
	return testFile
}

func TestParseYAML(t *testing.T) {
	for _, tc := range loadTestFile(t).Tests {
		t.Run(tc.Name, func(t *testing.T) {
			prog, err := Parse(tc.Input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			var buf bytes.Buffer
			if err := ast.DumpYAML(&buf, prog); err != nil {
				t.Fatalf("dump error: %v", err)
			}
			var got any
			if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
				t.Fatalf("failed to decode dump: %v\n%s", err, buf.String())
			}
			verifyAST(t, "ast", got, tc.AST)
		})
	}
}

// verifyAST checks that got contains everything in want. Mappings only
// need the listed keys and a nil expectation means the key is absent.
func verifyAST(t *testing.T, path string, got, want any) {
	t.Helper()

	switch w := want.(type) {
	case map[string]any:
		g, ok := got.(map[string]any)
		if !ok {
			t.Errorf("%s: expected mapping, got %v", path, got)
			return
		}
		for key, wv := range w {
			gv, present := g[key]
			if wv == nil {
				if present && gv != nil {
					t.Errorf("%s.%s: expected absent, got %v", path, key, gv)
				}
				continue
			}
			if !present {
				t.Errorf("%s.%s: missing", path, key)
				continue
			}
			verifyAST(t, path+"."+key, gv, wv)
		}

	case []any:
		g, ok := got.([]any)
		if !ok {
			t.Errorf("%s: expected sequence, got %v", path, got)
			return
		}
		if len(g) != len(w) {
			t.Errorf("%s: expected %d elements, got %d", path, len(w), len(g))
			return
		}
		for i := range w {
			verifyAST(t, fmt.Sprintf("%s[%d]", path, i), g[i], w[i])
		}

	default:
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: expected %v (%T), got %v (%T)", path, want, want, got, got)
		}
	}
}

func TestParseErrorsYAML(t *testing.T) {
	for _, tc := range loadTestFile(t).Errors {
		t.Run(tc.Name, func(t *testing.T) {
			prog, err := Parse(tc.Input)
			if err == nil {
				t.Fatalf("expected %s error, got program with %d items", tc.Kind, len(prog.Items))
			}
			if prog != nil {
				t.Errorf("expected nil program on error")
			}
			if kind := ErrorKindName(err); kind != tc.Kind {
				t.Errorf("kind: expected %s, got %s (%v)", tc.Kind, kind, err)
			}
			pos, ok := ErrorPos(err)
			if !ok {
				t.Fatalf("error carries no position: %v", err)
			}
			if pos.Line != tc.Line || pos.Column != tc.Column {
				t.Errorf("position: expected %d:%d, got %s (%v)", tc.Line, tc.Column, pos, err)
			}
		})
	}
}

func TestErrorTiers(t *testing.T) {
	_, err := Parse(`s = "abc`)
	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *lexer.Error, got %T", err)
	}

	_, err = Parse("if (x { }")
	var parseErr *Error
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *parser.Error, got %T", err)
	}
	if parseErr.Expected != lexer.TokenRParen {
		t.Errorf("Expected: expected ')', got %s", parseErr.Expected)
	}
	if parseErr.Found.Type != lexer.TokenLBrace {
		t.Errorf("Found: expected '{', got %s", parseErr.Found.Type)
	}
	want := "line 1, col 7: expected ')', got '{'"
	if parseErr.Error() != want {
		t.Errorf("message: expected %q, got %q", want, parseErr.Error())
	}
}

func TestUnmatchedBracketNamesOpener(t *testing.T) {
	_, err := Parse("fn f() {\n  g(1;\n}")
	var parseErr *Error
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *parser.Error, got %v", err)
	}
	if parseErr.Kind != ExpectedToken {
		t.Errorf("kind: expected ExpectedToken, got %s", parseErr.Kind)
	}

	_, err = Parse("fn f() {\n  g(1\n}")
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *parser.Error, got %v", err)
	}
	if parseErr.Kind != UnmatchedBracket {
		t.Fatalf("kind: expected UnmatchedBracket, got %s", parseErr.Kind)
	}
	if !strings.Contains(parseErr.Msg, "opened at 2:4") {
		t.Errorf("message should name the opener: %q", parseErr.Msg)
	}
}

func TestLiteralDecoding(t *testing.T) {
	expr, err := ParseExpression("0x1AuL")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	lit, ok := expr.(*ast.Literal)
	if !ok {
		t.Fatalf("expected *ast.Literal, got %T", expr)
	}
	if lit.Kind != ast.LitInt || lit.Num.Kind != lexer.NumUlong || lit.Num.Int != 26 {
		t.Errorf("expected unsigned long 26, got %s %s %d", lit.Kind, lit.Num.Kind, lit.Num.Int)
	}

	expr, err = ParseExpression(`"a\n\x41"`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	lit = expr.(*ast.Literal)
	if lit.Str != "a\nA" {
		t.Errorf("expected %q, got %q", "a\nA", lit.Str)
	}
	if lit.Raw != `"a\n\x41"` {
		t.Errorf("Raw: expected source text, got %q", lit.Raw)
	}

	expr, err = ParseExpression(`'\''`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if lit = expr.(*ast.Literal); lit.Kind != ast.LitChar || lit.Char != '\'' {
		t.Errorf("expected char literal quote, got %s %q", lit.Kind, lit.Char)
	}
}

func TestParseExpressionTrailingInput(t *testing.T) {
	_, err := ParseExpression("a b")
	var parseErr *Error
	if !errors.As(err, &parseErr) || parseErr.Kind != ExpectedToken {
		t.Fatalf("expected ExpectedToken, got %v", err)
	}
	if parseErr.Pos.Column != 3 {
		t.Errorf("column: expected 3, got %d", parseErr.Pos.Column)
	}
}

func TestAssignmentTargets(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"a = 1", true},
		{"a[i] = 1", true},
		{"s.f += 1", true},
		{"f(x) = 1", true},
		{"(a + b) = c", true},
		{"-a = 1", true},
		{"a + b = c", false},
		{"a ? b : c = d", false},
		{"a || b = c", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseExpression(tt.input)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Errorf("expected error")
			}
		})
	}
}

func TestSpans(t *testing.T) {
	src := "fn main() { return 0; }"
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	fn := prog.Items[0].(*ast.FuncDecl)
	wantFn := ast.Span{
		Start: lexer.Pos{Offset: 0, Line: 1, Column: 1},
		End:   lexer.Pos{Offset: 23, Line: 1, Column: 24},
	}
	if fn.Span() != wantFn {
		t.Errorf("FuncDecl span: expected %v, got %v", wantFn, fn.Span())
	}
	if prog.Span().End != wantFn.End {
		t.Errorf("Program end: expected %v, got %v", wantFn.End, prog.Span().End)
	}

	ret := fn.Body.Items[0].(*ast.ReturnStmt)
	if got := src[ret.Span().Start.Offset:ret.Span().End.Offset]; got != "return 0;" {
		t.Errorf("ReturnStmt span covers %q", got)
	}
	lit := ret.Value.(*ast.Literal)
	if got := src[lit.Span().Start.Offset:lit.Span().End.Offset]; got != "0" {
		t.Errorf("Literal span covers %q", got)
	}
}

// Every node's span must cover exactly the source text of its tokens.
func TestSpansAreContiguous(t *testing.T) {
	src := "int add(int a, int[] b) {\n  x = a + b[0] * 2;\n  return x;\n}\n"
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	ast.Walk(prog, func(n ast.Node) bool {
		sp := n.Span()
		if sp.Start.Offset > sp.End.Offset || sp.End.Offset > len(src) {
			t.Errorf("%T: bad span %v", n, sp)
			return false
		}
		text := src[sp.Start.Offset:sp.End.Offset]
		if _, isProg := n.(*ast.Program); !isProg && strings.TrimSpace(text) != text {
			t.Errorf("%T: span %q has surrounding blanks", n, text)
		}
		return true
	})
}

func TestRoundTrip(t *testing.T) {
	for _, tc := range loadTestFile(t).Tests {
		t.Run(tc.Name, func(t *testing.T) {
			first, err := Parse(tc.Input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}
			printed := ast.String(first)
			second, err := Parse(printed)
			if err != nil {
				t.Fatalf("reparse error: %v\n%s", err, printed)
			}
			if !ast.Equal(first, second) {
				t.Errorf("round trip changed the tree:\n%s", printed)
			}
			if again := ast.String(second); again != printed {
				t.Errorf("printing is not stable:\n%s\n---\n%s", printed, again)
			}
		})
	}
}

func TestRepeatedParsesAreEqual(t *testing.T) {
	src := "fn main() { int i; for (i = 0; i < 3; i++) { f(i); } }"
	a, err := Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	b, err := Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("parsing the same input twice produced different trees")
	}
}

func TestConcurrentParses(t *testing.T) {
	src := "struct P { int x; } fn main() { P p; p.x = 1 + 2 * 3; return p.x; }"
	want, err := Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Parse(src)
			if err != nil {
				errs <- err.Error()
				return
			}
			if !ast.Equal(want, got) {
				errs <- "tree mismatch"
			}
		}()
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Error(msg)
	}
}

// Cutting a valid program anywhere must fail cleanly, and cutting inside
// a string literal must fail in the lexer.
func TestTruncatedPrograms(t *testing.T) {
	src := `fn f() { s = "hello"; return s; }`
	open := strings.Index(src, `"`)
	closing := strings.LastIndex(src, `"`)

	for n := 0; n < len(src); n++ {
		prefix := src[:n]
		_, err := Parse(prefix)
		if n == 0 {
			if err != nil {
				t.Errorf("empty input: unexpected error %v", err)
			}
			continue
		}
		if err == nil {
			t.Errorf("prefix %q: expected error", prefix)
			continue
		}
		if _, ok := ErrorPos(err); !ok {
			t.Errorf("prefix %q: error without position: %v", prefix, err)
		}
		if n > open && n <= closing {
			var lexErr *lexer.Error
			if !errors.As(err, &lexErr) || lexErr.Kind != lexer.UnterminatedString {
				t.Errorf("prefix %q: expected UnterminatedString, got %v", prefix, err)
			}
		}
	}
}

func TestEmptyProgram(t *testing.T) {
	for _, src := range []string{"", "  \n", "// only a comment\n", "/* block */"} {
		prog, err := Parse(src)
		if err != nil {
			t.Errorf("%q: unexpected error %v", src, err)
			continue
		}
		if len(prog.Items) != 0 {
			t.Errorf("%q: expected no items, got %d", src, len(prog.Items))
		}
	}
}

func TestLexErrorOnFirstToken(t *testing.T) {
	_, err := Parse("@")
	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) || lexErr.Kind != lexer.UnexpectedCharacter {
		t.Fatalf("expected UnexpectedCharacter, got %v", err)
	}
}
