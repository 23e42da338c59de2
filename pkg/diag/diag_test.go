package diag

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/raymyers/charlang/pkg/parser"
)

func render(t *testing.T, src string, opts Options) string {
	t.Helper()
	_, err := parser.Parse(src)
	if err == nil {
		t.Fatalf("expected %q to fail", src)
	}
	var buf bytes.Buffer
	if err := Render(&buf, "test.c", src, err, opts); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestRenderParseError(t *testing.T) {
	got := render(t, "if (x { }", Options{Color: ColorNever})
	want := "test.c:1:7: error[ExpectedToken]: expected ')', got '{'\n" +
		"1 | if (x { }\n" +
		"  |       ^\n"
	if got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestRenderLexError(t *testing.T) {
	got := render(t, "x = 1;\ns = \"abc", Options{Color: ColorNever})
	want := "test.c:2:5: error[UnterminatedString]: unterminated string literal\n" +
		"2 | s = \"abc\n" +
		"  |     ^\n"
	if got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestRenderContextLines(t *testing.T) {
	src := "fn main() {\n\tint x;\n\treturn x\n}\n"
	got := render(t, src, Options{Color: ColorNever, ContextLines: 2})
	want := "test.c:4:1: error[ExpectedToken]: expected ';', got '}'\n" +
		"2 | \tint x;\n" +
		"3 | \treturn x\n" +
		"4 | }\n" +
		"  | ^\n"
	if got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestRenderKeepsTabsBeforeCaret(t *testing.T) {
	got := render(t, "fn f() {\n\tx = @;\n}", Options{Color: ColorNever})
	if !strings.HasSuffix(got, "  | \t    ^\n") {
		t.Errorf("caret line should keep the tab:\n%q", got)
	}
}

func TestRenderAtEndOfInput(t *testing.T) {
	got := render(t, "f(1\n", Options{Color: ColorNever})
	want := "test.c:2:1: error[UnmatchedBracket]: unmatched '(' opened at 1:2: expected ')', got end of input\n" +
		"2 | \n" +
		"  | ^\n"
	if got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestRenderWithoutPosition(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, "test.c", "", errors.New("read failed"), Options{Color: ColorNever}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := buf.String(); got != "test.c: error: read failed\n" {
		t.Errorf("got %q", got)
	}
}

func TestRenderColor(t *testing.T) {
	got := render(t, "if (x { }", Options{Color: ColorAlways})
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected ANSI escapes in %q", got)
	}
	if !strings.Contains(got, "if (x { }") {
		t.Errorf("source line missing from %q", got)
	}

	plain := render(t, "if (x { }", Options{Color: ColorNever})
	if strings.Contains(plain, "\x1b[") {
		t.Errorf("unexpected ANSI escapes in %q", plain)
	}
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in   string
		want ColorMode
		ok   bool
	}{
		{"auto", ColorAuto, true},
		{"", ColorAuto, true},
		{"always", ColorAlways, true},
		{"never", ColorNever, true},
		{"rainbow", ColorAuto, false},
	}
	for _, tt := range tests {
		got, err := ParseColorMode(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseColorMode(%q) = %v, %v", tt.in, got, err)
		}
	}
}
