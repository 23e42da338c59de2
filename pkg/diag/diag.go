// Package diag renders lexer and parser errors against the source text.
package diag

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/raymyers/charlang/pkg/lexer"
	"github.com/raymyers/charlang/pkg/parser"
)

// ColorMode selects whether output is styled.
type ColorMode int

const (
	ColorAuto ColorMode = iota // style when w is a terminal
	ColorAlways
	ColorNever
)

// ParseColorMode maps "auto", "always" or "never" to a ColorMode.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("unknown color mode %q", s)
}

// Options controls rendering.
type Options struct {
	Color ColorMode
	// ContextLines is the number of source lines shown above the
	// offending one.
	ContextLines int
}

var (
	colorError  = lipgloss.Color("#EF4444") // Red
	colorAccent = lipgloss.Color("#F59E0B") // Amber
	colorMuted  = lipgloss.Color("#6B7280") // Gray
)

type styles struct {
	plain    bool
	location lipgloss.Style
	label    lipgloss.Style
	message  lipgloss.Style
	gutter   lipgloss.Style
	caret    lipgloss.Style
}

func newStyles(w io.Writer, mode ColorMode) styles {
	if mode == ColorNever {
		return styles{plain: true}
	}
	r := lipgloss.NewRenderer(w)
	if mode == ColorAlways {
		r.SetColorProfile(termenv.ANSI256)
	}
	return styles{
		location: r.NewStyle().Bold(true),
		label:    r.NewStyle().Foreground(colorError).Bold(true),
		message:  r.NewStyle().Bold(true),
		gutter:   r.NewStyle().Foreground(colorMuted),
		caret:    r.NewStyle().Foreground(colorAccent).Bold(true),
	}
}

func (s styles) paint(style lipgloss.Style, text string) string {
	if s.plain {
		return text
	}
	return style.Render(text)
}

// Render writes err as
//
//	file:line:col: error[Kind]: message
//
// followed by the offending source line and a caret under the column.
// Errors without a position are written on a single line.
func Render(w io.Writer, filename, src string, err error, opts Options) error {
	st := newStyles(w, opts.Color)

	pos, ok := parser.ErrorPos(err)
	if !ok {
		_, werr := fmt.Fprintf(w, "%s: %s %s\n",
			st.paint(st.location, filename), st.paint(st.label, "error:"), st.paint(st.message, err.Error()))
		return werr
	}

	label := "error"
	if kind := parser.ErrorKindName(err); kind != "" {
		label = fmt.Sprintf("error[%s]", kind)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n",
		st.paint(st.location, fmt.Sprintf("%s:%d:%d:", filename, pos.Line, pos.Column)),
		st.paint(st.label, label+":"),
		st.paint(st.message, message(err)))

	lines := strings.Split(src, "\n")
	if pos.Line >= 1 && pos.Line <= len(lines) {
		first := max(pos.Line-opts.ContextLines, 1)
		width := len(fmt.Sprint(pos.Line))
		for n := first; n <= pos.Line; n++ {
			line := strings.TrimSuffix(lines[n-1], "\r")
			fmt.Fprintf(&b, "%s%s\n", st.paint(st.gutter, fmt.Sprintf("%*d | ", width, n)), line)
		}
		line := lines[pos.Line-1]
		fmt.Fprintf(&b, "%s%s%s\n",
			st.paint(st.gutter, strings.Repeat(" ", width)+" | "),
			caretPad(line, pos.Column),
			st.paint(st.caret, "^"))
	}

	_, werr := io.WriteString(w, b.String())
	return werr
}

// message returns the error text without its position prefix.
func message(err error) string {
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return lexErr.Msg
	}
	var parseErr *parser.Error
	if errors.As(err, &parseErr) {
		return parseErr.Msg
	}
	return err.Error()
}

// caretPad returns the blanks that put a caret under column col of line,
// keeping tabs so the caret lines up in a terminal.
func caretPad(line string, col int) string {
	var b strings.Builder
	for i := 0; i < col-1; i++ {
		if i < len(line) && line[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
