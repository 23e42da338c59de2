package lexer

import "fmt"

// Pos is a location in the source buffer.
// Offset is 0-based; Line and Column are 1-based and Column counts bytes.
// The zero value is an invalid position.
type Pos struct {
	Offset int
	Line   int
	Column int
}

// String returns "line:col".
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
