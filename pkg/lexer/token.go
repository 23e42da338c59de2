package lexer

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota

	// Literals
	TokenIdent  // main, foo, x
	TokenNumber // 42, 0x1Au, 3.5f
	TokenString // "hello"
	TokenChar   // 'a'

	// Keywords
	TokenIf       // if
	TokenElse     // else
	TokenWhile    // while
	TokenFor      // for
	TokenDo       // do
	TokenBreak    // break
	TokenContinue // continue
	TokenReturn   // return
	TokenStruct   // struct
	TokenEnum     // enum
	TokenUnion    // union
	TokenTypedef  // typedef
	TokenSizeof   // sizeof
	TokenSwitch   // switch
	TokenCase     // case
	TokenDefault  // default

	// Operators
	TokenPlus      // +
	TokenMinus     // -
	TokenStar      // *
	TokenSlash     // /
	TokenPercent   // %
	TokenAssign    // =
	TokenEq        // ==
	TokenNe        // !=
	TokenLt        // <
	TokenLe        // <=
	TokenGt        // >
	TokenGe        // >=
	TokenAnd       // &&
	TokenOr        // ||
	TokenNot       // !
	TokenTilde     // ~
	TokenAmpersand // &
	TokenPipe      // |
	TokenCaret     // ^
	TokenQuestion  // ?
	TokenColon     // :

	// Compound assignment operators
	TokenPlusAssign    // +=
	TokenMinusAssign   // -=
	TokenStarAssign    // *=
	TokenSlashAssign   // /=
	TokenPercentAssign // %=
	TokenAndAssign     // &=
	TokenOrAssign      // |=
	TokenXorAssign     // ^=

	// Increment/decrement
	TokenIncrement // ++
	TokenDecrement // --

	// Delimiters
	TokenLParen    // (
	TokenRParen    // )
	TokenLBrace    // {
	TokenRBrace    // }
	TokenLBracket  // [
	TokenRBracket  // ]
	TokenSemicolon // ;
	TokenComma     // ,
	TokenDot       // .
)

var tokenNames = map[TokenType]string{
	TokenEOF:           "EOF",
	TokenIdent:         "IDENT",
	TokenNumber:        "NUMBER",
	TokenString:        "STRING",
	TokenChar:          "CHAR",
	TokenIf:            "if",
	TokenElse:          "else",
	TokenWhile:         "while",
	TokenFor:           "for",
	TokenDo:            "do",
	TokenBreak:         "break",
	TokenContinue:      "continue",
	TokenReturn:        "return",
	TokenStruct:        "struct",
	TokenEnum:          "enum",
	TokenUnion:         "union",
	TokenTypedef:       "typedef",
	TokenSizeof:        "sizeof",
	TokenSwitch:        "switch",
	TokenCase:          "case",
	TokenDefault:       "default",
	TokenPlus:          "+",
	TokenMinus:         "-",
	TokenStar:          "*",
	TokenSlash:         "/",
	TokenPercent:       "%",
	TokenAssign:        "=",
	TokenEq:            "==",
	TokenNe:            "!=",
	TokenLt:            "<",
	TokenLe:            "<=",
	TokenGt:            ">",
	TokenGe:            ">=",
	TokenAnd:           "&&",
	TokenOr:            "||",
	TokenNot:           "!",
	TokenTilde:         "~",
	TokenAmpersand:     "&",
	TokenPipe:          "|",
	TokenCaret:         "^",
	TokenQuestion:      "?",
	TokenColon:         ":",
	TokenPlusAssign:    "+=",
	TokenMinusAssign:   "-=",
	TokenStarAssign:    "*=",
	TokenSlashAssign:   "/=",
	TokenPercentAssign: "%=",
	TokenAndAssign:     "&=",
	TokenOrAssign:      "|=",
	TokenXorAssign:     "^=",
	TokenIncrement:     "++",
	TokenDecrement:     "--",
	TokenLParen:        "(",
	TokenRParen:        ")",
	TokenLBrace:        "{",
	TokenRBrace:        "}",
	TokenLBracket:      "[",
	TokenRBracket:      "]",
	TokenSemicolon:     ";",
	TokenComma:         ",",
	TokenDot:           ".",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// TokenClass is the coarse lexical category of a token type.
type TokenClass int

const (
	ClassEOF TokenClass = iota
	ClassIdentifier
	ClassKeyword
	ClassNumber
	ClassString
	ClassChar
	ClassOperator
	ClassPunctuation
)

func (c TokenClass) String() string {
	names := []string{"EOF", "Identifier", "Keyword", "Number", "String", "Char", "Operator", "Punctuation"}
	if int(c) < len(names) {
		return names[c]
	}
	return "?"
}

// Class reports which lexical category t belongs to.
func (t TokenType) Class() TokenClass {
	switch {
	case t == TokenEOF:
		return ClassEOF
	case t == TokenIdent:
		return ClassIdentifier
	case t == TokenNumber:
		return ClassNumber
	case t == TokenString:
		return ClassString
	case t == TokenChar:
		return ClassChar
	case t >= TokenIf && t <= TokenDefault:
		return ClassKeyword
	case t >= TokenPlus && t <= TokenDecrement:
		return ClassOperator
	default:
		return ClassPunctuation
	}
}

// IsAssignOp reports whether t is `=` or one of the compound assignments.
func (t TokenType) IsAssignOp() bool {
	return t == TokenAssign || (t >= TokenPlusAssign && t <= TokenXorAssign)
}

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string // exact source text of the token
	Pos     Pos

	Num  Number // decoded value of a TokenNumber
	Text string // decoded value of a TokenString or TokenChar
}

// End returns the position just past the token.
// Tokens never span a newline, so only offset and column advance.
func (t Token) End() Pos {
	return Pos{
		Offset: t.Pos.Offset + len(t.Literal),
		Line:   t.Pos.Line,
		Column: t.Pos.Column + len(t.Literal),
	}
}

// keywords maps keyword strings to token types
var keywords = map[string]TokenType{
	"if":       TokenIf,
	"else":     TokenElse,
	"while":    TokenWhile,
	"for":      TokenFor,
	"do":       TokenDo,
	"break":    TokenBreak,
	"continue": TokenContinue,
	"return":   TokenReturn,
	"struct":   TokenStruct,
	"enum":     TokenEnum,
	"union":    TokenUnion,
	"typedef":  TokenTypedef,
	"sizeof":   TokenSizeof,
	"switch":   TokenSwitch,
	"case":     TokenCase,
	"default":  TokenDefault,
}

// LookupIdent returns the token type for an identifier (keyword or IDENT)
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdent
}
