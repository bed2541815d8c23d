package lang

import "strconv"

// Location identifies a byte position in a source buffer. Row and Col are
// 0-based; String renders them 1-based for diagnostics.
type Location struct {
	Name string // optional source name, empty for anonymous buffers
	Row  int
	Col  int
}

// String renders the location as "row:col", prefixed with "name:" when a
// source name is set. Row and column are converted to 1-based.
func (l Location) String() string {
	s := strconv.Itoa(l.Row+1) + ":" + strconv.Itoa(l.Col+1)
	if l.Name != "" {
		return l.Name + ":" + s
	}

	return s
}

// advance moves the location past one source byte. A newline resets the
// column and starts a new row.
func (l Location) advance(b byte) Location {
	if b == '\n' {
		l.Row++
		l.Col = 0
	} else {
		l.Col++
	}

	return l
}

// TokenKind identifies the category of a scanned token.
type TokenKind int

const (
	// TokenIllegal is emitted only for an unterminated string literal.
	// Other unclassified bytes (including whitespace) are skipped while
	// scanning for a token start and never surface as tokens.
	TokenIllegal TokenKind = iota

	// TokenEnd marks the end of the input buffer. Every call past the end
	// returns another TokenEnd.
	TokenEnd

	// TokenSymbol is a run of letters, digits, underscores, or hyphens
	// starting with a letter, underscore, or hyphen.
	TokenSymbol

	// TokenNumber is a run of decimal digits.
	TokenNumber

	// TokenString is a quoted literal. Text excludes the delimiters.
	TokenString

	// TokenOpenParen is "(".
	TokenOpenParen

	// TokenCloseParen is ")".
	TokenCloseParen

	// TokenComma is ",".
	TokenComma
)

// String returns a human-readable name for the token kind, used in parse
// error messages.
func (k TokenKind) String() string {
	switch k {
	case TokenIllegal:
		return "illegal"
	case TokenEnd:
		return "end of input"
	case TokenSymbol:
		return "symbol"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenOpenParen:
		return "\"(\""
	case TokenCloseParen:
		return "\")\""
	case TokenComma:
		return "\",\""
	default:
		return "unknown"
	}
}

// Token is a single lexical unit. Text is the exact source slice (for
// strings, without the surrounding quotes). Loc is the position of the
// token's first character.
type Token struct {
	Kind TokenKind
	Text string
	Loc  Location
}
