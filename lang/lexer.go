package lang

// byteClass partitions the input alphabet for the scanner. Classification is
// table-driven: each source byte maps to exactly one class, and multi-byte
// tokens extend greedily while consecutive bytes share a class.
type byteClass int

const (
	// classIllegal covers whitespace and every byte with no meaning in the
	// language. The scanner skips these while looking for a token start, so
	// whitespace handling is a side effect of the illegal-byte skip, not a
	// separate phase.
	classIllegal byteClass = iota
	classSymbol
	classDigit
	classQuote
	classOpenParen
	classCloseParen
	classComma
)

// classTable maps each byte value to its class.
var classTable = func() (t [256]byteClass) {
	for b := 'a'; b <= 'z'; b++ {
		t[b] = classSymbol
	}

	for b := 'A'; b <= 'Z'; b++ {
		t[b] = classSymbol
	}

	t['_'] = classSymbol
	t['-'] = classSymbol

	for b := '0'; b <= '9'; b++ {
		t[b] = classDigit
	}

	t['"'] = classQuote
	t['\''] = classQuote
	t['('] = classOpenParen
	t[')'] = classCloseParen
	t[','] = classComma

	return t
}()

// Lexer scans a source buffer into tokens. The zero value is not usable;
// create one with NewLexer. Lexers are cheap value types: copying one
// snapshots the cursor, and assigning a copy back restores it. The parser
// relies on this for single-token lookahead.
type Lexer struct {
	src string
	pos int
	loc Location
}

// NewLexer returns a lexer positioned at the start of src. The optional
// name (the first value, if any) is attached to every token location for
// diagnostics.
func NewLexer(src string, name ...string) Lexer {
	var loc Location
	if len(name) > 0 {
		loc.Name = name[0]
	}

	return Lexer{src: src, loc: loc}
}

// eof reports whether the cursor is past the last byte.
func (l *Lexer) eof() bool {
	return l.pos >= len(l.src)
}

// peekByte returns the byte under the cursor without consuming it.
func (l *Lexer) peekByte() byte {
	return l.src[l.pos]
}

// advance consumes one byte, updating row and column.
func (l *Lexer) advance() {
	l.loc = l.loc.advance(l.src[l.pos])
	l.pos++
}

// Next scans and returns the next token. Bytes in the illegal class are
// consumed silently until a token start is found; at the end of input a
// TokenEnd is returned, repeatedly if called again.
func (l *Lexer) Next() Token {
	for !l.eof() && classTable[l.peekByte()] == classIllegal {
		l.advance()
	}

	if l.eof() {
		return Token{Kind: TokenEnd, Loc: l.loc}
	}

	start := l.pos
	loc := l.loc

	switch classTable[l.peekByte()] {
	case classSymbol:
		l.scanClass(classSymbol)

		return Token{Kind: TokenSymbol, Text: l.src[start:l.pos], Loc: loc}

	case classDigit:
		l.scanClass(classDigit)

		return Token{Kind: TokenNumber, Text: l.src[start:l.pos], Loc: loc}

	case classQuote:
		return l.scanString(loc)

	case classOpenParen:
		l.advance()

		return Token{Kind: TokenOpenParen, Text: l.src[start:l.pos], Loc: loc}

	case classCloseParen:
		l.advance()

		return Token{Kind: TokenCloseParen, Text: l.src[start:l.pos], Loc: loc}

	case classComma:
		l.advance()

		return Token{Kind: TokenComma, Text: l.src[start:l.pos], Loc: loc}
	}

	// Unreachable: classIllegal is consumed by the skip loop above.
	l.advance()

	return Token{Kind: TokenIllegal, Text: l.src[start:l.pos], Loc: loc}
}

// scanClass consumes bytes while they belong to the given class.
func (l *Lexer) scanClass(c byteClass) {
	for !l.eof() && classTable[l.peekByte()] == c {
		l.advance()
	}
}

// scanString consumes a quoted literal starting at the cursor. The closing
// scan accepts any quote-class byte, so a literal opened with one quote
// character is terminated by the first occurrence of either. Escapes are
// not supported. Running off the end of input yields a TokenIllegal whose
// text starts with the opening quote, which the parser reports as an
// unterminated string.
func (l *Lexer) scanString(loc Location) Token {
	open := l.pos
	l.advance() // opening quote

	start := l.pos

	for !l.eof() && classTable[l.peekByte()] != classQuote {
		l.advance()
	}

	if l.eof() {
		return Token{Kind: TokenIllegal, Text: l.src[open:], Loc: loc}
	}

	text := l.src[start:l.pos]
	l.advance() // closing quote

	return Token{Kind: TokenString, Text: text, Loc: loc}
}
