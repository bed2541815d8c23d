package lang

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"

	"github.com/nilsblix/chirp/log"
)

// Parser produces one Expression per call from a source buffer using
// recursive descent. Create one with NewParser; the same parser is reused
// for every top-level expression in the buffer.
type Parser struct {
	lex    Lexer
	source string
	logger log.Logger
}

// ParseOption configures a Parser.
type ParseOption func(*Parser)

// WithSourceName attaches a symbolic name to token locations and parse
// errors (typically a file name).
func WithSourceName(name string) ParseOption {
	return func(p *Parser) {
		p.lex.loc.Name = name
	}
}

// WithParseLogger sets the structured logger for trace-level diagnostics.
// The zero logger is a no-op.
func WithParseLogger(logger log.Logger) ParseOption {
	return func(p *Parser) {
		p.logger = logger
	}
}

// NewParser returns a parser over the given source text.
func NewParser(source string, opts ...ParseOption) *Parser {
	p := &Parser{
		lex:    NewLexer(source),
		source: source,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Next parses and returns the next top-level expression. The outcome is
// three-way:
//
//   - (nil, ErrEndOfInput) when the buffer holds no more expressions;
//   - (expr, nil) on success;
//   - (nil, *ParseError) on malformed input.
//
// Malformed input is always representable as data; Next never panics on
// bad source text. Per the stop-at-first-error policy, callers should not
// invoke Next again after a *ParseError.
func (p *Parser) Next(ctx context.Context) (*Expression, error) {
	tok := p.lex.Next()
	if tok.Kind == TokenEnd {
		return nil, ErrEndOfInput
	}

	expr, err := p.parseExpression(tok)
	if err != nil {
		return nil, err
	}

	p.logger.TraceContext(ctx, "parsed expression",
		slog.String("kind", expr.Kind.String()),
		slog.String("location", tok.Loc.String()),
	)

	return expr, nil
}

// errorf builds a ParseError at the given location with the parser's
// source attached for caret snippets.
func (p *Parser) errorf(loc Location, msg string) *ParseError {
	err := NewParseError(loc, msg)
	err.Source = p.source

	return err
}

// errorAt builds a ParseError describing an unexpected token.
func (p *Parser) errorAt(tok Token, msg string) *ParseError {
	if tok.Kind == TokenIllegal && len(tok.Text) > 0 &&
		classTable[tok.Text[0]] == classQuote {
		return p.errorf(tok.Loc, "unterminated string literal")
	}

	return p.errorf(tok.Loc, msg)
}

// peek returns the next token without consuming it. The lexer is a value
// type, so saving and restoring it snapshots the cursor.
func (p *Parser) peek() Token {
	saved := p.lex
	tok := p.lex.Next()
	p.lex = saved

	return tok
}

// parseExpression parses one expression whose first token has already been
// consumed.
//
//	expression := NUM | STRING | SYMBOL ( '(' arglist ')' )?
func (p *Parser) parseExpression(tok Token) (*Expression, error) {
	switch tok.Kind {
	case TokenNumber:
		v, err := strconv.ParseUint(tok.Text, 10, 64)
		if err != nil {
			return nil, p.errorf(tok.Loc, "invalid integer literal "+
				strconv.Quote(tok.Text))
		}

		return NewInt(v), nil

	case TokenString:
		return NewString(tok.Text), nil

	case TokenSymbol:
		return p.parseSymbol(tok)

	case TokenIllegal:
		return nil, p.errorAt(tok, "illegal token")

	default:
		return nil, p.errorAt(tok,
			"expected expression, found "+tok.Kind.String())
	}
}

// parseSymbol disambiguates a bare variable reference from a function call
// by peeking one token past the symbol without consuming it.
func (p *Parser) parseSymbol(sym Token) (*Expression, error) {
	next := p.peek()

	switch next.Kind {
	case TokenOpenParen:
		p.lex.Next() // consume "("

		return p.parseCall(sym)

	case TokenCloseParen, TokenComma, TokenEnd:
		// The delimiter belongs to the enclosing argument list (or to
		// nobody, at end of input); leave it unconsumed.
		return NewVar(sym.Text), nil

	case TokenIllegal:
		return nil, p.errorAt(next, "illegal token")

	default:
		// Implicit juxtaposition is rejected: a symbol, string, or number
		// directly after a bare symbol has no meaning in the grammar.
		return nil, p.errorAt(next,
			"two non-function-calls cannot follow each other")
	}
}

// parseCall parses the argument list of a call whose name and opening
// paren have been consumed.
//
//	arglist := (expression (',' expression)*)?
func (p *Parser) parseCall(sym Token) (*Expression, error) {
	args := []*Expression{}

	// Empty argument list: name()
	if next := p.peek(); next.Kind == TokenCloseParen {
		p.lex.Next()

		return NewCall(sym.Text, args...), nil
	}

	for {
		tok := p.lex.Next()

		switch tok.Kind {
		case TokenComma:
			return nil, p.errorf(tok.Loc, "expected expression before \",\"")

		case TokenCloseParen:
			return nil, p.errorf(tok.Loc, "expected expression before \")\"")

		case TokenEnd:
			return nil, p.errorf(tok.Loc,
				"unexpected end of input in argument list of "+
					strconv.Quote(sym.Text))
		}

		arg, err := p.parseExpression(tok)
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		sep := p.lex.Next()

		switch sep.Kind {
		case TokenComma:
			continue

		case TokenCloseParen:
			return NewCall(sym.Text, args...), nil

		case TokenEnd:
			return nil, p.errorf(sep.Loc,
				"unexpected end of input in argument list of "+
					strconv.Quote(sym.Text))

		default:
			return nil, p.errorAt(sep,
				"expected \",\" or \")\" in argument list, found "+
					sep.Kind.String())
		}
	}
}

// ParseString parses every expression in the input and returns them in
// order. It stops at the first syntax error.
func ParseString(
	ctx context.Context,
	input string,
	opts ...ParseOption,
) ([]*Expression, error) {
	p := NewParser(input, opts...)

	var exprs []*Expression

	for {
		expr, err := p.Next(ctx)
		if err != nil {
			if errors.Is(err, ErrEndOfInput) {
				return exprs, nil
			}

			return exprs, err
		}

		exprs = append(exprs, expr)
	}
}

// ParseReader reads all of r and parses it like ParseString.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...ParseOption,
) ([]*Expression, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, WrapError(err)
	}

	return ParseString(ctx, string(data), opts...)
}
