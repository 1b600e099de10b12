package query

import (
	"fmt"

	"github.com/colsift/colsift/table"
)

// KindLookup resolves a column name to its kind in the loaded table.
// The second return value is false for unknown columns.
type KindLookup func(column string) (table.Kind, bool)

// ParsePredicate parses one filter expression into a validated Predicate.
//
// Supported forms:
//
//	age >= 30
//	signup_date < 2024-01-01
//	city == "New York"
//	city contains ny
//	name not contains bob
//	city in (NYC, LA, "San Francisco")
//	city not in (NYC, LA)
//
// The column's kind, resolved through kinds, decides which operators are
// legal; errors from validation wrap ErrInvalidPredicate.
func ParsePredicate(input string, kinds KindLookup) (Predicate, error) {
	p := &predicateParser{tokens: Tokenize(input)}

	column, err := p.parseColumn()
	if err != nil {
		return Predicate{}, err
	}

	kind, ok := kinds(column)
	if !ok {
		return Predicate{}, fmt.Errorf("unknown column %q", column)
	}

	op, err := p.parseOperator()
	if err != nil {
		return Predicate{}, err
	}

	var value interface{}
	if op == In || op == NotIn {
		value, err = p.parseSet()
	} else {
		value, err = p.parseScalar()
	}
	if err != nil {
		return Predicate{}, err
	}

	if err := p.expectEOF(); err != nil {
		return Predicate{}, err
	}

	return NewPredicate(column, op, value, kind)
}

type predicateParser struct {
	tokens []Token
	pos    int
}

// current returns the token at the parse position.
func (p *predicateParser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

// advance consumes and returns the current token.
func (p *predicateParser) advance() Token {
	tok := p.current()
	p.pos++
	return tok
}

func (p *predicateParser) parseColumn() (string, error) {
	tok := p.advance()
	switch tok.Type {
	case TokenWord, TokenString:
		return tok.Value, nil
	default:
		return "", fmt.Errorf("expected column name, got %q", tok.Value)
	}
}

func (p *predicateParser) parseOperator() (Op, error) {
	tok := p.advance()
	switch tok.Type {
	case TokenEqual:
		return Eq, nil
	case TokenNotEqual:
		return Ne, nil
	case TokenLess:
		return Lt, nil
	case TokenLessEqual:
		return Le, nil
	case TokenGreater:
		return Gt, nil
	case TokenGreaterEqual:
		return Ge, nil
	case TokenContains:
		return Contains, nil
	case TokenIn:
		return In, nil
	case TokenNot:
		next := p.advance()
		switch next.Type {
		case TokenContains:
			return NotContains, nil
		case TokenIn:
			return NotIn, nil
		default:
			return 0, fmt.Errorf("expected 'contains' or 'in' after 'not', got %q", next.Value)
		}
	default:
		return 0, fmt.Errorf("expected operator, got %q", tok.Value)
	}
}

// parseScalar reads a single value token. Bare words stay strings; operand
// coercion to the column's native type happens at evaluation time.
func (p *predicateParser) parseScalar() (interface{}, error) {
	tok := p.advance()
	switch tok.Type {
	case TokenWord, TokenString:
		return tok.Value, nil
	default:
		return nil, fmt.Errorf("expected value, got %q", tok.Value)
	}
}

// parseSet reads a parenthesized, comma-separated list of values.
func (p *predicateParser) parseSet() (interface{}, error) {
	if tok := p.advance(); tok.Type != TokenLeftParen {
		return nil, fmt.Errorf("expected '(' after in, got %q", tok.Value)
	}

	var values []string
	for {
		tok := p.advance()
		switch tok.Type {
		case TokenWord, TokenString:
			values = append(values, tok.Value)
		case TokenRightParen:
			if len(values) == 0 {
				return values, nil
			}
			return nil, fmt.Errorf("expected value, got ')'")
		default:
			return nil, fmt.Errorf("expected value in set, got %q", tok.Value)
		}

		tok = p.advance()
		switch tok.Type {
		case TokenComma:
			continue
		case TokenRightParen:
			return values, nil
		default:
			return nil, fmt.Errorf("expected ',' or ')', got %q", tok.Value)
		}
	}
}

func (p *predicateParser) expectEOF() error {
	if tok := p.current(); tok.Type != TokenEOF {
		return fmt.Errorf("unexpected trailing input %q", tok.Value)
	}
	return nil
}
