package query

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenType represents the type of a token in a filter expression.
type TokenType int

const (
	// Keywords
	TokenContains TokenType = iota
	TokenNot
	TokenIn

	// Operators
	TokenEqual        // == or =
	TokenNotEqual     // !=
	TokenLess         // <
	TokenGreater      // >
	TokenLessEqual    // <=
	TokenGreaterEqual // >=

	// Literals
	TokenString // quoted string
	TokenWord   // bare word: identifier, number, or date

	// Delimiters
	TokenComma      // ,
	TokenLeftParen  // (
	TokenRightParen // )

	// Special
	TokenEOF
	TokenError
)

// Token represents a lexical token.
type Token struct {
	Type  TokenType
	Value string
}

// Lexer tokenizes filter expression strings.
type Lexer struct {
	input string
	pos   int
	ch    rune
}

// NewLexer creates a new lexer.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar reads the next rune, advancing by its encoded width so that
// multibyte UTF-8 input survives intact.
func (l *Lexer) readChar() {
	if l.pos >= len(l.input) {
		l.ch = 0
		l.pos++
		return
	}
	r, width := utf8.DecodeRuneInString(l.input[l.pos:])
	l.ch = r
	l.pos += width
}

// peekChar looks at the next rune without advancing.
func (l *Lexer) peekChar() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

// skipWhitespace skips whitespace characters.
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// readString reads a quoted string. The second return value is false when
// the input ends before the closing quote.
func (l *Lexer) readString(quote rune) (string, bool) {
	var result strings.Builder
	l.readChar() // skip opening quote

	for l.ch != quote && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				result.WriteRune('\n')
			case 't':
				result.WriteRune('\t')
			case '\\':
				result.WriteRune('\\')
			case quote:
				result.WriteRune(quote)
			default:
				result.WriteRune(l.ch)
			}
		} else {
			result.WriteRune(l.ch)
		}
		l.readChar()
	}

	if l.ch != quote {
		return result.String(), false
	}
	l.readChar() // skip closing quote
	return result.String(), true
}

// readWord reads a bare word: column names, numbers, and dates. Dashes,
// dots, slashes, and colons stay inside the word so that values like
// 2024-01-02 or 3.5 lex as a single token.
func (l *Lexer) readWord() string {
	var result strings.Builder
	for unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch) ||
		l.ch == '_' || l.ch == '.' || l.ch == '-' || l.ch == '/' || l.ch == ':' {
		result.WriteRune(l.ch)
		l.readChar()
	}
	return result.String()
}

// NextToken returns the next token.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	var tok Token

	switch l.ch {
	case 0:
		tok = Token{Type: TokenEOF, Value: ""}
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
		}
		tok = Token{Type: TokenEqual, Value: "=="}
		l.readChar()
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: TokenNotEqual, Value: "!="}
			l.readChar()
		} else {
			tok = Token{Type: TokenError, Value: "!"}
			l.readChar()
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: TokenLessEqual, Value: "<="}
			l.readChar()
		} else {
			tok = Token{Type: TokenLess, Value: "<"}
			l.readChar()
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: TokenGreaterEqual, Value: ">="}
			l.readChar()
		} else {
			tok = Token{Type: TokenGreater, Value: ">"}
			l.readChar()
		}
	case '\'', '"':
		quote := l.ch
		value, closed := l.readString(quote)
		if closed {
			tok = Token{Type: TokenString, Value: value}
		} else {
			tok = Token{Type: TokenError, Value: value}
		}
	case ',':
		tok = Token{Type: TokenComma, Value: ","}
		l.readChar()
	case '(':
		tok = Token{Type: TokenLeftParen, Value: "("}
		l.readChar()
	case ')':
		tok = Token{Type: TokenRightParen, Value: ")"}
		l.readChar()
	default:
		if unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch) || l.ch == '_' || l.ch == '-' || l.ch == '.' {
			value := l.readWord()
			if value == "" || value == "-" {
				tok = Token{Type: TokenError, Value: value}
			} else {
				tok = Token{Type: wordType(value), Value: value}
			}
		} else {
			tok = Token{Type: TokenError, Value: string(l.ch)}
			l.readChar()
		}
	}

	return tok
}

// wordType determines if a bare word is a keyword.
func wordType(word string) TokenType {
	switch strings.ToLower(word) {
	case "contains":
		return TokenContains
	case "not":
		return TokenNot
	case "in":
		return TokenIn
	default:
		return TokenWord
	}
}

// Tokenize returns all tokens from the input.
func Tokenize(input string) []Token {
	lexer := NewLexer(input)
	var tokens []Token

	for {
		tok := lexer.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF || tok.Type == TokenError {
			break
		}
	}

	return tokens
}
