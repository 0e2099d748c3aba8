package directive

import (
	"unicode"
	"unicode/utf8"

	"derive-generator/internal/diagnostic"
)

// SourceName labels spans that point into a directive.
const SourceName = "derive"

// TokenKind classifies directive tokens.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIdent
	TokenComma
	TokenSemicolon
	TokenColon
	TokenOpen  // ( [ {
	TokenClose // ) ] }
	TokenPunct // . | ~ *
)

// Token is a lexical token with its byte span in the directive.
type Token struct {
	Kind  TokenKind
	Text  string
	Start int
	End   int
}

// Span returns the token's diagnostic span.
func (t Token) Span() diagnostic.Span {
	return diagnostic.NewSpan(SourceName, t.Start, t.End)
}

// Lex splits a directive into tokens. The result always ends with a
// TokenEOF positioned at the end of the input.
func Lex(text string) ([]Token, error) {
	var tokens []Token

	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])

		switch {
		case unicode.IsSpace(r):
			i += size

		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			start := i
			for i < len(text) {
				r, size = utf8.DecodeRuneInString(text[i:])
				if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}

				i += size
			}

			tokens = append(tokens, Token{Kind: TokenIdent, Text: text[start:i], Start: start, End: i})

		default:
			kind, ok := punctKind(r)
			if !ok {
				return nil, diagnostic.Syntax(diagnostic.NewSpan(SourceName, i, i+size),
					"unexpected character %q", r)
			}

			tokens = append(tokens, Token{Kind: kind, Text: text[i : i+size], Start: i, End: i + size})
			i += size
		}
	}

	return append(tokens, Token{Kind: TokenEOF, Start: len(text), End: len(text)}), nil
}

func punctKind(r rune) (TokenKind, bool) {
	switch r {
	case ',':
		return TokenComma, true
	case ';':
		return TokenSemicolon, true
	case ':':
		return TokenColon, true
	case '(', '[', '{':
		return TokenOpen, true
	case ')', ']', '}':
		return TokenClose, true
	case '.', '|', '~', '*':
		return TokenPunct, true
	default:
		return 0, false
	}
}
