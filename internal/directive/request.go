package directive

import (
	"strings"

	"derive-generator/internal/diagnostic"
	"derive-generator/internal/match"
)

// ConstraintKind tells how a generic constraint entry is turned into a bound.
type ConstraintKind int

const (
	// ConstraintAuto binds the type to the capability being generated.
	ConstraintAuto ConstraintKind = iota
	// ConstraintCustom uses the user-supplied constraint verbatim.
	ConstraintCustom
)

// GenericConstraint is one entry of the bound list.
type GenericConstraint struct {
	Kind ConstraintKind
	// Type is the constrained type expression, e.g. "T".
	Type string
	// Constraint is the verbatim constraint for ConstraintCustom entries.
	Constraint string
	// Span covers the whole entry.
	Span diagnostic.Span
}

// Request is a parsed derive directive.
type Request struct {
	// Constraints is nil when the directive has no bound list; the type then
	// opts out of automatic bounds entirely.
	Constraints []GenericConstraint
	// Capabilities are in directive order with repeats removed.
	Capabilities []Capability
}

// HasConstraints reports whether the directive carried a bound list.
func (r *Request) HasConstraints() bool {
	return r.Constraints != nil
}

// Parse parses a derive directive.
func Parse(text string) (*Request, error) {
	tokens, err := Lex(text)
	if err != nil {
		return nil, err
	}

	p := &parser{text: text, tokens: tokens}

	caps, listErr := p.capabilityList()
	if listErr == nil && p.peek().Kind == TokenEOF {
		return &Request{Capabilities: caps}, nil
	}

	if listErr == nil {
		listErr = diagnostic.Syntax(p.peek().Span(), "expected %q or end of directive, found %s", ",", describe(p.peek()))
	}

	p.pos = 0

	req, boundErr := p.boundsThenCapabilities()
	if boundErr == nil {
		return req, nil
	}

	// Without a top-level ";" or ":" the input can only have been meant as a
	// plain capability list, so that attempt's error is the one to report.
	if !hasBoundMarker(tokens) {
		return nil, listErr
	}

	return nil, boundErr
}

type parser struct {
	text   string
	tokens []Token
	pos    int
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) next() Token {
	t := p.tokens[p.pos]
	if t.Kind != TokenEOF {
		p.pos++
	}

	return t
}

// capabilityList parses capability ("," capability)*.
func (p *parser) capabilityList() ([]Capability, error) {
	var (
		caps []Capability
		seen = make(map[Capability]bool)
	)

	for {
		tok := p.next()
		if tok.Kind != TokenIdent {
			return nil, diagnostic.Syntax(tok.Span(), "expected capability, found %s", describe(tok))
		}

		c, ok := ParseCapability(tok.Text)
		if !ok {
			err := diagnostic.UnsupportedCapability(tok.Span(), tok.Text)
			err.Message += match.Hint(tok.Text, capabilityNames())

			return nil, err
		}

		if !seen[c] {
			seen[c] = true
			caps = append(caps, c)
		}

		if p.peek().Kind != TokenComma {
			return caps, nil
		}

		p.next()
	}
}

// boundsThenCapabilities parses bound ("," bound)* ";" capability-list.
func (p *parser) boundsThenCapabilities() (*Request, error) {
	var constraints []GenericConstraint

	for {
		gc, err := p.bound()
		if err != nil {
			return nil, err
		}

		constraints = append(constraints, gc)

		if p.peek().Kind != TokenComma {
			break
		}

		p.next()
	}

	if tok := p.next(); tok.Kind != TokenSemicolon {
		return nil, diagnostic.Syntax(tok.Span(), "expected %q, found %s", ";", describe(tok))
	}

	caps, err := p.capabilityList()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.Kind != TokenEOF {
		return nil, diagnostic.Syntax(tok.Span(), "expected %q or end of directive, found %s", ",", describe(tok))
	}

	return &Request{Constraints: constraints, Capabilities: caps}, nil
}

// bound parses `type` or `type ":" constraint`.
func (p *parser) bound() (GenericConstraint, error) {
	typ, typSpan, err := p.expr(TokenColon)
	if err != nil {
		return GenericConstraint{}, err
	}

	if p.peek().Kind != TokenColon {
		return GenericConstraint{Kind: ConstraintAuto, Type: typ, Span: typSpan}, nil
	}

	p.next()

	constraint, cSpan, err := p.expr()
	if err != nil {
		return GenericConstraint{}, err
	}

	return GenericConstraint{
		Kind:       ConstraintCustom,
		Type:       typ,
		Constraint: constraint,
		Span:       diagnostic.NewSpan(SourceName, typSpan.Start, cSpan.End),
	}, nil
}

// expr consumes a non-empty, bracket-balanced token run up to the next
// top-level "," or ";" (or any of the extra stop kinds) and returns its
// verbatim source text.
func (p *parser) expr(stops ...TokenKind) (string, diagnostic.Span, error) {
	start := p.peek()
	depth := 0
	end := start.Start

	for {
		tok := p.peek()

		if depth == 0 && isStop(tok.Kind, stops) {
			break
		}

		switch tok.Kind {
		case TokenEOF:
			if depth > 0 {
				return "", diagnostic.Span{}, diagnostic.Syntax(tok.Span(), "unclosed bracket")
			}
		case TokenOpen:
			depth++
		case TokenClose:
			if depth == 0 {
				return "", diagnostic.Span{}, diagnostic.Syntax(tok.Span(), "unexpected %q", tok.Text)
			}

			depth--
		}

		if tok.Kind == TokenEOF {
			break
		}

		end = tok.End
		p.next()
	}

	if end == start.Start {
		return "", diagnostic.Span{}, diagnostic.Syntax(start.Span(), "expected type, found %s", describe(start))
	}

	return strings.TrimSpace(p.text[start.Start:end]), diagnostic.NewSpan(SourceName, start.Start, end), nil
}

func isStop(kind TokenKind, extra []TokenKind) bool {
	if kind == TokenComma || kind == TokenSemicolon {
		return true
	}

	for _, k := range extra {
		if kind == k {
			return true
		}
	}

	return false
}

func hasBoundMarker(tokens []Token) bool {
	depth := 0

	for _, t := range tokens {
		switch t.Kind {
		case TokenOpen:
			depth++
		case TokenClose:
			depth--
		case TokenSemicolon, TokenColon:
			if depth == 0 {
				return true
			}
		}
	}

	return false
}

func describe(t Token) string {
	if t.Kind == TokenEOF {
		return "end of directive"
	}

	return "\"" + t.Text + "\""
}
