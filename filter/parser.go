package filter

import (
	"strings"

	"github.com/hayspec/haystack-core/zinc"
)

// Parser implements the filter grammar directly over a rune cursor,
// with no separate tokenizing pass:
//
//	filter := or
//	or      := and ("or" and)*
//	and     := cmp ("and" cmp)*
//	cmp     := unary ( ("==" | "!=" | "<" | "<=" | ">" | ">=") scalar )?
//	unary   := "not" unary | "(" filter ")" | path
//	path    := id ("->" id)*
type Parser struct {
	c *cursor
}

// Parse parses a filter expression, rejecting it outright if it exceeds
// MaxExprLen before a single rune is read.
func Parse(expr string) (Expr, error) {
	if len(expr) > MaxExprLen {
		return nil, ErrTooLong
	}
	p := &Parser{c: newCursor(expr)}
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	p.c.skipSpaces()
	if !p.c.eof() {
		return nil, &ParseError{Pos: p.c.pos, Expected: "end of expression"}
	}
	return e, nil
}

func (p *Parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		p.c.skipSpaces()
		if !p.matchKeyword("or") {
			break
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &OrExpr{left, right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (Expr, error) {
	left, err := p.parseCmp()
	if err != nil {
		return nil, err
	}
	for {
		p.c.skipSpaces()
		if !p.matchKeyword("and") {
			break
		}
		right, err := p.parseCmp()
		if err != nil {
			return nil, err
		}
		left = &AndExpr{left, right}
	}
	return left, nil
}

func (p *Parser) parseCmp() (Expr, error) {
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	p.c.skipSpaces()
	op := p.matchCmpOp()
	if op == "" {
		return operand, nil
	}
	path, isPath := operand.(*PathExpr)
	if !isPath {
		return nil, &ParseError{Pos: p.c.pos, Expected: "a path before a comparison operator"}
	}
	p.c.skipSpaces()
	scalarText := p.scanScalarText()
	if strings.TrimSpace(scalarText) == "" {
		return nil, &ParseError{Pos: p.c.pos, Expected: "a scalar literal"}
	}
	v, err := zinc.ParseScalar(strings.TrimSpace(scalarText))
	if err != nil {
		return nil, &ParseError{Pos: p.c.pos, Expected: "a valid scalar literal: " + err.Error()}
	}
	return &CmpExpr{Path: path, Op: op, Rhs: v}, nil
}

func (p *Parser) parseUnary() (Expr, error) {
	p.c.skipSpaces()
	if p.matchKeyword("not") {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &NotExpr{operand}, nil
	}
	if p.c.cur() == '(' {
		p.c.advance()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		p.c.skipSpaces()
		if p.c.cur() != ')' {
			return nil, &ParseError{Pos: p.c.pos, Expected: ")"}
		}
		p.c.advance()
		return inner, nil
	}
	return p.parsePath()
}

func (p *Parser) parsePath() (Expr, error) {
	p.c.skipSpaces()
	if !isIdentStart(p.c.cur()) {
		return nil, &ParseError{Pos: p.c.pos, Expected: "an identifier"}
	}
	segs := []string{p.scanIdent()}
	for {
		save := p.c.pos
		p.c.skipSpaces()
		if p.c.cur() == '-' && p.c.peek(1) == '>' {
			p.c.advance()
			p.c.advance()
			p.c.skipSpaces()
			if !isIdentStart(p.c.cur()) {
				return nil, &ParseError{Pos: p.c.pos, Expected: "an identifier after ->"}
			}
			segs = append(segs, p.scanIdent())
			continue
		}
		p.c.pos = save
		break
	}
	return &PathExpr{Segs: segs}, nil
}

// matchKeyword consumes the identifier at the cursor if it is exactly
// kw, restoring the cursor otherwise so a caller can try another
// alternative.
func (p *Parser) matchKeyword(kw string) bool {
	save := p.c.pos
	if !isIdentStart(p.c.cur()) {
		return false
	}
	id := p.scanIdent()
	if id == kw {
		return true
	}
	p.c.pos = save
	return false
}

func (p *Parser) matchCmpOp() string {
	two := string([]rune{p.c.cur(), p.c.peek(1)})
	switch two {
	case "==", "!=", "<=", ">=":
		p.c.advance()
		p.c.advance()
		return two
	}
	switch p.c.cur() {
	case '<':
		p.c.advance()
		return "<"
	case '>':
		p.c.advance()
		return ">"
	}
	return ""
}

func (p *Parser) scanIdent() string {
	start := p.c.pos
	for !p.c.eof() && isIdentCont(p.c.cur()) {
		p.c.advance()
	}
	return string(p.c.src[start:p.c.pos])
}

// skipQuoted advances past a quoted run opened by delim ('"' or '`'),
// honoring backslash escapes so an escaped delimiter does not end the
// run early. It does not validate the escape grammar — that is
// zinc.ParseScalar's job once the full scalar text is collected.
func (p *Parser) skipQuoted(delim rune) {
	c := p.c
	c.advance() // opening delimiter
	for !c.eof() {
		r := c.advance()
		if r == '\\' && !c.eof() {
			c.advance()
			continue
		}
		if r == delim {
			return
		}
	}
}

// scanScalarText greedily consumes the comparison literal that follows
// a comparison operator. Most literals never contain unescaped
// whitespace, but a Ref's display string and a DateTime's zone name
// both do, so a bare space is only treated as the literal's end when it
// is immediately followed by the "and"/"or" keyword or end of input;
// otherwise scanning continues through it.
func (p *Parser) scanScalarText() string {
	c := p.c
	start := c.pos
	depth := 0
	for !c.eof() {
		r := c.cur()
		switch {
		case r == '"' || r == '`':
			p.skipQuoted(r)
		case r == '(' || r == '[' || r == '{':
			depth++
			c.advance()
		case r == ')' && depth == 0:
			return string(c.src[start:c.pos])
		case r == ')' || r == ']' || r == '}':
			if depth > 0 {
				depth--
			}
			c.advance()
		case isSpace(r) && depth == 0:
			save := c.pos
			c.skipSpaces()
			if p.matchKeyword("and") || p.matchKeyword("or") {
				c.pos = save
				return string(c.src[start:save])
			}
			// Not a keyword boundary: the space belongs to the literal
			// itself (a Ref display string, a DateTime zone name).
		default:
			c.advance()
		}
	}
	return string(c.src[start:c.pos])
}
