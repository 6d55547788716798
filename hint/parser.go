package hint

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"darray/expr"
	"darray/tag"
)

// Parsed is the outcome of parsing a "darr" struct tag.
type Parsed struct {
	// Expr is the type expression encoded by the tag.
	Expr expr.Expr
	// Default is the raw default= literal.
	Default string
	// HasDefault reports whether a default= argument was present.
	HasDefault bool
}

// Resolver resolves a class reference name to a concrete type. The empty
// name resolves to the declaring field's own type.
type Resolver func(name string) (reflect.Type, bool)

// ErrParse reports a malformed tag expression.
var ErrParse = errors.New("malformed tag expression")

// Parse parses a "darr" struct tag into a type expression. The tag value
// is a union of role terms, e.g.:
//
//	attr(int)
//	name(string)
//	coord(x, int)
//	data((x, y), float64, name='image')
//	data(x, float64, name=(band, '{{.Label}}'))
//	coord(x, int, default=0) | int
//	coordof(XAxis)
//	attrs(any)
//
// Class references are resolved through resolve when it is non-nil;
// otherwise they stay unresolved, which is sufficient for static checks.
func Parse(s string, resolve Resolver) (Parsed, error) {
	toks, err := scan(s)
	if err != nil {
		return Parsed{}, err
	}

	p := &parser{toks: toks, resolve: resolve}

	x, err := p.union()
	if err != nil {
		return Parsed{}, err
	}

	if p.peek().kind != tokEOF {
		return Parsed{}, fmt.Errorf("%w: unexpected %q", ErrParse, p.peek().text)
	}

	return Parsed{Expr: x, Default: p.def, HasDefault: p.hasDef}, nil
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokNumber
	tokLParen
	tokRParen
	tokComma
	tokPipe
	tokEqual
	tokEllipsis
)

type token struct {
	kind tokenKind
	text string
}

func scan(s string) ([]token, error) {
	var toks []token

	for i := 0; i < len(s); {
		c := s[i]

		switch {
		case c == ' ' || c == '\t':
			i++

		case c == '(':
			toks = append(toks, token{tokLParen, "("})
			i++

		case c == ')':
			toks = append(toks, token{tokRParen, ")"})
			i++

		case c == ',':
			toks = append(toks, token{tokComma, ","})
			i++

		case c == '|':
			toks = append(toks, token{tokPipe, "|"})
			i++

		case c == '=':
			toks = append(toks, token{tokEqual, "="})
			i++

		case strings.HasPrefix(s[i:], "..."):
			toks = append(toks, token{tokEllipsis, "..."})
			i += 3

		case c == '\'' || c == '"':
			end := strings.IndexByte(s[i+1:], c)
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated string", ErrParse)
			}

			toks = append(toks, token{tokString, s[i+1 : i+1+end]})
			i += end + 2

		case c >= '0' && c <= '9' || c == '-' || c == '+':
			j := i + 1
			for j < len(s) && (s[j] >= '0' && s[j] <= '9' || s[j] == '.' || s[j] == 'e' || s[j] == '-' || s[j] == '+') {
				j++
			}

			toks = append(toks, token{tokNumber, s[i:j]})
			i = j

		case isIdentStart(rune(c)):
			j := i + 1
			for j < len(s) && isIdentPart(rune(s[j])) {
				j++
			}

			toks = append(toks, token{tokIdent, s[i:j]})
			i = j

		default:
			return nil, fmt.Errorf("%w: unexpected character %q", ErrParse, c)
		}
	}

	return append(toks, token{tokEOF, ""}), nil
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentPart(r rune) bool {
	// brackets admit dtype names such as datetime64[ns]
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '[' || r == ']'
}

type parser struct {
	toks    []token
	i       int
	resolve Resolver
	def     string
	hasDef  bool
}

func (p *parser) peek() token {
	return p.toks[p.i]
}

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}

	return t
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, fmt.Errorf("%w: expected %s, got %q", ErrParse, what, t.text)
	}

	return t, nil
}

func (p *parser) union() (expr.Expr, error) {
	first, err := p.term()
	if err != nil {
		return nil, err
	}

	members := []expr.Expr{first}
	for p.peek().kind == tokPipe {
		p.next()

		m, err := p.term()
		if err != nil {
			return nil, err
		}

		members = append(members, m)
	}

	if len(members) == 1 {
		return members[0], nil
	}

	return expr.Union{Members: members}, nil
}

func (p *parser) term() (expr.Expr, error) {
	t := p.next()
	switch t.kind {
	case tokIdent:
		switch t.text {
		case "attr", "attrs", "name", "coord", "data", "coordof", "dataof":
			return p.call(t.text)
		}

		return typeAtom(t.text), nil

	case tokString:
		return typeAtom(t.text), nil
	}

	return nil, fmt.Errorf("%w: unexpected %q", ErrParse, t.text)
}

// call parses a role term. The parentheses are optional for roles that
// need no arguments.
func (p *parser) call(role string) (expr.Expr, error) {
	var pos []expr.Expr

	name, hasName := any(nil), false

	if p.peek().kind == tokLParen {
		p.next()

		for p.peek().kind != tokRParen {
			if p.peek().kind == tokIdent && p.toks[p.i+1].kind == tokEqual {
				key := p.next().text
				p.next() // "="

				if err := p.keyword(key, &name, &hasName); err != nil {
					return nil, err
				}
			} else {
				arg, err := p.positional(role, len(pos))
				if err != nil {
					return nil, err
				}

				pos = append(pos, arg)
			}

			if p.peek().kind == tokComma {
				p.next()
				continue
			}

			break
		}

		if _, err := p.expect(tokRParen, ")"); err != nil {
			return nil, err
		}
	}

	x, err := p.build(role, pos)
	if err != nil {
		return nil, err
	}

	if hasName {
		x = WithName(x, name)
	}

	return x, nil
}

func (p *parser) keyword(key string, name *any, hasName *bool) error {
	v := p.next()

	switch key {
	case "name":
		switch v.kind {
		case tokString, tokIdent, tokNumber:
			*name = v.text
		case tokEllipsis:
			*name = expr.Ellipsis
		case tokLParen:
			nt, err := p.nameTuple()
			if err != nil {
				return err
			}

			*name = nt
		default:
			return fmt.Errorf("%w: invalid name value %q", ErrParse, v.text)
		}

		*hasName = true
		return nil

	case "default":
		switch v.kind {
		case tokString, tokIdent, tokNumber:
			p.def = v.text
			p.hasDef = true
			return nil
		}

		return fmt.Errorf("%w: invalid default value %q", ErrParse, v.text)
	}

	return fmt.Errorf("%w: unknown argument %q", ErrParse, key)
}

// nameTuple parses the parenthesized form of a name= value, after the
// opening parenthesis has been consumed.
func (p *parser) nameTuple() (expr.NameTuple, error) {
	var nt expr.NameTuple

	for p.peek().kind != tokRParen {
		v := p.next()
		switch v.kind {
		case tokString, tokIdent, tokNumber:
			nt = append(nt, v.text)
		default:
			return nil, fmt.Errorf("%w: invalid name value %q", ErrParse, v.text)
		}

		if p.peek().kind == tokComma {
			p.next()
			continue
		}

		break
	}

	if _, err := p.expect(tokRParen, ")"); err != nil {
		return nil, err
	}

	return nt, nil
}

func (p *parser) positional(role string, index int) (expr.Expr, error) {
	if role == "coord" || role == "data" {
		if index == 0 {
			return p.dimsArg()
		}

		return p.typeArg()
	}

	return p.typeArg()
}

func (p *parser) dimsArg() (expr.Expr, error) {
	if p.peek().kind != tokLParen {
		t, err := p.expect(tokIdent, "dimension name")
		if err != nil {
			return nil, err
		}

		return expr.Literal{Value: t.text}, nil
	}

	p.next()

	var elems []expr.Expr
	for p.peek().kind != tokRParen {
		e, err := p.dimsArg()
		if err != nil {
			return nil, err
		}

		elems = append(elems, e)

		if p.peek().kind == tokComma {
			p.next()
			continue
		}

		break
	}

	if _, err := p.expect(tokRParen, ")"); err != nil {
		return nil, err
	}

	return expr.Tuple{Elems: elems}, nil
}

func (p *parser) typeArg() (expr.Expr, error) {
	t := p.next()
	if t.kind != tokIdent && t.kind != tokString {
		return nil, fmt.Errorf("%w: expected type name, got %q", ErrParse, t.text)
	}

	return typeAtom(t.text), nil
}

func (p *parser) build(role string, pos []expr.Expr) (expr.Expr, error) {
	switch role {
	case "attr":
		return Attr(baseOr(pos, 0)), nil

	case "attrs":
		return Attrs(baseOr(pos, 0)), nil

	case "name":
		return Name(baseOr(pos, 0)), nil

	case "coord", "data":
		if len(pos) == 0 {
			return nil, fmt.Errorf("%w: %s requires dimensions", ErrParse, role)
		}

		if role == "coord" {
			return Coord(pos[0], baseOr(pos, 1)), nil
		}

		return Data(pos[0], baseOr(pos, 1)), nil

	case "coordof", "dataof":
		ref, err := p.classRef(pos)
		if err != nil {
			return nil, err
		}

		if role == "coordof" {
			return deferred(tag.COORD, ref), nil
		}

		return deferred(tag.DATA, ref), nil
	}

	return nil, fmt.Errorf("%w: unknown role %q", ErrParse, role)
}

func (p *parser) classRef(pos []expr.Expr) (expr.Ref, error) {
	var name string
	if len(pos) > 0 {
		id, ok := pos[0].(expr.Ident)
		if !ok {
			return expr.Ref{}, fmt.Errorf("%w: class reference must be an identifier", ErrParse)
		}

		name = id.Name
	}

	if p.resolve == nil {
		return expr.Ref{Name: name}, nil
	}

	rt, ok := p.resolve(name)
	if !ok {
		return expr.Ref{}, fmt.Errorf("%w: unknown class reference %q", ErrParse, name)
	}

	return expr.Ref{Name: rt.Name(), Type: rt}, nil
}

func baseOr(pos []expr.Expr, index int) expr.Expr {
	if index < len(pos) {
		return pos[index]
	}

	return expr.Any{}
}

func typeAtom(name string) expr.Expr {
	switch name {
	case "any":
		return expr.Any{}
	case "none":
		return expr.None{}
	}

	return expr.Ident{Name: name}
}
