// Package typeexpr reads and prints type terms in a small s-expression
// syntax, building them in a typetable.Table:
//
//	bool | int | real
//	(bv 8)
//	(scalar 3)
//	(tuple int real)
//	(-> bool bool bool)      domain types, then the range
//	name                     lookup, or a fresh named uninterpreted type
//
// A bare symbol that is not a keyword resolves through the table's
// symbol table; unbound symbols create a fresh uninterpreted type bound
// to that name, so repeated occurrences share one type.
package typeexpr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/TheTesla/yices2/typetable"
)

var (
	ErrSyntax    = errors.New("typeexpr: syntax error")
	ErrBadNumber = errors.New("typeexpr: bad numeric argument")
)

// Parse reads exactly one type term from src.
func Parse(tbl *typetable.Table, src string) (typetable.Type, error) {
	p := &parser{tbl: tbl, toks: tokenize(src)}
	tau, err := p.parseType()
	if err != nil {
		return typetable.NullType, err
	}
	if p.pos != len(p.toks) {
		return typetable.NullType, fmt.Errorf("%w: trailing input after term", ErrSyntax)
	}
	return tau, nil
}

// ParseAll reads every type term in src.
func ParseAll(tbl *typetable.Table, src string) ([]typetable.Type, error) {
	p := &parser{tbl: tbl, toks: tokenize(src)}
	var out []typetable.Type
	for p.pos < len(p.toks) {
		tau, err := p.parseType()
		if err != nil {
			return nil, err
		}
		out = append(out, tau)
	}
	return out, nil
}

type parser struct {
	tbl  *typetable.Table
	toks []string
	pos  int
}

func tokenize(src string) []string {
	src = strings.ReplaceAll(src, "(", " ( ")
	src = strings.ReplaceAll(src, ")", " ) ")
	return strings.Fields(src)
}

func (p *parser) next() (string, error) {
	if p.pos >= len(p.toks) {
		return "", fmt.Errorf("%w: unexpected end of input", ErrSyntax)
	}
	tok := p.toks[p.pos]
	p.pos++
	return tok, nil
}

func (p *parser) parseType() (typetable.Type, error) {
	tok, err := p.next()
	if err != nil {
		return typetable.NullType, err
	}
	switch tok {
	case ")":
		return typetable.NullType, fmt.Errorf("%w: unexpected ')'", ErrSyntax)
	case "(":
		return p.parseForm()
	case "bool":
		return typetable.BoolType, nil
	case "int":
		return typetable.IntType, nil
	case "real":
		return typetable.RealType, nil
	default:
		return p.atom(tok), nil
	}
}

// atom resolves a named type, creating a named uninterpreted type on
// first use.
func (p *parser) atom(name string) typetable.Type {
	if tau := p.tbl.TypeByName(name); tau != typetable.NullType {
		return tau
	}
	tau := p.tbl.NewUninterpretedType()
	p.tbl.SetName(tau, name)
	return tau
}

func (p *parser) parseForm() (typetable.Type, error) {
	head, err := p.next()
	if err != nil {
		return typetable.NullType, err
	}
	switch head {
	case "bv":
		n, err := p.parseNumber(1, typetable.MaxBitvectorWidth)
		if err != nil {
			return typetable.NullType, err
		}
		if err := p.expectClose(); err != nil {
			return typetable.NullType, err
		}
		return p.tbl.BitvectorType(n), nil
	case "scalar":
		n, err := p.parseNumber(1, 1<<32-1)
		if err != nil {
			return typetable.NullType, err
		}
		if err := p.expectClose(); err != nil {
			return typetable.NullType, err
		}
		return p.tbl.NewScalarType(n), nil
	case "tuple":
		elems, err := p.parseTypesUntilClose()
		if err != nil {
			return typetable.NullType, err
		}
		if len(elems) < 1 || len(elems) > typetable.MaxArity {
			return typetable.NullType, fmt.Errorf("%w: tuple arity %d", ErrSyntax, len(elems))
		}
		return p.tbl.TupleType(elems...), nil
	case "->":
		items, err := p.parseTypesUntilClose()
		if err != nil {
			return typetable.NullType, err
		}
		if len(items) < 2 || len(items) > typetable.MaxArity+1 {
			return typetable.NullType, fmt.Errorf("%w: function arity %d", ErrSyntax, len(items)-1)
		}
		n := len(items) - 1
		return p.tbl.FunctionType(items[:n], items[n]), nil
	default:
		return typetable.NullType, fmt.Errorf("%w: unknown form %q", ErrSyntax, head)
	}
}

func (p *parser) parseTypesUntilClose() ([]typetable.Type, error) {
	var out []typetable.Type
	for {
		if p.pos < len(p.toks) && p.toks[p.pos] == ")" {
			p.pos++
			return out, nil
		}
		tau, err := p.parseType()
		if err != nil {
			return nil, err
		}
		out = append(out, tau)
	}
}

func (p *parser) parseNumber(min, max uint64) (uint32, error) {
	tok, err := p.next()
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(tok, 10, 32)
	if err != nil || uint64(n) < min || uint64(n) > max {
		return 0, fmt.Errorf("%w: %q", ErrBadNumber, tok)
	}
	return uint32(n), nil
}

func (p *parser) expectClose() error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok != ")" {
		return fmt.Errorf("%w: expected ')', got %q", ErrSyntax, tok)
	}
	return nil
}

// Print renders tau back as a type term. Named types print as their
// display name where one exists. Unnamed scalar and uninterpreted types
// print as (scalar k #id) and (uninterpreted #id), which Parse does not
// accept.
func Print(tbl *typetable.Table, tau typetable.Type) string {
	var b strings.Builder
	printType(tbl, tau, &b)
	return b.String()
}

func printType(tbl *typetable.Table, tau typetable.Type, b *strings.Builder) {
	if name := tbl.NameOf(tau); name != "" {
		b.WriteString(name)
		return
	}
	switch tbl.KindOf(tau) {
	case typetable.KindBool:
		b.WriteString("bool")
	case typetable.KindInt:
		b.WriteString("int")
	case typetable.KindReal:
		b.WriteString("real")
	case typetable.KindBitvector:
		fmt.Fprintf(b, "(bv %d)", tbl.BitvectorSize(tau))
	case typetable.KindScalar:
		fmt.Fprintf(b, "(scalar %d #%d)", tbl.ScalarSize(tau), tau)
	case typetable.KindUninterpreted:
		fmt.Fprintf(b, "(uninterpreted #%d)", tau)
	case typetable.KindTuple:
		b.WriteString("(tuple")
		for i := uint32(0); i < tbl.TupleArity(tau); i++ {
			b.WriteByte(' ')
			printType(tbl, tbl.TupleElem(tau, i), b)
		}
		b.WriteByte(')')
	case typetable.KindFunction:
		b.WriteString("(->")
		for i := uint32(0); i < tbl.FunctionArity(tau); i++ {
			b.WriteByte(' ')
			printType(tbl, tbl.FunctionDomain(tau, i), b)
		}
		b.WriteByte(' ')
		printType(tbl, tbl.FunctionRange(tau), b)
		b.WriteByte(')')
	}
}
