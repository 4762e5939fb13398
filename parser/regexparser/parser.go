// Copyright © 2018 The ELPS authors

// Package regexparser provides a lisp reader built from goparsec combinators.
//
//	expr    := <comment> | <term> | '(' <expr>* ')' | '\'' <expr>
//	term    := <string> | <atom>
//	string  := '"' /([^"\\]|\\.)*/ '"'
//	atom    := /[^\s()'";]+/
//	comment := /(;|#!)[^\n]*/
//
// An atom is classified after matching as an integer, a boolean (#t or #f), or
// a name.
package regexparser

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/luthersystems/minilisp/lisp"
	"github.com/luthersystems/minilisp/parser/token"
	parsec "github.com/prataprc/goparsec"
)

// NewReader returns a lisp.Reader.
func NewReader() lisp.Reader {
	return &parsecReader{}
}

type parsecReader struct{}

func (p *parsecReader) Read(name string, r io.Reader) ([]lisp.Item, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseItems(name, b)
}

const (
	nodeInvalid nodeType = iota
	nodeTerm
	nodeSExpr
	nodeSExprOUnmatched
	nodeQExpr
)

var nodeTypeStrings = []string{
	nodeInvalid:         "INVALID",
	nodeTerm:            "TERM",
	nodeSExpr:           "SEXPR",
	nodeSExprOUnmatched: "SEXPROPENUNMATCHED",
	nodeQExpr:           "QEXPR",
}

type nodeType uint

func (t nodeType) String() string {
	if int(t) >= len(nodeTypeStrings) {
		return "INVALID"
	}
	return nodeTypeStrings[t]
}

// ParseItems parses every expression in text.  Errors are reported as
// *token.LocationError values.
func ParseItems(name string, text []byte) ([]lisp.Item, error) {
	loc := newLocator(name, text)
	var items []lisp.Item
	s := parsec.NewScanner(text)
	parser := newParsecParser(loc)
	root, s := parser(s)
	for root != nil {
		item, ok, err := rootItem(root)
		if err != nil {
			return nil, err
		}
		if ok {
			items = append(items, item)
		}
		root, s = parser(s)
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		b, _ := s.Match(`.{1,16}`)
		if len(b) > 15 {
			b = append(b[:15:15], []byte("...")...)
		}
		return nil, &token.LocationError{
			Err:    fmt.Errorf("unexpected source text possibly starting: %s", b),
			Source: loc.location(s.GetCursor()),
		}
	}
	return items, nil
}

func newParsecParser(loc *locator) parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	q := parsec.Atom("'", "QUOTE")
	comment := parsec.Token(`(?:;|#!)[^\n]*`, "COMMENT")
	str := parsec.Token(`"(?:[^"\\]|\\(?s:.))*"`, "STRING")
	atom := parsec.Token(`[^\s()'";]+`, "ATOM")
	term := parsec.OrdChoice(loc.node(nodeTerm), str, atom)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	sexpr := parsec.And(loc.node(nodeSExpr), openP, exprList, closeP)
	sexprOUnmatched := parsec.And(loc.node(nodeSExprOUnmatched), openP, exprList, parsec.End())
	qexpr := parsec.And(loc.node(nodeQExpr), q, &expr)
	expr = parsec.OrdChoice(nil,
		comment,
		term,
		sexpr,
		qexpr,
		// Error matching cases come last because they have the lowest
		// precedence.
		sexprOUnmatched,
	)
	return expr
}

var (
	intPattern     = regexp.MustCompile(`^[+-]?[0-9]+$`)
	numericPattern = regexp.MustCompile(`^[+-]?[0-9]`)
)

func (loc *locator) node(typ nodeType) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		return loc.newItem(typ, nodes)
	}
}

func (loc *locator) newItem(typ nodeType, nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes, ok := cleanParsecNodeList(nodes)
	if !ok {
		// There is an error in the first position.
		return nodes[0]
	}
	if len(nodes) == 0 {
		return lisp.None()
	}
	switch typ {
	case nodeTerm:
		term, ok := nodes[0].(*parsec.Terminal)
		if !ok {
			return fmt.Errorf("unexpected term node: %T", nodes[0])
		}
		src := loc.location(term.Position)
		var item lisp.Item
		var err error
		switch {
		case !utf8.ValidString(term.Value):
			err = token.ErrInvalidUTF8
		case term.Name == "STRING":
			item = lisp.String(token.UnquoteString(term.Value))
		case term.Name == "ATOM":
			item, err = atomItem(term.Value)
		default:
			err = fmt.Errorf("unexpected terminal: %s", term.Name)
		}
		if err != nil {
			return &token.LocationError{Err: err, Source: src}
		}
		return item.WithSource(src)
	case nodeSExpr:
		open := nodes[0].(*parsec.Terminal)
		cells := make([]lisp.Item, 0, len(nodes)-2)
		for _, c := range nodes {
			if c, ok := c.(lisp.Item); ok {
				cells = append(cells, c)
			}
		}
		return lisp.List(cells...).WithSource(loc.location(open.Position))
	case nodeSExprOUnmatched:
		open := nodes[0].(*parsec.Terminal)
		return &token.LocationError{
			Err:    fmt.Errorf("unmatched %s", open.GetValue()),
			Source: loc.location(open.Position),
		}
	case nodeQExpr:
		mark := nodes[0].(*parsec.Terminal)
		src := loc.location(mark.Position)
		if len(nodes) < 2 {
			return &token.LocationError{Err: fmt.Errorf("nothing to quote"), Source: src}
		}
		quoted, ok := nodes[1].(lisp.Item)
		if !ok {
			return &token.LocationError{Err: fmt.Errorf("invalid quoted expression"), Source: src}
		}
		return lisp.List(lisp.Name("quote").WithSource(src), quoted).WithSource(src)
	default:
		panic(fmt.Sprintf("unknown nodeType: %s (%d)", typ, typ))
	}
}

func atomItem(text string) (lisp.Item, error) {
	switch {
	case intPattern.MatchString(text):
		x, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return lisp.None(), fmt.Errorf("integer literal overflows int64: %s", text)
		}
		return lisp.Number(x), nil
	case text == "#t":
		return lisp.Bool(true), nil
	case text == "#f":
		return lisp.Bool(false), nil
	case numericPattern.MatchString(text):
		return lisp.None(), fmt.Errorf("invalid number literal: %s", text)
	case strings.HasPrefix(text, "#"):
		return lisp.None(), fmt.Errorf("invalid dispatch sequence: %s", text)
	default:
		return lisp.Name(text), nil
	}
}

// cleanParsecNodeList flattens nested node lists and drops comments.  If an
// error is found it is returned alone with a false second value.
func cleanParsecNodeList(lis []parsec.ParsecNode) ([]parsec.ParsecNode, bool) {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case nil:
			continue
		case *parsec.Terminal:
			if node.Name == "COMMENT" {
				continue
			}
			nodes = append(nodes, node)
		case error:
			return []parsec.ParsecNode{node}, false
		case []parsec.ParsecNode:
			clean, ok := cleanParsecNodeList(node)
			if !ok {
				return clean, false
			}
			nodes = append(nodes, clean...)
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes, true
}

// rootItem converts a top-level parse result.  A root consisting only of a
// comment produces no item.
func rootItem(root parsec.ParsecNode) (lisp.Item, bool, error) {
	nodes, ok := cleanParsecNodeList([]parsec.ParsecNode{root})
	if !ok {
		return lisp.None(), false, nodes[0].(error)
	}
	if len(nodes) == 0 {
		return lisp.None(), false, nil
	}
	item, ok := nodes[0].(lisp.Item)
	return item, ok, nil
}

// locator converts byte offsets into line and column locations.
type locator struct {
	name       string
	text       []byte
	lineStarts []int
}

func newLocator(name string, text []byte) *locator {
	starts := []int{0}
	for i, b := range text {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &locator{name: name, text: text, lineStarts: starts}
}

func (loc *locator) location(pos int) *token.Location {
	line := sort.Search(len(loc.lineStarts), func(i int) bool { return loc.lineStarts[i] > pos })
	start := loc.lineStarts[line-1]
	col := 1 + len([]rune(string(loc.text[start:pos])))
	return &token.Location{
		File: loc.name,
		Pos:  pos,
		Line: line,
		Col:  col,
	}
}
