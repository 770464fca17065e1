package rctree

import (
	"fmt"
	"io"
	"strconv"

	"rcbuf/params"
	"rcbuf/set"
	"rcbuf/stack"
)

type ParseError struct {
	Name string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Name, e.Line, e.Msg)
}

type parser struct {
	l       *lexer
	token   Item
	line    int
	labels  set.Set
	entries []entry
}

// entry is one parsed line of a tree description.
type entry struct {
	line   int
	leaf   bool
	label  int
	cap    float64
	lw, rw float64
}

// Parse builds an RC tree from a postfix description. Each line is either a
// leaf "label(capacitance)" or a junction "(leftWire rightWire)" joining the
// two most recently built subtrees. Half of every wire's capacitance is
// lumped onto each of its endpoints and the root carries the driving
// inverter's output capacitance.
func Parse(name string, r io.Reader, p params.Params) (*Node, error) {
	entries, err := scan(name, r)
	if err != nil {
		return nil, err
	}

	nodes := stack.New()
	for _, e := range entries {
		if e.leaf {
			nodes.Push(NewLeaf(e.label, e.cap))
			continue
		}

		if nodes.Len() < 2 {
			return nil, &ParseError{name, e.line,
				fmt.Sprintf("junction needs two subtrees, found %d", nodes.Len())}
		}

		// Postfix order: the right subtree was pushed last.
		right := nodes.Pop().(*Node)
		left := nodes.Pop().(*Node)
		nodes.Push(join(e.lw, e.rw, left, right, p))
	}

	if nodes.Empty() {
		return nil, &ParseError{name, 0, "no tree found"}
	}
	if nodes.Len() > 1 {
		return nil, &ParseError{name, 0, fmt.Sprintf("%d subtrees left unjoined", nodes.Len())}
	}

	root := nodes.Pop().(*Node)
	root.TotalCap += p.InvOutCap
	return root, nil
}

// ParsePre builds an RC tree from the pre-order description written by
// WritePre, with the same capacitance distribution as Parse.
func ParsePre(name string, r io.Reader, p params.Params) (*Node, error) {
	entries, err := scan(name, r)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, &ParseError{name, 0, "no tree found"}
	}

	var build func() (*Node, error)
	build = func() (*Node, error) {
		if len(entries) == 0 {
			return nil, &ParseError{name, 0, "junction is missing a subtree"}
		}
		e := entries[0]
		entries = entries[1:]

		if e.leaf {
			return NewLeaf(e.label, e.cap), nil
		}
		left, err := build()
		if err != nil {
			return nil, err
		}
		right, err := build()
		if err != nil {
			return nil, err
		}
		return join(e.lw, e.rw, left, right, p), nil
	}

	root, err := build()
	if err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		return nil, &ParseError{name, entries[0].line, "trailing lines after complete tree"}
	}

	root.TotalCap += p.InvOutCap
	return root, nil
}

// join creates a junction over left and right and lumps half of each wire's
// capacitance onto both of its endpoints.
func join(lw, rw float64, left, right *Node, p params.Params) *Node {
	n := NewJunction(lw, rw, left, right)

	lcap := p.UnitCap * lw / 2
	rcap := p.UnitCap * rw / 2

	left.TotalCap += lcap
	right.TotalCap += rcap
	n.TotalCap += lcap + rcap

	return n
}

func scan(name string, r io.Reader) ([]entry, error) {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	parser := &parser{
		l:      newLexer(name, string(bytes)),
		line:   1,
		labels: set.New(),
	}

	// Load first token
	parser.next()

	if err := parser.statements(); err != nil {
		return nil, err
	}
	return parser.entries, nil
}

// next advances a token
func (p *parser) next() {
	if p.token.typ == Newline {
		p.line++
	}
	p.token = p.l.nextItem()
}

func (p *parser) tokenis(types ...ItemType) bool {
	for _, t := range types {
		if p.token.typ == t {
			return true
		}
	}
	return false
}

func (p *parser) expect(types ...ItemType) (Item, error) {
	if p.tokenis(types...) {
		item := p.token
		p.next()
		return item, nil
	}
	if p.tokenis(Error) {
		return p.token, p.errorf("%s", p.token.val)
	}
	return p.token, p.errorf("expecting %v but got %v", types, p.token)
}

func (p *parser) accept(types ...ItemType) bool {
	if p.tokenis(types...) {
		p.next()
		return true
	}
	return false
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &ParseError{
		Name: p.l.name,
		Line: p.line,
		Msg:  fmt.Sprintf(format, args...),
	}
}

func (p *parser) float() (float64, error) {
	item, err := p.expect(Number)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(item.val, 64)
	if err != nil {
		return 0, p.errorf("bad number %q", item.val)
	}
	return v, nil
}

func (p *parser) endline() error {
	_, err := p.expect(Newline, EOF)
	return err
}

// productions /////////////////////////////////////////////////////////////////

func (p *parser) statements() error {
	for {
		var err error
		switch {
		case p.accept(Newline):
		case p.tokenis(Number):
			err = p.leaf()
		case p.tokenis(LParen):
			err = p.junction()
		case p.tokenis(EOF):
			return nil
		case p.tokenis(Error):
			err = p.errorf("%s", p.token.val)
		default:
			err = p.errorf("unexpected %v", p.token)
		}
		if err != nil {
			return err
		}
	}
}

func (p *parser) leaf() error {
	e := entry{line: p.line, leaf: true}

	item, err := p.expect(Number)
	if err != nil {
		return err
	}
	// Labels are written as int32 and -1 tags internal nodes.
	label, err := strconv.ParseInt(item.val, 10, 32)
	if err != nil || label < 0 {
		return p.errorf("leaf label %q is not a non-negative 32-bit integer", item.val)
	}
	e.label = int(label)
	if p.labels.Has(e.label) {
		return p.errorf("duplicate leaf label %d", e.label)
	}

	if _, err := p.expect(LParen); err != nil {
		return err
	}
	if e.cap, err = p.float(); err != nil {
		return err
	}
	if _, err := p.expect(RParen); err != nil {
		return err
	}
	if err := p.endline(); err != nil {
		return err
	}

	p.labels.Add(e.label)
	p.entries = append(p.entries, e)
	return nil
}

func (p *parser) junction() error {
	e := entry{line: p.line}

	if _, err := p.expect(LParen); err != nil {
		return err
	}
	var err error
	if e.lw, err = p.float(); err != nil {
		return err
	}
	if e.rw, err = p.float(); err != nil {
		return err
	}
	if _, err := p.expect(RParen); err != nil {
		return err
	}
	if err := p.endline(); err != nil {
		return err
	}

	p.entries = append(p.entries, e)
	return nil
}
