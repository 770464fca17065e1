package rctree

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const eof = -(iota + 1)

const (
	Error ItemType = iota
	EOF
	Newline // \n
	LParen  // (
	RParen  // )
	Number  // 12, 1.5e-03
)

type ItemType int

func (t ItemType) String() string {
	switch t {
	case Error:
		return "error"
	case EOF:
		return "EOF"
	case Newline:
		return "newline"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case Number:
		return "number"
	}
	return fmt.Sprintf("ItemType(%d)", int(t))
}

type Item struct {
	typ ItemType
	val string
}

func (i Item) String() string {
	switch i.typ {
	case EOF:
		return "EOF"
	case Error:
		return i.val
	case Newline:
		return i.typ.String()
	}
	return fmt.Sprintf("%q", i.val)
}

type statefn func(*lexer) statefn

// lexer tokenizes a tree description. Items are pulled one at a time
// through nextItem, which steps the state machine until one is available.
// Every state emits at most one item before returning.
type lexer struct {
	name  string
	input string
	start int
	pos   int
	width int
	line  int
	state statefn
	items chan Item
}

func newLexer(name, input string) *lexer {
	return &lexer{
		name:  name,
		input: input,
		line:  1,
		state: lexText,
		items: make(chan Item, 2),
	}
}

func (l *lexer) nextItem() Item {
	for {
		select {
		case item := <-l.items:
			return item
		default:
			if l.state == nil {
				return Item{EOF, ""}
			}
			l.state = l.state(l)
		}
	}
}

func (l *lexer) emit(t ItemType) {
	l.items <- Item{t, l.input[l.start:l.pos]}
	l.start = l.pos
}

func (l *lexer) next() (r rune) {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, l.width = utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += l.width
	return r
}

func (l *lexer) backup() {
	l.pos -= l.width
}

func (l *lexer) ignore() {
	l.start = l.pos
}

func (l *lexer) accept(valid string) bool {
	if strings.IndexRune(valid, l.next()) >= 0 {
		return true
	}
	l.backup()
	return false
}

func (l *lexer) acceptRun(valid string) int {
	n := 0
	for strings.IndexRune(valid, l.next()) >= 0 {
		n++
	}
	l.backup()
	return n
}

func (l *lexer) errorf(format string, args ...interface{}) statefn {
	l.items <- Item{
		typ: Error,
		val: fmt.Sprintf(format, args...),
	}
	return nil
}

const digit = "0123456789"
const sign = "+-"

func isDigit(r rune) bool {
	return strings.IndexRune(digit, r) >= 0
}

func lexNumber(l *lexer) statefn {
	l.accept(sign)
	digits := l.acceptRun(digit)
	if l.accept(".") {
		digits += l.acceptRun(digit)
	}
	if digits == 0 {
		return l.errorf("malformed number %q at line:%d", l.input[l.start:l.pos], l.line)
	}
	if l.accept("eE") {
		l.accept(sign)
		if l.acceptRun(digit) == 0 {
			return l.errorf("malformed exponent %q at line:%d", l.input[l.start:l.pos], l.line)
		}
	}
	l.emit(Number)
	return lexText
}

func lexText(l *lexer) statefn {
	for {
		r := l.next()
		if r == eof {
			break
		}
		switch {
		case r == ' ', r == '\t', r == '\r':
			l.ignore()

		case r == '\n':
			l.emit(Newline)
			l.line++
			return lexText

		case r == '(':
			l.emit(LParen)
			return lexText
		case r == ')':
			l.emit(RParen)
			return lexText

		case isDigit(r), r == '.', strings.IndexRune(sign, r) >= 0:
			l.backup()
			return lexNumber

		default:
			return l.errorf("Don't know what to do with %q at line:%d", r, l.line)
		}
	}
	l.emit(EOF)
	return nil
}
