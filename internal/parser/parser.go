// Package parser turns pattern text into an ast.Node.
//
// Supported syntax: alternation, grouping with ( ) or (?: ) (neither
// captures), the quantifiers * + ? {n} {n,} {n,m}, anchors ^ and $, the
// dot, bracket classes with ranges and negation, and the escapes \d \D \w
// \W \s \S plus escaped metacharacters.
package parser

import (
	"fmt"
	"strconv"

	"github.com/funkybooboo/reng/internal/ast"
)

// SyntaxError reports where a pattern stopped making sense.
type SyntaxError struct {
	Pos int // character offset into the pattern
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Pos, e.Msg)
}

type parser struct {
	pattern []rune
	pos     int
}

func Parse(pattern string) (ast.Node, error) {
	p := &parser{pattern: []rune(pattern)}
	root, err := p.parseAlternation()
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", pattern, err)
	}
	if !p.atEnd() {
		return nil, fmt.Errorf("parse %q: %w", pattern, p.errorf("unexpected %q", p.peek()))
	}
	return root, nil
}

// MustParse is Parse for patterns known to be valid, such as test fixtures.
func MustParse(pattern string) ast.Node {
	n, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return n
}

func (p *parser) atEnd() bool { return p.pos >= len(p.pattern) }

func (p *parser) peek() rune { return p.pattern[p.pos] }

func (p *parser) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseAlternation() (ast.Node, error) {
	first, err := p.parseConcatenation()
	if err != nil {
		return nil, err
	}
	alts := []ast.Node{first}
	for !p.atEnd() && p.peek() == '|' {
		p.pos++
		next, err := p.parseConcatenation()
		if err != nil {
			return nil, err
		}
		alts = append(alts, next)
	}
	if len(alts) == 1 {
		return first, nil
	}
	return ast.NewAlternative(alts...), nil
}

func (p *parser) parseConcatenation() (ast.Node, error) {
	var parts []ast.Node
	for !p.atEnd() {
		ch := p.peek()
		if ch == ')' || ch == '|' {
			break
		}
		n, err := p.parseRepetition()
		if err != nil {
			return nil, err
		}
		parts = append(parts, n)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return ast.NewConcat(parts...), nil
}

func (p *parser) parseRepetition() (ast.Node, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for !p.atEnd() {
		var min, max int
		switch p.peek() {
		case '*':
			p.pos++
			min, max = 0, ast.Unbounded
		case '+':
			p.pos++
			min, max = 1, ast.Unbounded
		case '?':
			p.pos++
			min, max = 0, 1
		case '{':
			min, max, err = p.parseBounds()
			if err != nil {
				return nil, err
			}
		default:
			return atom, nil
		}
		switch atom.(type) {
		case *ast.AtBeginning, *ast.AtEnd:
			return nil, p.errorf("nothing to repeat")
		}
		atom = ast.NewRepeat(atom, min, max)
	}
	return atom, nil
}

// parseBounds reads {n}, {n,} or {n,m} starting at the opening brace.
func (p *parser) parseBounds() (int, int, error) {
	open := p.pos
	p.pos++
	min, err := p.parseInt()
	if err != nil {
		return 0, 0, err
	}
	max := min
	if !p.atEnd() && p.peek() == ',' {
		p.pos++
		if !p.atEnd() && p.peek() == '}' {
			max = ast.Unbounded
		} else if max, err = p.parseInt(); err != nil {
			return 0, 0, err
		}
	}
	if p.atEnd() || p.peek() != '}' {
		return 0, 0, &SyntaxError{Pos: open, Msg: "unterminated repetition"}
	}
	p.pos++
	if max < min {
		return 0, 0, &SyntaxError{Pos: open, Msg: fmt.Sprintf("invalid repetition {%d,%d}", min, max)}
	}
	return min, max, nil
}

func (p *parser) parseInt() (int, error) {
	start := p.pos
	for !p.atEnd() && p.peek() >= '0' && p.peek() <= '9' {
		p.pos++
	}
	if start == p.pos {
		return 0, p.errorf("expected a number")
	}
	n, err := strconv.Atoi(string(p.pattern[start:p.pos]))
	if err != nil {
		return 0, &SyntaxError{Pos: start, Msg: err.Error()}
	}
	return n, nil
}

func (p *parser) parseAtom() (ast.Node, error) {
	if p.atEnd() {
		return nil, p.errorf("unexpected end of pattern")
	}
	ch := p.peek()
	switch ch {
	case '(':
		open := p.pos
		p.pos++
		if p.pos+1 < len(p.pattern) && p.pattern[p.pos] == '?' && p.pattern[p.pos+1] == ':' {
			p.pos += 2
		}
		sub, err := p.parseAlternation()
		if err != nil {
			return nil, err
		}
		if p.atEnd() || p.peek() != ')' {
			return nil, &SyntaxError{Pos: open, Msg: "unterminated group"}
		}
		p.pos++
		return sub, nil

	case '*', '+', '?', '{':
		return nil, p.errorf("nothing to repeat")

	case '^':
		p.pos++
		return ast.NewAtBeginning(), nil

	case '$':
		p.pos++
		return ast.NewAtEnd(), nil

	case '.':
		p.pos++
		return ast.NewInvertedGroup(ast.NewCharSet()), nil

	case '\\':
		p.pos++
		return p.parseEscape()

	case '[':
		return p.parseClass()

	default:
		p.pos++
		return ast.NewGroup(ast.NewCharSet(ch)), nil
	}
}

func (p *parser) parseEscape() (ast.Node, error) {
	if p.atEnd() {
		return nil, p.errorf("dangling escape")
	}
	esc := p.peek()
	if esc >= '1' && esc <= '9' {
		return nil, p.errorf("backreferences are not supported")
	}
	p.pos++
	if set, negated, ok := shorthand(esc); ok {
		if negated {
			return ast.NewInvertedGroup(set), nil
		}
		return ast.NewGroup(set), nil
	}
	if r, ok := escapedLiteral(esc); ok {
		return ast.NewGroup(ast.NewCharSet(r)), nil
	}
	return nil, &SyntaxError{Pos: p.pos - 1, Msg: fmt.Sprintf("unsupported escape \\%c", esc)}
}

func shorthand(esc rune) (ast.CharSet, bool, bool) {
	switch esc {
	case 'd':
		return ast.Digits, false, true
	case 'D':
		return ast.Digits, true, true
	case 'w':
		return ast.Word, false, true
	case 'W':
		return ast.Word, true, true
	case 's':
		return ast.Space, false, true
	case 'S':
		return ast.Space, true, true
	}
	return ast.CharSet{}, false, false
}

func escapedLiteral(esc rune) (rune, bool) {
	switch esc {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	}
	if (esc >= 'a' && esc <= 'z') || (esc >= 'A' && esc <= 'Z') || (esc >= '0' && esc <= '9') {
		return 0, false
	}
	return esc, true
}

// parseClass reads a bracket expression starting at '['. A ']' right after
// the opening bracket closes an empty class.
func (p *parser) parseClass() (ast.Node, error) {
	open := p.pos
	p.pos++
	negated := false
	if !p.atEnd() && p.peek() == '^' {
		negated = true
		p.pos++
	}

	set := ast.NewCharSet()
	for !p.atEnd() && p.peek() != ']' {
		lo, err := p.classChar(&set)
		if err != nil {
			return nil, err
		}
		if lo < 0 {
			continue
		}
		if p.pos+1 < len(p.pattern) && p.peek() == '-' && p.pattern[p.pos+1] != ']' {
			p.pos++
			hi, err := p.classChar(&set)
			if err != nil {
				return nil, err
			}
			if hi < 0 || hi < lo {
				return nil, &SyntaxError{Pos: open, Msg: "invalid class range"}
			}
			set = set.Union(ast.CharRange(lo, hi))
			continue
		}
		set = set.Union(ast.NewCharSet(lo))
	}
	if p.atEnd() {
		return nil, &SyntaxError{Pos: open, Msg: "unterminated character class"}
	}
	p.pos++

	if negated {
		return ast.NewInvertedGroup(set), nil
	}
	return ast.NewGroup(set), nil
}

// classChar reads one class member. Shorthand escapes are merged into set
// directly and reported as -1.
func (p *parser) classChar(set *ast.CharSet) (rune, error) {
	ch := p.peek()
	p.pos++
	if ch != '\\' {
		return ch, nil
	}
	if p.atEnd() {
		return 0, p.errorf("dangling escape")
	}
	esc := p.peek()
	p.pos++
	if class, negated, ok := shorthand(esc); ok {
		if negated {
			return 0, &SyntaxError{Pos: p.pos - 2, Msg: fmt.Sprintf("\\%c is not supported inside a class", esc)}
		}
		*set = set.Union(class)
		return -1, nil
	}
	if r, ok := escapedLiteral(esc); ok {
		return r, nil
	}
	return 0, &SyntaxError{Pos: p.pos - 2, Msg: fmt.Sprintf("unsupported escape \\%c", esc)}
}
