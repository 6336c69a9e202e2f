// Package ast defines the closed set of regex nodes the matcher interprets.
package ast

import "math"

// Unbounded is the Max of a repeat with no upper limit.
const Unbounded = math.MaxInt

type Kind int

const (
	KindAtBeginning Kind = iota
	KindAtEnd
	KindGroup
	KindInvertedGroup
	KindConcat
	KindAlternative
	KindRepeat
)

func (k Kind) String() string {
	switch k {
	case KindAtBeginning:
		return "AtBeginning"
	case KindAtEnd:
		return "AtEnd"
	case KindGroup:
		return "Group"
	case KindInvertedGroup:
		return "InvertedGroup"
	case KindConcat:
		return "Concat"
	case KindAlternative:
		return "Alternative"
	case KindRepeat:
		return "Repeat"
	}
	return "Unknown"
}

// Node is a regex AST node. Trees are immutable once built and every node
// owns its children.
type Node interface {
	Kind() Kind
	node()
}

type AtBeginning struct{}
type AtEnd struct{}

// Group matches one character that is in Chars.
type Group struct{ Chars CharSet }

// InvertedGroup matches one character that is not in Chars.
type InvertedGroup struct{ Chars CharSet }

type Concat struct{ Exprs []Node }

// Alternative tries Exprs left to right; the first one that leads to an
// overall match wins.
type Alternative struct{ Exprs []Node }

// Repeat matches Head between Min and Max times, preferring more.
type Repeat struct {
	Head     Node
	Min, Max int // Max == Unbounded means no limit
}

func (*AtBeginning) Kind() Kind   { return KindAtBeginning }
func (*AtEnd) Kind() Kind         { return KindAtEnd }
func (*Group) Kind() Kind         { return KindGroup }
func (*InvertedGroup) Kind() Kind { return KindInvertedGroup }
func (*Concat) Kind() Kind        { return KindConcat }
func (*Alternative) Kind() Kind   { return KindAlternative }
func (*Repeat) Kind() Kind        { return KindRepeat }

func (*AtBeginning) node()   {}
func (*AtEnd) node()         {}
func (*Group) node()         {}
func (*InvertedGroup) node() {}
func (*Concat) node()        {}
func (*Alternative) node()   {}
func (*Repeat) node()        {}

func NewAtBeginning() Node { return &AtBeginning{} }
func NewAtEnd() Node       { return &AtEnd{} }

func NewGroup(chars CharSet) Node         { return &Group{Chars: chars} }
func NewInvertedGroup(chars CharSet) Node { return &InvertedGroup{Chars: chars} }

func NewConcat(exprs ...Node) Node      { return &Concat{Exprs: exprs} }
func NewAlternative(exprs ...Node) Node { return &Alternative{Exprs: exprs} }

// NewRepeat panics when the bounds are invalid; a builder handing out such a
// node is broken.
func NewRepeat(head Node, min, max int) Node {
	if min < 0 || max < min {
		panic("ast: invalid repeat bounds")
	}
	return &Repeat{Head: head, Min: min, Max: max}
}

func Star(head Node) Node     { return NewRepeat(head, 0, Unbounded) }
func Plus(head Node) Node     { return NewRepeat(head, 1, Unbounded) }
func Optional(head Node) Node { return NewRepeat(head, 0, 1) }

// Literal builds the concatenation of single-character groups spelling s.
func Literal(s string) Node {
	var exprs []Node
	for _, r := range s {
		exprs = append(exprs, NewGroup(NewCharSet(r)))
	}
	return NewConcat(exprs...)
}
