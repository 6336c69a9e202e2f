package ast

import (
	"sort"
	"strings"
)

// CharSet is an immutable set of characters. The zero value is the empty set.
type CharSet struct {
	set map[rune]struct{}
}

func NewCharSet(runes ...rune) CharSet {
	set := make(map[rune]struct{}, len(runes))
	for _, r := range runes {
		set[r] = struct{}{}
	}
	return CharSet{set: set}
}

// CharRange returns the set of characters lo..hi inclusive.
func CharRange(lo, hi rune) CharSet {
	set := make(map[rune]struct{})
	for r := lo; r <= hi; r++ {
		set[r] = struct{}{}
	}
	return CharSet{set: set}
}

func (c CharSet) Contains(r rune) bool {
	_, ok := c.set[r]
	return ok
}

func (c CharSet) Len() int { return len(c.set) }

func (c CharSet) Union(others ...CharSet) CharSet {
	set := make(map[rune]struct{}, len(c.set))
	for r := range c.set {
		set[r] = struct{}{}
	}
	for _, o := range others {
		for r := range o.set {
			set[r] = struct{}{}
		}
	}
	return CharSet{set: set}
}

// Runes returns the members in ascending order.
func (c CharSet) Runes() []rune {
	out := make([]rune, 0, len(c.set))
	for r := range c.set {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (c CharSet) String() string {
	var sb strings.Builder
	runes := c.Runes()
	for i := 0; i < len(runes); {
		j := i
		for j+1 < len(runes) && runes[j+1] == runes[j]+1 {
			j++
		}
		writeClassRune(&sb, runes[i])
		if j-i >= 2 {
			sb.WriteByte('-')
			writeClassRune(&sb, runes[j])
		} else if j > i {
			writeClassRune(&sb, runes[j])
		}
		i = j + 1
	}
	return sb.String()
}

func writeClassRune(sb *strings.Builder, r rune) {
	switch r {
	case '\\', ']', '[', '^', '-':
		sb.WriteByte('\\')
	}
	sb.WriteRune(r)
}

var (
	Digits = CharRange('0', '9')
	Word   = CharRange('a', 'z').Union(CharRange('A', 'Z'), Digits, NewCharSet('_'))
	Space  = NewCharSet(' ', '\t', '\n', '\r', '\f', '\v')
)
