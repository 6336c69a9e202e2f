package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders n in pattern syntax. It is meant for logs and test
// failures; the output parses back to an equivalent tree.
func String(n Node) string {
	var sb strings.Builder
	write(&sb, n)
	return sb.String()
}

func write(sb *strings.Builder, n Node) {
	switch x := n.(type) {
	case *AtBeginning:
		sb.WriteByte('^')
	case *AtEnd:
		sb.WriteByte('$')
	case *Group:
		if x.Chars.Len() == 1 {
			r := x.Chars.Runes()[0]
			if strings.ContainsRune(`\.+*?()|[]{}^$`, r) {
				sb.WriteByte('\\')
			}
			sb.WriteRune(r)
			return
		}
		sb.WriteString("[" + x.Chars.String() + "]")
	case *InvertedGroup:
		if x.Chars.Len() == 0 {
			sb.WriteByte('.')
			return
		}
		sb.WriteString("[^" + x.Chars.String() + "]")
	case *Concat:
		for _, e := range x.Exprs {
			if _, alt := e.(*Alternative); alt {
				sb.WriteString("(?:")
				write(sb, e)
				sb.WriteByte(')')
				continue
			}
			write(sb, e)
		}
	case *Alternative:
		if len(x.Exprs) == 0 {
			// an empty class, which never matches either
			sb.WriteString("[]")
			return
		}
		for i, e := range x.Exprs {
			if i > 0 {
				sb.WriteByte('|')
			}
			write(sb, e)
		}
	case *Repeat:
		switch x.Head.(type) {
		case *Group, *InvertedGroup:
			write(sb, x.Head)
		default:
			sb.WriteString("(?:")
			write(sb, x.Head)
			sb.WriteByte(')')
		}
		sb.WriteString(quantifier(x.Min, x.Max))
	case nil:
		sb.WriteString("<nil>")
	default:
		fmt.Fprintf(sb, "<%T>", n)
	}
}

func quantifier(min, max int) string {
	switch {
	case min == 0 && max == Unbounded:
		return "*"
	case min == 1 && max == Unbounded:
		return "+"
	case min == 0 && max == 1:
		return "?"
	case max == Unbounded:
		return "{" + strconv.Itoa(min) + ",}"
	case min == max:
		return "{" + strconv.Itoa(min) + "}"
	}
	return "{" + strconv.Itoa(min) + "," + strconv.Itoa(max) + "}"
}
