// Package matcher runs a backtracking search of a regex AST over a string.
//
// The search is written in continuation-passing style: every node is matched
// together with a Cont describing everything that still has to match after
// it. A node that consumes input advances the shared cursor, runs the
// continuation and always moves the cursor back before returning, so after
// any match call the cursor is where it was on entry.
//
// There is no bound on the work done. Nested repeats and alternatives can
// backtrack exponentially, and recursion depth grows with pattern size times
// input length. Callers that need a budget impose it from the outside (see
// MatchAll).
package matcher

import (
	"fmt"

	"github.com/funkybooboo/reng/internal/ast"
	"github.com/funkybooboo/reng/internal/input"
)

// Cont is the rest of the match. It reports whether everything after the
// current node matched.
type Cont func() bool

type search struct {
	in *input.Input
}

func (s *search) match(n ast.Node, cont Cont) bool {
	switch x := n.(type) {
	case *ast.AtBeginning:
		return s.in.AtBeginning() && cont()
	case *ast.AtEnd:
		return s.in.AtEnd() && cont()
	case *ast.Group:
		// TODO: decide whether an empty class should be a parse error instead of never matching.
		if s.in.AtEnd() || !x.Chars.Contains(s.in.Current()) {
			return false
		}
		return s.step(cont)
	case *ast.InvertedGroup:
		if s.in.AtEnd() || x.Chars.Contains(s.in.Current()) {
			return false
		}
		return s.step(cont)
	case *ast.Concat:
		return s.concat(x.Exprs, 0, cont)
	case *ast.Alternative:
		return s.alternative(x.Exprs, cont)
	case *ast.Repeat:
		return s.repeat(x, 0, cont)
	default:
		panic(fmt.Sprintf("matcher: unknown node %T", n))
	}
}

// step consumes one character for the duration of cont.
func (s *search) step(cont Cont) bool {
	m := s.in.Mark()
	defer s.in.GoTo(m)
	s.in.Advance(1)
	return cont()
}

func (s *search) concat(exprs []ast.Node, i int, cont Cont) bool {
	if i == len(exprs) {
		return cont()
	}
	return s.match(exprs[i], func() bool {
		return s.concat(exprs, i+1, cont)
	})
}

func (s *search) alternative(exprs []ast.Node, cont Cont) bool {
	for _, e := range exprs {
		if s.match(e, cont) {
			return true
		}
	}
	return false
}

// repeat matches r.Head greedily, count being the repetitions already
// consumed. An unbounded repeat rejects an iteration past Min that consumed
// nothing; following it could only recurse forever.
func (s *search) repeat(r *ast.Repeat, count int, cont Cont) bool {
	if count > r.Max {
		return false
	}

	start := s.in.Pos()
	matched := s.match(r.Head, func() bool {
		if r.Max == ast.Unbounded && count >= r.Min && s.in.Pos() == start {
			return false
		}
		return s.repeat(r, count+1, cont)
	})
	if !matched && count >= r.Min {
		// Head{count+1} failed, Head{count} is enough.
		return cont()
	}
	return matched
}
