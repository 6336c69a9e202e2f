package matcher

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/funkybooboo/reng/internal/ast"
	"github.com/funkybooboo/reng/internal/input"
)

// Result is the outcome of a search. Start and End are character offsets
// of the leftmost match, [Start, End); both are -1 when nothing matched.
type Result struct {
	Source  string
	Matched bool
	Start   int
	End     int
}

func NoMatch(source string) Result {
	return Result{Source: source, Start: -1, End: -1}
}

// Text returns the matched part of Source, or "" without a match.
func (r Result) Text() string {
	if !r.Matched {
		return ""
	}
	start, end := r.ByteSpan()
	return r.Source[start:end]
}

// ByteSpan converts Start and End into byte offsets into Source. Invalid
// UTF-8 counts one character per byte, as it does while matching. Both are
// -1 without a match.
func (r Result) ByteSpan() (int, int) {
	if !r.Matched {
		return -1, -1
	}
	start, end := -1, -1
	pos, offset := 0, 0
	for {
		if pos == r.Start {
			start = offset
		}
		if pos == r.End {
			end = offset
			return start, end
		}
		_, width := utf8.DecodeRuneInString(r.Source[offset:])
		offset += width
		pos++
	}
}

func (r Result) String() string {
	if !r.Matched {
		return fmt.Sprintf("no match in %q", r.Source)
	}
	return fmt.Sprintf("match [%d,%d) %q in %q", r.Start, r.End, r.Text(), r.Source)
}

// Match returns the leftmost match of re in source. Start positions are
// tried from 0 up to and including the end of input.
func Match(source string, re ast.Node) Result {
	return MatchFrom(source, re, 0)
}

// MatchFrom is Match with start positions beginning at character offset
// from. Anchors still see the whole of source, so ^ only holds at 0.
func MatchFrom(source string, re ast.Node, from int) Result {
	in := input.Of(source)
	if from < 0 || from > in.Len() {
		return NoMatch(source)
	}
	in.Advance(from)
	s := &search{in: in}

	for {
		start := in.Pos()
		end := 0
		ok := s.match(re, func() bool {
			end = in.Pos()
			return true
		})
		if ok {
			return Result{Source: source, Matched: true, Start: start, End: end}
		}
		// the empty suffix was tried too
		if in.AtEnd() {
			return NoMatch(source)
		}
		in.Advance(1)
	}
}

// Matcher binds a pattern for repeated use. The AST is only read, so one
// Matcher can serve any number of goroutines.
type Matcher struct {
	re     ast.Node
	logger *zap.Logger
}

type Option func(*Matcher)

func WithLogger(logger *zap.Logger) Option {
	return func(m *Matcher) { m.logger = logger }
}

func New(re ast.Node, opts ...Option) *Matcher {
	m := &Matcher{re: re, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Matcher) Match(source string) Result {
	res := Match(source, m.re)
	if ce := m.logger.Check(zap.DebugLevel, "match"); ce != nil {
		ce.Write(
			zap.String("pattern", ast.String(m.re)),
			zap.String("source", source),
			zap.Bool("matched", res.Matched),
			zap.Int("start", res.Start),
			zap.Int("end", res.End),
		)
	}
	return res
}

func (m *Matcher) MatchString(source string) bool {
	return m.Match(source).Matched
}

// FindAll returns the successive leftmost matches in source. The search
// resumes where the previous match ended, one character further after an
// empty match.
func (m *Matcher) FindAll(source string) []Result {
	var out []Result
	n := utf8.RuneCountInString(source)
	for from := 0; from <= n; {
		res := MatchFrom(source, m.re, from)
		if !res.Matched {
			break
		}
		out = append(out, res)
		if res.End > res.Start {
			from = res.End
		} else {
			from = res.End + 1
		}
	}
	return out
}

// MatchAll matches every source, running at most workers searches at a time
// (no limit when workers <= 0). Results are in input order. Once ctx is done
// no new search starts and ctx.Err() is returned; searches already running
// are not interrupted.
func (m *Matcher) MatchAll(ctx context.Context, sources []string, workers int) ([]Result, error) {
	results := make([]Result, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, src := range sources {
		i, src := i, src
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = m.Match(src)
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		m.logger.Warn("batch match cancelled", zap.Int("inputs", len(sources)), zap.Error(err))
		return nil, err
	}
	return results, nil
}
