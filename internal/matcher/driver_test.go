package matcher

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/funkybooboo/reng/internal/ast"
)

func TestResultText(t *testing.T) {
	res := Match("price: 42zł", ast.Plus(digit()))
	require.True(t, res.Matched)
	assert.Equal(t, "42", res.Text())
	assert.Equal(t, `match [7,9) "42" in "price: 42zł"`, res.String())

	none := NoMatch("abc")
	assert.Equal(t, "", none.Text())
	assert.Equal(t, -1, none.Start)
	assert.Equal(t, -1, none.End)
	assert.Equal(t, `no match in "abc"`, none.String())
}

func TestMatcherLogsAtDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	m := New(ast.Plus(digit()), WithLogger(zap.New(core)))

	assert.True(t, m.MatchString("ab12cd"))
	assert.False(t, m.MatchString("abcd"))

	entries := logs.FilterMessage("match").All()
	require.Len(t, entries, 2)
	fields := entries[0].ContextMap()
	assert.Equal(t, "[0-9]+", fields["pattern"])
	assert.Equal(t, true, fields["matched"])
	assert.Equal(t, int64(2), fields["start"])
	assert.Equal(t, int64(4), fields["end"])
}

func TestMatchAll(t *testing.T) {
	m := New(ast.NewConcat(ast.NewAtBeginning(), ast.Plus(digit()), ast.NewAtEnd()))

	var sources []string
	for i := 0; i < 50; i++ {
		if i%3 == 0 {
			sources = append(sources, fmt.Sprintf("x%d", i))
		} else {
			sources = append(sources, fmt.Sprintf("%d", i))
		}
	}

	tests := []struct {
		name    string
		workers int
	}{
		{name: "unlimited", workers: 0},
		{name: "single worker", workers: 1},
		{name: "four workers", workers: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := m.MatchAll(context.Background(), sources, tt.workers)
			require.NoError(t, err)
			require.Len(t, results, len(sources))
			for i, res := range results {
				assert.Equal(t, sources[i], res.Source)
				assert.Equal(t, i%3 != 0, res.Matched, "input %q", sources[i])
			}
		})
	}
}

func TestMatchAllCancelled(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	m := New(ast.Literal("a"), WithLogger(zap.New(core)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := m.MatchAll(ctx, []string{"a", "b", "c"}, 2)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
	assert.Equal(t, 1, logs.FilterMessage("batch match cancelled").Len())
}

func TestMatchAllEmpty(t *testing.T) {
	results, err := New(ast.Literal("a")).MatchAll(context.Background(), nil, 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestResultByteSpan(t *testing.T) {
	tests := []struct {
		name   string
		source string
		re     ast.Node
		start  int
		end    int
		text   string
	}{
		{name: "ascii", source: "ab12cd", re: ast.Plus(digit()), start: 2, end: 4, text: "12"},
		{name: "multibyte prefix", source: "żó9x", re: digit(), start: 4, end: 5, text: "9"},
		{name: "invalid byte before match", source: "a\xffb", re: char('b'), start: 2, end: 3, text: "b"},
		{name: "invalid byte inside match", source: "a\xffb", re: ast.NewInvertedGroup(ast.NewCharSet('a')), start: 1, end: 2, text: "\xff"},
		{name: "empty match at end", source: "ab", re: ast.NewAtEnd(), start: 2, end: 2, text: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Match(tt.source, tt.re)
			require.True(t, res.Matched)
			start, end := res.ByteSpan()
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
			assert.Equal(t, tt.text, res.Text())
		})
	}

	start, end := NoMatch("abc").ByteSpan()
	assert.Equal(t, -1, start)
	assert.Equal(t, -1, end)
}

func TestMatchFrom(t *testing.T) {
	res := MatchFrom("a1b2", digit(), 2)
	assert.True(t, res.Matched)
	assert.Equal(t, 3, res.Start)
	assert.Equal(t, 4, res.End)

	assert.False(t, MatchFrom("ab", ast.NewConcat(ast.NewAtBeginning(), char('b')), 1).Matched)
	assert.True(t, MatchFrom("ab", ast.NewAtEnd(), 2).Matched)
	assert.False(t, MatchFrom("ab", ast.NewConcat(), 3).Matched)
	assert.False(t, MatchFrom("ab", ast.NewConcat(), -1).Matched)
}

func TestFindAll(t *testing.T) {
	tests := []struct {
		name   string
		re     ast.Node
		source string
		spans  [][2]int
	}{
		{name: "runs of digits", re: ast.Plus(digit()), source: "a1b22c333", spans: [][2]int{{1, 2}, {3, 5}, {6, 9}}},
		{name: "empty matches step forward", re: ast.Star(digit()), source: "a12", spans: [][2]int{{0, 0}, {1, 3}, {3, 3}}},
		{name: "anchor holds once", re: ast.NewConcat(ast.NewAtBeginning(), char('a')), source: "aaa", spans: [][2]int{{0, 1}}},
		{name: "no match", re: char('z'), source: "abc", spans: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var spans [][2]int
			for _, res := range New(tt.re).FindAll(tt.source) {
				spans = append(spans, [2]int{res.Start, res.End})
			}
			assert.Equal(t, tt.spans, spans)
		})
	}
}
