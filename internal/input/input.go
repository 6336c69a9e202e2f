// Package input provides the cursor the matcher moves over the source text.
package input

// Input is a position over an immutable string. Positions count characters,
// not bytes.
type Input struct {
	runes []rune
	pos   int
}

// Marker is a saved position. Markers are restored in reverse order of
// creation.
type Marker struct{ pos int }

func Of(s string) *Input {
	return &Input{runes: []rune(s)}
}

func (in *Input) AtBeginning() bool { return in.pos == 0 }
func (in *Input) AtEnd() bool       { return in.pos == len(in.runes) }
func (in *Input) Pos() int          { return in.pos }
func (in *Input) Len() int          { return len(in.runes) }

// Current returns the character under the cursor. It panics at the end of
// input; callers check AtEnd first.
func (in *Input) Current() rune {
	if in.AtEnd() {
		panic("input: Current called at end of input")
	}
	return in.runes[in.pos]
}

func (in *Input) Advance(n int) {
	if n < 0 || in.pos+n > len(in.runes) {
		panic("input: advance past end of input")
	}
	in.pos += n
}

func (in *Input) Mark() Marker { return Marker{pos: in.pos} }

func (in *Input) GoTo(m Marker) { in.pos = m.pos }
