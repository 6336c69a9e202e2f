package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/funkybooboo/reng/internal/config"
	"github.com/funkybooboo/reng/internal/matcher"
)

type printer struct {
	w     io.Writer
	match *color.Color
	file  *color.Color
	sep   *color.Color
}

func newPrinter(w io.Writer, mode string) (*printer, error) {
	p := &printer{
		w:     w,
		match: color.New(color.FgRed, color.Bold),
		file:  color.New(color.FgMagenta),
		sep:   color.New(color.FgCyan),
	}
	switch mode {
	case config.ColorAuto, "":
	case config.ColorAlways:
		for _, c := range []*color.Color{p.match, p.file, p.sep} {
			c.EnableColor()
		}
	case config.ColorNever:
		for _, c := range []*color.Color{p.match, p.file, p.sep} {
			c.DisableColor()
		}
	default:
		return nil, fmt.Errorf("invalid color mode %q", mode)
	}
	return p, nil
}

// printLine writes a matching line with its match highlighted.
func (p *printer) printLine(prefix string, res matcher.Result) error {
	return p.write(prefix, p.highlight(res))
}

// printMatch writes only the matched span. Empty matches print nothing.
func (p *printer) printMatch(prefix string, res matcher.Result) error {
	if res.Start == res.End {
		return nil
	}
	return p.write(prefix, p.match.Sprint(res.Text()))
}

func (p *printer) write(prefix, line string) error {
	if prefix != "" {
		line = p.file.Sprint(prefix) + p.sep.Sprint(":") + line
	}
	_, err := fmt.Fprintln(p.w, line)
	return err
}

// highlight slices Source by bytes so the line is printed exactly as read,
// invalid UTF-8 included.
func (p *printer) highlight(res matcher.Result) string {
	if res.Start == res.End {
		return res.Source
	}
	start, end := res.ByteSpan()
	return res.Source[:start] + p.match.Sprint(res.Source[start:end]) + res.Source[end:]
}
