package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/funkybooboo/reng/internal/matcher"
	"github.com/funkybooboo/reng/internal/parser"
)

const (
	stdinName = "(standard input)"

	// maxLineSize caps a single input line.
	maxLineSize = 64 << 20
)

type grepFlags struct {
	pattern      string
	recursive    bool
	onlyMatching bool
	color        string
	workers      int
}

func (f *grepFlags) register(set *pflag.FlagSet) {
	set.BoolVarP(&f.recursive, "recursive", "r", false, "Search directories recursively")
	set.BoolVarP(&f.onlyMatching, "only-matching", "o", false, "Print every non-empty match on its own line")
	set.StringVar(&f.color, "color", "", "Highlight matches: auto, always or never")
	set.IntVar(&f.workers, "workers", 0, "Lines matched in parallel (0 uses the configured value)")
}

func newGrepCmd(opts *options) *cobra.Command {
	flags := &grepFlags{}
	cmd := &cobra.Command{
		Use:   "grep PATTERN [paths...]",
		Short: "Print lines that contain a match for PATTERN",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrep(cmd, opts, flags, args[0], args[1:])
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func runGrep(cmd *cobra.Command, opts *options, flags *grepFlags, pattern string, paths []string) error {
	re, err := parser.Parse(pattern)
	if err != nil {
		return &exitError{code: 2, err: err}
	}
	opts.logger.Debug("pattern parsed", zap.String("pattern", pattern))

	colorMode := opts.config.Color
	if flags.color != "" {
		colorMode = flags.color
	}
	out, err := newPrinter(cmd.OutOrStdout(), colorMode)
	if err != nil {
		return &exitError{code: 2, err: err}
	}

	workers := opts.config.Workers
	if flags.workers > 0 {
		workers = flags.workers
	}

	g := &grepper{
		matcher:      matcher.New(re, matcher.WithLogger(opts.logger)),
		logger:       opts.logger,
		out:          out,
		stdin:        cmd.InOrStdin(),
		workers:      workers,
		recursive:    flags.recursive || opts.config.Recursive,
		onlyMatching: flags.onlyMatching,
	}

	found, err := runWithTimeout(cmd.Context(), opts.timeout, func(ctx context.Context) (bool, error) {
		return g.run(ctx, paths)
	})
	if err != nil {
		return &exitError{code: 2, err: err}
	}
	if !found {
		return errNoMatch
	}
	return nil
}

type grepper struct {
	matcher      *matcher.Matcher
	logger       *zap.Logger
	out          *printer
	stdin        io.Reader
	workers      int
	recursive    bool
	onlyMatching bool
}

func (g *grepper) run(ctx context.Context, paths []string) (bool, error) {
	if len(paths) == 0 {
		// No paths: read stdin
		return g.scan(ctx, stdinName, g.stdin, false)
	}

	foundAny := false
	if g.recursive {
		for _, root := range paths {
			err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					g.logger.Warn("skipping unreadable path", zap.String("path", path), zap.Error(err))
					return nil
				}
				if d.IsDir() {
					return nil
				}
				f, err := os.Open(path)
				if err != nil {
					g.logger.Warn("skipping unreadable file", zap.String("path", path), zap.Error(err))
					return nil
				}
				defer f.Close()
				found, err := g.scan(ctx, path, f, true)
				if err != nil {
					return err
				}
				foundAny = foundAny || found
				return nil
			})
			if err != nil {
				return foundAny, fmt.Errorf("walk %s: %w", root, err)
			}
		}
		return foundAny, nil
	}

	multi := len(paths) > 1
	for _, path := range paths {
		found, err := g.scanFile(ctx, path, multi)
		if err != nil {
			return foundAny, err
		}
		foundAny = foundAny || found
	}
	return foundAny, nil
}

func (g *grepper) scanFile(ctx context.Context, path string, addPrefix bool) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	return g.scan(ctx, path, f, addPrefix)
}

// scan matches every line of r and prints the matching ones, prefixed with
// name when addPrefix is set.
func (g *grepper) scan(ctx context.Context, name string, r io.Reader, addPrefix bool) (bool, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("read %s: %w", name, err)
	}
	g.logger.Debug("scanning", zap.String("input", name), zap.Int("lines", len(lines)))

	results, err := g.matcher.MatchAll(ctx, lines, g.workers)
	if err != nil {
		return false, err
	}

	found := false
	for _, res := range results {
		if !res.Matched {
			continue
		}
		found = true
		prefix := ""
		if addPrefix {
			prefix = name
		}
		if !g.onlyMatching {
			if err := g.out.printLine(prefix, res); err != nil {
				return found, err
			}
			continue
		}
		for _, m := range g.matcher.FindAll(res.Source) {
			if err := g.out.printMatch(prefix, m); err != nil {
				return found, err
			}
		}
	}
	return found, nil
}
