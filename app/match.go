package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/funkybooboo/reng/internal/matcher"
	"github.com/funkybooboo/reng/internal/parser"
)

// newMatchCmd reports match positions for each argument instead of printing
// lines.
func newMatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "match PATTERN INPUT...",
		Short: "Print the leftmost match span of PATTERN in each INPUT",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			re, err := parser.Parse(args[0])
			if err != nil {
				return &exitError{code: 2, err: err}
			}
			m := matcher.New(re, matcher.WithLogger(opts.logger))

			results, err := runWithTimeout(cmd.Context(), opts.timeout, func(ctx context.Context) ([]matcher.Result, error) {
				return m.MatchAll(ctx, args[1:], opts.config.Workers)
			})
			if err != nil {
				return &exitError{code: 2, err: err}
			}

			found := false
			w := cmd.OutOrStdout()
			for _, res := range results {
				if res.Matched {
					found = true
					fmt.Fprintf(w, "%d\t%d\t%q\n", res.Start, res.End, res.Text())
				} else {
					fmt.Fprintln(w, "no match")
				}
			}
			opts.logger.Debug("match finished", zap.Int("inputs", len(results)), zap.Bool("found", found))

			if !found {
				return errNoMatch
			}
			return nil
		},
	}
}
