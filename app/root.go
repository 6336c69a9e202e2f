package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/funkybooboo/reng/internal/config"
)

// options are shared by every subcommand. They are filled in by the root
// command before a subcommand runs.
type options struct {
	configPath string
	timeout    time.Duration
	debug      bool

	config config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{logger: zap.NewNop()}
	flags := &grepFlags{}

	rootCmd := &cobra.Command{
		Use:   "reng [-E PATTERN] [paths...]",
		Short: "reng - a backtracking regex matcher with a grep front end",
		Args:  cobra.ArbitraryArgs,
		// exit statuses are reported by run
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Format: reng -E PATTERN [paths...] => behaves like the grep subcommand
			if !cmd.Flags().Changed("extended") {
				return cmd.Help()
			}
			return runGrep(cmd, opts, flags, flags.pattern, args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", config.DefaultPath, "Path to the configuration file")
	pf.DurationVar(&opts.timeout, "timeout", 0, "Wall-clock budget for the whole run (0 uses the configured value)")
	pf.BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	rootCmd.Flags().StringVarP(&flags.pattern, "extended", "E", "", "Pattern to search for")
	flags.register(rootCmd.Flags())

	rootCmd.AddCommand(newGrepCmd(opts))
	rootCmd.AddCommand(newMatchCmd(opts))
	rootCmd.AddCommand(newInitCmd(opts))
	return rootCmd
}

func (o *options) setup(cmd *cobra.Command) error {
	level := zapcore.WarnLevel
	if o.debug {
		level = zapcore.DebugLevel
	}
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	o.logger = zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(cmd.ErrOrStderr()),
		level,
	))

	if cmd.Name() == "init" {
		return nil
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return &exitError{code: 2, err: fmt.Errorf("load configuration: %w", err)}
	}
	if !cmd.Flags().Changed("timeout") {
		o.timeout = cfg.Timeout
	}
	o.config = cfg
	o.logger.Debug("configuration loaded",
		zap.String("path", o.configPath),
		zap.String("color", cfg.Color),
		zap.Int("workers", cfg.Workers),
		zap.Duration("timeout", o.timeout),
	)
	return nil
}

// runWithTimeout runs f under ctx and gives up waiting once ctx is done. A
// single search cannot be interrupted, so f may keep running in the
// background after a timeout.
func runWithTimeout[T any](ctx context.Context, timeout time.Duration, f func(context.Context) (T, error)) (T, error) {
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := f(ctx)
		done <- result{v: v, err: err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("gave up after %s: %w", timeout, ctx.Err())
	case r := <-done:
		return r.v, r.err
	}
}
