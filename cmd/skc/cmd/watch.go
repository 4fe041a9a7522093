package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sk-lang/skc/internal/compiler"
	"github.com/sk-lang/skc/internal/diagnostics"
	"github.com/sk-lang/skc/internal/printer"
	"github.com/sk-lang/skc/internal/watch"
)

func newWatchCmd(opts *options) *cobra.Command {
	flags := &parseFlags{}

	watchCmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-parse a file whenever it changes",
		Long: `Parse FILE, then parse it again every time it is written.

Each run is logged with its own run id. Stop with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := flags.apply(opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := &watcher{
				opts:     opts,
				compiler: compiler.New(opts.cfg, opts.logger),
				format:   format,
				spans:    flags.spans,
				stdout:   cmd.OutOrStdout(),
				stderr:   cmd.ErrOrStderr(),
			}

			path := args[0]
			w.run(ctx, path)
			opts.logger.Info("watching %s (debounce %s)", path, opts.cfg.Watch.Debounce)

			return watch.File(ctx, path, opts.cfg.Watch.Debounce.Duration, func(ev watch.Event) {
				opts.logger.Debug("%s: %s", ev.Path, ev.Op)
				w.run(ctx, path)
			})
		},
	}

	watchCmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: tree, json or yaml (default from config)")
	watchCmd.Flags().StringVar(&flags.assoc, "assoc", "", "associativity of equal-precedence chains: right or left (default from config)")
	watchCmd.Flags().BoolVar(&flags.spans, "spans", false, "show byte spans in tree output")
	return watchCmd
}

// watcher re-parses one file per change
type watcher struct {
	opts     *options
	compiler *compiler.Compiler
	format   string
	spans    bool
	stdout   io.Writer
	stderr   io.Writer
}

// run parses path once and prints the tree or the diagnostics. It reports
// whether the parse succeeded.
func (w *watcher) run(ctx context.Context, path string) bool {
	log := w.opts.logger.With("run", uuid.New().String())

	result := w.compiler.ParseFile(ctx, path)

	dm := diagnostics.NewDiagnosticManager(w.opts.colorize)
	for _, d := range result.Diagnostics() {
		dm.AddDiagnostic(d)
	}
	w.opts.report(w.stderr, dm)

	if result.Failed() {
		log.Warn("%s: %d error(s)", path, dm.ErrorCount())
		return false
	}

	printOpts := printer.DefaultOptions()
	printOpts.ShowSpans = w.spans
	if err := printer.Write(w.stdout, w.format, result.Nodes, printOpts); err != nil {
		log.Error("%s: %v", path, err)
		return false
	}
	log.Info("%s: %d nodes in %s", path, len(result.Nodes), result.Took)
	return true
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
