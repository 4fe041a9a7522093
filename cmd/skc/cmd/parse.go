package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sk-lang/skc/internal/compiler"
	"github.com/sk-lang/skc/internal/diagnostics"
	"github.com/sk-lang/skc/internal/printer"
)

type parseFlags struct {
	format string
	assoc  string
	spans  bool
}

func newParseCmd(opts *options) *cobra.Command {
	flags := &parseFlags{}

	parseCmd := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Print the syntax tree of one or more files",
		Long: `Parse one or more Sk files and print their syntax trees.

Files are parsed concurrently (build.parallelism in skc.toml). Errors and
notes for constructs that are not parsed yet go to stderr; trees go to
stdout.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(contextOf(cmd), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, flags, args)
		},
	}

	parseCmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: tree, json or yaml (default from config)")
	parseCmd.Flags().StringVar(&flags.assoc, "assoc", "", "associativity of equal-precedence chains: right or left (default from config)")
	parseCmd.Flags().BoolVar(&flags.spans, "spans", false, "show byte spans in tree output")
	return parseCmd
}

// apply folds the command flags into the loaded configuration
func (f *parseFlags) apply(opts *options) (string, error) {
	if f.assoc != "" {
		opts.cfg.Parser.Associativity = f.assoc
		if _, err := opts.cfg.Associativity(); err != nil {
			return "", err
		}
	}

	format := opts.cfg.Output.Format
	if f.format != "" {
		format = f.format
	}
	return printer.ParseFormat(format)
}

func runParse(ctx context.Context, stdout, stderr io.Writer, opts *options, flags *parseFlags, paths []string) error {
	format, err := flags.apply(opts)
	if err != nil {
		return err
	}

	c := compiler.New(opts.cfg, opts.logger)
	results, stats, err := c.ParseFiles(ctx, paths)
	if err != nil {
		return err
	}

	printOpts := printer.DefaultOptions()
	printOpts.ShowSpans = flags.spans

	dm := diagnostics.NewDiagnosticManager(opts.colorize)
	for _, result := range results {
		for _, d := range result.Diagnostics() {
			dm.AddDiagnostic(d)
		}
		if result.Failed() {
			continue
		}
		if len(results) > 1 && format == printer.FormatTree {
			fmt.Fprintf(stdout, "==> %s <==\n", result.Path)
		}
		if err := printer.Write(stdout, format, result.Nodes, printOpts); err != nil {
			return err
		}
	}

	opts.logger.Info("parsed %d file(s): %d ok, %d failed, %d nodes in %s",
		stats.Files, stats.Succeeded, stats.Failed, stats.Nodes, stats.Took)

	opts.report(stderr, dm)
	if stats.Failed > 0 {
		return errReported
	}
	return nil
}
