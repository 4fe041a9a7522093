// Package cmd implements the skc command tree.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sk-lang/skc/internal/cli"
	"github.com/sk-lang/skc/internal/config"
	"github.com/sk-lang/skc/internal/diagnostics"
)

// errReported marks a failure whose diagnostics were already printed
var errReported = errors.New("errors reported")

// options holds the persistent flags and the state derived from them
type options struct {
	cfgFile   string
	verbose   bool
	debug     bool
	colorMode string

	cfg      *config.Config
	logger   *cli.Logger
	colorize bool
}

// NewRootCmd builds the skc command tree
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "skc",
		Short: "skc - Sk source front end",
		Long: `skc tokenizes and parses Sk source files.

Commands:
  tokens   - print the token stream of a file
  parse    - print the syntax tree of one or more files
  watch    - re-parse a file whenever it changes
  version  - print version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", config.DefaultPath, "config file")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "debug output")
	rootCmd.PersistentFlags().StringVar(&opts.colorMode, "color", "", "color mode: auto, always or never (default from config)")

	rootCmd.AddCommand(
		newTokensCmd(opts),
		newParseCmd(opts),
		newWatchCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command and returns the process exit code
func Execute() int {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			printError(rootCmd.ErrOrStderr(), err)
		}
		return 1
	}
	return 0
}

// setup loads the configuration and builds the logger
func (o *options) setup(stderr io.Writer) error {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return err
	}
	version, err := cli.SemVer()
	if err != nil {
		return err
	}
	if err := cfg.CheckRequires(version); err != nil {
		return err
	}
	if o.colorMode != "" {
		cfg.Output.Color = o.colorMode
	}

	colorize, err := cli.UseColor(cfg.Output.Color, os.Stderr.Fd())
	if err != nil {
		return err
	}

	level, err := cli.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	if o.verbose && level > cli.LevelInfo {
		level = cli.LevelInfo
	}
	if o.debug {
		level = cli.LevelDebug
	}

	o.cfg = cfg
	o.colorize = colorize
	o.logger = cli.NewLogger(stderr, level, colorize)
	o.logger.Debug("config %s: associativity=%s max_depth=%d format=%s parallelism=%d",
		o.cfgFile, cfg.Parser.Associativity, cfg.Parser.MaxDepth, cfg.Output.Format, cfg.Build.Parallelism)
	return nil
}

// report prints the collected diagnostics, if any, to w
func (o *options) report(w io.Writer, dm *diagnostics.DiagnosticManager) {
	if len(dm.Diagnostics()) == 0 {
		return
	}
	fmt.Fprint(w, dm.FormatAll())
	fmt.Fprintln(w)
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "skc: %v\n", err)
}
