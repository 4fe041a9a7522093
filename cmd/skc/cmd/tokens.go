package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sk-lang/skc/internal/compiler"
	"github.com/sk-lang/skc/internal/diagnostics"
)

func newTokensCmd(opts *options) *cobra.Command {
	var showClass bool

	tokensCmd := &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the token stream of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := compiler.New(opts.cfg, opts.logger)
			tokens, source, err := c.Tokenize(args[0])
			if err != nil {
				if source == nil {
					return err
				}
				dm := diagnostics.NewDiagnosticManager(opts.colorize)
				dm.AddDiagnostic(diagnostics.FromError(source, err))
				opts.report(cmd.ErrOrStderr(), dm)
				return errReported
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, tok := range tokens {
				pos := source.PositionFromOffset(tok.Span.Start)
				if showClass {
					fmt.Fprintf(tw, "%d:%d\t%s\t%s\t%s\n", pos.Line, pos.Column, tok.Type, tok.Type.Class(), lexeme(tok.Lexeme))
				} else {
					fmt.Fprintf(tw, "%d:%d\t%s\t%s\n", pos.Line, pos.Column, tok.Type, lexeme(tok.Lexeme))
				}
			}
			return tw.Flush()
		},
	}

	tokensCmd.Flags().BoolVar(&showClass, "class", false, "show the token class column")
	return tokensCmd
}

func lexeme(s string) string {
	if s == "" {
		return ""
	}
	return fmt.Sprintf("%q", s)
}
