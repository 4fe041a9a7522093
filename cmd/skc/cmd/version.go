package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sk-lang/skc/internal/cli"
)

func newVersionCmd() *cobra.Command {
	var jsonOutput bool

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// version works even when skc.toml is broken
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.PrintVersion(cmd.OutOrStdout(), "skc", jsonOutput)
		},
	}

	versionCmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "print JSON")
	return versionCmd
}
