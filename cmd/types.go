package cmd

import (
	"github.com/spf13/cobra"
)

var tyFlags loadFlags

var typesCmd = &cobra.Command{
	Use:   "types <file>",
	Short: "Show the shape, column types and type groups of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := tyFlags.renderer()
		if err != nil {
			return err
		}
		rep, err := tyFlags.skimFile(args[0], true)
		if err != nil {
			return err
		}
		for _, w := range rep.Warnings {
			warnf(cmd.ErrOrStderr(), "%s", w)
		}
		return r.Render(cmd.OutOrStdout(), rep)
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
	tyFlags.register(typesCmd, false)
}
