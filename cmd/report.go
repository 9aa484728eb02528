package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/skim-cli/internal/utils"
)

var (
	rpFlags  loadFlags
	rpOutput string
)

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Summarise a CSV/TSV/XLSX file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := rpFlags.renderer()
		if err != nil {
			return err
		}
		debugf(cmd.ErrOrStderr(), "loading %s", args[0])
		rep, err := rpFlags.skimFile(args[0], false)
		if err != nil {
			return err
		}
		debugf(cmd.ErrOrStderr(), "report %s: %d rows, %d columns", rep.ID, rep.Rows, rep.Cols)
		for _, w := range rep.Warnings {
			warnf(cmd.ErrOrStderr(), "%s", w)
		}

		if rpOutput == "" {
			return r.Render(cmd.OutOrStdout(), rep)
		}
		var buf bytes.Buffer
		if err := r.Render(&buf, rep); err != nil {
			return err
		}
		if err := utils.EnsureDir(filepath.Dir(rpOutput)); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		if err := utils.SafeWriteFile(rpOutput, buf.Bytes()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote report to %s\n", rpOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	rpFlags.register(reportCmd, true)
	reportCmd.Flags().StringVarP(&rpOutput, "output", "o", "", "write the report to this file instead of stdout")
}
