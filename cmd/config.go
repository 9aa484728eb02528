package cmd

import (
	"fmt"
	"strings"

	cfgpkg "github.com/KaramelBytes/skim-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set skim configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "format: %s\n", cfg.Format)
		fmt.Fprintf(out, "header_style: %s\n", cfg.HeaderStyle)
		if len(cfg.Groups) > 0 {
			fmt.Fprintf(out, "groups: %s\n", strings.Join(cfg.Groups, ","))
		} else {
			fmt.Fprintln(out, "groups: (all)")
		}
		fmt.Fprintf(out, "max_rows: %d\n", cfg.MaxRows)
		if cfg.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %q\n", cfg.Delimiter)
		}
		if cfg.Decimal != "" {
			fmt.Fprintf(out, "decimal: %q\n", cfg.Decimal)
		}
		if cfg.Thousands != "" {
			fmt.Fprintf(out, "thousands: %q\n", cfg.Thousands)
		}
		fmt.Fprintf(out, "null_values: %q\n", cfg.NullValues)
		fmt.Fprintf(out, "output_dir: %s\n", cfg.OutputDir)
		fmt.Fprintf(out, "batch_workers: %d\n", cfg.BatchWorkers)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
