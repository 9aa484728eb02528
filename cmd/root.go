package cmd

import (
	"fmt"
	"io"
	"os"

	cfgpkg "github.com/KaramelBytes/skim-cli/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "skim",
	Short: "skim: quick summary statistics for tabular files",
	Long: `skim profiles CSV/TSV/XLSX files: shape, column types, and per-type summaries
(numeric statistics with an inline histogram, categories, dates, strings, booleans).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Runs before every command, so tests that switch HOME get a fresh config.
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.skim/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{Format: "table", MaxRows: 100000, BatchWorkers: 4, OutputDir: "skim_reports"}
	}
	cfg = c
	debugf(os.Stderr, "config loaded: format=%s max_rows=%d workers=%d", cfg.Format, cfg.MaxRows, cfg.BatchWorkers)
}

func debugf(w io.Writer, format string, args ...any) {
	if debug {
		fmt.Fprintf(w, "debug: "+format+"\n", args...)
	}
}

func warnf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "⚠ Warning: "+format+"\n", args...)
}
