package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/skim-cli/internal/ingest"
	"github.com/KaramelBytes/skim-cli/internal/render"
	"github.com/KaramelBytes/skim-cli/internal/utils"
)

var (
	bFlags     loadFlags
	bOutputDir string
	bWorkers   int
	bFailFast  bool
	bQuiet     bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <files...>",
	Short: "Summarise many CSV/TSV/XLSX files concurrently into an output directory",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := expandInputs(args)
		if err != nil {
			return err
		}
		r, err := bFlags.renderer()
		if err != nil {
			return err
		}
		// Validate shared options once instead of per file.
		if _, err := bFlags.ingestOptions(); err != nil {
			return err
		}
		if _, err := bFlags.skimOptions(""); err != nil {
			return err
		}

		outDir, workers := bOutputDir, bWorkers
		if cfg != nil {
			if outDir == "" {
				outDir = cfg.OutputDir
			}
			if workers <= 0 {
				workers = cfg.BatchWorkers
			}
		}
		if outDir == "" {
			outDir = "skim_reports"
		}
		if workers <= 0 {
			workers = 1
		}
		if err := utils.EnsureDir(outDir); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		names := utils.OutputNames(files, r.Ext())
		debugf(cmd.ErrOrStderr(), "batch: %d files, %d workers, output %s", len(files), workers, outDir)

		var (
			mu     sync.Mutex
			done   int
			failed []string
		)
		report := func(format string, args ...any) {
			if !bQuiet {
				fmt.Fprintf(cmd.ErrOrStderr(), format, args...)
			}
		}

		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(workers)
		for i, path := range files {
			i, path := i, path
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				out := filepath.Join(outDir, names[i])
				warnings, err := skimToFile(path, out, r)

				mu.Lock()
				defer mu.Unlock()
				done++
				for _, w := range warnings {
					warnf(cmd.ErrOrStderr(), "%s: %s", path, w)
				}
				if err != nil {
					failed = append(failed, path)
					report("[%d/%d] ✗ %s: %v\n", done, len(files), path, err)
					if bFailFast {
						return fmt.Errorf("%s: %w", path, err)
					}
					return nil
				}
				report("[%d/%d] ✓ %s → %s\n", done, len(files), path, out)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		if len(failed) > 0 {
			sort.Strings(failed)
			return fmt.Errorf("%d of %d files failed: %v", len(failed), len(files), failed)
		}
		report("✓ Wrote %d reports to %s\n", len(files), outDir)
		return nil
	},
}

func skimToFile(path, out string, r render.Renderer) ([]string, error) {
	rep, err := bFlags.skimFile(path, false)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, rep); err != nil {
		return rep.Warnings, fmt.Errorf("render: %w", err)
	}
	return rep.Warnings, utils.SafeWriteFile(out, buf.Bytes())
}

// expandInputs resolves globs, keeps literal paths that exist, drops
// duplicates and unsupported extensions, and sorts the result.
func expandInputs(args []string) ([]string, error) {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok || !ingest.Supported(m) {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, errors.New("no input files matched")
	}
	sort.Strings(files)
	return files, nil
}

func init() {
	rootCmd.AddCommand(batchCmd)
	bFlags.register(batchCmd, true)
	batchCmd.Flags().StringVar(&bOutputDir, "output-dir", "", "directory for the reports (default from config: skim_reports)")
	batchCmd.Flags().IntVar(&bWorkers, "workers", 0, "files processed concurrently (default from config)")
	batchCmd.Flags().BoolVar(&bFailFast, "fail-fast", false, "stop at the first file that fails")
	batchCmd.Flags().BoolVar(&bQuiet, "quiet", false, "suppress progress output")
}
