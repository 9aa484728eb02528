package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags puts every flag back to its default so state does not leak
// between invocations of the shared rootCmd.
func resetFlags(c *cobra.Command) {
	reset := func(fl *pflag.Flag) {
		if sv, ok := fl.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = fl.Value.Set(fl.DefValue)
		}
		fl.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCmd executes the root command with args and returns stdout and stderr.
func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func mustRun(t *testing.T, args ...string) (string, string) {
	t.Helper()
	out, errOut, err := runCmd(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v\nstderr: %s", args, err, errOut)
	}
	return out, errOut
}

// setupHome isolates HOME and the working directory.
func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, home)
	return home
}

func writeCSV(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

const salesCSV = "region,units,price,shipped,day\nnorth,1,2.5,true,2023-01-01\nsouth,2,3.5,false,2023-01-02\nnorth,3,,true,2023-01-03\n"

func TestReportMarkdown(t *testing.T) {
	home := setupHome(t)
	p := writeCSV(t, home, "sales.csv", salesCSV)

	out, _ := mustRun(t, "report", p, "--format", "markdown", "--categorical", "region")
	for _, want := range []string{
		"# skim: sales.csv",
		"| Number of rows | 3 |",
		"| Categorical | 1 |",
		"## number",
		"| units | 3 | 0 | 2.00 |",
		"| price | 2 | 1 | 3.00 |",
		"## category",
		"| region | 3 | 0 | 2 | north | 2 |",
		"## datetime",
		"## bool",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}

func TestReportGroupsAndOutputFile(t *testing.T) {
	home := setupHome(t)
	p := writeCSV(t, home, "sales.csv", salesCSV)
	dst := filepath.Join(home, "out", "sales.json")

	_, errOut := mustRun(t, "report", p, "--format", "json", "--groups", "numeric", "-o", dst)
	if !strings.Contains(errOut, "✓ Wrote report to") {
		t.Fatalf("stderr = %q", errOut)
	}
	b, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var doc struct {
		Sections []struct {
			Title string `json:"title"`
		} `json:"sections"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var titles []string
	for _, s := range doc.Sections {
		titles = append(titles, s.Title)
	}
	if strings.Join(titles, ",") != "Data Summary,Data Types,Type Groups,number" {
		t.Fatalf("sections = %v", titles)
	}
}

func TestReportWarnsOnMaxRows(t *testing.T) {
	home := setupHome(t)
	p := writeCSV(t, home, "sales.csv", salesCSV)

	_, errOut := mustRun(t, "report", p, "--format", "md", "--max-rows", "2")
	if !strings.Contains(errOut, "⚠ Warning: processed only 2/3 rows due to MaxRows") {
		t.Fatalf("stderr = %q", errOut)
	}
}

func TestReportErrors(t *testing.T) {
	home := setupHome(t)
	p := writeCSV(t, home, "sales.csv", salesCSV)

	cases := [][]string{
		{"report", filepath.Join(home, "missing.csv")},
		{"report", p, "--format", "html"},
		{"report", p, "--groups", "matrix"},
		{"report", p, "--delimiter", "#"},
		{"report", p, "--header-style", "glowing"},
		{"report", writeCSV(t, home, "notes.txt", "hi")},
	}
	for _, args := range cases {
		if _, _, err := runCmd(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestTypesShowsOverviewOnly(t *testing.T) {
	home := setupHome(t)
	p := writeCSV(t, home, "sales.csv", salesCSV)

	out, _ := mustRun(t, "types", p, "--format", "markdown")
	if !strings.Contains(out, "## Type Groups") || !strings.Contains(out, "| numeric | 2 |") {
		t.Fatalf("types output:\n%s", out)
	}
	if strings.Contains(out, "## number") {
		t.Fatalf("types should not summarise columns:\n%s", out)
	}
}

func TestTableFormatIsDefault(t *testing.T) {
	home := setupHome(t)
	p := writeCSV(t, home, "sales.csv", salesCSV)

	out, _ := mustRun(t, "report", p)
	if !strings.Contains(out, "skim: sales.csv") || !strings.Contains(out, "End") {
		t.Fatalf("table output:\n%s", out)
	}
}

func TestBatchWritesReportsWithCollisionSuffix(t *testing.T) {
	home := setupHome(t)
	writeCSV(t, home, "d1/metrics.csv", "a,b\n1,x\n2,y\n")
	writeCSV(t, home, "d2/metrics.csv", "a,b\n3,x\n4,y\n")
	writeCSV(t, home, "d2/other.csv", "a\n5\n")
	writeCSV(t, home, "d2/readme.txt", "ignored")
	outDir := filepath.Join(home, "reports")

	_, errOut := mustRun(t, "batch", filepath.Join(home, "d*", "*"), "--format", "markdown", "--output-dir", outDir, "--workers", "2")
	for _, name := range []string{"metrics.skim.md", "metrics__2.skim.md", "other.skim.md"} {
		b, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
		if !strings.Contains(string(b), "## number") {
			t.Fatalf("%s has no numeric section", name)
		}
	}
	if !strings.Contains(errOut, "✓ Wrote 3 reports") {
		t.Fatalf("stderr = %q", errOut)
	}
	entries, _ := os.ReadDir(outDir)
	if len(entries) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(entries))
	}
}

func TestBatchReportsFailures(t *testing.T) {
	home := setupHome(t)
	good := writeCSV(t, home, "good.csv", "a\n1\n")
	bad := writeCSV(t, home, "bad.xlsx", "not a workbook")

	_, _, err := runCmd(t, "batch", good, bad, "--quiet", "--output-dir", filepath.Join(home, "r"))
	if err == nil || !strings.Contains(err.Error(), "1 of 2 files failed") {
		t.Fatalf("err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, "r", "good.skim.txt")); err != nil {
		t.Fatalf("good file not written: %v", err)
	}

	if _, _, err := runCmd(t, "batch", filepath.Join(home, "*.parquet")); err == nil {
		t.Fatalf("expected no-match error")
	}
}

func TestConfigSetAndShow(t *testing.T) {
	home := setupHome(t)

	mustRun(t, "config", "set", "format", "yaml")
	mustRun(t, "config", "set", "batch_workers", "3")
	if _, err := os.Stat(filepath.Join(home, ".skim", "config.yaml")); err != nil {
		t.Fatalf("config not saved: %v", err)
	}
	out, _ := mustRun(t, "config", "show")
	if !strings.Contains(out, "format: yaml") || !strings.Contains(out, "batch_workers: 3") {
		t.Fatalf("config show:\n%s", out)
	}
	if _, _, err := runCmd(t, "config", "set", "colour", "red"); err == nil {
		t.Fatalf("expected unknown key error")
	}

	// The saved format now applies to report.
	p := writeCSV(t, home, "sales.csv", salesCSV)
	out, _ = mustRun(t, "report", p)
	if !strings.HasPrefix(out, "id: ") {
		t.Fatalf("expected yaml output, got:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	setupHome(t)
	out, _ := mustRun(t, "version")
	if out != "skim dev\n" {
		t.Fatalf("version = %q", out)
	}
}

func TestDelimiterHelpDescribesExtensionDefault(t *testing.T) {
	for _, c := range []*cobra.Command{reportCmd, typesCmd, batchCmd} {
		fl := c.Flags().Lookup("delimiter")
		if fl == nil {
			t.Fatalf("%s has no --delimiter flag", c.Name())
		}
		if !strings.Contains(fl.Usage, "by extension") || strings.Contains(fl.Usage, "sniff") {
			t.Fatalf("%s --delimiter usage = %q", c.Name(), fl.Usage)
		}
	}
}

func TestTSVUsesTabByExtension(t *testing.T) {
	home := setupHome(t)
	p := writeCSV(t, home, "data.tsv", "a\tb\n1\tx\n2\ty\n")

	out, _ := mustRun(t, "types", p, "--format", "markdown")
	if !strings.Contains(out, "| Number of columns | 2 |") {
		t.Fatalf("tsv not split on tabs:\n%s", out)
	}
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (stand-in for testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
