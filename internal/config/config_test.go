package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Format != "table" || c.HeaderStyle != "bold cyan" {
		t.Fatalf("output defaults = %q %q", c.Format, c.HeaderStyle)
	}
	if c.MaxRows != 100000 || c.BatchWorkers != 4 || c.OutputDir != "skim_reports" {
		t.Fatalf("defaults = %+v", c)
	}
	if len(c.NullValues) != 6 || len(c.Groups) != 0 {
		t.Fatalf("list defaults = %v %v", c.NullValues, c.Groups)
	}
}

func TestSaveLoadRoundTripWithEnvOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, t.TempDir())

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := c.Set("format", "markdown"); err != nil {
		t.Fatal(err)
	}
	if err := c.Set("groups", "numeric, bool"); err != nil {
		t.Fatal(err)
	}
	if err := c.Set("batch_workers", "2"); err != nil {
		t.Fatal(err)
	}
	if err := Save(c, ""); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".skim", "config.yaml")); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	t.Setenv("SKIM_BATCH_WORKERS", "8")
	got, err := Load("")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Format != "markdown" {
		t.Fatalf("format = %q", got.Format)
	}
	if len(got.Groups) != 2 || got.Groups[1] != "bool" {
		t.Fatalf("groups = %v", got.Groups)
	}
	if got.BatchWorkers != 8 {
		t.Fatalf("env override lost: workers = %d", got.BatchWorkers)
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	wd := t.TempDir()
	chdir(t, wd)
	if err := os.WriteFile(filepath.Join(wd, ".env"), []byte("SKIM_HEADER_STYLE=italic red\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// godotenv sets the process env directly; make sure it is cleaned up.
	t.Setenv("SKIM_HEADER_STYLE", "")
	os.Unsetenv("SKIM_HEADER_STYLE")

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.HeaderStyle != "italic red" {
		t.Fatalf("header_style = %q", c.HeaderStyle)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())
	p := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(p, []byte("max_rows: 10\ndelimiter: \";\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.MaxRows != 10 || c.Delimiter != ";" {
		t.Fatalf("file values = %+v", c)
	}

	if err := os.WriteFile(p, []byte("max_rows: [oops\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(p); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSetRejectsBadValues(t *testing.T) {
	c := &Global{}
	for _, kv := range [][2]string{
		{"max_rows", "many"},
		{"batch_workers", "0"},
		{"delimiter", ";;"},
		{"colour", "red"},
	} {
		if err := c.Set(kv[0], kv[1]); err == nil {
			t.Errorf("Set(%q, %q) should fail", kv[0], kv[1])
		}
	}
	if err := c.Set("null_values", "-,?"); err != nil || len(c.NullValues) != 2 {
		t.Fatalf("null_values = %v (%v)", c.NullValues, err)
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
