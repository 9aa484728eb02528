package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Output
	Format      string `mapstructure:"format" yaml:"format"`
	HeaderStyle string `mapstructure:"header_style" yaml:"header_style"`
	// Groups limits the summary sections; empty means every group.
	Groups []string `mapstructure:"groups" yaml:"groups"`

	// Loading
	MaxRows    int      `mapstructure:"max_rows" yaml:"max_rows"`
	Delimiter  string   `mapstructure:"delimiter" yaml:"delimiter"`
	Decimal    string   `mapstructure:"decimal" yaml:"decimal"`
	Thousands  string   `mapstructure:"thousands" yaml:"thousands"`
	NullValues []string `mapstructure:"null_values" yaml:"null_values"`

	// Batch
	OutputDir    string `mapstructure:"output_dir" yaml:"output_dir"`
	BatchWorkers int    `mapstructure:"batch_workers" yaml:"batch_workers"`
}

// Dir returns ~/.skim.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".skim"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.skim/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file (cfgFile or ~/.skim/config.yaml) > defaults.
// A .env file in the working directory is loaded first; variables already set
// in the environment win over it.
func Load(cfgFile string) (*Global, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("SKIM")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("format", "table")
	v.SetDefault("header_style", "bold cyan")
	v.SetDefault("groups", []string{})
	v.SetDefault("max_rows", 100000)
	v.SetDefault("delimiter", "")
	v.SetDefault("decimal", "")
	v.SetDefault("thousands", "")
	v.SetDefault("null_values", []string{"", "NA", "N/A", "null", "NULL", "None"})
	v.SetDefault("output_dir", "skim_reports")
	v.SetDefault("batch_workers", 4)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.BatchWorkers < 1 {
		c.BatchWorkers = 1
	}
	return &c, nil
}

// Set assigns one key from its string form, as typed on the command line.
func (c *Global) Set(key, val string) error {
	switch key {
	case "format":
		c.Format = val
	case "header_style":
		c.HeaderStyle = val
	case "groups":
		c.Groups = splitList(val)
	case "max_rows":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for max_rows: %v", val)
		}
		c.MaxRows = i
	case "delimiter", "decimal", "thousands":
		if utf8.RuneCountInString(val) > 1 {
			return fmt.Errorf("invalid %s: %q (use a single character)", key, val)
		}
		switch key {
		case "delimiter":
			c.Delimiter = val
		case "decimal":
			c.Decimal = val
		default:
			c.Thousands = val
		}
	case "null_values":
		c.NullValues = strings.Split(val, ",")
	case "output_dir":
		c.OutputDir = val
	case "batch_workers":
		i, err := strconv.Atoi(val)
		if err != nil || i < 1 {
			return fmt.Errorf("invalid int for batch_workers: %v", val)
		}
		c.BatchWorkers = i
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func splitList(val string) []string {
	var out []string
	for _, p := range strings.Split(val, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
