package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultConfigFile = "mdsite.yaml"

// Config describes where the site sources are and where it is written to.
// Directories are slash separated and relative to the site root.
type Config struct {
	ContentDir string        `yaml:"content"`
	StaticDir  string        `yaml:"static"`
	PublicDir  string        `yaml:"public"`
	Template   string        `yaml:"template"`
	BasePath   string        `yaml:"base_path"`
	Workers    int           `yaml:"workers"`
	LogPath    string        `yaml:"log"`
	Interval   time.Duration `yaml:"interval"`
}

func DefaultConfig() Config {
	return Config{
		ContentDir: "content",
		StaticDir:  "static",
		PublicDir:  "public",
		Template:   "template.html",
		BasePath:   "/",
		Workers:    runtime.NumCPU(),
		Interval:   500 * time.Millisecond,
	}
}

// LoadConfig returns the defaults overridden by the YAML file at path and by
// MDSITE_* environment variables. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if err := loadConfigFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := loadConfigFromEnv(&cfg, os.Getenv); err != nil {
		return cfg, fmt.Errorf("environment: %w", err)
	}
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func loadConfigFromEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("MDSITE_BASE_PATH"); v != "" {
		cfg.BasePath = v
	}
	if v := getenv("MDSITE_PUBLIC"); v != "" {
		cfg.PublicDir = v
	}
	if v := getenv("MDSITE_WORKERS"); v != "" {
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("MDSITE_WORKERS: invalid number %q", v)
		}
		cfg.Workers = i
	}
	return nil
}

// Normalize cleans directory paths, makes the base path end with a slash and
// replaces a zero worker count with the number of CPUs.
func (c *Config) Normalize() {
	c.ContentDir = cleanDir(c.ContentDir)
	c.StaticDir = cleanDir(c.StaticDir)
	c.PublicDir = cleanDir(c.PublicDir)
	c.Template = cleanDir(c.Template)
	c.BasePath = NormalizeBasePath(c.BasePath)
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
}

func cleanDir(dir string) string {
	if dir == "" {
		return ""
	}
	return path.Clean(strings.ReplaceAll(dir, "\\", "/"))
}

// NormalizeBasePath makes base start and end with a slash, "" becomes "/"
func NormalizeBasePath(base string) string {
	base = strings.TrimSpace(base)
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}

func (c Config) Validate() error {
	dirs := []struct{ name, value string }{
		{"content", c.ContentDir},
		{"static", c.StaticDir},
		{"public", c.PublicDir},
		{"template", c.Template},
	}
	for _, d := range dirs {
		if d.value == "" {
			return fmt.Errorf("%s path is empty", d.name)
		}
		if !fs.ValidPath(d.value) {
			return fmt.Errorf("%s path %q must be relative to the site root", d.name, d.value)
		}
	}
	if c.PublicDir == "." {
		return errors.New("public directory cannot be the site root")
	}
	if c.PublicDir == c.ContentDir || c.PublicDir == c.StaticDir {
		return fmt.Errorf("public directory %q overlaps a source directory", c.PublicDir)
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid workers count: %d", c.Workers)
	}
	return nil
}
