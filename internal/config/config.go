package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/nestroute/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "nestroute.json"

	// DefaultSuffix is appended to the package name to form the generated file name.
	DefaultSuffix = "_target.go"
)

// Config represents the nestroute.json configuration.
type Config struct {
	// Packages lists the package directories to generate, relative to the
	// config file.
	Packages []string `json:"packages,omitempty"`

	// Suffix is the generated file name suffix (default "_target.go").
	Suffix string `json:"suffix,omitempty"`

	// Exclude lists file name patterns (filepath.Match syntax) that the
	// scanner skips.
	Exclude []string `json:"exclude,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// New returns a configuration with defaults applied.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads nestroute.json from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse nestroute.json: " + err.Error()).
			WithSuggestion("Check that nestroute.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

func (c *Config) applyDefaults() {
	if c.Suffix == "" {
		c.Suffix = DefaultSuffix
	}
}

// Validate checks the configuration for values the generator cannot use.
func (c *Config) Validate() error {
	if !strings.HasSuffix(c.Suffix, ".go") || strings.HasSuffix(c.Suffix, "_test.go") {
		return errors.New("E121").
			WithDetail("Suffix " + c.Suffix + " would not produce a compiled Go file").
			WithSuggestion(`Use a suffix such as "_target.go"`)
	}
	for _, pattern := range c.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return errors.New("E120").
				WithDetail("Invalid exclude pattern " + pattern + ": " + err.Error())
		}
	}
	return nil
}

// PackageDirs returns the configured package directories resolved against
// the config file's directory.
func (c *Config) PackageDirs() []string {
	dirs := make([]string, 0, len(c.Packages))
	for _, p := range c.Packages {
		if !filepath.IsAbs(p) && c.Dir() != "" {
			p = filepath.Join(c.Dir(), p)
		}
		dirs = append(dirs, filepath.Clean(p))
	}
	return dirs
}

// OutputFile returns the generated file path for package pkgName in dir.
func (c *Config) OutputFile(dir, pkgName string) string {
	return filepath.Join(dir, pkgName+c.Suffix)
}

// Excluded reports whether the scanner should skip the named file.
func (c *Config) Excluded(name string) bool {
	base := filepath.Base(name)
	for _, pattern := range c.Exclude {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// Exists checks if a nestroute.json exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up from startDir looking for nestroute.json.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads the nearest nestroute.json above the working
// directory. Without one, the defaults are returned.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return LoadNearest(wd)
}

// LoadNearest loads the nearest nestroute.json at or above dir, or returns
// the defaults when there is none.
func LoadNearest(dir string) (*Config, error) {
	root, err := FindProjectRoot(dir)
	if err != nil {
		return New(), nil
	}
	return Load(root)
}
