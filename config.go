package decima

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the contents of a decima.yaml file. Relative paths are
// taken relative to the directory holding the file.
type FileConfig struct {
	// Root is the extracted game directory that external refs and cache
	// paths resolve against.
	Root string `yaml:"root"`

	// Variant is a name accepted by ParseVariant. Empty means hzd-pc.
	Variant string `yaml:"variant"`

	// TypeMap is the path of a YAML type map file.
	TypeMap string `yaml:"type_map"`

	// Lenient downgrades decoder under-reads to warnings.
	Lenient bool `yaml:"lenient"`

	dir string
}

// LoadConfig reads a decima.yaml file.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var c FileConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	c.dir = filepath.Dir(path)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &c, nil
}

func (c *FileConfig) Validate() error {
	if c.Variant != "" {
		if _, err := ParseVariant(c.Variant); err != nil {
			return err
		}
	}
	return nil
}

func (c *FileConfig) path(p string) string {
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

// Options converts the file into Session and Repacker options, loading the
// type map it names.
func (c *FileConfig) Options() ([]Option, error) {
	var opts []Option
	if c.Variant != "" {
		v, err := ParseVariant(c.Variant)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithVariant(v))
	}
	if c.Root != "" {
		opts = append(opts, WithRootDir(c.path(c.Root)))
	}
	if c.TypeMap != "" {
		m, err := LoadTypeMap(c.path(c.TypeMap))
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithTypeMap(m))
	}
	if c.Lenient {
		opts = append(opts, WithLenientSizes(true))
	}
	return opts, nil
}
