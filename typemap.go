package decima

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// typeMapFile is the YAML form of a type map:
//
//	types:
//	  31BE502435317445: LocalizedTextResource
type typeMapFile struct {
	Types map[string]string `yaml:"types"`
}

// ParseTypeMap decodes a YAML type map. Keys are type hashes in the hex form
// printed by TypeHash.String; values are canonical type names.
func ParseTypeMap(data []byte) (map[TypeHash]string, error) {
	var f typeMapFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing type map: %w", err)
	}
	m := make(map[TypeHash]string, len(f.Types))
	for k, name := range f.Types {
		h, err := ParseTypeHash(k)
		if err != nil {
			return nil, err
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("type map entry %s has no name", k)
		}
		m[h] = name
	}
	return m, nil
}

// LoadTypeMap reads a YAML type map file.
func LoadTypeMap(path string) (map[TypeHash]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading type map: %w", err)
	}
	m, err := ParseTypeMap(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
