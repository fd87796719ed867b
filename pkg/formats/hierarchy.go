package formats

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidHierarchy is returned for hierarchy tables that are not entity → bone → parent maps.
var ErrInvalidHierarchy = errors.New("invalid hierarchy table")

// ParseHierarchyTable parses extracted parent maps from YAML:
//
//	minecraft:player:
//	  jacket: body
//	  body: null
//
// A null or empty parent marks a top-level bone and is returned as "".
func ParseHierarchyTable(data []byte) (map[string]map[string]string, error) {
	var raw map[string]map[string]*string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHierarchy, err)
	}

	table := make(map[string]map[string]string, len(raw))
	for entity, bones := range raw {
		if entity == "" {
			return nil, fmt.Errorf("%w: empty entity id", ErrInvalidHierarchy)
		}
		parents := make(map[string]string, len(bones))
		for bone, parent := range bones {
			if parent == nil {
				parents[bone] = ""
				continue
			}
			parents[bone] = *parent
		}
		table[entity] = parents
	}
	return table, nil
}

// ParseHierarchyFile parses a hierarchy table from disk.
func ParseHierarchyFile(path string) (map[string]map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hierarchy table: %w", err)
	}
	return ParseHierarchyTable(data)
}
