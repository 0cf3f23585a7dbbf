package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/templekit/templekit/pkg/temple"
)

// fileSchema is the YAML layout of a registry file:
//
//	temples:
//	  - id: temple1
//	    code: first-temple
//	    connection_alias: shard-a
//	    status: active
type fileSchema struct {
	Temples []temple.Temple `yaml:"temples"`
}

// LoadFile reads a YAML registry file and builds a static registry from it.
// Reloading after a registry change means calling LoadFile again and
// swapping the result in; descriptors are never mutated in place.
func LoadFile(path string) (*StaticRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file: %w", err)
	}

	var schema fileSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("failed to unmarshal registry file: %w", err)
	}

	return NewStatic(schema.Temples)
}
