package util

import (
	"fmt"
	"os"

	"github.com/mohae/deepcopy"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads a YAML file and unmarshals it into a struct of type T.
func LoadConfig[T any](filepath string) (*T, error) {
	var config T
	return LoadConfigOver(filepath, &config)
}

// LoadConfigOver reads a YAML file and unmarshals it over a copy of base, so
// fields absent from the file keep the values in base. base is not modified.
func LoadConfigOver[T any](filepath string, base *T) (*T, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	config := Snapshot(base)
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	return config, nil
}

// Snapshot returns a deep copy of v.
func Snapshot[T any](v *T) *T {
	if v == nil {
		return new(T)
	}
	return deepcopy.Copy(v).(*T)
}
