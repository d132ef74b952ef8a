package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML override file and applies it on top of
// DefaultContext, the "context/configuration loading" external
// collaborator spec.md §1 treats as out of the core's scope but which
// the surrounding repository still has to provide.
func Load(path string) (*Context, error) {
	ctx := DefaultContext()
	if path == "" {
		return ctx, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var o Override
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	ctx.Apply(o)
	if err := ctx.Validate(); err != nil {
		return nil, err
	}
	return ctx, nil
}
