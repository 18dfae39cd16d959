package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	yaml "go.yaml.in/yaml/v3"
)

// applyFile reads a YAML mapping of flag names to values, for example
//
//	port: 6000
//	tests: [ping, download]
//	idle: 30s
//
// and sets each flag that is not in skip.
func applyFile(fs *flag.FlagSet, path string, skip map[string]bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("yaml unmarshal: %w", err)
	}

	for name, v := range values {
		if name == "config" || fs.Lookup(name) == nil {
			return fmt.Errorf("unknown config key %q in %s", name, path)
		}
		if skip[name] {
			continue
		}
		s, err := flagValue(v)
		if err != nil {
			return fmt.Errorf("config key %q: %w", name, err)
		}
		if err := fs.Set(name, s); err != nil {
			return fmt.Errorf("config key %q: %w", name, err)
		}
	}
	return nil
}

// flagValue renders a YAML scalar or list of scalars the way it would be
// written on the command line.
func flagValue(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case []any:
		parts := make([]string, 0, len(x))
		for _, item := range x {
			s, err := flagValue(item)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), nil
	case map[string]any:
		return "", fmt.Errorf("nested mappings are not supported")
	default:
		return fmt.Sprint(x), nil
	}
}
