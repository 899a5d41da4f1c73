package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RouteDecl is one declarative route from a routes file. Action names use
// the "controller/action" form and are bound against registered
// controllers at load time.
type RouteDecl struct {
	Methods []string `yaml:"methods"`
	Pattern string   `yaml:"pattern"`
	Action  string   `yaml:"action"`
}

// RouteGroup declares routes sharing a path prefix. Groups do not nest.
type RouteGroup struct {
	Prefix string      `yaml:"prefix"`
	Routes []RouteDecl `yaml:"routes"`
}

// RoutesFile is the top-level structure of a YAML route declarations file
type RoutesFile struct {
	Routes []RouteDecl  `yaml:"routes"`
	Groups []RouteGroup `yaml:"groups"`
}

// LoadRoutesFile reads and validates a YAML route declarations file
func LoadRoutesFile(path string) (*RoutesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading routes file: %w", err)
	}

	var rf RoutesFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing routes file: %w", err)
	}

	if err := rf.validate(); err != nil {
		return nil, err
	}
	return &rf, nil
}

func (rf *RoutesFile) validate() error {
	for _, r := range rf.Routes {
		if err := r.validate(); err != nil {
			return err
		}
	}
	for _, g := range rf.Groups {
		if g.Prefix == "" {
			return fmt.Errorf("route group without prefix")
		}
		for _, r := range g.Routes {
			if err := r.validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *RouteDecl) validate() error {
	if r.Pattern == "" {
		return fmt.Errorf("route declaration without pattern")
	}
	if r.Action == "" {
		return fmt.Errorf("route %q without action", r.Pattern)
	}
	return nil
}
