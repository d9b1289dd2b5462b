// Package preset holds named example puzzles.
package preset

import (
	"fmt"
	"slices"
	"sort"
)

// Puzzle is a set of operands and the value to build from them.
type Puzzle struct {
	Name    string  `yaml:"name" json:"name"`
	Numbers []int64 `yaml:"numbers" json:"numbers"`
	Target  int64   `yaml:"target" json:"target"`
}

var registry = map[string]func() Puzzle{}

// Register adds a puzzle constructor to the registry.
func Register(name string, constructor func() Puzzle) {
	registry[name] = constructor
}

// Get returns a puzzle by name. The returned Numbers slice is a fresh copy.
func Get(name string) (Puzzle, error) {
	ctor, ok := registry[name]
	if !ok {
		return Puzzle{}, fmt.Errorf("unknown preset: %s", name)
	}
	p := ctor()
	p.Name = name
	p.Numbers = slices.Clone(p.Numbers)
	return p, nil
}

// Names returns all registered preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
