package engine

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/UncatchableAlex/Coding-Projects/pkg/preset"
)

// Config holds all parameters for a run.
type Config struct {
	Puzzles []preset.Puzzle `yaml:"puzzles" json:"puzzles,omitempty"`
	Presets []string        `yaml:"presets" json:"presets,omitempty"`
	Format  string          `yaml:"format" json:"format"` // "text", "json" or "latex"
	Workers int             `yaml:"workers" json:"workers"`
	Verify  bool            `yaml:"verify" json:"verify"`
	Verbose bool            `yaml:"verbose" json:"verbose"`
	Timeout time.Duration   `yaml:"timeout" json:"timeout,omitempty"` // 0 = none
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Format:  "text",
		Workers: runtime.NumCPU(),
		Verify:  true,
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseNumbers parses a comma or space separated list of integers.
func ParseNumbers(s string) ([]int64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	out := make([]int64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse number %q: %w", f, err)
		}
		out = append(out, v)
	}
	return out, nil
}
