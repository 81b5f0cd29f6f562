package grid

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed seed/default.yaml
var defaultSeedRaw []byte

// Seed describes an initial grid. Values are loaded as Resolved cells; every
// other cell starts Empty.
type Seed struct {
	Label   string       `yaml:"label"`
	Fields  []string     `yaml:"fields"`
	Targets []SeedTarget `yaml:"targets"`
}

type SeedTarget struct {
	Name   string            `yaml:"name"`
	Values map[string]string `yaml:"values,omitempty"`
}

func DefaultSeed() (Seed, error) {
	return ParseSeed(defaultSeedRaw)
}

// LoadSeed reads a YAML seed file.
func LoadSeed(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed: %w", err)
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) (Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("parse seed: %w", err)
	}
	return seed, nil
}

// NewFromSeed builds a grid from seed. Seed values naming an unknown field are
// rejected.
func NewFromSeed(seed Seed, opts ...Option) (*Grid, error) {
	if strings.TrimSpace(seed.Label) != "" {
		opts = append([]Option{WithLabel(seed.Label)}, opts...)
	}
	g := New(opts...)

	for _, field := range seed.Fields {
		if err := g.AddField(field); err != nil {
			return nil, fmt.Errorf("seed field: %w", err)
		}
	}
	for _, target := range seed.Targets {
		if err := g.AddTarget(target.Name); err != nil {
			return nil, fmt.Errorf("seed target: %w", err)
		}
		name := strings.TrimSpace(target.Name)
		for field, value := range target.Values {
			key := Key{Target: name, Field: strings.TrimSpace(field)}
			if err := g.EditCell(key, value); err != nil {
				return nil, fmt.Errorf("seed value for %s: %w", key, err)
			}
		}
	}
	return g, nil
}
