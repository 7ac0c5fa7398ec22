package cards

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// CardInfo is the static catalog entry for one card: data, never
// behavior. Category and weight feed the score contribution the card's
// producer emits.
type CardInfo struct {
	ID       string  `yaml:"id" json:"id"`
	Title    string  `yaml:"title" json:"title"`
	Category string  `yaml:"category" json:"category"`
	Weight   float64 `yaml:"weight" json:"weight"`
}

// Registry is the read-only card catalog, loaded once from YAML.
type Registry struct {
	entries map[string]CardInfo
}

type registryFile struct {
	Cards []CardInfo `yaml:"cards"`
}

// LoadRegistry reads the card catalog from a YAML file.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file registryFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode card registry: %w", err)
	}

	return NewRegistry(file.Cards)
}

// NewRegistry builds a registry from catalog entries, rejecting
// duplicates and out-of-range weights.
func NewRegistry(entries []CardInfo) (*Registry, error) {
	m := make(map[string]CardInfo, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("card registry: entry with empty id")
		}
		if e.Category == "" {
			return nil, fmt.Errorf("card registry: %s has no category", e.ID)
		}
		if e.Weight < 0 || e.Weight > 1 {
			return nil, fmt.Errorf("card registry: %s weight %.3f outside [0,1]", e.ID, e.Weight)
		}
		if _, exists := m[e.ID]; exists {
			return nil, fmt.Errorf("card registry: duplicate id %s", e.ID)
		}
		m[e.ID] = e
	}

	return &Registry{entries: m}, nil
}

// Has reports whether a card id is in the catalog.
func (r *Registry) Has(cardID string) bool {
	_, ok := r.entries[cardID]
	return ok
}

// Get returns the catalog entry for a card.
func (r *Registry) Get(cardID string) (CardInfo, bool) {
	e, ok := r.entries[cardID]
	return e, ok
}

// List returns all entries sorted by id.
func (r *Registry) List() []CardInfo {
	out := make([]CardInfo, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count returns the number of registered cards.
func (r *Registry) Count() int {
	return len(r.entries)
}
