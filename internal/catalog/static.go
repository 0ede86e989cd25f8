package catalog

import (
	_ "embed"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-progression/internal/entities"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

//go:embed default_items.yaml
var defaultItems []byte

// Static is an in-memory catalog
type Static struct {
	items map[string]*entities.ItemDefinition
}

// NewStatic creates a catalog from definitions, rejecting invalid or duplicate ones
func NewStatic(defs ...*entities.ItemDefinition) (*Static, error) {
	s := &Static{items: make(map[string]*entities.ItemDefinition, len(defs))}
	for _, def := range defs {
		if err := s.Add(def); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add registers one definition
func (s *Static) Add(def *entities.ItemDefinition) error {
	if err := ValidateDefinition(def); err != nil {
		return err
	}
	if _, exists := s.items[def.ID]; exists {
		return errors.AlreadyExistsf("item %q already registered", def.ID).WithMeta("item_id", def.ID)
	}
	s.items[def.ID] = def
	return nil
}

// GetItem implements Catalog
func (s *Static) GetItem(id string) (*entities.ItemDefinition, bool) {
	def, ok := s.items[id]
	return def, ok
}

// Len returns the number of definitions
func (s *Static) Len() int {
	return len(s.items)
}

// Items returns every definition ordered by id
func (s *Static) Items() []*entities.ItemDefinition {
	out := make([]*entities.ItemDefinition, 0, len(s.items))
	for _, def := range s.items {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

type catalogFile struct {
	Items []*entities.ItemDefinition `yaml:"items"`
}

// LoadYAML reads a catalog document of the form `items: [...]`
func LoadYAML(r io.Reader) (*Static, error) {
	var doc catalogFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return NewStatic()
		}
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode item catalog")
	}
	return NewStatic(doc.Items...)
}

// LoadFile reads a YAML catalog from disk
func LoadFile(path string) (*Static, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open item catalog %s", path)
	}
	defer func() {
		_ = f.Close()
	}()

	return LoadYAML(f)
}

// Default returns the built-in starter catalog
func Default() (*Static, error) {
	var doc catalogFile
	if err := yaml.Unmarshal(defaultItems, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode built-in item catalog")
	}
	return NewStatic(doc.Items...)
}
