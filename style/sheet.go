package style

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sync"

	yaml "gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultSheetData []byte

// Entry is a single named style: an author-chosen opaque name bound to a
// property bag of a specific kind.
type Entry struct {
	Name  string
	Kind  Kind
	Style Style
}

func (e *Entry) UnmarshalYAML(unmarshal func(any) error) error {
	var wire struct {
		Name  string    `yaml:"name"`
		Kind  Kind      `yaml:"kind"`
		Style yaml.Node `yaml:"style"`
	}
	if err := unmarshal(&wire); err != nil {
		return err
	}
	if len(wire.Name) == 0 {
		return fmt.Errorf("style entry without a name")
	}

	bag := New(wire.Kind)
	if !wire.Style.IsZero() {
		// Node.Decode silently drops unknown fields, round-trip through a
		// strict decoder so property typos fail loudly.
		data, err := yaml.Marshal(&wire.Style)
		if err != nil {
			return fmt.Errorf("style entry %q: %w", wire.Name, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(bag); err != nil {
			return fmt.Errorf("style entry %q: %w", wire.Name, err)
		}
	}

	e.Name = wire.Name
	e.Kind = wire.Kind
	e.Style = bag
	return nil
}

// Map is the name to style entry lookup used during resolution. Keys are
// opaque author-chosen class names; some node kinds compose variant-qualified
// keys such as "class.variant" before falling back to the bare class.
type Map map[string]*Entry

// Get returns the entry registered under name.
func (m Map) Get(name string) (*Entry, bool) {
	e, ok := m[name]
	return e, ok
}

// Sheet is an ordered collection of named style entries plus an index from
// standard element kinds to their default entries. It is read-only once
// built; independent resolution passes may share one Sheet concurrently.
type Sheet struct {
	Entries []*Entry

	byName   Map
	defaults map[StandardKind]*Entry
}

// NewSheet builds a sheet from already constructed entries.
func NewSheet(entries ...*Entry) (*Sheet, error) {
	s := &Sheet{
		byName:   make(Map, len(entries)),
		defaults: make(map[StandardKind]*Entry),
	}
	for _, e := range entries {
		if err := s.add(e); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Sheet) add(e *Entry) error {
	if len(e.Name) == 0 {
		return fmt.Errorf("style entry without a name")
	}
	if _, exists := s.byName[e.Name]; exists {
		return fmt.Errorf("duplicate style entry %q", e.Name)
	}
	s.Entries = append(s.Entries, e)
	s.byName[e.Name] = e
	return nil
}

// SetDefault registers the named entry as the default style for a standard
// element kind.
func (s *Sheet) SetDefault(std StandardKind, name string) error {
	e, ok := s.byName[name]
	if !ok {
		return fmt.Errorf("default for %s references unknown style %q", std, name)
	}
	s.defaults[std] = e
	return nil
}

// Default returns the default style entry for the standard element kind.
func (s *Sheet) Default(std StandardKind) (*Entry, bool) {
	e, ok := s.defaults[std]
	return e, ok
}

// StyleMap returns the name to entry lookup derived from the sheet.
func (s *Sheet) StyleMap() Map {
	return s.byName
}

// LoadSheet decodes a YAML stylesheet: an ordered "styles" list of named
// entries and a "defaults" mapping from standard element kinds to entry
// names. Unknown fields are rejected the same way configuration files are.
func LoadSheet(data []byte) (*Sheet, error) {
	var wire struct {
		Styles   []*Entry          `yaml:"styles"`
		Defaults map[string]string `yaml:"defaults"`
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("unable to decode stylesheet: %w", err)
	}

	s, err := NewSheet(wire.Styles...)
	if err != nil {
		return nil, err
	}
	for key, name := range wire.Defaults {
		std, err := ParseStandardKind(key)
		if err != nil {
			return nil, fmt.Errorf("unable to read stylesheet defaults: %w", err)
		}
		if err := s.SetDefault(std, name); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// LoadSheetFile reads and decodes a YAML stylesheet from path.
func LoadSheetFile(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read stylesheet: %w", err)
	}
	return LoadSheet(data)
}

var loadDefaultSheet = sync.OnceValues(func() (*Sheet, error) {
	return LoadSheet(defaultSheetData)
})

// DefaultSheet returns the built-in stylesheet used when no external one is
// configured.
func DefaultSheet() (*Sheet, error) {
	return loadDefaultSheet()
}

// DefaultSheetYAML returns the built-in stylesheet source, a starting point
// for user sheets.
func DefaultSheetYAML() []byte {
	return bytes.Clone(defaultSheetData)
}
